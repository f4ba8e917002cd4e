package macaroon

import (
	gc "gopkg.in/check.v1"
)

type caveatSuite struct{}

var _ = gc.Suite(&caveatSuite{})

func (*caveatSuite) TestFirstPartySign(c *gc.C) {
	key := GenerateRandomKey()
	cav := FirstPartyCaveat{Predicate: ByteString("a predicate")}
	c.Assert(cav.sign(key).Equal(hmacSum(key, cav.Predicate)), gc.Equals, true)
}

func (*caveatSuite) TestThirdPartySign(c *gc.C) {
	key := GenerateRandomKey()
	cav := ThirdPartyCaveat{Id: ByteString("id"), VerifierId: ByteString("vid"), Location: "loc"}
	c.Assert(cav.sign(key).Equal(hmac2(key, cav.VerifierId, cav.Id)), gc.Equals, true)
}

func (*caveatSuite) TestIsThirdParty(c *gc.C) {
	c.Assert(IsThirdParty(FirstPartyCaveat{}), gc.Equals, false)
	c.Assert(IsThirdParty(ThirdPartyCaveat{}), gc.Equals, true)
}
