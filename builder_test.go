package macaroon

import (
	gc "gopkg.in/check.v1"
)

type builderSuite struct{}

var _ = gc.Suite(&builderSuite{})

func (*builderSuite) TestCaveatBuilderFirstParty(c *gc.C) {
	b := &caveatBuilder{}
	b.addID(ByteString("pred"))
	cav, err := b.build()
	c.Assert(err, gc.IsNil)
	fp, ok := cav.(FirstPartyCaveat)
	c.Assert(ok, gc.Equals, true)
	c.Assert(fp.Predicate.String(), gc.Equals, "pred")
}

func (*builderSuite) TestCaveatBuilderThirdParty(c *gc.C) {
	b := &caveatBuilder{}
	b.addID(ByteString("id"))
	b.addVerifierID(ByteString("vid"))
	b.addLocation("loc")
	cav, err := b.build()
	c.Assert(err, gc.IsNil)
	tp, ok := cav.(ThirdPartyCaveat)
	c.Assert(ok, gc.Equals, true)
	c.Assert(tp.Location, gc.Equals, "loc")
}

func (*builderSuite) TestCaveatBuilderMissingID(c *gc.C) {
	b := &caveatBuilder{}
	_, err := b.build()
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrIncompleteCaveat)
}

func (*builderSuite) TestCaveatBuilderPartialThirdParty(c *gc.C) {
	b := &caveatBuilder{}
	b.addID(ByteString("id"))
	b.addVerifierID(ByteString("vid"))
	_, err := b.build()
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrIncompleteCaveat)
}

func (*builderSuite) TestMacaroonBuilderMissingFields(c *gc.C) {
	b := &macaroonBuilder{}
	_, err := b.build()
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrIncompleteMacaroon)

	b.setIdentifier(ByteString("id"))
	_, err = b.build()
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrIncompleteMacaroon)

	b.setSignature(GenerateRandomKey())
	m, err := b.build()
	c.Assert(err, gc.IsNil)
	c.Assert(m.Identifier().String(), gc.Equals, "id")
}
