package macaroon

import (
	gc "gopkg.in/check.v1"
)

type verifierSuite struct{}

var _ = gc.Suite(&verifierSuite{})

func (*verifierSuite) TestSelfCycleFailsCleanly(c *gc.C) {
	rootKey := GenerateRandomKey()
	m, err := New("", false, rootKey, ByteString("primary"))
	c.Assert(err, gc.IsNil)

	dischargeKey := GenerateRandomKey()
	m.AddThirdPartyCaveat("loc", dischargeKey, ByteString("discharge"))

	dm, err := New("", false, dischargeKey, ByteString("discharge"))
	c.Assert(err, gc.IsNil)
	// The discharge names itself as a third-party caveat, forming a cycle.
	dm.AddThirdPartyCaveat("loc", dischargeKey, ByteString("discharge"))
	m.Bind(dm)

	v := NewVerifier()
	err = v.Verify(m, rootKey, []*Macaroon{dm})
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrCaveatNotSatisfied)
}

func (*verifierSuite) TestMutualCycleFailsCleanly(c *gc.C) {
	rootKey := GenerateRandomKey()
	m, err := New("", false, rootKey, ByteString("primary"))
	c.Assert(err, gc.IsNil)

	key1 := GenerateRandomKey()
	key2 := GenerateRandomKey()
	m.AddThirdPartyCaveat("loc", key1, ByteString("d1"))

	d1, err := New("", false, key1, ByteString("d1"))
	c.Assert(err, gc.IsNil)
	d1.AddThirdPartyCaveat("loc", key2, ByteString("d2"))
	m.Bind(d1)

	d2, err := New("", false, key2, ByteString("d2"))
	c.Assert(err, gc.IsNil)
	d2.AddThirdPartyCaveat("loc", key1, ByteString("d1"))
	m.Bind(d2)

	v := NewVerifier()
	err = v.Verify(m, rootKey, []*Macaroon{d1, d2})
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrCaveatNotSatisfied)
}

func (*verifierSuite) TestBitFlipInvalidatesSignature(c *gc.C) {
	rootKey := GenerateRandomKey()
	m, err := New("", false, rootKey, ByteString("an id"))
	c.Assert(err, gc.IsNil)
	m.AddFirstPartyCaveat(ByteString("a caveat"))

	v := NewVerifier()
	v.SatisfyExact(ByteString("a caveat"))
	c.Assert(v.Verify(m, rootKey, nil), gc.IsNil)

	flipped := m.Clone()
	flipped.signature[0] ^= 0x01
	err = v.Verify(flipped, rootKey, nil)
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrInvalidSignature)

	flippedID := m.Clone()
	flippedID.identifier = ByteString("a different id")
	err = v.Verify(flippedID, rootKey, nil)
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrInvalidSignature)
}

func (*verifierSuite) TestVerifyIsPure(c *gc.C) {
	rootKey := GenerateRandomKey()
	m, err := New("", false, rootKey, ByteString("an id"))
	c.Assert(err, gc.IsNil)
	m.AddFirstPartyCaveat(ByteString("a caveat"))

	v := NewVerifier()
	v.SatisfyExact(ByteString("a caveat"))
	for i := 0; i < 5; i++ {
		c.Assert(v.Verify(m, rootKey, nil), gc.IsNil)
	}
}
