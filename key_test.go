package macaroon

import (
	gc "gopkg.in/check.v1"
)

type keySuite struct{}

var _ = gc.Suite(&keySuite{})

func (*keySuite) TestGenerateRandomKeyIsUnique(c *gc.C) {
	seen := make(map[Key]struct{})
	for i := 0; i < 50; i++ {
		k := GenerateRandomKey()
		_, dup := seen[k]
		c.Assert(dup, gc.Equals, false)
		seen[k] = struct{}{}
	}
}

func (*keySuite) TestGenerateKeyDeterministic(c *gc.C) {
	seed := []byte("some seed material")
	c.Assert(GenerateKey(seed).Equal(GenerateKey(seed)), gc.Equals, true)
	c.Assert(GenerateKey(seed).Equal(GenerateKey([]byte("other"))), gc.Equals, false)
}

func (*keySuite) TestKeyFromBytesRoundTrip(c *gc.C) {
	var raw [keyLen]byte
	for i := range raw {
		raw[i] = byte(i)
	}
	k := KeyFromBytes(raw)
	c.Assert(k.Bytes(), gc.DeepEquals, raw[:])
}

func (*keySuite) TestEqualConstantTime(c *gc.C) {
	k1 := GenerateRandomKey()
	k2 := k1
	c.Assert(k1.Equal(k2), gc.Equals, true)
	k2[0] ^= 0xff
	c.Assert(k1.Equal(k2), gc.Equals, false)
}
