package macaroon

import (
	gc "gopkg.in/check.v1"
)

type cryptoSuite struct{}

var _ = gc.Suite(&cryptoSuite{})

func (*cryptoSuite) TestInitialize(c *gc.C) {
	c.Assert(Initialize(), gc.IsNil)
	c.Assert(Initialize(), gc.IsNil)
}

func (*cryptoSuite) TestEncryptDecryptRoundTrip(c *gc.C) {
	key := GenerateRandomKey()
	plain := GenerateRandomKey()
	ciphertext := encryptKey(key, plain)
	got, err := decryptKey(key, ciphertext)
	c.Assert(err, gc.IsNil)
	c.Assert(got.Equal(plain), gc.Equals, true)
}

func (*cryptoSuite) TestDecryptWrongKeyFails(c *gc.C) {
	key := GenerateRandomKey()
	wrong := GenerateRandomKey()
	ciphertext := encryptKey(key, GenerateRandomKey())
	_, err := decryptKey(wrong, ciphertext)
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrCrypto)
}

func (*cryptoSuite) TestDecryptShortCiphertextFails(c *gc.C) {
	key := GenerateRandomKey()
	_, err := decryptKey(key, []byte("too short"))
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrCrypto)
}

func (*cryptoSuite) TestHmac2Deterministic(c *gc.C) {
	key := GenerateRandomKey()
	a := []byte("a")
	b := []byte("b")
	c.Assert(hmac2(key, a, b).Equal(hmac2(key, a, b)), gc.Equals, true)
	c.Assert(hmac2(key, a, b).Equal(hmac2(key, b, a)), gc.Equals, false)
}

func (*cryptoSuite) TestDeriveKeyVector(c *gc.C) {
	seed := []byte("this is our super secret key; only we should know it")
	key := deriveKey(seed)
	sig := hmacSum(key, []byte("we used our secret key"))
	c.Assert(sig.String(), gc.Equals,
		"e3d9e02908526c4c0039ae15114115d97fdd68bf2ba379b342aaf0f617d0552f")
}
