package macaroon

import (
	"encoding/base64"

	gc "gopkg.in/check.v1"

	"github.com/quaycrest/macaroon/internal/wire"
)

type v1Suite struct{}

var _ = gc.Suite(&v1Suite{})

func (*v1Suite) TestDeserializeRejectsIncompleteCaveat(c *gc.C) {
	var buf []byte
	var err error
	buf, err = wire.AppendPacketV1(buf, fieldIdentifier, []byte("an id"))
	c.Assert(err, gc.IsNil)
	buf, err = wire.AppendPacketV1(buf, fieldCID, []byte("cav id"))
	c.Assert(err, gc.IsNil)
	buf, err = wire.AppendPacketV1(buf, fieldVID, []byte("verifier id"))
	c.Assert(err, gc.IsNil)
	// No "cl" packet: this caveat has a vid but no location, which is
	// neither a valid first-party nor third-party shape.
	var sig Key
	buf, err = wire.AppendPacketV1(buf, fieldSignature, sig[:])
	c.Assert(err, gc.IsNil)

	encoded := base64.StdEncoding.EncodeToString(buf)
	_, err = deserializeV1([]byte(encoded))
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrIncompleteCaveat)
}

func (*v1Suite) TestDeserializeRejectsIncompleteCaveatBeforeNextCID(c *gc.C) {
	var buf []byte
	var err error
	buf, err = wire.AppendPacketV1(buf, fieldIdentifier, []byte("an id"))
	c.Assert(err, gc.IsNil)
	buf, err = wire.AppendPacketV1(buf, fieldCID, []byte("cav id 1"))
	c.Assert(err, gc.IsNil)
	buf, err = wire.AppendPacketV1(buf, fieldVID, []byte("verifier id"))
	c.Assert(err, gc.IsNil)
	// A second cid arrives before the first caveat got its "cl", so
	// flushing the first (incomplete) caveat must fail rather than
	// silently drop it.
	buf, err = wire.AppendPacketV1(buf, fieldCID, []byte("cav id 2"))
	c.Assert(err, gc.IsNil)

	encoded := base64.StdEncoding.EncodeToString(buf)
	_, err = deserializeV1([]byte(encoded))
	c.Assert(err, gc.NotNil)
	c.Assert(err.(*Error).Kind, gc.Equals, ErrIncompleteCaveat)
}
