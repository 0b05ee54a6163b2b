package protocol

import (
	"github.com/vmihailenco/msgpack/v5"

	"github.com/lamina-ui/lamina/internal/errors"
)

// EncodePatchFrameMsgpack encodes a patch frame with MessagePack. The
// varint codec is the wire format; this self-describing encoding is for
// tooling and cross-language consumers that do not speak it.
func EncodePatchFrameMsgpack(pf *PatchFrame) ([]byte, error) {
	return msgpack.Marshal(pf)
}

// DecodePatchFrameMsgpack decodes a MessagePack-encoded patch frame.
func DecodePatchFrameMsgpack(data []byte) (*PatchFrame, error) {
	var pf PatchFrame
	if err := msgpack.Unmarshal(data, &pf); err != nil {
		return nil, errors.FromError(err, "E200")
	}
	return &pf, nil
}
