package protocol

import (
	"fmt"

	"github.com/lamina-ui/lamina/internal/errors"
)

// PatchOp is the type of patch operation.
type PatchOp uint8

// Patch operation constants.
const (
	PatchSetText    PatchOp = 0x01 // Replace text/comment payload
	PatchSetAttr    PatchOp = 0x02 // Set attribute
	PatchRemoveAttr PatchOp = 0x03 // Remove attribute
	PatchInsert     PatchOp = 0x04 // Insert serialized HTML before a position
	PatchRemove     PatchOp = 0x05 // Remove node
	PatchMove       PatchOp = 0x06 // Move node to a new position
	PatchSetProp    PatchOp = 0x07 // Set live property (value/checked/...)
)

// String returns the string representation of the patch operation.
func (op PatchOp) String() string {
	switch op {
	case PatchSetText:
		return "SetText"
	case PatchSetAttr:
		return "SetAttr"
	case PatchRemoveAttr:
		return "RemoveAttr"
	case PatchInsert:
		return "Insert"
	case PatchRemove:
		return "Remove"
	case PatchMove:
		return "Move"
	case PatchSetProp:
		return "SetProp"
	default:
		return "Unknown"
	}
}

// Patch represents a single live-tree operation, addressed by the target
// node's path from the morph root (child indexes, root to leaf).
//
// For Insert, Path addresses the position the new content occupies after
// insertion and HTML carries the serialized subtree. For Move, From
// addresses the node at its old position and Path the position it occupies
// after the move (interpreted with the node already detached). A true Bool
// on SetProp carries boolean properties; Value carries string ones.
type Patch struct {
	Op    PatchOp `msgpack:"op"`
	Path  []int   `msgpack:"path"`
	From  []int   `msgpack:"from,omitempty"` // Move source
	Name  string  `msgpack:"name,omitempty"` // Attribute/property name
	Value string  `msgpack:"val,omitempty"`  // Attr value, text payload, string property
	Bool  bool    `msgpack:"bool,omitempty"` // Boolean property value
	HTML  string  `msgpack:"html,omitempty"` // Insert payload
}

// PatchFrame is a batch of patches produced by one reconciliation pass,
// tagged with a monotonically increasing sequence number.
type PatchFrame struct {
	Seq     uint64  `msgpack:"seq"`
	Patches []Patch `msgpack:"patches"`
}

// EncodePatchFrame encodes a patch frame to bytes.
func EncodePatchFrame(pf *PatchFrame) []byte {
	e := NewEncoder()
	EncodePatchFrameTo(e, pf)
	return e.Bytes()
}

// EncodePatchFrameTo encodes a patch frame using the provided encoder.
func EncodePatchFrameTo(e *Encoder, pf *PatchFrame) {
	e.WriteUvarint(pf.Seq)
	e.WriteUvarint(uint64(len(pf.Patches)))

	for i := range pf.Patches {
		encodePatch(e, &pf.Patches[i])
	}
}

func encodePatch(e *Encoder, p *Patch) {
	e.WriteByte(byte(p.Op))
	e.WritePath(p.Path)

	switch p.Op {
	case PatchSetText:
		e.WriteString(p.Value)

	case PatchSetAttr:
		e.WriteString(p.Name)
		e.WriteString(p.Value)

	case PatchRemoveAttr:
		e.WriteString(p.Name)

	case PatchInsert:
		e.WriteString(p.HTML)

	case PatchRemove:
		// No additional data

	case PatchMove:
		e.WritePath(p.From)

	case PatchSetProp:
		e.WriteString(p.Name)
		e.WriteBool(p.Bool)
		e.WriteString(p.Value)
	}
}

// DecodePatchFrame decodes a patch frame from bytes.
func DecodePatchFrame(data []byte) (*PatchFrame, error) {
	d := NewDecoder(data)
	return DecodePatchFrameFrom(d)
}

// DecodePatchFrameFrom decodes a patch frame from a decoder.
func DecodePatchFrameFrom(d *Decoder) (*PatchFrame, error) {
	seq, err := d.ReadUvarint()
	if err != nil {
		return nil, err
	}

	count, err := d.ReadCollectionCount()
	if err != nil {
		return nil, err
	}

	patches := make([]Patch, count)
	for i := range patches {
		if err := decodePatch(d, &patches[i]); err != nil {
			return nil, err
		}
	}

	return &PatchFrame{
		Seq:     seq,
		Patches: patches,
	}, nil
}

func decodePatch(d *Decoder, p *Patch) error {
	opByte, err := d.ReadByte()
	if err != nil {
		return err
	}
	p.Op = PatchOp(opByte)

	p.Path, err = d.ReadPath()
	if err != nil {
		return err
	}

	switch p.Op {
	case PatchSetText:
		p.Value, err = d.ReadString()

	case PatchSetAttr:
		p.Name, err = d.ReadString()
		if err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	case PatchRemoveAttr:
		p.Name, err = d.ReadString()

	case PatchInsert:
		p.HTML, err = d.ReadString()

	case PatchRemove:
		// No additional data

	case PatchMove:
		p.From, err = d.ReadPath()

	case PatchSetProp:
		p.Name, err = d.ReadString()
		if err != nil {
			return err
		}
		p.Bool, err = d.ReadBool()
		if err != nil {
			return err
		}
		p.Value, err = d.ReadString()

	default:
		// Unlike an unknown attribute, an unknown opcode makes the
		// rest of the frame unreadable.
		return errors.New("E201").WithDetail(fmt.Sprintf("opcode 0x%02x", opByte))
	}

	return err
}
