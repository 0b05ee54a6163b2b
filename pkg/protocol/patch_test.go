package protocol

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func samplePatchFrame() *PatchFrame {
	return &PatchFrame{
		Seq: 42,
		Patches: []Patch{
			{Op: PatchSetText, Path: []int{0, 1}, Value: "hello"},
			{Op: PatchSetAttr, Path: []int{2}, Name: "class", Value: "active"},
			{Op: PatchRemoveAttr, Path: []int{2}, Name: "title"},
			{Op: PatchInsert, Path: []int{3}, HTML: "<li>new</li>"},
			{Op: PatchRemove, Path: []int{4, 0}},
			{Op: PatchMove, Path: []int{0}, From: []int{5}},
			{Op: PatchSetProp, Path: []int{1}, Name: "checked", Bool: true},
			{Op: PatchSetProp, Path: []int{1}, Name: "value", Value: "typed"},
		},
	}
}

func TestPatchFrameRoundTrip(t *testing.T) {
	want := samplePatchFrame()

	got, err := DecodePatchFrame(EncodePatchFrame(want))
	if err != nil {
		t.Fatalf("DecodePatchFrame: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestPatchFrameMsgpackRoundTrip(t *testing.T) {
	want := samplePatchFrame()

	data, err := EncodePatchFrameMsgpack(want)
	if err != nil {
		t.Fatalf("EncodePatchFrameMsgpack: %v", err)
	}
	got, err := DecodePatchFrameMsgpack(data)
	if err != nil {
		t.Fatalf("DecodePatchFrameMsgpack: %v", err)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("frame mismatch (-want +got):\n%s", diff)
	}
}

func TestUnknownOpcodeFails(t *testing.T) {
	e := NewEncoder()
	e.WriteUvarint(1) // seq
	e.WriteUvarint(1) // count
	e.WriteByte(0xEE) // bogus opcode
	e.WritePath(nil)

	if _, err := DecodePatchFrame(e.Bytes()); err == nil {
		t.Fatalf("unknown opcode decoded without error")
	}
}

func TestEmptyFrameRoundTrip(t *testing.T) {
	got, err := DecodePatchFrame(EncodePatchFrame(&PatchFrame{Seq: 7}))
	if err != nil {
		t.Fatalf("DecodePatchFrame: %v", err)
	}
	if got.Seq != 7 || len(got.Patches) != 0 {
		t.Errorf("got seq=%d patches=%d", got.Seq, len(got.Patches))
	}
}
