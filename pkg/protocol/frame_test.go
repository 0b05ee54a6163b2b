package protocol

import (
	"bytes"
	"testing"
)

func TestFrameRoundTrip(t *testing.T) {
	f := NewFrame(FramePatches, []byte("payload"))
	f.Flags = FlagFinal

	got, err := DecodeFrame(f.Encode())
	if err != nil {
		t.Fatalf("DecodeFrame: %v", err)
	}
	if got.Type != FramePatches {
		t.Errorf("Type = %v, want Patches", got.Type)
	}
	if !got.Flags.Has(FlagFinal) {
		t.Errorf("FlagFinal lost")
	}
	if string(got.Payload) != "payload" {
		t.Errorf("Payload = %q", got.Payload)
	}
}

func TestFrameReadWrite(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteFrame(&buf, NewFrame(FramePing, nil)); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}
	if err := WriteFrame(&buf, NewFrame(FramePatches, []byte{1, 2, 3})); err != nil {
		t.Fatalf("WriteFrame: %v", err)
	}

	first, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if first.Type != FramePing || len(first.Payload) != 0 {
		t.Errorf("first frame = %v/%d bytes", first.Type, len(first.Payload))
	}

	second, err := ReadFrame(&buf)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if second.Type != FramePatches || len(second.Payload) != 3 {
		t.Errorf("second frame = %v/%d bytes", second.Type, len(second.Payload))
	}
}

func TestWriteFrameRejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	f := NewFrame(FramePatches, make([]byte, MaxPayloadSize+1))
	if err := WriteFrame(&buf, f); err == nil {
		t.Fatalf("oversized payload accepted")
	}
}

func TestDecodeFrameTruncated(t *testing.T) {
	if _, err := DecodeFrame([]byte{0x01, 0x00}); err == nil {
		t.Errorf("short header decoded without error")
	}
	// Header promises 10 payload bytes, none follow.
	if _, err := DecodeFrame([]byte{0x01, 0x00, 0x00, 0x0A}); err == nil {
		t.Errorf("missing payload decoded without error")
	}
}
