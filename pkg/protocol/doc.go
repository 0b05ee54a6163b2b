// Package protocol defines the wire format for streaming live-tree
// mutations to a remote mirror.
//
// The unit of transfer is the PatchFrame: the ordered batch of patches one
// reconciliation pass produced, tagged with a sequence number. Patches
// address nodes by their child-index path from the morph root, so the
// format carries no node identifiers and the mirror needs no side tables.
//
// A Recorder turns a dom mutation stream into patches; ApplyPatchFrame
// replays them. Frames travel inside a small length-prefixed binary frame
// (see Frame), encoded with the varint codec in Encoder/Decoder. A
// MessagePack rendering of the same frames exists for tooling.
package protocol
