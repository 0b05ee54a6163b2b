package dom

// MutationOp is the type of live-tree mutation.
type MutationOp uint8

const (
	OpInsert     MutationOp = iota // Node inserted under a parent
	OpRemove                       // Node detached from its parent
	OpMove                         // Attached node re-inserted elsewhere
	OpSetAttr                      // Attribute set or changed
	OpRemoveAttr                   // Attribute removed
	OpSetText                      // Text/comment payload replaced
	OpSetProp                      // Live property set
)

// String returns the string representation of the MutationOp.
func (op MutationOp) String() string {
	switch op {
	case OpInsert:
		return "Insert"
	case OpRemove:
		return "Remove"
	case OpMove:
		return "Move"
	case OpSetAttr:
		return "SetAttr"
	case OpRemoveAttr:
		return "RemoveAttr"
	case OpSetText:
		return "SetText"
	case OpSetProp:
		return "SetProp"
	default:
		return "Unknown"
	}
}

// Mutation describes a single live-tree mutation. OpRemove and OpMove are
// emitted before the node leaves its current position, so Target is still
// addressable through its old parent; Parent/Ref on an OpMove describe the
// destination.
type Mutation struct {
	Op     MutationOp
	Target Node
	Parent Node   // For Insert/Move: the new parent
	Ref    Node   // For Insert/Move: the following sibling, nil = append
	Name   string // For SetAttr/RemoveAttr/SetProp
	Value  string // For SetAttr/SetText
	Prop   any    // For SetProp
}

// Counters tallies mutation operations. The reconciler's minimality
// properties are asserted against these.
type Counters struct {
	Inserts     int
	Removes     int
	Moves       int
	AttrSets    int
	AttrRemoves int
	TextSets    int
	PropSets    int
}

// Total returns the sum of all counters.
func (c Counters) Total() int {
	return c.Inserts + c.Removes + c.Moves + c.AttrSets + c.AttrRemoves + c.TextSets + c.PropSets
}

func (c *Counters) record(m Mutation) {
	switch m.Op {
	case OpInsert:
		c.Inserts++
	case OpRemove:
		c.Removes++
	case OpMove:
		c.Moves++
	case OpSetAttr:
		c.AttrSets++
	case OpRemoveAttr:
		c.AttrRemoves++
	case OpSetText:
		c.TextSets++
	case OpSetProp:
		c.PropSets++
	}
}
