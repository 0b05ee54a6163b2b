package errors

// ErrorTemplate defines a registered error type.
type ErrorTemplate struct {
	Category Category
	Message  string
	Detail   string
}

// registry maps error codes to their templates.
var registry = map[string]ErrorTemplate{
	// ============================================
	// Structure Errors (E001-E099)
	// ============================================

	"E001": {
		Category: CategoryStructure,
		Message:  "Declared child count exceeded",
		Detail:   "A virtual element received more children than it declared at construction. The render function must describe exactly the declared child count for every container it opens.",
	},
	"E002": {
		Category: CategoryStructure,
		Message:  "Unknown virtual node kind",
		Detail:   "The reconciler encountered a virtual node whose kind is not one of Element, Text, Comment, Fragment, or Component. This signals a corrupted or hand-built tree.",
	},
	"E003": {
		Category: CategoryStructure,
		Message:  "Fragment boundary marker missing",
		Detail:   "A fragment's end marker was not found among its parent's children. Fragment markers must never be removed independently of the fragment.",
	},

	// ============================================
	// Runtime Errors (E100-E199)
	// ============================================

	"E100": {
		Category: CategoryRuntime,
		Message:  "Component destroyed during pass",
		Detail:   "A lifecycle callback mutated the tree being reconciled. Callbacks invoked during a pass must not modify the live tree.",
	},
	"E101": {
		Category: CategoryRuntime,
		Message:  "Re-entrant reconciliation",
		Detail:   "Morph was called for a root that already has a pass in flight. The caller must serialize passes per root.",
	},

	// ============================================
	// Protocol Errors (E200-E299)
	// ============================================

	"E200": {
		Category: CategoryProtocol,
		Message:  "Truncated mutation frame",
		Detail:   "The decoder ran out of bytes while reading a mutation frame.",
	},
	"E201": {
		Category: CategoryProtocol,
		Message:  "Unknown mutation opcode",
		Detail:   "The decoder encountered an opcode it does not understand and cannot determine the operand layout.",
	},
	"E202": {
		Category: CategoryProtocol,
		Message:  "Frame exceeds size limit",
		Detail:   "An encoded mutation frame exceeded the configured maximum frame size.",
	},
	"E203": {
		Category: CategoryProtocol,
		Message:  "Patch target unresolved",
		Detail:   "A patch path did not resolve to a node in the mirror tree. The mirror has diverged from the source and needs a full resync.",
	},

	// ============================================
	// Config Errors (E300-E399)
	// ============================================

	"E300": {
		Category: CategoryConfig,
		Message:  "Config file not found",
		Detail:   "No lamina.yaml was found in the working directory or any parent.",
	},
	"E301": {
		Category: CategoryConfig,
		Message:  "Invalid config file",
		Detail:   "lamina.yaml exists but could not be parsed as YAML.",
	},
	"E302": {
		Category: CategoryConfig,
		Message:  "Invalid config value",
		Detail:   "A config field has a value outside its allowed range.",
	},
}

// Lookup returns the template registered under code.
func Lookup(code string) (ErrorTemplate, bool) {
	t, ok := registry[code]
	return t, ok
}
