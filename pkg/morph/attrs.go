package morph

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

// propAttrs are attributes whose live state diverges from markup after
// user interaction. They are written through node properties so a morph
// never clobbers what the user typed or toggled with a stale attribute.
var propAttrs = map[string]bool{
	"checked":  true,
	"selected": true,
	"disabled": true,
}

// morphAttrs converges n's attributes from prev's snapshot to next,
// touching only the names that actually changed. When both renders share
// the same attribute map the whole diff is skipped.
func (c *Context) morphAttrs(n dom.Node, prev, next *vdom.Node) {
	var prevAttrs vdom.Attrs
	if prev != nil {
		prevAttrs = prev.Attrs
	}
	if sameAttrMap(prevAttrs, next.Attrs) {
		return
	}

	for name, val := range next.Attrs {
		if c.writeProp(n, next.Tag, name, val) {
			continue
		}
		s, present := attrString(val)
		if !present {
			if _, had := n.Attr(name); had {
				n.RemoveAttr(name)
			}
			continue
		}
		if old, had := n.Attr(name); !had || old != s {
			n.SetAttr(name, s)
		}
	}

	if prevAttrs == nil {
		// Nothing was committed before; a first morph over parsed
		// markup still has to drop attributes the render omits.
		for _, name := range n.AttrNames() {
			if _, keep := next.Attrs[name]; !keep {
				n.RemoveAttr(name)
			}
		}
		return
	}
	for name := range prevAttrs {
		if _, keep := next.Attrs[name]; keep {
			continue
		}
		if isPropAttr(n.TagName(), name) {
			c.clearProp(n, name)
			continue
		}
		n.RemoveAttr(name)
	}
}

// applyAttrs writes a freshly materialized element's attributes. Property
// routing still applies so form controls start in the rendered state.
func (c *Context) applyAttrs(n dom.Node, v *vdom.Node) {
	for name, val := range v.Attrs {
		if isPropAttr(v.Tag, name) {
			continue // applied after the node is attached
		}
		if s, present := attrString(val); present {
			n.SetAttr(name, s)
		}
	}
}

// applyProps writes property-routed attributes. Called after attachment so
// observers see the element before its live state is set.
func (c *Context) applyProps(n dom.Node, v *vdom.Node) {
	for name, val := range v.Attrs {
		if isPropAttr(v.Tag, name) {
			c.writeProp(n, v.Tag, name, val)
		}
	}
}

// writeProp routes a single attribute through the property channel when it
// is property-backed for this tag. Reports whether it was handled.
func (c *Context) writeProp(n dom.Node, tag, name string, val any) bool {
	if !isPropAttr(tag, name) {
		return false
	}
	if propAttrs[name] {
		want := truthy(val)
		if cur, ok := n.Prop(name).(bool); !ok || cur != want {
			n.SetProp(name, want)
		}
		return true
	}
	// value on input/textarea
	s, _ := attrString(val)
	if cur, ok := n.Prop(name).(string); !ok || cur != s {
		n.SetProp(name, s)
	}
	return true
}

func (c *Context) clearProp(n dom.Node, name string) {
	if propAttrs[name] {
		if cur, ok := n.Prop(name).(bool); !ok || cur {
			n.SetProp(name, false)
		}
		return
	}
	if cur, ok := n.Prop(name).(string); !ok || cur != "" {
		n.SetProp(name, "")
	}
}

func isPropAttr(tag, name string) bool {
	if propAttrs[name] {
		return true
	}
	return name == "value" && (tag == "input" || tag == "textarea")
}

// sameAttrMap reports whether two renders handed the reconciler the very
// same attribute map, which happens when a render function reuses a shared
// static map.
func sameAttrMap(a, b vdom.Attrs) bool {
	if a == nil || b == nil {
		return false
	}
	return reflect.ValueOf(a).Pointer() == reflect.ValueOf(b).Pointer()
}

// attrString stringifies an attribute value. A false bool or nil means the
// attribute is absent; a true bool renders as the empty string.
func attrString(val any) (s string, present bool) {
	switch v := val.(type) {
	case nil:
		return "", false
	case string:
		return v, true
	case bool:
		if !v {
			return "", false
		}
		return "", true
	case int:
		return strconv.Itoa(v), true
	case int64:
		return strconv.FormatInt(v, 10), true
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64), true
	default:
		return fmt.Sprint(v), true
	}
}

func truthy(val any) bool {
	switch v := val.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != "" && v != "false"
	default:
		return true
	}
}
