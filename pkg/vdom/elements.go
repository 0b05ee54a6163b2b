package vdom

// voidElements are elements that cannot have children.
var voidElements = map[string]bool{
	"area":   true,
	"base":   true,
	"br":     true,
	"col":    true,
	"embed":  true,
	"hr":     true,
	"img":    true,
	"input":  true,
	"link":   true,
	"meta":   true,
	"param":  true,
	"source": true,
	"track":  true,
	"wbr":    true,
}

// IsVoidElement returns true if the tag is a void element.
func IsVoidElement(tag string) bool {
	return voidElements[tag]
}

// createElement creates a new element Node from variadic arguments.
// Arguments can be: nil, Attr, []Attr, *Node, []*Node, ComponentRef, string.
// The child list is sealed once all arguments are consumed.
func createElement(tag string, args []any) *Node {
	node := &Node{
		Kind:  KindElement,
		Tag:   tag,
		Attrs: make(Attrs),
	}

	var children []*Node
	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Ignore nil (allows conditional attributes/children)
			continue

		case Attr:
			applyAttr(node, v)

		case []Attr:
			for _, a := range v {
				applyAttr(node, a)
			}

		case *Node:
			if v != nil {
				children = append(children, v)
			}

		case []*Node:
			for _, child := range v {
				if child != nil {
					children = append(children, child)
				}
			}

		case ComponentRef:
			children = append(children, NewComponent(v, ""))

		case string:
			// Shorthand for text node
			children = append(children, NewText(v))
		}
	}

	// Seal at the exact derived count.
	node.children = make([]*Node, 0, len(children))
	node.sealed = true
	node.children = append(node.children, children...)
	return node
}

// applyAttr applies a single Attr to a node, routing the reserved keys
// (key, constId) to their Node fields.
func applyAttr(node *Node, a Attr) {
	if a.Key == "" {
		return
	}
	switch a.Key {
	case "key":
		if s, ok := a.Value.(string); ok {
			node.Key = s
		}
	case "constId":
		if s, ok := a.Value.(string); ok {
			node.ConstID = s
		}
	default:
		node.Attrs[a.Key] = a.Value
	}
}

// Document structure elements

func Html(args ...any) *Node  { return createElement("html", args) }
func Head(args ...any) *Node  { return createElement("head", args) }
func Body(args ...any) *Node  { return createElement("body", args) }
func Title(args ...any) *Node { return createElement("title", args) }
func Meta(args ...any) *Node  { return createElement("meta", args) }

// Content sectioning elements

func Header(args ...any) *Node  { return createElement("header", args) }
func Footer(args ...any) *Node  { return createElement("footer", args) }
func Main(args ...any) *Node    { return createElement("main", args) }
func Nav(args ...any) *Node     { return createElement("nav", args) }
func Section(args ...any) *Node { return createElement("section", args) }
func Article(args ...any) *Node { return createElement("article", args) }
func Aside(args ...any) *Node   { return createElement("aside", args) }
func H1(args ...any) *Node      { return createElement("h1", args) }
func H2(args ...any) *Node      { return createElement("h2", args) }
func H3(args ...any) *Node      { return createElement("h3", args) }
func H4(args ...any) *Node      { return createElement("h4", args) }

// Text content elements

func Div(args ...any) *Node        { return createElement("div", args) }
func P(args ...any) *Node          { return createElement("p", args) }
func Span(args ...any) *Node       { return createElement("span", args) }
func Pre(args ...any) *Node        { return createElement("pre", args) }
func Blockquote(args ...any) *Node { return createElement("blockquote", args) }
func Ul(args ...any) *Node         { return createElement("ul", args) }
func Ol(args ...any) *Node         { return createElement("ol", args) }
func Li(args ...any) *Node         { return createElement("li", args) }
func Hr(args ...any) *Node         { return createElement("hr", args) }

// Inline text semantics

func A(args ...any) *Node      { return createElement("a", args) }
func Strong(args ...any) *Node { return createElement("strong", args) }
func Em(args ...any) *Node     { return createElement("em", args) }
func Code(args ...any) *Node   { return createElement("code", args) }
func Small(args ...any) *Node  { return createElement("small", args) }
func Br(args ...any) *Node     { return createElement("br", args) }

// Form elements

func Form(args ...any) *Node     { return createElement("form", args) }
func Input(args ...any) *Node    { return createElement("input", args) }
func Textarea(args ...any) *Node { return createElement("textarea", args) }
func Select(args ...any) *Node   { return createElement("select", args) }
func Option(args ...any) *Node   { return createElement("option", args) }
func Button(args ...any) *Node   { return createElement("button", args) }
func Label(args ...any) *Node    { return createElement("label", args) }

// Table elements

func Table(args ...any) *Node { return createElement("table", args) }
func Thead(args ...any) *Node { return createElement("thead", args) }
func Tbody(args ...any) *Node { return createElement("tbody", args) }
func Tr(args ...any) *Node    { return createElement("tr", args) }
func Th(args ...any) *Node    { return createElement("th", args) }
func Td(args ...any) *Node    { return createElement("td", args) }

// Media elements

func Img(args ...any) *Node    { return createElement("img", args) }
func Audio(args ...any) *Node  { return createElement("audio", args) }
func Canvas(args ...any) *Node { return createElement("canvas", args) }

// Svg creates an <svg> element in the SVG namespace.
func Svg(args ...any) *Node {
	n := createElement("svg", args)
	n.Namespace = "http://www.w3.org/2000/svg"
	return n
}

// CustomElement creates an element with a custom tag name.
func CustomElement(tag string, args ...any) *Node {
	return createElement(tag, args)
}
