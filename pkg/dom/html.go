package dom

import (
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses an HTML fragment (as it would appear inside <body>)
// into detached nodes owned by d.
func (d *MemoryDocument) ParseFragment(fragment string) ([]Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	parsed, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, err
	}

	var nodes []Node
	for _, hn := range parsed {
		if n := d.fromHTML(hn); n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes, nil
}

// fromHTML converts one x/net/html node (and its subtree) to a memory node.
// Nodes with no live-tree equivalent (doctype etc.) map to nil.
func (d *MemoryDocument) fromHTML(hn *html.Node) Node {
	switch hn.Type {
	case html.ElementNode:
		var el Node
		if hn.Namespace != "" && hn.Namespace != "html" {
			el = d.CreateElementNS(namespaceURI(hn.Namespace), hn.Data)
		} else {
			el = d.CreateElement(hn.Data)
		}
		for _, a := range hn.Attr {
			el.SetAttr(a.Key, a.Val)
		}
		for c := hn.FirstChild; c != nil; c = c.NextSibling {
			if child := d.fromHTML(c); child != nil {
				el.AppendChild(child)
			}
		}
		return el
	case html.TextNode:
		return d.CreateTextNode(hn.Data)
	case html.CommentNode:
		return d.CreateComment(hn.Data)
	default:
		return nil
	}
}

// Render serializes n (and its subtree) as HTML to w.
func Render(w io.Writer, n Node) error {
	return html.Render(w, toHTML(n))
}

// RenderString serializes n as HTML.
func RenderString(n Node) string {
	var sb strings.Builder
	if err := Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// RenderChildren serializes only n's children, useful for fragment roots.
func RenderChildren(w io.Writer, n Node) error {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		if err := Render(w, c); err != nil {
			return err
		}
	}
	return nil
}

func toHTML(n Node) *html.Node {
	switch n.Type() {
	case TextNode:
		return &html.Node{Type: html.TextNode, Data: n.Data()}
	case CommentNode:
		return &html.Node{Type: html.CommentNode, Data: n.Data()}
	}

	hn := &html.Node{
		Type:     html.ElementNode,
		Data:     n.TagName(),
		DataAtom: atom.Lookup([]byte(n.TagName())),
	}
	for _, name := range n.AttrNames() {
		v, _ := n.Attr(name)
		hn.Attr = append(hn.Attr, html.Attribute{Key: name, Val: v})
	}
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		hn.AppendChild(toHTML(c))
	}
	return hn
}

// namespaceURI maps x/net/html's short namespace names to URIs.
func namespaceURI(ns string) string {
	switch ns {
	case "svg":
		return "http://www.w3.org/2000/svg"
	case "math":
		return "http://www.w3.org/1998/Math/MathML"
	default:
		return ns
	}
}
