package main

import (
	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/vdom"
)

// fragmentFromHTML parses an HTML fragment into a virtual tree so it can
// be fed to the reconciler. Parsed nodes match positionally: the HTML
// carries no reconciliation keys.
func fragmentFromHTML(doc *dom.MemoryDocument, src string) (*vdom.Node, error) {
	nodes, err := doc.ParseFragment(src)
	if err != nil {
		return nil, err
	}

	frag := vdom.NewFragment(len(nodes))
	for _, n := range nodes {
		frag.AppendChild(vnodeFromDOM(n))
	}
	return frag, nil
}

func vnodeFromDOM(n dom.Node) *vdom.Node {
	switch n.Type() {
	case dom.TextNode:
		return vdom.NewText(n.Data())

	case dom.CommentNode:
		return vdom.NewComment(n.Data())

	default:
		var attrs vdom.Attrs
		if names := n.AttrNames(); len(names) > 0 {
			attrs = make(vdom.Attrs, len(names))
			for _, name := range names {
				v, _ := n.Attr(name)
				attrs[name] = v
			}
		}

		count := 0
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			count++
		}

		var el *vdom.Node
		if ns := n.Namespace(); ns != "" {
			el = vdom.NewElementNS(ns, n.TagName(), attrs, count)
		} else {
			el = vdom.NewElement(n.TagName(), attrs, count)
		}
		for c := n.FirstChild(); c != nil; c = c.NextSibling() {
			el.AppendChild(vnodeFromDOM(c))
		}
		return el
	}
}
