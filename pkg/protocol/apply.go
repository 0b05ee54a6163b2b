package protocol

import (
	"github.com/lamina-ui/lamina/internal/errors"
	"github.com/lamina-ui/lamina/pkg/dom"
)

// FragmentParser is a document that can also parse serialized HTML, which
// applying Insert patches requires.
type FragmentParser interface {
	dom.Document
	ParseFragment(fragment string) ([]dom.Node, error)
}

// boolProps are the live properties carried in a patch's Bool field.
var boolProps = map[string]bool{
	"checked":  true,
	"selected": true,
	"disabled": true,
}

// ApplyPatchFrame replays a patch frame onto a mirror tree rooted at root.
// Patches apply in order; the first failure aborts and leaves the mirror
// in need of a resync.
func ApplyPatchFrame(doc FragmentParser, root dom.Node, pf *PatchFrame) error {
	for i := range pf.Patches {
		if err := applyPatch(doc, root, &pf.Patches[i]); err != nil {
			return err
		}
	}
	return nil
}

func applyPatch(doc FragmentParser, root dom.Node, p *Patch) error {
	switch p.Op {
	case PatchSetText:
		n := dom.NodeAt(root, p.Path)
		if n == nil {
			return errors.New("E203")
		}
		n.SetData(p.Value)

	case PatchSetAttr:
		n := dom.NodeAt(root, p.Path)
		if n == nil {
			return errors.New("E203")
		}
		n.SetAttr(p.Name, p.Value)

	case PatchRemoveAttr:
		n := dom.NodeAt(root, p.Path)
		if n == nil {
			return errors.New("E203")
		}
		n.RemoveAttr(p.Name)

	case PatchSetProp:
		n := dom.NodeAt(root, p.Path)
		if n == nil {
			return errors.New("E203")
		}
		if boolProps[p.Name] {
			n.SetProp(p.Name, p.Bool)
		} else {
			n.SetProp(p.Name, p.Value)
		}

	case PatchInsert:
		parent, ref, err := resolveSlot(root, p.Path)
		if err != nil {
			return err
		}
		nodes, err := doc.ParseFragment(p.HTML)
		if err != nil {
			return errors.FromError(err, "E201")
		}
		for _, n := range nodes {
			parent.InsertBefore(n, ref)
		}

	case PatchRemove:
		n := dom.NodeAt(root, p.Path)
		if n == nil || n.Parent() == nil {
			return errors.New("E203")
		}
		n.Parent().RemoveChild(n)

	case PatchMove:
		n := dom.NodeAt(root, p.From)
		if n == nil || n.Parent() == nil {
			return errors.New("E203")
		}
		n.Parent().RemoveChild(n)
		parent, ref, err := resolveSlot(root, p.Path)
		if err != nil {
			return err
		}
		parent.InsertBefore(n, ref)

	default:
		return errors.New("E201")
	}
	return nil
}

// resolveSlot splits a position path into the parent node and the child
// currently occupying the slot (nil when the position appends).
func resolveSlot(root dom.Node, path []int) (dom.Node, dom.Node, error) {
	if len(path) == 0 {
		return nil, nil, errors.New("E203").WithDetail("position path is empty")
	}
	parent := dom.NodeAt(root, path[:len(path)-1])
	if parent == nil {
		return nil, nil, errors.New("E203")
	}
	idx := path[len(path)-1]
	ref := parent.FirstChild()
	for i := 0; i < idx && ref != nil; i++ {
		ref = ref.NextSibling()
	}
	return parent, ref, nil
}
