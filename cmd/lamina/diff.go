package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lamina-ui/lamina/pkg/dom"
	"github.com/lamina-ui/lamina/pkg/morph"
	"github.com/lamina-ui/lamina/pkg/protocol"
)

func diffCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "diff <old.html> <new.html>",
		Short: "Morph one HTML fragment into another and print the patches",
		Long: `Parse two HTML fragments, build the first as a live tree, morph it
toward the second, and print the mutation trace the morph produced.

The trace is the same patch stream the preview server sends over its
WebSocket. Matching is positional: fragments carry no keys.

Examples:
  lamina diff old.html new.html
  lamina diff old.html new.html --format=binary > patches.bin
  lamina diff old.html new.html --format=msgpack > patches.msgpack`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDiff(args[0], args[1], format)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, binary, or msgpack")

	return cmd
}

func runDiff(oldPath, newPath, format string) error {
	oldHTML, err := os.ReadFile(oldPath)
	if err != nil {
		return err
	}
	newHTML, err := os.ReadFile(newPath)
	if err != nil {
		return err
	}

	doc := dom.NewMemoryDocument()
	root := doc.CreateElement("div")
	ctx := morph.NewContext(doc, nil)

	oldTree, err := fragmentFromHTML(doc, string(oldHTML))
	if err != nil {
		return fmt.Errorf("parse %s: %w", oldPath, err)
	}
	newTree, err := fragmentFromHTML(doc, string(newHTML))
	if err != nil {
		return fmt.Errorf("parse %s: %w", newPath, err)
	}

	// Build the starting tree first; only the second pass is the diff.
	ctx.Morph(root, oldTree)
	rec := protocol.NewRecorder(root)
	doc.Observe(rec.Record)
	ctx.Morph(root, newTree)

	pf := rec.Flush()

	switch format {
	case "text":
		printPatchFrame(pf)
		return nil
	case "binary":
		_, err := os.Stdout.Write(protocol.EncodePatchFrame(pf))
		return err
	case "msgpack":
		data, err := protocol.EncodePatchFrameMsgpack(pf)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(data)
		return err
	default:
		return fmt.Errorf("unknown format %q (want text, binary, or msgpack)", format)
	}
}

func printPatchFrame(pf *protocol.PatchFrame) {
	if len(pf.Patches) == 0 {
		info("trees are identical")
		return
	}

	for _, p := range pf.Patches {
		fmt.Printf("%-11s %s", p.Op, pathString(p.Path))
		switch p.Op {
		case protocol.PatchSetText:
			fmt.Printf("  %q", p.Value)
		case protocol.PatchSetAttr:
			fmt.Printf("  %s=%q", p.Name, p.Value)
		case protocol.PatchRemoveAttr:
			fmt.Printf("  %s", p.Name)
		case protocol.PatchInsert:
			fmt.Printf("  %s", p.HTML)
		case protocol.PatchMove:
			fmt.Printf("  from %s", pathString(p.From))
		case protocol.PatchSetProp:
			if p.Value != "" {
				fmt.Printf("  %s=%q", p.Name, p.Value)
			} else {
				fmt.Printf("  %s=%v", p.Name, p.Bool)
			}
		}
		fmt.Println()
	}
	fmt.Printf("\n%d patches\n", len(pf.Patches))
}

func pathString(path []int) string {
	if len(path) == 0 {
		return "/"
	}
	var sb strings.Builder
	for _, i := range path {
		fmt.Fprintf(&sb, "/%d", i)
	}
	return sb.String()
}
