package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lark/internal/diag"
	"lark/internal/entity"
	"lark/internal/parser"
	"lark/internal/source"
	"lark/internal/trace"
)

var parseCmd = &cobra.Command{
	Use:   "parse <file.lark>",
	Short: "Parse a Lark source file and list its top-level items",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	t := trace.FromContext(cmd.Context())
	span := trace.Begin(t, trace.ScopePass, "parse", 0)
	defer span.End("")

	m := source.NewMap()
	file := m.SetText(path, string(text))
	ents := entity.NewTable()
	res := parser.ParseFile(file, string(text), ents)

	if res.Bag.Len() > 0 {
		res.Bag.Sort()
		diag.Pretty(os.Stderr, res.Bag, m, diag.PrettyOpts{Color: useColor(cmd), Context: 1})
	}

	for _, it := range res.Items {
		e := ents.Get(it.Entity)
		kind := "fn"
		if it.Struct != nil {
			kind = "struct"
		}
		start, _ := m.Resolve(it.FullSpan)
		fmt.Fprintf(cmd.OutOrStdout(), "%d:%d %s %s\n", start.Line, start.Col, kind, e.Text)
	}
	return nil
}
