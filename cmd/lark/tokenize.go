package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lark/internal/diag"
	"lark/internal/lexer"
	"lark/internal/source"
	"lark/internal/trace"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize <file.lark>",
	Short: "Tokenize a Lark source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func runTokenize(cmd *cobra.Command, args []string) error {
	path := args[0]
	text, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to read max-diagnostics flag: %w", err)
	}

	t := trace.FromContext(cmd.Context())
	span := trace.Begin(t, trace.ScopePass, "tokenize", 0)
	defer span.End("")

	m := source.NewMap()
	file := m.SetText(path, string(text))
	bag := diag.NewBag(maxDiagnostics)
	toks := lexer.Tokenize(file, string(text), bag)

	if bag.Len() > 0 {
		bag.Sort()
		diag.Pretty(os.Stderr, bag, m, diag.PrettyOpts{Color: useColor(cmd), Context: 1})
	}

	for _, tok := range toks {
		start, _ := m.Resolve(tok.Span)
		fmt.Fprintf(cmd.OutOrStdout(), "%d:%d %-12s %q\n", start.Line, start.Col, tok.Kind, tok.Text)
	}
	return nil
}
