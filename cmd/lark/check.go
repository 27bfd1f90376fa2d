package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"lark/internal/db"
	"lark/internal/diag"
	"lark/internal/observ"
	"lark/internal/source"
	"lark/internal/trace"
)

var checkCmd = &cobra.Command{
	Use:   "check <file.lark>...",
	Short: "Type-check one or more Lark source files",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	t := trace.FromContext(cmd.Context())
	span := trace.Begin(t, trace.ScopePass, "check", 0)
	defer span.End("")

	timing, err := cmd.Root().PersistentFlags().GetBool("timing")
	if err != nil {
		return fmt.Errorf("failed to read timing flag: %w", err)
	}
	timer := observ.NewTimer()

	loadPhase := timer.Begin("load")
	proj := db.New()
	proj.SetTracer(t)
	files := make([]source.FileID, 0, len(args))
	for _, path := range args {
		text, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		files = append(files, proj.SetFileText(path, string(text)))
	}
	timer.End(loadPhase, fmt.Sprintf("%d files", len(files)))

	checkPhase := timer.Begin("check")
	sess := proj.Snapshot()
	bag, err := sess.ErrorsForProject(cmd.Context(), files)
	timer.End(checkPhase, "")
	if err != nil {
		return fmt.Errorf("checking failed: %w", err)
	}

	if timing {
		fmt.Fprint(os.Stderr, timer.Summary())
	}

	if bag.Len() == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "ok")
		return nil
	}

	diag.Pretty(os.Stderr, bag, sess.Files(), diag.PrettyOpts{Color: useColor(cmd), Context: 1})
	if bag.HasErrors() {
		return fmt.Errorf("type checking found errors")
	}
	return nil
}
