package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"leetboard/internal/dashboard"
	"leetboard/internal/domain/model"
	"leetboard/internal/platform/httpx"

	"github.com/spf13/cobra"
)

type exportOptions struct {
	section string
	sorts   []string
	pin     string
	out     string
}

var exportOpts exportOptions

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the leaderboard as CSV without opening the dashboard",
	Long: `Fetches the leaderboard once, applies the same filter, sort and pin
steps as the interactive dashboard, and writes the result as CSV.

Each --sort toggles that field's direction before sorting, exactly like
pressing the key in the dashboard. Numeric fields start descending, so a
single --sort total gives ascending order; repeat it for descending.

Examples:
  dashboard export
  dashboard export --section "CSE A" --sort hard --sort hard
  dashboard export --pin 101 --out -`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVar(&exportOpts.section, "section", dashboard.AllSections, "Only export this section")
	exportCmd.Flags().StringArrayVar(&exportOpts.sorts, "sort", nil, "Sort field (total, easy, medium, hard, section, name, roll); repeatable")
	exportCmd.Flags().StringVar(&exportOpts.pin, "pin", "", "Roll number to move to the top")
	exportCmd.Flags().StringVarP(&exportOpts.out, "out", "o", "", "Output file, or - for stdout (default: leaderboard[-section].csv)")
}

func runExport(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()

	snapshot, err := dashboard.FetchSnapshot(ctx, httpx.NewClient(timeout), serverURL)
	if err != nil {
		return err
	}

	state, err := applyExportOptions(snapshot, exportOpts)
	if err != nil {
		return err
	}

	out := exportOpts.out
	if out == "" {
		out = dashboard.ExportFilename(state)
	}
	if out == "-" {
		return export(state, cmd.OutOrStdout())
	}

	if err := writeExport(state, out); err != nil {
		return err
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Exported %d students to %s\n", len(state.Working), out)
	return nil
}

// applyExportOptions runs the dashboard transitions in UI order: filter,
// then each sort, then the pin.
func applyExportOptions(snapshot model.Snapshot, opts exportOptions) (dashboard.State, error) {
	state := dashboard.Load(snapshot)
	if opts.section != "" && opts.section != dashboard.AllSections {
		state = dashboard.Filter(state, opts.section)
	}
	for _, s := range opts.sorts {
		field, err := dashboard.ParseField(s)
		if err != nil {
			return dashboard.State{}, err
		}
		state = dashboard.Sort(state, field)
	}
	if opts.pin != "" {
		state = dashboard.Pin(state, opts.pin)
		if state.Pinned != opts.pin {
			return dashboard.State{}, fmt.Errorf("roll %q is not in the exported view", opts.pin)
		}
	}
	return state, nil
}

func writeExport(state dashboard.State, path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("close %s: %w", path, cerr)
		}
	}()
	return export(state, f)
}

func export(state dashboard.State, w io.Writer) error {
	if err := dashboard.Export(state, w); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}
