package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"leetboard/internal/dashboard"
	"leetboard/internal/dashboard/tui"
	"leetboard/internal/domain/model"
	"leetboard/internal/platform/httpx"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var (
	serverURL string
	timeout   time.Duration
	exportDir string
)

var rootCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Browse the LeetCode leaderboard in the terminal",
	Long: `Opens an interactive leaderboard backed by a leetboard server.

Keys:
  f        cycle the section filter
  1-4      sort by total / easy / medium / hard
  s, n     sort by section / name
  enter, p pin the selected student
  e        export the current view as CSV
  ctrl+r   reload from the server
  q        quit`,
	SilenceUsage: true,
	RunE:         runDashboard,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:3001", "leetboard server base URL")
	rootCmd.PersistentFlags().DurationVar(&timeout, "timeout", httpx.DefaultTimeout, "Request timeout")
	rootCmd.Flags().StringVar(&exportDir, "export-dir", ".", "Directory CSV exports are written to")

	rootCmd.AddCommand(exportCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runDashboard(cmd *cobra.Command, args []string) error {
	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	client := httpx.NewClient(timeout)
	load := func(ctx context.Context) (model.Snapshot, error) {
		return dashboard.FetchSnapshot(ctx, client, serverURL)
	}

	p := tea.NewProgram(tui.New(ctx, load, exportDir), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard: %w", err)
	}
	return nil
}
