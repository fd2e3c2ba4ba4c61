package cmd

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/zjrosen/lattice/internal/mode/explorer"
)

var exploreCmd = &cobra.Command{
	Use:   "explore",
	Short: "Interactive query explorer",
	Long: `Launch an interactive explorer for the loaded registry document.

Type a query like "IArticle -> IView" and press enter; tab cycles between
lookup, lookup-all, and subscription modes. The registry reloads live when
the document changes on disk.`,
	RunE: runExplore,
}

func init() {
	rootCmd.AddCommand(exploreCmd)
}

func runExplore(cmd *cobra.Command, args []string) error {
	svc, provider, err := newService()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	defer func() {
		_ = svc.Close()
		_ = provider.Shutdown(context.Background())
	}()

	if cfg.AutoReload {
		debounce := time.Duration(cfg.AutoReloadDebounce) * time.Millisecond
		if err := svc.Watch(ctx, debounce); err != nil {
			return fmt.Errorf("starting document watcher: %w", err)
		}
	}

	model := explorer.New(ctx, svc, explorer.NewStyles(cfg.Theme))
	p := tea.NewProgram(
		&model,
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running explorer: %w", err)
	}
	return nil
}
