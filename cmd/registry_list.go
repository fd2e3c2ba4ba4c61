package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/lattice/internal/presentation"
)

var registryListCmd = &cobra.Command{
	Use:   "registry:list",
	Short: "List declared interfaces and registrations",
	Long: `List the loaded registry document as JSON: declared interfaces with their
ancestor chains, adapter registrations, and subscriptions.

Examples:
  # List everything
  lattice registry:list

  # Parse specific fields with jq
  lattice registry:list | jq '.interfaces[].name'
  lattice registry:list | jq '.adapters[] | select(.provides == "IView")'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, provider, err := newService()
		if err != nil {
			return err
		}
		defer func() {
			_ = svc.Close()
			_ = provider.Shutdown(context.Background())
		}()

		snap, err := svc.Snapshot()
		if err != nil {
			return err
		}

		formatter := presentation.NewFormatter(os.Stdout)
		return formatter.FormatRegistry(presentation.FromSnapshot(snap))
	},
}

func init() {
	rootCmd.AddCommand(registryListCmd)
}
