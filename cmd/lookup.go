package cmd

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	appadapter "github.com/zjrosen/lattice/internal/application/adapter"
	"github.com/zjrosen/lattice/internal/presentation"
)

var (
	lookupRequired []string
	lookupProvided string
	lookupName     string
	lookupAll      bool
	lookupSubs     bool
)

var lookupCmd = &cobra.Command{
	Use:   "lookup",
	Short: "Run one query against the loaded registry",
	Long: `Run a lookup against the registry document and print the result as JSON.

The --require flag is repeatable and ordered; "*" names the wildcard spec.

Examples:
  # Best adapter from IArticle to IView
  lattice lookup --require IArticle --provide IView

  # Named adapter
  lattice lookup --require IArticle --provide IView --name raw

  # Multi-adapter
  lattice lookup --require IArticle --require IRequest --provide IView

  # One winner per name
  lattice lookup --require IArticle --provide IView --all

  # Matching subscriptions, broad before narrow
  lattice lookup --require IArticle --provide IView --subscribers`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, provider, err := newService()
		if err != nil {
			return err
		}
		ctx := context.Background()
		defer func() {
			_ = svc.Close()
			_ = provider.Shutdown(ctx)
		}()

		formatter := presentation.NewFormatter(os.Stdout)

		switch {
		case lookupAll:
			all, err := svc.LookupAll(ctx, lookupRequired, lookupProvided)
			if err != nil {
				return err
			}
			dtos := make([]presentation.NamedValueDTO, len(all))
			for i, nv := range all {
				dtos[i] = presentation.NamedValueDTO{Name: nv.Name, Value: appadapter.ValueString(nv.Value)}
			}
			return formatter.FormatValues(dtos)

		case lookupSubs:
			subs, err := svc.Subscriptions(ctx, lookupRequired, lookupProvided)
			if err != nil {
				return err
			}
			values := make([]string, len(subs))
			for i, v := range subs {
				values[i] = appadapter.ValueString(v)
			}
			return formatter.FormatValues(values)

		default:
			q := appadapter.Query{Required: lookupRequired, Provided: lookupProvided, Name: lookupName}
			value, err := svc.Lookup(ctx, q)
			if err != nil {
				return err
			}
			return formatter.FormatLookup(presentation.FromLookup(q, value))
		}
	},
}

func init() {
	lookupCmd.Flags().StringArrayVar(&lookupRequired, "require", nil, "Required interface (repeatable, ordered)")
	lookupCmd.Flags().StringVar(&lookupProvided, "provide", "", "Provided interface")
	lookupCmd.Flags().StringVar(&lookupName, "name", "", "Name qualifier")
	lookupCmd.Flags().BoolVar(&lookupAll, "all", false, "Return one winner per name")
	lookupCmd.Flags().BoolVar(&lookupSubs, "subscribers", false, "Return matching subscriptions instead of adapters")
	_ = lookupCmd.MarkFlagRequired("provide")
	rootCmd.AddCommand(lookupCmd)
}
