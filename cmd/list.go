package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/luacrypto/internal/registry"
)

var listCanonical bool

func init() {
	listCmd.Flags().BoolVar(&listCanonical, "canonical", false, "omit aliases")
	RootCmd.AddCommand(listCmd)
}

func resetListState() {
	listCanonical = false
}

var listCmd = &cobra.Command{
	Use:       "list <ciphers|digests>",
	Short:     "List supported algorithm names",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{registry.KindCiphers, registry.KindDigests},
	RunE: func(cmd *cobra.Command, args []string) error {
		list := registry.List
		if listCanonical {
			list = registry.Canonical
		}
		names, err := list(args[0])
		if err != nil {
			return err
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}
