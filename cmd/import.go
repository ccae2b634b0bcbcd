package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kubev2v/migration-sizer/internal/config"
)

func NewImportCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import <rvtools.xlsx>",
		Short: "Replace the stored inventory with an RVTools export",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			inv, err := a.inventory.Import(cmd.Context(), filepath.Base(args[0]), f)
			if err != nil {
				return err
			}

			_, err = fmt.Fprintf(cmd.OutOrStdout(), "imported %d vms from %s into %s\n", inv.VMCount, inv.Source, cfg.Store.Path)
			return err
		},
	}

	registerStoreFlags(cmd.Flags(), cfg)

	return cmd
}
