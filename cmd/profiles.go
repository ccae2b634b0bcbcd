package cmd

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kubev2v/migration-sizer/internal/config"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

func NewProfilesCommand(cfg *config.Configuration) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the node profile catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := loadCatalog(cfg.Catalog.FilePath)
			if err != nil {
				return err
			}
			return printProfiles(cmd.OutOrStdout(), cat.List())
		},
	}

	registerCatalogFlags(cmd.Flags(), cfg)

	return cmd
}

func printProfiles(out io.Writer, profiles []sizing.NodeProfile) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCORES\tTHREADS\tMEMORY (GB)\tFLASH\tBARE METAL\tHCP")
	for _, p := range profiles {
		flash := "-"
		if p.HasLocalStorage() {
			flash = fmt.Sprintf("%d x %.0f GB", p.FlashDeviceCount, p.FlashDeviceCapacityGB)
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.0f\t%s\t%t\t%t\n",
			p.Name, p.PhysicalCores, p.Threads, p.MemoryGB, flash, p.SupportsBareMetal, p.SupportsHostedControlPlane)
	}
	return w.Flush()
}
