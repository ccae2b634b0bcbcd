package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/kubev2v/migration-sizer/internal/config"
	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/report"
	"github.com/kubev2v/migration-sizer/internal/store"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

type sizeOptions struct {
	inventory   string
	profile     string
	failedNodes int
	scope       string
	report      string
}

func NewSizeCommand(cfg *config.Configuration) *cobra.Command {
	opts := &sizeOptions{}

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Size one profile against an RVTools export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.ValidateSizing(cfg.Sizing); err != nil {
				return err
			}

			req := models.SizingRequest{
				Profile: opts.profile,
				Scope:   opts.scope,
				Config:  cfg.Sizing,
			}
			if cmd.Flags().Changed("failed-nodes") {
				req.FailedNodes = &opts.failedNodes
			}

			// one-shot runs never touch the configured database
			cfg.Store.Path = store.MemoryDB

			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.Close()

			f, err := os.Open(opts.inventory)
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			if _, err := a.inventory.Import(cmd.Context(), filepath.Base(opts.inventory), f); err != nil {
				return err
			}

			scenario, err := a.sizing.Size(cmd.Context(), req)
			if err != nil {
				return err
			}

			if err := printScenario(cmd.OutOrStdout(), *scenario); err != nil {
				return err
			}

			if opts.report != "" {
				return writeReport(opts.report, *scenario)
			}
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVar(&opts.inventory, "inventory", "", "RVTools export (.xlsx)")
	fs.StringVar(&opts.profile, "profile", "", "Node profile name")
	fs.IntVar(&opts.failedNodes, "failed-nodes", 0, "Node failures to simulate (default: node-redundancy-buffer)")
	fs.StringVar(&opts.scope, "scope", "", "Filter expression narrowing the eligible VMs")
	fs.StringVar(&opts.report, "report", "", "Write an xlsx report to this file")
	_ = cmd.MarkFlagRequired("inventory")
	_ = cmd.MarkFlagRequired("profile")

	registerCatalogFlags(fs, cfg)
	registerSizingFlags(fs, cfg)

	return cmd
}

func writeReport(path string, scenario models.Scenario) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := report.Write(f, scenario); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write report: %w", err)
	}

	return f.Close()
}

func verdict(pass bool) string {
	if pass {
		return color.GreenString("PASS")
	}
	return color.RedString("FAIL")
}

func printScenario(out io.Writer, s models.Scenario) error {
	r := s.Result
	req := r.Requirements

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "Profile\t%s\n", r.Profile.Name)
	fmt.Fprintf(w, "VMs\t%d\n", r.Demand.VMCount)
	fmt.Fprintf(w, "Demand\t%d vCPU, %.0f GB memory, %.0f GB storage (%s)\n",
		r.Demand.TotalVCPU, r.Demand.TotalMemoryGB, r.Demand.TotalStorageGB, r.Demand.StorageMetric)
	fmt.Fprintf(w, "Per node\t%d vCPU, %d GB memory, %d GB storage\n",
		r.Capacity.UsableVCPU, r.Capacity.UsableMemoryGB, r.Capacity.UsableStorageGB)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "RESOURCE\tREQUIRED\tNODES\tAT THRESHOLD")
	fmt.Fprintf(w, "cpu\t%d vCPU\t%d\t%d\n", req.TotalVCPU, req.NodesForCPU, req.NodesForCPUAtThreshold)
	fmt.Fprintf(w, "memory\t%d GB\t%d\t%d\n", req.TotalMemoryGB, req.NodesForMemory, req.NodesForMemoryAtThreshold)
	fmt.Fprintf(w, "storage\t%.0f GB\t%d\t%d\n", req.TotalStorageGB, req.NodesForStorage, req.NodesForStorageAtThreshold)
	fmt.Fprintln(w)

	limiting := string(req.LimitingFactor)
	if req.LimitingFactor == sizing.ResourceNone {
		limiting = "none"
	}
	fmt.Fprintf(w, "Total nodes\t%d (limiting: %s)\n", req.TotalNodes, limiting)
	fmt.Fprintf(w, "Summary\t%s\n", r.Summary)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "FAILED\tSURVIVING\tCPU %\tMEMORY %\tSTORAGE %\tQUORUM\tVERDICT")
	for _, v := range r.Sweep {
		fmt.Fprintf(w, "%d\t%d\t%.1f\t%.1f\t%.1f\t%s\t%s\n",
			v.FailedNodes, v.SurvivingNodes,
			v.CPU.AfterFailurePercent, v.Memory.AfterFailurePercent, v.Storage.AfterFailurePercent,
			verdict(v.QuorumPasses), verdict(v.AllPass))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Requested failures\t%d\t%s\n", r.Validation.FailedNodes, verdict(r.Validation.AllPass))
	fmt.Fprintf(w, "Max tolerated failures\t%d\n", r.MaxToleratedFailures)

	return w.Flush()
}
