package report

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/migration-sizer/internal/models"
)

const (
	SummarySheet    = "Summary"
	CapacitySheet   = "Capacity"
	RedundancySheet = "Redundancy"
)

// Write renders the scenario as an xlsx workbook.
func Write(w io.Writer, scenario models.Scenario) error {
	f, err := Build(scenario)
	if err != nil {
		return err
	}
	defer func() {
		_ = f.Close()
	}()

	return f.Write(w)
}

// Build creates the workbook for a scenario. The caller closes it.
func Build(scenario models.Scenario) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return nil, err
	}
	for _, name := range []string{CapacitySheet, RedundancySheet} {
		if _, err := f.NewSheet(name); err != nil {
			return nil, err
		}
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}

	b := &builder{f: f, bold: bold}
	b.summary(scenario)
	b.capacity(scenario.Result)
	b.redundancy(scenario.Result)
	if b.err != nil {
		_ = f.Close()
		return nil, b.err
	}

	f.SetActiveSheet(0)
	return f, nil
}

// builder writes rows and keeps the first error.
type builder struct {
	f    *excelize.File
	bold int
	err  error
}

func (b *builder) row(sheet string, n int, values ...any) {
	if b.err != nil {
		return
	}
	cell, err := excelize.CoordinatesToCellName(1, n)
	if err != nil {
		b.err = err
		return
	}
	b.err = b.f.SetSheetRow(sheet, cell, &values)
}

func (b *builder) header(sheet string, values ...any) {
	b.row(sheet, 1, values...)
	if b.err != nil {
		return
	}
	last, err := excelize.CoordinatesToCellName(len(values), 1)
	if err != nil {
		b.err = err
		return
	}
	if b.err = b.f.SetCellStyle(sheet, "A1", last, b.bold); b.err != nil {
		return
	}
	col, err := excelize.ColumnNumberToName(len(values))
	if err != nil {
		b.err = err
		return
	}
	b.err = b.f.SetColWidth(sheet, "A", col, 22)
}

func (b *builder) summary(s models.Scenario) {
	r := s.Result
	req := r.Requirements

	b.header(SummarySheet, "Field", "Value")
	rows := [][]any{
		{"Scenario", s.ID.String()},
		{"Created", s.CreatedAt.Format("2006-01-02 15:04:05 MST")},
		{"Profile", r.Profile.Name},
		{"Scope", s.Scope},
		{"VMs", r.Demand.VMCount},
		{"Total vCPU", req.TotalVCPU},
		{"Total memory (GB)", req.TotalMemoryGB},
		{fmt.Sprintf("Total storage (GB, %s)", r.Demand.StorageMetric), req.TotalStorageGB},
		{"Storage growth multiplier", req.StorageGrowthMultiplier},
		{"Nodes for CPU", req.NodesForCPUAtThreshold},
		{"Nodes for memory", req.NodesForMemoryAtThreshold},
		{"Nodes for storage", req.NodesForStorageAtThreshold},
		{"Redundancy buffer", req.RedundancyBuffer},
		{"Limiting factor", limiting(string(req.LimitingFactor))},
		{"Total nodes", req.TotalNodes},
		{"Max tolerated failures", r.MaxToleratedFailures},
		{"Summary", r.Summary},
	}
	for i, row := range rows {
		b.row(SummarySheet, i+2, row...)
	}
}

func (b *builder) capacity(r models.SizingResult) {
	c := r.Capacity

	b.header(CapacitySheet, "Per node", "Value")
	rows := [][]any{
		{"Physical cores", r.Profile.PhysicalCores},
		{"Memory (GB)", r.Profile.MemoryGB},
		{"Flash devices", r.Profile.FlashDeviceCount},
		{"Flash device capacity (GB)", r.Profile.FlashDeviceCapacityGB},
		{"Reserved cores", c.Reservation.CPUCores},
		{"Reserved memory (GB)", c.Reservation.MemoryGB},
		{"Available cores", c.AvailableCores},
		{"Effective cores", c.EffectiveCores},
		{"Usable vCPU", c.UsableVCPU},
		{"Available memory (GB)", c.AvailableMemoryGB},
		{"Usable memory (GB)", c.UsableMemoryGB},
		{"Raw storage (GB)", c.RawStorageGB},
		{"Storage efficiency", c.StorageEfficiency},
		{"Max usable storage (GB)", c.MaxUsableStorageGB},
		{"Usable storage (GB)", c.UsableStorageGB},
	}
	for i, row := range rows {
		b.row(CapacitySheet, i+2, row...)
	}
}

func (b *builder) redundancy(r models.SizingResult) {
	b.header(RedundancySheet,
		"Failed nodes", "Surviving nodes",
		"CPU healthy %", "CPU after failure %", "CPU",
		"Memory healthy %", "Memory after failure %", "Memory",
		"Storage healthy %", "Storage after failure %", "Storage",
		"Quorum", "Result",
	)
	for i, v := range r.Sweep {
		b.row(RedundancySheet, i+2,
			v.FailedNodes, v.SurvivingNodes,
			v.CPU.HealthyPercent, v.CPU.AfterFailurePercent, verdict(v.CPU.Passes),
			v.Memory.HealthyPercent, v.Memory.AfterFailurePercent, verdict(v.Memory.Passes),
			v.Storage.HealthyPercent, v.Storage.AfterFailurePercent, verdict(v.Storage.Passes),
			verdict(v.QuorumPasses), verdict(v.AllPass),
		)
	}
}

func verdict(ok bool) string {
	if ok {
		return "PASS"
	}
	return "FAIL"
}

func limiting(kind string) string {
	if kind == "" {
		return "none"
	}
	return kind
}
