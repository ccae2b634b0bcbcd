package report_test

import (
	"bytes"
	"strconv"
	"time"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/report"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

func scenarioFixture() models.Scenario {
	cfg := sizing.DefaultSizingConfig()
	profile := sizing.NodeProfile{Name: "m5d.metal", PhysicalCores: 48, Threads: 96, MemoryGB: 384, FlashDeviceCount: 4, FlashDeviceCapacityGB: 838}
	demand := sizing.ResourceDemand{TotalVCPU: 400, TotalMemoryGB: 1600, TotalStorageGB: 6000, VMCount: 120, StorageMetric: sizing.StorageMetricProvisioned}

	capacity, req, err := sizing.ComputeSizing(demand, &profile, cfg)
	Expect(err).NotTo(HaveOccurred())

	return models.Scenario{
		ID:        uuid.MustParse("7d444840-9dc0-11d1-b245-5ffdce74fad2"),
		CreatedAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Scope:     "cluster = 'prod'",
		Config:    cfg,
		Result: models.SizingResult{
			Profile:              profile,
			Demand:               demand,
			Capacity:             *capacity,
			Requirements:         *req,
			Validation:           sizing.ValidateRedundancy(*req, *capacity, 1, cfg),
			Sweep:                sizing.ValidateFailureSweep(*req, *capacity, 2, cfg),
			MaxToleratedFailures: sizing.MaxToleratedFailures(*req, *capacity, cfg),
			Summary:              req.Summary(),
		},
	}
}

var _ = Describe("Report", func() {
	var (
		scenario models.Scenario
		f        *excelize.File
	)

	BeforeEach(func() {
		scenario = scenarioFixture()

		var buf bytes.Buffer
		Expect(report.Write(&buf, scenario)).To(Succeed())

		var err error
		f, err = excelize.OpenReader(&buf)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		f.Close()
	})

	It("should contain the three sheets", func() {
		Expect(f.GetSheetList()).To(Equal([]string{report.SummarySheet, report.CapacitySheet, report.RedundancySheet}))
	})

	It("should summarize the decision", func() {
		rows, err := f.GetRows(report.SummarySheet)
		Expect(err).NotTo(HaveOccurred())

		values := map[string]string{}
		for _, row := range rows[1:] {
			if len(row) > 1 {
				values[row[0]] = row[1]
			}
		}
		Expect(values["Scenario"]).To(Equal(scenario.ID.String()))
		Expect(values["Profile"]).To(Equal("m5d.metal"))
		Expect(values["VMs"]).To(Equal("120"))
		Expect(values["Total nodes"]).To(Equal(itoa(scenario.Result.Requirements.TotalNodes)))
		Expect(values["Limiting factor"]).To(Equal(string(scenario.Result.Requirements.LimitingFactor)))
		Expect(values["Summary"]).To(Equal(scenario.Result.Summary))
	})

	It("should list the per-node capacity", func() {
		rows, err := f.GetRows(report.CapacitySheet)
		Expect(err).NotTo(HaveOccurred())

		Expect(rows[0]).To(Equal([]string{"Per node", "Value"}))
		Expect(rows).To(ContainElement([]string{"Usable vCPU", itoa(scenario.Result.Capacity.UsableVCPU)}))
	})

	It("should write one redundancy row per failure count", func() {
		rows, err := f.GetRows(report.RedundancySheet)
		Expect(err).NotTo(HaveOccurred())

		Expect(rows).To(HaveLen(len(scenario.Result.Sweep) + 1))
		Expect(rows[1][0]).To(Equal("0"))
		Expect(rows[1][len(rows[1])-1]).To(BeElementOf("PASS", "FAIL"))
	})
})

func itoa(n int) string {
	return strconv.Itoa(n)
}
