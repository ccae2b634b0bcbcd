package cmd

import (
	"bytes"
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/migration-sizer/internal/config"
	"github.com/kubev2v/migration-sizer/internal/report"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
	"github.com/kubev2v/migration-sizer/test"
)

// writeInventory writes a minimal RVTools export with four powered on vms
// and one template.
func writeInventory(path string) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "vInfo"
	Expect(f.SetSheetName("Sheet1", sheet)).To(Succeed())
	rows := [][]any{
		{"VM", "Powerstate", "Template", "CPUs", "Memory", "Provisioned MiB", "In Use MiB", "Cluster"},
		{"web-1", "poweredOn", false, 4, 8192, 102400, 51200, "prod"},
		{"web-2", "poweredOn", false, 4, 8192, 102400, 51200, "prod"},
		{"db-1", "poweredOn", false, 16, 131072, 1048576, 524288, "prod"},
		{"build", "poweredOn", false, 8, 16384, 204800, 102400, "dev"},
		{"tpl", "poweredOn", true, 2, 4096, 0, 0, "dev"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		Expect(err).NotTo(HaveOccurred())
		Expect(f.SetSheetRow(sheet, cell, &row)).To(Succeed())
	}

	Expect(f.SaveAs(path)).To(Succeed())
}

var _ = Describe("Size Command", func() {
	var (
		tempDir   string
		inventory string
		out       *bytes.Buffer
	)

	BeforeEach(func() {
		tempDir = GinkgoT().TempDir()
		inventory = filepath.Join(tempDir, "rvtools.xlsx")
		writeInventory(inventory)
		out = &bytes.Buffer{}
	})

	execute := func(args ...string) error {
		root := NewRootCommand()
		root.SetOut(out)
		root.SetErr(out)
		root.SetArgs(args)
		return root.Execute()
	}

	It("should print the sizing of a profile", func() {
		// When sizing the inventory against a built-in profile
		err := execute("size", "--inventory", inventory, "--profile", "m5.metal", "--log-level", "error")

		// Then the table names the profile, the eligible vms and the verdicts
		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(ContainSubstring("m5.metal"))
		Expect(out.String()).To(MatchRegexp(`VMs\s+4`))
		Expect(out.String()).To(ContainSubstring("Total nodes"))
		Expect(out.String()).To(ContainSubstring("Max tolerated failures"))
		Expect(out.String()).To(MatchRegexp(`PASS|FAIL`))
	})

	It("should narrow the demand with a scope", func() {
		err := execute("size", "--inventory", inventory, "--profile", "m5.metal", "--scope", "cluster = 'prod'", "--log-level", "error")

		Expect(err).NotTo(HaveOccurred())
		Expect(out.String()).To(MatchRegexp(`VMs\s+3`))
	})

	It("should write a report workbook", func() {
		path := filepath.Join(tempDir, "report.xlsx")

		err := execute("size", "--inventory", inventory, "--profile", "m5.metal", "--report", path, "--log-level", "error")
		Expect(err).NotTo(HaveOccurred())

		f, err := excelize.OpenFile(path)
		Expect(err).NotTo(HaveOccurred())
		defer func() { _ = f.Close() }()
		Expect(f.GetSheetList()).To(ContainElements(report.SummarySheet, report.CapacitySheet, report.RedundancySheet))
	})

	It("should fail on an unknown profile", func() {
		err := execute("size", "--inventory", inventory, "--profile", "nope", "--log-level", "error")

		Expect(err).To(MatchError(ContainSubstring("nope")))
	})

	It("should fail on an invalid sizing config", func() {
		err := execute("size", "--inventory", inventory, "--profile", "m5.metal", "--replication-factor", "0", "--log-level", "error")

		Expect(err).To(MatchError(ContainSubstring("ReplicationFactor")))
	})

	It("should require the inventory flag", func() {
		err := execute("size", "--profile", "m5.metal")

		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("Profiles Command", func() {
	It("should list the built-in profiles", func() {
		out := &bytes.Buffer{}
		root := NewRootCommand()
		root.SetOut(out)
		root.SetArgs([]string{"profiles", "--log-level", "error"})

		Expect(root.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("m5.metal"))
		Expect(out.String()).To(ContainSubstring("i3.metal"))
		Expect(out.String()).To(ContainSubstring("8 x 1769 GB"))
	})
})

var _ = Describe("Import Command", func() {
	It("should import into the configured store", func() {
		tempDir := GinkgoT().TempDir()
		inventory := filepath.Join(tempDir, "rvtools.xlsx")
		data, err := test.Workbook(test.VMs)
		Expect(err).NotTo(HaveOccurred())
		Expect(os.WriteFile(inventory, data, 0o600)).To(Succeed())
		dbPath := filepath.Join(tempDir, "sizer.duckdb")

		out := &bytes.Buffer{}
		root := NewRootCommand()
		root.SetOut(out)
		root.SetArgs([]string{"import", inventory, "--store-path", dbPath, "--log-level", "error"})

		Expect(root.Execute()).To(Succeed())
		Expect(out.String()).To(ContainSubstring("imported 11 vms from rvtools.xlsx"))

		_, err = os.Stat(dbPath)
		Expect(err).NotTo(HaveOccurred())
	})
})

var _ = Describe("Logger", func() {
	It("should reject an unknown level", func() {
		Expect(setupLogger(configLog("loud", "console"))).To(MatchError(ContainSubstring("invalid log-level")))
	})

	It("should reject an unknown format", func() {
		Expect(setupLogger(configLog("info", "xml"))).To(MatchError(ContainSubstring("invalid log-format")))
	})

	It("should build a json logger", func() {
		Expect(setupLogger(configLog("debug", "json"))).To(Succeed())
	})
})

var _ = Describe("storageMetricValue", func() {
	It("should parse known metrics", func() {
		var m sizing.StorageMetric
		v := storageMetricValue{m: &m}

		Expect(v.Set("diskCapacity")).To(Succeed())
		Expect(m).To(Equal(sizing.StorageMetricDiskCapacity))
		Expect(v.String()).To(Equal("diskCapacity"))
		Expect(v.Type()).To(Equal("storageMetric"))
	})
})

func configLog(level, format string) config.Log {
	return config.Log{Level: level, Format: format}
}
