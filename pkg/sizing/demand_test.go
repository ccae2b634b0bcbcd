package sizing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

var _ = Describe("AggregateDemand", func() {
	var vms []sizing.VM

	BeforeEach(func() {
		vms = []sizing.VM{
			{ID: "vm-001", CPUs: 2, MemoryMB: 4096, ProvisionedMB: 102400, InUseMB: 51200, DiskCapacityMB: 81920},
			{ID: "vm-002", CPUs: 8, MemoryMB: 16384, ProvisionedMB: 1048576, InUseMB: 819200, DiskCapacityMB: 1024000},
			{ID: "vm-003", CPUs: 4, MemoryMB: 8192, ProvisionedMB: 204800, InUseMB: 122880, DiskCapacityMB: 204800},
		}
	})

	It("should sum vcpu and memory and count vms", func() {
		demand := sizing.AggregateDemand(vms, sizing.StorageMetricProvisioned)

		Expect(demand.TotalVCPU).To(Equal(14))
		Expect(demand.TotalMemoryGB).To(Equal(28.0))
		Expect(demand.VMCount).To(Equal(3))
	})

	DescribeTable("should use the selected storage metric",
		func(metric sizing.StorageMetric, expectedGB float64) {
			demand := sizing.AggregateDemand(vms, metric)

			Expect(demand.StorageMetric).To(Equal(metric))
			Expect(demand.TotalStorageGB).To(Equal(expectedGB))
		},
		Entry("provisioned", sizing.StorageMetricProvisioned, 1324.0),
		Entry("in use", sizing.StorageMetricInUse, 970.0),
		Entry("disk capacity", sizing.StorageMetricDiskCapacity, 1280.0),
	)

	It("should fall back to provisioned storage for an unknown metric", func() {
		demand := sizing.AggregateDemand(vms, sizing.StorageMetric("thin"))

		Expect(demand.StorageMetric).To(Equal(sizing.StorageMetricProvisioned))
		Expect(demand.TotalStorageGB).To(Equal(1324.0))
	})

	It("should clamp negative values and still count the vm", func() {
		demand := sizing.AggregateDemand([]sizing.VM{{CPUs: -4, MemoryMB: -1024, ProvisionedMB: -10}}, sizing.StorageMetricProvisioned)

		Expect(demand.TotalVCPU).To(BeZero())
		Expect(demand.TotalMemoryGB).To(BeZero())
		Expect(demand.TotalStorageGB).To(BeZero())
		Expect(demand.VMCount).To(Equal(1))
	})

	It("should return an empty demand for no vms", func() {
		demand := sizing.AggregateDemand(nil, sizing.StorageMetricInUse)

		Expect(demand).To(Equal(sizing.ResourceDemand{StorageMetric: sizing.StorageMetricInUse}))
	})
})

var _ = Describe("ParseStorageMetric", func() {
	It("should accept the three metrics", func() {
		for _, s := range []string{"provisioned", "inUse", "diskCapacity"} {
			m, err := sizing.ParseStorageMetric(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(m)).To(Equal(s))
		}
	})

	It("should reject anything else", func() {
		_, err := sizing.ParseStorageMetric("used")
		Expect(err).To(HaveOccurred())
	})
})
