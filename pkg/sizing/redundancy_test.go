package sizing_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

var _ = Describe("ValidateRedundancy", func() {
	var (
		cfg      sizing.SizingConfig
		req      sizing.NodeRequirements
		capacity sizing.CapacityModelResult
	)

	BeforeEach(func() {
		cfg = sizing.DefaultSizingConfig()
		cfg.EvictionThresholdPercent = 80
		cfg.StorageOperationalThresholdPercent = 90
		req = sizing.NodeRequirements{TotalNodes: 9, TotalVCPU: 700, TotalMemoryGB: 3500, TotalStorageGB: 4500}
		capacity = sizing.CapacityModelResult{UsableVCPU: 100, UsableMemoryGB: 1000, UsableStorageGB: 1000}
	})

	// Given a 9 node cluster whose cpu load reaches 100% on 7 survivors
	// When two nodes fail
	// Then quorum holds but the cluster fails the cpu check
	It("should fail on utilization even when quorum holds", func() {
		v := sizing.ValidateRedundancy(req, capacity, 2, cfg)

		Expect(v.SurvivingNodes).To(Equal(7))
		Expect(v.QuorumPasses).To(BeTrue())
		Expect(v.CPU.AfterFailurePercent).To(BeNumerically("~", 100, 1e-9))
		Expect(v.CPU.Passes).To(BeFalse())
		Expect(v.Memory.AfterFailurePercent).To(BeNumerically("~", 50, 1e-9))
		Expect(v.Memory.Passes).To(BeTrue())
		Expect(v.AllPass).To(BeFalse())
	})

	It("should compute healthy utilization over all nodes", func() {
		v := sizing.ValidateRedundancy(req, capacity, 2, cfg)

		Expect(v.CPU.HealthyPercent).To(BeNumerically("~", 700.0/9, 1e-9))
		Expect(v.Storage.HealthyPercent).To(BeNumerically("~", 50, 1e-9))
		Expect(v.CPU.ThresholdPercent).To(Equal(80.0))
		Expect(v.Storage.ThresholdPercent).To(Equal(90.0))
	})

	It("should pass every check when the survivors have headroom", func() {
		req.TotalVCPU = 300

		v := sizing.ValidateRedundancy(req, capacity, 1, cfg)

		Expect(v.SurvivingNodes).To(Equal(8))
		Expect(v.CPU.Passes).To(BeTrue())
		Expect(v.Memory.Passes).To(BeTrue())
		Expect(v.Storage.AfterFailurePercent).To(BeNumerically("~", 56.25, 1e-9))
		Expect(v.Storage.Passes).To(BeTrue())
		Expect(v.AllPass).To(BeTrue())
	})

	It("should use the storage operational threshold for storage", func() {
		req.TotalVCPU = 100
		req.TotalStorageGB = 6500

		v := sizing.ValidateRedundancy(req, capacity, 2, cfg)

		// 6500 / 7 / 1000 = 92.9% > 90%
		Expect(v.Storage.Passes).To(BeFalse())
		Expect(v.AllPass).To(BeFalse())
	})

	Context("surviving nodes", func() {
		DescribeTable("should be max(0, total - failed)",
			func(total, failed, expected int) {
				req.TotalNodes = total

				v := sizing.ValidateRedundancy(req, capacity, failed, cfg)

				Expect(v.SurvivingNodes).To(Equal(expected))
			},
			Entry("no failure", 6, 0, 6),
			Entry("some failures", 6, 2, 4),
			Entry("all nodes lost", 6, 6, 0),
			Entry("more failures than nodes", 6, 9, 0),
			Entry("negative failures clamp to zero", 6, -3, 6),
		)

		// Given every node failed
		// When we validate
		// Then each resource is unsatisfiable and quorum fails without dividing by zero
		It("should short-circuit to an unsatisfiable failure when no node survives", func() {
			v := sizing.ValidateRedundancy(req, capacity, 9, cfg)

			Expect(v.QuorumPasses).To(BeFalse())
			Expect(v.CPU.Unsatisfiable).To(BeTrue())
			Expect(v.CPU.Passes).To(BeFalse())
			Expect(v.Memory.Unsatisfiable).To(BeTrue())
			Expect(v.AllPass).To(BeFalse())
		})

		It("should fail quorum below three survivors", func() {
			req.TotalVCPU = 10
			req.TotalMemoryGB = 10
			req.TotalStorageGB = 10

			v := sizing.ValidateRedundancy(req, capacity, 7, cfg)

			Expect(v.SurvivingNodes).To(Equal(2))
			Expect(v.CPU.Passes).To(BeTrue())
			Expect(v.QuorumPasses).To(BeFalse())
			Expect(v.AllPass).To(BeFalse())
		})
	})

	It("should let a diskless profile pass the storage check", func() {
		capacity.UsableStorageGB = 0
		req.TotalVCPU = 100

		v := sizing.ValidateRedundancy(req, capacity, 1, cfg)

		Expect(v.Storage.AfterFailurePercent).To(BeZero())
		Expect(v.Storage.Passes).To(BeTrue())
		Expect(v.AllPass).To(BeTrue())
	})

	Describe("ValidateFailureSweep", func() {
		It("should return one validation per failure count", func() {
			sweep := sizing.ValidateFailureSweep(req, capacity, 3, cfg)

			Expect(sweep).To(HaveLen(4))
			for i, v := range sweep {
				Expect(v.FailedNodes).To(Equal(i))
				Expect(v.SurvivingNodes).To(Equal(9 - i))
			}
		})
	})

	Describe("MaxToleratedFailures", func() {
		It("should return the last failure count that still passes", func() {
			req.TotalVCPU = 480
			// 480 / 6 = 80 passes, 480 / 5 = 96 fails

			Expect(sizing.MaxToleratedFailures(req, capacity, cfg)).To(Equal(3))
		})

		It("should return -1 when the healthy cluster already fails", func() {
			req.TotalVCPU = 5000

			Expect(sizing.MaxToleratedFailures(req, capacity, cfg)).To(Equal(-1))
		})
	})
})
