package store_test

import (
	"context"
	"database/sql"

	sq "github.com/Masterminds/squirrel"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/store"
	"github.com/kubev2v/migration-sizer/internal/store/migrations"
)

var _ = Describe("VMStore", func() {
	var (
		ctx context.Context
		s   *store.Store
		db  *sql.DB
	)

	fixture := []models.VM{
		{ID: "vm-1", Name: "web-1", PowerState: "poweredOn", Cluster: "prod", Datacenter: "dc1", CPUs: 4, MemoryMB: 8192, ProvisionedMB: 102400, InUseMB: 51200, DiskCapacityMB: 102400},
		{ID: "vm-2", Name: "web-2", PowerState: "poweredOn", Cluster: "prod", Datacenter: "dc1", CPUs: 2, MemoryMB: 4096, ProvisionedMB: 51200, InUseMB: 20480, DiskCapacityMB: 51200},
		{ID: "vm-3", Name: "db-1", PowerState: "poweredOff", Cluster: "prod", Datacenter: "dc1", CPUs: 8, MemoryMB: 32768, ProvisionedMB: 512000, InUseMB: 256000, DiskCapacityMB: 512000},
		{ID: "vm-4", Name: "tpl-rhel9", PowerState: "poweredOn", Template: true, Cluster: "dev", Datacenter: "dc2", CPUs: 2, MemoryMB: 2048},
		{ID: "vm-5", Name: "build", PowerState: "poweredOn", Cluster: "dev", Datacenter: "dc2", CPUs: 16, MemoryMB: 65536, ProvisionedMB: 204800},
	}

	BeforeEach(func() {
		ctx = context.Background()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		s = store.NewStore(db)
		Expect(s.VM().ReplaceAll(ctx, fixture)).To(Succeed())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Describe("List", func() {
		It("should return every vm sorted by name", func() {
			// Act
			vms, err := s.VM().List(ctx, store.WithDefaultSort())

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(vms).To(HaveLen(5))
			Expect(vms[0].Name).To(Equal("build"))
			Expect(vms[4].Name).To(Equal("web-2"))
		})

		It("should round-trip every column", func() {
			vms, err := s.VM().List(ctx, store.ByIDs("vm-1"))

			Expect(err).NotTo(HaveOccurred())
			Expect(vms).To(ConsistOf(fixture[0]))
		})

		It("should filter by clusters", func() {
			vms, err := s.VM().List(ctx, store.ByClusters("dev"))

			Expect(err).NotTo(HaveOccurred())
			Expect(vms).To(HaveLen(2))
		})

		It("should keep only eligible vms", func() {
			// Given a powered-off vm and a template in the inventory
			// When listing eligible vms
			vms, err := s.VM().List(ctx, store.Eligible(), store.WithDefaultSort())

			// Then both are left out
			Expect(err).NotTo(HaveOccurred())
			names := []string{}
			for _, vm := range vms {
				names = append(names, vm.Name)
			}
			Expect(names).To(Equal([]string{"build", "web-1", "web-2"}))
		})

		It("should apply a scope expression", func() {
			vms, err := s.VM().List(ctx, store.ByScope(sq.GtOrEq{"memory": 8192}))

			Expect(err).NotTo(HaveOccurred())
			Expect(vms).To(HaveLen(3))
		})

		It("should paginate", func() {
			vms, err := s.VM().List(ctx, store.WithDefaultSort(), store.WithLimit(2), store.WithOffset(2))

			Expect(err).NotTo(HaveOccurred())
			Expect(vms).To(HaveLen(2))
			Expect(vms[0].Name).To(Equal("tpl-rhel9"))
		})
	})

	Describe("Count", func() {
		It("should count filtered vms", func() {
			count, err := s.VM().Count(ctx, store.Eligible(), store.ByClusters("prod"))

			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})
	})

	Describe("SetExcluded", func() {
		It("should remove excluded vms from the eligible set", func() {
			// Arrange
			changed, err := s.VM().SetExcluded(ctx, []string{"vm-1", "vm-missing"}, true)
			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeEquivalentTo(1))

			// Act
			count, err := s.VM().Count(ctx, store.Eligible())

			// Assert
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(2))
		})

		It("should restore a vm when unexcluded", func() {
			_, err := s.VM().SetExcluded(ctx, []string{"vm-1"}, true)
			Expect(err).NotTo(HaveOccurred())
			_, err = s.VM().SetExcluded(ctx, []string{"vm-1"}, false)
			Expect(err).NotTo(HaveOccurred())

			count, err := s.VM().Count(ctx, store.Eligible())
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(3))
		})

		It("should be a no-op for an empty id list", func() {
			changed, err := s.VM().SetExcluded(ctx, nil, true)

			Expect(err).NotTo(HaveOccurred())
			Expect(changed).To(BeZero())
		})
	})

	Describe("ReplaceAll", func() {
		It("should replace the previous inventory", func() {
			err := s.VM().ReplaceAll(ctx, []models.VM{{ID: "new", Name: "new", PowerState: "poweredOn", CPUs: 1, MemoryMB: 1024}})
			Expect(err).NotTo(HaveOccurred())

			vms, err := s.VM().List(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(vms).To(HaveLen(1))
			Expect(vms[0].ID).To(Equal("new"))
		})

		It("should roll back on duplicate ids", func() {
			// Given a batch that violates the primary key
			dup := []models.VM{{ID: "x", Name: "a"}, {ID: "x", Name: "b"}}

			// When replacing
			err := s.VM().ReplaceAll(ctx, dup)

			// Then the previous inventory is untouched
			Expect(err).To(HaveOccurred())
			count, err := s.VM().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(Equal(5))
		})

		It("should accept an empty inventory", func() {
			Expect(s.VM().ReplaceAll(ctx, nil)).To(Succeed())

			count, err := s.VM().Count(ctx)
			Expect(err).NotTo(HaveOccurred())
			Expect(count).To(BeZero())
		})
	})
})
