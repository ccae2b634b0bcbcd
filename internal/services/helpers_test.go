package services_test

import (
	"bytes"
	"context"
	"database/sql"

	. "github.com/onsi/gomega"

	"github.com/kubev2v/migration-sizer/internal/models"
	"github.com/kubev2v/migration-sizer/internal/store"
	"github.com/kubev2v/migration-sizer/internal/store/migrations"
	"github.com/kubev2v/migration-sizer/test"
)

func newTestStore(ctx context.Context) (*store.Store, *sql.DB) {
	db, err := store.NewDB(":memory:")
	Expect(err).NotTo(HaveOccurred())
	Expect(migrations.Run(ctx, db)).To(Succeed())
	return store.NewStore(db), db
}

// inventoryFixture has three eligible vms in prod, one in dev, one powered
// off and one template.
func inventoryFixture() []models.VM {
	return []models.VM{
		{ID: "vm-1", Name: "web-1", PowerState: "poweredOn", Cluster: "prod", CPUs: 4, MemoryMB: 8192, ProvisionedMB: 102400, InUseMB: 51200, DiskCapacityMB: 102400},
		{ID: "vm-2", Name: "web-2", PowerState: "poweredOn", Cluster: "prod", CPUs: 4, MemoryMB: 8192, ProvisionedMB: 102400, InUseMB: 51200, DiskCapacityMB: 102400},
		{ID: "vm-3", Name: "db-1", PowerState: "poweredOn", Cluster: "prod", CPUs: 16, MemoryMB: 131072, ProvisionedMB: 1048576, InUseMB: 524288, DiskCapacityMB: 1048576},
		{ID: "vm-4", Name: "build", PowerState: "poweredOn", Cluster: "dev", CPUs: 8, MemoryMB: 16384, ProvisionedMB: 204800, InUseMB: 102400, DiskCapacityMB: 204800},
		{ID: "vm-5", Name: "old", PowerState: "poweredOff", Cluster: "prod", CPUs: 32, MemoryMB: 262144, ProvisionedMB: 2097152},
		{ID: "vm-6", Name: "tpl", PowerState: "poweredOn", Template: true, Cluster: "dev", CPUs: 2, MemoryMB: 4096},
	}
}

func rvtoolsWorkbook(vms []models.VM) *bytes.Buffer {
	data, err := test.Workbook(vms)
	Expect(err).NotTo(HaveOccurred())
	return bytes.NewBuffer(data)
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate() {
	c.calls++
}
