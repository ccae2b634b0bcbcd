package test

import (
	"bytes"
	"context"
	"database/sql"

	"github.com/xuri/excelize/v2"

	"github.com/kubev2v/migration-sizer/internal/models"
)

// VMs is a small estate over three clusters. Seven of the eleven vms are
// eligible for sizing.
var VMs = []models.VM{
	{ID: "vm-001", Name: "web-server-1", PowerState: "poweredOn", Cluster: "production", Datacenter: "DC1", CPUs: 2, MemoryMB: 4096, ProvisionedMB: 102400, InUseMB: 51200, DiskCapacityMB: 102400},
	{ID: "vm-002", Name: "web-server-2", PowerState: "poweredOn", Cluster: "production", Datacenter: "DC1", CPUs: 2, MemoryMB: 4096, ProvisionedMB: 102400, InUseMB: 56320, DiskCapacityMB: 102400},
	{ID: "vm-003", Name: "db-server-1", PowerState: "poweredOn", Cluster: "production", Datacenter: "DC1", CPUs: 8, MemoryMB: 16384, ProvisionedMB: 1024000, InUseMB: 819200, DiskCapacityMB: 1024000},
	{ID: "vm-004", Name: "db-server-2", PowerState: "poweredOff", Cluster: "production", Datacenter: "DC1", CPUs: 8, MemoryMB: 16384, ProvisionedMB: 1024000, InUseMB: 768000, DiskCapacityMB: 1024000},
	{ID: "vm-005", Name: "app-server-1", PowerState: "poweredOn", Cluster: "staging", Datacenter: "DC1", CPUs: 4, MemoryMB: 8192, ProvisionedMB: 204800, InUseMB: 122880, DiskCapacityMB: 204800},
	{ID: "vm-006", Name: "app-server-2", PowerState: "poweredOn", Cluster: "staging", Datacenter: "DC1", CPUs: 4, MemoryMB: 8192, ProvisionedMB: 204800, InUseMB: 117760, DiskCapacityMB: 204800},
	{ID: "vm-007", Name: "cache-server-1", PowerState: "suspended", Cluster: "staging", Datacenter: "DC1", CPUs: 2, MemoryMB: 2048, ProvisionedMB: 51200, InUseMB: 30720, DiskCapacityMB: 51200},
	{ID: "vm-008", Name: "dev-server-1", PowerState: "poweredOn", Cluster: "development", Datacenter: "DC2", CPUs: 2, MemoryMB: 4096, ProvisionedMB: 153600, InUseMB: 81920, DiskCapacityMB: 153600},
	{ID: "vm-009", Name: "dev-server-2", PowerState: "poweredOff", Cluster: "development", Datacenter: "DC2", CPUs: 2, MemoryMB: 4096, ProvisionedMB: 153600, InUseMB: 76800, DiskCapacityMB: 153600},
	{ID: "vm-010", Name: "test-server-1", PowerState: "poweredOn", Template: true, Cluster: "development", Datacenter: "DC2", CPUs: 1, MemoryMB: 2048, ProvisionedMB: 81920, InUseMB: 20480, DiskCapacityMB: 81920},
	{ID: "vm-011", Name: "ci-runner-1", PowerState: "poweredOn", Cluster: "development", Datacenter: "DC2", CPUs: 4, MemoryMB: 8192, ProvisionedMB: 102400, InUseMB: 40960, DiskCapacityMB: 102400},
}

// InsertVMs inserts all test VM data into the database.
func InsertVMs(ctx context.Context, db *sql.DB) error {
	for _, vm := range VMs {
		_, err := db.ExecContext(ctx, `
			INSERT INTO vms (
				id, name, power_state, template, excluded, cluster, datacenter,
				cpus, memory, provisioned, in_use, disk_capacity
			) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		`, vm.ID, vm.Name, vm.PowerState, vm.Template, vm.Excluded, vm.Cluster, vm.Datacenter,
			vm.CPUs, vm.MemoryMB, vm.ProvisionedMB, vm.InUseMB, vm.DiskCapacityMB)
		if err != nil {
			return err
		}
	}

	return nil
}

// Workbook renders vms as the vInfo sheet of an RVTools export.
func Workbook(vms []models.VM) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "vInfo"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	header := []any{"VM", "VM ID", "Powerstate", "Template", "CPUs", "Memory", "Provisioned MiB", "In Use MiB", "Total disk capacity MiB", "Cluster", "Datacenter"}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return nil, err
	}

	for i, vm := range vms {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{vm.Name, vm.ID, vm.PowerState, vm.Template, vm.CPUs, vm.MemoryMB, vm.ProvisionedMB, vm.InUseMB, vm.DiskCapacityMB, vm.Cluster, vm.Datacenter}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
