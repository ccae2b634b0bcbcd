package rvtools

import (
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/kubev2v/migration-sizer/internal/models"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

const VInfoSheet = "vInfo"

type column int

const (
	colName column = iota
	colID
	colPowerState
	colTemplate
	colCPUs
	colMemory
	colProvisioned
	colInUse
	colDiskCapacity
	colCluster
	colDatacenter
)

// headers lists the accepted header names per column. Older exports use MB
// where newer ones use MiB.
var headers = map[column][]string{
	colName:         {"VM"},
	colID:           {"VM ID"},
	colPowerState:   {"Powerstate", "Power State"},
	colTemplate:     {"Template"},
	colCPUs:         {"CPUs"},
	colMemory:       {"Memory"},
	colProvisioned:  {"Provisioned MiB", "Provisioned MB"},
	colInUse:        {"In Use MiB", "In Use MB"},
	colDiskCapacity: {"Total disk capacity MiB", "Total disk capacity MB"},
	colCluster:      {"Cluster"},
	colDatacenter:   {"Datacenter"},
}

var required = []column{colName, colCPUs, colMemory}

// ReadVInfo reads the vInfo sheet of an RVTools export.
func ReadVInfo(r io.Reader) ([]models.VM, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, srvErrors.NewInventoryImportError("reading workbook: %s", err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheet := ""
	for _, name := range f.GetSheetList() {
		if strings.EqualFold(name, VInfoSheet) {
			sheet = name
			break
		}
	}
	if sheet == "" {
		return nil, srvErrors.NewInventoryImportError("sheet %q not found", VInfoSheet)
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, srvErrors.NewInventoryImportError("reading sheet %q: %s", sheet, err)
	}
	if len(rows) == 0 {
		return nil, srvErrors.NewInventoryImportError("sheet %q is empty", sheet)
	}

	index := indexHeaders(rows[0])
	for _, c := range required {
		if _, ok := index[c]; !ok {
			return nil, srvErrors.NewInventoryImportError("missing required column %q", headers[c][0])
		}
	}

	logger := zap.S().Named("rvtools")

	seen := make(map[string]int)
	vms := make([]models.VM, 0, len(rows)-1)
	for i, row := range rows[1:] {
		line := i + 2
		rr := rowReader{row: row, index: index, line: line}

		vm := models.VM{
			Name:       rr.text(colName),
			ID:         rr.text(colID),
			PowerState: rr.text(colPowerState),
			Cluster:    rr.text(colCluster),
			Datacenter: rr.text(colDatacenter),
		}
		if vm.Name == "" {
			continue
		}
		if vm.ID == "" {
			vm.ID = vm.Name
		}
		if _, ok := index[colPowerState]; !ok {
			vm.PowerState = models.PowerStatePoweredOn
		}

		vm.Template = rr.boolean(colTemplate)
		vm.CPUs = int(rr.number(colCPUs))
		vm.MemoryMB = rr.number(colMemory)
		vm.ProvisionedMB = rr.number(colProvisioned)
		vm.InUseMB = rr.number(colInUse)
		if _, ok := index[colDiskCapacity]; ok {
			vm.DiskCapacityMB = rr.number(colDiskCapacity)
		} else {
			vm.DiskCapacityMB = vm.ProvisionedMB
		}
		if rr.err != nil {
			return nil, rr.err
		}

		if prev, ok := seen[vm.ID]; ok {
			return nil, srvErrors.NewInventoryImportError("duplicate vm id %q at rows %d and %d", vm.ID, prev, line)
		}
		seen[vm.ID] = line

		vms = append(vms, vm)
	}

	logger.Debugw("read vInfo", "sheet", sheet, "rows", len(rows)-1, "vms", len(vms))

	return vms, nil
}

func indexHeaders(header []string) map[column]int {
	index := make(map[column]int)
	for i, h := range header {
		h = strings.TrimSpace(h)
		for c, names := range headers {
			if _, ok := index[c]; ok {
				continue
			}
			for _, name := range names {
				if strings.EqualFold(h, name) {
					index[c] = i
				}
			}
		}
	}
	return index
}

// rowReader extracts typed cells from a row and keeps the first error.
type rowReader struct {
	row   []string
	index map[column]int
	line  int
	err   error
}

func (r *rowReader) text(c column) string {
	i, ok := r.index[c]
	if !ok || i >= len(r.row) {
		return ""
	}
	return strings.TrimSpace(r.row[i])
}

func (r *rowReader) number(c column) int64 {
	s := strings.ReplaceAll(r.text(c), ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		r.fail(c, s)
		return 0
	}
	return int64(math.Round(v))
}

func (r *rowReader) boolean(c column) bool {
	s := r.text(c)
	if s == "" {
		return false
	}
	v, err := strconv.ParseBool(strings.ToLower(s))
	if err != nil {
		r.fail(c, s)
		return false
	}
	return v
}

func (r *rowReader) fail(c column, value string) {
	if r.err == nil {
		r.err = srvErrors.NewInventoryImportError("row %d: invalid %s value %q", r.line, headers[c][0], value)
	}
}
