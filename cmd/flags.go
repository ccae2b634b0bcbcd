package cmd

import (
	"github.com/spf13/pflag"

	"github.com/kubev2v/migration-sizer/internal/config"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

// storageMetricValue adapts sizing.StorageMetric to pflag.Value.
type storageMetricValue struct {
	m *sizing.StorageMetric
}

func (v storageMetricValue) String() string {
	if v.m == nil {
		return ""
	}
	return string(*v.m)
}

func (v storageMetricValue) Set(s string) error {
	m, err := sizing.ParseStorageMetric(s)
	if err != nil {
		return err
	}
	*v.m = m
	return nil
}

func (v storageMetricValue) Type() string {
	return "storageMetric"
}

func registerServerFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.IntVar(&cfg.Server.HTTPPort, "server-http-port", cfg.Server.HTTPPort, "Port on which the HTTP server listens")
	fs.StringVar(&cfg.Server.ServerMode, "server-mode", cfg.Server.ServerMode, "Server mode (dev, prod). prod serves statics over TLS")
	fs.StringVar(&cfg.Server.StaticsFolder, "server-statics-folder", cfg.Server.StaticsFolder, "Folder with the UI statics served in prod mode")
	fs.StringVar(&cfg.Server.TLSCertFile, "server-tls-cert-file", cfg.Server.TLSCertFile, "TLS certificate file. A self-signed certificate is used when empty")
	fs.StringVar(&cfg.Server.TLSKeyFile, "server-tls-key-file", cfg.Server.TLSKeyFile, "TLS private key file")
	fs.BoolVar(&cfg.Auth.Enabled, "authentication-enabled", cfg.Auth.Enabled, "Require a JWT bearer token on API calls")
	fs.StringVar(&cfg.Auth.JWTFilePath, "authentication-jwt-filepath", cfg.Auth.JWTFilePath, "PEM encoded RSA public key verifying JWT tokens")
	fs.IntVar(&cfg.Workers, "workers", cfg.Workers, "Number of profiles sized concurrently on compare")
}

func registerStoreFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Store.Path, "store-path", cfg.Store.Path, "DuckDB database file (:memory: for an ephemeral store)")
}

func registerCatalogFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	fs.StringVar(&cfg.Catalog.FilePath, "catalog-file", cfg.Catalog.FilePath, "YAML file with extra node profiles")
}

func registerSizingFlags(fs *pflag.FlagSet, cfg *config.Configuration) {
	s := &cfg.Sizing
	fs.Float64Var(&s.CPUOvercommitRatio, "cpu-overcommit-ratio", s.CPUOvercommitRatio, "vCPU per effective physical core")
	fs.Float64Var(&s.MemoryOvercommitRatio, "memory-overcommit-ratio", s.MemoryOvercommitRatio, "Memory overcommit ratio")
	fs.BoolVar(&s.HyperthreadingEnabled, "hyperthreading-enabled", s.HyperthreadingEnabled, "Count hyperthreads when computing effective cores")
	fs.Float64Var(&s.HyperthreadingMultiplier, "hyperthreading-multiplier", s.HyperthreadingMultiplier, "Effective cores per physical core with hyperthreading")
	fs.IntVar(&s.ReplicationFactor, "replication-factor", s.ReplicationFactor, "Storage replication factor")
	fs.Float64Var(&s.OperationalCapacityFraction, "operational-capacity-fraction", s.OperationalCapacityFraction, "Usable fraction of raw storage after replication")
	fs.Float64Var(&s.StorageOverheadFraction, "storage-overhead-fraction", s.StorageOverheadFraction, "Storage metadata overhead fraction")
	fs.Float64Var(&s.CPUFixedOverheadPerVM, "cpu-fixed-overhead-per-vm", s.CPUFixedOverheadPerVM, "vCPU added per VM")
	fs.Float64Var(&s.CPUProportionalOverheadPct, "cpu-proportional-overhead", s.CPUProportionalOverheadPct, "Fraction of vCPU demand added as overhead")
	fs.Float64Var(&s.MemoryFixedOverheadPerVM, "memory-fixed-overhead-per-vm", s.MemoryFixedOverheadPerVM, "GB of memory added per VM")
	fs.Float64Var(&s.MemoryProportionalOverheadPct, "memory-proportional-overhead", s.MemoryProportionalOverheadPct, "Fraction of memory demand added as overhead")
	fs.Float64Var(&s.AnnualGrowthRatePercent, "annual-growth-rate", s.AnnualGrowthRatePercent, "Yearly storage growth in percent")
	fs.IntVar(&s.PlanningHorizonYears, "planning-horizon-years", s.PlanningHorizonYears, "Years of storage growth to plan for")
	fs.Float64Var(&s.VirtualizationStorageOverheadPercent, "virtualization-storage-overhead", s.VirtualizationStorageOverheadPercent, "Storage overhead of virtualization in percent")
	fs.IntVar(&s.NodeRedundancyBuffer, "node-redundancy-buffer", s.NodeRedundancyBuffer, "Spare nodes added on top of the requirement")
	fs.Float64Var(&s.EvictionThresholdPercent, "eviction-threshold", s.EvictionThresholdPercent, "Max CPU and memory utilization in percent")
	fs.Float64Var(&s.StorageOperationalThresholdPercent, "storage-threshold", s.StorageOperationalThresholdPercent, "Max storage utilization in percent")
	fs.Var(storageMetricValue{m: &s.StorageMetric}, "storage-metric", "Per-VM storage figure (provisioned, inUse, diskCapacity)")
}
