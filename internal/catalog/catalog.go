package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"k8s.io/apimachinery/pkg/api/resource"

	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
	"github.com/kubev2v/migration-sizer/pkg/sizing"
)

//go:embed profiles.yaml
var builtin []byte

const gib = 1 << 30

type document struct {
	Profiles []entry `yaml:"profiles" validate:"dive"`
}

type entry struct {
	Name                string `yaml:"name" validate:"required"`
	PhysicalCores       int    `yaml:"physicalCores" validate:"gte=1"`
	Threads             int    `yaml:"threads" validate:"gte=0"`
	Memory              string `yaml:"memory" validate:"required"`
	FlashDevices        int    `yaml:"flashDevices" validate:"gte=0"`
	FlashDeviceCapacity string `yaml:"flashDeviceCapacity"`
	BareMetal           bool   `yaml:"bareMetal"`
	HostedControlPlane  bool   `yaml:"hostedControlPlane"`
}

func (e entry) profile() (sizing.NodeProfile, error) {
	memory, err := toGiB(e.Memory)
	if err != nil {
		return sizing.NodeProfile{}, fmt.Errorf("profile %q: memory: %w", e.Name, err)
	}

	var flash float64
	if e.FlashDeviceCapacity != "" {
		flash, err = toGiB(e.FlashDeviceCapacity)
		if err != nil {
			return sizing.NodeProfile{}, fmt.Errorf("profile %q: flashDeviceCapacity: %w", e.Name, err)
		}
	}

	threads := e.Threads
	if threads == 0 {
		threads = e.PhysicalCores
	}

	return sizing.NodeProfile{
		Name:                       e.Name,
		PhysicalCores:              e.PhysicalCores,
		Threads:                    threads,
		MemoryGB:                   memory,
		FlashDeviceCount:           e.FlashDevices,
		FlashDeviceCapacityGB:      flash,
		SupportsBareMetal:          e.BareMetal,
		SupportsHostedControlPlane: e.HostedControlPlane,
	}, nil
}

func toGiB(s string) (float64, error) {
	q, err := resource.ParseQuantity(s)
	if err != nil {
		return 0, err
	}
	if q.Sign() < 0 {
		return 0, fmt.Errorf("negative quantity %q", s)
	}
	return q.AsApproximateFloat64() / gib, nil
}

// Catalog is an immutable, ordered set of node profiles.
type Catalog struct {
	profiles []sizing.NodeProfile
	index    map[string]int
}

// New builds a catalog. Later profiles replace earlier ones with the same
// name, keeping the original position.
func New(profiles ...sizing.NodeProfile) *Catalog {
	c := &Catalog{index: make(map[string]int)}
	for _, p := range profiles {
		if i, ok := c.index[p.Name]; ok {
			c.profiles[i] = p
			continue
		}
		c.index[p.Name] = len(c.profiles)
		c.profiles = append(c.profiles, p)
	}
	return c
}

// Default returns the built-in profiles.
func Default() *Catalog {
	profiles, err := Read(bytes.NewReader(builtin))
	if err != nil {
		panic(fmt.Sprintf("built-in profiles: %s", err))
	}
	return New(profiles...)
}

// Load returns the built-in profiles extended by the ones in path. An empty
// path yields the built-ins only.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening catalog file: %w", err)
	}
	defer f.Close()

	extra, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file %s: %w", path, err)
	}

	zap.S().Named("catalog").Infow("loaded catalog file", "path", path, "profiles", len(extra))

	return New(append(c.profiles, extra...)...), nil
}

// Read decodes a YAML profile document.
func Read(r io.Reader) ([]sizing.NodeProfile, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && err != io.EOF {
		return nil, err
	}

	if err := validator.New().Struct(doc); err != nil {
		return nil, err
	}

	profiles := make([]sizing.NodeProfile, 0, len(doc.Profiles))
	for _, e := range doc.Profiles {
		p, err := e.profile()
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, nil
}

// Get looks up a profile by name.
func (c *Catalog) Get(name string) (sizing.NodeProfile, error) {
	i, ok := c.index[name]
	if !ok {
		return sizing.NodeProfile{}, srvErrors.NewProfileNotFoundError(name)
	}
	return c.profiles[i], nil
}

// List returns the profiles in catalog order.
func (c *Catalog) List() []sizing.NodeProfile {
	return slices.Clone(c.profiles)
}

func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.profiles))
	for _, p := range c.profiles {
		names = append(names, p.Name)
	}
	return names
}
