package conveyor

import (
	_ "embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed materials.yaml
var defaultMaterialsYAML []byte

// Material is one bulk material entry from the catalog.
type Material struct {
	Name    string  `yaml:"name" json:"name"`
	Density float64 `yaml:"density" json:"density"` // kg/m³
}

// Catalog maps material names to handling densities.
type Catalog struct {
	byName map[string]Material
}

type catalogFile struct {
	Materials []Material `yaml:"materials"`
}

// ParseCatalog reads a YAML material catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing material catalog: %w", err)
	}
	if len(file.Materials) == 0 {
		return nil, fmt.Errorf("material catalog is empty")
	}
	c := &Catalog{byName: make(map[string]Material, len(file.Materials))}
	for _, m := range file.Materials {
		if m.Name == "" || m.Density <= 0 {
			return nil, fmt.Errorf("invalid material entry %q (density %v)", m.Name, m.Density)
		}
		c.byName[strings.ToLower(m.Name)] = m
	}
	return c, nil
}

// DefaultCatalog returns the embedded catalog. The embedded file is
// validated at startup, so a parse failure here is a build defect.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultMaterialsYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded material catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog reads a site-specific catalog from path, falling back to
// the embedded one when no override file exists.
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return DefaultCatalog(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading material catalog: %w", err)
	}
	return ParseCatalog(data)
}

// Density looks up a material by case-insensitive name.
func (c *Catalog) Density(name string) (float64, error) {
	m, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown material %q", name)
	}
	return m.Density, nil
}

// List returns the catalog entries sorted by name for the material
// selector.
func (c *Catalog) List() []Material {
	out := make([]Material, 0, len(c.byName))
	for _, m := range c.byName {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
