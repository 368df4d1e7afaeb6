// Package divisions is the catalog of Sri Lankan districts with their
// Divisional Secretariat (DS) and Grama Niladhari (GN) divisions.
package divisions

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/agnivade/levenshtein"
)

//go:embed districts.toml
var districtsTOML string

// MaxDistance is the largest edit distance accepted when matching a
// misspelled district name.
const MaxDistance = 2

type DSDivision struct {
	Name string   `toml:"name"`
	GN   []string `toml:"gn"`
}

type District struct {
	Name string       `toml:"name"`
	DS   []DSDivision `toml:"ds"`
}

type Catalog struct {
	districts []District
	byName    map[string]int
}

type rawCatalog struct {
	District []District `toml:"district"`
}

// Parse decodes a catalog from TOML.
func Parse(data string) (*Catalog, error) {
	var raw rawCatalog
	if _, err := toml.Decode(data, &raw); err != nil {
		return nil, fmt.Errorf("decode divisions: %w", err)
	}

	c := &Catalog{
		districts: raw.District,
		byName:    make(map[string]int, len(raw.District)),
	}
	for i, d := range raw.District {
		name := strings.TrimSpace(d.Name)
		if name == "" {
			return nil, fmt.Errorf("district %d has no name", i)
		}
		key := strings.ToLower(name)
		if _, dup := c.byName[key]; dup {
			return nil, fmt.Errorf("duplicate district %q", name)
		}
		c.byName[key] = i
	}

	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the embedded catalog.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(districtsTOML)
	})
	return defaultCatalog, defaultErr
}

func (c *Catalog) DistrictNames() []string {
	names := make([]string, len(c.districts))
	for i, d := range c.districts {
		names[i] = d.Name
	}
	return names
}

func (c *Catalog) district(name string) (District, bool) {
	i, ok := c.byName[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return District{}, false
	}
	return c.districts[i], true
}

// Divisions lists the DS divisions of a district. Unknown districts and
// districts without listed divisions return nil.
func (c *Catalog) Divisions(district string) []string {
	d, ok := c.district(district)
	if !ok {
		return nil
	}
	names := make([]string, len(d.DS))
	for i, ds := range d.DS {
		names[i] = ds.Name
	}
	return names
}

func (c *Catalog) GNDivisions(district, ds string) []string {
	d, ok := c.district(district)
	if !ok {
		return nil
	}
	for _, div := range d.DS {
		if strings.EqualFold(div.Name, strings.TrimSpace(ds)) {
			return append([]string(nil), div.GN...)
		}
	}
	return nil
}

// Canonical maps a free-text district name onto the catalog spelling. An
// exact case-insensitive match wins; otherwise the single closest district
// within MaxDistance is used. Ties and distant names are not matched.
func (c *Catalog) Canonical(name string) (string, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if d, ok := c.district(name); ok {
		return d.Name, true
	}

	lower := strings.ToLower(name)
	best, bestDist, tied := -1, MaxDistance+1, false
	for i, d := range c.districts {
		dist := levenshtein.ComputeDistance(lower, strings.ToLower(d.Name))
		switch {
		case dist < bestDist:
			best, bestDist, tied = i, dist, false
		case dist == bestDist:
			tied = true
		}
	}
	if best < 0 || tied {
		return "", false
	}
	return c.districts[best].Name, true
}
