package zones

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalogYAML []byte

// Catalog is an ordered set of zones. Detection walks zones in declaration
// order and the first match wins.
type Catalog struct {
	DefaultKey string `yaml:"default"`
	ZoneList   []Zone `yaml:"zones"`
}

// DefaultCatalog returns the built-in PACA / Île-de-France catalog.
func DefaultCatalog() *Catalog {
	c, err := LoadCatalog(bytes.NewReader(defaultCatalogYAML))
	if err != nil {
		panic(fmt.Sprintf("zones: embedded catalog is invalid: %v", err))
	}
	return c
}

// LoadCatalog parses and validates a YAML catalog.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to decode zone catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadCatalogFile reads a catalog from disk.
func LoadCatalogFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zone catalog: %w", err)
	}
	defer f.Close()
	return LoadCatalog(f)
}

// Validate checks identifiers and rejects overlapping department codes or
// bounding boxes, which first-match-wins detection would otherwise hide.
func (c *Catalog) Validate() error {
	if len(c.ZoneList) == 0 {
		return errors.New("zone catalog is empty")
	}

	var errs []error
	keys := make(map[string]bool)
	ids := make(map[string]bool)
	postalOwner := make(map[string]string) // postal prefix -> zone key
	deptOwner := make(map[string]string)   // department code -> zone key

	for i, z := range c.ZoneList {
		if z.Key == "" || z.ID == "" {
			errs = append(errs, fmt.Errorf("zone #%d: key and id are required", i))
			continue
		}
		if keys[z.Key] {
			errs = append(errs, fmt.Errorf("zone %s: duplicate key", z.Key))
		}
		if ids[z.ID] {
			errs = append(errs, fmt.Errorf("zone %s: duplicate id %s", z.Key, z.ID))
		}
		keys[z.Key] = true
		ids[z.ID] = true

		errs = append(errs, claimCodes(z.Key, "postal prefix", z.PostalCodes, postalOwner)...)
		errs = append(errs, claimCodes(z.Key, "department", z.Departments, deptOwner)...)

		if z.Bounds != nil {
			if z.Bounds.MinLat > z.Bounds.MaxLat || z.Bounds.MinLng > z.Bounds.MaxLng {
				errs = append(errs, fmt.Errorf("zone %s: inverted bounding box", z.Key))
			}
			for _, prev := range c.ZoneList[:i] {
				if prev.Bounds != nil && prev.Bounds.Overlaps(*z.Bounds) {
					errs = append(errs, fmt.Errorf("bounding boxes of %s and %s overlap", prev.Key, z.Key))
				}
			}
		}
	}

	if c.DefaultKey == "" {
		errs = append(errs, errors.New("default zone is required"))
	} else if !keys[c.DefaultKey] {
		errs = append(errs, fmt.Errorf("default zone %s is not defined", c.DefaultKey))
	}

	return errors.Join(errs...)
}

// claimCodes records two-character codes for a zone and reports malformed
// codes and codes already owned by another zone.
func claimCodes(key, kind string, codes []string, owner map[string]string) []error {
	var errs []error
	for _, code := range codes {
		if len(code) != 2 {
			errs = append(errs, fmt.Errorf("zone %s: %s %q must have two characters", key, kind, code))
		}
		if prev, ok := owner[code]; ok && prev != key {
			errs = append(errs, fmt.Errorf("%s %s claimed by %s and %s", kind, code, prev, key))
		}
		owner[code] = key
	}
	return errs
}

// Zones returns the zones in declaration order. The records must not be modified.
func (c *Catalog) Zones() []*Zone {
	out := make([]*Zone, len(c.ZoneList))
	for i := range c.ZoneList {
		out[i] = &c.ZoneList[i]
	}
	return out
}

// Default returns the fallback zone.
func (c *Catalog) Default() *Zone {
	return c.Lookup(c.DefaultKey)
}

// Lookup finds a zone by catalog key (PACA, ILE_DE_FRANCE) or by id (IDF).
func (c *Catalog) Lookup(keyOrID string) *Zone {
	for i := range c.ZoneList {
		if c.ZoneList[i].Key == keyOrID {
			return &c.ZoneList[i]
		}
	}
	for i := range c.ZoneList {
		if c.ZoneList[i].ID == keyOrID {
			return &c.ZoneList[i]
		}
	}
	return nil
}
