package zones

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var postalCodePattern = regexp.MustCompile(`^\d{5}$`)

// DetectZoneFromPostalCode matches the first two characters of the code
// against each zone's department prefixes.
func (c *Catalog) DetectZoneFromPostalCode(postalCode string) *Zone {
	code := strings.TrimSpace(postalCode)
	if len(code) < 2 {
		return nil
	}
	prefix := code[:2]

	for i := range c.ZoneList {
		if c.ZoneList[i].hasPostalPrefix(prefix) {
			return &c.ZoneList[i]
		}
	}
	return nil
}

// DetectZoneFromCity matches when the input contains a zone city or a zone
// city contains the input. Comparison ignores case and also strips accents,
// so "Frejus" matches "Fréjus"; this is wider than a plain case-insensitive
// substring test.
func (c *Catalog) DetectZoneFromCity(city string) *Zone {
	needle := normalizeCity(city)
	if needle == "" {
		return nil
	}

	for i := range c.ZoneList {
		for _, zoneCity := range c.ZoneList[i].Cities {
			candidate := normalizeCity(zoneCity)
			if strings.Contains(candidate, needle) || strings.Contains(needle, candidate) {
				return &c.ZoneList[i]
			}
		}
	}
	return nil
}

// DetectZoneFromCoordinates returns the first zone whose box contains the point.
func (c *Catalog) DetectZoneFromCoordinates(lat, lng float64) *Zone {
	for i := range c.ZoneList {
		b := c.ZoneList[i].Bounds
		if b != nil && b.Contains(lat, lng) {
			return &c.ZoneList[i]
		}
	}
	return nil
}

// DetectFromInput classifies free text typed by a visitor: five digits are
// tried as a postal code, then anything is tried as a city. When nothing
// matches, the default zone is returned with recognised set to false.
func (c *Catalog) DetectFromInput(input string) (zone *Zone, recognised bool) {
	input = strings.TrimSpace(input)

	if postalCodePattern.MatchString(input) {
		if z := c.DetectZoneFromPostalCode(input); z != nil {
			return z, true
		}
	}
	if z := c.DetectZoneFromCity(input); z != nil {
		return z, true
	}
	return c.Default(), false
}

// IsPostalCode reports whether the input looks like a French postal code.
func IsPostalCode(input string) bool {
	return postalCodePattern.MatchString(strings.TrimSpace(input))
}

func normalizeCity(s string) string {
	// transformers and casers keep state, build them per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, strings.TrimSpace(s))
	if err != nil {
		stripped = s
	}
	return cases.Fold().String(stripped)
}
