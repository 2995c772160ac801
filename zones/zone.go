// Package zones classifies a location signal (postal code, city name or
// coordinates) into one of the statically configured service zones.
package zones

// Contact is the regional contact shown with a zone.
type Contact struct {
	Phone   string `json:"phone" yaml:"phone"`
	Email   string `json:"email" yaml:"email"`
	Address string `json:"address" yaml:"address"`
}

// Availability describes which intervention modes a zone offers.
type Availability struct {
	OnSite       bool   `json:"on_site" yaml:"on_site"`
	Remote       bool   `json:"remote" yaml:"remote"`
	ResponseTime string `json:"response_time" yaml:"response_time"`
}

// Pricing holds the display prices of a zone.
type Pricing struct {
	OnSite    string `json:"on_site" yaml:"on_site"`
	Remote    string `json:"remote" yaml:"remote"`
	Emergency string `json:"emergency" yaml:"emergency"`
}

// BoundingBox is an approximate lat/lng rectangle. Edges are inclusive.
type BoundingBox struct {
	MinLat float64 `json:"min_lat" yaml:"min_lat"`
	MaxLat float64 `json:"max_lat" yaml:"max_lat"`
	MinLng float64 `json:"min_lng" yaml:"min_lng"`
	MaxLng float64 `json:"max_lng" yaml:"max_lng"`
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lng float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat &&
		lng >= b.MinLng && lng <= b.MaxLng
}

// Overlaps reports whether two boxes share at least one point.
func (b BoundingBox) Overlaps(o BoundingBox) bool {
	return b.MinLat <= o.MaxLat && o.MinLat <= b.MaxLat &&
		b.MinLng <= o.MaxLng && o.MinLng <= b.MaxLng
}

// Zone is a geographic region record with its service offering.
type Zone struct {
	Key          string       `json:"key" yaml:"key"`
	ID           string       `json:"id" yaml:"id"`
	Name         string       `json:"name" yaml:"name"`
	Cities       []string     `json:"cities" yaml:"cities"`
	PostalCodes  []string     `json:"postal_codes" yaml:"postal_codes"`
	Departments  []string     `json:"departments" yaml:"departments"`
	Services     []string     `json:"services" yaml:"services"`
	Contact      Contact      `json:"contact" yaml:"contact"`
	Availability Availability `json:"availability" yaml:"availability"`
	Pricing      Pricing      `json:"pricing" yaml:"pricing"`
	Bounds       *BoundingBox `json:"bounds,omitempty" yaml:"bounds,omitempty"`
}

// hasPostalPrefix reports whether the two-digit prefix is one of the zone's codes.
func (z *Zone) hasPostalPrefix(prefix string) bool {
	for _, code := range z.PostalCodes {
		if code == prefix {
			return true
		}
	}
	return false
}
