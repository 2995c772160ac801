package usecases

import (
	"context"
	"fmt"

	"sage-portal/cache"
	"sage-portal/geo"
	"sage-portal/zones"

	"go.uber.org/zap"
)

const (
	MethodGPS        = "gps"
	MethodIP         = "ip"
	MethodPostalCode = "postal_code"
	MethodCity       = "city"
	MethodInput      = "input"
	MethodManual     = "manual"
	MethodDefault    = "default"
)

// Messages surfaced to visitors when detection falls back to the default zone.
const (
	MsgLocationUnavailable = "Impossible de détecter la localisation"
	MsgZoneUnrecognised    = "Zone non reconnue, utilisation de la zone par défaut"
)

// Detection is the outcome of one detection pass. Zone is never nil.
type Detection struct {
	Zone     *zones.Zone   `json:"zone"`
	Location *geo.Location `json:"location,omitempty"`
	Method   string        `json:"method"`
	Manual   bool          `json:"manual"`
	Fallback bool          `json:"fallback"`
	Error    string        `json:"error,omitempty"`
}

// Signal carries whatever the visitor's client could provide.
type Signal struct {
	Latitude   *float64 `json:"lat"`
	Longitude  *float64 `json:"lng"`
	PostalCode string   `json:"postal_code"`
	City       string   `json:"city"`
	Input      string   `json:"input"`
	IP         string   `json:"ip"`
}

type ZoneUseCase struct {
	catalog *zones.Catalog
	locator geo.IPLocator
	reverse geo.ReverseGeocoder
	cache   cache.LocationCache
	log     *zap.Logger
}

// NewZoneUseCase wires the detector. locator, reverse and locCache may be nil.
func NewZoneUseCase(catalog *zones.Catalog, locator geo.IPLocator, reverse geo.ReverseGeocoder, locCache cache.LocationCache, log *zap.Logger) *ZoneUseCase {
	if log == nil {
		log = zap.NewNop()
	}
	return &ZoneUseCase{
		catalog: catalog,
		locator: locator,
		reverse: reverse,
		cache:   locCache,
		log:     log,
	}
}

func (uc *ZoneUseCase) Zones() []*zones.Zone {
	return uc.catalog.Zones()
}

func (uc *ZoneUseCase) GetZone(keyOrID string) (*zones.Zone, error) {
	zone := uc.catalog.Lookup(keyOrID)
	if zone == nil {
		return nil, fmt.Errorf("%w: zone %s", ErrNotFound, keyOrID)
	}
	return zone, nil
}

// Detect picks the strongest signal available: coordinates, then typed
// input, then the visitor's IP address.
func (uc *ZoneUseCase) Detect(ctx context.Context, s Signal) Detection {
	switch {
	case s.Latitude != nil && s.Longitude != nil:
		return uc.DetectFromCoordinates(ctx, *s.Latitude, *s.Longitude)
	case s.PostalCode != "":
		return uc.detectWith(MethodPostalCode, uc.catalog.DetectZoneFromPostalCode(s.PostalCode))
	case s.City != "":
		return uc.detectWith(MethodCity, uc.catalog.DetectZoneFromCity(s.City))
	case s.Input != "":
		return uc.DetectFromInput(s.Input)
	default:
		return uc.DetectFromIP(ctx, s.IP)
	}
}

func (uc *ZoneUseCase) detectWith(method string, zone *zones.Zone) Detection {
	if zone == nil {
		return Detection{Zone: uc.catalog.Default(), Method: MethodDefault, Fallback: true, Error: MsgZoneUnrecognised}
	}
	return Detection{Zone: zone, Method: method, Manual: true}
}

// DetectFromCoordinates classifies a device position. The address found by
// reverse geocoding backs up the bounding boxes; if the lookup fails the
// coordinates alone decide.
func (uc *ZoneUseCase) DetectFromCoordinates(ctx context.Context, lat, lng float64) Detection {
	loc := &geo.Location{Latitude: lat, Longitude: lng, HasCoordinates: true}

	if uc.reverse != nil {
		key := fmt.Sprintf("rev:%.4f,%.4f", lat, lng)
		if found, err := uc.lookup(key, func() (*geo.Location, error) { return uc.reverse.Reverse(ctx, lat, lng) }); err != nil {
			uc.log.Warn("reverse geocoding failed, using coordinates only",
				zap.Float64("lat", lat), zap.Float64("lng", lng), zap.Error(err))
		} else {
			loc = found
			loc.Latitude, loc.Longitude, loc.HasCoordinates = lat, lng, true
		}
	}

	if zone := uc.catalog.DetectZoneFromCoordinates(lat, lng); zone != nil {
		return Detection{Zone: zone, Location: loc, Method: MethodGPS}
	}
	if zone := uc.catalog.DetectZoneFromPostalCode(loc.PostalCode); zone != nil {
		return Detection{Zone: zone, Location: loc, Method: MethodPostalCode}
	}
	if zone := uc.catalog.DetectZoneFromCity(loc.City); zone != nil {
		return Detection{Zone: zone, Location: loc, Method: MethodCity}
	}
	return Detection{Zone: uc.catalog.Default(), Location: loc, Method: MethodDefault, Fallback: true}
}

// DetectFromIP classifies a visitor by IP address: postal code, then city,
// then the coordinates the provider returned.
func (uc *ZoneUseCase) DetectFromIP(ctx context.Context, ip string) Detection {
	if uc.locator == nil {
		return Detection{Zone: uc.catalog.Default(), Method: MethodDefault, Fallback: true, Error: MsgLocationUnavailable}
	}

	loc, err := uc.lookup("ip:"+ip, func() (*geo.Location, error) { return uc.locator.LocateIP(ctx, ip) })
	if err != nil {
		uc.log.Warn("ip geolocation failed, using default zone", zap.String("ip", ip), zap.Error(err))
		return Detection{Zone: uc.catalog.Default(), Method: MethodDefault, Fallback: true, Error: MsgLocationUnavailable}
	}

	zone := uc.catalog.DetectZoneFromPostalCode(loc.PostalCode)
	if zone == nil {
		zone = uc.catalog.DetectZoneFromCity(loc.City)
	}
	if zone == nil && loc.HasCoordinates {
		zone = uc.catalog.DetectZoneFromCoordinates(loc.Latitude, loc.Longitude)
	}
	if zone == nil {
		return Detection{Zone: uc.catalog.Default(), Location: loc, Method: MethodDefault, Fallback: true}
	}
	return Detection{Zone: zone, Location: loc, Method: MethodIP}
}

// DetectFromInput classifies free text typed by the visitor.
func (uc *ZoneUseCase) DetectFromInput(input string) Detection {
	zone, recognised := uc.catalog.DetectFromInput(input)
	if !recognised {
		return Detection{Zone: zone, Method: MethodDefault, Fallback: true, Error: MsgZoneUnrecognised}
	}
	return Detection{Zone: zone, Method: MethodInput, Manual: true}
}

// SelectZone records a manual choice from the zone list.
func (uc *ZoneUseCase) SelectZone(keyOrID string) (Detection, error) {
	zone, err := uc.GetZone(keyOrID)
	if err != nil {
		return Detection{}, err
	}
	return Detection{Zone: zone, Method: MethodManual, Manual: true}, nil
}

func (uc *ZoneUseCase) lookup(key string, fetch func() (*geo.Location, error)) (*geo.Location, error) {
	if uc.cache != nil {
		if loc, ok := uc.cache.Get(key); ok {
			return loc, nil
		}
	}
	loc, err := fetch()
	if err != nil {
		return nil, err
	}
	if uc.cache != nil {
		uc.cache.Set(key, loc)
	}
	return loc, nil
}
