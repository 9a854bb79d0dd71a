package tramline

import (
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/tramline/geo"
)

// QueryError is a client input problem, reported with status 400.
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

func parseNonNegativeInt(s string) (int, error) {
	if s == "" {
		return -1, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || v < 0 {
		return -1, &QueryError{Msg: "Numeric parameter must be a non-negative integer."}
	}
	return v, nil
}

func parseSince(s string) (uint64, error) {
	v, err := parseNonNegativeInt(s)
	if err != nil {
		return 0, &QueryError{Msg: "since must be a non-negative integer."}
	}
	if v < 0 {
		return 0, nil
	}
	return uint64(v), nil
}

// parseLocation returns nil when neither lat nor lng is given.
func parseLocation(lat, lng string) (*geo.Point, error) {
	lat, lng = strings.TrimSpace(lat), strings.TrimSpace(lng)
	if lat == "" && lng == "" {
		return nil, nil
	}
	if lat == "" || lng == "" {
		return nil, &QueryError{Msg: "lat and lng must be given together."}
	}
	la, err1 := strconv.ParseFloat(lat, 64)
	ln, err2 := strconv.ParseFloat(lng, 64)
	if err1 != nil || err2 != nil {
		return nil, &QueryError{Msg: "lat and lng must be decimal degrees."}
	}
	p := geo.Point{Lat: la, Lng: ln}
	if !p.Valid() {
		return nil, &QueryError{Msg: "lat must be within [-90, 90] and lng within [-180, 180]."}
	}
	return &p, nil
}

const (
	formatJSON    = "json"
	formatGeoJSON = "geojson"
)

func parseFormat(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", formatJSON:
		return formatJSON, nil
	case formatGeoJSON:
		return formatGeoJSON, nil
	default:
		return "", &QueryError{Msg: "Unsupported format: " + s}
	}
}

// ensureLineExists resolves a full SIRI LineRef or a bare color to the
// canonical LineRef of a line in the network.
func ensureLineExists(lineRef string, svc *Service) (string, error) {
	lr := strings.TrimSpace(lineRef)
	if lr == "" {
		return "", nil
	}
	for _, c := range svc.Network().Colors() {
		ref := svc.LineRef(c)
		if strings.EqualFold(lr, ref) || strings.EqualFold(lr, c.Key()) {
			return ref, nil
		}
	}
	return "", &QueryError{Msg: "No such line: " + lineRef}
}

// queryParam reads a parameter case-insensitively, as SIRI clients vary
// the casing of parameter names.
func queryParam(values map[string][]string, name string) string {
	for k, v := range values {
		if strings.EqualFold(k, name) && len(v) > 0 {
			return v[0]
		}
	}
	return ""
}
