package network

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/theoremus-urban-solutions/tramline/geo"
)

// gtfsFeed accumulates the GTFS static tables needed to derive line tables.
type gtfsFeed struct {
	routeShortNames map[string]string      // route_id -> short_name
	tripToRoute     map[string]string      // trip_id -> route_id
	tripShapeID     map[string]string      // trip_id -> shape_id
	tripStopSeq     map[string][]string    // trip_id -> ordered stop_ids
	stopNames       map[string]string      // stop_id -> name
	stopCoord       map[string]geo.Point   // stop_id -> coordinate
	shapePoints     map[string][]geo.Point // shape_id -> ordered points
}

func newGTFSFeed() *gtfsFeed {
	return &gtfsFeed{
		routeShortNames: map[string]string{},
		tripToRoute:     map[string]string{},
		tripShapeID:     map[string]string{},
		tripStopSeq:     map[string][]string{},
		stopNames:       map[string]string{},
		stopCoord:       map[string]geo.Point{},
		shapePoints:     map[string][]geo.Point{},
	}
}

// LoadGTFS builds a Network from a GTFS static zip at a local path or an
// http(s) URL.
//
// Each route becomes one line. Its color is colorByRoute[route_id] when set,
// else route_short_name, else route_id. The trip with the most stops is the
// representative trip: its stop sequence is the LineOrder and its shape (or
// its stop coordinates when it has none) is the LineGeometry.
func LoadGTFS(pathOrURL string, colorByRoute map[string]string) (*Network, error) {
	path := pathOrURL
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		tmp, err := downloadZip(pathOrURL)
		if err != nil {
			return nil, err
		}
		defer os.Remove(tmp)
		path = tmp
	}
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open GTFS zip: %w", err)
	}
	defer zr.Close()

	feed := newGTFSFeed()
	for _, f := range zr.File {
		switch strings.ToLower(f.Name) {
		case "routes.txt", "trips.txt", "stops.txt", "stop_times.txt", "shapes.txt":
			if err := feed.consumeCSV(f); err != nil {
				return nil, fmt.Errorf("failed to parse %s: %w", f.Name, err)
			}
		}
	}
	return feed.build(colorByRoute), nil
}

func downloadZip(url string) (string, error) {
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	tmp, err := os.CreateTemp("", "gtfs-*.zip")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(tmp, resp.Body); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

func (g *gtfsFeed) consumeCSV(f *zip.File) error {
	r, err := f.Open()
	if err != nil {
		return err
	}
	defer r.Close()
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1
	rec, err := csvr.ReadAll()
	if err != nil {
		return err
	}
	if len(rec) == 0 {
		return nil
	}
	head := rec[0]
	if len(head) > 0 {
		head[0] = strings.TrimPrefix(head[0], "\ufeff")
	}
	idx := func(col string) int {
		for i, h := range head {
			if strings.EqualFold(strings.TrimSpace(h), col) {
				return i
			}
		}
		return -1
	}
	field := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	switch strings.ToLower(f.Name) {
	case "routes.txt":
		rID := idx("route_id")
		rSN := idx("route_short_name")
		for _, row := range rec[1:] {
			if id := field(row, rID); id != "" {
				g.routeShortNames[id] = field(row, rSN)
			}
		}
	case "trips.txt":
		rID := idx("route_id")
		tID := idx("trip_id")
		sh := idx("shape_id")
		for _, row := range rec[1:] {
			trip := field(row, tID)
			if trip == "" {
				continue
			}
			g.tripToRoute[trip] = field(row, rID)
			if shape := field(row, sh); shape != "" {
				g.tripShapeID[trip] = shape
			}
		}
	case "stops.txt":
		sID := idx("stop_id")
		sN := idx("stop_name")
		sLat := idx("stop_lat")
		sLon := idx("stop_lon")
		for _, row := range rec[1:] {
			id := field(row, sID)
			if id == "" {
				continue
			}
			g.stopNames[id] = field(row, sN)
			lat, errLat := strconv.ParseFloat(field(row, sLat), 64)
			lon, errLon := strconv.ParseFloat(field(row, sLon), 64)
			if errLat == nil && errLon == nil {
				g.stopCoord[id] = geo.Point{Lat: lat, Lng: lon}
			}
		}
	case "stop_times.txt":
		tID := idx("trip_id")
		sID := idx("stop_id")
		sq := idx("stop_sequence")
		if tID < 0 || sID < 0 || sq < 0 {
			return nil
		}
		type stopTime struct {
			stop string
			seq  int
		}
		tmp := map[string][]stopTime{}
		for _, row := range rec[1:] {
			seq, _ := strconv.Atoi(field(row, sq))
			trip := field(row, tID)
			tmp[trip] = append(tmp[trip], stopTime{stop: field(row, sID), seq: seq})
		}
		for trip, arr := range tmp {
			sort.SliceStable(arr, func(i, j int) bool { return arr[i].seq < arr[j].seq })
			stops := make([]string, 0, len(arr))
			for _, st := range arr {
				stops = append(stops, st.stop)
			}
			g.tripStopSeq[trip] = stops
		}
	case "shapes.txt":
		sh := idx("shape_id")
		latIdx := idx("shape_pt_lat")
		lonIdx := idx("shape_pt_lon")
		seqIdx := idx("shape_pt_sequence")
		if sh < 0 || latIdx < 0 || lonIdx < 0 || seqIdx < 0 {
			return nil
		}
		type shapePt struct {
			pt  geo.Point
			seq int
		}
		tmp := map[string][]shapePt{}
		for _, row := range rec[1:] {
			lat, _ := strconv.ParseFloat(field(row, latIdx), 64)
			lon, _ := strconv.ParseFloat(field(row, lonIdx), 64)
			seq, _ := strconv.Atoi(field(row, seqIdx))
			id := field(row, sh)
			tmp[id] = append(tmp[id], shapePt{pt: geo.Point{Lat: lat, Lng: lon}, seq: seq})
		}
		for id, arr := range tmp {
			sort.SliceStable(arr, func(i, j int) bool { return arr[i].seq < arr[j].seq })
			pts := make([]geo.Point, len(arr))
			for i, p := range arr {
				pts[i] = p.pt
			}
			g.shapePoints[id] = pts
		}
	}
	return nil
}

// build derives line tables from the representative trip of every route.
func (g *gtfsFeed) build(colorByRoute map[string]string) *Network {
	// route_id -> representative trip_id
	repTrip := map[string]string{}
	trips := make([]string, 0, len(g.tripStopSeq))
	for trip := range g.tripStopSeq {
		trips = append(trips, trip)
	}
	sort.Strings(trips)
	for _, trip := range trips {
		route, ok := g.tripToRoute[trip]
		if !ok {
			continue
		}
		cur, seen := repTrip[route]
		if !seen || len(g.tripStopSeq[trip]) > len(g.tripStopSeq[cur]) {
			repTrip[route] = trip
		}
	}

	n := New()
	// color key -> length of the representative order already stored
	stored := map[string]int{}
	served := map[string]map[string]struct{}{}
	routes := make([]string, 0, len(repTrip))
	for route := range repTrip {
		routes = append(routes, route)
	}
	sort.Strings(routes)
	for _, route := range routes {
		trip := repTrip[route]
		color := g.colorForRoute(route, colorByRoute)
		stops := g.tripStopSeq[trip]
		if prev, ok := stored[color.Key()]; ok && prev >= len(stops) {
			continue
		}
		stored[color.Key()] = len(stops)
		n.SetLineOrder(color, stops)
		geometry := g.shapePoints[g.tripShapeID[trip]]
		if len(geometry) == 0 {
			for _, s := range stops {
				if c, ok := g.stopCoord[s]; ok {
					geometry = append(geometry, c)
				}
			}
		}
		n.SetLineGeometry(color, geometry)
		for _, s := range stops {
			if served[s] == nil {
				served[s] = map[string]struct{}{}
			}
			served[s][color.Key()] = struct{}{}
		}
	}

	for stopID, colors := range served {
		c, ok := g.stopCoord[stopID]
		if !ok {
			continue
		}
		keys := make([]string, 0, len(colors))
		for k := range colors {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		lineColors := make([]LineColor, len(keys))
		for i, k := range keys {
			lineColors[i] = LineColor(k)
		}
		n.AddStation(Station{ID: stopID, Name: g.stopNames[stopID], Lat: c.Lat, Lng: c.Lng, Colors: lineColors})
	}
	return n
}

func (g *gtfsFeed) colorForRoute(routeID string, colorByRoute map[string]string) LineColor {
	if c := colorByRoute[routeID]; c != "" {
		return LineColor(LineColor(c).Key())
	}
	if sn := g.routeShortNames[routeID]; sn != "" {
		return LineColor(LineColor(sn).Key())
	}
	return LineColor(LineColor(routeID).Key())
}
