package tramline

import (
	"errors"
	"io"
	"net/http"

	"github.com/theoremus-urban-solutions/tramline/formatter"
	"github.com/theoremus-urban-solutions/tramline/network"
	"github.com/theoremus-urban-solutions/tramline/queues"
	"github.com/theoremus-urban-solutions/tramline/tracking"
)

// maxSnapshotBytes bounds the body of a pushed vehicle snapshot.
const maxSnapshotBytes = 4 << 20

type handlers struct {
	svc *Service
}

type stationsResponse struct {
	Stations []network.Station `json:"stations"`
	Count    int               `json:"count"`
}

type vehiclesResponse struct {
	Markers   []tracking.Marker `json:"markers"`
	Count     int               `json:"count"`
	Timestamp int64             `json:"timestamp"`
	Seq       uint64            `json:"seq"`
}

type changesResponse struct {
	Batches  []tracking.Batch `json:"batches"`
	Latest   uint64           `json:"latest"`
	Complete bool             `json:"complete"`
}

type applyResponse struct {
	Operations []tracking.Operation `json:"operations"`
	Count      int                  `json:"count"`
	Seq        uint64               `json:"seq"`
}

func (h *handlers) stations(w http.ResponseWriter, r *http.Request) {
	stations := h.svc.Stations()
	writeJSON(w, http.StatusOK, stationsResponse{Stations: stations, Count: len(stations)})
}

// journey handles GET /api/journey?from=&to= and GET /api/journey?lat=&lng=&to=.
func (h *handlers) journey(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := parseFormat(q.Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	loc, err := parseLocation(q.Get("lat"), q.Get("lng"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}

	j, err := h.svc.Journey(JourneyRequest{FromID: q.Get("from"), Location: loc, ToID: q.Get("to")})
	if err != nil {
		status, kind := journeyErrorStatus(err)
		writeError(w, status, kind, err.Error())
		return
	}

	if format == formatGeoJSON {
		writeBody(w, http.StatusOK, contentTypeGeoJSON, formatter.JourneyFeatureCollection(j))
		return
	}
	writeJSON(w, http.StatusOK, formatter.NewJourneyView(j))
}

func (h *handlers) vehicles(w http.ResponseWriter, r *http.Request) {
	format, err := parseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	seq := h.svc.Seq()
	markers := h.svc.Markers()
	if format == formatGeoJSON {
		writeBody(w, http.StatusOK, contentTypeGeoJSON, formatter.MarkersFeatureCollection(markers))
		return
	}
	writeJSON(w, http.StatusOK, vehiclesResponse{
		Markers:   markers,
		Count:     len(markers),
		Timestamp: h.svc.FeedTimestamp(),
		Seq:       seq,
	})
}

// pushVehicles applies a snapshot posted by an external feed.
func (h *handlers) pushVehicles(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxSnapshotBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "failed to read body")
		return
	}
	tick, err := queues.DecodeTick(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	ops, err := h.svc.ApplyTick(tick)
	if errors.Is(err, tracking.ErrStaleTick) {
		writeError(w, http.StatusConflict, "stale_snapshot", err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "apply_failed", err.Error())
		return
	}
	if ops == nil {
		ops = []tracking.Operation{}
	}
	writeJSON(w, http.StatusOK, applyResponse{Operations: ops, Count: len(ops), Seq: h.svc.Seq()})
}

// changes handles GET /api/vehicles/changes?since=N.
func (h *handlers) changes(w http.ResponseWriter, r *http.Request) {
	since, err := parseSince(r.URL.Query().Get("since"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		return
	}
	batches, latest, complete := h.svc.Changes(since)
	if batches == nil {
		batches = []tracking.Batch{}
	}
	writeJSON(w, http.StatusOK, changesResponse{Batches: batches, Latest: latest, Complete: complete})
}

func (h *handlers) vehicleMonitoring(w http.ResponseWriter, r *http.Request) {
	lineRef, err := ensureLineExists(queryParam(r.URL.Query(), "LineRef"), h.svc)
	if err != nil {
		w.Header().Set("Content-Type", contentTypeJSON)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write(buildErrorPayload(err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, h.svc.VehicleMonitoring(lineRef))
}
