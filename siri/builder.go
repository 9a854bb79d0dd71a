package siri

import (
	"strings"

	"github.com/theoremus-urban-solutions/transit-types/siri"

	"github.com/theoremus-urban-solutions/tramline/network"
	"github.com/theoremus-urban-solutions/tramline/tracking"
	"github.com/theoremus-urban-solutions/tramline/utils"
)

// Options controls VehicleMonitoring rendering.
type Options struct {
	Codespace      string
	VehicleMode    string
	ReadIntervalMS int
}

func (o Options) codespace() string {
	if o.Codespace == "" {
		return "UNKNOWN"
	}
	return o.Codespace
}

// LineRef returns the SIRI line reference of a line color.
func LineRef(codespace string, color network.LineColor) string {
	return codespace + ":Line:" + color.Key()
}

// BuildVehicleMonitoring renders markers recorded at timestamp (Unix seconds).
func BuildVehicleMonitoring(markers []tracking.Marker, timestamp int64, opts Options) VehicleMonitoring {
	codespace := opts.codespace()
	mode := opts.VehicleMode
	if mode == "" {
		mode = "tram"
	}
	recorded := utils.Iso8601FromUnixSeconds(timestamp)
	validUntil := utils.ValidUntilFrom(timestamp, opts.ReadIntervalMS)

	vm := VehicleMonitoring{
		ResponseTimestamp: recorded,
		ValidUntil:        validUntil,
		VehicleActivity:   make([]VehicleActivityEntry, 0, len(markers)),
	}
	for _, m := range markers {
		mvj := MonitoredVehicleJourney{
			VehicleMode:            mode,
			OperatorRef:            codespace,
			Monitored:              true,
			DataSource:             codespace,
			VehicleLocation:        VehicleLocation{Latitude: m.Lat, Longitude: m.Lng},
			VehicleRef:             codespace + ":VehicleRef:" + m.ID,
			IsCompleteStopSequence: false,
		}
		if m.Color.Key() != "" {
			mvj.LineRef = LineRef(codespace, m.Color)
			mvj.PublishedLineName = m.Color.DisplayName()
		}
		vm.VehicleActivity = append(vm.VehicleActivity, VehicleActivityEntry{
			RecordedAtTime:          recorded,
			ValidUntilTime:          validUntil,
			MonitoredVehicleJourney: mvj,
		})
	}
	return vm
}

// FilterByLine keeps activities whose LineRef equals lineRef, compared
// case-insensitively. A bare color matches the line segment of the ref, so
// "red" keeps "SOF:Line:red" but not "SOF:Line:redline". An empty lineRef
// keeps everything.
func FilterByLine(vm VehicleMonitoring, lineRef string) VehicleMonitoring {
	lineRef = strings.TrimSpace(lineRef)
	if lineRef == "" {
		return vm
	}
	filtered := VehicleMonitoring{
		ResponseTimestamp: vm.ResponseTimestamp,
		ValidUntil:        vm.ValidUntil,
		VehicleActivity:   []VehicleActivityEntry{},
	}
	for _, a := range vm.VehicleActivity {
		if lineRefMatches(a.MonitoredVehicleJourney.LineRef, lineRef) {
			filtered.VehicleActivity = append(filtered.VehicleActivity, a)
		}
	}
	return filtered
}

func lineRefMatches(ref, want string) bool {
	if ref == "" {
		return false
	}
	if strings.EqualFold(ref, want) {
		return true
	}
	if i := strings.LastIndex(ref, ":Line:"); i >= 0 {
		return strings.EqualFold(ref[i+len(":Line:"):], want)
	}
	return false
}

// WrapVehicleMonitoringResponse wraps a VM delivery in a complete SIRI response
func WrapVehicleMonitoringResponse(vm VehicleMonitoring, codespace string) *SiriResponse {
	if codespace == "" {
		codespace = "UNKNOWN"
	}
	return &SiriResponse{
		Siri: SiriServiceDelivery{
			ServiceDelivery: ServiceDelivery{
				ResponseTimestamp:          vm.ResponseTimestamp,
				ProducerRef:                codespace,
				VehicleMonitoringDelivery:  []VehicleMonitoring{vm},
				SituationExchangeDelivery:  []SituationExchangeDelivery{},
				EstimatedTimetableDelivery: []siri.EstimatedTimetableDelivery{},
			},
		},
	}
}
