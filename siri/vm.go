package siri

// VehicleMonitoring represents the VehicleMonitoring delivery
type VehicleMonitoring struct {
	ResponseTimestamp string                 `json:"ResponseTimestamp"`
	ValidUntil        string                 `json:"ValidUntil,omitempty"`
	VehicleActivity   []VehicleActivityEntry `json:"VehicleActivity"`
}

// VehicleActivityEntry represents a single vehicle's activity
type VehicleActivityEntry struct {
	RecordedAtTime          string                  `json:"RecordedAtTime"`
	ValidUntilTime          string                  `json:"ValidUntilTime,omitempty"`
	MonitoredVehicleJourney MonitoredVehicleJourney `json:"MonitoredVehicleJourney"`
}

// MonitoredVehicleJourney contains details about a monitored vehicle journey
type MonitoredVehicleJourney struct {
	LineRef                string          `json:"LineRef"`
	PublishedLineName      string          `json:"PublishedLineName,omitempty"`
	VehicleMode            string          `json:"VehicleMode,omitempty"` // bus, tram, metro, etc.
	OperatorRef            string          `json:"OperatorRef,omitempty"`
	Monitored              bool            `json:"Monitored"`
	DataSource             string          `json:"DataSource"`
	VehicleLocation        VehicleLocation `json:"VehicleLocation"`
	VehicleRef             string          `json:"VehicleRef"`
	IsCompleteStopSequence bool            `json:"IsCompleteStopSequence"`
}

// VehicleLocation represents the geographical location of a vehicle
type VehicleLocation struct {
	Latitude  float64 `json:"Latitude"`
	Longitude float64 `json:"Longitude"`
}
