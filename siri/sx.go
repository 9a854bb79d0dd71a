package siri

// SituationExchangeDelivery is the SX slot of a ServiceDelivery. Disruptions
// are not tracked, so responses always carry it as an empty list.
type SituationExchangeDelivery struct {
	Version           string               `json:"version" xml:"version,attr"`
	ResponseTimestamp string               `json:"ResponseTimestamp" xml:"ResponseTimestamp"`
	Situations        []PtSituationElement `json:"Situations" xml:"Situations>PtSituationElement"`
}

// PtSituationElement is a single situation in an SX delivery.
type PtSituationElement struct {
	CreationTime    string `json:"CreationTime" xml:"CreationTime"`
	ParticipantRef  string `json:"ParticipantRef" xml:"ParticipantRef"`
	SituationNumber string `json:"SituationNumber" xml:"SituationNumber"`
	Summary         string `json:"Summary,omitempty" xml:"Summary,omitempty"`
	Description     string `json:"Description,omitempty" xml:"Description,omitempty"`
}
