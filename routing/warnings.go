package routing

import (
	"fmt"
	"log"
	"sort"
	"strings"
)

// Warning type constants
const (
	WarningDestinationOutsideCorridor = "destination_outside_corridor"
	WarningPathDisconnected           = "path_disconnected"
)

// Warning is a non-fatal observation attached to a Journey.
type Warning struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects warnings while composing and outputs consolidated summaries
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example ID
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Len returns the number of distinct warning types recorded.
func (w *WarningAggregator) Len() int { return len(w.warnings) }

// Warnings returns one Warning per recorded type, sorted by code.
func (w *WarningAggregator) Warnings() []Warning {
	codes := make([]string, 0, len(w.warnings))
	for code := range w.warnings {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	out := make([]Warning, 0, len(codes))
	for _, code := range codes {
		description, _ := describeWarning(code)
		out = append(out, Warning{Code: code, Message: description})
	}
	return out
}

// LogAll outputs all collected warnings in consolidated format
func (w *WarningAggregator) LogAll(journeyRef string) {
	for _, code := range sortedKeys(w.warnings) {
		log.Printf("%s", w.formatWarningMessage(code, journeyRef, w.warnings[code]))
	}
}

func (w *WarningAggregator) formatWarningMessage(warningType, journeyRef string, info *warningInfo) string {
	description, action := describeWarning(warningType)
	return fmt.Sprintf("Journey %s has %s (%d occurrences). %s. Examples: %s",
		journeyRef, description, info.count, action, strings.Join(info.examples, ", "))
}

func describeWarning(warningType string) (description, action string) {
	switch warningType {
	case WarningDestinationOutsideCorridor:
		return "a destination farther than the corridor distance from the transit path",
			"Rider may need to walk from the last point of the line"
	case WarningPathDisconnected:
		return "a transit path not joined to the destination marker",
			"Drawing the path without a connector to the destination"
	default:
		return "unknown issue", "Returning the journey unchanged"
	}
}

func sortedKeys(m map[string]*warningInfo) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
