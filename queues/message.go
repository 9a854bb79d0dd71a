package queues

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/theoremus-urban-solutions/tramline/tracking"
)

// DecodeTick parses a snapshot message. Both {"timestamp":..,"vehicles":[..]}
// and a bare [..] of vehicle records are accepted.
func DecodeTick(body []byte) (tracking.Tick, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return tracking.Tick{}, errors.New("empty snapshot message")
	}
	if trimmed[0] == '[' {
		var vehicles []tracking.VehiclePosition
		if err := json.Unmarshal(trimmed, &vehicles); err != nil {
			return tracking.Tick{}, fmt.Errorf("failed to decode vehicle list: %w", err)
		}
		return tracking.Tick{Vehicles: vehicles}, nil
	}
	var tick tracking.Tick
	if err := json.Unmarshal(trimmed, &tick); err != nil {
		return tracking.Tick{}, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return tick, nil
}
