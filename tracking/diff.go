package tracking

import (
	"log"
	"sort"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Options configures diffing.
type Options struct {
	// PlaceholderIDs are dropped before diffing. Nil means DefaultPlaceholderID.
	PlaceholderIDs []string
}

func (o Options) placeholders() map[string]struct{} {
	ids := o.PlaceholderIDs
	if ids == nil {
		ids = []string{DefaultPlaceholderID}
	}
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Diff computes the operations turning previous into the marker collection
// described by vehicles, and returns that collection. previous is not
// modified.
//
// Removes are computed against previous only and come first, sorted by id.
// Creates and updates follow in the order vehicles first appear. When an id
// occurs more than once the last record wins, so each vehicle yields at most
// one operation.
func Diff(previous map[string]Marker, vehicles []VehiclePosition, opts Options) ([]Operation, map[string]Marker) {
	placeholders := opts.placeholders()

	latest := make(map[string]VehiclePosition, len(vehicles))
	order := make([]string, 0, len(vehicles))
	for i, v := range vehicles {
		if _, ok := placeholders[v.ID]; ok {
			continue
		}
		if err := validate.Struct(v); err != nil {
			log.Printf("Skipping vehicle record %d (id=%q): %v", i, v.ID, err)
			continue
		}
		if _, seen := latest[v.ID]; !seen {
			order = append(order, v.ID)
		}
		latest[v.ID] = v
	}

	var removed []string
	for id := range previous {
		if _, ok := latest[id]; !ok {
			removed = append(removed, id)
		}
	}
	sort.Strings(removed)

	ops := make([]Operation, 0, len(removed)+len(order))
	for _, id := range removed {
		ops = append(ops, Operation{Op: OpRemove, ID: id})
	}

	next := make(map[string]Marker, len(order))
	for _, id := range order {
		v := latest[id]
		m := Marker{ID: id, Lat: *v.Lat, Lng: *v.Lng, Color: v.Color}
		op := OpCreate
		if prev, ok := previous[id]; ok {
			op = OpUpdate
			m.Color = prev.Color
		}
		next[id] = m
		ops = append(ops, Operation{Op: op, ID: id, Lat: m.Lat, Lng: m.Lng, Color: m.Color})
	}
	return ops, next
}
