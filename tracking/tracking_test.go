package tracking

import (
	"encoding/json"
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func markers(ms ...Marker) map[string]Marker {
	out := make(map[string]Marker, len(ms))
	for _, m := range ms {
		out[m.ID] = m
	}
	return out
}

func TestDiff_CreateUpdateRemove(t *testing.T) {
	prev := markers(
		Marker{ID: "A", Lat: 42.0, Lng: 23.0, Color: "red"},
		Marker{ID: "B", Lat: 42.1, Lng: 23.1, Color: "blue"},
	)
	snapshot := []VehiclePosition{
		NewVehiclePosition("A", 42.01, 23.01, "green"),
		NewVehiclePosition("C", 42.2, 23.2, "blue"),
		NewVehiclePosition("init", 0, 0, ""),
	}

	ops, next := Diff(prev, snapshot, Options{})

	assert.Equal(t, []Operation{
		{Op: OpRemove, ID: "B"},
		{Op: OpUpdate, ID: "A", Lat: 42.01, Lng: 23.01, Color: "red"},
		{Op: OpCreate, ID: "C", Lat: 42.2, Lng: 23.2, Color: "blue"},
	}, ops)
	assert.Equal(t, markers(
		Marker{ID: "A", Lat: 42.01, Lng: 23.01, Color: "red"},
		Marker{ID: "C", Lat: 42.2, Lng: 23.2, Color: "blue"},
	), next)

	// previous is left untouched.
	assert.Len(t, prev, 2)
	assert.Equal(t, 42.0, prev["A"].Lat)
}

func TestDiff_PlaceholderNeverProducesOperation(t *testing.T) {
	ops, next := Diff(nil, []VehiclePosition{NewVehiclePosition("init", 42, 23, "red")}, Options{})
	assert.Empty(t, ops)
	assert.Empty(t, next)

	ops, _ = Diff(markers(Marker{ID: "init"}), nil, Options{PlaceholderIDs: []string{"boot"}})
	assert.Equal(t, []Operation{{Op: OpRemove, ID: "init"}}, ops)
}

func TestDiff_SkipsMalformedRecords(t *testing.T) {
	lat := 42.0
	nan := math.NaN()
	snapshot := []VehiclePosition{
		{ID: "noLng", Lat: &lat},
		{ID: "nanLat", Lat: &nan, Lng: &lat},
		NewVehiclePosition("", 42, 23, "red"),
		NewVehiclePosition("outOfRange", 91, 23, "red"),
		NewVehiclePosition("ok", 42, 23, "red"),
	}

	ops, next := Diff(nil, snapshot, Options{})
	require.Len(t, ops, 1)
	assert.Equal(t, "ok", ops[0].ID)
	assert.Len(t, next, 1)
}

func TestDiff_DuplicateIDsCollapseToLastRecord(t *testing.T) {
	snapshot := []VehiclePosition{
		NewVehiclePosition("A", 42.0, 23.0, "red"),
		NewVehiclePosition("B", 42.5, 23.5, "red"),
		NewVehiclePosition("A", 42.3, 23.3, "red"),
	}

	ops, _ := Diff(nil, snapshot, Options{})
	require.Len(t, ops, 2)
	assert.Equal(t, Operation{Op: OpCreate, ID: "A", Lat: 42.3, Lng: 23.3, Color: "red"}, ops[0])
	assert.Equal(t, "B", ops[1].ID)
}

func TestReconciler_CommitsAcrossTicks(t *testing.T) {
	r := NewReconciler(Options{})

	ops, err := r.Reconcile(Tick{Timestamp: 100, Vehicles: []VehiclePosition{
		NewVehiclePosition("A", 42, 23, "red"),
		NewVehiclePosition("B", 42, 23, "blue"),
	}})
	require.NoError(t, err)
	assert.Len(t, ops, 2)

	ops, err = r.Reconcile(Tick{Timestamp: 110, Vehicles: []VehiclePosition{
		NewVehiclePosition("A", 42.001, 23, "red"),
	}})
	require.NoError(t, err)
	assert.Equal(t, []Operation{
		{Op: OpRemove, ID: "B"},
		{Op: OpUpdate, ID: "A", Lat: 42.001, Lng: 23, Color: "red"},
	}, ops)
	assert.Equal(t, []Marker{{ID: "A", Lat: 42.001, Lng: 23, Color: "red"}}, r.Markers())
	assert.Equal(t, int64(110), r.Timestamp())
	assert.Equal(t, 2, r.Ticks())
}

func TestReconciler_FailedApplyKeepsCommittedCollection(t *testing.T) {
	r := NewReconciler(Options{})
	_, err := r.Reconcile(Tick{Vehicles: []VehiclePosition{NewVehiclePosition("A", 42, 23, "red")}})
	require.NoError(t, err)

	boom := errors.New("map unavailable")
	_, err = r.Apply(Tick{Vehicles: nil}, ApplierFunc(func([]Operation) error { return boom }))
	require.ErrorIs(t, err, boom)
	assert.Len(t, r.Markers(), 1)

	// The retry is diffed against the same committed collection.
	var applied []Operation
	_, err = r.Apply(Tick{Vehicles: nil}, ApplierFunc(func(ops []Operation) error {
		applied = ops
		return nil
	}))
	require.NoError(t, err)
	assert.Equal(t, []Operation{{Op: OpRemove, ID: "A"}}, applied)
	assert.Empty(t, r.Markers())
}

func TestReconciler_RejectsStaleTicks(t *testing.T) {
	r := NewReconciler(Options{})
	_, err := r.Reconcile(Tick{Timestamp: 200, Vehicles: []VehiclePosition{NewVehiclePosition("A", 42, 23, "red")}})
	require.NoError(t, err)

	_, err = r.Reconcile(Tick{Timestamp: 150})
	require.ErrorIs(t, err, ErrStaleTick)
	assert.Len(t, r.Markers(), 1)

	// Unknown timestamps are accepted.
	ops, err := r.Reconcile(Tick{Timestamp: 0})
	require.NoError(t, err)
	assert.Len(t, ops, 1)
	assert.Equal(t, int64(200), r.Timestamp())
}

func TestReconciler_SerializesConcurrentTicks(t *testing.T) {
	r := NewReconciler(Options{})
	j := NewJournal(1000, nil)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			id := "A"
			if i%2 == 0 {
				id = "B"
			}
			_, err := r.Apply(Tick{Vehicles: []VehiclePosition{NewVehiclePosition(id, 42, 23, "red")}}, j)
			assert.NoError(t, err)
		}(i)
	}
	wg.Wait()

	// Replaying every batch must reproduce the committed collection.
	live := map[string]bool{}
	batches, _, complete := j.Since(0)
	require.True(t, complete)
	for _, b := range batches {
		for _, op := range b.Ops {
			switch op.Op {
			case OpCreate:
				assert.False(t, live[op.ID], "create of live marker %s", op.ID)
				live[op.ID] = true
			case OpUpdate:
				assert.True(t, live[op.ID], "update of unknown marker %s", op.ID)
			case OpRemove:
				assert.True(t, live[op.ID], "remove of unknown marker %s", op.ID)
				delete(live, op.ID)
			}
		}
	}
	require.Len(t, r.Markers(), 1)
	assert.True(t, live[r.Markers()[0].ID])
	assert.Len(t, live, 1)
}

func TestJournal_Since(t *testing.T) {
	j := NewJournal(2, func() int64 { return 7 })
	for _, id := range []string{"A", "B", "C"} {
		require.NoError(t, j.ApplyOperations([]Operation{{Op: OpCreate, ID: id}}))
	}

	batches, latest, complete := j.Since(1)
	assert.True(t, complete)
	assert.Equal(t, uint64(3), latest)
	require.Len(t, batches, 2)
	assert.Equal(t, "B", batches[0].Ops[0].ID)
	assert.Equal(t, int64(7), batches[0].Timestamp)

	_, _, complete = j.Since(0)
	assert.False(t, complete)

	batches, _, complete = j.Since(3)
	assert.True(t, complete)
	assert.Empty(t, batches)
}

func TestOperation_JSONKeepsZeroCoordinates(t *testing.T) {
	ops, _ := Diff(nil, []VehiclePosition{NewVehiclePosition("ok", 0, 0, "red")}, Options{})
	require.Len(t, ops, 1)

	data, err := json.Marshal(ops[0])
	require.NoError(t, err)
	assert.JSONEq(t, `{"op":"create","id":"ok","lat":0,"lng":0,"color":"red"}`, string(data))

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Contains(t, decoded, "lat")
	assert.Contains(t, decoded, "lng")
}
