package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/tramline/geo"
)

var defaultSnap = DefaultOptions().Snap

func TestExtractSegment_ForwardSubPath(t *testing.T) {
	pts := straightLine(5, 1)

	got, err := ExtractSegment(pts, pts[1], pts[3], defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{pts[1], pts[2], pts[3]}, got)
}

func TestExtractSegment_WrapsAroundLoop(t *testing.T) {
	pts := loop(10)

	got, err := ExtractSegment(pts, pts[8], pts[2], defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{pts[8], pts[9], pts[0], pts[1], pts[2]}, got)
}

func TestExtractSegment_IdempotentAndNotAliased(t *testing.T) {
	pts := straightLine(5, 1)
	original := append([]geo.Point(nil), pts...)

	first, err := ExtractSegment(pts, pts[1], pts[4], defaultSnap)
	require.NoError(t, err)
	second, err := ExtractSegment(pts, pts[1], pts[4], defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	first[0] = geo.Point{Lat: 0, Lng: 0}
	assert.Equal(t, original, pts)
}

func TestExtractSegment_JoinsNearbyEndpoints(t *testing.T) {
	pts := straightLine(5, 1)
	start := offsetNorth(pts[1], 0.03)
	end := offsetNorth(pts[3], 0.03)

	got, err := ExtractSegment(pts, start, end, defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{start, pts[1], pts[2], pts[3], end}, got)
}

func TestExtractSegment_LeavesFarDestinationDisconnected(t *testing.T) {
	pts := straightLine(5, 1)
	end := offsetNorth(pts[3], 0.4)

	got, err := ExtractSegment(pts, pts[1], end, defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{pts[1], pts[2], pts[3]}, got)
}

func TestExtractSegment_StopsAtFirstPointNearDestination(t *testing.T) {
	pts := straightLine(6, 0.1)

	got, err := ExtractSegment(pts, pts[0], pts[5], defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, pts, got)

	narrow := SnapOptions{SnapThresholdKM: 0.05, DestinationSnapThresholdKM: 0.05}
	got, err = ExtractSegment(pts, pts[0], pts[5], narrow)
	require.NoError(t, err)
	assert.Equal(t, pts, got)
}

func TestExtractSegment_JoinsDestinationAfterEarlyStop(t *testing.T) {
	pts := straightLine(201, 0.02)

	got, err := ExtractSegment(pts, pts[0], pts[100], defaultSnap)
	require.NoError(t, err)
	// the scan stops 140 m short at pts[93] and the destination is joined there
	require.Len(t, got, 95)
	assert.Equal(t, pts[:94], got[:94])
	assert.Equal(t, pts[100], got[94])
	assert.InDelta(t, 2.0, geo.PathLengthKM(got), 0.005)
}

func TestExtractSegment_ShortHop(t *testing.T) {
	pts := straightLine(3, 0.1)

	got, err := ExtractSegment(pts, pts[0], pts[1], defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{pts[0], pts[1]}, got)
}

func TestExtractSegment_DestinationJoinThreshold(t *testing.T) {
	pts := straightLine(5, 1)
	end := offsetNorth(pts[3], 0.1)

	got, err := ExtractSegment(pts, pts[1], end, defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{pts[1], pts[2], pts[3], end}, got)

	beyond := offsetNorth(pts[3], 0.2)
	got, err = ExtractSegment(pts, pts[1], beyond, defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, []geo.Point{pts[1], pts[2], pts[3]}, got)
}

func TestExtractSegment_Errors(t *testing.T) {
	_, err := ExtractSegment(nil, geo.Point{}, geo.Point{}, defaultSnap)
	require.ErrorIs(t, err, ErrEmptyGeometry)
	assert.Equal(t, KindEmptyGeometry, KindOf(err))

	only := []geo.Point{{Lat: 42, Lng: 23}}
	_, err = ExtractSegment(only, offsetNorth(only[0], 1), offsetEast(only[0], 1), defaultSnap)
	require.ErrorIs(t, err, ErrDegenerateEndpoints)
	assert.Equal(t, KindDegenerateEndpoints, KindOf(err))

	got, err := ExtractSegment(only, only[0], offsetEast(only[0], 1), defaultSnap)
	require.NoError(t, err)
	assert.Equal(t, only, got)
}
