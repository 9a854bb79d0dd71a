package network

import (
	"archive/zip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeGTFSZip(t *testing.T, files map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gtfs.zip")
	f, err := os.Create(path)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	for name, body := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())
	return path
}

func TestLoadGTFS(t *testing.T) {
	path := writeGTFSZip(t, map[string]string{
		"routes.txt": "route_id,route_short_name,route_type\n" +
			"R1,Red,0\n" +
			"R2,,0\n",
		"trips.txt": "route_id,service_id,trip_id,shape_id\n" +
			"R1,WK,T1,SH1\n" +
			"R1,WK,T1b,SH1\n" +
			"R2,WK,T2,\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"A,Alpha,42.0,23.0\n" +
			"B,Bravo,42.01,23.01\n" +
			"C,Charlie,42.02,23.02\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,08:00:00,08:00:00,B,2\n" +
			"T1,08:00:00,08:00:00,A,1\n" +
			"T1,08:05:00,08:05:00,C,3\n" +
			"T1b,09:00:00,09:00:00,A,1\n" +
			"T2,08:00:00,08:00:00,C,1\n" +
			"T2,08:10:00,08:10:00,B,2\n",
		"shapes.txt": "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
			"SH1,42.0,23.0,1\n" +
			"SH1,42.02,23.02,3\n" +
			"SH1,42.01,23.01,2\n",
	})

	n, err := LoadGTFS(path, map[string]string{"R2": "Blue"})
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "C"}, n.LineOrder("red"))
	require.Len(t, n.LineGeometry("red"), 3)
	assert.Equal(t, 42.01, n.LineGeometry("red")[1].Lat)

	// R2 has no shape: geometry falls back to stop coordinates.
	assert.Equal(t, []string{"C", "B"}, n.LineOrder("blue"))
	require.Len(t, n.LineGeometry("blue"), 2)
	assert.Equal(t, 42.02, n.LineGeometry("blue")[0].Lat)

	b, ok := n.Station("B")
	require.True(t, ok)
	assert.Equal(t, "Bravo", b.Name)
	assert.Equal(t, []string{"blue", "red"}, b.ColorKeys())

	a, ok := n.Station("A")
	require.True(t, ok)
	assert.Equal(t, []string{"red"}, a.ColorKeys())
}

func TestLoadGTFS_MissingFile(t *testing.T) {
	_, err := LoadGTFS(filepath.Join(t.TempDir(), "missing.zip"), nil)
	assert.Error(t, err)
}
