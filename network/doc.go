/*
Package network holds the read-only snapshot of the transit network consumed
by journey composition.

The snapshot keeps two independent tables per line color:

  - LineOrder: the ordered station ids a line visits. Only used to score how
    far apart two stations are on a line.
  - LineGeometry: the authored polyline a vehicle physically follows.

They are never merged: geometry can be revised without reordering stations.

# Loading

A Network can be built from a YAML/JSON document (LoadFile, Parse), from a
GTFS static zip (LoadGTFS), or by the store package from a database. Loaded
networks can be cached with SerializeToFile / DeserializeFromFile.

	net, err := network.LoadFile("network.yml")
	if err != nil {
	    log.Fatal(err)
	}
	st, ok := net.Station("S1")

Color lookups are case-insensitive: "Red", "red" and " RED " address the same
tables.
*/
package network
