package network

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"io"
	"os"
)

// Serialize encodes a Network to bytes using gob encoding.
// This is useful for disk-based caching to avoid re-reading the source store
// or re-parsing a GTFS zip on every start.
//
// Example:
//
//	net, _ := network.LoadGTFS("gtfs.zip", nil)
//	data, err := network.Serialize(net)
//	if err != nil {
//	    // handle error
//	}
//	os.WriteFile("/path/to/cache/network.gob", data, 0644)
func Serialize(n *Network) ([]byte, error) {
	var buf bytes.Buffer
	if err := SerializeToWriter(n, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Deserialize decodes a Network from bytes produced by Serialize.
func Deserialize(data []byte) (*Network, error) {
	return DeserializeFromReader(bytes.NewReader(data))
}

// SerializeToFile writes a Network to a file using gob encoding.
func SerializeToFile(n *Network, path string) error {
	data, err := Serialize(n)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DeserializeFromFile reads a Network from a gob file.
//
// Example:
//
//	net, err := network.DeserializeFromFile("/cache/network.gob")
//	if err != nil {
//	    // Cache miss or corrupted, load from the source
//	    net, _ = network.LoadFile("network.yml")
//	}
func DeserializeFromFile(path string) (*Network, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	return Deserialize(data)
}

// SerializeToWriter writes a Network to w using gob encoding.
func SerializeToWriter(n *Network, w io.Writer) error {
	if err := gob.NewEncoder(w).Encode(n.Document()); err != nil {
		return fmt.Errorf("failed to encode network: %w", err)
	}
	return nil
}

// DeserializeFromReader reads a gob encoded Network from r.
func DeserializeFromReader(r io.Reader) (*Network, error) {
	var doc Document
	if err := gob.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to decode network: %w", err)
	}
	return FromDocument(doc)
}
