// Package export encodes scatter manifests for downstream consumers.
package export

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/increasinglyHuman/BlackBoxLandscaper/pkg/scatter"
)

// Format selects an on-disk encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatZstd    Format = "zst"
	FormatGeoJSON Format = "geojson"
)

// Formats lists the supported encodings.
var Formats = []Format{FormatJSON, FormatZstd, FormatGeoJSON}

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	for _, f := range Formats {
		if string(f) == s {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown format %q (want json, zst or geojson)", s)
}

// FormatFor infers the format from a file extension, defaulting to JSON.
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		return FormatZstd
	case ".geojson":
		return FormatGeoJSON
	}
	return FormatJSON
}

// Document is the unit written to disk: one run's manifests in layer order.
type Document struct {
	Project   string              `json:"project,omitempty"`
	Seed      *int64              `json:"seed,omitempty"`
	Manifests []*scatter.Manifest `json:"manifests"`
}

// NewDocument collects manifests sorted by layer id so output is stable.
func NewDocument(project string, seed *int64, manifests map[string]*scatter.Manifest) *Document {
	doc := &Document{Project: project, Seed: seed, Manifests: make([]*scatter.Manifest, 0, len(manifests))}
	for _, m := range manifests {
		doc.Manifests = append(doc.Manifests, m)
	}
	sort.Slice(doc.Manifests, func(i, j int) bool {
		return doc.Manifests[i].LayerID < doc.Manifests[j].LayerID
	})
	return doc
}

// Manifest returns the manifest for layerID, or nil.
func (d *Document) Manifest(layerID string) *scatter.Manifest {
	for _, m := range d.Manifests {
		if m.LayerID == layerID {
			return m
		}
	}
	return nil
}

// Instances returns the total instance count across manifests.
func (d *Document) Instances() int {
	n := 0
	for _, m := range d.Manifests {
		n += len(m.Instances)
	}
	return n
}

// WriteJSON writes doc as indented JSON.
func WriteJSON(w io.Writer, doc *Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encoding manifests: %w", err)
	}
	return nil
}

// Write encodes doc in the given format.
func Write(w io.Writer, doc *Document, f Format) error {
	switch f {
	case FormatJSON:
		return WriteJSON(w, doc)
	case FormatZstd:
		return writeZstd(w, doc)
	case FormatGeoJSON:
		return WriteGeoJSON(w, doc)
	}
	return fmt.Errorf("unknown format %q", f)
}

// WriteFile writes doc to path, creating parent directories. The format
// follows the file extension.
func WriteFile(path string, doc *Document) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Write(f, doc, FormatFor(path)); err != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}

// ReadFile reads a JSON or zstd-compressed JSON document.
func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	switch FormatFor(path) {
	case FormatZstd:
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		return Read(dec)
	case FormatGeoJSON:
		return nil, fmt.Errorf("%s: geojson export cannot be read back", path)
	}
	return Read(f)
}

// Read decodes a JSON document.
func Read(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(bufio.NewReader(r)).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding manifests: %w", err)
	}
	return &doc, nil
}

func writeZstd(w io.Writer, doc *Document) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	bw := bufio.NewWriterSize(enc, 256*1024)
	if err := json.NewEncoder(bw).Encode(doc); err != nil {
		enc.Close()
		return fmt.Errorf("encoding manifests: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}
