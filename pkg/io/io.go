// Package io reads and writes the JSON documents the CLI and API exchange:
// polygons on the way in, rectangle lists on the way out.
//
// A polygon document is an object with a "points" array of [x, y] pairs:
//
//	{"points": [[0,0], [2,0], [2,1], [1,1], [1,2], [0,2]]}
//
// A batch document is an array of polygon documents. Rectangle output pairs
// each rectangle's corners:
//
//	{"rects": [{"min": [0,0], "max": [2,1]}, ...]}
package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/rectcut/pkg/geom"
)

// ReadPolygon decodes a single polygon document from r.
func ReadPolygon(r io.Reader) (geom.Polygon, error) {
	var p geom.Polygon
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return geom.Polygon{}, fmt.Errorf("decode polygon: %w", err)
	}
	return p, nil
}

// ImportPolygon reads the polygon document at path.
func ImportPolygon(path string) (geom.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return geom.Polygon{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadPolygon(f)
}

// ReadBatch decodes an array of polygon documents from r.
func ReadBatch(r io.Reader) ([]geom.Polygon, error) {
	var batch []geom.Polygon
	if err := json.NewDecoder(r).Decode(&batch); err != nil {
		return nil, fmt.Errorf("decode batch: %w", err)
	}
	return batch, nil
}

// ImportBatch reads the polygon array at path.
func ImportBatch(path string) ([]geom.Polygon, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadBatch(f)
}

// rectsDoc is the output document shape.
type rectsDoc struct {
	Rects []geom.Rect `json:"rects"`
}

// WriteRects encodes the rectangles as an indented JSON document to w.
func WriteRects(rects []geom.Rect, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if rects == nil {
		rects = []geom.Rect{}
	}
	if err := enc.Encode(rectsDoc{Rects: rects}); err != nil {
		return fmt.Errorf("encode rects: %w", err)
	}
	return nil
}

// MarshalRects returns the rectangle document as bytes.
func MarshalRects(rects []geom.Rect) ([]byte, error) {
	if rects == nil {
		rects = []geom.Rect{}
	}
	return json.Marshal(rectsDoc{Rects: rects})
}

// UnmarshalRects decodes a rectangle document.
func UnmarshalRects(data []byte) ([]geom.Rect, error) {
	var doc rectsDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode rects: %w", err)
	}
	return doc.Rects, nil
}
