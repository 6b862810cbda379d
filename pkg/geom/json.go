package geom

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON encodes the point as a two-element array [x, y].
func (p Point) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]int{p.X, p.Y})
}

// UnmarshalJSON decodes a point from a two-element array [x, y].
func (p *Point) UnmarshalJSON(data []byte) error {
	var pair []json.Number
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("point must be a [x, y] array: %w", err)
	}
	if len(pair) != 2 {
		return fmt.Errorf("point must have exactly 2 coordinates, got %d", len(pair))
	}
	x, err := pair[0].Int64()
	if err != nil {
		return fmt.Errorf("point x: %w", err)
	}
	y, err := pair[1].Int64()
	if err != nil {
		return fmt.Errorf("point y: %w", err)
	}
	p.X, p.Y = int(x), int(y)
	return nil
}

// MarshalJSON encodes the polygon as {"points": [[x,y], ...]}.
func (p Polygon) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Points []Point `json:"points"`
	}{Points: p.Points})
}

// UnmarshalJSON decodes a polygon from {"points": [[x,y], ...]}.
func (p *Polygon) UnmarshalJSON(data []byte) error {
	var doc struct {
		Points []Point `json:"points"`
	}
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	p.Points = doc.Points
	return nil
}
