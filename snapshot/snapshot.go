// Package snapshot defines the saved world format: an ordered list of entity
// records plus the global parameters. Encoding is deterministic so an
// unchanged snapshot always serializes to identical bytes.
package snapshot

import (
	"errors"
	"fmt"
	"math"

	"gopkg.in/yaml.v3"
)

// ErrParse wraps every validation failure during Decode. The live world must
// not be touched when Decode returns an error.
var ErrParse = errors.New("snapshot: parse error")

type Snapshot struct {
	Gravity  [2]float64 `yaml:"gravity"`
	Score    int        `yaml:"score"`
	Entities []Record   `yaml:"entities"`
}

type Record struct {
	Kind     string     `yaml:"kind"`
	Position [2]float64 `yaml:"position"`
	Velocity [2]float64 `yaml:"velocity"`
	Angle    float64    `yaml:"angle"`
}

// Encode serializes a snapshot. Non-finite values are refused rather than
// written, so every encoded snapshot is loadable.
func Encode(s *Snapshot) ([]byte, error) {
	if s == nil {
		return nil, fmt.Errorf("snapshot: encode nil snapshot")
	}
	if err := checkVec("gravity", s.Gravity); err != nil {
		return nil, err
	}
	for i, rec := range s.Entities {
		if err := checkRecord(i, rec); err != nil {
			return nil, err
		}
	}
	return yaml.Marshal(s)
}

// decode documents use pointer fields so a missing required field is
// distinguishable from a zero value. Unknown fields are ignored.
type snapshotDoc struct {
	Gravity  *[2]float64 `yaml:"gravity"`
	Score    *int        `yaml:"score"`
	Entities []recordDoc `yaml:"entities"`
}

type recordDoc struct {
	Kind     *string     `yaml:"kind"`
	Position *[2]float64 `yaml:"position"`
	Velocity *[2]float64 `yaml:"velocity"`
	Angle    *float64    `yaml:"angle"`
}

// Decode parses and fully validates a snapshot. knownKind gates the entity
// kind tags; pass nil to accept any kind.
func Decode(data []byte, knownKind func(string) bool) (*Snapshot, error) {
	var doc snapshotDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	if doc.Gravity == nil {
		return nil, fmt.Errorf("%w: missing field %q", ErrParse, "gravity")
	}
	if err := checkVec("gravity", *doc.Gravity); err != nil {
		return nil, err
	}
	if doc.Score == nil {
		return nil, fmt.Errorf("%w: missing field %q", ErrParse, "score")
	}

	out := &Snapshot{
		Gravity:  *doc.Gravity,
		Score:    *doc.Score,
		Entities: make([]Record, 0, len(doc.Entities)),
	}

	for i, rec := range doc.Entities {
		if rec.Kind == nil {
			return nil, fmt.Errorf("%w: entity %d: missing field %q", ErrParse, i, "kind")
		}
		if knownKind != nil && !knownKind(*rec.Kind) {
			return nil, fmt.Errorf("%w: entity %d: unknown kind %q", ErrParse, i, *rec.Kind)
		}
		if rec.Position == nil {
			return nil, fmt.Errorf("%w: entity %d: missing field %q", ErrParse, i, "position")
		}
		if rec.Velocity == nil {
			return nil, fmt.Errorf("%w: entity %d: missing field %q", ErrParse, i, "velocity")
		}
		if rec.Angle == nil {
			return nil, fmt.Errorf("%w: entity %d: missing field %q", ErrParse, i, "angle")
		}
		record := Record{
			Kind:     *rec.Kind,
			Position: *rec.Position,
			Velocity: *rec.Velocity,
			Angle:    *rec.Angle,
		}
		if err := checkRecord(i, record); err != nil {
			return nil, err
		}
		out.Entities = append(out.Entities, record)
	}

	return out, nil
}

func checkRecord(i int, rec Record) error {
	if err := checkVec(fmt.Sprintf("entity %d: position", i), rec.Position); err != nil {
		return err
	}
	if err := checkVec(fmt.Sprintf("entity %d: velocity", i), rec.Velocity); err != nil {
		return err
	}
	if !isFinite(rec.Angle) {
		return fmt.Errorf("%w: entity %d: non-finite value in field %q", ErrParse, i, "angle")
	}
	return nil
}

func checkVec(field string, v [2]float64) error {
	if !isFinite(v[0]) || !isFinite(v[1]) {
		return fmt.Errorf("%w: %s: non-finite value", ErrParse, field)
	}
	return nil
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
