package snapshot

import (
	"bytes"
	"errors"
	"math"
	"strings"
	"testing"
)

func knownTestKind(kind string) bool {
	switch kind {
	case "player", "ball", "box", "bouncer", "coin":
		return true
	}
	return false
}

func sampleSnapshot() *Snapshot {
	return &Snapshot{
		Gravity: [2]float64{0, 900},
		Score:   30,
		Entities: []Record{
			{Kind: "player", Position: [2]float64{100, 200}, Velocity: [2]float64{5, -3}, Angle: 0.5},
			{Kind: "coin", Position: [2]float64{-40, 12.5}, Velocity: [2]float64{0, 0}, Angle: 0},
			{Kind: "box", Position: [2]float64{300, 300}, Velocity: [2]float64{0, 100}, Angle: math.Pi / 4},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	want := sampleSnapshot()

	data, err := Encode(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}

	got, err := Decode(data, knownTestKind)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	if got.Gravity != want.Gravity {
		t.Fatalf("gravity: got %v, want %v", got.Gravity, want.Gravity)
	}
	if got.Score != want.Score {
		t.Fatalf("score: got %d, want %d", got.Score, want.Score)
	}
	if len(got.Entities) != len(want.Entities) {
		t.Fatalf("entities: got %d, want %d", len(got.Entities), len(want.Entities))
	}
	for i := range want.Entities {
		if got.Entities[i] != want.Entities[i] {
			t.Fatalf("entity %d: got %+v, want %+v", i, got.Entities[i], want.Entities[i])
		}
	}
}

func TestEncodeIsDeterministic(t *testing.T) {
	first, err := Encode(sampleSnapshot())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	second, err := Encode(sampleSnapshot())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("same snapshot encoded differently:\n%s\n---\n%s", first, second)
	}

	decoded, err := Decode(first, knownTestKind)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	again, err := Encode(decoded)
	if err != nil {
		t.Fatalf("re-encode: %v", err)
	}
	if !bytes.Equal(first, again) {
		t.Fatalf("decode/encode cycle changed bytes:\n%s\n---\n%s", first, again)
	}
}

func TestEncodeRejectsNonFinite(t *testing.T) {
	s := sampleSnapshot()
	s.Entities[1].Velocity[0] = math.Inf(1)
	if _, err := Encode(s); err == nil {
		t.Fatal("expected error for non-finite velocity")
	}

	s = sampleSnapshot()
	s.Gravity[1] = math.NaN()
	if _, err := Encode(s); err == nil {
		t.Fatal("expected error for NaN gravity")
	}
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		wantMsg string
	}{
		{
			name:    "not_yaml",
			input:   "{{{{",
			wantMsg: "",
		},
		{
			name:    "missing_gravity",
			input:   "score: 0\nentities: []\n",
			wantMsg: "gravity",
		},
		{
			name:    "missing_score",
			input:   "gravity: [0, 900]\nentities: []\n",
			wantMsg: "score",
		},
		{
			name:    "unknown_kind",
			input:   "gravity: [0, 900]\nscore: 0\nentities:\n- kind: dragon\n  position: [0, 0]\n  velocity: [0, 0]\n  angle: 0\n",
			wantMsg: "unknown kind \"dragon\"",
		},
		{
			name:    "missing_position",
			input:   "gravity: [0, 900]\nscore: 0\nentities:\n- kind: ball\n  velocity: [0, 0]\n  angle: 0\n",
			wantMsg: "position",
		},
		{
			name:    "missing_velocity",
			input:   "gravity: [0, 900]\nscore: 0\nentities:\n- kind: ball\n  position: [0, 0]\n  angle: 0\n",
			wantMsg: "velocity",
		},
		{
			name:    "non_finite_angle",
			input:   "gravity: [0, 900]\nscore: 0\nentities:\n- kind: ball\n  position: [0, 0]\n  velocity: [0, 0]\n  angle: .nan\n",
			wantMsg: "angle",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.input), knownTestKind)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, ErrParse) {
				t.Fatalf("expected ErrParse, got %v", err)
			}
			if tc.wantMsg != "" && !strings.Contains(err.Error(), tc.wantMsg) {
				t.Fatalf("expected error mentioning %q, got %v", tc.wantMsg, err)
			}
		})
	}
}

func TestDecodeIgnoresUnknownFields(t *testing.T) {
	input := "gravity: [0, 900]\nscore: 10\nversion: 3\nentities:\n- kind: ball\n  position: [1, 2]\n  velocity: [3, 4]\n  angle: 0.25\n  color: red\n"

	got, err := Decode([]byte(input), knownTestKind)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Score != 10 || len(got.Entities) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
	want := Record{Kind: "ball", Position: [2]float64{1, 2}, Velocity: [2]float64{3, 4}, Angle: 0.25}
	if got.Entities[0] != want {
		t.Fatalf("entity: got %+v, want %+v", got.Entities[0], want)
	}
}

func TestDecodeWithoutKindFilter(t *testing.T) {
	input := "gravity: [0, 0]\nscore: 0\nentities:\n- kind: anything\n  position: [0, 0]\n  velocity: [0, 0]\n  angle: 0\n"

	if _, err := Decode([]byte(input), nil); err != nil {
		t.Fatalf("decode without filter should accept any kind, got %v", err)
	}
}
