package wind

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/swayrig/internal/dynamo"
)

func TestNewValidation(t *testing.T) {
	tests := []struct {
		name            string
		speed, strength float64
		wantErr         bool
	}{
		{"defaults", DefaultSpeed, DefaultStrength, false},
		{"still air", 0, 0, false},
		{"negative speed", -1, 0.04, true},
		{"negative strength", 0.8, -0.1, true},
		{"nan strength", 0.8, math.NaN(), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.speed, tt.strength)
			if tt.wantErr != errors.Is(err, dynamo.ErrParameterBounds) {
				t.Errorf("New(%v, %v) err = %v", tt.speed, tt.strength, err)
			}
		})
	}
}

func TestAdvanceFormula(t *testing.T) {
	w, err := New(0.8, 0.04)
	if err != nil {
		t.Fatal(err)
	}
	w.Advance(0.5)

	wantTime := 0.4
	if math.Abs(w.Time-wantTime) > 1e-12 {
		t.Fatalf("time = %v, want %v", w.Time, wantTime)
	}
	if want := math.Sin(wantTime) * 0.04; math.Abs(w.X-want) > 1e-12 {
		t.Errorf("x = %v, want %v", w.X, want)
	}
	if want := math.Cos(wantTime*0.7+1.3) * 0.04 * 0.6; math.Abs(w.Z-want) > 1e-12 {
		t.Errorf("z = %v, want %v", w.Z, want)
	}
}

func TestBounded(t *testing.T) {
	const strength = 0.25
	w, _ := New(1.7, strength)
	for i := 0; i < 20000; i++ {
		w.Advance(0.013)
		if math.Abs(w.X) > strength {
			t.Fatalf("x = %v exceeds %v at t=%v", w.X, strength, w.Time)
		}
		if math.Abs(w.Z) > strength*ZScale {
			t.Fatalf("z = %v exceeds %v at t=%v", w.Z, strength*ZScale, w.Time)
		}
	}
}

func TestTimeMonotonic(t *testing.T) {
	w := Default()
	prev := w.Time
	for _, d := range []float64{0.016, 0, -0.5, 0.05} {
		w.Advance(d)
		if w.Time < prev {
			t.Fatalf("time went backwards: %v -> %v", prev, w.Time)
		}
		prev = w.Time
	}
}

func TestSampleIsCopy(t *testing.T) {
	w := Default()
	w.Advance(1)
	s := w.Sample()
	w.Advance(1)
	if s.Time == w.Time {
		t.Error("sample should not track later advances")
	}
}
