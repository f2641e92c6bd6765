package skydome_test

import (
	"testing"
	"time"

	"github.com/thurmanmarka/skydome"
)

func TestMoonPhaseAt(t *testing.T) {
	tests := []struct {
		t      time.Time
		name   string
		waxing bool
	}{
		{time.Date(2025, time.May, 4, 13, 52, 0, 0, time.UTC), "First Quarter", true},
		{time.Date(2025, time.May, 20, 11, 59, 0, 0, time.UTC), "Last Quarter", false},
		{time.Date(2025, time.May, 12, 16, 56, 0, 0, time.UTC), "Full Moon", false},
		{time.Date(2025, time.May, 27, 3, 2, 0, 0, time.UTC), "New Moon", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := skydome.MoonPhaseAt(tt.t)
			t.Logf("fraction %.3f elongation %.2f° waxing %v", p.Fraction, p.Elongation, p.Waxing)

			if p.Name != tt.name {
				t.Errorf("name = %q, want %q", p.Name, tt.name)
			}
			if tt.name == "First Quarter" || tt.name == "Last Quarter" {
				if p.Waxing != tt.waxing {
					t.Errorf("waxing = %v, want %v", p.Waxing, tt.waxing)
				}
			}
			if !p.Time.Equal(tt.t) {
				t.Errorf("time = %v, want %v", p.Time, tt.t)
			}
		})
	}
}

func TestMoonPhaseAt_ZoneIndependent(t *testing.T) {
	utc := time.Date(2025, time.May, 8, 6, 0, 0, 0, time.UTC)
	a := skydome.MoonPhaseAt(utc)
	b := skydome.MoonPhaseAt(utc.In(time.FixedZone("MST", -7*3600)))
	if a.Fraction != b.Fraction || a.Name != b.Name {
		t.Errorf("zone changed phase: %+v vs %+v", a, b)
	}
}
