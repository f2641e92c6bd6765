package timeutil

import (
	"errors"
	"math"
	"testing"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"
	"github.com/soniakeys/meeus/v3/julian"
)

func TestJulianDay_KnownEpochs(t *testing.T) {
	tests := []struct {
		name string
		t    time.Time
		want float64
	}{
		{"J2000", time.Date(2000, time.January, 1, 12, 0, 0, 0, time.UTC), 2451545.0},
		{"Sputnik", time.Date(1957, time.October, 4, 19, 26, 24, 0, time.UTC), 2436116.31},
		{"1900 Jan 0.5", time.Date(1899, time.December, 31, 12, 0, 0, 0, time.UTC), 2415020.0},
		{"2100 Mar 1", time.Date(2100, time.March, 1, 0, 0, 0, 0, time.UTC), 2488128.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := JulianDay(tt.t)
			if math.Abs(got-tt.want) > 1e-6 {
				t.Errorf("JulianDay(%v) = %.6f, want %.6f", tt.t, got, tt.want)
			}
		})
	}
}

func TestJulianDay_MatchesOtherImplementations(t *testing.T) {
	// go-satellite's day count is only valid from March 1900 to February 2100.
	start := time.Date(1901, time.March, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 400; i++ {
		tm := start.Add(time.Duration(i) * 2741 * time.Hour)

		got := JulianDay(tm)

		if ref := julian.TimeToJD(tm); math.Abs(got-ref) > 1e-6 {
			t.Fatalf("%v: JulianDay=%.8f, meeus=%.8f", tm, got, ref)
		}

		y, mo, d := tm.Date()
		h, mi, s := tm.Clock()
		if ref := satellite.JDay(y, int(mo), d, h, mi, s); math.Abs(got-ref) > 1e-6 {
			t.Fatalf("%v: JulianDay=%.8f, go-satellite=%.8f", tm, got, ref)
		}
	}
}

func TestJulianDay_StrictlyIncreasing(t *testing.T) {
	prev := JulianDay(time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC))
	tm := time.Date(2023, time.December, 31, 23, 0, 0, 0, time.UTC)
	for i := 0; i < 24*70; i++ {
		tm = tm.Add(time.Hour)
		jd := JulianDay(tm)
		if jd <= prev {
			t.Fatalf("JulianDay not increasing at %v: %.6f <= %.6f", tm, jd, prev)
		}
		if math.Abs(jd-prev-1.0/24.0) > 1e-8 {
			t.Fatalf("one hour step at %v gave %.10f days", tm, jd-prev)
		}
		prev = jd
	}
}

func TestJulianDay_IgnoresLocation(t *testing.T) {
	utc := time.Date(2024, time.June, 21, 4, 0, 0, 0, time.UTC)
	east := utc.In(time.FixedZone("UTC+8", 8*3600))
	if JulianDay(utc) != JulianDay(east) {
		t.Errorf("JulianDay differs by location: %v vs %v", JulianDay(utc), JulianDay(east))
	}
}

func TestJulianCenturies(t *testing.T) {
	if got := JulianCenturies(J2000); got != 0 {
		t.Errorf("JulianCenturies(J2000) = %v, want 0", got)
	}
	if got := JulianCenturies(J2000 + DaysPerCentury); math.Abs(got-1) > 1e-12 {
		t.Errorf("JulianCenturies(J2000+36525) = %v, want 1", got)
	}
}

func TestNormalize360(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{360, 0},
		{-30, 330},
		{725, 5},
		{-720, 0},
		{-1e-14, 0},
	}
	for _, tt := range tests {
		got := Normalize360(tt.in)
		if math.Abs(got-tt.want) > 1e-9 || got >= 360 || got < 0 {
			t.Errorf("Normalize360(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeHourAngle(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{0, 0},
		{180, 180},
		{-180, 180},
		{181, -179},
		{359, -1},
		{-190, 170},
	}
	for _, tt := range tests {
		if got := NormalizeHourAngle(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeHourAngle(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApproxRefraction(t *testing.T) {
	if r := ApproxRefraction(0); r < 0.45 || r > 0.6 {
		t.Errorf("refraction at horizon = %.3f°, want ~0.5°", r)
	}
	if r := ApproxRefraction(-5); r != 0 {
		t.Errorf("refraction well below horizon = %v, want 0", r)
	}
	if r := ApproxRefraction(89); r > 0.01 {
		t.Errorf("refraction near zenith = %v, want ~0", r)
	}
}

func TestLocalToUTC_Shanghai(t *testing.T) {
	got, err := LocalToUTC("2024-06-21T12:00", 121.5)
	if err != nil {
		t.Fatalf("LocalToUTC error: %v", err)
	}
	want := time.Date(2024, time.June, 21, 4, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("LocalToUTC = %v, want %v", got, want)
	}
	if got.Location() != time.UTC {
		t.Errorf("LocalToUTC location = %v, want UTC", got.Location())
	}
}

func TestLocalToUTC_Offsets(t *testing.T) {
	tests := []struct {
		name  string
		local string
		lon   float64
		want  time.Time
	}{
		{"greenwich", "2024-03-20T12:00", 0, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC)},
		{"phoenix", "2025-11-30T07:13", -112.074, time.Date(2025, 11, 30, 14, 13, 0, 0, time.UTC)},
		{"day rollback", "2024-01-01T03:30", 135, time.Date(2023, 12, 31, 18, 30, 0, 0, time.UTC)},
		{"day rollover", "2024-12-31T22:00", -150, time.Date(2025, 1, 1, 8, 0, 0, 0, time.UTC)},
		{"half rounds away", "2024-01-01T00:00", 7.5, time.Date(2023, 12, 31, 23, 0, 0, 0, time.UTC)},
		{"dateline", "2024-01-01T00:00", 180, time.Date(2023, 12, 31, 12, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := LocalToUTC(tt.local, tt.lon)
			if err != nil {
				t.Fatalf("LocalToUTC(%q, %v) error: %v", tt.local, tt.lon, err)
			}
			if !got.Equal(tt.want) {
				t.Errorf("LocalToUTC(%q, %v) = %v, want %v", tt.local, tt.lon, got, tt.want)
			}
		})
	}
}

func TestLocalToUTC_RejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"2024-06-21",
		"2024-06-21 12:00",
		"2024-06-21T12:00:00",
		"2024-06-21T12:00Z",
		"2024-6-21T12:00",
		"2024-06-21T1:00",
		"21/06/2024 12:00",
		"2024-13-01T00:00",
		"2024-02-30T00:00",
		"2024-06-21T24:00",
		" 2024-06-21T12:00",
	}
	for _, s := range bad {
		_, err := LocalToUTC(s, 0)
		var fe *FormatError
		if !errors.As(err, &fe) {
			t.Errorf("LocalToUTC(%q) error = %v, want *FormatError", s, err)
			continue
		}
		if fe.Input != s {
			t.Errorf("FormatError.Input = %q, want %q", fe.Input, s)
		}
	}
}

func TestLocalToUTC_IndependentOfProcessZone(t *testing.T) {
	orig := time.Local
	defer func() { time.Local = orig }()

	first, err := LocalToUTC("2024-06-21T12:00", 121.5)
	if err != nil {
		t.Fatal(err)
	}

	for _, tz := range []*time.Location{
		time.FixedZone("UTC-11", -11*3600),
		time.FixedZone("UTC+14", 14*3600),
		time.FixedZone("UTC+5:45", 5*3600+45*60),
	} {
		time.Local = tz
		again, err := LocalToUTC("2024-06-21T12:00", 121.5)
		if err != nil {
			t.Fatal(err)
		}
		if !again.Equal(first) || again.Location() != first.Location() {
			t.Errorf("with time.Local=%v got %v, want %v", tz, again, first)
		}
	}
}
