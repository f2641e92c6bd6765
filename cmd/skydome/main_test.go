package main

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"
	"testing"
	"time"
)

func TestInstant(t *testing.T) {
	got, err := instant("2024-06-21T12:00", "", 121.5)
	if err != nil {
		t.Fatal(err)
	}
	if want := time.Date(2024, time.June, 21, 4, 0, 0, 0, time.UTC); !got.Equal(want) {
		t.Errorf("local = %v, want %v", got, want)
	}

	got, err = instant("", "2024-06-21T06:00:00+02:00", 0)
	if err != nil {
		t.Fatal(err)
	}
	if got.Hour() != 4 || got.Location() != time.UTC {
		t.Errorf("utc = %v, want 04:00 UTC", got)
	}

	if _, err := instant("2024-06-21T12:00", "2024-06-21T04:00:00Z", 0); err == nil {
		t.Error("expected error for both -local and -utc")
	}
	if _, err := instant("21/06/2024 12:00", "", 0); err == nil {
		t.Error("expected error for malformed -local")
	}
}

func TestRun_ComputeJSON(t *testing.T) {
	var buf bytes.Buffer
	code := run("compute", []string{
		"-lat", "31.2", "-lon", "121.5",
		"-local", "2024-06-21T12:00",
		"-lunar", "ephemeris",
		"-json",
	}, &buf)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}

	var out computeOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("bad JSON %q: %v", buf.String(), err)
	}
	if out.Altitude <= 60 {
		t.Errorf("altitude = %.3f, want > 60", out.Altitude)
	}
	if out.Strategy != "meeus" || out.Lunar != "ephemeris" {
		t.Errorf("models = %s/%s", out.Strategy, out.Lunar)
	}
	n := math.Sqrt(out.Sun[0]*out.Sun[0] + out.Sun[1]*out.Sun[1] + out.Sun[2]*out.Sun[2])
	if math.Abs(n-1) > 1e-6 {
		t.Errorf("|sun| = %v", n)
	}
}

func TestRun_ComputeHuman(t *testing.T) {
	var buf bytes.Buffer
	if code := run("compute", []string{"-lat", "0", "-lon", "0", "-utc", "2024-03-20T12:00:00Z", "-strategy", "analytic"}, &buf); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	for _, want := range []string{"Sun altitude", "Illumination", "sun=analytic moon=heuristic"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("output missing %q:\n%s", want, buf.String())
		}
	}
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"bad local time", []string{"-local", "2024-06-21"}, 1},
		{"bad latitude", []string{"-lat", "123"}, 1},
		{"bad strategy", []string{"-strategy", "vsop"}, 1},
		{"unknown flag", []string{"-nope"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if code := run("compute", tt.args, &buf); code != tt.code {
				t.Errorf("exit code %d, want %d", code, tt.code)
			}
		})
	}
}

func TestRun_Phase(t *testing.T) {
	var buf bytes.Buffer
	if code := run("phase", []string{"-utc", "2025-05-12T16:56:00Z"}, &buf); code != 0 {
		t.Fatalf("exit code %d", code)
	}
	if !strings.Contains(buf.String(), "Full Moon") {
		t.Errorf("output:\n%s", buf.String())
	}
}

func TestRun_RiseSetJSON(t *testing.T) {
	var buf bytes.Buffer
	code := run("riseset", []string{"-lat", "33.4484", "-lon", "-112.074", "-date", "2025-11-28", "-json"}, &buf)
	if code != 0 {
		t.Fatalf("exit code %d", code)
	}

	var out riseSetOutput
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("bad JSON: %v", err)
	}
	if out.Offset != -7 {
		t.Errorf("offset = %d, want -7", out.Offset)
	}
	if out.Sunrise == nil || out.Sunset == nil {
		t.Fatalf("missing sunrise/sunset: %+v", out)
	}
	// Almanac sunrise 07:11 MST.
	want := time.Date(2025, time.November, 28, 7, 11, 0, 0, time.FixedZone("", -7*3600))
	if d := out.Sunrise.Sub(want); d < -3*time.Minute || d > 3*time.Minute {
		t.Errorf("sunrise %v, want ~%v", out.Sunrise, want)
	}
	if len(out.Twilight) != 3 || len(out.Golden) != 2 || len(out.Blue) != 2 {
		t.Errorf("twilight %d golden %d blue %d", len(out.Twilight), len(out.Golden), len(out.Blue))
	}
}
