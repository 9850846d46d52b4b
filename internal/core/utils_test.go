package core

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		input   string
		want    string
		wantErr bool
	}{
		{"2025-01-15", "2025-01-15", false},
		{"2023-01-01", "2023-01-01", false},
		{"invalid", "", true},
		{"01/15/2025", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && got.Format(APIDateFmt) != tt.want {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.input, got.Format(APIDateFmt), tt.want)
			}
		})
	}
}

func TestParseISOTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			"RFC 3339 UTC",
			"2025-01-15T10:00:00Z",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			false,
		},
		{
			"RFC 3339 with offset",
			"2025-01-15T19:00:00+09:00",
			time.Date(2025, 1, 15, 19, 0, 0, 0, time.FixedZone("", 9*3600)),
			false,
		},
		{
			"zone-less treated as UTC",
			"2025-01-15T10:00:00",
			time.Date(2025, 1, 15, 10, 0, 0, 0, time.UTC),
			false,
		},
		{"date only", "2025-01-15", time.Time{}, true},
		{"empty", "", time.Time{}, true},
		{"garbage", "not-a-time", time.Time{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseISOTime(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseISOTime(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
				return
			}
			if !tt.wantErr && !got.Equal(tt.want) {
				t.Errorf("ParseISOTime(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatDurationHM(t *testing.T) {
	tests := []struct {
		name  string
		input time.Duration
		want  string
	}{
		{"hours and minutes", 90 * time.Minute, "1h 30m"},
		{"minutes only", 45 * time.Minute, "45m"},
		{"exact hours", 2 * time.Hour, "2h 0m"},
		{"under a minute", 30 * time.Second, "0m"},
		{"zero", 0, "0m"},
		{"negative clamps to zero", -time.Hour, "0m"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDurationHM(tt.input); got != tt.want {
				t.Errorf("FormatDurationHM(%v) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		n     int
		want  string
	}{
		{"shorter than limit", "hello", 10, "hello"},
		{"exact limit", "hello", 5, "hello"},
		{"ascii truncated", "hello world", 5, "hello"},
		{"japanese truncated on rune boundary", "明日の会議の準備をする", 5, "明日の会議"},
		{"zero limit", "hello", 0, ""},
		{"empty input", "", 5, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateRunes(tt.input, tt.n); got != tt.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
			}
		})
	}
}

func TestGetTZ(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Asia/Tokyo", "Asia/Tokyo"},
		{"UTC", "UTC"},
		{"", DefaultTZ},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := GetTZ(tt.name)
			if tt.name == "" {
				if loc.String() != DefaultTZ {
					t.Errorf("GetTZ(%q) = %v, want %v", tt.name, loc.String(), DefaultTZ)
				}
			} else {
				if loc.String() != tt.want {
					t.Errorf("GetTZ(%q) = %v, want %v", tt.name, loc.String(), tt.want)
				}
			}
		})
	}
}
