package formatting_test

import (
	"testing"

	"github.com/JaimeStill/unifix/pkg/formatting"
)

func TestParseBytes(t *testing.T) {
	tests := []struct {
		input   string
		want    int64
		wantErr bool
	}{
		{"1024", 1024, false},
		{"10MB", 10 * 1024 * 1024, false},
		{"1.5 kb", 1536, false},
		{"", 0, true},
		{"ten megs", 0, true},
		{"5QB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		n         int64
		precision int
		want      string
	}{
		{0, 2, "0 B"},
		{512, 0, "512 B"},
		{1536, 1, "1.5 KB"},
		{5 * 1024 * 1024, -1, "5 MB"},
	}

	for _, tt := range tests {
		if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
			t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
		}
	}
}
