package sorting

import (
	"errors"
	"testing"

	"github.com/kailas-cloud/autospecs/internal/domain"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", Asc, false},
		{"asc", Asc, false},
		{"desc", Desc, false},
		{"DESC", "", true},
		{"up", "", true},
	}

	for _, tt := range tests {
		got, err := ParseDirection(tt.in)
		if tt.wantErr {
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("%q: err = %v, want ErrInvalidInput", tt.in, err)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Errorf("%q: got (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}
