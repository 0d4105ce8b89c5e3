package types

import (
	"errors"
	"math"
	"testing"
)

func TestParseCategory(t *testing.T) {
	tests := []struct {
		input   string
		want    Category
		wantErr bool
	}{
		{"", CategoryAll, false},
		{"all", CategoryAll, false},
		{"Tourism", CategoryTourism, false},
		{" historic ", CategoryHistoric, false},
		{"TEMPLE", CategoryTemple, false},
		{"restaurant", CategoryAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseCategory(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidCategory) {
					t.Fatalf("ParseCategory(%q) error = %v, want ErrInvalidCategory", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCategory(%q) unexpected error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseCategory(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseSortMode(t *testing.T) {
	tests := []struct {
		input   string
		want    SortMode
		wantErr bool
	}{
		{"", SortNearest, false},
		{"nearest", SortNearest, false},
		{"Name", SortName, false},
		{"none", SortNone, false},
		{"random", SortNearest, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseSortMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseSortMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseSortMode(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCoords_Validate(t *testing.T) {
	tests := []struct {
		name    string
		coords  Coords
		wantErr error
	}{
		{"delhi", NewCoords(28.6139, 77.2090), nil},
		{"north pole", NewCoords(90, 0), nil},
		{"antimeridian", NewCoords(0, -180), nil},
		{"latitude too large", NewCoords(90.1, 0), ErrInvalidLatitude},
		{"latitude NaN", NewCoords(math.NaN(), 0), ErrInvalidLatitude},
		{"longitude too small", NewCoords(0, -180.5), ErrInvalidLongitude},
		{"longitude infinite", NewCoords(0, math.Inf(1)), ErrInvalidLongitude},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.coords.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
