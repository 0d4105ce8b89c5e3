package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidCategory = errors.New("category must be one of all, tourism, historic, temple")
	ErrInvalidSortMode = errors.New("sort must be one of nearest, name, none")
)

// Category restricts which points of interest a search returns
type Category int

const (
	CategoryAll Category = iota
	CategoryTourism
	CategoryHistoric
	CategoryTemple
)

var categoryNames = map[Category]string{
	CategoryAll:      "all",
	CategoryTourism:  "tourism",
	CategoryHistoric: "historic",
	CategoryTemple:   "temple",
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("unknown (%d)", int(c))
}

func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// ParseCategory parses a category name. The empty string means CategoryAll.
func ParseCategory(s string) (Category, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return CategoryAll, nil
	}
	for c, name := range categoryNames {
		if name == s {
			return c, nil
		}
	}
	return CategoryAll, fmt.Errorf("%w: %q", ErrInvalidCategory, s)
}

// SortMode selects the ordering of search results
type SortMode int

const (
	SortNearest SortMode = iota
	SortName
	SortNone
)

func (m SortMode) String() string {
	switch m {
	case SortNearest:
		return "nearest"
	case SortName:
		return "name"
	case SortNone:
		return "none"
	default:
		return fmt.Sprintf("unknown (%d)", int(m))
	}
}

func (m SortMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

// ParseSortMode parses a sort mode name. The empty string means SortNearest.
func ParseSortMode(s string) (SortMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nearest":
		return SortNearest, nil
	case "name":
		return SortName, nil
	case "none":
		return SortNone, nil
	default:
		return SortNearest, fmt.Errorf("%w: %q", ErrInvalidSortMode, s)
	}
}
