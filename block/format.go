package block

import (
	"fmt"
	"strings"
)

// Format is the container-wide identifier width. It is decided by the file
// header and never changes within one file.
type Format uint8

const (
	FormatUnknown Format = iota

	// 32-bit identifiers, 12 byte trailer
	FormatNarrow

	// 64-bit identifiers, 16 byte trailer
	FormatWide
)

func (f Format) String() string {
	switch f {
	case FormatNarrow:
		return "narrow"
	case FormatWide:
		return "wide"
	default:
		return fmt.Sprintf("format(%d)", uint8(f))
	}
}

// ParseFormat accepts "narrow"/"ansi" and "wide"/"unicode".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "narrow", "ansi":
		return FormatNarrow, nil
	case "wide", "unicode":
		return FormatWide, nil
	default:
		return FormatUnknown, fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// Layout holds every field width that depends on the format.
type Layout struct {
	Format Format

	BIDSize     int
	TrailerSize int

	// zero padding after the 4 byte subnode block header
	SubnodePadding int

	// unused bytes after the 4 byte nid of subnode entries
	NIDPadding int

	// nid + bidData + bidSub
	LeafEntrySize int
	// nid + bid
	IntermediateEntrySize int
}

var layouts = [...]Layout{
	FormatNarrow: {
		Format:                FormatNarrow,
		BIDSize:               4,
		TrailerSize:           NarrowTrailerSize,
		SubnodePadding:        0,
		NIDPadding:            0,
		LeafEntrySize:         4 + 4 + 4,
		IntermediateEntrySize: 4 + 4,
	},
	FormatWide: {
		Format:         FormatWide,
		BIDSize:        8,
		TrailerSize:    WideTrailerSize,
		SubnodePadding: 4,
		// nid is 4 bytes followed by 4 unused bytes
		NIDPadding:            4,
		LeafEntrySize:         8 + 8 + 8,
		IntermediateEntrySize: 8 + 8,
	},
}

// LayoutOf returns the width table of f. Unsupported formats are an error,
// they are never coerced into one of the known ones.
func LayoutOf(f Format) (Layout, error) {
	if f != FormatNarrow && f != FormatWide {
		return Layout{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, f)
	}
	return layouts[f], nil
}
