package block

import "github.com/dot5enko/pst-blocks/bits"

// block on disk, always a multiple of BlockUnitSize bytes

// *--------------------------------*
// | data (cb bytes)				|
// *--------------------------------*
// | zero padding					|
// *--------------------------------*
// | trailer (12 or 16 bytes)		|
// *--------------------------------*

const (
	BlockUnitSize = 64
	MaxBlockSize  = 8192

	WideTrailerSize   = 16
	NarrowTrailerSize = 12

	// btype + cLevel + cEnt + lcbTotal
	ExtBlockHeaderSize = 1 + 1 + 2 + 4
	// btype + cLevel + cEnt
	SubnodeBlockHeaderSize = 1 + 1 + 2
)

// TrailerSize returns 0 for unsupported formats.
func TrailerSize(f Format) int {
	switch f {
	case FormatWide:
		return WideTrailerSize
	case FormatNarrow:
		return NarrowTrailerSize
	default:
		return 0
	}
}

// DiskSize is the number of bytes a block with cb logical bytes occupies on disk.
func DiskSize(cb int, f Format) int {
	return bits.RoundUp(cb+TrailerSize(f), BlockUnitSize)
}

// Signature derives the trailer signature of a block from its location
// and identifier.
func Signature(offset uint64, bid BID) uint16 {
	x := offset ^ uint64(bid)
	return uint16(x>>16) ^ uint16(x)
}

// The data size helpers return 0 for an unsupported format, LayoutOf
// reports the error.

func ExtBlockDataSize(children int, f Format) int {
	l, err := LayoutOf(f)
	if err != nil {
		return 0
	}
	return ExtBlockHeaderSize + children*l.BIDSize
}

func SubnodeLeafDataSize(entries int, f Format) int {
	l, err := LayoutOf(f)
	if err != nil {
		return 0
	}
	return SubnodeBlockHeaderSize + l.SubnodePadding + entries*l.LeafEntrySize
}

func SubnodeIntermediateDataSize(entries int, f Format) int {
	l, err := LayoutOf(f)
	if err != nil {
		return 0
	}
	return SubnodeBlockHeaderSize + l.SubnodePadding + entries*l.IntermediateEntrySize
}
