package block

import "fmt"

// BID identifies a block. The low bit marks internal blocks (extended and
// subnode blocks); data blocks have it cleared.
type BID uint64

const InternalFlag BID = 0x1

// NID identifies a node or a subnode.
type NID uint32

func (b BID) IsInternal() bool {
	return b&InternalFlag != 0
}

// Sanitize normalizes b to the width it is stored with in format f, so
// identifiers read from disk compare equal to the ones handed out by the
// block tree.
func (b BID) Sanitize(f Format) BID {
	if f == FormatNarrow {
		return b & 0xFFFFFFFF
	}
	return b
}

func (b BID) String() string {
	return fmt.Sprintf("0x%x", uint64(b))
}

func (n NID) String() string {
	return fmt.Sprintf("0x%x", uint32(n))
}

// BREF is the identity and file location of a block.
type BREF struct {
	BID    BID
	Offset uint64
}

func (r BREF) String() string {
	return fmt.Sprintf("{bid=%s ib=0x%x}", r.BID, r.Offset)
}

// Entry is a block tree record: where a block lives and its logical size.
type Entry struct {
	BREF BREF
	CB   uint16
}

func (e Entry) String() string {
	return fmt.Sprintf("{bid=%s ib=0x%x cb=%d}", e.BREF.BID, e.BREF.Offset, e.CB)
}
