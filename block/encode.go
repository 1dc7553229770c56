package block

import (
	"encoding/binary"
	"fmt"

	"github.com/dot5enko/pst-blocks/bits"
)

// encoder builds one disk sized block image. Every input check happens in
// newEncoder and the put helpers before the trailer is stamped, so a failed
// encode never returns a partially written block.
type encoder struct {
	buf    []byte
	writer bits.BitWriter
	layout Layout
	bref   BREF
	cb     int
}

func newEncoder(bref BREF, cb int, internal bool, f Format) (*encoder, error) {
	l, err := LayoutOf(f)
	if err != nil {
		return nil, err
	}

	if bref.BID.IsInternal() != internal {
		return nil, fmt.Errorf("%w: %s", ErrBIDKind, bref.BID)
	}
	if !bits.Fits(uint64(bref.BID), l.BIDSize) {
		return nil, fmt.Errorf("%w: bid %s in %s format", ErrIDOverflow, bref.BID, f)
	}

	diskSize := DiskSize(cb, f)
	if diskSize > MaxBlockSize {
		return nil, fmt.Errorf("%w: %d data bytes need %d bytes on disk, max %d", ErrBlockTooLarge, cb, diskSize, MaxBlockSize)
	}

	buf := make([]byte, diskSize)

	return &encoder{
		buf:    buf,
		writer: bits.NewEncodeBuffer(buf, binary.LittleEndian),
		layout: l,
		bref:   bref,
		cb:     cb,
	}, nil
}

func checkCount(n int) error {
	if n == 0 {
		return ErrEmptyBlock
	}
	if n > 0xFFFF {
		return fmt.Errorf("%w: %d entries, cEnt is 16 bits", ErrTooManyEntries, n)
	}
	return nil
}

// checkIDs runs before anything is written.
func (e *encoder) checkIDs(ids ...BID) error {
	for _, id := range ids {
		if !bits.Fits(uint64(id), e.layout.BIDSize) {
			return fmt.Errorf("%w: %s in %s format", ErrIDOverflow, id, e.layout.Format)
		}
	}
	return nil
}

func (e *encoder) putBID(id BID) {
	// widths are checked upfront
	_ = e.writer.PutUint(uint64(id), e.layout.BIDSize)
}

func (e *encoder) putNID(id NID) {
	e.writer.PutUint32(uint32(id))
	e.writer.EmptyBytes(e.layout.NIDPadding)
}

func (e *encoder) finish() ([]byte, error) {
	if e.writer.Position() != e.cb {
		panic(fmt.Sprintf("block %s: wrote %d bytes, expected %d", e.bref, e.writer.Position(), e.cb))
	}
	if err := StampTrailer(e.buf, e.cb, e.bref, e.layout.Format); err != nil {
		return nil, err
	}
	return e.buf, nil
}

// EncodeDataBlock builds the image of an external block holding data.
func EncodeDataBlock(bref BREF, data []byte, f Format) ([]byte, error) {
	e, err := newEncoder(bref, len(data), false, f)
	if err != nil {
		return nil, err
	}

	e.writer.Write(data)

	return e.finish()
}

// EncodeExtBlock builds a level 1 extended block (XBLOCK) whose children are
// data blocks. It never writes another level: a level 2 block is assembled
// by encoding the level 1 blocks first and passing their ids to EncodeXXBlock.
func EncodeExtBlock(bref BREF, totalSize uint32, children []BID, f Format) ([]byte, error) {
	return encodeExtBlock(bref, 1, totalSize, children, f)
}

// EncodeXXBlock builds a level 2 extended block over already encoded
// level 1 blocks.
func EncodeXXBlock(bref BREF, totalSize uint32, children []BID, f Format) ([]byte, error) {
	return encodeExtBlock(bref, 2, totalSize, children, f)
}

func encodeExtBlock(bref BREF, level uint8, totalSize uint32, children []BID, f Format) ([]byte, error) {
	if err := checkCount(len(children)); err != nil {
		return nil, err
	}
	if _, err := LayoutOf(f); err != nil {
		return nil, err
	}

	e, err := newEncoder(bref, ExtBlockDataSize(len(children), f), true, f)
	if err != nil {
		return nil, err
	}
	if err = e.checkIDs(children...); err != nil {
		return nil, err
	}

	e.writer.WriteByte(BTypeExt)
	e.writer.WriteByte(level)
	e.writer.PutUint16(uint16(len(children)))
	e.writer.PutUint32(totalSize)

	for _, child := range children {
		e.putBID(child)
	}

	return e.finish()
}

// EncodeSubnodeLeafBlock builds an SLBLOCK.
func EncodeSubnodeLeafBlock(bref BREF, entries []SubnodeLeafEntry, f Format) ([]byte, error) {
	if err := checkCount(len(entries)); err != nil {
		return nil, err
	}
	if _, err := LayoutOf(f); err != nil {
		return nil, err
	}

	e, err := newEncoder(bref, SubnodeLeafDataSize(len(entries), f), true, f)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err = e.checkIDs(entry.Data, entry.Sub); err != nil {
			return nil, err
		}
	}

	e.writeSubnodeHeader(0, len(entries))

	for _, entry := range entries {
		e.putNID(entry.NID)
		e.putBID(entry.Data)
		e.putBID(entry.Sub)
	}

	return e.finish()
}

// EncodeSubnodeIntermediateBlock builds an SIBLOCK.
func EncodeSubnodeIntermediateBlock(bref BREF, entries []SubnodeIntermediateEntry, f Format) ([]byte, error) {
	if err := checkCount(len(entries)); err != nil {
		return nil, err
	}
	if _, err := LayoutOf(f); err != nil {
		return nil, err
	}

	e, err := newEncoder(bref, SubnodeIntermediateDataSize(len(entries), f), true, f)
	if err != nil {
		return nil, err
	}
	for _, entry := range entries {
		if err = e.checkIDs(entry.Child); err != nil {
			return nil, err
		}
	}

	e.writeSubnodeHeader(1, len(entries))

	for _, entry := range entries {
		e.putNID(entry.NID)
		e.putBID(entry.Child)
	}

	return e.finish()
}

func (e *encoder) writeSubnodeHeader(level uint8, count int) {
	e.writer.WriteByte(BTypeSubnode)
	e.writer.WriteByte(level)
	e.writer.PutUint16(uint16(count))
	e.writer.EmptyBytes(e.layout.SubnodePadding)
}
