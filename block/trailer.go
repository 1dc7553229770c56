package block

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dot5enko/pst-blocks/bits"
	"github.com/dot5enko/pst-blocks/crc"
)

// Trailer is the footer stored in the last TrailerSize bytes of every block.
//
// wide:   cb u16 | sig u16 | crc u32 | bid u64
// narrow: cb u16 | sig u16 | bid u32 | crc u32
type Trailer struct {
	CB        uint16
	Signature uint16
	CRC       uint32
	BID       BID
}

// ReadTrailer decodes the trailer at the end of a disk sized block.
func ReadTrailer(raw []byte, f Format) (t Trailer, topErr error) {
	l, topErr := LayoutOf(f)
	if topErr != nil {
		return t, topErr
	}

	if len(raw) < l.TrailerSize {
		return t, fmt.Errorf("%w: %d bytes cannot hold a %d byte trailer", ErrBufferSize, len(raw), l.TrailerSize)
	}

	reader := bits.NewReader(bytes.NewReader(raw[len(raw)-l.TrailerSize:]), binary.LittleEndian)

	if t.CB, topErr = reader.ReadU16(); topErr != nil {
		return t, fmt.Errorf("unable to decode trailer cb: %w", topErr)
	}
	if t.Signature, topErr = reader.ReadU16(); topErr != nil {
		return t, fmt.Errorf("unable to decode trailer signature: %w", topErr)
	}

	var rawBid uint64

	switch f {
	case FormatWide:
		t.CRC, topErr = reader.ReadU32()
		if topErr == nil {
			rawBid, topErr = reader.ReadU64()
		}
	case FormatNarrow:
		rawBid, topErr = reader.ReadUint(l.BIDSize)
		if topErr == nil {
			t.CRC, topErr = reader.ReadU32()
		}
	}

	if topErr != nil {
		return t, fmt.Errorf("unable to decode trailer crc/bid: %w", topErr)
	}

	t.BID = BID(rawBid)

	return t, nil
}

// Verify checks the trailer against the block tree entry and the block bytes.
func (t Trailer) Verify(raw []byte, entry Entry, f Format) error {

	expectedSig := Signature(entry.BREF.Offset, entry.BREF.BID)
	if t.Signature != expectedSig {
		return integrityErr(ErrSignatureMismatch, "wSig", uint64(t.Signature), uint64(expectedSig), entry.BREF)
	}

	if int(entry.CB) > len(raw) {
		return fmt.Errorf("%w: cb %d exceeds buffer of %d bytes", ErrBufferSize, entry.CB, len(raw))
	}

	computed := crc.Compute(0, raw[:entry.CB])
	if t.CRC != computed {
		return integrityErr(ErrChecksumMismatch, "dwCRC", uint64(t.CRC), uint64(computed), entry.BREF)
	}

	expectedBid := entry.BREF.BID.Sanitize(f)
	if t.BID.Sanitize(f) != expectedBid {
		return integrityErr(ErrBIDMismatch, "bid", uint64(t.BID), uint64(expectedBid), entry.BREF)
	}

	if t.CB != entry.CB {
		return integrityErr(ErrSizeMismatch, "cb", uint64(t.CB), uint64(entry.CB), entry.BREF)
	}

	return nil
}

// StampTrailer writes a trailer for the first cb bytes of buf. buf must be
// the full disk sized block image; the checksum covers only the cb bytes,
// never the padding.
func StampTrailer(buf []byte, cb int, bref BREF, f Format) error {
	l, err := LayoutOf(f)
	if err != nil {
		return err
	}

	if len(buf) != DiskSize(cb, f) {
		return fmt.Errorf("%w: got %d bytes, cb %d needs %d", ErrBufferSize, len(buf), cb, DiskSize(cb, f))
	}
	if cb > 0xFFFF {
		return fmt.Errorf("%w: cb %d", ErrBlockTooLarge, cb)
	}
	if !bits.Fits(uint64(bref.BID), l.BIDSize) {
		return fmt.Errorf("%w: bid %s in %s format", ErrIDOverflow, bref.BID, f)
	}

	writer := bits.NewEncodeBuffer(buf, binary.LittleEndian)
	writer.SetPosition(len(buf) - l.TrailerSize)

	checksum := crc.Compute(0, buf[:cb])

	writer.PutUint16(uint16(cb))
	writer.PutUint16(Signature(bref.Offset, bref.BID))

	switch f {
	case FormatWide:
		writer.PutUint32(checksum)
		writer.PutUint64(uint64(bref.BID))
	case FormatNarrow:
		writer.PutUint32(uint32(bref.BID))
		writer.PutUint32(checksum)
	}

	return nil
}
