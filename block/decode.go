package block

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/dot5enko/pst-blocks/bits"
)

// Decode validates and decodes a disk sized block image described by entry.
// raw is only read; the returned block shares no memory with it.
func Decode(raw []byte, entry Entry, f Format) (Block, error) {

	l, err := LayoutOf(f)
	if err != nil {
		return nil, err
	}

	expectedSize := DiskSize(int(entry.CB), f)
	if len(raw) != expectedSize {
		return nil, fmt.Errorf("%w: got %d bytes, entry %s needs %d", ErrBufferSize, len(raw), entry, expectedSize)
	}

	trailer, err := ReadTrailer(raw, f)
	if err != nil {
		return nil, err
	}

	if err = trailer.Verify(raw, entry, f); err != nil {
		return nil, err
	}

	h := header{bref: entry.BREF}

	if !entry.BREF.BID.IsInternal() {
		data := make([]byte, entry.CB)
		copy(data, raw[:entry.CB])
		return &DataBlock{header: h, Data: data}, nil
	}

	d := decoder{
		reader: bits.NewReader(bytes.NewReader(raw[:entry.CB]), binary.LittleEndian),
		layout: l,
		bref:   entry.BREF,
	}

	return d.internal(h)
}

type decoder struct {
	reader *bits.BitsReader
	layout Layout
	bref   BREF
}

func (d *decoder) fail(what string, err error) error {
	return fmt.Errorf("unable to decode %s of block %s at byte %d: %w", what, d.bref, d.reader.Position(), err)
}

func (d *decoder) bid() (BID, error) {
	v, err := d.reader.ReadUint(d.layout.BIDSize)
	return BID(v).Sanitize(d.layout.Format), err
}

// nid reads a subnode id and skips the unused bytes that follow it in the
// wide format.
func (d *decoder) nid() (NID, error) {
	v, err := d.reader.ReadU32()
	if err != nil {
		return 0, err
	}
	return NID(v), d.reader.Skip(d.layout.NIDPadding)
}

func (d *decoder) internal(h header) (Block, error) {

	btype, err := d.reader.ReadU8()
	if err != nil {
		return nil, d.fail("btype", err)
	}
	level, err := d.reader.ReadU8()
	if err != nil {
		return nil, d.fail("cLevel", err)
	}
	count, err := d.reader.ReadU16()
	if err != nil {
		return nil, d.fail("cEnt", err)
	}

	if count == 0 {
		return nil, integrityErr(ErrEmptyBlock, "cEnt", 0, 1, d.bref)
	}

	switch btype {
	case BTypeExt:
		return d.extBlock(h, level, int(count))
	case BTypeSubnode:
		return d.subnodeBlock(h, level, int(count))
	default:
		return nil, &IntegrityError{
			Err:      ErrUnknownBlockType,
			Field:    "btype",
			Got:      uint64(btype),
			Expected: fmt.Sprintf("0x%x or 0x%x", BTypeExt, BTypeSubnode),
			BREF:     d.bref,
		}
	}
}

func (d *decoder) extBlock(h header, level uint8, count int) (Block, error) {

	if level != 1 && level != 2 {
		return nil, integrityErr(ErrUnsupportedLevel, "cLevel", uint64(level), 1, d.bref)
	}

	total, err := d.reader.ReadU32()
	if err != nil {
		return nil, d.fail("lcbTotal", err)
	}

	children := make([]BID, count)
	for i := range children {
		if children[i], err = d.bid(); err != nil {
			return nil, d.fail(fmt.Sprintf("rgbid[%d]", i), err)
		}
	}

	if level == 1 {
		return &XBlock{header: h, TotalSize: total, Children: children}, nil
	}
	return &XXBlock{header: h, TotalSize: total, Children: children}, nil
}

func (d *decoder) subnodeBlock(h header, level uint8, count int) (Block, error) {

	if level > 1 {
		return nil, integrityErr(ErrUnsupportedLevel, "cLevel", uint64(level), 0, d.bref)
	}

	// only the wide format carries dwPadding, whatever the format
	// documentation says about the narrow one
	if d.layout.SubnodePadding > 0 {
		padding, err := d.reader.ReadU32()
		if err != nil {
			return nil, d.fail("dwPadding", err)
		}
		if padding != 0 {
			return nil, integrityErr(ErrPaddingNotZero, "dwPadding", uint64(padding), 0, d.bref)
		}
	}

	if level == 0 {
		return d.subnodeLeaf(h, count)
	}
	return d.subnodeIntermediate(h, count)
}

func (d *decoder) subnodeLeaf(h header, count int) (Block, error) {

	entries := make([]SubnodeLeafEntry, count)

	var err error
	for i := range entries {
		e := &entries[i]

		if e.NID, err = d.nid(); err != nil {
			return nil, d.fail(fmt.Sprintf("rgentries[%d].nid", i), err)
		}
		if e.Data, err = d.bid(); err != nil {
			return nil, d.fail(fmt.Sprintf("rgentries[%d].bidData", i), err)
		}
		if e.Sub, err = d.bid(); err != nil {
			return nil, d.fail(fmt.Sprintf("rgentries[%d].bidSub", i), err)
		}
	}

	return &SubnodeLeafBlock{header: h, Entries: entries}, nil
}

func (d *decoder) subnodeIntermediate(h header, count int) (Block, error) {

	entries := make([]SubnodeIntermediateEntry, count)

	var err error
	for i := range entries {
		e := &entries[i]

		if e.NID, err = d.nid(); err != nil {
			return nil, d.fail(fmt.Sprintf("rgentries[%d].nid", i), err)
		}
		if e.Child, err = d.bid(); err != nil {
			return nil, d.fail(fmt.Sprintf("rgentries[%d].bid", i), err)
		}
	}

	return &SubnodeIntermediateBlock{header: h, Entries: entries}, nil
}
