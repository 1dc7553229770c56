package bits

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"
)

func TestWriterReaderLittleEndian(t *testing.T) {

	buf := make([]byte, 32)
	w := NewEncodeBuffer(buf, binary.LittleEndian)

	w.WriteByte(0x01)
	w.WriteByte(0x02)
	w.PutUint16(0x0304)
	w.PutUint32(0x05060708)
	w.EmptyBytes(4)
	if err := w.PutUint(0x1122334455667788, 8); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if err := w.PutUint(0xAABBCCDD, 4); err != nil {
		t.Fatalf("unexpected error %v", err)
	}

	if w.Position() != 24 {
		t.Fatalf("expected position 24, got %d", w.Position())
	}

	expectedPrefix := []byte{0x01, 0x02, 0x04, 0x03, 0x08, 0x07, 0x06, 0x05}
	if !bytes.Equal(buf[:8], expectedPrefix) {
		t.Errorf("expected %x, got %x", expectedPrefix, buf[:8])
	}

	r := NewReader(bytes.NewReader(w.Bytes()), binary.LittleEndian)

	if v, _ := r.ReadU8(); v != 0x01 {
		t.Errorf("expected 0x01, got 0x%x", v)
	}
	if v, _ := r.ReadU8(); v != 0x02 {
		t.Errorf("expected 0x02, got 0x%x", v)
	}
	if v, _ := r.ReadU16(); v != 0x0304 {
		t.Errorf("expected 0x0304, got 0x%x", v)
	}
	if v, _ := r.ReadU32(); v != 0x05060708 {
		t.Errorf("expected 0x05060708, got 0x%x", v)
	}
	if err := r.Skip(4); err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if v, _ := r.ReadUint(8); v != 0x1122334455667788 {
		t.Errorf("expected 0x1122334455667788, got 0x%x", v)
	}
	if v, _ := r.ReadUint(4); v != 0xAABBCCDD {
		t.Errorf("expected 0xAABBCCDD, got 0x%x", v)
	}
	if r.Position() != 24 {
		t.Errorf("expected reader position 24, got %d", r.Position())
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2, 3}), binary.LittleEndian)

	_, err := r.ReadU32()
	if !errors.Is(err, ErrReadMismatch) {
		t.Errorf("expected ErrReadMismatch, got %v", err)
	}
}

func TestPutUintRejectsOverflow(t *testing.T) {
	buf := make([]byte, 8)
	w := NewEncodeBuffer(buf, binary.LittleEndian)

	err := w.PutUint(0x1_0000_0000, 4)
	if !errors.Is(err, ErrWidth) {
		t.Errorf("expected ErrWidth, got %v", err)
	}
	if w.Position() != 0 {
		t.Errorf("nothing should be written, position %d", w.Position())
	}
}

func TestSetPositionKeepsBytes(t *testing.T) {
	buf := make([]byte, 8)
	w := NewEncodeBuffer(buf, binary.LittleEndian)
	w.PutUint32(0xFFFFFFFF)
	w.SetPosition(6)
	w.PutUint16(0x0102)

	expected := []byte{0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0x02, 0x01}
	if !bytes.Equal(buf, expected) {
		t.Errorf("expected %x, got %x", expected, buf)
	}
}

func TestFitsAndRoundUp(t *testing.T) {
	cases := []struct {
		v     uint64
		width int
		fits  bool
	}{
		{0, 4, true},
		{0xFFFFFFFF, 4, true},
		{0x1_0000_0000, 4, false},
		{0xFFFFFFFFFFFFFFFF, 8, true},
		{1, 0, false},
	}

	for _, c := range cases {
		if got := Fits(c.v, c.width); got != c.fits {
			t.Errorf("Fits(0x%x, %d): expected %v, got %v", c.v, c.width, c.fits, got)
		}
	}

	if RoundUp(172, 64) != 192 {
		t.Errorf("expected 192, got %d", RoundUp(172, 64))
	}
	if RoundUp(128, 64) != 128 {
		t.Errorf("expected 128, got %d", RoundUp(128, 64))
	}
}
