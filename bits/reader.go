package bits

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

var (
	ErrEOF          = errors.New("end of file")
	ErrReadMismatch = errors.New("read size mismatch")
	ErrWidth        = errors.New("unsupported field width")
)

const MaxBinReaderBufferSize = 8

type BitsReader struct {
	readBuffer [MaxBinReaderBufferSize]byte

	buf   io.Reader
	order binary.ByteOrder
	pos   int
}

func NewReader(buf io.Reader, order binary.ByteOrder) *BitsReader {
	return &BitsReader{buf: buf, order: order}
}

func (r *BitsReader) readNextBytesIntoReadBuffer(size int) error {
	readBytes, err := io.ReadFull(r.buf, r.readBuffer[:size])
	r.pos += readBytes

	if err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: wanted %d bytes at %d, got %d", ErrReadMismatch, size, r.pos-readBytes, readBytes)
		}
		return err
	}

	return nil
}

// Position is the number of bytes consumed so far.
func (r *BitsReader) Position() int {
	return r.pos
}

func (r *BitsReader) ReadU8() (uint8, error) {
	err := r.readNextBytesIntoReadBuffer(1)

	if err != nil {
		return 0, err
	}

	return r.readBuffer[0], err
}

func (r *BitsReader) ReadU16() (uint16, error) {

	err := r.readNextBytesIntoReadBuffer(2)

	if err != nil {
		return 0, err
	}

	v := r.order.Uint16(r.readBuffer[:2])
	return v, err
}

func (r *BitsReader) ReadU32() (uint32, error) {
	readErr := r.readNextBytesIntoReadBuffer(4)
	if readErr != nil {
		return 0, readErr
	}
	v := r.order.Uint32(r.readBuffer[:4])
	return v, nil
}

func (r *BitsReader) ReadU64() (uint64, error) {

	readErr := r.readNextBytesIntoReadBuffer(8)
	if readErr != nil {
		return 0, readErr
	}

	v := r.order.Uint64(r.readBuffer[:8])
	return v, nil
}

// ReadUint reads an unsigned integer stored in width bytes (4 or 8)
// and widens it to 64 bits.
func (r *BitsReader) ReadUint(width int) (uint64, error) {
	switch width {
	case 4:
		v, err := r.ReadU32()
		return uint64(v), err
	case 8:
		return r.ReadU64()
	default:
		return 0, fmt.Errorf("%w: %d", ErrWidth, width)
	}
}

// Skip discards n bytes.
func (r *BitsReader) Skip(n int) error {
	for n > 0 {
		chunk := min(n, MaxBinReaderBufferSize)
		if err := r.readNextBytesIntoReadBuffer(chunk); err != nil {
			return err
		}
		n -= chunk
	}
	return nil
}

func (r *BitsReader) ReadBytes(n int, out []byte) error {

	readBytes, err := io.ReadFull(r.buf, out[:n])
	r.pos += readBytes

	if readBytes != n {
		return ErrReadMismatch
	}

	return err
}
