package bits

import (
	"encoding/binary"
	"errors"
	"fmt"
)

type BitWriter struct {
	pos   int
	data  []byte
	size  int
	order binary.ByteOrder
}

func NewEncodeBuffer(buf []byte, order binary.ByteOrder) BitWriter {

	result := BitWriter{}

	result.data = buf
	result.pos = 0
	result.size = len(buf)
	result.order = order

	return result
}

func (this BitWriter) Position() int {
	return this.pos
}

// SetPosition moves the write cursor. Bytes between the old and the new
// position are left untouched.
func (this *BitWriter) SetPosition(pos int) {
	if pos < 0 || pos > this.size {
		panic(fmt.Sprintf("bit writer position %d out of range [0, %d]", pos, this.size))
	}
	this.pos = pos
}

func (this *BitWriter) reserve(n int) {
	if (this.pos + n) > this.size {
		panic(fmt.Sprintf("bit writer overflow on pos : %d, try grow %d, from size : %d", this.pos, n, this.size))
	}
}

func (this *BitWriter) Write(p []byte) (n int, err error) {

	oldl := len(p)
	this.reserve(oldl)

	n = copy(this.data[this.pos:], p)

	if oldl != n {
		return 0, errors.New("not enough space")
	}

	this.pos += n

	return
}

// EmptyBytes writes i zero bytes.
func (this *BitWriter) EmptyBytes(i int) {
	this.reserve(i)
	clear(this.data[this.pos : this.pos+i])
	this.pos += i
}

func (this *BitWriter) Bytes() []byte {
	return this.data[:this.pos]
}

func (this *BitWriter) WriteByte(u uint8) {
	this.reserve(1)
	this.data[this.pos] = u
	this.pos++
}

func (this *BitWriter) PutUint16(v uint16) {
	this.reserve(2)
	this.order.PutUint16(this.data[this.pos:], v)
	this.pos += 2
}

func (this *BitWriter) PutUint32(v uint32) {
	this.reserve(4)
	this.order.PutUint32(this.data[this.pos:], v)
	this.pos += 4
}

func (this *BitWriter) PutUint64(v uint64) {
	this.reserve(8)
	this.order.PutUint64(this.data[this.pos:], v)
	this.pos += 8
}

// PutUint writes v using width bytes (4 or 8). Values that do not fit
// are rejected instead of truncated.
func (this *BitWriter) PutUint(v uint64, width int) error {
	if !Fits(v, width) {
		return fmt.Errorf("%w: value 0x%x does not fit in %d bytes", ErrWidth, v, width)
	}

	switch width {
	case 4:
		this.PutUint32(uint32(v))
	case 8:
		this.PutUint64(v)
	default:
		return fmt.Errorf("%w: %d", ErrWidth, width)
	}
	return nil
}
