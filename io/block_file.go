package io

import (
	"fmt"

	"github.com/dot5enko/pst-blocks/block"
)

// BlockFile is the page layer of one container file. Every access covers
// whole 64 byte block units.
type BlockFile struct {
	file   *FileReader
	format block.Format
}

func NewBlockFile(file *FileReader, format block.Format) *BlockFile {
	return &BlockFile{file: file, format: format}
}

func (b *BlockFile) Format() block.Format {
	return b.format
}

func checkUnits(off, length int) error {
	if off%block.BlockUnitSize != 0 || length%block.BlockUnitSize != 0 {
		return fmt.Errorf("%w: %d bytes at 0x%x are not whole %d byte units", block.ErrBufferSize, length, off, block.BlockUnitSize)
	}
	return nil
}

func (b *BlockFile) ReadAt(out []byte, off, length int) error {
	if err := checkUnits(off, length); err != nil {
		return err
	}
	return b.file.ReadAt(out, off, length)
}

func (b *BlockFile) WriteAt(in []byte, off, length int) error {
	if err := checkUnits(off, length); err != nil {
		return err
	}
	return b.file.WriteAt(in, off, length)
}

// ReadRaw returns the disk sized image of the block described by entry
// without validating it.
func (b *BlockFile) ReadRaw(entry block.Entry) ([]byte, error) {
	if _, err := block.LayoutOf(b.format); err != nil {
		return nil, err
	}

	size := block.DiskSize(int(entry.CB), b.format)
	raw := make([]byte, size)

	if err := b.ReadAt(raw, int(entry.BREF.Offset), size); err != nil {
		return nil, fmt.Errorf("unable to read block %s: %w", entry, err)
	}

	return raw, nil
}
