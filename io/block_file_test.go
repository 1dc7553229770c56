package io

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dot5enko/pst-blocks/block"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTempBlockFile(t *testing.T, format block.Format) (*BlockFile, *FileReader) {
	path := filepath.Join(t.TempDir(), "blocks.pst")

	fr := NewFileReader(path)
	require.False(t, fr.Exists())
	require.NoError(t, fr.Open(false))
	t.Cleanup(func() {
		fr.Close()
	})

	return NewBlockFile(fr, format), fr
}

func TestBlockFileWriteRead(t *testing.T) {
	bf, _ := createTempBlockFile(t, block.FormatWide)

	bref := block.BREF{BID: 0x20, Offset: 19456}
	payload := []byte("some message body bytes")

	raw, err := block.EncodeDataBlock(bref, payload, block.FormatWide)
	require.NoError(t, err)
	require.NoError(t, bf.WriteAt(raw, int(bref.Offset), len(raw)))

	entry := block.Entry{BREF: bref, CB: uint16(len(payload))}
	readRaw, err := bf.ReadRaw(entry)
	require.NoError(t, err)
	assert.Equal(t, raw, readRaw)

	decoded, err := block.Decode(readRaw, entry, block.FormatWide)
	require.NoError(t, err)

	data, ok := decoded.(*block.DataBlock)
	require.True(t, ok)
	assert.Equal(t, payload, data.Data)
}

func TestBlockFileReadPastEnd(t *testing.T) {
	bf, _ := createTempBlockFile(t, block.FormatNarrow)

	_, err := bf.ReadRaw(block.Entry{BREF: block.BREF{BID: 0x4, Offset: 0x1000}, CB: 10})
	require.Error(t, err)
}

func TestBlockFileRejectsPartialUnits(t *testing.T) {
	bf, _ := createTempBlockFile(t, block.FormatNarrow)

	err := bf.WriteAt(make([]byte, 65), 0, 65)
	assert.True(t, errors.Is(err, block.ErrBufferSize))

	err = bf.WriteAt(make([]byte, 64), 32, 64)
	assert.ErrorIs(t, err, block.ErrBufferSize)

	err = bf.ReadAt(make([]byte, 64), 0, 60)
	assert.ErrorIs(t, err, block.ErrBufferSize)

	_, err = bf.ReadRaw(block.Entry{BREF: block.BREF{BID: 0x4, Offset: 100}, CB: 10})
	assert.ErrorIs(t, err, block.ErrBufferSize)
}

func TestBlockFileCorruptBlock(t *testing.T) {
	bf, fr := createTempBlockFile(t, block.FormatNarrow)

	bref := block.BREF{BID: 0x21, Offset: 0}
	raw, err := block.EncodeExtBlock(bref, 16000, []block.BID{0x4, 0x8}, block.FormatNarrow)
	require.NoError(t, err)
	require.NoError(t, bf.WriteAt(raw, 0, len(raw)))

	// flip one body byte on disk
	require.NoError(t, fr.WriteAt([]byte{0xFF}, 9, 1))

	entry := block.Entry{BREF: bref, CB: uint16(block.ExtBlockDataSize(2, block.FormatNarrow))}
	readRaw, err := bf.ReadRaw(entry)
	require.NoError(t, err)

	_, err = block.Decode(readRaw, entry, block.FormatNarrow)
	assert.ErrorIs(t, err, block.ErrChecksumMismatch)
}

func TestFileReaderNotOpened(t *testing.T) {
	fr := NewFileReader(filepath.Join(t.TempDir(), "missing.pst"))

	assert.ErrorIs(t, fr.ReadAt(make([]byte, 4), 0, 4), ErrNotOpened)
	assert.ErrorIs(t, fr.WriteAt(make([]byte, 4), 0, 4), ErrNotOpened)
	assert.NoError(t, fr.Close())
}

func TestDumpRawBlock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "block.bin")
	raw := []byte{1, 2, 3, 4}

	require.NoError(t, DumpRawBlock(path, raw))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, raw, content)
}
