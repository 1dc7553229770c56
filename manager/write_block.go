package manager

import (
	"fmt"

	"github.com/dot5enko/pst-blocks/block"
	"github.com/fatih/color"
)

// WriteBlock stores an encoded block image at bref.Offset and registers it
// with the block tree when the resolver accepts new entries. The image is
// decoded first so only well formed blocks reach the file.
func (m *Manager) WriteBlock(bref block.BREF, raw []byte) (block.Entry, error) {

	writer, ok := m.pages.(PageWriter)
	if !ok {
		return block.Entry{}, ErrReadOnly
	}

	trailer, err := block.ReadTrailer(raw, m.config.Format)
	if err != nil {
		return block.Entry{}, err
	}

	entry := block.Entry{BREF: bref, CB: trailer.CB}

	if _, err = block.Decode(raw, entry, m.config.Format); err != nil {
		return block.Entry{}, fmt.Errorf("refusing to write block %s: %w", bref, err)
	}

	if err = writer.WriteAt(raw, int(bref.Offset), len(raw)); err != nil {
		return block.Entry{}, fmt.Errorf("unable to write block %s: %w", bref, err)
	}

	m.cache.Remove(bref.BID.Sanitize(m.config.Format))

	if registrar, ok := m.entries.(Registrar); ok {
		registrar.AddEntry(entry)
	}

	if m.config.Debug {
		color.Green(" + block %s written, %d bytes", entry, len(raw))
	}

	return entry, nil
}
