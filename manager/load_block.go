package manager

import (
	"fmt"
	"log/slog"

	"github.com/davecgh/go-spew/spew"
	"github.com/dot5enko/pst-blocks/block"
	"github.com/fatih/color"
)

const debugDumpBytes = 256

// LoadBlock returns the decoded block bid, from the cache when possible.
// Concurrent loads of the same block share one read.
func (m *Manager) LoadBlock(bid block.BID) (block.Block, error) {

	bid = bid.Sanitize(m.config.Format)

	if cached, ok := m.cache.Get(bid); ok {
		return cached, nil
	}

	entry, err := m.entries.LookupEntry(bid)
	if err != nil {
		return nil, fmt.Errorf("unable to resolve block %s: %w", bid, err)
	}

	return m.LoadEntry(entry)
}

// LoadEntry reads and decodes the block described by entry.
func (m *Manager) LoadEntry(entry block.Entry) (block.Block, error) {

	// cache and load keys are always the sanitized id
	entry.BREF.BID = entry.BREF.BID.Sanitize(m.config.Format)

	result, err, _ := m.loadGroup.Do(entry.BREF.BID.String(), func() (any, error) {

		if item, ok := m.cache.Item(entry.BREF.BID); ok {
			return item.Block, nil
		}

		return m.readAndDecode(entry)
	})

	if err != nil {
		return nil, err
	}

	return result.(block.Block), nil
}

func (m *Manager) readAndDecode(entry block.Entry) (block.Block, error) {

	size := block.DiskSize(int(entry.CB), m.config.Format)
	if size > block.MaxBlockSize {
		return nil, fmt.Errorf("%w: entry %s needs %d bytes", block.ErrBlockTooLarge, entry, size)
	}

	buf, bufId := m.readBuffers.Get(size)
	defer m.readBuffers.Return(bufId)

	if err := m.pages.ReadAt(buf, int(entry.BREF.Offset), size); err != nil {
		return nil, fmt.Errorf("unable to read block %s: %w", entry, err)
	}

	decoded, err := block.Decode(buf, entry, m.config.Format)
	if err != nil {
		color.Red(" !!! corrupted block %s: %s", entry, err.Error())

		if m.config.Debug {
			spew.Dump("raw block", buf[:min(size, debugDumpBytes)])
		}

		return nil, fmt.Errorf("unable to decode block %s: %w", entry, err)
	}

	m.loads.Add(1)
	m.cache.Put(decoded, size)

	if m.config.Debug {
		slog.Debug("block loaded", "bid", entry.BREF.BID.String(), "kind", decoded.Kind().String(), "cb", entry.CB, "disk_size", size)
	}

	return decoded, nil
}
