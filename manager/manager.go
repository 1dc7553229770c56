package manager

import (
	"errors"
	"sync/atomic"

	"github.com/dot5enko/pst-blocks/block"
	"github.com/dot5enko/pst-blocks/manager/cache"
	"golang.org/x/sync/singleflight"
)

var (
	ErrEntryNotFound    = errors.New("block tree entry not found")
	ErrUnexpectedBlock  = errors.New("unexpected block kind")
	ErrSubnodeNotFound  = errors.New("subnode not found")
	ErrTreeTooDeep      = errors.New("block tree too deep")
	ErrReadOnly         = errors.New("page layer is read only")
	ErrDataSizeMismatch = errors.New("reassembled data size mismatch")
)

// PageReader is the file layer: it fills out[:length] from file offset off.
type PageReader interface {
	ReadAt(out []byte, off, length int) error
}

type PageWriter interface {
	WriteAt(in []byte, off, length int) error
}

// EntryResolver is the block tree: it maps a block id to its location and size.
type EntryResolver interface {
	LookupEntry(bid block.BID) (block.Entry, error)
}

// Registrar accepts entries of newly written blocks.
type Registrar interface {
	AddEntry(entry block.Entry)
}

type ManagerConfig struct {
	Format block.Format

	// decoded blocks kept in memory, 0 disables the cache
	CacheMaxBlocks int

	// concurrent block reads, each holds one MaxBlockSize buffer
	ReadBuffers int

	Debug bool
}

type Manager struct {
	config ManagerConfig

	pages   PageReader
	entries EntryResolver

	cache       *cache.BlockCache
	readBuffers *cache.FixedSizeBufferPool

	loadGroup singleflight.Group
	loads     atomic.Int64
}

const defaultReadBuffers = 16

func New(config ManagerConfig, pages PageReader, entries EntryResolver) (*Manager, error) {
	if _, err := block.LayoutOf(config.Format); err != nil {
		return nil, err
	}

	if config.ReadBuffers <= 0 {
		config.ReadBuffers = defaultReadBuffers
	}

	return &Manager{
		config:      config,
		pages:       pages,
		entries:     entries,
		cache:       cache.NewBlockCache(config.CacheMaxBlocks),
		readBuffers: cache.NewFixedSizeBufferPool(config.ReadBuffers, block.MaxBlockSize),
	}, nil
}

func (m *Manager) Format() block.Format {
	return m.config.Format
}

type ManagerStats struct {
	Cache cache.Stats

	// blocks read from the page layer and decoded
	Loads int64
}

func (m *Manager) Stats() ManagerStats {
	return ManagerStats{
		Cache: m.cache.Stats(),
		Loads: m.loads.Load(),
	}
}
