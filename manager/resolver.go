package manager

import (
	"fmt"
	"sync"

	"github.com/dot5enko/pst-blocks/block"
)

// MapResolver is an in-memory block tree.
type MapResolver struct {
	entries map[block.BID]block.Entry
	lock    sync.RWMutex

	format block.Format
}

func NewMapResolver(format block.Format) *MapResolver {
	return &MapResolver{
		entries: map[block.BID]block.Entry{},
		format:  format,
	}
}

func (r *MapResolver) AddEntry(entry block.Entry) {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.entries[entry.BREF.BID.Sanitize(r.format)] = entry
}

func (r *MapResolver) LookupEntry(bid block.BID) (block.Entry, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	entry, ok := r.entries[bid.Sanitize(r.format)]
	if !ok {
		return block.Entry{}, fmt.Errorf("%w: %s", ErrEntryNotFound, bid)
	}
	return entry, nil
}

func (r *MapResolver) Len() int {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.entries)
}
