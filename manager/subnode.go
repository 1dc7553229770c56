package manager

import (
	"fmt"

	"github.com/dot5enko/pst-blocks/block"
)

// an intermediate level over leaves, nested trees hang off leaf entries
const maxSubnodeDepth = 2

// LookupSubnode finds nid in the subnode tree rooted at bid.
func (m *Manager) LookupSubnode(bid block.BID, nid block.NID) (block.SubnodeLeafEntry, error) {
	return m.lookupSubnode(bid, nid, 0)
}

func (m *Manager) lookupSubnode(bid block.BID, nid block.NID, depth int) (block.SubnodeLeafEntry, error) {

	if depth >= maxSubnodeDepth {
		return block.SubnodeLeafEntry{}, fmt.Errorf("%w: subnode tree at %s", ErrTreeTooDeep, bid)
	}

	b, err := m.LoadBlock(bid)
	if err != nil {
		return block.SubnodeLeafEntry{}, err
	}

	switch node := b.(type) {
	case *block.SubnodeLeafBlock:
		for _, e := range node.Entries {
			if e.NID == nid {
				return e, nil
			}
		}
	case *block.SubnodeIntermediateBlock:
		// entries are sorted by nid, the last one not above nid covers it
		child := -1
		for i, e := range node.Entries {
			if e.NID > nid {
				break
			}
			child = i
		}
		if child >= 0 {
			return m.lookupSubnode(node.Entries[child].Child, nid, depth+1)
		}
	default:
		return block.SubnodeLeafEntry{}, fmt.Errorf("%w: %s is a %s, not a subnode tree", ErrUnexpectedBlock, bid, b.Kind())
	}

	return block.SubnodeLeafEntry{}, fmt.Errorf("%w: %s in tree %s", ErrSubnodeNotFound, nid, bid)
}

// Subnodes lists every leaf entry of the subnode tree rooted at bid, in
// tree order.
func (m *Manager) Subnodes(bid block.BID) ([]block.SubnodeLeafEntry, error) {
	var out []block.SubnodeLeafEntry
	err := m.collectSubnodes(bid, 0, &out)
	return out, err
}

func (m *Manager) collectSubnodes(bid block.BID, depth int, out *[]block.SubnodeLeafEntry) error {

	if depth >= maxSubnodeDepth {
		return fmt.Errorf("%w: subnode tree at %s", ErrTreeTooDeep, bid)
	}

	b, err := m.LoadBlock(bid)
	if err != nil {
		return err
	}

	switch node := b.(type) {
	case *block.SubnodeLeafBlock:
		*out = append(*out, node.Entries...)
	case *block.SubnodeIntermediateBlock:
		for _, e := range node.Entries {
			if err := m.collectSubnodes(e.Child, depth+1, out); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: %s is a %s, not a subnode tree", ErrUnexpectedBlock, bid, b.Kind())
	}

	return nil
}
