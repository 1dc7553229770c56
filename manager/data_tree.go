package manager

import (
	"fmt"

	"github.com/dot5enko/pst-blocks/block"
)

// ReadData reassembles the payload of the data tree rooted at bid. The root
// is either a data block or an XBlock/XXBlock listing data blocks in order.
func (m *Manager) ReadData(bid block.BID) ([]byte, error) {

	root, err := m.LoadBlock(bid)
	if err != nil {
		return nil, err
	}

	switch b := root.(type) {
	case *block.DataBlock:
		return append([]byte(nil), b.Data...), nil
	case *block.XBlock:
		return m.readTree(b.TotalSize, b.Children, block.KindData)
	case *block.XXBlock:
		return m.readTree(b.TotalSize, b.Children, block.KindXBlock)
	default:
		return nil, fmt.Errorf("%w: %s is a %s, not a data tree", ErrUnexpectedBlock, bid, root.Kind())
	}
}

func (m *Manager) readTree(total uint32, children []block.BID, childKind block.Kind) ([]byte, error) {

	out := make([]byte, 0, total)

	for _, child := range children {
		b, err := m.LoadBlock(child)
		if err != nil {
			return nil, err
		}

		if b.Kind() != childKind {
			return nil, fmt.Errorf("%w: child %s is a %s, expected %s", ErrUnexpectedBlock, child, b.Kind(), childKind)
		}

		switch c := b.(type) {
		case *block.DataBlock:
			out = append(out, c.Data...)
		case *block.XBlock:
			part, err := m.readTree(c.TotalSize, c.Children, block.KindData)
			if err != nil {
				return nil, err
			}
			out = append(out, part...)
		}
	}

	if uint32(len(out)) != total {
		return nil, fmt.Errorf("%w: got %d bytes, tree declares %d", ErrDataSizeMismatch, len(out), total)
	}

	return out, nil
}
