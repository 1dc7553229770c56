package block

const (
	BTypeExt     uint8 = 0x01
	BTypeSubnode uint8 = 0x02
)

type Kind uint8

const (
	KindData Kind = iota
	KindXBlock
	KindXXBlock
	KindSubnodeLeaf
	KindSubnodeIntermediate
)

func (k Kind) String() string {
	switch k {
	case KindData:
		return "data"
	case KindXBlock:
		return "xblock"
	case KindXXBlock:
		return "xxblock"
	case KindSubnodeLeaf:
		return "slblock"
	case KindSubnodeIntermediate:
		return "siblock"
	default:
		return "unknown"
	}
}

// Block is a decoded block. The concrete type is one of *DataBlock,
// *XBlock, *XXBlock, *SubnodeLeafBlock or *SubnodeIntermediateBlock.
// A decoded block owns all of its memory and is never mutated.
type Block interface {
	Kind() Kind
	BREF() BREF
}

type header struct {
	bref BREF
}

func (h header) BREF() BREF {
	return h.bref
}

// DataBlock is an external block holding opaque payload bytes.
type DataBlock struct {
	header
	Data []byte
}

func (*DataBlock) Kind() Kind { return KindData }

// XBlock lists the data blocks that together hold TotalSize bytes.
type XBlock struct {
	header
	TotalSize uint32
	Children  []BID
}

func (*XBlock) Kind() Kind { return KindXBlock }

// XXBlock lists XBlocks that together hold TotalSize bytes.
type XXBlock struct {
	header
	TotalSize uint32
	Children  []BID
}

func (*XXBlock) Kind() Kind { return KindXXBlock }

// SubnodeLeafEntry maps a subnode to its data block and optional nested
// subnode tree (Sub == 0 when absent).
type SubnodeLeafEntry struct {
	NID  NID
	Data BID
	Sub  BID
}

type SubnodeLeafBlock struct {
	header
	Entries []SubnodeLeafEntry
}

func (*SubnodeLeafBlock) Kind() Kind { return KindSubnodeLeaf }

// SubnodeIntermediateEntry routes subnodes starting at NID to the leaf
// block Child.
type SubnodeIntermediateEntry struct {
	NID   NID
	Child BID
}

type SubnodeIntermediateBlock struct {
	header
	Entries []SubnodeIntermediateEntry
}

func (*SubnodeIntermediateBlock) Kind() Kind { return KindSubnodeIntermediate }
