package compress

// A Node is a compression whose inputs are known but which has not been performed yet. Whether a node is the root of
// the tree is only known once all input has been seen, so the final chunk or parent of a hash is kept as a Node until
// output is requested.
type Node struct {
	CV       [8]uint32  // input chaining value
	Block    [16]uint32 // message block
	Counter  uint64     // chunk index; zero for parents
	BlockLen uint32     // meaningful bytes in Block
	Flags    uint32     // domain separation flags, excluding Root
}

// ParentNode returns the node which combines two child chaining values.
func ParentNode(left, right, key *[8]uint32, flags uint32) Node {
	n := Node{
		CV:       *key,
		Counter:  0,
		BlockLen: BlockSize,
		Flags:    flags | Parent,
	}
	copy(n.Block[:8], left[:])
	copy(n.Block[8:], right[:])
	return n
}

// ChainingValue compresses the node as an interior (non-root) node and returns its chaining value.
func (n *Node) ChainingValue() (cv [8]uint32) {
	out := Compress(&n.CV, &n.Block, n.Counter, n.BlockLen, n.Flags)
	copy(cv[:], out[:8])
	return cv
}

// RootBlock compresses the node as the root of the tree, using counter as the output block index, and returns the
// 64-byte output block.
func (n *Node) RootBlock(counter uint64) [BlockSize]byte {
	out := Compress(&n.CV, &n.Block, counter, n.BlockLen, n.Flags|Root)
	return WordsToBytes(&out)
}

// RootBytes fills dst with the root output stream starting at byte offset. The caller must ensure offset+len(dst)
// does not exceed 2^64.
func (n *Node) RootBytes(dst []byte, offset uint64) {
	counter := offset / BlockSize
	skip := offset % BlockSize
	for len(dst) > 0 {
		block := n.RootBlock(counter)
		c := copy(dst, block[skip:])
		dst = dst[c:]
		skip = 0
		counter++
	}
}
