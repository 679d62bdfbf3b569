package privacy

import (
	"github.com/ethereum/go-ethereum/common"

	"veilchain/core/types"
)

// BlockHashFunc resolves the hash of an ancestor block by height for the
// BLOCKHASH operation. The second return is false when the height is not an
// ancestor of the anchor block.
type BlockHashFunc func(height uint64) (common.Hash, bool)

// NewBlockHashLookup returns a BlockHashFunc anchored on header. Ancestor
// hashes are found by walking parent links and memoized, so repeated lookups
// during one execution walk each link at most once. The returned func belongs
// to a single execution and is not safe for concurrent use.
func NewBlockHashLookup(header *types.BlockHeader, chain Blockchain) BlockHashFunc {
	cache := make(map[uint64]common.Hash)
	lowest := header

	return func(height uint64) (common.Hash, bool) {
		if hash, ok := cache[height]; ok {
			return hash, true
		}
		if height >= lowest.Height {
			return common.Hash{}, false
		}
		for lowest.Height > height {
			parent, ok := chain.HeaderByHash(lowest.ParentHash)
			if !ok {
				return common.Hash{}, false
			}
			cache[parent.Height] = lowest.ParentHash
			lowest = parent
		}
		hash, ok := cache[height]
		return hash, ok
	}
}
