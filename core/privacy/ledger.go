package privacy

import (
	"fmt"

	"github.com/ethereum/go-ethereum/common"

	"veilchain/storage"
)

var privateRootPrefix = []byte("private-root:")

func privateRootKey(groupID []byte) []byte {
	return append(append([]byte(nil), privateRootPrefix...), groupID...)
}

// StateRootLedger maps a privacy group to the root of its latest committed
// private world state.
type StateRootLedger interface {
	// LatestRoot returns the group's most recent private state root. The
	// second return is false when the group has no committed state yet, in
	// which case callers fall back to the empty state.
	LatestRoot(groupID []byte) (common.Hash, bool)
}

// Ledger is the durable StateRootLedger over the private backing store. The
// processor records a new root here each time a private block commits; the
// simulator only ever reads.
type Ledger struct {
	db storage.Database
}

// NewLedger opens the root ledger over the given storage.
func NewLedger(db storage.Database) *Ledger {
	return &Ledger{db: db}
}

// LatestRoot returns the latest recorded root for the group.
func (l *Ledger) LatestRoot(groupID []byte) (common.Hash, bool) {
	raw, err := l.db.Get(privateRootKey(groupID))
	if err != nil {
		return common.Hash{}, false
	}
	return common.BytesToHash(raw), true
}

// Record stores root as the group's latest private state root.
func (l *Ledger) Record(groupID []byte, root common.Hash) error {
	if err := l.db.Put(privateRootKey(groupID), root.Bytes()); err != nil {
		return fmt.Errorf("privacy: record state root for group %x: %w", groupID, err)
	}
	return nil
}
