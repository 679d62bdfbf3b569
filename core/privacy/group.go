package privacy

import "encoding/base64"

// PrivacyGroup is a named set of enclave participants. The ID is the
// base64-encoded group identifier as it travels on the wire; membership is a
// set of participant enclave public keys in the same encoding.
type PrivacyGroup struct {
	ID      string
	Name    string
	Members []string
}

// HasMember reports whether the enclave key belongs to the group.
func (g *PrivacyGroup) HasMember(enclaveKey string) bool {
	for _, member := range g.Members {
		if member == enclaveKey {
			return true
		}
	}
	return false
}

// GroupDirectory resolves privacy groups by their base64 identifier.
// Production nodes back this with the enclave; tests use in-memory maps.
type GroupDirectory interface {
	GroupByID(id string) (*PrivacyGroup, bool)
}

// MemoryDirectory is a GroupDirectory over a fixed set of groups.
type MemoryDirectory struct {
	groups map[string]*PrivacyGroup
}

// NewMemoryDirectory builds a directory holding the given groups.
func NewMemoryDirectory(groups ...*PrivacyGroup) *MemoryDirectory {
	dir := &MemoryDirectory{groups: make(map[string]*PrivacyGroup, len(groups))}
	for _, group := range groups {
		dir.groups[group.ID] = group
	}
	return dir
}

// GroupByID returns the group with the given identifier.
func (d *MemoryDirectory) GroupByID(id string) (*PrivacyGroup, bool) {
	group, ok := d.groups[id]
	return group, ok
}

// decodeGroupID turns the wire-format identifier into the raw bytes used for
// storage keys and transaction payloads.
func decodeGroupID(id string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(id)
}
