package common

import (
	"github.com/qstn-network/nft-contract/host"
)

// GetSerialized reads the value under key into out and reports whether
// the key was present.
func GetSerialized(s host.Storage, key []byte, out interface{}) bool {
	data := s.Get(key)
	if data == nil {
		return false
	}
	UnmarshalPanic(data, out)
	return true
}

// SetSerialized serializes value and puts it into contract storage.
func SetSerialized(s host.Storage, key []byte, value interface{}) {
	s.Put(key, MarshalPanic(value))
}

// GetUint64 reads an unsigned counter, returning 0 for an absent key.
func GetUint64(s host.Storage, key []byte) uint64 {
	var n uint64
	GetSerialized(s, key, &n)
	return n
}

// PutUint64 stores an unsigned counter. A zero value is deleted rather
// than stored so that empty counters do not occupy paid storage.
func PutUint64(s host.Storage, key []byte, n uint64) {
	if n == 0 {
		s.Delete(key)
		return
	}
	SetSerialized(s, key, n)
}
