package runtime

import (
	"sort"
	"strings"

	"github.com/qstn-network/nft-contract/host"
)

// MemStore is an in-memory host.Storage used by tests and ephemeral
// runtimes.
type MemStore struct {
	data map[string][]byte
}

// NewMemStore returns an empty in-memory storage.
func NewMemStore() *MemStore {
	return &MemStore{data: map[string][]byte{}}
}

func (m *MemStore) Get(key []byte) []byte {
	v, ok := m.data[string(key)]
	if !ok {
		return nil
	}
	return clone(v)
}

func (m *MemStore) Put(key, value []byte) {
	m.data[string(key)] = clone(value)
}

func (m *MemStore) Delete(key []byte) {
	delete(m.data, string(key))
}

func (m *MemStore) Seek(prefix []byte, fn func(key, value []byte) bool) {
	keys := make([]string, 0, len(m.data))
	for k := range m.data {
		if strings.HasPrefix(k, string(prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fn([]byte(k), clone(m.data[k])) {
			return
		}
	}
}

// Dump returns a copy of the whole store, keyed by the raw key bytes.
// Tests use it to compare ledger states byte for byte.
func (m *MemStore) Dump() map[string][]byte {
	out := make(map[string][]byte, len(m.data))
	for k, v := range m.data {
		out[k] = clone(v)
	}
	return out
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// stagedStore buffers the writes of a single receipt over the
// contract's base storage. Nothing reaches the base until commit, so an
// aborted receipt leaves no trace. The byte delta of buffered writes is
// tracked incrementally to answer mid-call storage-usage queries.
type stagedStore struct {
	base   host.Storage
	writes map[string][]byte // nil value marks a delete
	delta  int64
}

func newStagedStore(base host.Storage) *stagedStore {
	return &stagedStore{base: base, writes: map[string][]byte{}}
}

func (st *stagedStore) Get(key []byte) []byte {
	if v, ok := st.writes[string(key)]; ok {
		return clone(v)
	}
	return st.base.Get(key)
}

func (st *stagedStore) Put(key, value []byte) {
	st.delta += int64(len(key)+len(value)) - st.liveSize(key)
	st.writes[string(key)] = clone(value)
}

func (st *stagedStore) Delete(key []byte) {
	st.delta -= st.liveSize(key)
	st.writes[string(key)] = nil
}

// liveSize returns the bytes currently occupied by key, staged writes
// included.
func (st *stagedStore) liveSize(key []byte) int64 {
	if v, ok := st.writes[string(key)]; ok {
		if v == nil {
			return 0
		}
		return int64(len(key) + len(v))
	}
	if v := st.base.Get(key); v != nil {
		return int64(len(key) + len(v))
	}
	return 0
}

func (st *stagedStore) Seek(prefix []byte, fn func(key, value []byte) bool) {
	merged := map[string][]byte{}
	st.base.Seek(prefix, func(key, value []byte) bool {
		merged[string(key)] = value
		return true
	})
	for k, v := range st.writes {
		if !strings.HasPrefix(k, string(prefix)) {
			continue
		}
		if v == nil {
			delete(merged, k)
		} else {
			merged[k] = v
		}
	}
	keys := make([]string, 0, len(merged))
	for k := range merged {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !fn([]byte(k), clone(merged[k])) {
			return
		}
	}
}

// commit applies the buffered writes to the base storage.
func (st *stagedStore) commit() {
	for k, v := range st.writes {
		if v == nil {
			st.base.Delete([]byte(k))
		} else {
			st.base.Put([]byte(k), v)
		}
	}
}
