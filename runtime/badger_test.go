package runtime

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBadgerStorageNamespaces(t *testing.T) {
	db, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	a := db.Storage("a")
	b := db.Storage("b")
	a.Put([]byte{1}, []byte("x"))
	b.Put([]byte{1}, []byte("y"))

	require.Equal(t, []byte("x"), a.Get([]byte{1}))
	require.Equal(t, []byte("y"), b.Get([]byte{1}))
	require.Nil(t, a.Get([]byte{2}))

	a.Delete([]byte{1})
	require.Nil(t, a.Get([]byte{1}))
	require.Equal(t, []byte("y"), b.Get([]byte{1}))
}

func TestBadgerStorageSeek(t *testing.T) {
	db, err := OpenBadger(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	s := db.Storage("ledger")
	s.Put([]byte{1, 2}, []byte("b"))
	s.Put([]byte{1, 1}, []byte("a"))
	s.Put([]byte{2, 1}, []byte("c"))

	var keys [][]byte
	s.Seek([]byte{1}, func(k, _ []byte) bool {
		keys = append(keys, k)
		return true
	})
	require.Equal(t, [][]byte{{1, 1}, {1, 2}}, keys)

	// Keys of other namespaces never leak into a scan.
	db.Storage("other").Put([]byte{1, 3}, []byte("d"))
	keys = nil
	s.Seek(nil, func(k, _ []byte) bool {
		keys = append(keys, k)
		return true
	})
	require.Equal(t, [][]byte{{1, 1}, {1, 2}, {2, 1}}, keys)
}

func TestBadgerStoragePersists(t *testing.T) {
	dir := t.TempDir()

	db, err := OpenBadger(dir)
	require.NoError(t, err)
	db.Storage("ledger").Put([]byte("k"), []byte("v"))
	require.NoError(t, db.Close())

	db, err = OpenBadger(dir)
	require.NoError(t, err)
	defer db.Close()
	require.Equal(t, []byte("v"), db.Storage("ledger").Get([]byte("k")))
}
