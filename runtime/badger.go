package runtime

import (
	"github.com/dgraph-io/badger/v3"

	"github.com/qstn-network/nft-contract/host"
)

// prefixContractStorage namespaces contract state inside the shared
// Badger database, one namespace per contract account.
const prefixContractStorage = "CONTRACT:STORAGE:"

// BadgerDB is a durable backend shared by all contract accounts of a
// runtime.
type BadgerDB struct {
	db *badger.DB
}

// OpenBadger opens (creating if needed) a Badger database at path.
func OpenBadger(path string) (*BadgerDB, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &BadgerDB{db: db}, nil
}

func (b *BadgerDB) Close() error {
	return b.db.Close()
}

// Storage returns the durable storage namespace of the given contract
// account.
func (b *BadgerDB) Storage(account host.AccountID) host.Storage {
	prefix := prefixContractStorage + string(account) + ":"
	return &badgerStorage{db: b.db, prefix: []byte(prefix)}
}

// badgerStorage implements host.Storage over a key namespace of a
// Badger database. Backend failures panic: the storage primitive is
// infallible at the host boundary.
type badgerStorage struct {
	db     *badger.DB
	prefix []byte
}

func (bs *badgerStorage) key(key []byte) []byte {
	return append(clone(bs.prefix), key...)
}

func (bs *badgerStorage) Get(key []byte) []byte {
	var value []byte
	err := bs.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bs.key(key))
		if err == badger.ErrKeyNotFound {
			return nil
		} else if err != nil {
			return err
		}
		value, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		panic("storage get: " + err.Error())
	}
	return value
}

func (bs *badgerStorage) Put(key, value []byte) {
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bs.key(key), value)
	})
	if err != nil {
		panic("storage put: " + err.Error())
	}
}

func (bs *badgerStorage) Delete(key []byte) {
	err := bs.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(bs.key(key))
	})
	if err != nil {
		panic("storage delete: " + err.Error())
	}
}

func (bs *badgerStorage) Seek(prefix []byte, fn func(key, value []byte) bool) {
	err := bs.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = bs.key(prefix)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(opts.Prefix); it.Valid(); it.Next() {
			item := it.Item()
			key := item.KeyCopy(nil)[len(bs.prefix):]
			value, err := item.ValueCopy(nil)
			if err != nil {
				return err
			}
			if !fn(key, value) {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		panic("storage seek: " + err.Error())
	}
}
