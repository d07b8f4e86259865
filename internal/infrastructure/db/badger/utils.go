package badgerdb

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/timshannon/badgerhold/v4"
)

const maxRetries = 5

type txKey struct{}

func createDB(dbDir string, logger badger.Logger) (*badgerhold.Store, error) {
	isInMemory := len(dbDir) <= 0

	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	if isInMemory {
		opts.InMemory = true
	}

	db, err := badgerhold.Open(badgerhold.Options{
		Encoder:          badgerhold.DefaultEncode,
		Decoder:          badgerhold.DefaultDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})
	if err != nil {
		return nil, err
	}

	return db, nil
}

func withTx(ctx context.Context, tx *badger.Txn) context.Context {
	return context.WithValue(ctx, txKey{}, tx)
}

func getTx(ctx context.Context) *badger.Txn {
	tx, _ := ctx.Value(txKey{}).(*badger.Txn)
	return tx
}

// retry re-runs fn as long as it fails with a transaction conflict, up to
// maxRetries times.
func retry(fn func() error) error {
	err := fn()
	attempts := 1
	for errors.Is(err, badger.ErrConflict) && attempts <= maxRetries {
		time.Sleep(100 * time.Millisecond)
		err = fn()
		attempts++
	}
	return err
}

// get loads the record at key into result, it returns false if there's no
// such record.
func get(ctx context.Context, store *badgerhold.Store, key string, result interface{}) (bool, error) {
	var err error
	if tx := getTx(ctx); tx != nil {
		err = store.TxGet(tx, key, result)
	} else {
		err = store.Get(key, result)
	}
	if errors.Is(err, badgerhold.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func find(
	ctx context.Context, store *badgerhold.Store, result interface{}, query *badgerhold.Query,
) error {
	if tx := getTx(ctx); tx != nil {
		return store.TxFind(tx, result, query)
	}
	return store.Find(result, query)
}

func insert(ctx context.Context, store *badgerhold.Store, key string, data interface{}) error {
	if tx := getTx(ctx); tx != nil {
		return store.TxInsert(tx, key, data)
	}
	return retry(func() error {
		return store.Insert(key, data)
	})
}

func update(ctx context.Context, store *badgerhold.Store, key string, data interface{}) error {
	if tx := getTx(ctx); tx != nil {
		return store.TxUpdate(tx, key, data)
	}
	return retry(func() error {
		return store.Update(key, data)
	})
}

func upsert(ctx context.Context, store *badgerhold.Store, key string, data interface{}) error {
	if tx := getTx(ctx); tx != nil {
		return store.TxUpsert(tx, key, data)
	}
	return retry(func() error {
		return store.Upsert(key, data)
	})
}

// remove deletes the record at key, deleting a missing record is a no-op.
func remove(ctx context.Context, store *badgerhold.Store, key string, dataType interface{}) error {
	var err error
	if tx := getTx(ctx); tx != nil {
		err = store.TxDelete(tx, key, dataType)
	} else {
		err = retry(func() error {
			return store.Delete(key, dataType)
		})
	}
	if errors.Is(err, badgerhold.ErrNotFound) {
		return nil
	}
	return err
}
