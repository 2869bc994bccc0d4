// SPDX-License-Identifier: ISC
// Copyright (c) 2014-2019 Bitmark Inc.
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txstore_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bitmark-inc/chaindb/chainhash"
	"github.com/bitmark-inc/chaindb/txstore"
)

// configure for testing
func setup(t *testing.T) *txstore.Store {
	os.RemoveAll(fileName)
	store, err := txstore.Create(fileName, testBuckets)
	if nil != err {
		t.Fatalf("store create error: %s", err)
	}
	return store
}

// post test cleanup
func teardown(store *txstore.Store) {
	store.Stop()
	os.RemoveAll(fileName)
}

// store transaction with height 100 index 2, read it back, remove
// it, and confirm it is gone
func TestRoundTrip(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	tx := testTransaction{data: []byte("raw transaction payload")}
	hash := tx.Hash()

	err := store.StoreTransaction(100, 2, tx)
	assert.Nil(t, err, "store error")

	result := store.Get(hash)
	assert.NotNil(t, result, "transaction not found")
	assert.Equal(t, uint32(100), result.Height, "wrong height")
	assert.Equal(t, uint32(2), result.Index, "wrong index")
	assert.Equal(t, tx.data, result.Data, "wrong data")

	store.Remove(hash)
	assert.Nil(t, store.Get(hash), "removed transaction still found")
}

func TestAbsence(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	absent := chainhash.NewDigest([]byte("never stored"))
	assert.Nil(t, store.Get(absent), "found a transaction never stored")
	assert.False(t, store.Has(absent), "has a transaction never stored")

	// lookup must not mutate anything
	assert.Nil(t, store.Get(absent), "second lookup differs")
}

// removing an unknown transaction is a programming error
func TestRemoveAbsent(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	assert.Panics(t, func() {
		store.Remove(chainhash.NewDigest([]byte("never stored")))
	}, "remove of unknown transaction must fault")
}

func TestHeightOverflow(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	tx := testTransaction{data: []byte("payload")}
	assert.Panics(t, func() {
		_ = store.StoreTransaction(0x100000000, 0, tx)
	}, "out of range height must fault")
	assert.Panics(t, func() {
		_ = store.StoreTransaction(0, 0x100000000, tx)
	}, "out of range index must fault")
}

// many stores across file grows, then every record re-fetched with
// fresh handles
func TestGrowthInvalidation(t *testing.T) {
	store := setup(t)
	defer teardown(store)

	transactions := make([]testTransaction, 100)
	for i := 0; i < len(transactions); i += 1 {
		data := make([]byte, 900)
		copy(data, fmt.Sprintf("transaction-%d", i))
		transactions[i] = testTransaction{data: data}

		err := store.StoreTransaction(uint64(i), uint64(i%10), transactions[i])
		assert.Nil(t, err, "store error")
	}

	for i, tx := range transactions {
		result := store.Get(tx.Hash())
		assert.NotNil(t, result, "missing transaction %d", i)
		assert.Equal(t, uint32(i), result.Height, "wrong height %d", i)
		assert.Equal(t, uint32(i%10), result.Index, "wrong index %d", i)
		assert.Equal(t, tx.data, result.Data, "wrong data %d", i)
	}
}

func TestReopen(t *testing.T) {
	store := setup(t)

	tx := testTransaction{data: []byte("durable transaction")}
	err := store.StoreTransaction(42, 7, tx)
	assert.Nil(t, err, "store error")

	assert.Nil(t, store.Sync(), "sync error")
	assert.Nil(t, store.Stop(), "stop error")

	store, err = txstore.Start(fileName, testBuckets)
	assert.Nil(t, err, "start error")
	defer teardown(store)

	result := store.Get(tx.Hash())
	assert.NotNil(t, result, "transaction lost across restart")
	assert.Equal(t, uint32(42), result.Height, "wrong height")
	assert.Equal(t, uint32(7), result.Index, "wrong index")
	assert.Equal(t, tx.data, result.Data, "wrong data")
}

// attaching with a larger bucket count than the file holds must fail
func TestStartTruncated(t *testing.T) {
	store := setup(t)
	assert.Nil(t, store.Stop(), "stop error")

	_, err := txstore.Start(fileName, 1<<20)
	assert.NotNil(t, err, "truncated file not detected")

	os.RemoveAll(fileName)
}
