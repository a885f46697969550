// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"encoding/hex"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T, backend string) DB {
	dir, err := os.MkdirTemp("", backend)
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(dir) })
	db, err := NewDB("test", backend, dir, 16)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	return db
}

func TestBackends(t *testing.T) {
	for _, backend := range []string{MemDBBackendStr, GoLevelDBBackendStr, GoBadgerDBBackendStr} {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			testDBGetSet(t, newTestDB(t, backend))
			testDBIterator(t, newTestDB(t, backend))
			testDBBoundary(t, newTestDB(t, backend))
			testDBBatch(t, newTestDB(t, backend))
		})
	}
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewDB("test", "cleveldb", "", 0)
	assert.Error(t, err)
}

func testDBGetSet(t *testing.T, db DB) {
	_, err := db.Get([]byte("nokey"))
	assert.Equal(t, ErrNotFoundInDb, err)

	require.NoError(t, db.Set([]byte("key"), []byte("value")))
	v, err := db.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value"), v)

	require.NoError(t, db.SetSync([]byte("key"), []byte("value2")))
	v, err = db.Get([]byte("key"))
	require.NoError(t, err)
	assert.Equal(t, []byte("value2"), v)

	require.NoError(t, db.Delete([]byte("key")))
	_, err = db.Get([]byte("key"))
	assert.Equal(t, ErrNotFoundInDb, err)
	assert.NotNil(t, db.Stats())
}

// 迭代测试
func testDBIterator(t *testing.T, db DB) {
	for _, k := range []string{"aaaaaa/1", "my_key/1", "my_key/2", "my_key/3", "my_key/4", "my", "my_", "zzzzzz/1"} {
		require.NoError(t, db.Set([]byte(k), []byte(k)))
	}
	b, err := hex.DecodeString("ff")
	require.NoError(t, err)
	require.NoError(t, db.Set(b, []byte("0xff")))

	it := NewListHelper(db)
	list := it.PrefixScan(nil)
	require.Equal(t, [][]byte{[]byte("aaaaaa/1"), []byte("my"), []byte("my_"), []byte("my_key/1"), []byte("my_key/2"), []byte("my_key/3"), []byte("my_key/4"), []byte("zzzzzz/1"), []byte("0xff")}, list)

	list = it.IteratorScanFromFirst([]byte("my"), 2)
	require.Equal(t, [][]byte{[]byte("my"), []byte("my_")}, list)

	list = it.IteratorScanFromLast([]byte("my"), 100)
	require.Equal(t, [][]byte{[]byte("my_key/4"), []byte("my_key/3"), []byte("my_key/2"), []byte("my_key/1"), []byte("my_"), []byte("my")}, list)

	list = it.IteratorScan([]byte("my"), []byte("my_key/3"), 100, ListASC)
	require.Equal(t, [][]byte{[]byte("my_key/4")}, list)

	list = it.IteratorScan([]byte("my"), []byte("my_key/3"), 100, ListDESC)
	require.Equal(t, [][]byte{[]byte("my_key/2"), []byte("my_key/1"), []byte("my_"), []byte("my")}, list)

	list = it.List([]byte("my_key/"), nil, 2, ListDESC)
	require.Equal(t, [][]byte{[]byte("my_key/4"), []byte("my_key/3")}, list)

	list = it.List([]byte("my_key/"), []byte("my_key/1"), 2, ListASC)
	require.Equal(t, [][]byte{[]byte("my_key/2"), []byte("my_key/3")}, list)

	assert.Equal(t, int64(4), it.PrefixCount([]byte("my_key/")))
}

// 边界测试
func testDBBoundary(t *testing.T, db DB) {
	a, _ := hex.DecodeString("0f")
	c, _ := hex.DecodeString("0fff")
	b, _ := hex.DecodeString("ff")
	d, _ := hex.DecodeString("ffff")
	require.NoError(t, db.Set(a, []byte("0x0f")))
	require.NoError(t, db.Set(c, []byte("0x0fff")))
	require.NoError(t, db.Set(b, []byte("0xff")))
	require.NoError(t, db.Set(d, []byte("0xffff")))

	it := NewListHelper(db)

	list := it.PrefixScan(a)
	require.Equal(t, [][]byte{[]byte("0x0f"), []byte("0x0fff")}, list)

	list = it.IteratorScanFromLast(a, 100)
	require.Equal(t, [][]byte{[]byte("0x0fff"), []byte("0x0f")}, list)

	list = it.IteratorScan(a, a, 100, ListASC)
	require.Equal(t, [][]byte{[]byte("0x0fff")}, list)

	list = it.IteratorScan(a, a, 100, ListDESC)
	require.Equal(t, [][]byte(nil), list)

	// ff为prefix
	list = it.PrefixScan(b)
	require.Equal(t, [][]byte{[]byte("0xff"), []byte("0xffff")}, list)

	list = it.IteratorScanFromLast(b, 100)
	require.Equal(t, [][]byte{[]byte("0xffff"), []byte("0xff")}, list)

	list = it.IteratorScan(b, d, 100, ListDESC)
	require.Equal(t, [][]byte{[]byte("0xff")}, list)
}

func testDBBatch(t *testing.T, db DB) {
	require.NoError(t, db.Set([]byte("old"), []byte("old")))

	batch := db.NewBatch(true)
	batch.Set([]byte("k1"), []byte("v1"))
	batch.Set([]byte("k2"), []byte("v2"))
	batch.Delete([]byte("old"))
	assert.True(t, batch.ValueSize() > 0)

	// 写之前不可见
	_, err := db.Get([]byte("k1"))
	assert.Equal(t, ErrNotFoundInDb, err)

	require.NoError(t, batch.Write())
	v, err := db.Get([]byte("k2"))
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), v)
	_, err = db.Get([]byte("old"))
	assert.Equal(t, ErrNotFoundInDb, err)

	batch.Reset()
	assert.Equal(t, 0, batch.ValueSize())
	require.NoError(t, batch.Write())
}

func TestBytesPrefixLimit(t *testing.T) {
	assert.Nil(t, bytesPrefixLimit(nil))
	assert.Nil(t, bytesPrefixLimit([]byte{0xff, 0xff}))
	assert.Equal(t, []byte("mz"), bytesPrefixLimit([]byte("my")))
	assert.Equal(t, []byte{0x10}, bytesPrefixLimit([]byte{0x0f, 0xff}))
}
