// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package util

import (
	"testing"

	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTx(t *testing.T) {
	addr, priv := Genaddress()
	to, _ := Genaddress()
	tx := CreateCoinsTx(priv, to, types.Coin, 1)
	require.NoError(t, tx.Check())
	assert.Equal(t, addr, tx.From())
	acc, err := tx.Account(1)
	require.NoError(t, err)
	assert.Equal(t, to, acc)

	txs := GenCoinsTxs(priv, 3)
	assert.Len(t, txs, 3)
	assert.NotEqual(t, txs[0].Hash(), txs[1].Hash())
}

func TestPrivKeyFromHex(t *testing.T) {
	addr, priv := Genaddress()
	priv2, err := PrivKeyFromHex(common.ToHex(priv.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, addr, PubKeyAddress(priv2))
	_, err = PrivKeyFromHex("0x1234")
	assert.Error(t, err)
}

func TestTestDB(t *testing.T) {
	dir, db := CreateTestDB()
	SaveKVList(db, []*types.KeyValue{{Key: []byte("a"), Value: []byte("1")}, {Key: []byte("b"), Value: []byte("2")}})
	v, err := db.Get([]byte("a"))
	require.NoError(t, err)
	assert.Equal(t, []byte("1"), v)
	SaveKVList(db, []*types.KeyValue{{Key: []byte("a"), Value: nil}})
	_, err = db.Get([]byte("a"))
	assert.Error(t, err)
	CloseTestDB(dir, db)
}
