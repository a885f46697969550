// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package util 测试以及工具函数
package util

import (
	"encoding/json"
	"fmt"
	"os"
	"testing"

	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/common/crypto"
	"github.com/33cn/digitalbomb/common/crypto/ed25519"
	"github.com/33cn/digitalbomb/common/db"
	log "github.com/33cn/digitalbomb/common/log"
	cty "github.com/33cn/digitalbomb/system/dapp/coins/types"
	"github.com/33cn/digitalbomb/types"
)

var ulog = log.New("module", "util")

// Genaddress : generate a address
func Genaddress() (address.Address, crypto.PrivKey) {
	cr, err := crypto.New(ed25519.Name)
	if err != nil {
		panic(err)
	}
	privto, err := cr.GenKey()
	if err != nil {
		panic(err)
	}
	addrto, err := address.BytesToAddress(privto.PubKey().Bytes())
	if err != nil {
		panic(err)
	}
	return addrto, privto
}

// PrivKeyFromHex hex 格式的私钥
func PrivKeyFromHex(key string) (crypto.PrivKey, error) {
	b, err := common.FromHex(key)
	if err != nil {
		return nil, err
	}
	cr, err := crypto.New(ed25519.Name)
	if err != nil {
		return nil, err
	}
	return cr.PrivKeyFromBytes(b)
}

// PubKeyAddress 私钥对应的地址
func PubKeyAddress(priv crypto.PrivKey) address.Address {
	addr, err := address.BytesToAddress(priv.PubKey().Bytes())
	if err != nil {
		panic(err)
	}
	return addr
}

// CreateTx 构造并签名交易, 签名者作为第 0 个引用账户
func CreateTx(priv crypto.PrivKey, execer string, payload []byte, nonce int64, accounts ...address.Address) *types.Transaction {
	refs := append([]address.Address{PubKeyAddress(priv)}, accounts...)
	tx := types.CreateTx(execer, payload, nonce, refs...)
	tx.Sign(ed25519.ID, priv)
	return tx
}

// CreateCoinsTx : Create Coins Tx
func CreateCoinsTx(priv crypto.PrivKey, to address.Address, amount, nonce int64) *types.Transaction {
	return CreateTx(priv, types.CoinsX, cty.EncodeTransfer(amount), nonce, to)
}

// GenCoinsTxs : generate txs to be executed
func GenCoinsTxs(priv crypto.PrivKey, n int64) (txs []*types.Transaction) {
	to, _ := Genaddress()
	for i := int64(0); i < n; i++ {
		txs = append(txs, CreateCoinsTx(priv, to, types.Coin, i))
	}
	return txs
}

// JSONPrint : print in json format
func JSONPrint(t *testing.T, input interface{}) {
	data, err := json.MarshalIndent(input, "", "\t")
	if err != nil {
		t.Error(err)
		return
	}
	if t == nil {
		fmt.Println(string(data))
	} else {
		t.Log(string(data))
	}
}

//CreateTestDB 创建一个测试数据库
func CreateTestDB() (string, db.DB) {
	dir, err := os.MkdirTemp("", "goleveldb")
	if err != nil {
		panic(err)
	}
	leveldb, err := db.NewGoLevelDB("goleveldb", dir, 128)
	if err != nil {
		panic(err)
	}
	return dir, leveldb
}

//CloseTestDB 关闭并删除测试数据库
func CloseTestDB(dir string, dbm db.DB) {
	dbm.Close()
	err := os.RemoveAll(dir)
	if err != nil {
		ulog.Info("RemoveAll ", "dir", dir, "err", err)
	}
}

//SaveKVList 保存kvs to database
func SaveKVList(kvdb db.DB, kvs []*types.KeyValue) {
	batch := kvdb.NewBatch(true)
	for i := 0; i < len(kvs); i++ {
		if kvs[i].Value == nil {
			batch.Delete(kvs[i].Key)
			continue
		}
		batch.Set(kvs[i].Key, kvs[i].Value)
	}
	err := batch.Write()
	if err != nil {
		panic(err)
	}
}

//PrintKV 打印KVList
func PrintKV(kvs []*types.KeyValue) {
	for i := 0; i < len(kvs); i++ {
		fmt.Printf("KV %d %s(%s)\n", i, string(kvs[i].Key), common.ToHex(kvs[i].Value))
	}
}
