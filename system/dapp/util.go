// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dapp

import (
	"fmt"

	"github.com/33cn/digitalbomb/common/db"
	"github.com/33cn/digitalbomb/types"
)

// HeightIndexStr 交易在链上的位置, 定长十进制, 可以直接按字节序排序
func HeightIndexStr(height, index int64) string {
	return fmt.Sprintf("%018d", height*types.MaxTxsPerBlock+index)
}

// KVCreator 收集一笔交易产生的状态修改和日志.
// Set/Del 同时写入 statedb, 同一笔交易后面的读取可以看到前面的修改
type KVCreator struct {
	kvdb db.KV
	kvs  []*types.KeyValue
	logs []*types.ReceiptLog
}

// NewKVCreator kv 为执行器的 statedb
func NewKVCreator(kv db.KV) *KVCreator {
	return &KVCreator{kvdb: kv}
}

// Set 写入 key
func (c *KVCreator) Set(key, value []byte) error {
	if err := c.kvdb.Set(key, value); err != nil {
		return err
	}
	c.kvs = append(c.kvs, &types.KeyValue{Key: key, Value: value})
	return nil
}

// Del 删除 key, 在 kv 列表中 value 为 nil
func (c *KVCreator) Del(key []byte) error {
	return c.Set(key, nil)
}

// Merge 合并其他模块(比如账户转账)的回执, 其中的 kv 已经写过 statedb
func (c *KVCreator) Merge(receipt *types.Receipt) {
	if receipt == nil {
		return
	}
	c.kvs = append(c.kvs, receipt.KV...)
	c.logs = append(c.logs, receipt.Logs...)
}

// AddLog 添加回执日志
func (c *KVCreator) AddLog(ty int32, log []byte) {
	c.logs = append(c.logs, &types.ReceiptLog{Ty: ty, Log: log})
}

// KVList 所有的修改, 按写入顺序
func (c *KVCreator) KVList() []*types.KeyValue {
	return c.kvs
}

// Receipt 执行成功的回执
func (c *KVCreator) Receipt() *types.Receipt {
	return &types.Receipt{Ty: types.ExecOk, KV: c.kvs, Logs: c.logs}
}
