// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package mempool

import (
	"container/list"

	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/types"
)

const latestTxNum = 10

// Item为Mempool中包装交易的数据结构
type Item struct {
	value     *types.Transaction
	enterTime int64
}

//txCache 按进入顺序保存交易
type txCache struct {
	size     int
	accLimit int
	txMap    map[string]*list.Element
	txList   *list.List
	accMap   map[address.Address]int
}

func newTxCache(size, accLimit int) *txCache {
	return &txCache{
		size:     size,
		accLimit: accLimit,
		txMap:    make(map[string]*list.Element),
		txList:   list.New(),
		accMap:   make(map[address.Address]int),
	}
}

// TxNumOfAccount返回账户在Mempool中交易数量
func (cache *txCache) TxNumOfAccount(addr address.Address) int {
	return cache.accMap[addr]
}

// Exists判断txCache中是否存在给定tx
func (cache *txCache) Exists(hash []byte) bool {
	_, exists := cache.txMap[string(hash)]
	return exists
}

// Push把给定tx添加到txCache；如果tx已经存在txCache中或Mempool已满则返回对应error
func (cache *txCache) Push(tx *types.Transaction, now int64) error {
	hash := tx.Hash()
	if cache.Exists(hash) {
		return types.ErrTxExist
	}
	if cache.txList.Len() >= cache.size {
		return types.ErrMemFull
	}
	from := tx.From()
	if cache.accLimit > 0 && cache.accMap[from] >= cache.accLimit {
		return types.ErrManyTx
	}
	it := &Item{value: tx, enterTime: now}
	cache.txMap[string(hash)] = cache.txList.PushBack(it)
	cache.accMap[from]++
	return nil
}

// Remove删除给定tx
func (cache *txCache) Remove(hash []byte) {
	elem, ok := cache.txMap[string(hash)]
	if !ok {
		return
	}
	tx := elem.Value.(*Item).value
	cache.txList.Remove(elem)
	delete(cache.txMap, string(hash))
	from := tx.From()
	cache.accMap[from]--
	if cache.accMap[from] <= 0 {
		delete(cache.accMap, from)
	}
}

// Pop 按进入顺序取出最多 n 条交易
func (cache *txCache) Pop(n int) []*types.Transaction {
	var result []*types.Transaction
	for len(result) < n {
		front := cache.txList.Front()
		if front == nil {
			break
		}
		tx := front.Value.(*Item).value
		cache.Remove(tx.Hash())
		result = append(result, tx)
	}
	return result
}

// Latest返回最新加入的交易
func (cache *txCache) Latest() []*types.Transaction {
	var result []*types.Transaction
	for e := cache.txList.Back(); e != nil && len(result) < latestTxNum; e = e.Prev() {
		result = append(result, e.Value.(*Item).value)
	}
	return result
}

// Size 交易数量
func (cache *txCache) Size() int {
	return cache.txList.Len()
}
