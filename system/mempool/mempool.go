// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mempool 交易池, 保存等待打包的交易
package mempool

import (
	"sync"
	"time"

	"github.com/33cn/digitalbomb/common/address"
	log "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/metrics"
	"github.com/33cn/digitalbomb/types"
	lru "github.com/hashicorp/golang-lru"
)

var mlog = log.New("module", "mempool")

const mempoolAddedTxSize = 102400

// TxChecker 交易进入交易池前的检查
type TxChecker interface {
	CheckTx(tx *types.Transaction) error
}

// Mempool 交易池
type Mempool struct {
	proxyMtx sync.Mutex
	cache    *txCache
	checker  TxChecker
	addedTxs *lru.Cache
}

// New 创建交易池
func New(cfg types.Mempool, checker TxChecker) *Mempool {
	size := cfg.PoolCacheSize
	if size <= 0 {
		size = types.DefaultConfig().Mempool.PoolCacheSize
	}
	addedTxs, err := lru.New(mempoolAddedTxSize)
	if err != nil {
		panic(err)
	}
	return &Mempool{
		cache:    newTxCache(size, cfg.MaxTxNumPerAccount),
		checker:  checker,
		addedTxs: addedTxs,
	}
}

// PushTx将交易推入Mempool, 失败返回原因
func (mem *Mempool) PushTx(tx *types.Transaction) error {
	if mem.addedTxs.Contains(string(tx.Hash())) {
		return types.ErrTxExist
	}
	if err := mem.checker.CheckTx(tx); err != nil {
		mlog.Debug("PushTx check", "hash", tx.HashHex(), "err", err)
		return err
	}
	mem.proxyMtx.Lock()
	defer mem.proxyMtx.Unlock()
	if err := mem.cache.Push(tx, time.Now().Unix()); err != nil {
		return err
	}
	metrics.MempoolSize(mem.cache.Size())
	return nil
}

// GetTxList从txCache中返回给定数目的tx并从txCache中删除返回的tx
func (mem *Mempool) GetTxList(txListSize int) []*types.Transaction {
	mem.proxyMtx.Lock()
	defer mem.proxyMtx.Unlock()
	txs := mem.cache.Pop(txListSize)
	metrics.MempoolSize(mem.cache.Size())
	return txs
}

// RemoveTxsOfBlock移除Mempool中已被Blockchain打包的tx
func (mem *Mempool) RemoveTxsOfBlock(block *types.Block) {
	mem.proxyMtx.Lock()
	defer mem.proxyMtx.Unlock()
	for _, tx := range block.Txs {
		hash := tx.Hash()
		mem.addedTxs.Add(string(hash), nil)
		mem.cache.Remove(hash)
	}
	metrics.MempoolSize(mem.cache.Size())
}

// Size返回Mempool中txCache大小
func (mem *Mempool) Size() int {
	mem.proxyMtx.Lock()
	defer mem.proxyMtx.Unlock()
	return mem.cache.Size()
}

// TxNumOfAccount返回账户在Mempool中交易数量
func (mem *Mempool) TxNumOfAccount(addr address.Address) int {
	mem.proxyMtx.Lock()
	defer mem.proxyMtx.Unlock()
	return mem.cache.TxNumOfAccount(addr)
}

// GetLatestTx返回最新十条加入到Mempool的交易
func (mem *Mempool) GetLatestTx() []*types.Transaction {
	mem.proxyMtx.Lock()
	defer mem.proxyMtx.Unlock()
	return mem.cache.Latest()
}
