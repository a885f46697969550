// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package blockchain 单节点区块链: 创世, 执行并保存区块, 查询区块以及交易
package blockchain

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/33cn/digitalbomb/account"
	"github.com/33cn/digitalbomb/common/address"
	dbm "github.com/33cn/digitalbomb/common/db"
	log "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/executor"
	"github.com/33cn/digitalbomb/metrics"
	"github.com/33cn/digitalbomb/types"
	"github.com/pkg/errors"
)

var chainlog = log.New("module", "blockchain")

// BlockChain 区块链
type BlockChain struct {
	cfg    *types.Genesis
	db     dbm.DB
	store  *BlockStore
	chainm sync.RWMutex
	closed int32
}

// New 打开区块链, 数据库为空时写入创世区块
func New(cfg *types.Genesis, db dbm.DB) (*BlockChain, error) {
	store, err := NewBlockStore(db)
	if err != nil {
		return nil, err
	}
	chain := &BlockChain{cfg: cfg, db: db, store: store}
	if store.Height() == -1 {
		if err := chain.createGenesis(); err != nil {
			return nil, err
		}
	}
	return chain, nil
}

func (chain *BlockChain) createGenesis() error {
	stateDB := executor.NewStateDB(chain.db)
	coins := account.NewCoinsAccount(stateDB)
	for _, acc := range chain.cfg.Accounts {
		addr, err := address.NewAddrFromString(acc.Addr)
		if err != nil {
			return errors.Wrapf(err, "genesis addr %s", acc.Addr)
		}
		if _, err := coins.GenesisInit(addr, acc.Amount); err != nil {
			return errors.Wrapf(err, "genesis amount %s", acc.Addr)
		}
		chainlog.Info("genesis", "addr", acc.Addr, "amount", acc.Amount)
	}
	block := &types.Block{
		ParentHash: make([]byte, 32),
		TxHash:     types.CalcTxHash(nil),
		Height:     0,
		BlockTime:  chain.cfg.BlockTime,
	}
	detail := &types.BlockDetail{Block: block, KV: stateDB.KVList()}
	batch := chain.db.NewBatch(true)
	stateDB.Flush(batch)
	return chain.store.SaveBlock(batch, detail)
}

// Close 关闭, 之后的写入返回 ErrIsClosed
func (chain *BlockChain) Close() {
	atomic.StoreInt32(&chain.closed, 1)
	chain.chainm.Lock()
	defer chain.chainm.Unlock()
	chainlog.Info("blockchain closed", "height", chain.store.Height())
}

func (chain *BlockChain) isClosed() bool {
	return atomic.LoadInt32(&chain.closed) == 1
}

// CheckTx mempool 接收交易前的检查, 在下一个区块的环境中检查
func (chain *BlockChain) CheckTx(tx *types.Transaction) error {
	chain.chainm.RLock()
	defer chain.chainm.RUnlock()
	if chain.store.HasTx(tx.Hash()) {
		return types.ErrTxExist
	}
	header := chain.store.LastHeader()
	exec := executor.New(executor.NewStateDB(chain.db), executor.NewLocalDB(chain.db), header.Height+1, header.BlockTime)
	return exec.CheckTx(tx, 0)
}

// ProcessBlock 按顺序执行交易并保存为新的区块. 已经打包过的以及区块内重复的交易会被丢弃.
// 区块时间不会小于上一个区块
func (chain *BlockChain) ProcessBlock(txs []*types.Transaction, blocktime int64) (*types.BlockDetail, error) {
	if chain.isClosed() {
		return nil, types.ErrIsClosed
	}
	chain.chainm.Lock()
	defer chain.chainm.Unlock()
	begin := time.Now()
	parent := chain.store.LastHeader()
	txs = chain.filterDupTx(txs)
	if len(txs) == 0 {
		return nil, types.ErrEmptyTx
	}
	if len(txs) > types.MaxTxsPerBlock {
		return nil, types.ErrManyTx
	}
	if blocktime < parent.BlockTime {
		blocktime = parent.BlockTime
	}
	height := parent.Height + 1
	stateDB := executor.NewStateDB(chain.db)
	localDB := executor.NewLocalDB(chain.db)
	exec := executor.New(stateDB, localDB, height, blocktime)
	receipts := make([]*types.ReceiptData, len(txs))
	for i, tx := range txs {
		receipts[i] = exec.ExecTx(tx, i)
	}
	block := &types.Block{
		ParentHash: parent.Hash,
		TxHash:     types.CalcTxHash(txs),
		Height:     height,
		BlockTime:  blocktime,
		Txs:        txs,
	}
	detail := &types.BlockDetail{Block: block, Receipts: receipts, KV: stateDB.KVList()}
	batch := chain.db.NewBatch(true)
	stateDB.Flush(batch)
	localDB.Flush(batch)
	if err := chain.store.SaveBlock(batch, detail); err != nil {
		return nil, err
	}
	cost := time.Since(begin)
	metrics.BlockProcessed(height, cost)
	chainlog.Info("ProcessBlock", "height", height, "txs", len(txs), "cost", cost)
	return detail, nil
}

func (chain *BlockChain) filterDupTx(txs []*types.Transaction) []*types.Transaction {
	seen := make(map[string]bool, len(txs))
	out := make([]*types.Transaction, 0, len(txs))
	for _, tx := range txs {
		hash := string(tx.Hash())
		if seen[hash] || chain.store.HasTx([]byte(hash)) {
			chainlog.Debug("filterDupTx", "hash", tx.HashHex(), "err", types.ErrTxDup)
			continue
		}
		seen[hash] = true
		out = append(out, tx)
	}
	return out
}
