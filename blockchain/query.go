// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockchain

import (
	"github.com/33cn/digitalbomb/account"
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/executor"
	"github.com/33cn/digitalbomb/types"
)

// GetLastHeader 最新区块头
func (chain *BlockChain) GetLastHeader() *types.Header {
	return chain.store.LastHeader()
}

// GetBlock 按高度读取区块
func (chain *BlockChain) GetBlock(height int64) (*types.BlockDetail, error) {
	if height < 0 || height > chain.store.Height() {
		return nil, types.ErrBlockNotFound
	}
	return chain.store.LoadBlockByHeight(height)
}

// GetTxResult 按交易哈希查询
func (chain *BlockChain) GetTxResult(hash []byte) (*types.TxResult, error) {
	return chain.store.GetTx(hash)
}

// GetBalance 查询余额
func (chain *BlockChain) GetBalance(addrs []address.Address) []*types.Account {
	chain.chainm.RLock()
	defer chain.chainm.RUnlock()
	return account.NewCoinsAccount(executor.NewStateDB(chain.db)).LoadAccounts(addrs)
}

// Query 在最新状态上调用执行器的查询函数
func (chain *BlockChain) Query(execer, funcname string, params []byte) (interface{}, error) {
	chain.chainm.RLock()
	defer chain.chainm.RUnlock()
	header := chain.store.LastHeader()
	exec := executor.New(executor.NewStateDB(chain.db), executor.NewLocalDB(chain.db), header.Height, header.BlockTime)
	return exec.Query(execer, funcname, params)
}
