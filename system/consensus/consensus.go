// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package consensus 共识驱动注册
package consensus

import (
	"context"

	"github.com/33cn/digitalbomb/types"
)

// Chain 出块需要的区块链接口
type Chain interface {
	ProcessBlock(txs []*types.Transaction, blocktime int64) (*types.BlockDetail, error)
}

// Pool 出块需要的交易池接口
type Pool interface {
	GetTxList(n int) []*types.Transaction
	RemoveTxsOfBlock(block *types.Block)
}

// Module 共识模块
type Module interface {
	Run(ctx context.Context)
}

// Create 共识驱动的构造函数
type Create func(cfg types.Consensus, chain Chain, pool Pool) Module

var regConsensus = make(map[string]Create)

// Reg 注册共识驱动
func Reg(name string, create Create) {
	if create == nil {
		panic("Consensus: Register driver is nil")
	}
	if _, dup := regConsensus[name]; dup {
		panic("Consensus: Register called twice for driver " + name)
	}
	regConsensus[name] = create
}

// Load 加载共识驱动
func Load(name string) (create Create, err error) {
	if driver, ok := regConsensus[name]; ok {
		return driver, nil
	}
	return nil, types.ErrNotFound
}
