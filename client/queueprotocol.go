// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"github.com/33cn/digitalbomb/common/address"
	log "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/types"
)

var clog = log.New("module", "client")

// Chain 区块链的读写接口
type Chain interface {
	GetLastHeader() *types.Header
	GetBlock(height int64) (*types.BlockDetail, error)
	GetTxResult(hash []byte) (*types.TxResult, error)
	GetBalance(addrs []address.Address) []*types.Account
	Query(execer, funcname string, params []byte) (interface{}, error)
}

// Mempool 交易池接口
type Mempool interface {
	PushTx(tx *types.Transaction) error
	GetLatestTx() []*types.Transaction
}

// QueueProtocol 直接调用区块链以及交易池的实现
type QueueProtocol struct {
	chain Chain
	pool  Mempool
}

// New 创建节点API
func New(chain Chain, pool Mempool) *QueueProtocol {
	return &QueueProtocol{chain: chain, pool: pool}
}

// SendTx 发送交易, 返回交易哈希
func (q *QueueProtocol) SendTx(param *types.Transaction) ([]byte, error) {
	if param == nil {
		return nil, types.ErrInvalidParam
	}
	if err := q.pool.PushTx(param); err != nil {
		clog.Debug("SendTx", "hash", param.HashHex(), "err", err)
		return nil, err
	}
	return param.Hash(), nil
}

// QueryTx 查询交易
func (q *QueueProtocol) QueryTx(hash []byte) (*types.TxResult, error) {
	if len(hash) == 0 {
		return nil, types.ErrInvalidParam
	}
	return q.chain.GetTxResult(hash)
}

// GetLastHeader 最新区块头
func (q *QueueProtocol) GetLastHeader() (*types.Header, error) {
	header := q.chain.GetLastHeader()
	if header == nil {
		return nil, types.ErrBlockNotFound
	}
	return header, nil
}

// GetBlock 按高度查询区块
func (q *QueueProtocol) GetBlock(height int64) (*types.BlockDetail, error) {
	return q.chain.GetBlock(height)
}

// GetBalance 查询余额
func (q *QueueProtocol) GetBalance(addrs []address.Address) ([]*types.Account, error) {
	if len(addrs) == 0 {
		return nil, types.ErrInvalidParam
	}
	return q.chain.GetBalance(addrs), nil
}

// Query 执行器查询
func (q *QueueProtocol) Query(driver, funcName string, param []byte) (interface{}, error) {
	if driver == "" || funcName == "" {
		return nil, types.ErrInvalidParam
	}
	return q.chain.Query(driver, funcName, param)
}

// GetLastMempool 交易池中最新的交易
func (q *QueueProtocol) GetLastMempool() ([]*types.Transaction, error) {
	return q.pool.GetLatestTx(), nil
}
