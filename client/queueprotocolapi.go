// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package client 节点内部模块的访问接口, rpc 以及插件通过它访问区块链和交易池
package client

import (
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/types"
)

// QueueProtocolAPI 节点API接口定义
type QueueProtocolAPI interface {
	// 发送交易到交易池
	SendTx(param *types.Transaction) ([]byte, error)
	// 按哈希查询已经打包的交易
	QueryTx(hash []byte) (*types.TxResult, error)
	GetLastHeader() (*types.Header, error)
	GetBlock(height int64) (*types.BlockDetail, error)
	GetBalance(addrs []address.Address) ([]*types.Account, error)
	// 调用执行器的 Query_<funcName>, param 为 json 参数
	Query(driver, funcName string, param []byte) (interface{}, error)
	// 交易池中最新的交易
	GetLastMempool() ([]*types.Transaction, error)
}
