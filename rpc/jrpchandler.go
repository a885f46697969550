// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"github.com/33cn/digitalbomb/client"
	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/address"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	"github.com/33cn/digitalbomb/types"
)

// DigitalBomb 系统 rpc
type DigitalBomb struct {
	cli client.QueueProtocolAPI
}

// SendTransaction 发送签名后的交易, 返回交易哈希
func (c *DigitalBomb) SendTransaction(in rpctypes.RawParm, result *interface{}) error {
	tx, err := types.DecodeTxHex(in.Data)
	if err != nil {
		return err
	}
	hash, err := c.cli.SendTx(tx)
	if err != nil {
		return err
	}
	*result = common.ToHex(hash)
	return nil
}

// QueryTransaction 按哈希查询交易
func (c *DigitalBomb) QueryTransaction(in rpctypes.QueryParm, result *interface{}) error {
	hash, err := common.FromHex(in.Hash)
	if err != nil {
		return types.ErrInvalidParam
	}
	detail, err := c.cli.QueryTx(hash)
	if err != nil {
		return err
	}
	*result = rpctypes.DecodeTxResult(detail)
	return nil
}

// GetLastHeader 最新区块头
func (c *DigitalBomb) GetLastHeader(in *types.ReqNil, result *interface{}) error {
	header, err := c.cli.GetLastHeader()
	if err != nil {
		return err
	}
	*result = rpctypes.DecodeHeader(header)
	return nil
}

// GetBlock 按高度查询区块
func (c *DigitalBomb) GetBlock(in rpctypes.BlockParam, result *interface{}) error {
	detail, err := c.cli.GetBlock(in.Height)
	if err != nil {
		return err
	}
	*result = rpctypes.DecodeBlock(detail)
	return nil
}

// GetBalance 查询余额, 地址也可以是执行器名称
func (c *DigitalBomb) GetBalance(in rpctypes.ReqBalance, result *interface{}) error {
	var addrs []address.Address
	for _, s := range in.Addresses {
		addr, err := address.NewAddrFromString(s)
		if err != nil {
			if len(s) == 0 || len(s) > types.MaxExecNameLen {
				return types.ErrInvalidAddress
			}
			addr = address.ExecAddress(s)
		}
		addrs = append(addrs, addr)
	}
	accs, err := c.cli.GetBalance(addrs)
	if err != nil {
		return err
	}
	var reply []*rpctypes.Account
	for i, acc := range accs {
		reply = append(reply, &rpctypes.Account{Addr: in.Addresses[i], Balance: acc.Balance, Frozen: acc.Frozen})
	}
	*result = reply
	return nil
}

// Query 执行器查询
func (c *DigitalBomb) Query(in rpctypes.Query4Jrpc, result *interface{}) error {
	reply, err := c.cli.Query(in.Execer, in.FuncName, in.Payload)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}

// GetMempool 交易池中最新的交易
func (c *DigitalBomb) GetMempool(in *types.ReqNil, result *interface{}) error {
	txs, err := c.cli.GetLastMempool()
	if err != nil {
		return err
	}
	reply := make([]*rpctypes.Transaction, 0, len(txs))
	for _, tx := range txs {
		reply = append(reply, rpctypes.DecodeTx(tx))
	}
	*result = reply
	return nil
}
