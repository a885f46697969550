// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/digitalbomb/common/address"
	cty "github.com/33cn/digitalbomb/system/dapp/coins/types"
	"github.com/33cn/digitalbomb/types"
)

// Query_GetBalance 查询余额, 地址也可以是执行器名称
func (c *Coins) Query_GetBalance(in *cty.ReqBalance) (interface{}, error) {
	addrs := make([]address.Address, 0, len(in.Addresses))
	for _, s := range in.Addresses {
		addr, err := address.NewAddrFromString(s)
		if err != nil {
			if len(s) > types.MaxExecNameLen {
				return nil, types.ErrInvalidAddress
			}
			addr = address.ExecAddress(s)
		}
		addrs = append(addrs, addr)
	}
	return c.GetCoinsAccount().LoadAccounts(addrs), nil
}

// Query_GetTxsByAddr 查询地址相关的转账
func (c *Coins) Query_GetTxsByAddr(in *cty.ReqAddr) (interface{}, error) {
	if err := address.CheckAddress(in.Addr); err != nil {
		return nil, types.ErrInvalidAddress
	}
	count := in.Count
	if count <= 0 {
		count = 10
	}
	values, err := c.GetLocalDB().List(calcTxAddrPrefix(in.Addr), nil, count, in.Direction)
	if err != nil {
		return nil, err
	}
	var reply cty.ReplyTxInfos
	for _, value := range values {
		var info cty.ReplyTxInfo
		if err := types.Decode(value, &info); err != nil {
			clog.Error("Query_GetTxsByAddr", "err", err)
			return nil, err
		}
		reply.TxInfos = append(reply.TxInfos, &info)
	}
	return &reply, nil
}
