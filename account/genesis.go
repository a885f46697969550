// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/types"
)

// safeAdd 余额相加, 溢出或超过 MaxCoin 时返回 ErrAmount
func safeAdd(balance, amount int64) (int64, error) {
	sum := balance + amount
	if sum < amount || sum > types.MaxCoin {
		return balance, types.ErrAmount
	}
	return sum, nil
}

// GenesisInit 创世区块中给 addr 发币, 只在初始化链时调用
func (acc *DB) GenesisInit(addr address.Address, amount int64) (*types.Receipt, error) {
	if amount <= 0 {
		return nil, types.ErrAmount
	}
	to := acc.LoadAccount(addr)
	prev := *to
	balance, err := safeAdd(to.Balance, amount)
	if err != nil {
		return nil, err
	}
	to.Balance = balance
	acc.SaveAccount(to)
	log := &types.ReceiptAccountTransfer{Prev: &prev, Current: to}
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   acc.GetKVSet(to),
		Logs: []*types.ReceiptLog{{Ty: types.TyLogGenesis, Log: types.Encode(log)}},
	}, nil
}
