// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	cty "github.com/33cn/digitalbomb/system/dapp/coins/types"
	"github.com/33cn/digitalbomb/types"
)

// Exec_Transfer 转账, 收款方为第 1 个引用账户, 可以是执行器或者游戏地址
func (c *Coins) Exec_Transfer(transfer *cty.CoinsTransfer, tx *types.Transaction, index int) (*types.Receipt, error) {
	to, err := tx.Account(1)
	if err != nil {
		return nil, err
	}
	return c.GetCoinsAccount().Transfer(tx.From(), to, transfer.Amount)
}
