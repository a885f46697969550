// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
coins 是一个货币的exec。内置货币的执行器。

主要提供一种操作：
Transfer -> 转移资产到交易的第 1 个引用账户
*/

import (
	log "github.com/33cn/digitalbomb/common/log"
	drivers "github.com/33cn/digitalbomb/system/dapp"
	cty "github.com/33cn/digitalbomb/system/dapp/coins/types"
	"github.com/33cn/digitalbomb/types"
)

var clog = log.New("module", "execs.coins")
var driverName = cty.CoinsX

// Init 注册 coins 驱动
func Init(name string, sub []byte) {
	if name != driverName {
		panic("system dapp can't be rename")
	}
	drivers.Register(driverName, newCoins, 0)
}

//初始化过程比较重量级，有很多reflact, 所以弄成全局的
func init() {
	ety := types.LoadExecutorType(driverName)
	ety.InitFuncList(types.ListMethod(&Coins{}))
}

// GetName 执行器名称
func GetName() string {
	return newCoins().GetDriverName()
}

// Coins 原生币执行器
type Coins struct {
	drivers.DriverBase
}

func newCoins() drivers.Driver {
	c := &Coins{}
	c.SetChild(c)
	c.SetExecutorType(types.LoadExecutorType(driverName))
	return c
}

// GetDriverName 驱动名称
func (c *Coins) GetDriverName() string {
	return driverName
}

// CheckTx 转账交易需要引用收款账户
func (c *Coins) CheckTx(tx *types.Transaction, index int) error {
	if len(tx.Accounts) < 2 {
		return types.ErrTxAccountRefs
	}
	return c.DriverBase.CheckTx(tx, index)
}
