// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// coin conversation
const (
	Coin           int64 = 1e8
	MaxCoin        int64 = 1e17
	MaxTxSize            = 100000 //100K
	MaxTxAccounts        = 16
	MaxTxsPerBlock       = 10000
	MaxExecNameLen       = 32
	CoinSymbol           = "bty"
)

// 执行器名称
const (
	CoinsX = "coins"
)

// 系统日志类型
const (
	TyLogErr      = 1
	TyLogTransfer = 3
	TyLogGenesis  = 4
)

// 交易执行结果
const (
	ExecErr  = 0
	ExecPack = 1
	ExecOk   = 2
)

// 数据库前缀, 状态数据以 mavl- 开头, 本地索引以 LODB- 开头
const (
	StatePrefix   = "mavl-"
	LocalPrefix   = "LODB-"
	BlockPrefix   = "Chain-Block-"
	ReceiptPrefix = "Chain-Receipt-"
	TxPrefix      = "Chain-Tx-"
	LastHeaderKey = "Chain-LastHeader"
)

// CheckAmount 检查转账金额
func CheckAmount(amount int64) bool {
	if amount <= 0 || amount >= MaxCoin {
		return false
	}
	return true
}
