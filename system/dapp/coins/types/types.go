// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types coins 执行器的 action 与 payload 编码
package types

import (
	"github.com/33cn/digitalbomb/types"
)

// action 类型
const (
	CoinsActionTransfer = 1
)

var (
	// CoinsX coins 执行器名称
	CoinsX = types.CoinsX
	// ExecerCoins coins
	ExecerCoins = []byte(CoinsX)
	actionName  = map[string]int32{
		"Transfer": CoinsActionTransfer,
	}
)

func init() {
	types.RegistorExecutor(CoinsX, NewType())
}

// CoinsTransfer 转账到第 1 个引用账户
type CoinsTransfer struct {
	Amount int64 `json:"amount"`
}

// CoinsAction action
type CoinsAction struct {
	Ty    int32       `json:"ty"`
	Value interface{} `json:"value"`
}

// GetTy action 类型
func (a *CoinsAction) GetTy() int32 { return a.Ty }

// GetValue action 参数
func (a *CoinsAction) GetValue() interface{} { return a.Value }

// GetTransfer 转账参数
func (a *CoinsAction) GetTransfer() *CoinsTransfer {
	if v, ok := a.Value.(*CoinsTransfer); ok {
		return v
	}
	return nil
}

// EncodeTransfer 转账 payload: tag(1) ‖ amount(i64)
func EncodeTransfer(amount int64) []byte {
	return types.NewLEWriter(9).U8(CoinsActionTransfer).I64(amount).Bytes()
}

// DecodeAction 解码 payload
func DecodeAction(payload []byte) (*CoinsAction, error) {
	r := types.NewLEReader(payload)
	tag := r.U8()
	switch tag {
	case CoinsActionTransfer:
		v := &CoinsTransfer{Amount: r.I64()}
		if err := r.Finish(); err != nil {
			return nil, err
		}
		return &CoinsAction{Ty: CoinsActionTransfer, Value: v}, nil
	}
	if r.Err() != nil {
		return nil, r.Err()
	}
	return nil, types.ErrActionNotSupport
}

// CoinsType 执行器类型
type CoinsType struct {
	types.ExecTypeBase
}

// NewType new
func NewType() *CoinsType {
	c := &CoinsType{}
	c.SetChild(c)
	return c
}

// GetName 执行器名称
func (coins *CoinsType) GetName() string {
	return CoinsX
}

// GetLogMap coins 只产生系统日志
func (coins *CoinsType) GetLogMap() map[int32]*types.LogInfo {
	return map[int32]*types.LogInfo{}
}

// GetTypeMap action 名称到类型
func (coins *CoinsType) GetTypeMap() map[string]int32 {
	return actionName
}

// DecodePayload 解码交易 payload
func (coins *CoinsType) DecodePayload(tx *types.Transaction) (types.ExecutorAction, error) {
	return DecodeAction(tx.Payload)
}

// ReqBalance 查询余额
type ReqBalance struct {
	Addresses []string `json:"addresses"`
}

// ReqAddr 按地址查询交易
type ReqAddr struct {
	Addr      string `json:"addr"`
	Count     int32  `json:"count"`
	Direction int32  `json:"direction"`
}

// ReplyTxInfo 地址相关交易
type ReplyTxInfo struct {
	Hash   string `json:"hash"`
	Height int64  `json:"height"`
	Index  int64  `json:"index"`
	Amount int64  `json:"amount"`
	// 1 表示转出, 2 表示转入
	Flag int32 `json:"flag"`
}

// ReplyTxInfos 交易列表
type ReplyTxInfos struct {
	TxInfos []*ReplyTxInfo `json:"txInfos"`
}
