// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 数字炸弹游戏的数据结构, payload 编码以及执行器类型
package types

import (
	"reflect"

	"github.com/33cn/digitalbomb/types"
)

func init() {
	types.RegistorExecutor(BombX, NewType())
}

// BombType 执行器类型
type BombType struct {
	types.ExecTypeBase
}

// NewType new
func NewType() *BombType {
	c := &BombType{}
	c.SetChild(c)
	return c
}

// GetName 执行器名称
func (b *BombType) GetName() string {
	return BombX
}

// GetLogMap 日志类型
func (b *BombType) GetLogMap() map[int32]*types.LogInfo {
	return map[int32]*types.LogInfo{
		TyLogBombCreate:      {Ty: reflect.TypeOf(ReceiptBomb{}), Name: "LogBombCreate"},
		TyLogBombParticipate: {Ty: reflect.TypeOf(ReceiptBomb{}), Name: "LogBombParticipate"},
		TyLogBombReveal:      {Ty: reflect.TypeOf(ReceiptBomb{}), Name: "LogBombReveal"},
		TyLogBombEnd:         {Ty: reflect.TypeOf(ReceiptBomb{}), Name: "LogBombEnd"},
		TyLogBombDelete:      {Ty: reflect.TypeOf(ReceiptBomb{}), Name: "LogBombDelete"},
	}
}

// GetTypeMap action 名称到类型
func (b *BombType) GetTypeMap() map[string]int32 {
	return actionName
}

// DecodePayload 解码交易 payload
func (b *BombType) DecodePayload(tx *types.Transaction) (types.ExecutorAction, error) {
	return DecodeAction(tx.Payload)
}

// ReceiptBomb 每个 action 产生的游戏日志
type ReceiptBomb struct {
	Addr       string `json:"addr"`
	Promoter   string `json:"promoter"`
	Player     string `json:"player,omitempty"`
	Status     int32  `json:"status"`
	PrevStatus int32  `json:"prevStatus"`
	Level      string `json:"level"`
	// Index = height*MaxTxsPerBlock + index
	Index int64 `json:"index"`
	// 只有结算时有值
	Winner         string `json:"winner,omitempty"`
	PlayerAmount   int64  `json:"playerAmount,omitempty"`
	PromoterAmount int64  `json:"promoterAmount,omitempty"`
	Fee            int64  `json:"fee,omitempty"`
	// 只有删除时有值
	Refund int64 `json:"refund,omitempty"`
}

// Params 执行器配置
type Params struct {
	// 揭晓期限, 单位秒
	RevealTime int64 `json:"revealTime"`
	// 抽成收款地址
	Vault string `json:"vault"`
}

// ReplyGame 游戏详情, Random 为 0x 开头的 hex
type ReplyGame struct {
	Addr        string `json:"addr"`
	Promoter    string `json:"promoter"`
	Player      string `json:"player,omitempty"`
	FiringPoint uint16 `json:"firingPoint"`
	Max         uint16 `json:"max"`
	OddsX100    uint32 `json:"oddsX100"`
	Level       string `json:"level"`
	Stake       int64  `json:"stake"`
	ShotTime    int64  `json:"shotTime"`
	Answer      uint16 `json:"answer"`
	Random      string `json:"random"`
	Status      int32  `json:"status"`
	StatusName  string `json:"statusName"`
	Balance     int64  `json:"balance"`
	Index       int64  `json:"index"`
}

// ReqGame 查询单个游戏
type ReqGame struct {
	Addr string `json:"addr"`
}

// ReqGameList 按状态以及地址分页查询, Index 为上一页最后一条的 index
type ReqGameList struct {
	Status    int32  `json:"status"`
	Addr      string `json:"addr,omitempty"`
	Count     int32  `json:"count"`
	Direction int32  `json:"direction"`
	Index     int64  `json:"index"`
}

// ReplyGameList 游戏列表
type ReplyGameList struct {
	Games []*ReplyGame `json:"games"`
}

// ReqCommit 计算承诺值, Random 为 6 字节的 hex, 可带 0x 前缀
type ReqCommit struct {
	X      uint16 `json:"x"`
	Random string `json:"random"`
}

// ReplyCommit 承诺值以及对应的游戏地址
type ReplyCommit struct {
	Commit string `json:"commit"`
	Addr   string `json:"addr"`
}

// ReqCreateTx 构造未签名交易, 引用账户由节点根据游戏状态补齐
type ReqCreateTx struct {
	// create/participate/reveal/end/delete
	Action string `json:"action"`
	From   string `json:"from"`
	Game   string `json:"game,omitempty"`
	Nonce  int64  `json:"nonce,omitempty"`

	MaxNumber uint16 `json:"maxNumber,omitempty"`
	OddsX100  uint32 `json:"oddsX100,omitempty"`
	Commit    string `json:"commit,omitempty"`
	Level     string `json:"level,omitempty"`

	Point uint16 `json:"point,omitempty"`

	X      uint16 `json:"x,omitempty"`
	Random string `json:"random,omitempty"`
}
