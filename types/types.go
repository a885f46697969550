// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types 公共数据结构、错误、配置以及执行器类型注册
package types

import (
	"github.com/33cn/digitalbomb/common"
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Encode 编码状态数据、日志和区块
func Encode(data interface{}) []byte {
	b, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}
	return b
}

// Decode 解码
func Decode(data []byte, msg interface{}) error {
	if err := json.Unmarshal(data, msg); err != nil {
		return ErrDecode
	}
	return nil
}

// JSONToPB 兼容名称, 将 json 参数解析到结构体
func JSONToPB(data []byte, msg interface{}) error {
	return json.Unmarshal(data, msg)
}

// Account 账户
type Account struct {
	Currency int32  `json:"currency"`
	Balance  int64  `json:"balance"`
	Frozen   int64  `json:"frozen"`
	Addr     string `json:"addr"`
}

// ReceiptAccountTransfer 转账日志, 记录变化前后的账户
type ReceiptAccountTransfer struct {
	Prev    *Account `json:"prev"`
	Current *Account `json:"current"`
}

// KeyValue kv
type KeyValue struct {
	Key   []byte `json:"key"`
	Value []byte `json:"value"`
}

// ReceiptLog 日志
type ReceiptLog struct {
	Ty  int32  `json:"ty"`
	Log []byte `json:"log"`
}

// Receipt 执行结果, KV 写入状态数据库, Logs 随区块保存
type Receipt struct {
	Ty   int32         `json:"ty"`
	KV   []*KeyValue   `json:"kv"`
	Logs []*ReceiptLog `json:"logs"`
}

// ReceiptData 保存到区块中的执行结果
type ReceiptData struct {
	Ty   int32         `json:"ty"`
	Logs []*ReceiptLog `json:"logs"`
}

// LocalDBSet 本地数据库修改集合
type LocalDBSet struct {
	KV []*KeyValue `json:"kv"`
}

// ReceiptLogErr 失败交易的错误日志
type ReceiptLogErr struct {
	Err string `json:"err"`
}

// MergeReceipt 合并两个执行结果
func MergeReceipt(receipt1, receipt2 *Receipt) *Receipt {
	if receipt2 != nil {
		receipt1.KV = append(receipt1.KV, receipt2.KV...)
		receipt1.Logs = append(receipt1.Logs, receipt2.Logs...)
	}
	return receipt1
}

// NewErrReceipt 生成失败交易的执行结果
func NewErrReceipt(err error) *ReceiptData {
	log := &ReceiptLog{Ty: TyLogErr, Log: []byte(err.Error())}
	return &ReceiptData{Ty: ExecErr, Logs: []*ReceiptLog{log}}
}

// Header 区块头
type Header struct {
	ParentHash []byte `json:"parentHash"`
	TxHash     []byte `json:"txHash"`
	Height     int64  `json:"height"`
	BlockTime  int64  `json:"blockTime"`
	TxCount    int64  `json:"txCount"`
	Hash       []byte `json:"hash"`
}

// Block 区块
type Block struct {
	ParentHash []byte         `json:"parentHash"`
	TxHash     []byte         `json:"txHash"`
	Height     int64          `json:"height"`
	BlockTime  int64          `json:"blockTime"`
	Txs        []*Transaction `json:"txs"`
}

// Hash 区块哈希
func (block *Block) Hash() []byte {
	head := &Header{
		ParentHash: block.ParentHash,
		TxHash:     block.TxHash,
		Height:     block.Height,
		BlockTime:  block.BlockTime,
		TxCount:    int64(len(block.Txs)),
	}
	return common.Sha256(Encode(head))
}

// GetHeader 获取区块头
func (block *Block) GetHeader() *Header {
	return &Header{
		ParentHash: block.ParentHash,
		TxHash:     block.TxHash,
		Height:     block.Height,
		BlockTime:  block.BlockTime,
		TxCount:    int64(len(block.Txs)),
		Hash:       block.Hash(),
	}
}

// CalcTxHash 交易哈希列表的哈希
func CalcTxHash(txs []*Transaction) []byte {
	buf := make([]byte, 0, len(txs)*32)
	for _, tx := range txs {
		buf = append(buf, tx.Hash()...)
	}
	return common.Sha256(buf)
}

// BlockDetail 区块以及执行结果
type BlockDetail struct {
	Block    *Block         `json:"block"`
	Receipts []*ReceiptData `json:"receipts"`
	KV       []*KeyValue    `json:"kv"`
}

// TxResult 交易在链上的位置
type TxResult struct {
	Height    int64        `json:"height"`
	Index     int32        `json:"index"`
	BlockTime int64        `json:"blockTime"`
	Tx        *Transaction `json:"tx"`
	Receipt   *ReceiptData `json:"receipt"`
}

// ReqNil 空参数
type ReqNil struct{}
