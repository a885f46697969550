// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package types rpc 的请求以及返回结构
package types

import (
	"encoding/json"
)

// RawParm 签名后交易的 hex 编码
type RawParm struct {
	Data string `json:"data"`
}

// QueryParm 交易哈希
type QueryParm struct {
	Hash string `json:"hash"`
}

// ReqBalance 查询余额
type ReqBalance struct {
	Addresses []string `json:"addresses"`
}

// BlockParam 按高度查询区块
type BlockParam struct {
	Height int64 `json:"height"`
}

// Query4Jrpc 执行器查询, Payload 为 json 参数
type Query4Jrpc struct {
	Execer   string          `json:"execer"`
	FuncName string          `json:"funcName"`
	Payload  json.RawMessage `json:"payload"`
}

// Header 区块头
type Header struct {
	Height     int64  `json:"height"`
	BlockTime  int64  `json:"blockTime"`
	TxCount    int64  `json:"txCount"`
	ParentHash string `json:"parentHash"`
	TxHash     string `json:"txHash"`
	Hash       string `json:"hash"`
}

// Signature 签名
type Signature struct {
	Ty        int32  `json:"ty"`
	Pubkey    string `json:"pubkey"`
	Signature string `json:"signature"`
}

// Transaction 交易的展示格式
type Transaction struct {
	Execer     string          `json:"execer"`
	ActionName string          `json:"actionName"`
	Payload    json.RawMessage `json:"payload"`
	RawPayload string          `json:"rawPayload"`
	Accounts   []string        `json:"accounts"`
	Nonce      int64           `json:"nonce"`
	From       string          `json:"from"`
	Hash       string          `json:"hash"`
	Signature  *Signature      `json:"signature,omitempty"`
}

// ReceiptLogResult 日志的展示格式
type ReceiptLogResult struct {
	Ty     int32       `json:"ty"`
	TyName string      `json:"tyName"`
	Log    interface{} `json:"log"`
	RawLog string      `json:"rawLog"`
}

// ReceiptDataResult 执行结果的展示格式
type ReceiptDataResult struct {
	Ty     int32               `json:"ty"`
	TyName string              `json:"tyName"`
	Logs   []*ReceiptLogResult `json:"logs"`
}

// TransactionDetail 交易详情
type TransactionDetail struct {
	Tx        *Transaction       `json:"tx"`
	Receipt   *ReceiptDataResult `json:"receipt"`
	Height    int64              `json:"height"`
	Index     int32              `json:"index"`
	BlockTime int64              `json:"blockTime"`
}

// BlockDetail 区块详情
type BlockDetail struct {
	Header   *Header              `json:"header"`
	Txs      []*Transaction       `json:"txs"`
	Receipts []*ReceiptDataResult `json:"receipts"`
}

// Account 账户
type Account struct {
	Addr    string `json:"addr"`
	Balance int64  `json:"balance"`
	Frozen  int64  `json:"frozen"`
}
