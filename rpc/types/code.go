// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"

	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/types"
)

// DecodeLog decode log
func DecodeLog(execer []byte, rlog *types.ReceiptData) *ReceiptDataResult {
	var rTy string
	switch rlog.Ty {
	case types.ExecErr:
		rTy = "ExecErr"
	case types.ExecPack:
		rTy = "ExecPack"
	case types.ExecOk:
		rTy = "ExecOk"
	default:
		rTy = "Unknown"
	}
	ety := types.LoadExecutorType(string(execer))
	rd := &ReceiptDataResult{Ty: rlog.Ty, TyName: rTy}
	for _, l := range rlog.Logs {
		result := &ReceiptLogResult{Ty: l.Ty, TyName: types.GetLogName(ety, l.Ty), RawLog: common.ToHex(l.Log)}
		if ety != nil {
			if msg, err := ety.DecodeReceiptLog(l.Ty, l.Log); err == nil {
				result.Log = msg
			}
		}
		rd.Logs = append(rd.Logs, result)
	}
	return rd
}

// DecodeTx 交易转换为展示格式, payload 由执行器类型解码
func DecodeTx(tx *types.Transaction) *Transaction {
	if tx == nil {
		return nil
	}
	result := &Transaction{
		Execer:     string(tx.Execer),
		ActionName: "unknown",
		RawPayload: common.ToHex(tx.Payload),
		Nonce:      tx.Nonce,
		From:       tx.From().String(),
		Hash:       tx.HashHex(),
	}
	for _, acc := range tx.Accounts {
		result.Accounts = append(result.Accounts, acc.String())
	}
	if ety := types.LoadExecutorType(string(tx.Execer)); ety != nil {
		result.ActionName = ety.ActionName(tx)
		if action, err := ety.DecodePayload(tx); err == nil {
			if data, err := json.Marshal(action.GetValue()); err == nil {
				result.Payload = data
			}
		}
	}
	if tx.Signature != nil {
		result.Signature = &Signature{
			Ty:        tx.Signature.Ty,
			Pubkey:    common.ToHex(tx.Signature.Pubkey),
			Signature: common.ToHex(tx.Signature.Signature),
		}
	}
	return result
}

// DecodeHeader 区块头转换为展示格式
func DecodeHeader(header *types.Header) *Header {
	return &Header{
		Height:     header.Height,
		BlockTime:  header.BlockTime,
		TxCount:    header.TxCount,
		ParentHash: common.ToHex(header.ParentHash),
		TxHash:     common.ToHex(header.TxHash),
		Hash:       common.ToHex(header.Hash),
	}
}

// DecodeTxResult 交易详情
func DecodeTxResult(result *types.TxResult) *TransactionDetail {
	return &TransactionDetail{
		Tx:        DecodeTx(result.Tx),
		Receipt:   DecodeLog(result.Tx.Execer, result.Receipt),
		Height:    result.Height,
		Index:     result.Index,
		BlockTime: result.BlockTime,
	}
}

// DecodeBlock 区块详情
func DecodeBlock(detail *types.BlockDetail) *BlockDetail {
	block := &BlockDetail{Header: DecodeHeader(detail.Block.GetHeader())}
	for i, tx := range detail.Block.Txs {
		block.Txs = append(block.Txs, DecodeTx(tx))
		block.Receipts = append(block.Receipts, DecodeLog(tx.Execer, detail.Receipts[i]))
	}
	return block
}
