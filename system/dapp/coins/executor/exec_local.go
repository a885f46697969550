// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/address"
	drivers "github.com/33cn/digitalbomb/system/dapp"
	cty "github.com/33cn/digitalbomb/system/dapp/coins/types"
	"github.com/33cn/digitalbomb/types"
)

// 交易方向
const (
	TxIndexFrom = 1
	TxIndexTo   = 2
)

func calcTxAddrPrefix(addr string) []byte {
	return []byte(fmt.Sprintf("%scoins-tx-%s-", types.LocalPrefix, addr))
}

func calcTxAddrKey(addr string, heightindex string) []byte {
	return append(calcTxAddrPrefix(addr), []byte(heightindex)...)
}

func (c *Coins) addrTxKV(addr address.Address, info *cty.ReplyTxInfo) *types.KeyValue {
	key := calcTxAddrKey(addr.String(), drivers.HeightIndexStr(info.Height, info.Index))
	return &types.KeyValue{Key: key, Value: types.Encode(info)}
}

// ExecLocal_Transfer 记录双方地址的转账索引
func (c *Coins) ExecLocal_Transfer(transfer *cty.CoinsTransfer, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	to, err := tx.Account(1)
	if err != nil {
		return nil, err
	}
	hash := common.ToHex(tx.Hash())
	from := &cty.ReplyTxInfo{Hash: hash, Height: c.GetHeight(), Index: int64(index), Amount: transfer.Amount, Flag: TxIndexFrom}
	recv := *from
	recv.Flag = TxIndexTo
	return &types.LocalDBSet{KV: []*types.KeyValue{c.addrTxKV(tx.From(), from), c.addrTxKV(to, &recv)}}, nil
}
