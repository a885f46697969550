// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/digitalbomb/common/address"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/33cn/digitalbomb/types"
)

// ExecLocal_Create 本地索引
func (b *Bomb) ExecLocal_Create(payload *bty.CreateGame, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return b.execLocal(receipt)
}

// ExecLocal_Participate 本地索引
func (b *Bomb) ExecLocal_Participate(payload *bty.Participate, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return b.execLocal(receipt)
}

// ExecLocal_Reveal 本地索引
func (b *Bomb) ExecLocal_Reveal(payload *bty.Reveal, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return b.execLocal(receipt)
}

// ExecLocal_End 本地索引
func (b *Bomb) ExecLocal_End(payload *bty.End, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return b.execLocal(receipt)
}

// ExecLocal_Delete 本地索引
func (b *Bomb) ExecLocal_Delete(payload *bty.Delete, tx *types.Transaction, receipt *types.ReceiptData, index int) (*types.LocalDBSet, error) {
	return b.execLocal(receipt)
}

func (b *Bomb) execLocal(receipt *types.ReceiptData) (*types.LocalDBSet, error) {
	set := &types.LocalDBSet{}
	if receipt.Ty != types.ExecOk {
		return set, nil
	}
	for _, item := range receipt.Logs {
		switch item.Ty {
		case bty.TyLogBombCreate, bty.TyLogBombParticipate, bty.TyLogBombReveal, bty.TyLogBombEnd, bty.TyLogBombDelete:
			var r bty.ReceiptBomb
			if err := types.Decode(item.Log, &r); err != nil {
				return nil, err
			}
			kv, err := b.updateIndex(&r)
			if err != nil {
				return nil, err
			}
			set.KV = append(set.KV, kv...)
		}
	}
	return set, nil
}

func (b *Bomb) readLocalGame(addr string) (*bty.ReplyGame, error) {
	data, err := b.GetLocalDB().Get(calcGameKey(addr))
	if err != nil {
		return nil, err
	}
	var game bty.ReplyGame
	if err := types.Decode(data, &game); err != nil {
		return nil, err
	}
	return &game, nil
}

// updateIndex 删除上一个状态的索引, 写入新状态的索引以及游戏快照, 索引的值也是快照
func (b *Bomb) updateIndex(r *bty.ReceiptBomb) (kvs []*types.KeyValue, err error) {
	prev, err := b.readLocalGame(r.Addr)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	// 同一个地址可以在结束之后重新创建游戏, 已经结束的索引保留
	if prev != nil && !terminal(prev.Status) {
		kvs = append(kvs, &types.KeyValue{Key: calcStatusKey(prev.Status, prev.Index), Value: nil})
		kvs = append(kvs, &types.KeyValue{Key: calcAddrKey(prev.Promoter, prev.Status, prev.Index), Value: nil})
		if prev.Player != "" {
			kvs = append(kvs, &types.KeyValue{Key: calcAddrKey(prev.Player, prev.Status, prev.Index), Value: nil})
		}
	}
	if prev != nil && terminal(prev.Status) {
		prev = nil
	}
	snapshot, err := b.snapshot(r, prev)
	if err != nil {
		return nil, err
	}
	value := types.Encode(snapshot)
	kvs = append(kvs, &types.KeyValue{Key: calcStatusKey(r.Status, r.Index), Value: value})
	kvs = append(kvs, &types.KeyValue{Key: calcAddrKey(r.Promoter, r.Status, r.Index), Value: value})
	if r.Player != "" {
		kvs = append(kvs, &types.KeyValue{Key: calcAddrKey(r.Player, r.Status, r.Index), Value: value})
	}
	kvs = append(kvs, &types.KeyValue{Key: calcGameKey(r.Addr), Value: value})
	return kvs, nil
}

// snapshot 游戏还在 statedb 中时直接读取, 结束或者删除之后在上一个快照上更新状态
func (b *Bomb) snapshot(r *bty.ReceiptBomb, prev *bty.ReplyGame) (*bty.ReplyGame, error) {
	addr, err := address.NewAddrFromString(r.Addr)
	if err != nil {
		return nil, err
	}
	game, err := b.getGame(addr)
	if err == nil {
		game.Index = r.Index
		return game, nil
	}
	snap := &bty.ReplyGame{Addr: r.Addr, Promoter: r.Promoter, Player: r.Player, Level: r.Level}
	if prev != nil {
		snap = prev
	}
	snap.Status = r.Status
	snap.StatusName = bty.StatusName(r.Status)
	snap.Index = r.Index
	snap.Balance = 0
	return snap, nil
}

func terminal(status int32) bool {
	return status == bty.BombStatusEnded || status == bty.BombStatusDeleted
}
