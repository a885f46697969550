// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/address"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/pkg/errors"
)

func toReplyGame(addr address.Address, game *bty.GameRecord, balance int64) *bty.ReplyGame {
	stake, _ := game.Level.Stake()
	reply := &bty.ReplyGame{
		Addr:       addr.String(),
		Promoter:   game.Promoter.String(),
		Max:        game.Max,
		OddsX100:   game.OddsX100,
		Level:      game.Level.String(),
		Stake:      int64(stake),
		Answer:     game.Answer,
		Random:     common.ToHex(game.RandomString[:]),
		Status:     game.Status(),
		StatusName: bty.StatusName(game.Status()),
		Balance:    balance,
	}
	if p := game.Participation; p != nil {
		reply.Player = p.Player.String()
		reply.FiringPoint = p.FiringPoint
		reply.ShotTime = p.ShotTime
	}
	return reply
}

func (b *Bomb) getGame(addr address.Address) (*bty.ReplyGame, error) {
	data, err := b.GetStateDB().Get(Key(addr))
	if err != nil {
		return nil, err
	}
	game, err := bty.DecodeGameRecord(data)
	if err != nil {
		blog.Error("getGame", "addr", addr.String(), "err", err)
		return nil, err
	}
	balance := b.GetCoinsAccount().LoadAccount(addr).Balance
	return toReplyGame(addr, game, balance), nil
}

// Query_GetGame 查询游戏, 已经结束的游戏从本地索引读取最后的快照
func (b *Bomb) Query_GetGame(in *bty.ReqGame) (interface{}, error) {
	addr, err := address.NewAddrFromString(in.Addr)
	if err != nil {
		return nil, types.ErrInvalidAddress
	}
	local, err := b.readLocalGame(in.Addr)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	game, err := b.getGame(addr)
	if err == types.ErrNotFound {
		if local == nil {
			return nil, types.ErrNotFound
		}
		return local, nil
	}
	if err != nil {
		return nil, err
	}
	if local != nil {
		game.Index = local.Index
	}
	return game, nil
}

// Query_ListGames 按状态 (以及地址) 分页查询
func (b *Bomb) Query_ListGames(in *bty.ReqGameList) (interface{}, error) {
	if in.Status < bty.BombStatusCreated || in.Status > bty.BombStatusDeleted {
		return nil, errors.Wrapf(bty.ErrInvalidParameters, "status %d", in.Status)
	}
	count := bty.DefaultCount
	if 0 < in.Count && in.Count <= bty.MaxCount {
		count = in.Count
	}
	direction := bty.ListDESC
	if in.Direction == bty.ListASC {
		direction = bty.ListASC
	}
	var prefix, key []byte
	if in.Addr == "" {
		prefix = calcStatusPrefix(in.Status)
		key = calcStatusKey(in.Status, in.Index)
	} else {
		if err := address.CheckAddress(in.Addr); err != nil {
			return nil, types.ErrInvalidAddress
		}
		prefix = calcAddrPrefix(in.Addr, in.Status)
		key = calcAddrKey(in.Addr, in.Status, in.Index)
	}
	if in.Index == 0 {
		key = nil
	}
	values, err := b.GetLocalDB().List(prefix, key, count, direction)
	if err != nil && err != types.ErrNotFound {
		return nil, err
	}
	reply := &bty.ReplyGameList{Games: []*bty.ReplyGame{}}
	for _, value := range values {
		var snap bty.ReplyGame
		if err := types.Decode(value, &snap); err != nil {
			blog.Error("ListGames", "err", err)
			continue
		}
		// 进行中的游戏返回最新的余额
		if !terminal(snap.Status) {
			if addr, err := address.NewAddrFromString(snap.Addr); err == nil {
				if game, err := b.getGame(addr); err == nil {
					game.Index = snap.Index
					snap = *game
				}
			}
		}
		reply.Games = append(reply.Games, &snap)
	}
	return reply, nil
}

// Query_GetParams 执行器配置
func (b *Bomb) Query_GetParams(in *types.ReqNil) (interface{}, error) {
	return &bty.Params{RevealTime: cfg.revealTime, Vault: cfg.vault.String()}, nil
}

// Query_Commit 计算承诺值以及游戏地址
func (b *Bomb) Query_Commit(in *bty.ReqCommit) (interface{}, error) {
	random, err := bty.ParseRandom(in.Random)
	if err != nil {
		return nil, err
	}
	commit := bty.Commit(in.X, random)
	return &bty.ReplyCommit{
		Commit: common.ToHex(commit[:]),
		Addr:   bty.GameAddress(commit).String(),
	}, nil
}
