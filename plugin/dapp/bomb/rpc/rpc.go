// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"math/rand"

	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/address"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/pkg/errors"
)

var coinsAddr = address.ExecAddress(types.CoinsX)

func (c *channelClient) getGame(addr string) (*bty.ReplyGame, error) {
	reply, err := c.Query(bty.BombX, "GetGame", types.Encode(&bty.ReqGame{Addr: addr}))
	if err != nil {
		return nil, err
	}
	game, ok := reply.(*bty.ReplyGame)
	if !ok {
		return nil, types.ErrTypeAsset
	}
	return game, nil
}

func (c *channelClient) getParams() (*bty.Params, error) {
	reply, err := c.Query(bty.BombX, "GetParams", types.Encode(&types.ReqNil{}))
	if err != nil {
		return nil, err
	}
	params, ok := reply.(*bty.Params)
	if !ok {
		return nil, types.ErrTypeAsset
	}
	return params, nil
}

func (c *channelClient) listGames(req *bty.ReqGameList) (*bty.ReplyGameList, error) {
	reply, err := c.Query(bty.BombX, "ListGames", types.Encode(req))
	if err != nil {
		return nil, err
	}
	list, ok := reply.(*bty.ReplyGameList)
	if !ok {
		return nil, types.ErrTypeAsset
	}
	return list, nil
}

func parseAddrs(addrs ...string) ([]address.Address, error) {
	list := make([]address.Address, 0, len(addrs))
	for _, s := range addrs {
		addr, err := address.NewAddrFromString(s)
		if err != nil {
			return nil, errors.Wrapf(types.ErrInvalidAddress, "addr %q", s)
		}
		list = append(list, addr)
	}
	return list, nil
}

// createTx 构造未签名交易, 第 0 个引用账户为 From
func (c *channelClient) createTx(req *bty.ReqCreateTx) (*types.Transaction, error) {
	from, err := address.NewAddrFromString(req.From)
	if err != nil {
		return nil, errors.Wrap(types.ErrInvalidAddress, "from")
	}
	var action *bty.BombAction
	var refs []address.Address
	switch req.Action {
	case "create":
		commit, err := bty.ParseCommit(req.Commit)
		if err != nil {
			return nil, err
		}
		level, err := bty.LevelFromString(req.Level)
		if err != nil {
			return nil, errors.Wrapf(err, "level %q", req.Level)
		}
		action = bty.NewCreateAction(req.MaxNumber, req.OddsX100, commit, uint8(level))
		refs = []address.Address{bty.GameAddress(commit), coinsAddr}
	case "participate":
		game, err := c.getGame(req.Game)
		if err != nil {
			return nil, err
		}
		refs, err = parseAddrs(game.Addr)
		if err != nil {
			return nil, err
		}
		promoter, err := parseAddrs(game.Promoter)
		if err != nil {
			return nil, err
		}
		action = bty.NewParticipateAction(req.Point)
		refs = append(refs, coinsAddr, promoter[0])
	case "reveal":
		random, err := bty.ParseRandom(req.Random)
		if err != nil {
			return nil, err
		}
		action = bty.NewRevealAction(req.X, random)
		refs = []address.Address{bty.RevealAddress(req.X, random), coinsAddr}
	case "end":
		game, err := c.getGame(req.Game)
		if err != nil {
			return nil, err
		}
		if game.Player == "" {
			return nil, errors.Wrap(bty.ErrIllegalState, "game not joined")
		}
		params, err := c.getParams()
		if err != nil {
			return nil, err
		}
		refs, err = parseAddrs(game.Promoter, game.Player, game.Addr, params.Vault)
		if err != nil {
			return nil, err
		}
		action = bty.NewEndAction()
	case "delete":
		refs, err = parseAddrs(req.Game)
		if err != nil {
			return nil, err
		}
		action = bty.NewDeleteAction()
		refs = append(refs, coinsAddr)
	default:
		return nil, errors.Wrapf(types.ErrActionNotSupport, "action %q", req.Action)
	}
	nonce := req.Nonce
	if nonce == 0 {
		nonce = rand.New(rand.NewSource(types.Now().UnixNano())).Int63()
	}
	refs = append([]address.Address{from}, refs...)
	rlog.Debug("createTx", "action", req.Action, "from", req.From)
	return types.CreateTx(bty.BombX, action.Encode(), nonce, refs...), nil
}

func commitOf(req *bty.ReqCommit) (*bty.ReplyCommit, error) {
	random, err := bty.ParseRandom(req.Random)
	if err != nil {
		return nil, err
	}
	commit := bty.Commit(req.X, random)
	return &bty.ReplyCommit{
		Commit: common.ToHex(commit[:]),
		Addr:   bty.GameAddress(commit).String(),
	}, nil
}
