// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/33cn/digitalbomb/types"
)

// CreateRawTx 构造未签名交易, 返回 hex 编码
func (c *Jrpc) CreateRawTx(in *bty.ReqCreateTx, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	tx, err := c.cli.createTx(in)
	if err != nil {
		return err
	}
	*result = tx.EncodeHex()
	return nil
}

// GetGame 查询游戏
func (c *Jrpc) GetGame(in *bty.ReqGame, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	game, err := c.cli.getGame(in.Addr)
	if err != nil {
		return err
	}
	*result = game
	return nil
}

// ListGames 按状态分页查询游戏
func (c *Jrpc) ListGames(in *bty.ReqGameList, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	list, err := c.cli.listGames(in)
	if err != nil {
		return err
	}
	*result = list
	return nil
}

// GetParams 执行器配置
func (c *Jrpc) GetParams(in *types.ReqNil, result *interface{}) error {
	params, err := c.cli.getParams()
	if err != nil {
		return err
	}
	*result = params
	return nil
}

// Commit 计算承诺值以及游戏地址, 不访问链上数据
func (c *Jrpc) Commit(in *bty.ReqCommit, result *interface{}) error {
	if in == nil {
		return types.ErrInvalidParam
	}
	reply, err := commitOf(in)
	if err != nil {
		return err
	}
	*result = reply
	return nil
}
