// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc_test

import (
	"testing"
	"time"

	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/common/crypto"
	"github.com/33cn/digitalbomb/common/crypto/ed25519"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/33cn/digitalbomb/rpc/jsonclient"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/33cn/digitalbomb/util"
	"github.com/33cn/digitalbomb/util/testnode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	t    *testing.T
	mock *testnode.DigitalBombMock
	jrpc *jsonclient.JSONClient
}

func newEnv(t *testing.T) *env {
	mock := testnode.New("")
	mock.Listen()
	mock.Start()
	jrpc, err := jsonclient.NewJSONClient(mock.GetJSONRPCAddr())
	require.NoError(t, err)
	return &env{t: t, mock: mock, jrpc: jrpc}
}

func (e *env) send(priv crypto.PrivKey, req *bty.ReqCreateTx) *types.TxResult {
	req.From = util.PubKeyAddress(priv).String()
	var raw string
	require.NoError(e.t, e.jrpc.Call("bomb.CreateRawTx", req, &raw))
	tx, err := types.DecodeTxHex(raw)
	require.NoError(e.t, err)
	assert.Nil(e.t, tx.Signature)
	tx.Sign(ed25519.ID, priv)
	var hash string
	require.NoError(e.t, e.jrpc.Call("SendTransaction", rpctypes.RawParm{Data: tx.EncodeHex()}, &hash))
	assert.Equal(e.t, tx.HashHex(), hash)
	result, err := e.mock.WaitTx(tx.Hash())
	require.NoError(e.t, err)
	return result
}

func (e *env) balance(addr address.Address) int64 {
	var accs []*rpctypes.Account
	require.NoError(e.t, e.jrpc.Call("GetBalance", rpctypes.ReqBalance{Addresses: []string{addr.String()}}, &accs))
	require.Len(e.t, accs, 1)
	return accs[0].Balance
}

func (e *env) game(addr string) *bty.ReplyGame {
	var game bty.ReplyGame
	require.NoError(e.t, e.jrpc.Call("bomb.GetGame", &bty.ReqGame{Addr: addr}, &game))
	return &game
}

func TestGameFlow(t *testing.T) {
	e := newEnv(t)
	defer e.mock.Close()

	promoter := e.mock.GetGenesisKey()
	playerAddr, player := util.Genaddress()
	_, err := e.mock.Transfer(playerAddr, 10*types.Coin)
	require.NoError(t, err)

	var commit bty.ReplyCommit
	require.NoError(t, e.jrpc.Call("bomb.Commit", &bty.ReqCommit{X: 7, Random: "0x616263646566"}, &commit))
	random, err := bty.ParseRandom("616263646566")
	require.NoError(t, err)
	assert.Equal(t, bty.RevealAddress(7, random).String(), commit.Addr)

	r := e.send(promoter, &bty.ReqCreateTx{Action: "create", MaxNumber: 10, OddsX100: 150, Commit: commit.Commit, Level: "d"})
	assert.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	game := e.game(commit.Addr)
	assert.Equal(t, "created", game.StatusName)
	assert.Equal(t, util.PubKeyAddress(promoter).String(), game.Promoter)
	assert.True(t, game.Balance > 0)

	var list bty.ReplyGameList
	require.NoError(t, e.jrpc.Call("bomb.ListGames", &bty.ReqGameList{Status: bty.BombStatusCreated}, &list))
	require.Len(t, list.Games, 1)
	assert.Equal(t, commit.Addr, list.Games[0].Addr)

	r = e.send(player, &bty.ReqCreateTx{Action: "participate", Game: commit.Addr, Point: 7})
	assert.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	assert.Equal(t, "joined", e.game(commit.Addr).StatusName)
	before := e.balance(playerAddr)

	r = e.send(promoter, &bty.ReqCreateTx{Action: "reveal", X: 7, Random: "0x616263646566"})
	assert.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	assert.Equal(t, "revealed", e.game(commit.Addr).StatusName)

	r = e.send(player, &bty.ReqCreateTx{Action: "end", Game: commit.Addr})
	assert.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	game = e.game(commit.Addr)
	assert.Equal(t, "ended", game.StatusName)
	assert.Equal(t, uint16(7), game.Answer)
	assert.True(t, e.balance(playerAddr) > before)
	require.NoError(t, e.jrpc.Call("bomb.ListGames", &bty.ReqGameList{Status: bty.BombStatusEnded}, &list))
	assert.Len(t, list.Games, 1)
}

func TestRevealBinaryRandom(t *testing.T) {
	e := newEnv(t)
	defer e.mock.Close()

	promoter := e.mock.GetGenesisKey()
	playerAddr, player := util.Genaddress()
	_, err := e.mock.Transfer(playerAddr, 10*types.Coin)
	require.NoError(t, err)

	random := [bty.RandomSize]byte{0xff, 0xfe, 0, 0x80, 1, 2}
	var commit bty.ReplyCommit
	require.NoError(t, e.jrpc.Call("bomb.Commit", &bty.ReqCommit{X: 4, Random: "0xfffe00800102"}, &commit))
	assert.Equal(t, bty.RevealAddress(4, random).String(), commit.Addr)

	r := e.send(promoter, &bty.ReqCreateTx{Action: "create", MaxNumber: 6, OddsX100: 150, Commit: commit.Commit, Level: "D"})
	require.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	r = e.send(player, &bty.ReqCreateTx{Action: "participate", Game: commit.Addr, Point: 2})
	require.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	r = e.send(promoter, &bty.ReqCreateTx{Action: "reveal", X: 4, Random: "0xFFFE00800102"})
	require.Equal(t, int32(types.ExecOk), r.Receipt.Ty)

	game := e.game(commit.Addr)
	assert.Equal(t, "revealed", game.StatusName)
	assert.Equal(t, uint16(4), game.Answer)
	assert.Equal(t, "0xfffe00800102", game.Random)
	got, err := bty.ParseRandom(game.Random)
	require.NoError(t, err)
	assert.Equal(t, random, got)
}

func TestEndAfterTimeout(t *testing.T) {
	e := newEnv(t)
	defer e.mock.Close()
	defer types.SetTimeOffset(0)

	promoter := e.mock.GetGenesisKey()
	playerAddr, player := util.Genaddress()
	_, err := e.mock.Transfer(playerAddr, 10*types.Coin)
	require.NoError(t, err)

	var commit bty.ReplyCommit
	require.NoError(t, e.jrpc.Call("bomb.Commit", &bty.ReqCommit{X: 2, Random: "0x313233343536"}, &commit))
	r := e.send(promoter, &bty.ReqCreateTx{Action: "create", MaxNumber: 4, OddsX100: 300, Commit: commit.Commit, Level: "D"})
	require.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	r = e.send(player, &bty.ReqCreateTx{Action: "participate", Game: commit.Addr, Point: 1})
	require.Equal(t, int32(types.ExecOk), r.Receipt.Ty)

	// 揭晓期限内未揭晓不能结算
	r = e.send(player, &bty.ReqCreateTx{Action: "end", Game: commit.Addr})
	assert.Equal(t, int32(types.ExecErr), r.Receipt.Ty)

	gameAddr, err := address.NewAddrFromString(commit.Addr)
	require.NoError(t, err)
	prefund := e.balance(gameAddr)
	before := e.balance(playerAddr)
	types.SetTimeOffset(601 * time.Second)
	r = e.send(player, &bty.ReqCreateTx{Action: "end", Game: commit.Addr})
	require.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	assert.Equal(t, int64(0), e.balance(gameAddr))
	assert.True(t, e.balance(playerAddr)-before > prefund/2)
	assert.Equal(t, "ended", e.game(commit.Addr).StatusName)
}

func TestDeleteGame(t *testing.T) {
	e := newEnv(t)
	defer e.mock.Close()

	promoter := e.mock.GetGenesisKey()
	var commit bty.ReplyCommit
	require.NoError(t, e.jrpc.Call("bomb.Commit", &bty.ReqCommit{X: 3, Random: "7a7a7a7a7a7a"}, &commit))
	r := e.send(promoter, &bty.ReqCreateTx{Action: "create", MaxNumber: 5, OddsX100: 200, Commit: commit.Commit, Level: "C"})
	require.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	gameAddr, err := address.NewAddrFromString(commit.Addr)
	require.NoError(t, err)
	assert.True(t, e.balance(gameAddr) > 0)

	r = e.send(promoter, &bty.ReqCreateTx{Action: "delete", Game: commit.Addr})
	require.Equal(t, int32(types.ExecOk), r.Receipt.Ty)
	assert.Equal(t, int64(0), e.balance(gameAddr))
	assert.Equal(t, "deleted", e.game(commit.Addr).StatusName)
}

func TestCreateRawTxErrors(t *testing.T) {
	e := newEnv(t)
	defer e.mock.Close()

	from := e.mock.GetGenesisAddress().String()
	var raw string
	err := e.jrpc.Call("bomb.CreateRawTx", &bty.ReqCreateTx{Action: "boom", From: from}, &raw)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), types.ErrActionNotSupport.Error())

	err = e.jrpc.Call("bomb.CreateRawTx", &bty.ReqCreateTx{Action: "create", From: "bad"}, &raw)
	assert.Error(t, err)

	err = e.jrpc.Call("bomb.CreateRawTx", &bty.ReqCreateTx{Action: "reveal", From: from, Random: "short"}, &raw)
	assert.Error(t, err)
	err = e.jrpc.Call("bomb.CreateRawTx", &bty.ReqCreateTx{Action: "reveal", From: from, Random: "abcdef"}, &raw)
	assert.Error(t, err)

	unknown, _ := util.Genaddress()
	err = e.jrpc.Call("bomb.CreateRawTx", &bty.ReqCreateTx{Action: "participate", From: from, Game: unknown.String(), Point: 1}, &raw)
	assert.Error(t, err)

	var params bty.Params
	require.NoError(t, e.jrpc.Call("bomb.GetParams", &types.ReqNil{}, &params))
	assert.Equal(t, int64(600), params.RevealTime)
	assert.Equal(t, address.ExecAddress("bomb.vault").String(), params.Vault)
}
