// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"os"
	"testing"

	"github.com/33cn/digitalbomb/account"
	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/common/crypto"
	"github.com/33cn/digitalbomb/common/crypto/ed25519"
	dbm "github.com/33cn/digitalbomb/common/db"
	chainexec "github.com/33cn/digitalbomb/executor"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	cexec "github.com/33cn/digitalbomb/system/dapp/coins/executor"
	"github.com/33cn/digitalbomb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testRevealTime = int64(100)
	startTime      = int64(1600000000)
	initBalance    = int64(10000 * types.Coin)
)

var (
	coinsAddr = address.ExecAddress(types.CoinsX)
	random    = [bty.RandomSize]byte{'s', 'e', 'c', 'r', 'e', 't'}
)

func TestMain(m *testing.M) {
	cexec.Init(types.CoinsX, nil)
	Init(bty.BombX, []byte(`{"revealTime":100}`))
	os.Exit(m.Run())
}

type user struct {
	priv crypto.PrivKey
	addr address.Address
}

func newUser(t *testing.T) *user {
	c, err := crypto.New(ed25519.Name)
	require.NoError(t, err)
	priv, err := c.GenKey()
	require.NoError(t, err)
	addr, err := address.BytesToAddress(priv.PubKey().Bytes())
	require.NoError(t, err)
	return &user{priv: priv, addr: addr}
}

// chain 每笔交易一个区块, 执行后写入数据库
type chain struct {
	t         *testing.T
	db        dbm.DB
	height    int64
	blocktime int64
	nonce     int64
}

func newChain(t *testing.T, users ...*user) *chain {
	db, err := dbm.NewDB("test", dbm.MemDBBackendStr, "", 0)
	require.NoError(t, err)
	c := &chain{t: t, db: db, height: 1, blocktime: startTime}
	state := chainexec.NewStateDB(db)
	acc := account.NewCoinsAccount(state)
	for _, u := range users {
		_, err := acc.GenesisInit(u.addr, initBalance)
		require.NoError(t, err)
	}
	c.flush(state, chainexec.NewLocalDB(db))
	return c
}

func (c *chain) flush(state *chainexec.StateDB, local *chainexec.LocalDB) {
	batch := c.db.NewBatch(true)
	state.Flush(batch)
	local.Flush(batch)
	require.NoError(c.t, batch.Write())
}

func (c *chain) send(u *user, action *bty.BombAction, accounts ...address.Address) *types.ReceiptData {
	c.nonce++
	refs := append([]address.Address{u.addr}, accounts...)
	tx := types.CreateTx(bty.BombX, action.Encode(), c.nonce, refs...)
	tx.Sign(ed25519.ID, u.priv)
	state := chainexec.NewStateDB(c.db)
	local := chainexec.NewLocalDB(c.db)
	e := chainexec.New(state, local, c.height, c.blocktime)
	r := e.ExecTx(tx, 0)
	c.flush(state, local)
	c.height++
	return r
}

func (c *chain) balance(addr address.Address) int64 {
	return account.NewCoinsAccount(chainexec.NewStateDB(c.db)).LoadAccount(addr).Balance
}

func (c *chain) query(funcname string, params interface{}) (interface{}, error) {
	e := chainexec.New(chainexec.NewStateDB(c.db), chainexec.NewLocalDB(c.db), c.height, c.blocktime)
	return e.Query(bty.BombX, funcname, types.Encode(params))
}

func (c *chain) record(addr address.Address) *bty.GameRecord {
	data, err := c.db.Get(Key(addr))
	if err != nil {
		return nil
	}
	g, err := bty.DecodeGameRecord(data)
	require.NoError(c.t, err)
	return g
}

func requireOK(t *testing.T, r *types.ReceiptData) {
	if r.Ty != types.ExecOk {
		require.FailNow(t, "tx failed", string(r.Logs[0].Log))
	}
}

func requireErr(t *testing.T, r *types.ReceiptData, code *bty.Error) {
	require.Equal(t, int32(types.ExecErr), r.Ty)
	require.Equal(t, int32(types.TyLogErr), r.Logs[0].Ty)
	assert.Contains(t, string(r.Logs[0].Log), code.Msg)
}

type game struct {
	addr     address.Address
	x        uint16
	max      uint16
	odds     uint32
	level    bty.Level
	promoter *user
	player   *user
}

func (c *chain) create(g *game) *types.ReceiptData {
	commit := bty.Commit(g.x, random)
	g.addr = bty.GameAddress(commit)
	return c.send(g.promoter, bty.NewCreateAction(g.max, g.odds, commit, uint8(g.level)), g.addr, coinsAddr)
}

func (c *chain) participate(g *game, point uint16) *types.ReceiptData {
	return c.send(g.player, bty.NewParticipateAction(point), g.addr, coinsAddr, g.promoter.addr)
}

func (c *chain) reveal(g *game, x uint16) *types.ReceiptData {
	return c.send(g.promoter, bty.NewRevealAction(x, random), g.addr, coinsAddr)
}

func (c *chain) end(g *game, by *user) *types.ReceiptData {
	return c.send(by, bty.NewEndAction(), g.promoter.addr, g.player.addr, g.addr, cfg.vault)
}

func (c *chain) del(g *game, by *user) *types.ReceiptData {
	return c.send(by, bty.NewDeleteAction(), g.addr, coinsAddr)
}

func setup(t *testing.T) (*chain, *game) {
	promoter, player := newUser(t), newUser(t)
	c := newChain(t, promoter, player)
	g := &game{x: 7, max: 10, odds: 200, level: bty.LevelD, promoter: promoter, player: player}
	return c, g
}

func TestPlayerWin(t *testing.T) {
	c, g := setup(t)
	requireOK(t, c.create(g))
	// 1000000 * max(200, 10*100)
	prefund := int64(1000000 * 1000)
	assert.Equal(t, prefund, c.balance(g.addr))
	assert.Equal(t, initBalance-prefund, c.balance(g.promoter.addr))

	requireOK(t, c.participate(g, 7))
	assert.Equal(t, initBalance-1000000, c.balance(g.player.addr))
	assert.Equal(t, initBalance-prefund+1000000, c.balance(g.promoter.addr))
	rec := c.record(g.addr)
	require.True(t, rec.Joined())
	assert.Equal(t, startTime, rec.Participation.ShotTime)

	requireOK(t, c.reveal(g, 7))
	assert.Equal(t, uint16(7), c.record(g.addr).Answer)

	promoterBefore := c.balance(g.promoter.addr)
	playerBefore := c.balance(g.player.addr)
	balance := c.balance(g.addr)
	requireOK(t, c.end(g, g.player))
	assert.Equal(t, playerBefore+1980000, c.balance(g.player.addr))
	assert.Equal(t, int64(20000), c.balance(cfg.vault))
	assert.Equal(t, promoterBefore+balance-2000000, c.balance(g.promoter.addr))
	assert.Equal(t, int64(0), c.balance(g.addr))
	assert.Nil(t, c.record(g.addr))
}

func TestPromoterWin(t *testing.T) {
	c, g := setup(t)
	requireOK(t, c.create(g))
	requireOK(t, c.participate(g, 3))
	requireOK(t, c.reveal(g, 7))
	promoterBefore := c.balance(g.promoter.addr)
	playerBefore := c.balance(g.player.addr)
	vaultBefore := c.balance(cfg.vault)
	balance := c.balance(g.addr)

	requireOK(t, c.end(g, g.promoter))
	assert.Equal(t, promoterBefore+balance-20000, c.balance(g.promoter.addr))
	assert.Equal(t, playerBefore, c.balance(g.player.addr))
	assert.Equal(t, vaultBefore+20000, c.balance(cfg.vault))
	assert.Equal(t, int64(0), c.balance(g.addr))
}

func TestForcedPlayerWin(t *testing.T) {
	c, g := setup(t)
	requireOK(t, c.create(g))
	requireOK(t, c.participate(g, 3))
	balance := c.balance(g.addr)

	// 期限内没有揭晓, 不能结算
	requireErr(t, c.end(g, g.player), bty.ErrIllegalState)

	c.blocktime = startTime + testRevealTime + 1
	// 超时之后不能再揭晓
	requireErr(t, c.reveal(g, 7), bty.ErrIllegalState)

	promoterBefore := c.balance(g.promoter.addr)
	playerBefore := c.balance(g.player.addr)
	vaultBefore := c.balance(cfg.vault)
	requireOK(t, c.end(g, g.player))
	assert.Equal(t, playerBefore+balance-20000, c.balance(g.player.addr))
	assert.Equal(t, promoterBefore, c.balance(g.promoter.addr))
	assert.Equal(t, vaultBefore+20000, c.balance(cfg.vault))
	assert.Equal(t, int64(0), c.balance(g.addr))
}

func TestRevealAfterWindowResolvesNormally(t *testing.T) {
	c, g := setup(t)
	requireOK(t, c.create(g))
	requireOK(t, c.participate(g, 7))
	requireOK(t, c.reveal(g, 7))
	c.blocktime = startTime + testRevealTime + 1
	playerBefore := c.balance(g.player.addr)
	requireOK(t, c.end(g, g.promoter))
	assert.Equal(t, playerBefore+1980000, c.balance(g.player.addr))
}

func TestRevealBoundary(t *testing.T) {
	c, g := setup(t)
	requireOK(t, c.create(g))
	requireOK(t, c.participate(g, 7))
	c.blocktime = startTime + testRevealTime
	requireOK(t, c.reveal(g, 7))
}

func TestParticipateErrors(t *testing.T) {
	c, g := setup(t)
	other := newUser(t)
	requireOK(t, c.create(g))

	requireErr(t, c.participate(g, 0), bty.ErrInvalidParameters)
	requireErr(t, c.participate(g, 11), bty.ErrInvalidParameters)
	requireErr(t, c.send(g.player, bty.NewParticipateAction(5), g.addr, coinsAddr, other.addr), bty.ErrUnauthorizedCaller)
	requireErr(t, c.send(g.promoter, bty.NewParticipateAction(5), g.addr, coinsAddr, g.promoter.addr), bty.ErrUnauthorizedCaller)
	assert.Nil(t, c.record(g.addr).Participation)

	requireOK(t, c.participate(g, 10))
	requireErr(t, c.participate(g, 5), bty.ErrIllegalState)
	assert.Equal(t, uint16(10), c.record(g.addr).Participation.FiringPoint)
}

func TestCreateErrors(t *testing.T) {
	c, g := setup(t)
	commit := bty.Commit(g.x, random)
	addr := bty.GameAddress(commit)

	requireErr(t, c.send(g.promoter, bty.NewCreateAction(10, 200, commit, 5), addr, coinsAddr), bty.ErrInvalidParameters)
	requireErr(t, c.send(g.promoter, bty.NewCreateAction(0, 200, commit, 4), addr, coinsAddr), bty.ErrInvalidParameters)
	requireErr(t, c.send(g.promoter, bty.NewCreateAction(10, 200, commit, 4), g.player.addr, coinsAddr), bty.ErrInvalidAddress)
	requireErr(t, c.send(g.promoter, bty.NewCreateAction(10, 200, commit, 4), addr, g.player.addr), bty.ErrInvalidAddress)
	// S 级别, odds 太大导致溢出
	requireErr(t, c.send(g.promoter, bty.NewCreateAction(10, 0xFFFFFFFF, commit, 0), addr, coinsAddr), bty.ErrArithmeticFault)

	before := c.balance(g.promoter.addr)
	requireOK(t, c.create(g))
	requireErr(t, c.create(g), bty.ErrIllegalState)
	assert.Equal(t, before-1000000*1000, c.balance(g.promoter.addr))
}

func TestCreateNoBalance(t *testing.T) {
	c, g := setup(t)
	// S 级别需要 1e10 * 1000
	g.level = bty.LevelS
	r := c.create(g)
	require.Equal(t, int32(types.ExecErr), r.Ty)
	assert.Contains(t, string(r.Logs[0].Log), types.ErrNoBalance.Error())
	assert.Nil(t, c.record(g.addr))
	assert.Equal(t, initBalance, c.balance(g.promoter.addr))
}

func TestRevealErrors(t *testing.T) {
	c, g := setup(t)
	requireOK(t, c.create(g))
	requireErr(t, c.reveal(g, 7), bty.ErrIllegalState)
	requireOK(t, c.participate(g, 7))
	requireErr(t, c.reveal(g, 8), bty.ErrInvalidAddress)
	requireErr(t, c.send(g.player, bty.NewRevealAction(7, random), g.addr, coinsAddr), bty.ErrUnauthorizedCaller)
	assert.False(t, c.record(g.addr).Revealed())
}

func TestEndErrors(t *testing.T) {
	c, g := setup(t)
	other := newUser(t)
	requireOK(t, c.create(g))
	requireErr(t, c.end(g, g.promoter), bty.ErrIllegalState)
	requireOK(t, c.participate(g, 7))
	requireOK(t, c.reveal(g, 7))

	requireErr(t, c.end(g, other), bty.ErrUnauthorizedCaller)
	requireErr(t, c.send(g.player, bty.NewEndAction(), g.promoter.addr, other.addr, g.addr, cfg.vault), bty.ErrUnauthorizedCaller)
	requireErr(t, c.send(g.player, bty.NewEndAction(), g.promoter.addr, g.player.addr, g.addr, other.addr), bty.ErrUnauthorizedCaller)
	require.NotNil(t, c.record(g.addr))
	requireOK(t, c.end(g, g.promoter))
	requireErr(t, c.end(g, g.promoter), bty.ErrIllegalState)
}

func TestDelete(t *testing.T) {
	c, g := setup(t)
	requireOK(t, c.create(g))
	requireErr(t, c.del(g, g.player), bty.ErrUnauthorizedCaller)
	requireOK(t, c.del(g, g.promoter))
	assert.Equal(t, initBalance, c.balance(g.promoter.addr))
	assert.Equal(t, int64(0), c.balance(g.addr))
	assert.Nil(t, c.record(g.addr))

	// 删除之后同一个承诺可以再次创建
	requireOK(t, c.create(g))
	requireOK(t, c.participate(g, 1))
	requireErr(t, c.del(g, g.promoter), bty.ErrIllegalState)
}

func TestMalformedPayload(t *testing.T) {
	c, g := setup(t)
	c.nonce++
	tx := types.CreateTx(bty.BombX, []byte{bty.BombActionParticipate, 1}, c.nonce, g.player.addr, coinsAddr, coinsAddr, coinsAddr)
	tx.Sign(ed25519.ID, g.player.priv)
	e := chainexec.New(chainexec.NewStateDB(c.db), chainexec.NewLocalDB(c.db), c.height, c.blocktime)
	r := e.ExecTx(tx, 0)
	requireErr(t, r, bty.ErrInvalidParameters)

	// 引用账户个数不对
	r = c.send(g.player, bty.NewParticipateAction(1), g.addr)
	require.Equal(t, int32(types.ExecErr), r.Ty)
	assert.Contains(t, string(r.Logs[0].Log), types.ErrTxAccountRefs.Error())
}

func TestQuery(t *testing.T) {
	c, g := setup(t)
	requireOK(t, c.create(g))

	v, err := c.query("GetGame", &bty.ReqGame{Addr: g.addr.String()})
	require.NoError(t, err)
	reply := v.(*bty.ReplyGame)
	assert.Equal(t, int32(bty.BombStatusCreated), reply.Status)
	assert.Equal(t, g.promoter.addr.String(), reply.Promoter)
	assert.Equal(t, int64(1000000*1000), reply.Balance)
	assert.Equal(t, "0x303030303030", reply.Random)

	requireOK(t, c.participate(g, 7))
	v, err = c.query("ListGames", &bty.ReqGameList{Status: bty.BombStatusCreated})
	require.NoError(t, err)
	assert.Len(t, v.(*bty.ReplyGameList).Games, 0)
	v, err = c.query("ListGames", &bty.ReqGameList{Status: bty.BombStatusJoined, Addr: g.player.addr.String()})
	require.NoError(t, err)
	require.Len(t, v.(*bty.ReplyGameList).Games, 1)
	assert.Equal(t, uint16(7), v.(*bty.ReplyGameList).Games[0].FiringPoint)

	requireOK(t, c.reveal(g, 7))
	requireOK(t, c.end(g, g.player))
	v, err = c.query("GetGame", &bty.ReqGame{Addr: g.addr.String()})
	require.NoError(t, err)
	reply = v.(*bty.ReplyGame)
	assert.Equal(t, int32(bty.BombStatusEnded), reply.Status)
	assert.Equal(t, uint16(7), reply.Answer)
	assert.Equal(t, "0x736563726574", reply.Random)
	assert.Equal(t, int64(0), reply.Balance)

	v, err = c.query("ListGames", &bty.ReqGameList{Status: bty.BombStatusEnded, Addr: g.promoter.addr.String()})
	require.NoError(t, err)
	assert.Len(t, v.(*bty.ReplyGameList).Games, 1)
	_, err = c.query("ListGames", &bty.ReqGameList{Status: 9})
	assert.ErrorIs(t, err, bty.ErrInvalidParameters)

	v, err = c.query("GetParams", &types.ReqNil{})
	require.NoError(t, err)
	assert.Equal(t, testRevealTime, v.(*bty.Params).RevealTime)

	v, err = c.query("Commit", &bty.ReqCommit{X: g.x, Random: common.ToHex(random[:])})
	require.NoError(t, err)
	assert.Equal(t, g.addr.String(), v.(*bty.ReplyCommit).Addr)
}
