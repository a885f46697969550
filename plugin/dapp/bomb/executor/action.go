// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"github.com/33cn/digitalbomb/account"
	"github.com/33cn/digitalbomb/common/address"
	dbm "github.com/33cn/digitalbomb/common/db"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	drivers "github.com/33cn/digitalbomb/system/dapp"
	"github.com/33cn/digitalbomb/types"
	"github.com/pkg/errors"
)

// Action 一笔 bomb 交易的执行环境
type Action struct {
	coinsAccount *account.DB
	db           dbm.KV
	tx           *types.Transaction
	fromaddr     address.Address
	blocktime    int64
	height       int64
	index        int
}

// NewAction new
func NewAction(b *Bomb, tx *types.Transaction, index int) *Action {
	return &Action{
		coinsAccount: b.GetCoinsAccount(),
		db:           b.GetStateDB(),
		tx:           tx,
		fromaddr:     tx.From(),
		blocktime:    b.GetBlockTime(),
		height:       b.GetHeight(),
		index:        index,
	}
}

// GetIndex 交易在链上的全局序号
func (action *Action) GetIndex() int64 {
	return action.height*types.MaxTxsPerBlock + int64(action.index)
}

func (action *Action) account(i int) address.Address {
	// CheckTx 已经检查过引用账户的个数
	addr, err := action.tx.Account(i)
	if err != nil {
		panic(err)
	}
	return addr
}

func (action *Action) checkCoinsRef(i int) error {
	if action.account(i) != drivers.ExecAddress(types.CoinsX) {
		return errors.Wrap(bty.ErrInvalidAddress, "coins account reference")
	}
	return nil
}

func (action *Action) readGame(addr address.Address) (*bty.GameRecord, error) {
	data, err := action.db.Get(Key(addr))
	if err == types.ErrNotFound {
		return nil, errors.Wrapf(bty.ErrIllegalState, "game %s not exist", addr)
	}
	if err != nil {
		return nil, err
	}
	return bty.DecodeGameRecord(data)
}

// receiptLog 游戏日志
func (action *Action) receiptLog(game *bty.GameRecord, addr address.Address, status, prevStatus int32) *bty.ReceiptBomb {
	r := &bty.ReceiptBomb{
		Addr:       addr.String(),
		Promoter:   game.Promoter.String(),
		Status:     status,
		PrevStatus: prevStatus,
		Level:      game.Level.String(),
		Index:      action.GetIndex(),
	}
	if game.Joined() {
		r.Player = game.Player().String()
	}
	return r
}

func (action *Action) transfer(kv *drivers.KVCreator, from, to address.Address, amount int64) error {
	if amount == 0 {
		return nil
	}
	receipt, err := action.coinsAccount.Transfer(from, to, amount)
	if err != nil {
		blog.Error("bomb transfer", "from", from.String(), "to", to.String(), "amount", amount, "err", err)
		return err
	}
	kv.Merge(receipt)
	return nil
}

// GameCreate 创建游戏, 庄家向游戏地址预存资金
func (action *Action) GameCreate(create *bty.CreateGame) (*types.Receipt, error) {
	gameAddr := action.account(1)
	if err := action.checkCoinsRef(2); err != nil {
		return nil, err
	}
	level, err := bty.ParseLevel(create.GameLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "level %d", create.GameLevel)
	}
	if create.MaxNumber == 0 {
		return nil, errors.Wrap(bty.ErrInvalidParameters, "max number must be positive")
	}
	if bty.GameAddress(create.SplicingHash) != gameAddr {
		return nil, errors.Wrap(bty.ErrInvalidAddress, "game address not derived from commit")
	}
	if _, err := action.db.Get(Key(gameAddr)); err == nil {
		return nil, errors.Wrapf(bty.ErrIllegalState, "game %s exists", gameAddr)
	}
	if action.coinsAccount.LoadAccount(gameAddr).Balance != 0 {
		return nil, errors.Wrapf(bty.ErrIllegalState, "game %s account not empty", gameAddr)
	}
	prefund, err := prefundAmount(level, create.OddsX100, create.MaxNumber)
	if err != nil {
		return nil, err
	}

	kv := drivers.NewKVCreator(action.db)
	if err := action.transfer(kv, action.fromaddr, gameAddr, prefund); err != nil {
		return nil, err
	}
	game := bty.NewGameRecord(action.fromaddr, create.MaxNumber, create.OddsX100, level)
	if err := kv.Set(Key(gameAddr), game.Encode()); err != nil {
		return nil, err
	}
	kv.AddLog(bty.TyLogBombCreate, types.Encode(action.receiptLog(game, gameAddr, bty.BombStatusCreated, 0)))
	blog.Debug("GameCreate", "game", gameAddr.String(), "promoter", action.fromaddr.String(), "prefund", prefund)
	return kv.Receipt(), nil
}

// GameParticipate 玩家加入, 押注直接转给庄家
func (action *Action) GameParticipate(join *bty.Participate) (*types.Receipt, error) {
	gameAddr := action.account(1)
	if err := action.checkCoinsRef(2); err != nil {
		return nil, err
	}
	game, err := action.readGame(gameAddr)
	if err != nil {
		return nil, err
	}
	if action.account(3) != game.Promoter {
		return nil, errors.Wrap(bty.ErrUnauthorizedCaller, "promoter reference")
	}
	if game.Joined() {
		return nil, errors.Wrap(bty.ErrIllegalState, "game already joined")
	}
	if join.Point == 0 || join.Point > game.Max {
		return nil, errors.Wrapf(bty.ErrInvalidParameters, "point %d out of range [1, %d]", join.Point, game.Max)
	}
	if action.fromaddr == game.Promoter {
		return nil, errors.Wrap(bty.ErrUnauthorizedCaller, "promoter can't join own game")
	}
	stake, err := game.Level.Stake()
	if err != nil {
		return nil, err
	}

	kv := drivers.NewKVCreator(action.db)
	// stake 不超过 1e10
	if err := action.transfer(kv, action.fromaddr, game.Promoter, int64(stake)); err != nil {
		return nil, err
	}
	game.Participation = &bty.Participation{
		Player:      action.fromaddr,
		FiringPoint: join.Point,
		ShotTime:    action.blocktime,
	}
	if err := kv.Set(Key(gameAddr), game.Encode()); err != nil {
		return nil, err
	}
	kv.AddLog(bty.TyLogBombParticipate, types.Encode(action.receiptLog(game, gameAddr, bty.BombStatusJoined, bty.BombStatusCreated)))
	return kv.Receipt(), nil
}

// GameReveal 庄家揭晓, 由揭晓的数字和随机串重新计算游戏地址
func (action *Action) GameReveal(reveal *bty.Reveal) (*types.Receipt, error) {
	gameAddr := action.account(1)
	if err := action.checkCoinsRef(2); err != nil {
		return nil, err
	}
	if bty.RevealAddress(reveal.X, reveal.Random) != gameAddr {
		return nil, errors.Wrap(bty.ErrInvalidAddress, "reveal not match commit")
	}
	game, err := action.readGame(gameAddr)
	if err != nil {
		return nil, err
	}
	if action.fromaddr != game.Promoter {
		return nil, errors.Wrap(bty.ErrUnauthorizedCaller, "only promoter can reveal")
	}
	if !game.Joined() {
		return nil, errors.Wrap(bty.ErrIllegalState, "game not joined")
	}
	if !withinWindow(game.Participation.ShotTime, cfg.revealTime, action.blocktime) {
		return nil, errors.Wrap(bty.ErrIllegalState, "reveal too late")
	}
	prevStatus := game.Status()
	game.Answer = reveal.X
	game.RandomString = reveal.Random

	kv := drivers.NewKVCreator(action.db)
	if err := kv.Set(Key(gameAddr), game.Encode()); err != nil {
		return nil, err
	}
	kv.AddLog(bty.TyLogBombReveal, types.Encode(action.receiptLog(game, gameAddr, game.Status(), prevStatus)))
	return kv.Receipt(), nil
}

// GameEnd 结算, 游戏地址的余额全部分配完后删除游戏记录
func (action *Action) GameEnd(end *bty.End) (*types.Receipt, error) {
	promoterRef, playerRef, gameAddr, vaultRef := action.account(1), action.account(2), action.account(3), action.account(4)
	game, err := action.readGame(gameAddr)
	if err != nil {
		return nil, err
	}
	if !game.Joined() {
		return nil, errors.Wrap(bty.ErrIllegalState, "game not joined")
	}
	if promoterRef != game.Promoter || playerRef != game.Player() {
		return nil, errors.Wrap(bty.ErrUnauthorizedCaller, "promoter or player reference")
	}
	if vaultRef != cfg.vault {
		return nil, errors.Wrap(bty.ErrUnauthorizedCaller, "vault reference")
	}
	if action.fromaddr != game.Promoter && action.fromaddr != game.Player() {
		return nil, errors.Wrap(bty.ErrUnauthorizedCaller, "only promoter or player can end")
	}
	within := withinWindow(game.Participation.ShotTime, cfg.revealTime, action.blocktime)
	balance := action.coinsAccount.LoadAccount(gameAddr).Balance
	s, err := Settle(game, balance, within)
	if err != nil {
		return nil, err
	}

	kv := drivers.NewKVCreator(action.db)
	legs := []struct {
		to     address.Address
		amount int64
	}{
		{game.Player(), s.Player},
		{game.Promoter, s.Promoter},
		{cfg.vault, s.Fee},
	}
	for _, leg := range legs {
		if err := action.transfer(kv, gameAddr, leg.to, leg.amount); err != nil {
			return nil, err
		}
	}
	if left := action.coinsAccount.LoadAccount(gameAddr).Balance; left != 0 {
		blog.Error("GameEnd", "game", gameAddr.String(), "left", left)
		return nil, errors.Wrapf(bty.ErrArithmeticFault, "game balance %d left", left)
	}
	if err := kv.Del(Key(gameAddr)); err != nil {
		return nil, err
	}

	log := action.receiptLog(game, gameAddr, bty.BombStatusEnded, game.Status())
	log.PlayerAmount = s.Player
	log.PromoterAmount = s.Promoter
	log.Fee = s.Fee
	if s.Outcome == OutcomePromoterWin {
		log.Winner = log.Promoter
	} else {
		log.Winner = log.Player
	}
	kv.AddLog(bty.TyLogBombEnd, types.Encode(log))
	blog.Debug("GameEnd", "game", gameAddr.String(), "outcome", s.Outcome, "player", s.Player, "promoter", s.Promoter, "fee", s.Fee)
	return kv.Receipt(), nil
}

// GameDelete 删除没有玩家加入的游戏, 预存资金退还庄家
func (action *Action) GameDelete(del *bty.Delete) (*types.Receipt, error) {
	gameAddr := action.account(1)
	if err := action.checkCoinsRef(2); err != nil {
		return nil, err
	}
	game, err := action.readGame(gameAddr)
	if err != nil {
		return nil, err
	}
	if action.fromaddr != game.Promoter {
		return nil, errors.Wrap(bty.ErrUnauthorizedCaller, "only promoter can delete")
	}
	if game.Joined() {
		return nil, errors.Wrap(bty.ErrIllegalState, "game already joined")
	}
	balance := action.coinsAccount.LoadAccount(gameAddr).Balance
	kv := drivers.NewKVCreator(action.db)
	if err := action.transfer(kv, gameAddr, game.Promoter, balance); err != nil {
		return nil, err
	}
	if err := kv.Del(Key(gameAddr)); err != nil {
		return nil, err
	}
	log := action.receiptLog(game, gameAddr, bty.BombStatusDeleted, game.Status())
	log.Refund = balance
	kv.AddLog(bty.TyLogBombDelete, types.Encode(log))
	return kv.Receipt(), nil
}
