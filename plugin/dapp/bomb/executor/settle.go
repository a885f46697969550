// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"

	"github.com/33cn/digitalbomb/common/intmath"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/pkg/errors"
)

// 结算结果
const (
	OutcomePlayerWin = iota + 1
	OutcomePromoterWin
	OutcomeForcedPlayerWin
)

// Settlement 结算时各方得到的金额, 三者之和等于游戏地址的余额
type Settlement struct {
	Outcome  int32
	Player   int64
	Promoter int64
	Fee      int64
}

func arithmetic(err error, what string) error {
	return errors.Wrapf(bty.ErrArithmeticFault, "%s: %v", what, err)
}

// prefundAmount 创建游戏时预存 stake * max(odds, max*100)
func prefundAmount(level bty.Level, odds uint32, max uint16) (int64, error) {
	stake, err := level.Stake()
	if err != nil {
		return 0, err
	}
	cover := intmath.Max(uint64(odds), uint64(max)*100)
	amount, err := intmath.Mul(stake, cover)
	if err != nil {
		return 0, arithmetic(err, "prefund")
	}
	v, err := intmath.ToInt64(amount)
	if err != nil {
		return 0, arithmetic(err, "prefund")
	}
	return v, nil
}

// deadline shot_time + revealTime, 溢出时取最大值
func deadline(shotTime, revealTime int64) int64 {
	if revealTime > 0 && shotTime > math.MaxInt64-revealTime {
		return math.MaxInt64
	}
	return shotTime + revealTime
}

func withinWindow(shotTime, revealTime, now int64) bool {
	return deadline(shotTime, revealTime) >= now
}

// Settle 计算结算金额. within 表示当前仍然在揭晓期限内
func Settle(game *bty.GameRecord, balance int64, within bool) (*Settlement, error) {
	if !game.Joined() {
		return nil, errors.Wrap(bty.ErrIllegalState, "game not joined")
	}
	if within && !game.Revealed() {
		return nil, errors.Wrap(bty.ErrIllegalState, "reveal pending")
	}
	stake, err := game.Level.Stake()
	if err != nil {
		return nil, err
	}
	bal, err := intmath.FromInt64(balance)
	if err != nil {
		return nil, arithmetic(err, "balance")
	}
	win, err := intmath.MulDiv(stake, uint64(game.OddsX100), 100)
	if err != nil {
		return nil, arithmetic(err, "win")
	}
	fee, err := intmath.Percent(win, bty.FeePercent)
	if err != nil {
		return nil, arithmetic(err, "fee")
	}
	var player, promoter uint64
	var outcome int32
	switch {
	case !game.Revealed():
		// 超时未揭晓, answer 为 0 也按照玩家获胜处理
		outcome = OutcomeForcedPlayerWin
		player, err = intmath.Sub(bal, fee)
	case game.Participation.FiringPoint == game.Answer:
		outcome = OutcomePlayerWin
		player, err = intmath.Sub(win, fee)
		if err == nil {
			promoter, err = intmath.Sub(bal, win)
		}
	default:
		outcome = OutcomePromoterWin
		promoter, err = intmath.Sub(bal, fee)
	}
	if err != nil {
		return nil, arithmetic(err, "payout")
	}
	s := &Settlement{Outcome: outcome}
	// 每一项都不超过 bal, bal 来自 int64
	s.Player, s.Promoter, s.Fee = int64(player), int64(promoter), int64(fee)
	return s, nil
}
