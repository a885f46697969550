// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	commandtypes "github.com/33cn/digitalbomb/system/dapp/commands/types"
	"github.com/33cn/digitalbomb/types"
)

// GameResult 游戏的显示格式, 金额以币为单位
type GameResult struct {
	Addr        string `json:"addr"`
	Promoter    string `json:"promoter"`
	Player      string `json:"player,omitempty"`
	FiringPoint uint16 `json:"firingPoint,omitempty"`
	Max         uint16 `json:"max"`
	Odds        string `json:"odds"`
	Level       string `json:"level"`
	Stake       string `json:"stake"`
	ShotTime    int64  `json:"shotTime,omitempty"`
	Answer      uint16 `json:"answer,omitempty"`
	Random      string `json:"random,omitempty"`
	Status      string `json:"status"`
	Balance     string `json:"balance"`
	Index       int64  `json:"index"`
}

func toGameResult(g *bty.ReplyGame) *GameResult {
	r := &GameResult{
		Addr:        g.Addr,
		Promoter:    g.Promoter,
		Player:      g.Player,
		FiringPoint: g.FiringPoint,
		Max:         g.Max,
		Odds:        commandtypes.FormatAmountValue2Display(int64(g.OddsX100) * types.Coin / 100),
		Level:       g.Level,
		Stake:       commandtypes.FormatAmountValue2Display(g.Stake),
		ShotTime:    g.ShotTime,
		Status:      g.StatusName,
		Balance:     commandtypes.FormatAmountValue2Display(g.Balance),
		Index:       g.Index,
	}
	if g.Status >= bty.BombStatusRevealed && g.Status != bty.BombStatusDeleted {
		r.Answer = g.Answer
		r.Random = g.Random
	}
	return r
}

func parseStatus(name string) (int32, error) {
	for s := int32(bty.BombStatusCreated); s <= bty.BombStatusDeleted; s++ {
		if bty.StatusName(s) == name {
			return s, nil
		}
	}
	return 0, bty.ErrInvalidParameters
}
