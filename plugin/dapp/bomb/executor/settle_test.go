// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"math"
	"testing"

	"github.com/33cn/digitalbomb/common/address"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func joinedGame(point, answer uint16) *bty.GameRecord {
	g := bty.NewGameRecord(address.Derive([]byte("test"), []byte("p")), 10, 200, bty.LevelD)
	g.Participation = &bty.Participation{Player: address.Derive([]byte("test"), []byte("q")), FiringPoint: point, ShotTime: 1}
	g.Answer = answer
	return g
}

func TestSettle(t *testing.T) {
	balance := int64(1000000000)
	s, err := Settle(joinedGame(7, 7), balance, true)
	require.NoError(t, err)
	assert.Equal(t, &Settlement{Outcome: OutcomePlayerWin, Player: 1980000, Promoter: balance - 2000000, Fee: 20000}, s)
	assert.Equal(t, balance, s.Player+s.Promoter+s.Fee)

	s, err = Settle(joinedGame(3, 7), balance, false)
	require.NoError(t, err)
	assert.Equal(t, &Settlement{Outcome: OutcomePromoterWin, Promoter: balance - 20000, Fee: 20000}, s)

	s, err = Settle(joinedGame(3, 0), balance, false)
	require.NoError(t, err)
	assert.Equal(t, &Settlement{Outcome: OutcomeForcedPlayerWin, Player: balance - 20000, Fee: 20000}, s)

	_, err = Settle(joinedGame(3, 0), balance, true)
	assert.ErrorIs(t, err, bty.ErrIllegalState)

	unjoined := joinedGame(3, 0)
	unjoined.Participation = nil
	_, err = Settle(unjoined, balance, false)
	assert.ErrorIs(t, err, bty.ErrIllegalState)
}

func TestSettleArithmetic(t *testing.T) {
	// 余额不够赔付
	_, err := Settle(joinedGame(7, 7), 1999999, true)
	assert.ErrorIs(t, err, bty.ErrArithmeticFault)
	_, err = Settle(joinedGame(3, 7), 19999, true)
	assert.ErrorIs(t, err, bty.ErrArithmeticFault)
	_, err = Settle(joinedGame(3, 7), -1, true)
	assert.ErrorIs(t, err, bty.ErrArithmeticFault)

	g := joinedGame(7, 7)
	g.Level = bty.LevelS
	g.OddsX100 = math.MaxUint32
	s, err := Settle(g, math.MaxInt64, true)
	require.NoError(t, err)
	assert.Equal(t, int64(math.MaxInt64), s.Player+s.Promoter+s.Fee)
}

func TestPrefund(t *testing.T) {
	v, err := prefundAmount(bty.LevelD, 200, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000*1000), v)
	v, err = prefundAmount(bty.LevelD, 5000, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(1000000*5000), v)
	_, err = prefundAmount(bty.LevelS, math.MaxUint32, 1)
	assert.ErrorIs(t, err, bty.ErrArithmeticFault)
	_, err = prefundAmount(bty.Level(7), 1, 1)
	assert.ErrorIs(t, err, bty.ErrInvalidParameters)
}

func TestWindow(t *testing.T) {
	assert.True(t, withinWindow(100, 10, 110))
	assert.False(t, withinWindow(100, 10, 111))
	assert.True(t, withinWindow(math.MaxInt64-1, 10, math.MaxInt64))
	assert.Equal(t, int64(math.MaxInt64), deadline(math.MaxInt64, 1))
}
