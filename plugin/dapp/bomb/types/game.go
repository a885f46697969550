// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/types"
)

// Participation 玩家加入后的状态, nil 表示还没有玩家加入
type Participation struct {
	Player      address.Address `json:"player"`
	FiringPoint uint16          `json:"firingPoint"`
	ShotTime    int64           `json:"shotTime"`
}

// GameRecord 链上保存的游戏记录
type GameRecord struct {
	Promoter      address.Address  `json:"promoter"`
	Participation *Participation   `json:"participation,omitempty"`
	Max           uint16           `json:"max"`
	OddsX100      uint32           `json:"oddsX100"`
	Level         Level            `json:"level"`
	Answer        uint16           `json:"answer"`
	RandomString  [RandomSize]byte `json:"randomString"`
}

// NewGameRecord 新建未加入, 未揭晓的游戏
func NewGameRecord(promoter address.Address, max uint16, odds uint32, level Level) *GameRecord {
	return &GameRecord{
		Promoter:     promoter,
		Max:          max,
		OddsX100:     odds,
		Level:        level,
		RandomString: InitRandom,
	}
}

// Joined 是否已有玩家加入
func (g *GameRecord) Joined() bool {
	return g.Participation != nil
}

// Revealed 是否已经揭晓
func (g *GameRecord) Revealed() bool {
	return g.Answer != 0
}

// Status 当前状态
func (g *GameRecord) Status() int32 {
	switch {
	case g.Revealed():
		return BombStatusRevealed
	case g.Joined():
		return BombStatusJoined
	}
	return BombStatusCreated
}

// Player 玩家地址, 没有玩家时为零地址
func (g *GameRecord) Player() address.Address {
	if g.Participation == nil {
		return address.Zero
	}
	return g.Participation.Player
}

// Encode 定长 89 字节小端编码:
// promoter(32) player(32) firing_point(2) max(2) odds_x100(4) level(1) shot_time(8) answer(2) random_string(6)
func (g *GameRecord) Encode() []byte {
	player := Sentinel()
	var point uint16
	var shot int64
	if p := g.Participation; p != nil {
		player, point, shot = p.Player, p.FiringPoint, p.ShotTime
	}
	w := types.NewLEWriter(RecordSize)
	w.Raw(g.Promoter[:]).Raw(player[:])
	w.U16(point).U16(g.Max).U32(g.OddsX100).U8(uint8(g.Level))
	w.I64(shot).U16(g.Answer).Raw(g.RandomString[:])
	return w.Bytes()
}

// DecodeGameRecord 解码游戏记录, 长度或者字段组合不合法时返回 ErrRecordCorrupt
func DecodeGameRecord(data []byte) (*GameRecord, error) {
	if len(data) != RecordSize {
		return nil, ErrRecordCorrupt
	}
	r := types.NewLEReader(data)
	g := &GameRecord{}
	copy(g.Promoter[:], r.Raw(address.Size))
	var player address.Address
	copy(player[:], r.Raw(address.Size))
	point := r.U16()
	g.Max = r.U16()
	g.OddsX100 = r.U32()
	g.Level = Level(r.U8())
	shot := r.I64()
	g.Answer = r.U16()
	copy(g.RandomString[:], r.Raw(RandomSize))
	if err := r.Finish(); err != nil {
		return nil, ErrRecordCorrupt
	}
	if !g.Level.Valid() {
		return nil, ErrRecordCorrupt
	}
	switch {
	case player == Sentinel() && point == 0 && shot == 0:
		// 未加入的游戏不可能已经揭晓
		if g.Answer != 0 {
			return nil, ErrRecordCorrupt
		}
	case player != Sentinel() && point != 0:
		g.Participation = &Participation{Player: player, FiringPoint: point, ShotTime: shot}
	default:
		return nil, ErrRecordCorrupt
	}
	return g, nil
}
