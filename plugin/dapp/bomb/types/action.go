// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/digitalbomb/types"
	"github.com/pkg/errors"
)

// CreateGame 创建游戏
// accounts: [promoter, game, coins]
type CreateGame struct {
	MaxNumber    uint16   `json:"maxNumber"`
	OddsX100     uint32   `json:"oddsX100"`
	SplicingHash [32]byte `json:"splicingHash"`
	GameLevel    uint8    `json:"gameLevel"`
}

// Participate 加入游戏
// accounts: [player, game, coins, promoter]
type Participate struct {
	Point uint16 `json:"point"`
}

// Reveal 揭晓答案
// accounts: [promoter, game, coins]
type Reveal struct {
	X      uint16           `json:"x"`
	Random [RandomSize]byte `json:"random"`
}

// End 结算
// accounts: [terminator, promoter, player, game, vault]
type End struct{}

// Delete 取消未加入的游戏
// accounts: [promoter, game, coins]
type Delete struct{}

// BombAction action
type BombAction struct {
	Ty    int32       `json:"ty"`
	Value interface{} `json:"value"`
}

// GetTy action 类型
func (a *BombAction) GetTy() int32 { return a.Ty }

// GetValue action 参数
func (a *BombAction) GetValue() interface{} { return a.Value }

// GetCreate create
func (a *BombAction) GetCreate() *CreateGame {
	v, _ := a.Value.(*CreateGame)
	return v
}

// GetParticipate participate
func (a *BombAction) GetParticipate() *Participate {
	v, _ := a.Value.(*Participate)
	return v
}

// GetReveal reveal
func (a *BombAction) GetReveal() *Reveal {
	v, _ := a.Value.(*Reveal)
	return v
}

// Encode payload 编码: tag(1) 后面紧跟小端编码的字段
func (a *BombAction) Encode() []byte {
	w := types.NewLEWriter(40).U8(uint8(a.Ty))
	switch v := a.Value.(type) {
	case *CreateGame:
		w.U16(v.MaxNumber).U32(v.OddsX100).Raw(v.SplicingHash[:]).U8(v.GameLevel)
	case *Participate:
		w.U16(v.Point)
	case *Reveal:
		w.U16(v.X).Raw(v.Random[:])
	}
	return w.Bytes()
}

// NewCreateAction create
func NewCreateAction(max uint16, odds uint32, commit [32]byte, level uint8) *BombAction {
	return &BombAction{Ty: BombActionCreate, Value: &CreateGame{MaxNumber: max, OddsX100: odds, SplicingHash: commit, GameLevel: level}}
}

// NewParticipateAction participate
func NewParticipateAction(point uint16) *BombAction {
	return &BombAction{Ty: BombActionParticipate, Value: &Participate{Point: point}}
}

// NewRevealAction reveal
func NewRevealAction(x uint16, random [RandomSize]byte) *BombAction {
	return &BombAction{Ty: BombActionReveal, Value: &Reveal{X: x, Random: random}}
}

// NewEndAction end
func NewEndAction() *BombAction {
	return &BombAction{Ty: BombActionEnd, Value: &End{}}
}

// NewDeleteAction delete
func NewDeleteAction() *BombAction {
	return &BombAction{Ty: BombActionDelete, Value: &Delete{}}
}

// DecodeAction 解码 payload, 任何格式错误都是 ErrInvalidParameters
func DecodeAction(payload []byte) (*BombAction, error) {
	if len(payload) == 0 {
		return nil, errors.Wrap(ErrInvalidParameters, "empty payload")
	}
	r := types.NewLEReader(payload)
	tag := int32(r.U8())
	action := &BombAction{Ty: tag}
	switch tag {
	case BombActionCreate:
		v := &CreateGame{MaxNumber: r.U16(), OddsX100: r.U32()}
		copy(v.SplicingHash[:], r.Raw(len(v.SplicingHash)))
		v.GameLevel = r.U8()
		action.Value = v
	case BombActionParticipate:
		action.Value = &Participate{Point: r.U16()}
	case BombActionReveal:
		v := &Reveal{X: r.U16()}
		copy(v.Random[:], r.Raw(RandomSize))
		action.Value = v
	case BombActionEnd:
		action.Value = &End{}
	case BombActionDelete:
		action.Value = &Delete{}
	default:
		return nil, errors.Wrapf(ErrInvalidParameters, "unknown action %d", tag)
	}
	if err := r.Finish(); err != nil {
		return nil, errors.Wrapf(ErrInvalidParameters, "malformed payload of action %d", tag)
	}
	return action, nil
}
