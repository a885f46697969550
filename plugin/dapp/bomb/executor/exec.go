// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/33cn/digitalbomb/types"
)

// Exec_Create 创建游戏
func (b *Bomb) Exec_Create(payload *bty.CreateGame, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(b, tx, index)
	return action.GameCreate(payload)
}

// Exec_Participate 加入游戏
func (b *Bomb) Exec_Participate(payload *bty.Participate, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(b, tx, index)
	return action.GameParticipate(payload)
}

// Exec_Reveal 揭晓
func (b *Bomb) Exec_Reveal(payload *bty.Reveal, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(b, tx, index)
	return action.GameReveal(payload)
}

// Exec_End 结算
func (b *Bomb) Exec_End(payload *bty.End, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(b, tx, index)
	return action.GameEnd(payload)
}

// Exec_Delete 删除
func (b *Bomb) Exec_Delete(payload *bty.Delete, tx *types.Transaction, index int) (*types.Receipt, error) {
	action := NewAction(b, tx, index)
	return action.GameDelete(payload)
}
