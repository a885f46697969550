// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// BombX 执行器名称
const BombX = "bomb"

// action 类型, 即 payload 的第一个字节
const (
	BombActionCreate = iota
	BombActionParticipate
	BombActionReveal
	BombActionEnd
	BombActionDelete
)

// log 类型
const (
	TyLogBombCreate      = 801
	TyLogBombParticipate = 802
	TyLogBombReveal      = 803
	TyLogBombEnd         = 804
	TyLogBombDelete      = 805
)

// 游戏状态, 用于本地索引
const (
	BombStatusCreated = iota + 1
	BombStatusJoined
	BombStatusRevealed
	BombStatusEnded
	BombStatusDeleted
)

// 查询方向
const (
	ListDESC = int32(0)
	ListASC  = int32(1)
)

const (
	// RecordSize 游戏记录的编码长度
	RecordSize = 89
	// RandomSize 揭晓用的随机串长度
	RandomSize = 6
	// DefaultRevealTime 默认揭晓期限, 单位秒
	DefaultRevealTime = int64(600000)
	// FeePercent 平台抽成百分比
	FeePercent = 1
	// DefaultCount 默认查询条数
	DefaultCount = int32(20)
	// MaxCount 最多查询条数
	MaxCount = int32(100)
)

var (
	// ExecerBomb bomb
	ExecerBomb = []byte(BombX)
	// InitRandom 新游戏的随机串
	InitRandom = [RandomSize]byte{'0', '0', '0', '0', '0', '0'}

	actionName = map[string]int32{
		"Create":      BombActionCreate,
		"Participate": BombActionParticipate,
		"Reveal":      BombActionReveal,
		"End":         BombActionEnd,
		"Delete":      BombActionDelete,
	}
)

// StatusName 状态名称
func StatusName(status int32) string {
	switch status {
	case BombStatusCreated:
		return "created"
	case BombStatusJoined:
		return "joined"
	case BombStatusRevealed:
		return "revealed"
	case BombStatusEnded:
		return "ended"
	case BombStatusDeleted:
		return "deleted"
	}
	return "unknown"
}
