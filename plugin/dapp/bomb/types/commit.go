// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/types"
	"github.com/pkg/errors"
)

var gameTag = common.Sha256([]byte("game"))

// Commit 承诺值 H(H(x) || H(random)), x 按 u16 小端编码
func Commit(x uint16, random [RandomSize]byte) (commit [32]byte) {
	buf := make([]byte, 0, 64)
	buf = append(buf, common.Sha256(types.NewLEWriter(2).U16(x).Bytes())...)
	buf = append(buf, common.Sha256(random[:])...)
	copy(commit[:], common.Sha256(buf))
	return commit
}

// GameAddress 由承诺值派生出游戏地址
func GameAddress(commit [32]byte) address.Address {
	return address.Derive(gameTag, commit[:])
}

// RevealAddress 由揭晓的数字和随机串得到游戏地址
func RevealAddress(x uint16, random [RandomSize]byte) address.Address {
	return GameAddress(Commit(x, random))
}

// Sentinel 未加入游戏的记录中 player 字段的编码值, 即执行器自身地址
func Sentinel() address.Address {
	return address.ExecAddress(BombX)
}

// ParseRandom hex 格式的随机串, 正好 6 个字节, 可带 0x 前缀
func ParseRandom(s string) (random [RandomSize]byte, err error) {
	if len(s) > 1 && (s[0:2] == "0x" || s[0:2] == "0X") {
		s = s[2:]
	}
	if len(s) != 2*RandomSize {
		return random, errors.Wrapf(ErrInvalidParameters, "random must be %d bytes hex", RandomSize)
	}
	b, err := common.Hex2Bytes(s)
	if err != nil {
		return random, errors.Wrapf(ErrInvalidParameters, "random must be %d bytes hex", RandomSize)
	}
	copy(random[:], b)
	return random, nil
}

// ParseCommit hex 格式的承诺值
func ParseCommit(s string) (commit [32]byte, err error) {
	b, err := common.FromHex(s)
	if err != nil || len(b) != len(commit) {
		return commit, errors.Wrap(ErrInvalidParameters, "commit must be 32 bytes hex")
	}
	copy(commit[:], b)
	return commit, nil
}
