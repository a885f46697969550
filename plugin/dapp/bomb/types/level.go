// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "strings"

// Level 押注等级
type Level uint8

// 等级
const (
	LevelS Level = iota
	LevelA
	LevelB
	LevelC
	LevelD
)

var stakeTable = [...]uint64{
	LevelS: 10000000000,
	LevelA: 1000000000,
	LevelB: 100000000,
	LevelC: 10000000,
	LevelD: 1000000,
}

var levelNames = [...]string{"S", "A", "B", "C", "D"}

// ParseLevel 由编码得到等级
func ParseLevel(code uint8) (Level, error) {
	if int(code) >= len(stakeTable) {
		return 0, ErrInvalidParameters
	}
	return Level(code), nil
}

// LevelFromString 由名称得到等级, 不区分大小写
func LevelFromString(s string) (Level, error) {
	for i, name := range levelNames {
		if strings.EqualFold(name, s) {
			return Level(i), nil
		}
	}
	return 0, ErrInvalidParameters
}

// Valid 是否是已知等级
func (l Level) Valid() bool {
	return int(l) < len(stakeTable)
}

// Stake 该等级的押注金额
func (l Level) Stake() (uint64, error) {
	if !l.Valid() {
		return 0, ErrInvalidParameters
	}
	return stakeTable[l], nil
}

func (l Level) String() string {
	if !l.Valid() {
		return "unknown"
	}
	return levelNames[l]
}
