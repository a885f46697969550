// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "github.com/pkg/errors"

// Error 游戏错误, Code 会随错误日志一起写入收据
type Error struct {
	Code int32
	Msg  string
}

func (e *Error) Error() string {
	return e.Msg
}

var (
	// ErrInvalidParameters 参数错误: 等级不存在, payload 格式错误, 猜测越界
	ErrInvalidParameters = &Error{Code: 1, Msg: "ErrInvalidParameters"}
	// ErrInvalidAddress 游戏地址与承诺不一致
	ErrInvalidAddress = &Error{Code: 2, Msg: "ErrInvalidAddress"}
	// ErrIllegalState 状态不允许此操作
	ErrIllegalState = &Error{Code: 3, Msg: "ErrIllegalState"}
	// ErrUnauthorizedCaller 签名者或者引用账户不匹配
	ErrUnauthorizedCaller = &Error{Code: 4, Msg: "ErrUnauthorizedCaller"}
	// ErrArithmeticFault 金额计算溢出
	ErrArithmeticFault = &Error{Code: 5, Msg: "ErrArithmeticFault"}
	// ErrRecordCorrupt 游戏记录无法解码
	ErrRecordCorrupt = &Error{Code: 6, Msg: "ErrRecordCorrupt"}
)

// ErrorCode 错误码, 不是游戏错误时返回 0
func ErrorCode(err error) int32 {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return 0
}
