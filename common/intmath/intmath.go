// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package intmath 无符号整数的检查运算，溢出时返回错误而不是回绕
package intmath

import (
	"errors"
	"math"
	"math/bits"
)

var (
	// ErrOverflow 结果超出类型范围
	ErrOverflow = errors.New("overflow")
	// ErrUnderflow 减法结果小于 0
	ErrUnderflow = errors.New("underflow")
	// ErrDivideByZero 除数为 0
	ErrDivideByZero = errors.New("divide by zero")
)

// Add a+b
func Add(a, b uint64) (uint64, error) {
	sum, carry := bits.Add64(a, b, 0)
	if carry != 0 {
		return 0, ErrOverflow
	}
	return sum, nil
}

// Sub a-b
func Sub(a, b uint64) (uint64, error) {
	diff, borrow := bits.Sub64(a, b, 0)
	if borrow != 0 {
		return 0, ErrUnderflow
	}
	return diff, nil
}

// Mul a*b
func Mul(a, b uint64) (uint64, error) {
	hi, lo := bits.Mul64(a, b)
	if hi != 0 {
		return 0, ErrOverflow
	}
	return lo, nil
}

// MulDiv returns the quotient of `(a*b)/den` without overflow in the event that
// `a*b>=2^64`. If the quotient itself would overflow, ErrOverflow is returned.
func MulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivideByZero
	}
	hi, lo := bits.Mul64(a, b)
	if den <= hi {
		return 0, ErrOverflow
	}
	q, _ := bits.Div64(hi, lo, den)
	return q, nil
}

// Percent v*p/100 向下取整
func Percent(v, p uint64) (uint64, error) {
	return MulDiv(v, p, 100)
}

// Max 较大值
func Max(a, b uint64) uint64 {
	if a > b {
		return a
	}
	return b
}

// ToInt64 转换为 int64, 超出范围返回 ErrOverflow
func ToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, ErrOverflow
	}
	return int64(v), nil
}

// FromInt64 转换为 uint64, 负数返回 ErrUnderflow
func FromInt64(v int64) (uint64, error) {
	if v < 0 {
		return 0, ErrUnderflow
	}
	return uint64(v), nil
}
