// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLECodec(t *testing.T) {
	data := NewLEWriter(0).U8(1).U16(0x0203).U32(0x04050607).U64(0x08090a0b0c0d0e0f).I64(-1).Raw([]byte("ab")).Bytes()
	assert.Equal(t, []byte{1, 0x03, 0x02, 0x07, 0x06, 0x05, 0x04}, data[:7])

	r := NewLEReader(data)
	assert.Equal(t, uint8(1), r.U8())
	assert.Equal(t, uint16(0x0203), r.U16())
	assert.Equal(t, uint32(0x04050607), r.U32())
	assert.Equal(t, uint64(0x08090a0b0c0d0e0f), r.U64())
	assert.Equal(t, int64(-1), r.I64())
	assert.Equal(t, 2, r.Remaining())
	assert.Equal(t, []byte("ab"), r.Raw(2))
	require.NoError(t, r.Finish())
}

func TestLEReaderShort(t *testing.T) {
	r := NewLEReader([]byte{1})
	assert.Equal(t, uint16(0), r.U16())
	assert.Equal(t, ErrDecode, r.Err())
	// 出错之后的读取都返回零值
	assert.Equal(t, uint8(0), r.U8())
	assert.Equal(t, ErrDecode, r.Finish())

	r = NewLEReader([]byte{1, 2})
	r.U8()
	assert.Equal(t, ErrDecode, r.Finish())
}
