// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/binary"
)

// LEWriter 小端定长编码
type LEWriter struct {
	buf []byte
}

// NewLEWriter new
func NewLEWriter(size int) *LEWriter {
	return &LEWriter{buf: make([]byte, 0, size)}
}

// U8 u8
func (w *LEWriter) U8(v uint8) *LEWriter {
	w.buf = append(w.buf, v)
	return w
}

// U16 u16
func (w *LEWriter) U16(v uint16) *LEWriter {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
	return w
}

// U32 u32
func (w *LEWriter) U32(v uint32) *LEWriter {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
	return w
}

// U64 u64
func (w *LEWriter) U64(v uint64) *LEWriter {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
	return w
}

// I64 i64
func (w *LEWriter) I64(v int64) *LEWriter {
	return w.U64(uint64(v))
}

// Raw 原样写入
func (w *LEWriter) Raw(b []byte) *LEWriter {
	w.buf = append(w.buf, b...)
	return w
}

// Bytes 结果
func (w *LEWriter) Bytes() []byte {
	return w.buf
}

// LEReader 小端定长解码, 任何越界都会记录 ErrDecode, 之后的读取返回零值
type LEReader struct {
	data []byte
	pos  int
	err  error
}

// NewLEReader new
func NewLEReader(data []byte) *LEReader {
	return &LEReader{data: data}
}

func (r *LEReader) next(n int) []byte {
	if r.err != nil {
		return nil
	}
	if n < 0 || len(r.data)-r.pos < n {
		r.err = ErrDecode
		return nil
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b
}

// U8 u8
func (r *LEReader) U8() uint8 {
	b := r.next(1)
	if b == nil {
		return 0
	}
	return b[0]
}

// U16 u16
func (r *LEReader) U16() uint16 {
	b := r.next(2)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint16(b)
}

// U32 u32
func (r *LEReader) U32() uint32 {
	b := r.next(4)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint32(b)
}

// U64 u64
func (r *LEReader) U64() uint64 {
	b := r.next(8)
	if b == nil {
		return 0
	}
	return binary.LittleEndian.Uint64(b)
}

// I64 i64
func (r *LEReader) I64() int64 {
	return int64(r.U64())
}

// Raw 读取 n 个字节, 返回拷贝
func (r *LEReader) Raw(n int) []byte {
	b := r.next(n)
	if b == nil {
		return nil
	}
	out := make([]byte, n)
	copy(out, b)
	return out
}

// Remaining 剩余字节数
func (r *LEReader) Remaining() int {
	return len(r.data) - r.pos
}

// Err 解码过程中的错误
func (r *LEReader) Err() error {
	return r.err
}

// Finish 要求数据恰好读完
func (r *LEReader) Finish() error {
	if r.err != nil {
		return r.err
	}
	if r.pos != len(r.data) {
		return ErrDecode
	}
	return nil
}
