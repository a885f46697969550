// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package address 32 字节账户地址，既可以是 ed25519 公钥，也可以是由种子派生的执行器/合约地址
package address

import (
	"bytes"
	"encoding/hex"
	"errors"

	"github.com/33cn/digitalbomb/common"
	"github.com/decred/base58"
	lru "github.com/hashicorp/golang-lru"
)

// Size 地址字节长度
const Size = 32

// MaxExecNameLength 执行器名最大长度
const MaxExecNameLength = 100

const (
	version     = byte(0)
	encodedSize = 1 + Size + 4
)

var addrSeed = []byte("address seed bytes for public key")
var addressCache *lru.Cache
var checkAddressCache *lru.Cache

// ErrAddressChecksum 地址校验和错误
var ErrAddressChecksum = errors.New("Address Checksum error")

func init() {
	addressCache, _ = lru.New(10240)
	checkAddressCache, _ = lru.New(10240)
}

// Address 地址
type Address [Size]byte

// Zero 空地址
var Zero Address

// BytesToAddress 字节转换为地址, 长度必须为 32
func BytesToAddress(b []byte) (Address, error) {
	var a Address
	if len(b) != Size {
		return a, errors.New("Address length error " + hex.EncodeToString(b))
	}
	copy(a[:], b)
	return a, nil
}

// Bytes 地址字节
func (a Address) Bytes() []byte {
	return a[:]
}

// IsZero 是否为空地址
func (a Address) IsZero() bool {
	return a == Zero
}

// Equal 比较地址
func (a Address) Equal(b Address) bool {
	return bytes.Equal(a[:], b[:])
}

func (a Address) String() string {
	var ad [encodedSize]byte
	ad[0] = version
	copy(ad[1:1+Size], a[:])
	sh := common.Sha2Sum(ad[0 : 1+Size])
	copy(ad[1+Size:], sh[:4])
	return base58.Encode(ad[:])
}

// MarshalText 以 base58 字符串形式序列化
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText 解析 base58 字符串
func (a *Address) UnmarshalText(text []byte) error {
	addr, err := NewAddrFromString(string(text))
	if err != nil {
		return err
	}
	*a = addr
	return nil
}

// NewAddrFromString new 地址
func NewAddrFromString(hs string) (a Address, e error) {
	dec := base58.Decode(hs)
	if len(dec) == 0 {
		e = errors.New("Cannot decode b58 string '" + hs + "'")
		return
	}
	if len(dec) != encodedSize {
		e = errors.New("Address length error " + hex.EncodeToString(dec))
		return
	}
	sh := common.Sha2Sum(dec[0 : 1+Size])
	if !bytes.Equal(sh[:4], dec[1+Size:]) {
		e = ErrAddressChecksum
		return
	}
	copy(a[:], dec[1:1+Size])
	return
}

// CheckAddress 检查地址
func CheckAddress(addr string) (e error) {
	if value, ok := checkAddressCache.Get(addr); ok {
		if value == nil {
			return nil
		}
		return value.(error)
	}
	_, e = NewAddrFromString(addr)
	checkAddressCache.Add(addr, e)
	return
}

// Derive 由种子和若干数据派生地址: Sha2Sum(addrSeed || tag || data...)
func Derive(tag []byte, data ...[]byte) Address {
	buf := make([]byte, 0, len(addrSeed)+len(tag)+64)
	buf = append(buf, addrSeed...)
	buf = append(buf, tag...)
	for _, d := range data {
		buf = append(buf, d...)
	}
	return Address(common.Sha2Sum(buf))
}

// ExecAddress 计算量有点大，做一次cache
func ExecAddress(name string) Address {
	if value, ok := addressCache.Get(name); ok {
		return value.(Address)
	}
	if len(name) > MaxExecNameLength {
		panic("name too long")
	}
	addr := Derive([]byte(name))
	addressCache.Add(name, addr)
	return addr
}
