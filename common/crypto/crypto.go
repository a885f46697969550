// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package crypto 签名算法的接口以及注册表. 交易签名中只记录算法的类型编号,
// 验签时按编号找到对应的算法
package crypto

import (
	"crypto/rand"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// PrivKey 私钥
type PrivKey interface {
	Bytes() []byte
	Sign(msg []byte) Signature
	PubKey() PubKey
	Equals(PrivKey) bool
}

// Signature 签名
type Signature interface {
	Bytes() []byte
	IsZero() bool
	String() string
	Equals(Signature) bool
}

// PubKey 公钥
type PubKey interface {
	Bytes() []byte
	KeyString() string
	VerifyBytes(msg []byte, sig Signature) bool
	Equals(PubKey) bool
}

// Crypto 一种签名算法
type Crypto interface {
	GenKey() (PrivKey, error)
	SignatureFromBytes([]byte) (Signature, error)
	PrivKeyFromBytes([]byte) (PrivKey, error)
	PubKeyFromBytes([]byte) (PubKey, error)
}

// ErrNotSupport 不支持的签名类型
var ErrNotSupport = errors.New("ErrNotSupport")

type driver struct {
	name string
	ty   int32
	c    Crypto
}

var (
	mu     sync.RWMutex
	byName = make(map[string]*driver)
	byType = make(map[int32]*driver)
)

// Register 注册签名算法, 名称和类型编号都不能重复
func Register(name string, ty int32, c Crypto) {
	if c == nil {
		panic("crypto: Register driver is nil")
	}
	mu.Lock()
	defer mu.Unlock()
	if _, dup := byName[name]; dup {
		panic("crypto: Register called twice for driver " + name)
	}
	if _, dup := byType[ty]; dup {
		panic("crypto: Register called twice for type " + name)
	}
	d := &driver{name: name, ty: ty, c: c}
	byName[name] = d
	byType[ty] = d
}

// GetName 类型编号对应的名称, 未注册时为 unknown
func GetName(ty int32) string {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := byType[ty]; ok {
		return d.name
	}
	return "unknown"
}

// GetType 名称对应的类型编号, 未注册时为 0
func GetType(name string) int32 {
	mu.RLock()
	defer mu.RUnlock()
	if d, ok := byName[name]; ok {
		return d.ty
	}
	return 0
}

// New 按名称加载
func New(name string) (Crypto, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := byName[name]
	if !ok {
		return nil, errors.Wrapf(ErrNotSupport, "crypto %s", name)
	}
	return d.c, nil
}

// Load 按签名中的类型编号加载
func Load(ty int32) (Crypto, error) {
	mu.RLock()
	defer mu.RUnlock()
	d, ok := byType[ty]
	if !ok {
		return nil, errors.Wrapf(ErrNotSupport, "crypto type %d", ty)
	}
	return d.c, nil
}

// CRandBytes 随机字节, 系统随机源不可用时 panic
func CRandBytes(numBytes int) []byte {
	b := make([]byte, numBytes)
	if _, err := io.ReadFull(rand.Reader, b); err != nil {
		panic(err)
	}
	return b
}
