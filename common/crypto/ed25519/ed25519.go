// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package ed25519 ed25519系统加密包
package ed25519

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/33cn/digitalbomb/common/crypto"
	"golang.org/x/crypto/ed25519"
)

// const
const (
	Name = "ed25519"
	ID   = 2
)

func init() {
	crypto.Register(Name, ID, &Driver{})
}

// Driver 驱动
type Driver struct{}

// GenKey 生成私钥
func (d Driver) GenKey() (crypto.PrivKey, error) {
	return d.PrivKeyFromBytes(crypto.CRandBytes(ed25519.SeedSize))
}

// PrivKeyFromBytes 字节转为私钥, 支持 32 字节种子或 64 字节私钥
func (d Driver) PrivKeyFromBytes(b []byte) (privKey crypto.PrivKey, err error) {
	if len(b) != ed25519.SeedSize && len(b) != ed25519.PrivateKeySize {
		return nil, errors.New("invalid priv key byte")
	}
	key := ed25519.NewKeyFromSeed(b[:ed25519.SeedSize])
	var priv PrivKeyEd25519
	copy(priv[:], key)
	return priv, nil
}

// PubKeyFromBytes 字节转为公钥
func (d Driver) PubKeyFromBytes(b []byte) (pubKey crypto.PubKey, err error) {
	if len(b) != ed25519.PublicKeySize {
		return nil, errors.New("invalid pub key byte")
	}
	var pub PubKeyEd25519
	copy(pub[:], b)
	return pub, nil
}

// SignatureFromBytes 字节转为签名
func (d Driver) SignatureFromBytes(b []byte) (sig crypto.Signature, err error) {
	if len(b) != ed25519.SignatureSize {
		return nil, errors.New("invalid signature byte")
	}
	var s SignatureEd25519
	copy(s[:], b)
	return s, nil
}

// PrivKeyEd25519 PrivKey
type PrivKeyEd25519 [64]byte

// Bytes 字节格式
func (privKey PrivKeyEd25519) Bytes() []byte {
	s := make([]byte, 64)
	copy(s, privKey[:])
	return s
}

// Sign 签名
func (privKey PrivKeyEd25519) Sign(msg []byte) crypto.Signature {
	var sig SignatureEd25519
	copy(sig[:], ed25519.Sign(ed25519.PrivateKey(privKey[:]), msg))
	return sig
}

// PubKey 公钥
func (privKey PrivKeyEd25519) PubKey() crypto.PubKey {
	var pub PubKeyEd25519
	copy(pub[:], privKey[32:])
	return pub
}

// Equals 相等
func (privKey PrivKeyEd25519) Equals(other crypto.PrivKey) bool {
	if otherEd, ok := other.(PrivKeyEd25519); ok {
		return bytes.Equal(privKey[:], otherEd[:])
	}
	return false
}

// PubKeyEd25519 PubKey
type PubKeyEd25519 [32]byte

// Bytes 字节格式
func (pubKey PubKeyEd25519) Bytes() []byte {
	s := make([]byte, 32)
	copy(s, pubKey[:])
	return s
}

// VerifyBytes 验证字节
func (pubKey PubKeyEd25519) VerifyBytes(msg []byte, sig crypto.Signature) bool {
	sigEd25519, ok := sig.(SignatureEd25519)
	if !ok {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pubKey[:]), msg, sigEd25519[:])
}

// KeyString 公钥字符串格式
func (pubKey PubKeyEd25519) KeyString() string {
	return fmt.Sprintf("%X", pubKey[:])
}

// Equals 相等
func (pubKey PubKeyEd25519) Equals(other crypto.PubKey) bool {
	if otherEd, ok := other.(PubKeyEd25519); ok {
		return bytes.Equal(pubKey[:], otherEd[:])
	}
	return false
}

// SignatureEd25519 Signature
type SignatureEd25519 [64]byte

// Bytes 字节格式
func (sig SignatureEd25519) Bytes() []byte {
	s := make([]byte, 64)
	copy(s, sig[:])
	return s
}

// IsZero 是否是0
func (sig SignatureEd25519) IsZero() bool {
	return sig == SignatureEd25519{}
}

func (sig SignatureEd25519) String() string {
	return fmt.Sprintf("/%X.../", sig[:8])
}

// Equals 相等
func (sig SignatureEd25519) Equals(other crypto.Signature) bool {
	if otherEd, ok := other.(SignatureEd25519); ok {
		return bytes.Equal(sig[:], otherEd[:])
	}
	return false
}
