// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/hex"

	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/common/crypto"
	// 注册默认的签名算法
	_ "github.com/33cn/digitalbomb/common/crypto/ed25519"
)

// Signature 签名
type Signature struct {
	Ty        int32  `json:"ty"`
	Pubkey    []byte `json:"pubkey"`
	Signature []byte `json:"signature"`
}

// Transaction 交易. Accounts 为按顺序引用的账户, 具体含义由执行器的每个 action 约定,
// 第 0 个账户总是签名者
type Transaction struct {
	Execer    []byte            `json:"execer"`
	Payload   []byte            `json:"payload"`
	Accounts  []address.Address `json:"accounts"`
	Nonce     int64             `json:"nonce"`
	Signature *Signature        `json:"signature,omitempty"`
}

// Encode 交易的二进制编码
func (tx *Transaction) Encode() []byte {
	w := NewLEWriter(64 + len(tx.Payload) + len(tx.Accounts)*address.Size + 128)
	w.U8(uint8(len(tx.Execer))).Raw(tx.Execer)
	w.U32(uint32(len(tx.Payload))).Raw(tx.Payload)
	w.U8(uint8(len(tx.Accounts)))
	for _, acc := range tx.Accounts {
		w.Raw(acc[:])
	}
	w.I64(tx.Nonce)
	if tx.Signature == nil {
		w.U8(0)
		return w.Bytes()
	}
	w.U8(1)
	w.U32(uint32(tx.Signature.Ty))
	w.U16(uint16(len(tx.Signature.Pubkey))).Raw(tx.Signature.Pubkey)
	w.U16(uint16(len(tx.Signature.Signature))).Raw(tx.Signature.Signature)
	return w.Bytes()
}

// DecodeTx 解码交易
func DecodeTx(data []byte) (*Transaction, error) {
	if len(data) > MaxTxSize {
		return nil, ErrTxMsgSizeTooBig
	}
	r := NewLEReader(data)
	tx := &Transaction{}
	tx.Execer = r.Raw(int(r.U8()))
	tx.Payload = r.Raw(int(r.U32()))
	n := int(r.U8())
	if n > MaxTxAccounts {
		return nil, ErrTxAccountRefs
	}
	for i := 0; i < n; i++ {
		var acc address.Address
		copy(acc[:], r.Raw(address.Size))
		tx.Accounts = append(tx.Accounts, acc)
	}
	tx.Nonce = r.I64()
	if r.U8() == 1 {
		sig := &Signature{}
		sig.Ty = int32(r.U32())
		sig.Pubkey = r.Raw(int(r.U16()))
		sig.Signature = r.Raw(int(r.U16()))
		tx.Signature = sig
	}
	if err := r.Finish(); err != nil {
		return nil, err
	}
	return tx, nil
}

// Hash 不包含签名部分的交易哈希
func (tx *Transaction) Hash() []byte {
	copytx := *tx
	copytx.Signature = nil
	return common.Sha256(copytx.Encode())
}

// HashHex 交易哈希的 hex 格式
func (tx *Transaction) HashHex() string {
	return common.ToHex(tx.Hash())
}

// Size 交易大小
func (tx *Transaction) Size() int {
	return len(tx.Encode())
}

// Sign 交易签名
func (tx *Transaction) Sign(ty int32, priv crypto.PrivKey) {
	tx.Signature = nil
	data := tx.Encode()
	pub := priv.PubKey()
	sign := priv.Sign(data)
	tx.Signature = &Signature{
		Ty:        ty,
		Pubkey:    pub.Bytes(),
		Signature: sign.Bytes(),
	}
}

// CheckSign 检查签名, 并且要求签名者就是第 0 个引用账户
func (tx *Transaction) CheckSign() bool {
	if tx.Signature == nil {
		return false
	}
	if len(tx.Accounts) == 0 {
		return false
	}
	from, err := address.BytesToAddress(tx.Signature.Pubkey)
	if err != nil || from != tx.Accounts[0] {
		return false
	}
	c, err := crypto.Load(tx.Signature.Ty)
	if err != nil {
		return false
	}
	pub, err := c.PubKeyFromBytes(tx.Signature.Pubkey)
	if err != nil {
		return false
	}
	signbytes, err := c.SignatureFromBytes(tx.Signature.Signature)
	if err != nil {
		return false
	}
	copytx := *tx
	copytx.Signature = nil
	return pub.VerifyBytes(copytx.Encode(), signbytes)
}

// Check 交易的基础格式检查
func (tx *Transaction) Check() error {
	if len(tx.Execer) == 0 || len(tx.Execer) > MaxExecNameLen {
		return ErrExecNameNotAllow
	}
	if len(tx.Accounts) == 0 || len(tx.Accounts) > MaxTxAccounts {
		return ErrTxAccountRefs
	}
	if tx.Size() > MaxTxSize {
		return ErrTxMsgSizeTooBig
	}
	if tx.Signature == nil {
		return ErrNoSignature
	}
	if !tx.CheckSign() {
		return ErrSign
	}
	return nil
}

// From 交易的发起者
func (tx *Transaction) From() address.Address {
	if len(tx.Accounts) == 0 {
		return address.Zero
	}
	return tx.Accounts[0]
}

// Account 第 i 个引用账户
func (tx *Transaction) Account(i int) (address.Address, error) {
	if i < 0 || i >= len(tx.Accounts) {
		return address.Zero, ErrTxAccountRefs
	}
	return tx.Accounts[i], nil
}

// EncodeHex 交易编码为 hex, 用于 rpc 传输
func (tx *Transaction) EncodeHex() string {
	return hex.EncodeToString(tx.Encode())
}

// DecodeTxHex hex 解码交易
func DecodeTxHex(data string) (*Transaction, error) {
	b, err := common.FromHex(data)
	if err != nil {
		return nil, ErrDecode
	}
	return DecodeTx(b)
}

// CreateTx 构造未签名交易
func CreateTx(execer string, payload []byte, nonce int64, accounts ...address.Address) *Transaction {
	return &Transaction{
		Execer:   []byte(execer),
		Payload:  payload,
		Accounts: accounts,
		Nonce:    nonce,
	}
}
