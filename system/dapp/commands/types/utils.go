// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"math/rand"

	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/common/crypto"
	"github.com/33cn/digitalbomb/rpc/jsonclient"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/33cn/digitalbomb/util"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

const coinExp = -8

// FormatAmountValue2Display 将传输、计算的amount值格式化成显示值
func FormatAmountValue2Display(amount int64) string {
	return decimal.New(amount, coinExp).StringFixed(4)
}

// FormatAmountDisplay2Value 将显示、输入的amount值格式化成传输、计算值, 精度最多 8 位小数
func FormatAmountDisplay2Value(amount string) (int64, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return 0, errors.Wrapf(types.ErrAmount, "amount %s", amount)
	}
	v := d.Shift(-coinExp)
	if !v.Equal(v.Truncate(0)) {
		return 0, errors.Wrapf(types.ErrAmount, "amount %s precision", amount)
	}
	if v.Sign() < 0 || v.GreaterThanOrEqual(decimal.New(types.MaxCoin, 0)) {
		return 0, errors.Wrapf(types.ErrAmount, "amount %s out of range", amount)
	}
	return v.IntPart(), nil
}

// DecodeAccount 账户的显示格式
func DecodeAccount(acc *rpctypes.Account) *AccountResult {
	return &AccountResult{
		Addr:    acc.Addr,
		Balance: FormatAmountValue2Display(acc.Balance),
		Frozen:  FormatAmountValue2Display(acc.Frozen),
	}
}

// AddKeyFlag 签名私钥
func AddKeyFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("key", "k", "", "private key of signer (hex)")
	cmd.MarkFlagRequired("key")
}

// GetPrivKey 读取 key 参数
func GetPrivKey(cmd *cobra.Command) (crypto.PrivKey, error) {
	key, _ := cmd.Flags().GetString("key")
	priv, err := util.PrivKeyFromHex(key)
	if err != nil {
		return nil, errors.Wrap(err, "invalid key")
	}
	return priv, nil
}

// CreateTx 使用 key 参数签名交易, 签名者为第 0 个引用账户
func CreateTx(cmd *cobra.Command, execer string, payload []byte, refs ...address.Address) (*types.Transaction, error) {
	priv, err := GetPrivKey(cmd)
	if err != nil {
		return nil, err
	}
	nonce := rand.New(rand.NewSource(types.Now().UnixNano())).Int63()
	return util.CreateTx(priv, execer, payload, nonce, refs...), nil
}

// SendTx 签名并发送交易, 输出交易哈希
func SendTx(cmd *cobra.Command, execer string, payload []byte, refs ...address.Address) error {
	tx, err := CreateTx(cmd, execer, payload, refs...)
	if err != nil {
		return err
	}
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	var res string
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.SendTransaction", rpctypes.RawParm{Data: tx.EncodeHex()}, &res)
	ctx.RunWithoutMarshal()
	return nil
}

// ParseAddr 地址或者执行器名称
func ParseAddr(s string) (address.Address, error) {
	addr, err := address.NewAddrFromString(s)
	if err == nil {
		return addr, nil
	}
	if len(s) == 0 || len(s) > types.MaxExecNameLen {
		return address.Zero, types.ErrInvalidAddress
	}
	return address.ExecAddress(s), nil
}
