// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands 系统命令行
package commands

import (
	"fmt"
	"os"

	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/rpc/jsonclient"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	commandtypes "github.com/33cn/digitalbomb/system/dapp/commands/types"
	"github.com/33cn/digitalbomb/util"
	"github.com/spf13/cobra"
)

// AccountCmd account command
func AccountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Account management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		NewKeyCmd(),
		GetBalanceCmd(),
		KeyToAddrCmd(),
	)
	return cmd
}

// NewKeyCmd 生成新的私钥
func NewKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "keygen",
		Short: "Generate a new private key",
		Run:   newKey,
	}
	return cmd
}

func newKey(cmd *cobra.Command, args []string) {
	addr, priv := util.Genaddress()
	result := &commandtypes.KeyResult{
		Addr:    addr.String(),
		PrivKey: common.ToHex(priv.Bytes()),
		PubKey:  common.ToHex(priv.PubKey().Bytes()),
	}
	util.JSONPrint(nil, result)
}

// KeyToAddrCmd 私钥对应的地址
func KeyToAddrCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addr",
		Short: "Get address of a private key",
		Run:   keyToAddr,
	}
	commandtypes.AddKeyFlag(cmd)
	return cmd
}

func keyToAddr(cmd *cobra.Command, args []string) {
	priv, err := commandtypes.GetPrivKey(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	fmt.Println(util.PubKeyAddress(priv).String())
}

// GetBalanceCmd get balance of an address
func GetBalanceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Get balance of account addresses or executors",
		Run:   balance,
	}
	addBalanceFlags(cmd)
	return cmd
}

func addBalanceFlags(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("addr", "a", nil, "account address or executor name")
	cmd.MarkFlagRequired("addr")
}

func balance(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	addrs, _ := cmd.Flags().GetStringSlice("addr")
	params := rpctypes.ReqBalance{Addresses: addrs}
	var res []*rpctypes.Account
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.GetBalance", params, &res)
	ctx.SetResultCb(parseBalance)
	ctx.Run()
}

func parseBalance(res interface{}) (interface{}, error) {
	accs := *res.(*[]*rpctypes.Account)
	result := make([]*commandtypes.AccountResult, 0, len(accs))
	for _, acc := range accs {
		result = append(result, commandtypes.DecodeAccount(acc))
	}
	return result, nil
}
