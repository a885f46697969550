// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/digitalbomb/rpc/jsonclient"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/spf13/cobra"
)

// TxCmd transaction command
func TxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Transaction management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		QueryTxCmd(),
		SendTxCmd(),
		MempoolCmd(),
	)
	return cmd
}

// QueryTxCmd  get tx by hash
func QueryTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query transaction by hash",
		Run:   queryTx,
	}
	cmd.Flags().StringP("hash", "s", "", "transaction hash")
	cmd.MarkFlagRequired("hash")
	return cmd
}

func queryTx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	hash, _ := cmd.Flags().GetString("hash")
	var res rpctypes.TransactionDetail
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.QueryTransaction", rpctypes.QueryParm{Hash: hash}, &res)
	ctx.Run()
}

// SendTxCmd 发送签名后的交易
func SendTxCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send",
		Short: "Send a signed transaction (hex)",
		Run:   sendTx,
	}
	cmd.Flags().StringP("data", "d", "", "signed transaction")
	cmd.MarkFlagRequired("data")
	return cmd
}

func sendTx(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	data, _ := cmd.Flags().GetString("data")
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.SendTransaction", rpctypes.RawParm{Data: data}, nil)
	ctx.RunWithoutMarshal()
}

// MempoolCmd 交易池中最新的交易
func MempoolCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mempool",
		Short: "List latest transactions in mempool",
		Run:   listMempool,
	}
	return cmd
}

func listMempool(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	var res []*rpctypes.Transaction
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.GetMempool", &types.ReqNil{}, &res)
	ctx.Run()
}
