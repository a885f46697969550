// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/33cn/digitalbomb/rpc/jsonclient"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/spf13/cobra"
)

// BlockCmd block command
func BlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "block",
		Short: "Get block header or body info",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		GetLastHeaderCmd(),
		GetBlockCmd(),
	)
	return cmd
}

// GetLastHeaderCmd get information of latest header
func GetLastHeaderCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "last_header",
		Short: "View last block header",
		Run:   lastHeader,
	}
	return cmd
}

func lastHeader(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	var res rpctypes.Header
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.GetLastHeader", &types.ReqNil{}, &res)
	ctx.Run()
}

// GetBlockCmd get block by height
func GetBlockCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get block with receipts by height",
		Run:   getBlock,
	}
	cmd.Flags().Int64P("height", "t", 0, "block height")
	cmd.MarkFlagRequired("height")
	return cmd
}

func getBlock(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	height, _ := cmd.Flags().GetInt64("height")
	var res rpctypes.BlockDetail
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.GetBlock", rpctypes.BlockParam{Height: height}, &res)
	ctx.Run()
}

// QueryCmd 执行器查询
func QueryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Query executor",
		Run:   query,
	}
	cmd.Flags().StringP("exec", "e", "", "executor name")
	cmd.MarkFlagRequired("exec")
	cmd.Flags().StringP("funcname", "f", "", "query function name")
	cmd.MarkFlagRequired("funcname")
	cmd.Flags().StringP("payload", "p", "{}", "query payload (json)")
	return cmd
}

func query(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	exec, _ := cmd.Flags().GetString("exec")
	funcname, _ := cmd.Flags().GetString("funcname")
	payload, _ := cmd.Flags().GetString("payload")
	if !json.Valid([]byte(payload)) {
		fmt.Fprintln(os.Stderr, types.ErrInvalidParam)
		return
	}
	params := rpctypes.Query4Jrpc{Execer: exec, FuncName: funcname, Payload: json.RawMessage(payload)}
	var res interface{}
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.Query", params, &res)
	ctx.Run()
}
