// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package cli 节点以及命令行工具的入口
package cli

import (
	"fmt"
	"os"

	"github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/pluginmgr"
	"github.com/33cn/digitalbomb/system/dapp/commands"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "digitalbomb-cli",
	Short: "digitalbomb client tools",
}

func init() {
	rootCmd.AddCommand(
		commands.AccountCmd(),
		commands.BlockCmd(),
		commands.QueryCmd(),
		commands.TxCmd(),
	)
}

// Run 命令行入口, 插件的命令(coins, bomb)在这里加入
func Run(RPCAddr string) {
	pluginmgr.AddCmd(rootCmd)
	log.SetLogLevel("error")
	rootCmd.PersistentFlags().String("rpc_laddr", RPCAddr, "http url")
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
