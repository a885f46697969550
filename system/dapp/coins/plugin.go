// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package coins 原生币插件, 执行转账, 命令行为 coins transfer
package coins

import (
	"github.com/33cn/digitalbomb/pluginmgr"
	"github.com/33cn/digitalbomb/system/dapp/coins/executor"
	"github.com/33cn/digitalbomb/system/dapp/commands"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     "coins",
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.CoinsCmd,
	})
}
