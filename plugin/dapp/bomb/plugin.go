// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package bomb 数字炸弹插件
package bomb

import (
	"github.com/33cn/digitalbomb/plugin/dapp/bomb/commands"
	"github.com/33cn/digitalbomb/plugin/dapp/bomb/executor"
	"github.com/33cn/digitalbomb/plugin/dapp/bomb/rpc"
	"github.com/33cn/digitalbomb/pluginmgr"
)

func init() {
	pluginmgr.Register(&pluginmgr.PluginBase{
		Name:     "bomb",
		ExecName: executor.GetName(),
		Exec:     executor.Init,
		Cmd:      commands.BombCmd,
		RPC:      rpc.Init,
	})
}
