// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package pluginmgr 插件管理: 执行器, 命令行以及 rpc 的注册入口
package pluginmgr

import (
	"github.com/33cn/digitalbomb/client"
	"github.com/spf13/cobra"
)

// RPCServer rpc 服务注册接口
type RPCServer interface {
	RegisterName(name string, receiver interface{}) error
	API() client.QueueProtocolAPI
}

// PluginBase 一个插件提供的全部入口, 不需要的入口留空.
// Name 是插件的包名, ExecName 是插件执行器名, 两者一般相同
type PluginBase struct {
	Name     string
	ExecName string
	RPC      func(name string, s RPCServer)
	Exec     func(name string, sub []byte)
	Cmd      func() *cobra.Command
}

func (p *PluginBase) initExec(sub map[string][]byte) {
	if p.Exec != nil {
		// 没有子配置时传 nil, 由执行器使用默认值
		p.Exec(p.ExecName, sub[p.ExecName])
	}
}

func (p *PluginBase) addCmd(root *cobra.Command) {
	if p.Cmd == nil {
		return
	}
	if cmd := p.Cmd(); cmd != nil {
		root.AddCommand(cmd)
	}
}

func (p *PluginBase) addRPC(s RPCServer) {
	if p.RPC != nil {
		p.RPC(p.ExecName, s)
	}
}
