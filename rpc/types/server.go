// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"github.com/33cn/digitalbomb/client"
	"github.com/33cn/digitalbomb/pluginmgr"
)

// ChannelClient 插件 rpc 的公共部分, 通过节点API访问区块链
type ChannelClient struct {
	client.QueueProtocolAPI
}

// Init 注册插件的 jrpc 服务
func (c *ChannelClient) Init(name string, s pluginmgr.RPCServer, jrpc interface{}) {
	if c.QueueProtocolAPI == nil {
		c.QueueProtocolAPI = s.API()
	}
	if jrpc != nil {
		if err := s.RegisterName(name, jrpc); err != nil {
			panic(err)
		}
	}
}
