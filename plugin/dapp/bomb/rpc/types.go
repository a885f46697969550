// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc bomb 插件的 jrpc 服务: 构造未签名交易以及游戏查询
package rpc

import (
	log "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/pluginmgr"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
)

var rlog = log.New("module", "bomb.rpc")

// Jrpc bomb jrpc 服务
type Jrpc struct {
	cli *channelClient
}

type channelClient struct {
	rpctypes.ChannelClient
}

// Init 注册 jrpc 服务, 服务名为执行器名
func Init(name string, s pluginmgr.RPCServer) {
	cli := &channelClient{}
	cli.Init(name, s, &Jrpc{cli: cli})
}
