// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package rpc json rpc 服务
package rpc

import (
	"net"
	"net/http"
	"net/rpc"

	"github.com/33cn/digitalbomb/client"
	log "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/pluginmgr"
	"github.com/33cn/digitalbomb/types"
	"github.com/kevinms/leakybucket-go"
	"github.com/pkg/errors"
	"golang.org/x/net/netutil"
)

var rlog = log.New("module", "rpc")

// JSONRPCServer  a json rpcserver object
type JSONRPCServer struct {
	cfg       types.RPC
	api       client.QueueProtocolAPI
	s         *rpc.Server
	l         net.Listener
	whitelist map[string]bool
	limiter   *leakybucket.Collector
}

// NewJSONRPCServer 创建 rpc 服务并注册系统以及插件的 rpc
func NewJSONRPCServer(cfg types.RPC, api client.QueueProtocolAPI) *JSONRPCServer {
	j := &JSONRPCServer{
		cfg:       cfg,
		api:       api,
		s:         rpc.NewServer(),
		whitelist: initIPWhitelist(cfg.Whitelist),
	}
	if cfg.RateLimit > 0 {
		burst := cfg.RateBurst
		if burst <= 0 {
			burst = int64(cfg.RateLimit)
		}
		j.limiter = leakybucket.NewCollector(cfg.RateLimit, burst, true)
	}
	if err := j.RegisterName("DigitalBomb", &DigitalBomb{cli: api}); err != nil {
		panic(err)
	}
	pluginmgr.AddRPC(j)
	return j
}

// RegisterName 注册 jrpc 服务
func (j *JSONRPCServer) RegisterName(name string, receiver interface{}) error {
	return j.s.RegisterName(name, receiver)
}

// API 节点API
func (j *JSONRPCServer) API() client.QueueProtocolAPI {
	return j.api
}

// Listen 监听 jrpcBindAddr, 返回实际端口
func (j *JSONRPCServer) Listen() (int, error) {
	listener, err := net.Listen("tcp", j.cfg.JrpcBindAddr)
	if err != nil {
		return 0, errors.Wrap(err, "jrpc listen")
	}
	if j.cfg.MaxConnections > 0 {
		listener = netutil.LimitListener(listener, j.cfg.MaxConnections)
	}
	j.l = listener
	go func() {
		err := http.Serve(listener, j.Handler())
		rlog.Info("jrpc serve stopped", "err", err)
	}()
	port := listener.Addr().(*net.TCPAddr).Port
	rlog.Info("jrpc listen", "addr", listener.Addr().String())
	return port, nil
}

// Close json rpcserver close
func (j *JSONRPCServer) Close() {
	if j.l != nil {
		err := j.l.Close()
		if err != nil {
			rlog.Error("JSONRPCServer close", "err", err)
		}
	}
}

func initIPWhitelist(list []string) map[string]bool {
	whitelist := make(map[string]bool)
	if len(list) == 0 {
		whitelist["127.0.0.1"] = true
		return whitelist
	}
	for _, addr := range list {
		if addr == "*" {
			addr = "0.0.0.0"
		}
		whitelist[addr] = true
	}
	return whitelist
}

func (j *JSONRPCServer) checkIPWhitelist(addr string) bool {
	//回环网络直接允许
	ip := net.ParseIP(addr)
	if ip.IsLoopback() {
		return true
	}
	if ipv4 := ip.To4(); ipv4 != nil {
		addr = ipv4.String()
	}
	return j.whitelist["0.0.0.0"] || j.whitelist[addr]
}

func (j *JSONRPCServer) checkRateLimit(ip string) bool {
	if j.limiter == nil {
		return true
	}
	return j.limiter.Add(ip, 1) > 0
}
