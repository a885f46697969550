// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package testnode 提供一个进程内的完整节点, 用于单元测试和集成测试
package testnode

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/33cn/digitalbomb/blockchain"
	"github.com/33cn/digitalbomb/client"
	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/common/crypto"
	dbm "github.com/33cn/digitalbomb/common/db"
	"github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/pluginmgr"
	"github.com/33cn/digitalbomb/rpc"
	"github.com/33cn/digitalbomb/system/consensus"
	"github.com/33cn/digitalbomb/system/mempool"
	"github.com/33cn/digitalbomb/types"
	"github.com/33cn/digitalbomb/util"
	"github.com/pkg/errors"

	// 注册系统以及插件模块
	_ "github.com/33cn/digitalbomb/plugin"
	_ "github.com/33cn/digitalbomb/system"
)

var nlog = log.New("module", "testnode")

// GenesisKey 创世账户私钥, 只用于测试
const GenesisKey = "CC38546E9E659D15E6B4893F0AB32A06D103931A8230B0BDE71459D2B27D6944"

// GenesisAmount 创世账户余额
const GenesisAmount = 1e8 * types.Coin

var cfgstring = `
title="digitalbomb-test"

[log]
loglevel = "error"
logConsoleLevel = "error"
logFile = ""

[store]
name = "test"
driver = "memdb"

[rpc]
jrpcBindAddr = "127.0.0.1:0"
whitelist = ["127.0.0.1"]

[mempool]
poolCacheSize = 10240
maxTxNumPerAccount = 100

[consensus]
name = "solo"
blockInterval = 50
maxTxNumber = 1000

[genesis]
blockTime = 1600000000

[exec.sub.bomb]
revealTime = 600
`

// DigitalBombMock 进程内节点
type DigitalBombMock struct {
	cfg     *types.Config
	db      dbm.DB
	chain   *blockchain.BlockChain
	mem     *mempool.Mempool
	cs      consensus.Module
	api     client.QueueProtocolAPI
	rpc     *rpc.JSONRPCServer
	genesis crypto.PrivKey
	cancel  context.CancelFunc
}

// GetDefaultConfig 测试用的默认配置
func GetDefaultConfig() (*types.Config, *types.ConfigSubModule) {
	cfg, sub, err := types.InitCfgString(cfgstring)
	if err != nil {
		panic(err)
	}
	return cfg, sub
}

// New cfgpath 为空时使用默认配置
func New(cfgpath string) *DigitalBombMock {
	var cfg *types.Config
	var sub *types.ConfigSubModule
	var err error
	if cfgpath == "" {
		cfg, sub = GetDefaultConfig()
	} else {
		cfg, sub, err = types.InitCfg(cfgpath)
		if err != nil {
			panic(err)
		}
	}
	return NewWithConfig(cfg, sub)
}

// NewWithConfig 按配置创建节点, 没有配置创世账户时使用 GenesisKey
func NewWithConfig(cfg *types.Config, sub *types.ConfigSubModule) *DigitalBombMock {
	log.SetFileLog(&cfg.Log)
	pluginmgr.InitExec(sub.Exec)

	genesis, err := util.PrivKeyFromHex(GenesisKey)
	if err != nil {
		panic(err)
	}
	if len(cfg.Genesis.Accounts) == 0 {
		cfg.Genesis.Accounts = []*types.GenesisAccount{
			{Addr: util.PubKeyAddress(genesis).String(), Amount: GenesisAmount},
		}
	}
	mock := &DigitalBombMock{cfg: cfg, genesis: genesis}
	mock.db, err = dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		panic(err)
	}
	mock.chain, err = blockchain.New(&cfg.Genesis, mock.db)
	if err != nil {
		panic(err)
	}
	mock.mem = mempool.New(cfg.Mempool, mock.chain)
	create, err := consensus.Load(cfg.Consensus.Name)
	if err != nil {
		panic(err)
	}
	mock.cs = create(cfg.Consensus, mock.chain, mock.mem)
	mock.api = client.New(mock.chain, mock.mem)
	mock.rpc = rpc.NewJSONRPCServer(cfg.RPC, mock.api)
	return mock
}

// Listen 启动 jrpc, 端口为 0 时回填实际端口
func (mock *DigitalBombMock) Listen() {
	port, err := mock.rpc.Listen()
	if err != nil {
		panic(err)
	}
	if strings.HasSuffix(mock.cfg.RPC.JrpcBindAddr, ":0") {
		l := len(mock.cfg.RPC.JrpcBindAddr)
		mock.cfg.RPC.JrpcBindAddr = mock.cfg.RPC.JrpcBindAddr[0:l-2] + ":" + fmt.Sprint(port)
	}
}

// Start 开始出块
func (mock *DigitalBombMock) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	mock.cancel = cancel
	go mock.cs.Run(ctx)
}

// GetAPI 节点API
func (mock *DigitalBombMock) GetAPI() client.QueueProtocolAPI {
	return mock.api
}

// GetRPC jrpc 服务
func (mock *DigitalBombMock) GetRPC() *rpc.JSONRPCServer {
	return mock.rpc
}

// GetCfg 配置
func (mock *DigitalBombMock) GetCfg() *types.Config {
	return mock.cfg
}

// GetJSONRPCAddr jrpc 的 http 地址, Listen 之后有效
func (mock *DigitalBombMock) GetJSONRPCAddr() string {
	return "http://" + mock.cfg.RPC.JrpcBindAddr
}

// GetGenesisKey 创世账户私钥
func (mock *DigitalBombMock) GetGenesisKey() crypto.PrivKey {
	return mock.genesis
}

// GetGenesisAddress 创世账户地址
func (mock *DigitalBombMock) GetGenesisAddress() address.Address {
	return util.PubKeyAddress(mock.genesis)
}

// Close 关闭所有模块
func (mock *DigitalBombMock) Close() {
	if mock.cancel != nil {
		mock.cancel()
	}
	mock.rpc.Close()
	mock.chain.Close()
	mock.db.Close()
}

// WaitHeight 等待区块高度
func (mock *DigitalBombMock) WaitHeight(height int64) error {
	for i := 0; i < 200; i++ {
		header, err := mock.api.GetLastHeader()
		if err != nil {
			return err
		}
		if header.Height >= height {
			return nil
		}
		time.Sleep(20 * time.Millisecond)
	}
	return errors.Errorf("wait height %d timeout", height)
}

// WaitTx 等待交易打包
func (mock *DigitalBombMock) WaitTx(hash []byte) (*types.TxResult, error) {
	for i := 0; i < 200; i++ {
		result, err := mock.api.QueryTx(hash)
		if err == nil {
			return result, nil
		}
		if err != types.ErrTxNotExist {
			return nil, err
		}
		time.Sleep(20 * time.Millisecond)
	}
	return nil, errors.Errorf("wait tx %x timeout", hash)
}

// SendAndWait 发送交易并等待打包
func (mock *DigitalBombMock) SendAndWait(tx *types.Transaction) (*types.TxResult, error) {
	hash, err := mock.api.SendTx(tx)
	if err != nil {
		return nil, err
	}
	nlog.Debug("SendAndWait", "hash", tx.HashHex())
	return mock.WaitTx(hash)
}

// Transfer 从创世账户转账
func (mock *DigitalBombMock) Transfer(to address.Address, amount int64) (*types.TxResult, error) {
	tx := util.CreateCoinsTx(mock.genesis, to, amount, time.Now().UnixNano())
	return mock.SendAndWait(tx)
}
