// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/33cn/digitalbomb/blockchain"
	"github.com/33cn/digitalbomb/client"
	dbm "github.com/33cn/digitalbomb/common/db"
	"github.com/33cn/digitalbomb/common/limits"
	clog "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/metrics"
	"github.com/33cn/digitalbomb/pluginmgr"
	"github.com/33cn/digitalbomb/rpc"
	"github.com/33cn/digitalbomb/system/consensus"
	"github.com/33cn/digitalbomb/system/mempool"
	"github.com/33cn/digitalbomb/types"
)

// Version 版本号, 编译时通过 -ldflags 设置
var Version = "1.0.0"

var (
	configPath = flag.String("f", "digitalbomb.toml", "configfile")
	datadir    = flag.String("datadir", "", "data dir, overwrite store.dbPath")
	versionCmd = flag.Bool("v", false, "version")
)

var mainlog = clog.New("module", "main")

// RunDigitalBomb 加载各个模块, 组合成单节点的链:
// 存储 -> 执行器插件 -> 区块链 -> 交易池 -> 共识 -> rpc
func RunDigitalBomb() {
	flag.Parse()
	if *versionCmd {
		fmt.Println(Version)
		return
	}
	if err := limits.SetLimits(); err != nil {
		panic(err)
	}
	cfg, sub, err := types.InitCfg(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if *datadir != "" {
		cfg.Store.DbPath = *datadir
	}
	clog.SetFileLog(&cfg.Log)
	mainlog.Info(cfg.Title+"-app:"+Version, "config", *configPath, "cpu", runtime.NumCPU())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := run(ctx, cfg, sub); err != nil {
		mainlog.Error("run", "err", err)
		clog.Close()
		os.Exit(1)
	}
	clog.Close()
}

func run(ctx context.Context, cfg *types.Config, sub *types.ConfigSubModule) error {
	mainlog.Info("loading db", "driver", cfg.Store.Driver, "path", cfg.Store.DbPath)
	db, err := dbm.NewDB(cfg.Store.Name, cfg.Store.Driver, cfg.Store.DbPath, int(cfg.Store.DbCache))
	if err != nil {
		return err
	}
	defer db.Close()

	mainlog.Info("loading execs module")
	pluginmgr.InitExec(sub.Exec)

	mainlog.Info("loading blockchain module")
	chain, err := blockchain.New(&cfg.Genesis, db)
	if err != nil {
		return err
	}
	defer chain.Close()

	mainlog.Info("loading mempool module")
	mem := mempool.New(cfg.Mempool, chain)

	mainlog.Info("loading consensus module", "name", cfg.Consensus.Name)
	create, err := consensus.Load(cfg.Consensus.Name)
	if err != nil {
		return err
	}
	cs := create(cfg.Consensus, chain, mem)

	mainlog.Info("loading rpc module")
	server := rpc.NewJSONRPCServer(cfg.RPC, client.New(chain, mem))
	if _, err := server.Listen(); err != nil {
		return err
	}
	defer server.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	go cs.Run(ctx)
	metrics.StartMetrics(ctx, cfg.Metrics)
	go watching(ctx)

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	select {
	case s := <-sigs:
		mainlog.Info("receive signal, closing", "signal", s.String())
	case <-ctx.Done():
	}
	return nil
}

func watching(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			var m runtime.MemStats
			runtime.ReadMemStats(&m)
			mainlog.Info("info:", "NumGoroutine:", runtime.NumGoroutine(), "Mem:", m.Sys/(1024*1024), "HeapAlloc:", m.HeapAlloc/(1024*1024))
		}
	}
}
