// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package solo solo共识挖矿
package solo

import (
	"context"
	"time"

	log "github.com/33cn/digitalbomb/common/log"
	drivers "github.com/33cn/digitalbomb/system/consensus"
	"github.com/33cn/digitalbomb/types"
)

var slog = log.New("module", "solo")

func init() {
	drivers.Reg("solo", New)
}

//Client 客户端
type Client struct {
	chain     drivers.Chain
	pool      drivers.Pool
	maxTxNum  int
	sleepTime time.Duration
}

//New new
func New(cfg types.Consensus, chain drivers.Chain, pool drivers.Pool) drivers.Module {
	def := types.DefaultConfig().Consensus
	if cfg.BlockInterval <= 0 {
		cfg.BlockInterval = def.BlockInterval
	}
	if cfg.MaxTxNumber <= 0 {
		cfg.MaxTxNumber = def.MaxTxNumber
	}
	return &Client{
		chain:     chain,
		pool:      pool,
		maxTxNum:  cfg.MaxTxNumber,
		sleepTime: time.Duration(cfg.BlockInterval) * time.Millisecond,
	}
}

//Run 定时从交易池取交易出块, ctx 取消后退出
func (client *Client) Run(ctx context.Context) {
	ticker := time.NewTicker(client.sleepTime)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			slog.Info("consensus solo closed")
			return
		case <-ticker.C:
			client.CreateBlock()
		}
	}
}

//CreateBlock 创建区块, 交易池为空时不出块
func (client *Client) CreateBlock() {
	txs := client.pool.GetTxList(client.maxTxNum)
	if len(txs) == 0 {
		return
	}
	detail, err := client.chain.ProcessBlock(txs, types.Now().Unix())
	if err != nil {
		slog.Error("CreateBlock", "txs", len(txs), "err", err)
		return
	}
	client.pool.RemoveTxsOfBlock(detail.Block)
}
