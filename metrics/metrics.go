// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 节点运行统计. go-metrics 的数据定期输出到日志, prometheus 的数据通过 rpc 的 /metrics 暴露
package metrics

import (
	"context"
	"net/http"
	"time"

	chain33log "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/types"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	go_metrics "github.com/rcrowley/go-metrics"
)

var (
	log = chain33log.New("module", "metrics")
)

// Namespace prometheus 命名空间
var Namespace = "digitalbomb"

var (
	registry = go_metrics.NewRegistry()

	txOkCounter   = go_metrics.NewRegisteredCounter("executor.tx.ok", registry)
	txFailCounter = go_metrics.NewRegisteredCounter("executor.tx.fail", registry)
	blockTimer    = go_metrics.NewRegisteredTimer("blockchain.block.process", registry)
	mempoolGauge  = go_metrics.NewRegisteredGauge("mempool.size", registry)

	promRegistry = prometheus.NewRegistry()

	txCounter = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Subsystem: "executor",
		Name:      "tx_total",
		Help:      "executed transactions by execer, action and result",
	}, []string{"execer", "action", "result"})
	blockHistogram = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Subsystem: "blockchain",
		Name:      "block_process_seconds",
		Help:      "time spent executing one block",
		Buckets:   prometheus.DefBuckets,
	})
	heightGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "blockchain",
		Name:      "height",
		Help:      "last block height",
	})
	mempoolSize = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Subsystem: "mempool",
		Name:      "size",
		Help:      "pending transactions",
	})
)

func init() {
	promRegistry.MustRegister(txCounter, blockHistogram, heightGauge, mempoolSize)
}

// TxExecuted 记录一笔交易的执行结果
func TxExecuted(execer, action string, ok bool) {
	result := "ok"
	if ok {
		txOkCounter.Inc(1)
	} else {
		result = "fail"
		txFailCounter.Inc(1)
	}
	go_metrics.GetOrRegisterCounter("executor."+execer+"."+action, registry).Inc(1)
	txCounter.WithLabelValues(execer, action, result).Inc()
}

// BlockProcessed 记录区块执行时间
func BlockProcessed(height int64, cost time.Duration) {
	blockTimer.Update(cost)
	blockHistogram.Observe(cost.Seconds())
	heightGauge.Set(float64(height))
}

// MempoolSize 记录交易池大小
func MempoolSize(n int) {
	mempoolGauge.Update(int64(n))
	mempoolSize.Set(float64(n))
}

// TxCount 成功以及失败的交易数
func TxCount() (ok int64, fail int64) {
	return txOkCounter.Count(), txFailCounter.Count()
}

// Handler prometheus 数据
func Handler() http.Handler {
	return promhttp.HandlerFor(promRegistry, promhttp.HandlerOpts{})
}

// StartMetrics 根据配置定期把统计数据输出到日志, ctx 取消后退出
func StartMetrics(ctx context.Context, cfg types.Metrics) {
	if !cfg.Enable {
		log.Info("Metrics data is not enabled to emit")
		return
	}
	duration := time.Duration(cfg.Duration) * time.Second
	if duration <= 0 {
		duration = time.Minute
	}
	go func() {
		ticker := time.NewTicker(duration)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				emit()
			}
		}
	}()
}

func emit() {
	registry.Each(func(name string, i interface{}) {
		switch m := i.(type) {
		case go_metrics.Counter:
			log.Info("counter", "name", name, "count", m.Count())
		case go_metrics.Gauge:
			log.Info("gauge", "name", name, "value", m.Value())
		case go_metrics.Timer:
			t := m.Snapshot()
			log.Info("timer", "name", name, "count", t.Count(), "mean", time.Duration(t.Mean()),
				"p95", time.Duration(t.Percentile(0.95)), "max", time.Duration(t.Max()))
		}
	})
}
