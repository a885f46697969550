// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/33cn/digitalbomb/types"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTxExecuted(t *testing.T) {
	ok, fail := TxCount()
	TxExecuted("bomb", "Create", true)
	TxExecuted("bomb", "Create", false)
	ok2, fail2 := TxCount()
	assert.Equal(t, ok+1, ok2)
	assert.Equal(t, fail+1, fail2)
	assert.Equal(t, float64(1), testutil.ToFloat64(txCounter.WithLabelValues("bomb", "Create", "fail")))
}

func TestHandler(t *testing.T) {
	BlockProcessed(3, 10*time.Millisecond)
	MempoolSize(2)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, "digitalbomb_blockchain_height 3"))
	assert.True(t, strings.Contains(body, "digitalbomb_mempool_size 2"))
	emit()
}

func TestStartMetrics(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	StartMetrics(ctx, types.Metrics{Enable: false})
	StartMetrics(ctx, types.Metrics{Enable: true, Duration: 1})
	cancel()
}
