// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package solo

import (
	"context"
	"sync"
	"testing"
	"time"

	drivers "github.com/33cn/digitalbomb/system/consensus"
	"github.com/33cn/digitalbomb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockChain struct {
	mu     sync.Mutex
	blocks [][]*types.Transaction
}

func (c *mockChain) ProcessBlock(txs []*types.Transaction, blocktime int64) (*types.BlockDetail, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks = append(c.blocks, txs)
	return &types.BlockDetail{Block: &types.Block{Height: int64(len(c.blocks)), BlockTime: blocktime, Txs: txs}}, nil
}

func (c *mockChain) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.blocks)
}

type mockPool struct {
	mu      sync.Mutex
	txs     []*types.Transaction
	removed int
}

func (p *mockPool) GetTxList(n int) []*types.Transaction {
	p.mu.Lock()
	defer p.mu.Unlock()
	if n > len(p.txs) {
		n = len(p.txs)
	}
	out := p.txs[:n]
	p.txs = p.txs[n:]
	return out
}

func (p *mockPool) RemoveTxsOfBlock(block *types.Block) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.removed += len(block.Txs)
}

func TestCreateBlock(t *testing.T) {
	chain := &mockChain{}
	pool := &mockPool{}
	for i := 0; i < 5; i++ {
		pool.txs = append(pool.txs, types.CreateTx(types.CoinsX, nil, int64(i)))
	}
	client := New(types.Consensus{MaxTxNumber: 3}, chain, pool).(*Client)
	client.CreateBlock()
	client.CreateBlock()
	client.CreateBlock()
	require.Equal(t, 2, chain.count())
	assert.Len(t, chain.blocks[0], 3)
	assert.Len(t, chain.blocks[1], 2)
	assert.Equal(t, 5, pool.removed)
}

func TestRun(t *testing.T) {
	create, err := drivers.Load("solo")
	require.NoError(t, err)
	chain := &mockChain{}
	pool := &mockPool{txs: []*types.Transaction{types.CreateTx(types.CoinsX, nil, 1)}}
	module := create(types.Consensus{BlockInterval: 10}, chain, pool)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		module.Run(ctx)
		close(done)
	}()
	assert.Eventually(t, func() bool { return chain.count() == 1 }, time.Second, 10*time.Millisecond)
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("solo not stopped")
	}

	_, err = drivers.Load("pow")
	assert.Equal(t, types.ErrNotFound, err)
}
