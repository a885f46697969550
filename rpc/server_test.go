// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package rpc

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/33cn/digitalbomb/blockchain"
	"github.com/33cn/digitalbomb/client"
	dbm "github.com/33cn/digitalbomb/common/db"
	"github.com/33cn/digitalbomb/rpc/jsonclient"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	"github.com/33cn/digitalbomb/system/mempool"
	cexec "github.com/33cn/digitalbomb/system/dapp/coins/executor"
	cty "github.com/33cn/digitalbomb/system/dapp/coins/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/33cn/digitalbomb/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cexec.Init(types.CoinsX, nil)
	os.Exit(m.Run())
}

func TestJSONRPC(t *testing.T) {
	db, err := dbm.NewDB("test", dbm.MemDBBackendStr, "", 0)
	require.NoError(t, err)
	addr, priv := util.Genaddress()
	chain, err := blockchain.New(&types.Genesis{
		BlockTime: 1600000000,
		Accounts:  []*types.GenesisAccount{{Addr: addr.String(), Amount: 10 * types.Coin}},
	}, db)
	require.NoError(t, err)
	pool := mempool.New(types.Mempool{}, chain)
	server := NewJSONRPCServer(types.RPC{}, client.New(chain, pool))
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()
	jrpc, err := jsonclient.NewJSONClient(ts.URL)
	require.NoError(t, err)

	to, _ := util.Genaddress()
	tx := util.CreateCoinsTx(priv, to, types.Coin, 1)
	var hash string
	require.NoError(t, jrpc.Call("SendTransaction", rpctypes.RawParm{Data: tx.EncodeHex()}, &hash))
	assert.Equal(t, tx.HashHex(), hash)
	err = jrpc.Call("SendTransaction", rpctypes.RawParm{Data: tx.EncodeHex()}, &hash)
	assert.EqualError(t, err, types.ErrTxExist.Error())
	err = jrpc.Call("SendTransaction", rpctypes.RawParm{Data: "0x01"}, &hash)
	assert.Error(t, err)

	var txs []*rpctypes.Transaction
	require.NoError(t, jrpc.Call("GetMempool", &types.ReqNil{}, &txs))
	require.Len(t, txs, 1)
	assert.Equal(t, "Transfer", txs[0].ActionName)

	detail, err := chain.ProcessBlock(pool.GetTxList(10), 1600000001)
	require.NoError(t, err)
	pool.RemoveTxsOfBlock(detail.Block)

	var txd rpctypes.TransactionDetail
	require.NoError(t, jrpc.Call("QueryTransaction", rpctypes.QueryParm{Hash: hash}, &txd))
	assert.Equal(t, int64(1), txd.Height)
	assert.Equal(t, "ExecOk", txd.Receipt.TyName)
	assert.Equal(t, "LogTransfer", txd.Receipt.Logs[0].TyName)
	err = jrpc.Call("QueryTransaction", rpctypes.QueryParm{Hash: "0x00"}, &txd)
	assert.EqualError(t, err, types.ErrTxNotExist.Error())

	var header rpctypes.Header
	require.NoError(t, jrpc.Call("GetLastHeader", &types.ReqNil{}, &header))
	assert.Equal(t, int64(1), header.Height)
	assert.Equal(t, int64(1600000001), header.BlockTime)

	var block rpctypes.BlockDetail
	require.NoError(t, jrpc.Call("GetBlock", rpctypes.BlockParam{Height: 1}, &block))
	assert.Len(t, block.Txs, 1)
	assert.Len(t, block.Receipts, 1)

	var accs []*rpctypes.Account
	require.NoError(t, jrpc.Call("GetBalance", rpctypes.ReqBalance{Addresses: []string{addr.String(), to.String(), "coins"}}, &accs))
	require.Len(t, accs, 3)
	assert.Equal(t, 9*types.Coin, accs[0].Balance)
	assert.Equal(t, types.Coin, accs[1].Balance)
	assert.Equal(t, "coins", accs[2].Addr)

	payload, err := json.Marshal(&cty.ReqAddr{Addr: to.String()})
	require.NoError(t, err)
	var infos cty.ReplyTxInfos
	require.NoError(t, jrpc.Call("Query", rpctypes.Query4Jrpc{Execer: "coins", FuncName: "GetTxsByAddr", Payload: payload}, &infos))
	require.Len(t, infos.TxInfos, 1)
	assert.Equal(t, int32(2), infos.TxInfos[0].Flag)
}

func TestHTTP(t *testing.T) {
	server := NewJSONRPCServer(types.RPC{EnableCORS: true}, nil)
	ts := httptest.NewServer(server.Handler())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Post(ts.URL+"/nothing", "application/json", strings.NewReader("{}"))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestFilter(t *testing.T) {
	server := NewJSONRPCServer(types.RPC{Whitelist: []string{"192.168.1.2"}, RateLimit: 1, RateBurst: 2}, nil)
	assert.True(t, server.checkIPWhitelist("127.0.0.1"))
	assert.True(t, server.checkIPWhitelist("::1"))
	assert.True(t, server.checkIPWhitelist("192.168.1.2"))
	assert.False(t, server.checkIPWhitelist("192.168.1.3"))

	all := NewJSONRPCServer(types.RPC{Whitelist: []string{"*"}}, nil)
	assert.True(t, all.checkIPWhitelist("10.0.0.1"))
	assert.True(t, all.checkRateLimit("10.0.0.1"))

	assert.True(t, server.checkRateLimit("192.168.1.2"))
	assert.True(t, server.checkRateLimit("192.168.1.2"))
	assert.False(t, server.checkRateLimit("192.168.1.2"))
	assert.True(t, server.checkRateLimit("192.168.1.3"))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}"))
	req.RemoteAddr = "192.168.1.3:1000"
	server.Handler().ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestListen(t *testing.T) {
	server := NewJSONRPCServer(types.RPC{JrpcBindAddr: "localhost:0", MaxConnections: 10}, nil)
	port, err := server.Listen()
	require.NoError(t, err)
	assert.NotZero(t, port)
	server.Close()
}
