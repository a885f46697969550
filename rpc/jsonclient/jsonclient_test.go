// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newServer(t *testing.T, reply func(req map[string]interface{}) string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		w.Write([]byte(reply(req)))
	}))
}

func TestCall(t *testing.T) {
	var method string
	ts := newServer(t, func(req map[string]interface{}) string {
		method = req["method"].(string)
		return `{"id":"` + req["id"].(string) + `","result":{"height":3},"error":null}`
	})
	defer ts.Close()

	client, err := NewJSONClient(ts.URL)
	require.NoError(t, err)
	var res struct {
		Height int64 `json:"height"`
	}
	require.NoError(t, client.Call("GetLastHeader", nil, &res))
	assert.Equal(t, "DigitalBomb.GetLastHeader", method)
	assert.Equal(t, int64(3), res.Height)

	require.NoError(t, client.Call("bomb.CreateRawTx", nil, &res))
	assert.Equal(t, "bomb.CreateRawTx", method)
}

func TestCallError(t *testing.T) {
	ts := newServer(t, func(req map[string]interface{}) string {
		return `{"id":"` + req["id"].(string) + `","result":null,"error":"ErrNotFound"}`
	})
	defer ts.Close()
	client, err := NewJSONClient(ts.URL)
	require.NoError(t, err)
	assert.EqualError(t, client.Call("Query", nil, nil), "ErrNotFound")

	bad := newServer(t, func(req map[string]interface{}) string {
		return `{"id":"other","result":1,"error":null}`
	})
	defer bad.Close()
	client, err = NewJSONClient(bad.URL)
	require.NoError(t, err)
	assert.Error(t, client.Call("Query", nil, nil))
}

func TestRPCCtx(t *testing.T) {
	ts := newServer(t, func(req map[string]interface{}) string {
		return `{"id":"` + req["id"].(string) + `","result":2,"error":null}`
	})
	defer ts.Close()
	var res int
	ctx := NewRPCCtx(ts.URL, "GetBalance", nil, &res)
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return *res.(*int) * 10, nil
	})
	result, err := ctx.RunResult()
	require.NoError(t, err)
	assert.Equal(t, 20, result)
}

func TestRPCCtxOutput(t *testing.T) {
	ts := newServer(t, func(req map[string]interface{}) string {
		if req["method"] == "DigitalBomb.SendTransaction" {
			return `{"id":"` + req["id"].(string) + `","result":"0xabcd","error":null}`
		}
		return `{"id":"` + req["id"].(string) + `","result":null,"error":"ErrTxNotExist"}`
	})
	defer ts.Close()

	var out, errOut bytes.Buffer
	ctx := NewRPCCtx(ts.URL, "SendTransaction", nil, nil)
	ctx.Out, ctx.Err = &out, &errOut
	ctx.RunWithoutMarshal()
	assert.Equal(t, "0xabcd\n", out.String())
	assert.Empty(t, errOut.String())

	out.Reset()
	var res map[string]interface{}
	ctx = NewRPCCtx(ts.URL, "QueryTransaction", nil, &res)
	ctx.Out, ctx.Err = &out, &errOut
	ctx.Run()
	assert.Empty(t, out.String())
	assert.Contains(t, errOut.String(), "ErrTxNotExist")
}
