// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package testnode

import (
	"testing"

	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/rpc/jsonclient"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/33cn/digitalbomb/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockNode(t *testing.T) {
	mock := New("")
	defer mock.Close()
	mock.Listen()
	assert.NotContains(t, mock.GetCfg().RPC.JrpcBindAddr, ":0")
	mock.Start()

	accs, err := mock.GetAPI().GetBalance([]address.Address{mock.GetGenesisAddress()})
	require.NoError(t, err)
	assert.Equal(t, GenesisAmount, accs[0].Balance)

	to, _ := util.Genaddress()
	result, err := mock.Transfer(to, types.Coin)
	require.NoError(t, err)
	assert.Equal(t, int32(types.ExecOk), result.Receipt.Ty)
	require.NoError(t, mock.WaitHeight(result.Height))

	jrpc, err := jsonclient.NewJSONClient(mock.GetJSONRPCAddr())
	require.NoError(t, err)
	var reply []*rpctypes.Account
	require.NoError(t, jrpc.Call("GetBalance", rpctypes.ReqBalance{Addresses: []string{to.String()}}, &reply))
	require.Len(t, reply, 1)
	assert.Equal(t, types.Coin, reply[0].Balance)
}
