// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package address

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddressString(t *testing.T) {
	addr := ExecAddress("coins")
	str := addr.String()
	t.Log(str)
	require.NoError(t, CheckAddress(str))

	back, err := NewAddrFromString(str)
	require.NoError(t, err)
	assert.Equal(t, addr, back)
}

func TestCheckAddressError(t *testing.T) {
	str := ExecAddress("bomb").String()
	last := str[len(str)-1]
	repl := "1"
	if last == '1' {
		repl = "2"
	}
	bad := str[:len(str)-1] + repl
	assert.Error(t, CheckAddress(bad))
	assert.Error(t, CheckAddress("0OIl"))
	assert.Error(t, CheckAddress(""))
	_, err := NewAddrFromString(strings.Repeat("1", 10))
	assert.Error(t, err)
}

func TestExecAddress(t *testing.T) {
	assert.Equal(t, ExecAddress("bomb"), ExecAddress("bomb"))
	assert.NotEqual(t, ExecAddress("bomb"), ExecAddress("coins"))
	assert.Equal(t, Derive([]byte("bomb")), ExecAddress("bomb"))
	assert.Panics(t, func() { ExecAddress(strings.Repeat("a", MaxExecNameLength+1)) })
}

func TestDerive(t *testing.T) {
	a := Derive([]byte("tag"), []byte{1, 2}, []byte{3})
	b := Derive([]byte("tag"), []byte{1, 2, 3})
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, Derive([]byte("tah"), []byte{1, 2, 3}))
	assert.False(t, a.IsZero())
	assert.True(t, Zero.IsZero())
}

func TestBytesToAddress(t *testing.T) {
	addr := ExecAddress("coins")
	back, err := BytesToAddress(addr.Bytes())
	require.NoError(t, err)
	assert.True(t, back.Equal(addr))
	_, err = BytesToAddress([]byte{1, 2, 3})
	assert.Error(t, err)
}

func TestAddressJSON(t *testing.T) {
	type holder struct {
		Addr Address `json:"addr"`
	}
	h := holder{Addr: ExecAddress("bomb")}
	data, err := json.Marshal(h)
	require.NoError(t, err)
	assert.Contains(t, string(data), h.Addr.String())

	var back holder
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, h, back)
	assert.Error(t, json.Unmarshal([]byte(`{"addr":"xyz"}`), &back))
}

func BenchmarkExecAddress(b *testing.B) {
	for i := 0; i < b.N; i++ {
		ExecAddress("bomb")
	}
}
