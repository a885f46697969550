// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"strings"
	"testing"

	"github.com/33cn/digitalbomb/common"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBombCmd(t *testing.T) {
	cmd := BombCmd()
	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, name := range []string{"commit", "create", "participate", "reveal", "end", "delete", "get", "list", "params"} {
		assert.True(t, names[name], name)
	}
	create, _, err := cmd.Find([]string{"create"})
	require.NoError(t, err)
	assert.NotNil(t, create.Flags().Lookup("key"))
	assert.Equal(t, "B", create.Flags().Lookup("level").DefValue)
}

func TestParseOdds(t *testing.T) {
	odds, err := parseOdds("1.5")
	require.NoError(t, err)
	assert.Equal(t, uint32(150), odds)
	odds, err = parseOdds("20")
	require.NoError(t, err)
	assert.Equal(t, uint32(2000), odds)
	_, err = parseOdds("1.555")
	assert.Error(t, err)
	_, err = parseOdds("-1")
	assert.Error(t, err)
	_, err = parseOdds("x")
	assert.Error(t, err)
	_, err = parseOdds("100000000")
	assert.Error(t, err)
}

func TestParseStatus(t *testing.T) {
	status, err := parseStatus("joined")
	require.NoError(t, err)
	assert.Equal(t, int32(bty.BombStatusJoined), status)
	_, err = parseStatus("unknown")
	assert.Equal(t, bty.ErrInvalidParameters, err)
}

func TestGenRandom(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 16; i++ {
		r, err := genRandom()
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(r, "0x"), r)
		assert.Len(t, r, 2+2*bty.RandomSize)
		random, err := bty.ParseRandom(r)
		require.NoError(t, err)
		assert.Equal(t, r, common.ToHex(random[:]))
		seen[r] = true
	}
	assert.True(t, len(seen) > 1)
}

func TestCommit(t *testing.T) {
	cmd := BombCmd()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetArgs([]string{"commit", "-x", "4", "-r", "0xFFFE00800102"})
	require.NoError(t, cmd.Execute())

	var result struct {
		X      uint16 `json:"x"`
		Random string `json:"random"`
		Commit string `json:"commit"`
		Addr   string `json:"addr"`
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &result))
	random := [bty.RandomSize]byte{0xff, 0xfe, 0, 0x80, 1, 2}
	c := bty.Commit(4, random)
	assert.Equal(t, uint16(4), result.X)
	assert.Equal(t, "0xfffe00800102", result.Random)
	assert.Equal(t, common.ToHex(c[:]), result.Commit)
	assert.Equal(t, bty.GameAddress(c).String(), result.Addr)

	errOut := new(bytes.Buffer)
	cmd = BombCmd()
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs([]string{"commit", "-x", "4", "-r", "abcdef"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, errOut.String(), bty.ErrInvalidParameters.Error())
}

func TestGameResult(t *testing.T) {
	g := &bty.ReplyGame{
		Addr:       "game",
		Promoter:   "promoter",
		OddsX100:   150,
		Stake:      1000000,
		Balance:    150000000,
		Answer:     7,
		Random:     "0x303030303030",
		Status:     bty.BombStatusJoined,
		StatusName: "joined",
	}
	r := toGameResult(g)
	assert.Equal(t, "1.5000", r.Odds)
	assert.Equal(t, "0.0100", r.Stake)
	assert.Equal(t, "1.5000", r.Balance)
	assert.Equal(t, uint16(0), r.Answer)
	assert.Equal(t, "", r.Random)

	g.Status = bty.BombStatusEnded
	r = toGameResult(g)
	assert.Equal(t, uint16(7), r.Answer)
	assert.Equal(t, "0x303030303030", r.Random)
}
