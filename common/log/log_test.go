// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/33cn/digitalbomb/types"
	log15 "github.com/inconshreveable/log15"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLevel(t *testing.T) {
	assert.Equal(t, log15.LvlDebug, getLevel("debug"))
	assert.Equal(t, log15.LvlInfo, getLevel("info"))
	assert.Equal(t, log15.LvlError, getLevel("nosuchlevel"))
	assert.Equal(t, log15.LvlError, getLevel(""))
}

func TestSetFileLog(t *testing.T) {
	dir := t.TempDir()
	cfg := &types.Log{
		Loglevel:        "debug",
		LogConsoleLevel: "crit",
		LogFile:         filepath.Join(dir, "bomb.log"),
		MaxFileSize:     1,
		CallerFile:      true,
	}
	SetFileLog(cfg)
	defer func() {
		SetLogLevel("error")
		require.NoError(t, Close())
	}()

	New("module", "log.test").Debug("hello", "k", 1)
	data, err := os.ReadFile(cfg.LogFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello")
	assert.Contains(t, string(data), "module=log.test")
}

func TestSetFileLogDefaults(t *testing.T) {
	cfg := &types.Log{LogFile: filepath.Join(t.TempDir(), "bomb.log")}
	SetFileLog(cfg)
	defer SetLogLevel("error")
	assert.Equal(t, "eror", cfg.Loglevel)
	assert.Equal(t, "eror", cfg.LogConsoleLevel)
	require.NoError(t, Close())
	require.NoError(t, Close())
}
