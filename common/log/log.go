// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package log 日志: 控制台以及可轮转的文件日志, 所有模块通过 New 获取带上下文的 logger
package log

import (
	"os"
	"sync"

	"github.com/33cn/digitalbomb/types"
	log15 "github.com/inconshreveable/log15"
	colorable "github.com/mattn/go-colorable"
	isatty "github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogFile = "logs/digitalbomb.log"

var (
	mu     sync.Mutex
	rotate *lumberjack.Logger
)

// New 带上下文的 logger, 比如 New("module", "mempool")
func New(ctx ...interface{}) log15.Logger {
	return log15.Root().New(ctx...)
}

// SetLogLevel 只输出到控制台
func SetLogLevel(level string) {
	mu.Lock()
	defer mu.Unlock()
	log15.Root().SetHandler(consoleHandler(level))
}

// SetFileLog 按配置设置控制台以及文件日志, LogFile 为空时只输出到控制台
func SetFileLog(cfg *types.Log) {
	if cfg == nil {
		cfg = &types.Log{LogFile: defaultLogFile}
	}
	if cfg.LogFile == "" {
		SetLogLevel(cfg.LogConsoleLevel)
		return
	}
	// 没有配置时用 error 级别
	if cfg.Loglevel == "" {
		cfg.Loglevel = log15.LvlError.String()
	}
	if cfg.LogConsoleLevel == "" {
		cfg.LogConsoleLevel = log15.LvlError.String()
	}
	mu.Lock()
	defer mu.Unlock()
	closeRotate()
	rotate = &lumberjack.Logger{
		Filename:   cfg.LogFile,
		MaxSize:    int(cfg.MaxFileSize),
		MaxBackups: int(cfg.MaxBackups),
		MaxAge:     int(cfg.MaxAge),
		LocalTime:  cfg.LocalTime,
		Compress:   cfg.Compress,
	}
	var file log15.Handler = log15.LvlFilterHandler(getLevel(cfg.Loglevel), log15.StreamHandler(rotate, log15.LogfmtFormat()))
	if cfg.CallerFile {
		file = log15.CallerFileHandler(file)
	}
	if cfg.CallerFunction {
		file = log15.CallerFuncHandler(file)
	}
	log15.Root().SetHandler(log15.MultiHandler(consoleHandler(cfg.LogConsoleLevel), file))
}

// Close 关闭文件日志
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	return closeRotate()
}

func closeRotate() error {
	if rotate == nil {
		return nil
	}
	err := rotate.Close()
	rotate = nil
	return err
}

// 终端输出带颜色, 重定向到文件时用 logfmt
func consoleHandler(level string) log15.Handler {
	format := log15.LogfmtFormat()
	if isatty.IsTerminal(os.Stdout.Fd()) {
		format = log15.TerminalFormat()
	}
	return log15.LvlFilterHandler(getLevel(level), log15.StreamHandler(colorable.NewColorableStdout(), format))
}

// 级别写错时用 error
func getLevel(level string) log15.Lvl {
	lvl, err := log15.LvlFromString(level)
	if err != nil {
		return log15.LvlError
	}
	return lvl
}
