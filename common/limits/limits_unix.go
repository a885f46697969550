// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !windows && !plan9
// +build !windows,!plan9

// Package limits 启动时提高进程可以打开的文件数, leveldb 以及 jrpc 连接都占用文件句柄
package limits

import (
	"github.com/pkg/errors"
	"golang.org/x/sys/unix"
)

const (
	fileLimitWant = 2048
	fileLimitMin  = 1024
)

// GetLimits 当前 RLIMIT_NOFILE 的软限制和硬限制
func GetLimits() (cur, max uint64, err error) {
	var rl unix.Rlimit
	if err := unix.Getrlimit(unix.RLIMIT_NOFILE, &rl); err != nil {
		return 0, 0, errors.Wrap(err, "getrlimit")
	}
	return uint64(rl.Cur), uint64(rl.Max), nil
}

// SetLimits 软限制提高到 fileLimitWant, 不超过硬限制; 硬限制小于 fileLimitMin 时报错
func SetLimits() error {
	cur, max, err := GetLimits()
	if err != nil {
		return err
	}
	if cur >= fileLimitWant {
		return nil
	}
	if max < fileLimitMin {
		return errors.Errorf("need at least %d file descriptors, hard limit %d", fileLimitMin, max)
	}
	want := uint64(fileLimitWant)
	if max < want {
		want = max
	}
	rl := unix.Rlimit{Cur: want, Max: max}
	return errors.Wrap(unix.Setrlimit(unix.RLIMIT_NOFILE, &rl), "setrlimit")
}
