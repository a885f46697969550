// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"bytes"

	"github.com/33cn/digitalbomb/types"
)

var coinsKeyPrefix = []byte(types.StatePrefix + types.CoinsX + "-")

/*
权限控制规则:
1. 执行器只能修改 mavl-<执行器>- 下面的数据
2. 所有执行器都可以通过账户模型修改 coins 的余额
*/
func isAllowKeyWrite(key, execer []byte) bool {
	if bytes.HasPrefix(key, coinsKeyPrefix) {
		return true
	}
	prefix := make([]byte, 0, len(types.StatePrefix)+len(execer)+1)
	prefix = append(prefix, types.StatePrefix...)
	prefix = append(prefix, execer...)
	prefix = append(prefix, '-')
	return bytes.HasPrefix(key, prefix) && len(key) > len(prefix)
}

// 本地数据的 key 必须以 LODB-<执行器>- 开头
func isAllowLocalKey(execer []byte, key []byte) error {
	minkeylen := len(types.LocalPrefix) + len(execer) + 1
	if len(key) <= minkeylen {
		elog.Error("isAllowLocalKey too short", "key", string(key), "exec", string(execer))
		return types.ErrNotAllowKey
	}
	if !bytes.HasPrefix(key, []byte(types.LocalPrefix)) ||
		!bytes.HasPrefix(key[len(types.LocalPrefix):], execer) ||
		key[minkeylen-1] != '-' {
		elog.Error("isAllowLocalKey prefix not match", "key", string(key), "exec", string(execer))
		return types.ErrNotAllowKey
	}
	return nil
}
