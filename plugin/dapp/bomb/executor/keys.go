// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"fmt"

	"github.com/33cn/digitalbomb/common/address"
	"github.com/33cn/digitalbomb/types"
)

// Key 游戏记录在 statedb 中的 key
func Key(addr address.Address) []byte {
	return []byte(types.StatePrefix + driverName + "-" + addr.String())
}

func calcGameKey(addr string) []byte {
	return []byte(fmt.Sprintf("%s%s-game-%s", types.LocalPrefix, driverName, addr))
}

func calcStatusPrefix(status int32) []byte {
	return []byte(fmt.Sprintf("%s%s-status-%d-", types.LocalPrefix, driverName, status))
}

func calcStatusKey(status int32, index int64) []byte {
	return []byte(fmt.Sprintf("%s%018d", calcStatusPrefix(status), index))
}

func calcAddrPrefix(addr string, status int32) []byte {
	return []byte(fmt.Sprintf("%s%s-addr-%s-%d-", types.LocalPrefix, driverName, addr, status))
}

func calcAddrKey(addr string, status int32, index int64) []byte {
	return []byte(fmt.Sprintf("%s%018d", calcAddrPrefix(addr, status), index))
}
