// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"sync/atomic"
	"time"
)

var timeOffset int64

// SetTimeOffset 调整节点时钟, 出块时间取 Now(). 测试中用来跳过揭晓期限
func SetTimeOffset(d time.Duration) {
	atomic.StoreInt64(&timeOffset, int64(d))
}

// TimeOffset 当前的时钟偏移
func TimeOffset() time.Duration {
	return time.Duration(atomic.LoadInt64(&timeOffset))
}

// Now 加上偏移后的当前时间
func Now() time.Time {
	return time.Now().Add(TimeOffset())
}
