// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package jsonclient

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Callback 对 rpc 返回值做格式转换, 比如把 int64 金额转成小数
type Callback func(res interface{}) (interface{}, error)

// RPCCtx 命令行的一次 rpc 调用, 结果输出到 Out, 错误输出到 Err
type RPCCtx struct {
	Addr   string
	Method string
	Params interface{}
	Res    interface{}
	Out    io.Writer
	Err    io.Writer
	cb     Callback
}

// NewRPCCtx 默认输出到标准输出
func NewRPCCtx(laddr, method string, params, res interface{}) *RPCCtx {
	return &RPCCtx{
		Addr:   laddr,
		Method: method,
		Params: params,
		Res:    res,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

// SetResultCb 设置结果转换
func (c *RPCCtx) SetResultCb(cb Callback) {
	c.cb = cb
}

func (c *RPCCtx) call(res interface{}) error {
	client, err := NewJSONClient(c.Addr)
	if err != nil {
		return err
	}
	return client.Call(c.Method, c.Params, res)
}

// RunResult 调用并返回转换后的结果
func (c *RPCCtx) RunResult() (interface{}, error) {
	if err := c.call(c.Res); err != nil {
		return nil, err
	}
	if c.cb == nil {
		return c.Res, nil
	}
	return c.cb(c.Res)
}

// Run 结果以缩进的 json 输出
func (c *RPCCtx) Run() {
	result, err := c.RunResult()
	if err == nil {
		var data []byte
		data, err = json.MarshalIndent(result, "", "    ")
		if err == nil {
			fmt.Fprintln(c.Out, string(data))
			return
		}
	}
	fmt.Fprintln(c.Err, err)
}

// RunWithoutMarshal 返回值是字符串(比如交易哈希), 原样输出
func (c *RPCCtx) RunWithoutMarshal() {
	var res string
	if err := c.call(&res); err != nil {
		fmt.Fprintln(c.Err, err)
		return
	}
	fmt.Fprintln(c.Out, res)
}
