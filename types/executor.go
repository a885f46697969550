// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"reflect"
	"sync"
)

// ExecutorAction 解码后的 action, 类似 oneof: GetTy 返回 action 类型, GetValue 返回具体参数
type ExecutorAction interface {
	GetTy() int32
	GetValue() interface{}
}

// ExecutorType 执行器的类型信息, 负责 payload 以及日志的编解码
type ExecutorType interface {
	GetName() string
	GetTypeMap() map[string]int32
	GetLogMap() map[int32]*LogInfo
	DecodePayload(tx *Transaction) (ExecutorAction, error)
	DecodePayloadValue(tx *Transaction) (string, reflect.Value, error)
	ActionName(tx *Transaction) string
	InitFuncList(list map[string]reflect.Method)
	GetExecFuncMap() map[string]reflect.Method
	DecodeReceiptLog(ty int32, data []byte) (interface{}, error)
}

// LogInfo 日志类型信息
type LogInfo struct {
	Ty   reflect.Type
	Name string
}

// SystemLog 系统日志, 所有执行器都可以产生
var SystemLog = map[int32]*LogInfo{
	TyLogErr:      {Ty: nil, Name: "LogErr"},
	TyLogTransfer: {Ty: reflect.TypeOf(ReceiptAccountTransfer{}), Name: "LogTransfer"},
	TyLogGenesis:  {Ty: reflect.TypeOf(ReceiptAccountTransfer{}), Name: "LogGenesis"},
}

var (
	executorMap = map[string]ExecutorType{}
	executorMu  sync.RWMutex
)

// RegistorExecutor 注册执行器类型
func RegistorExecutor(exec string, util ExecutorType) {
	executorMu.Lock()
	defer executorMu.Unlock()
	if _, exist := executorMap[exec]; exist {
		panic("DupExecutorType " + exec)
	}
	executorMap[exec] = util
}

// LoadExecutorType 加载执行器类型
func LoadExecutorType(exec string) ExecutorType {
	executorMu.RLock()
	defer executorMu.RUnlock()
	if ety, exist := executorMap[exec]; exist {
		return ety
	}
	return nil
}

// ExecTypeBase 执行器类型的公共实现, 子类型只需实现 GetName/GetTypeMap/GetLogMap/DecodePayload
type ExecTypeBase struct {
	child        ExecutorType
	execFuncList map[string]reflect.Method
	actionNames  map[int32]string
}

// SetChild 设置子类型
func (base *ExecTypeBase) SetChild(child ExecutorType) {
	base.child = child
	base.actionNames = make(map[int32]string)
	for name, ty := range child.GetTypeMap() {
		base.actionNames[ty] = name
	}
}

// InitFuncList 执行器的方法列表
func (base *ExecTypeBase) InitFuncList(list map[string]reflect.Method) {
	base.execFuncList = list
}

// GetExecFuncMap 执行器的方法列表
func (base *ExecTypeBase) GetExecFuncMap() map[string]reflect.Method {
	return base.execFuncList
}

// DecodePayloadValue 返回 action 名称以及参数
func (base *ExecTypeBase) DecodePayloadValue(tx *Transaction) (string, reflect.Value, error) {
	action, err := base.child.DecodePayload(tx)
	if err != nil {
		return "", reflect.ValueOf(nil), err
	}
	name, ok := base.actionNames[action.GetTy()]
	if !ok {
		return "", reflect.ValueOf(nil), ErrActionNotSupport
	}
	value := action.GetValue()
	if value == nil {
		return "", reflect.ValueOf(nil), ErrActionNotSupport
	}
	return name, reflect.ValueOf(value), nil
}

// ActionName 交易的 action 名称
func (base *ExecTypeBase) ActionName(tx *Transaction) string {
	action, err := base.child.DecodePayload(tx)
	if err != nil {
		return "unknown"
	}
	if name, ok := base.actionNames[action.GetTy()]; ok {
		return name
	}
	return "unknown"
}

// DecodeReceiptLog 解码日志, 用于 rpc 展示
func (base *ExecTypeBase) DecodeReceiptLog(ty int32, data []byte) (interface{}, error) {
	info, ok := SystemLog[ty]
	if !ok {
		info, ok = base.child.GetLogMap()[ty]
	}
	if !ok {
		return nil, ErrNotFound
	}
	if info.Ty == nil {
		return string(data), nil
	}
	msg := reflect.New(info.Ty).Interface()
	if err := Decode(data, msg); err != nil {
		return nil, err
	}
	return msg, nil
}

// GetLogName 日志名称
func GetLogName(ety ExecutorType, ty int32) string {
	if info, ok := SystemLog[ty]; ok {
		return info.Name
	}
	if ety != nil {
		if info, ok := ety.GetLogMap()[ty]; ok {
			return info.Name
		}
	}
	return "LogReserved"
}
