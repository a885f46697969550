// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package executor 按顺序执行区块中的交易, 每笔交易的状态修改要么全部生效, 要么全部回滚
package executor

import (
	"github.com/33cn/digitalbomb/common"
	log "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/metrics"
	drivers "github.com/33cn/digitalbomb/system/dapp"
	"github.com/33cn/digitalbomb/types"
)

var elog = log.New("module", "execs")

// Executor 一个区块的执行环境
type Executor struct {
	stateDB   *StateDB
	localDB   *LocalDB
	height    int64
	blocktime int64
	execCache map[string]drivers.Driver
}

// New 创建区块执行环境
func New(stateDB *StateDB, localDB *LocalDB, height, blocktime int64) *Executor {
	return &Executor{
		stateDB:   stateDB,
		localDB:   localDB,
		height:    height,
		blocktime: blocktime,
		execCache: make(map[string]drivers.Driver),
	}
}

func (e *Executor) setEnv(exec drivers.Driver) {
	exec.SetStateDB(e.stateDB)
	exec.SetLocalDB(e.localDB)
	exec.SetEnv(e.height, e.blocktime)
}

func (e *Executor) loadDriver(execer string) (drivers.Driver, error) {
	exec, ok := e.execCache[execer]
	if ok {
		return exec, nil
	}
	exec, err := drivers.LoadDriver(execer, e.height)
	if err != nil {
		return nil, err
	}
	e.setEnv(exec)
	e.execCache[execer] = exec
	return exec, nil
}

// CheckTx 交易的基础检查以及执行器检查, mempool 也使用这个检查
func (e *Executor) CheckTx(tx *types.Transaction, index int) error {
	if err := tx.Check(); err != nil {
		return err
	}
	exec, err := e.loadDriver(string(tx.Execer))
	if err != nil {
		return err
	}
	return exec.CheckTx(tx, index)
}

// ExecTx 执行一笔交易. 失败的交易返回 ExecErr 级别的结果, 不修改任何状态
func (e *Executor) ExecTx(tx *types.Transaction, index int) *types.ReceiptData {
	action := "unknown"
	if exec, err := e.loadDriver(string(tx.Execer)); err == nil {
		action = exec.GetActionName(tx)
	}
	receipt, err := e.execTx(tx, index)
	if err != nil {
		elog.Error("exec tx error", "err", err, "exec", string(tx.Execer), "action", action, "hash", common.ToHex(tx.Hash()))
		metrics.TxExecuted(string(tx.Execer), action, false)
		return types.NewErrReceipt(err)
	}
	metrics.TxExecuted(string(tx.Execer), action, true)
	r := &types.ReceiptData{Ty: receipt.Ty, Logs: receipt.Logs}
	if err := e.execLocalTx(tx, r, index); err != nil {
		elog.Error("exec local error", "err", err, "exec", string(tx.Execer), "action", action)
	}
	elog.Debug("exec tx", "index", index, "execer", string(tx.Execer), "action", action)
	return r
}

func (e *Executor) execTx(tx *types.Transaction, index int) (*types.Receipt, error) {
	if err := e.CheckTx(tx, index); err != nil {
		return nil, err
	}
	exec, err := e.loadDriver(string(tx.Execer))
	if err != nil {
		return nil, err
	}
	//开启内存事务处理，假设系统只有一个thread 执行
	//如果系统执行失败，回滚到这个状态
	e.stateDB.Begin()
	receipt, err := exec.Exec(tx, index)
	if err != nil {
		e.stateDB.Rollback()
		return nil, err
	}
	if receipt == nil {
		e.stateDB.Rollback()
		return nil, types.ErrActionNotSupport
	}
	//需要检查两个东西:
	//1. statedb 中 Set的 key 必须是 在 receipt.KV 这个集合中
	//2. receipt.KV 中的 key, 必须符合权限控制要求
	if err := checkKV(e.stateDB.GetSetKeys(), receipt.KV); err != nil {
		e.stateDB.Rollback()
		return nil, err
	}
	for _, kv := range receipt.KV {
		if !isAllowKeyWrite(kv.Key, tx.Execer) {
			elog.Error("err receipt key", "key", string(kv.Key), "tx.exec", string(tx.Execer))
			e.stateDB.Rollback()
			return nil, types.ErrNotAllowKey
		}
	}
	e.stateDB.Commit()
	return receipt, nil
}

func checkKV(memset []string, kvs []*types.KeyValue) error {
	keys := make(map[string]bool)
	for _, kv := range kvs {
		keys[string(kv.Key)] = true
	}
	for _, key := range memset {
		if _, ok := keys[key]; !ok {
			elog.Error("err memset key", "key", key)
			//非法的receipt，交易执行失败
			return types.ErrNotAllowMemSetKey
		}
	}
	return nil
}

func (e *Executor) execLocalTx(tx *types.Transaction, r *types.ReceiptData, index int) error {
	exec, err := e.loadDriver(string(tx.Execer))
	if err != nil {
		return err
	}
	e.localDB.StartTx()
	set, err := exec.ExecLocal(tx, r, index)
	if err != nil {
		return err
	}
	if len(e.localDB.GetSetKeys()) > 0 {
		return types.ErrNotAllowMemSetKey
	}
	if set == nil {
		return nil
	}
	for _, kv := range set.KV {
		if err := isAllowLocalKey(tx.Execer, kv.Key); err != nil {
			return err
		}
	}
	for _, kv := range set.KV {
		if err := e.localDB.Set(kv.Key, kv.Value); err != nil {
			panic(err)
		}
	}
	return nil
}

// Query 调用执行器的 Query_<funcname>
func (e *Executor) Query(execer, funcname string, params []byte) (interface{}, error) {
	exec, err := e.loadDriver(execer)
	if err != nil {
		return nil, err
	}
	return exec.Query(funcname, params)
}
