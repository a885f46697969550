// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

import (
	"sort"

	"github.com/33cn/digitalbomb/common/db"
	"github.com/33cn/digitalbomb/types"
)

// StateDB state db, 区块内的修改保存在 cache 中, 每笔交易的修改保存在 txcache 中
type StateDB struct {
	db      db.DB
	cache   map[string][]byte
	txcache map[string][]byte
	keys    []string
	intx    bool
}

// NewStateDB new state db
func NewStateDB(backend db.DB) *StateDB {
	return &StateDB{
		db:    backend,
		cache: make(map[string][]byte),
	}
}

// Begin 开启内存事务处理
func (s *StateDB) Begin() {
	s.intx = true
	s.keys = nil
	s.txcache = nil
}

// Rollback reset tx
func (s *StateDB) Rollback() {
	s.resetTx()
}

// Commit 提交当前交易的修改到区块 cache
func (s *StateDB) Commit() {
	for k, v := range s.txcache {
		s.cache[k] = v
	}
	s.resetTx()
}

func (s *StateDB) resetTx() {
	s.intx = false
	s.txcache = nil
	s.keys = nil
}

// Get get value from state db, 被删除的 key 返回 ErrNotFound
func (s *StateDB) Get(key []byte) ([]byte, error) {
	skey := string(key)
	if s.intx && s.txcache != nil {
		if value, ok := s.txcache[skey]; ok {
			return getvalue(value)
		}
	}
	if value, ok := s.cache[skey]; ok {
		return getvalue(value)
	}
	if s.db == nil {
		return nil, types.ErrNotFound
	}
	value, err := s.db.Get(key)
	if err != nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

func getvalue(value []byte) ([]byte, error) {
	if value == nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

// GetSetKeys  get state db set keys
func (s *StateDB) GetSetKeys() (keys []string) {
	return s.keys
}

// Set set key value to state db, value 为 nil 表示删除
func (s *StateDB) Set(key []byte, value []byte) error {
	skey := string(key)
	if s.intx {
		if s.txcache == nil {
			s.txcache = make(map[string][]byte)
		}
		s.keys = append(s.keys, skey)
		s.txcache[skey] = value
	} else {
		s.cache[skey] = value
	}
	return nil
}

// KVList 区块内所有修改, 按 key 排序
func (s *StateDB) KVList() []*types.KeyValue {
	return sortedKV(s.cache)
}

// Flush 写入底层数据库并清空 cache
func (s *StateDB) Flush(batch db.Batch) {
	flush(batch, s.cache)
	s.cache = make(map[string][]byte)
}

func sortedKV(data map[string][]byte) []*types.KeyValue {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	kvs := make([]*types.KeyValue, 0, len(keys))
	for _, k := range keys {
		kvs = append(kvs, &types.KeyValue{Key: []byte(k), Value: data[k]})
	}
	return kvs
}

func flush(batch db.Batch, data map[string][]byte) {
	for k, v := range data {
		if v == nil {
			batch.Delete([]byte(k))
			continue
		}
		batch.Set([]byte(k), v)
	}
}

// LocalDB local db for store key value in local
type LocalDB struct {
	db    db.DB
	cache map[string][]byte
	keys  []string
}

// NewLocalDB new local db
func NewLocalDB(backend db.DB) *LocalDB {
	return &LocalDB{db: backend, cache: make(map[string][]byte)}
}

// Get get value from local db
func (l *LocalDB) Get(key []byte) ([]byte, error) {
	if value, ok := l.cache[string(key)]; ok {
		return getvalue(value)
	}
	value, err := l.db.Get(key)
	if err != nil {
		return nil, types.ErrNotFound
	}
	return value, nil
}

// Set set key value to local db
func (l *LocalDB) Set(key []byte, value []byte) error {
	l.keys = append(l.keys, string(key))
	l.cache[string(key)] = value
	return nil
}

// StartTx reset local db keys
func (l *LocalDB) StartTx() {
	l.keys = nil
}

// GetSetKeys get local db set keys
func (l *LocalDB) GetSetKeys() []string {
	return l.keys
}

// List 从数据库中查询数据列表，set 中的cache 更新不会影响这个list
func (l *LocalDB) List(prefix, key []byte, count, direction int32) ([][]byte, error) {
	values := db.NewListHelper(l.db).List(prefix, key, count, direction)
	if values == nil {
		return nil, types.ErrNotFound
	}
	return values, nil
}

// KVList 区块内所有本地修改
func (l *LocalDB) KVList() []*types.KeyValue {
	return sortedKV(l.cache)
}

// Flush 写入底层数据库并清空 cache
func (l *LocalDB) Flush(batch db.Batch) {
	flush(batch, l.cache)
	l.cache = make(map[string][]byte)
	l.keys = nil
}
