// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package account 实现链上资产操作

 1. load from db
 2. save to db
 3. KVSet
 4. Transfer
 5. Account balance query
*/
package account

import (
	"fmt"
	"strings"

	"github.com/33cn/digitalbomb/common/address"
	dbm "github.com/33cn/digitalbomb/common/db"
	log "github.com/33cn/digitalbomb/common/log"
	"github.com/33cn/digitalbomb/types"
)

var alog = log.New("module", "account")

// DB for account
type DB struct {
	db               dbm.KV
	accountKeyPerfix []byte
	execer           string
	symbol           string
}

// NewCoinsAccount 原生币账户, 所有余额都保存在 mavl-coins-bty- 下
func NewCoinsAccount(db dbm.KV) *DB {
	acc := newAccountDB(SymbolPrefix(types.CoinsX, types.CoinSymbol))
	acc.execer = types.CoinsX
	acc.symbol = types.CoinSymbol
	acc.SetDB(db)
	return acc
}

// NewAccountDB 其他资产的账户
func NewAccountDB(execer string, symbol string, db dbm.KV) (*DB, error) {
	//如果execer 和  symbol 中存在 "-", 那么创建失败
	if strings.ContainsRune(execer, '-') || strings.ContainsRune(symbol, '-') {
		return nil, types.ErrExecNameNotAllow
	}
	accDB := newAccountDB(SymbolPrefix(execer, symbol))
	accDB.execer = execer
	accDB.symbol = symbol
	accDB.SetDB(db)
	return accDB, nil
}

func newAccountDB(prefix string) *DB {
	acc := &DB{}
	acc.accountKeyPerfix = []byte(prefix)
	return acc
}

// SetDB 设置状态数据库
func (acc *DB) SetDB(db dbm.KV) *DB {
	acc.db = db
	return acc
}

// LoadAccount 加载账户, 不存在时返回零余额账户
func (acc *DB) LoadAccount(addr address.Address) *types.Account {
	value, err := acc.db.Get(acc.AccountKey(addr))
	if err != nil {
		return &types.Account{Addr: addr.String()}
	}
	var acc1 types.Account
	err = types.Decode(value, &acc1)
	if err != nil {
		panic(err) //数据库已经损坏
	}
	return &acc1
}

// LoadAccounts 批量加载账户
func (acc *DB) LoadAccounts(addrs []address.Address) []*types.Account {
	accs := make([]*types.Account, 0, len(addrs))
	for _, addr := range addrs {
		accs = append(accs, acc.LoadAccount(addr))
	}
	return accs
}

// CheckTransfer 检查转账是否可以执行
func (acc *DB) CheckTransfer(from, to address.Address, amount int64) error {
	if !types.CheckAmount(amount) {
		return types.ErrAmount
	}
	if from == to {
		return types.ErrSendSameToRecv
	}
	accFrom := acc.LoadAccount(from)
	if accFrom.Balance-amount < 0 {
		return types.ErrNoBalance
	}
	return nil
}

// Transfer 转账, 返回的收据中包含双方变化前后的账户
func (acc *DB) Transfer(from, to address.Address, amount int64) (*types.Receipt, error) {
	if err := acc.CheckTransfer(from, to, amount); err != nil {
		return nil, err
	}
	accFrom := acc.LoadAccount(from)
	accTo := acc.LoadAccount(to)
	copyfrom := *accFrom
	copyto := *accTo

	balance, err := safeAdd(accTo.Balance, amount)
	if err != nil {
		return nil, err
	}
	accFrom.Balance -= amount
	accTo.Balance = balance

	receiptBalanceFrom := &types.ReceiptAccountTransfer{
		Prev:    &copyfrom,
		Current: accFrom,
	}
	receiptBalanceTo := &types.ReceiptAccountTransfer{
		Prev:    &copyto,
		Current: accTo,
	}

	acc.SaveAccount(accFrom)
	acc.SaveAccount(accTo)
	alog.Debug("Transfer", "from", accFrom.Addr, "to", accTo.Addr, "amount", amount)
	return acc.transferReceipt(accFrom, accTo, receiptBalanceFrom, receiptBalanceTo), nil
}

func (acc *DB) transferReceipt(accFrom, accTo *types.Account, receiptFrom, receiptTo *types.ReceiptAccountTransfer) *types.Receipt {
	ty := int32(types.TyLogTransfer)
	log1 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptFrom),
	}
	log2 := &types.ReceiptLog{
		Ty:  ty,
		Log: types.Encode(receiptTo),
	}
	kv := acc.GetKVSet(accFrom)
	kv = append(kv, acc.GetKVSet(accTo)...)
	return &types.Receipt{
		Ty:   types.ExecOk,
		KV:   kv,
		Logs: []*types.ReceiptLog{log1, log2},
	}
}

// SaveAccount 保存账户
func (acc *DB) SaveAccount(acc1 *types.Account) {
	set := acc.GetKVSet(acc1)
	for i := 0; i < len(set); i++ {
		err := acc.db.Set(set[i].Key, set[i].Value)
		if err != nil {
			panic(err)
		}
	}
}

// GetKVSet 账户对应的 kv
func (acc *DB) GetKVSet(acc1 *types.Account) (kvset []*types.KeyValue) {
	value := types.Encode(acc1)
	kvset = append(kvset, &types.KeyValue{
		Key:   acc.accountKeyString(acc1.Addr),
		Value: value,
	})
	return kvset
}

// AccountKey return the key of address in DB
func (acc *DB) AccountKey(addr address.Address) []byte {
	return acc.accountKeyString(addr.String())
}

func (acc *DB) accountKeyString(addr string) (key []byte) {
	key = append(key, acc.accountKeyPerfix...)
	key = append(key, []byte(addr)...)
	return key
}

// SymbolPrefix 资产账户的 key 前缀
func SymbolPrefix(execer string, symbol string) string {
	return fmt.Sprintf("%s%s-%s-", types.StatePrefix, execer, symbol)
}
