// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package blockchain

import (
	"fmt"
	"sync"

	"github.com/33cn/digitalbomb/common"
	dbm "github.com/33cn/digitalbomb/common/db"
	"github.com/33cn/digitalbomb/types"
	"github.com/golang/snappy"
	"github.com/pkg/errors"
)

var storeLog = chainlog.New("submodule", "store")

//存储 block height 对应的 block
func calcHeightToBlockKey(height int64) []byte {
	return []byte(fmt.Sprintf("%s%012d", types.BlockPrefix, height))
}

//存储 block height 对应的执行结果, snappy 压缩
func calcHeightToReceiptKey(height int64) []byte {
	return []byte(fmt.Sprintf("%s%012d", types.ReceiptPrefix, height))
}

//存储 tx hash 对应的 TxResult
func calcTxKey(hash []byte) []byte {
	return []byte(types.TxPrefix + common.ToHex(hash))
}

// BlockStore 区块存储
type BlockStore struct {
	db             dbm.DB
	lastheaderlock sync.Mutex
	lastHeader     *types.Header
}

// NewBlockStore new, 数据库为空时 LastHeader 返回 nil
func NewBlockStore(db dbm.DB) (*BlockStore, error) {
	bs := &BlockStore{db: db}
	data, err := db.Get([]byte(types.LastHeaderKey))
	if err != nil {
		storeLog.Info("load last header, may be init database")
		return bs, nil
	}
	var header types.Header
	if err := types.Decode(data, &header); err != nil {
		return nil, errors.Wrap(err, "decode last header")
	}
	bs.lastHeader = &header
	storeLog.Info("load block store", "height", header.Height, "hash", common.ToHex(header.Hash))
	return bs, nil
}

// Height 当前高度, 没有区块时返回 -1
func (bs *BlockStore) Height() int64 {
	header := bs.LastHeader()
	if header == nil {
		return -1
	}
	return header.Height
}

// LastHeader 最新的区块头
func (bs *BlockStore) LastHeader() *types.Header {
	bs.lastheaderlock.Lock()
	defer bs.lastheaderlock.Unlock()
	return bs.lastHeader
}

// SaveBlock 区块, 执行结果以及交易索引写入 batch 并提交.
// batch 中可以已经包含本区块的状态修改, 一起原子写入
func (bs *BlockStore) SaveBlock(batch dbm.Batch, detail *types.BlockDetail) error {
	block := detail.Block
	if len(detail.Receipts) != len(block.Txs) {
		return errors.Wrapf(types.ErrInvalidParam, "receipts %d txs %d", len(detail.Receipts), len(block.Txs))
	}
	header := block.GetHeader()
	batch.Set(calcHeightToBlockKey(block.Height), types.Encode(block))
	batch.Set(calcHeightToReceiptKey(block.Height), snappy.Encode(nil, types.Encode(detail.Receipts)))
	for i, tx := range block.Txs {
		result := &types.TxResult{
			Height:    block.Height,
			Index:     int32(i),
			BlockTime: block.BlockTime,
			Tx:        tx,
			Receipt:   detail.Receipts[i],
		}
		batch.Set(calcTxKey(tx.Hash()), types.Encode(result))
	}
	batch.Set([]byte(types.LastHeaderKey), types.Encode(header))
	if err := batch.Write(); err != nil {
		storeLog.Error("SaveBlock", "height", block.Height, "err", err)
		return errors.Wrap(err, "write block")
	}
	bs.lastheaderlock.Lock()
	bs.lastHeader = header
	bs.lastheaderlock.Unlock()
	storeLog.Debug("SaveBlock", "height", block.Height, "txs", len(block.Txs), "hash", common.ToHex(header.Hash))
	return nil
}

// LoadBlockByHeight 读取区块以及执行结果
func (bs *BlockStore) LoadBlockByHeight(height int64) (*types.BlockDetail, error) {
	data, err := bs.db.Get(calcHeightToBlockKey(height))
	if err != nil {
		return nil, types.ErrBlockNotFound
	}
	var block types.Block
	if err := types.Decode(data, &block); err != nil {
		return nil, err
	}
	detail := &types.BlockDetail{Block: &block}
	data, err = bs.db.Get(calcHeightToReceiptKey(height))
	if err != nil {
		return nil, types.ErrBlockNotFound
	}
	raw, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Wrap(types.ErrDecode, err.Error())
	}
	if err := types.Decode(raw, &detail.Receipts); err != nil {
		return nil, err
	}
	return detail, nil
}

// GetTx 读取交易在链上的位置以及执行结果
func (bs *BlockStore) GetTx(hash []byte) (*types.TxResult, error) {
	data, err := bs.db.Get(calcTxKey(hash))
	if err != nil {
		return nil, types.ErrTxNotExist
	}
	var result types.TxResult
	if err := types.Decode(data, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// HasTx 交易是否已经打包
func (bs *BlockStore) HasTx(hash []byte) bool {
	_, err := bs.db.Get(calcTxKey(hash))
	return err == nil
}
