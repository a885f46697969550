// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package executor

/*
数字炸弹:

庄家(promoter)先选一个数字 x 和 6 字节随机串, 以承诺值 H(H(x)||H(random)) 创建游戏,
游戏地址由承诺值派生, 创建时庄家向游戏地址预存足够的赔付资金.
玩家(player)押注固定金额并猜一个 1..max 之间的数字.
庄家在期限内揭晓 x 和随机串, 任何一方都可以结算:
- 猜中: 玩家得到 stake*odds/100 (扣除 1% 抽成), 剩余退还庄家
- 没有猜中: 庄家取回全部预存 (扣除抽成)
- 庄家超时没有揭晓: 玩家得到全部预存 (扣除抽成)
没有玩家加入之前, 庄家可以删除游戏取回预存.
*/

import (
	"github.com/33cn/digitalbomb/common/address"
	log "github.com/33cn/digitalbomb/common/log"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	drivers "github.com/33cn/digitalbomb/system/dapp"
	"github.com/33cn/digitalbomb/types"
)

var blog = log.New("module", "execs.bomb")

var driverName = bty.BombX

// 每个 action 需要引用的账户个数
var accountRefs = map[int32]int{
	bty.BombActionCreate:      3,
	bty.BombActionParticipate: 4,
	bty.BombActionReveal:      3,
	bty.BombActionEnd:         5,
	bty.BombActionDelete:      3,
}

type subConfig struct {
	RevealTime int64  `json:"revealTime"`
	Vault      string `json:"vault"`
}

type params struct {
	revealTime int64
	vault      address.Address
}

var cfg = defaultParams()

func defaultParams() params {
	return params{
		revealTime: bty.DefaultRevealTime,
		vault:      address.ExecAddress(bty.BombX + ".vault"),
	}
}

func init() {
	ety := types.LoadExecutorType(driverName)
	ety.InitFuncList(types.ListMethod(&Bomb{}))
}

// Init 注册 bomb 驱动, sub 为 [exec.sub.bomb] 配置
func Init(name string, sub []byte) {
	if name != driverName {
		panic("bomb dapp can't be rename")
	}
	cfg = parseConfig(sub)
	blog.Info("bomb init", "revealTime", cfg.revealTime, "vault", cfg.vault.String())
	drivers.Register(driverName, newBomb, 0)
}

func parseConfig(sub []byte) params {
	p := defaultParams()
	var scfg subConfig
	types.MustDecodeSub(sub, &scfg)
	if scfg.RevealTime > 0 {
		p.revealTime = scfg.RevealTime
	}
	if scfg.Vault != "" {
		vault, err := address.NewAddrFromString(scfg.Vault)
		if err != nil {
			panic("bomb vault address: " + err.Error())
		}
		p.vault = vault
	}
	return p
}

// GetName 执行器名称
func GetName() string {
	return newBomb().GetDriverName()
}

// Bomb 数字炸弹执行器
type Bomb struct {
	drivers.DriverBase
}

func newBomb() drivers.Driver {
	b := &Bomb{}
	b.SetChild(b)
	b.SetExecutorType(types.LoadExecutorType(driverName))
	return b
}

// GetDriverName 驱动名称
func (b *Bomb) GetDriverName() string {
	return driverName
}

// CheckTx 检查 payload 以及引用账户个数
func (b *Bomb) CheckTx(tx *types.Transaction, index int) error {
	action, err := bty.DecodeAction(tx.Payload)
	if err != nil {
		return err
	}
	if len(tx.Accounts) != accountRefs[action.Ty] {
		return types.ErrTxAccountRefs
	}
	return nil
}
