// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands bomb 命令行
package commands

import (
	"crypto/rand"
	"fmt"
	"os"

	"github.com/33cn/digitalbomb/common"
	"github.com/33cn/digitalbomb/common/crypto/ed25519"
	bty "github.com/33cn/digitalbomb/plugin/dapp/bomb/types"
	"github.com/33cn/digitalbomb/rpc/jsonclient"
	rpctypes "github.com/33cn/digitalbomb/rpc/types"
	commandtypes "github.com/33cn/digitalbomb/system/dapp/commands/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/33cn/digitalbomb/util"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// BombCmd bomb command
func BombCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bomb",
		Short: "Digital bomb game management",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		CommitCmd(),
		CreateCmd(),
		ParticipateCmd(),
		RevealCmd(),
		EndCmd(),
		DeleteCmd(),
		GetGameCmd(),
		ListGamesCmd(),
		ParamsCmd(),
	)
	return cmd
}

// CommitCmd 本地计算承诺值
func CommitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "commit",
		Short: "Compute commit and game address of a secret number",
		Run:   commit,
	}
	cmd.Flags().Uint16P("x", "x", 0, "secret number")
	cmd.MarkFlagRequired("x")
	cmd.Flags().StringP("random", "r", "", "6 bytes random in hex, generated if empty")
	return cmd
}

func genRandom() (string, error) {
	buf := make([]byte, bty.RandomSize)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return common.ToHex(buf), nil
}

func commit(cmd *cobra.Command, args []string) {
	x, _ := cmd.Flags().GetUint16("x")
	randomStr, _ := cmd.Flags().GetString("random")
	if randomStr == "" {
		var err error
		randomStr, err = genRandom()
		if err != nil {
			fmt.Fprintln(cmd.ErrOrStderr(), err)
			return
		}
	}
	random, err := bty.ParseRandom(randomStr)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	c := bty.Commit(x, random)
	result := struct {
		X      uint16 `json:"x"`
		Random string `json:"random"`
		Commit string `json:"commit"`
		Addr   string `json:"addr"`
	}{x, common.ToHex(random[:]), common.ToHex(c[:]), bty.GameAddress(c).String()}
	data, err := json.MarshalIndent(result, "", "    ")
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
}

// CreateCmd 创建游戏
func CreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a game with a commit, prefund is locked in game address",
		Run:   create,
	}
	cmd.Flags().Uint16P("max", "m", 0, "max number players can guess")
	cmd.MarkFlagRequired("max")
	cmd.Flags().StringP("odds", "o", "", "odds, 2 decimal places at most (e.g. 1.5)")
	cmd.MarkFlagRequired("odds")
	cmd.Flags().StringP("commit", "c", "", "commit hex, see bomb commit")
	cmd.MarkFlagRequired("commit")
	cmd.Flags().StringP("level", "l", "B", "stake level: S/A/B/C/D")
	commandtypes.AddKeyFlag(cmd)
	return cmd
}

func parseOdds(s string) (uint32, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, errors.Wrapf(bty.ErrInvalidParameters, "odds %s", s)
	}
	v := d.Shift(2)
	if !v.Equal(v.Truncate(0)) || v.Sign() < 0 || v.GreaterThan(decimal.New(int64(^uint32(0)), 0)) {
		return 0, errors.Wrapf(bty.ErrInvalidParameters, "odds %s", s)
	}
	return uint32(v.IntPart()), nil
}

func create(cmd *cobra.Command, args []string) {
	max, _ := cmd.Flags().GetUint16("max")
	oddsStr, _ := cmd.Flags().GetString("odds")
	commitStr, _ := cmd.Flags().GetString("commit")
	level, _ := cmd.Flags().GetString("level")
	odds, err := parseOdds(oddsStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendTx(cmd, &bty.ReqCreateTx{
		Action:    "create",
		MaxNumber: max,
		OddsX100:  odds,
		Commit:    commitStr,
		Level:     level,
	})
}

// ParticipateCmd 加入游戏
func ParticipateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "participate",
		Short: "Join a game with a guess, stake is paid to promoter",
		Run:   participate,
	}
	addGameFlag(cmd)
	cmd.Flags().Uint16P("point", "p", 0, "guess number, 1..max")
	cmd.MarkFlagRequired("point")
	commandtypes.AddKeyFlag(cmd)
	return cmd
}

func participate(cmd *cobra.Command, args []string) {
	game, _ := cmd.Flags().GetString("game")
	point, _ := cmd.Flags().GetUint16("point")
	sendTx(cmd, &bty.ReqCreateTx{Action: "participate", Game: game, Point: point})
}

// RevealCmd 揭晓答案
func RevealCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reveal",
		Short: "Reveal the secret number of a game",
		Run:   reveal,
	}
	cmd.Flags().Uint16P("x", "x", 0, "secret number")
	cmd.MarkFlagRequired("x")
	cmd.Flags().StringP("random", "r", "", "6 bytes random in hex used in commit")
	cmd.MarkFlagRequired("random")
	commandtypes.AddKeyFlag(cmd)
	return cmd
}

func reveal(cmd *cobra.Command, args []string) {
	x, _ := cmd.Flags().GetUint16("x")
	random, _ := cmd.Flags().GetString("random")
	sendTx(cmd, &bty.ReqCreateTx{Action: "reveal", X: x, Random: random})
}

// EndCmd 结算
func EndCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "end",
		Short: "Settle a joined game",
		Run:   end,
	}
	addGameFlag(cmd)
	commandtypes.AddKeyFlag(cmd)
	return cmd
}

func end(cmd *cobra.Command, args []string) {
	game, _ := cmd.Flags().GetString("game")
	sendTx(cmd, &bty.ReqCreateTx{Action: "end", Game: game})
}

// DeleteCmd 删除游戏
func DeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete a game nobody joined, prefund is refunded",
		Run:   del,
	}
	addGameFlag(cmd)
	commandtypes.AddKeyFlag(cmd)
	return cmd
}

func del(cmd *cobra.Command, args []string) {
	game, _ := cmd.Flags().GetString("game")
	sendTx(cmd, &bty.ReqCreateTx{Action: "delete", Game: game})
}

func addGameFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("game", "g", "", "game address")
	cmd.MarkFlagRequired("game")
}

// sendTx 节点构造交易, 本地签名后发送
func sendTx(cmd *cobra.Command, req *bty.ReqCreateTx) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	priv, err := commandtypes.GetPrivKey(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	req.From = util.PubKeyAddress(priv).String()
	rpc, err := jsonclient.NewJSONClient(rpcLaddr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	var raw string
	if err := rpc.Call(bty.BombX+".CreateRawTx", req, &raw); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	tx, err := types.DecodeTxHex(raw)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	tx.Sign(ed25519.ID, priv)
	ctx := jsonclient.NewRPCCtx(rpcLaddr, "DigitalBomb.SendTransaction", rpctypes.RawParm{Data: tx.EncodeHex()}, nil)
	ctx.RunWithoutMarshal()
}

// GetGameCmd 查询游戏
func GetGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get",
		Short: "Get game info",
		Run:   getGame,
	}
	addGameFlag(cmd)
	return cmd
}

func getGame(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	game, _ := cmd.Flags().GetString("game")
	var res bty.ReplyGame
	ctx := jsonclient.NewRPCCtx(rpcLaddr, bty.BombX+".GetGame", &bty.ReqGame{Addr: game}, &res)
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		return toGameResult(res.(*bty.ReplyGame)), nil
	})
	ctx.Run()
}

// ListGamesCmd 按状态查询游戏
func ListGamesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List games by status (and address)",
		Run:   listGames,
	}
	cmd.Flags().StringP("status", "s", "created", "created/joined/revealed/ended/deleted")
	cmd.Flags().StringP("addr", "a", "", "promoter or player address")
	cmd.Flags().Int32P("count", "c", bty.DefaultCount, "max games to list")
	cmd.Flags().Int32P("direction", "d", bty.ListDESC, "0: newest first, 1: oldest first")
	cmd.Flags().Int64P("index", "i", 0, "index of the last game of previous page")
	return cmd
}

func listGames(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	statusStr, _ := cmd.Flags().GetString("status")
	addr, _ := cmd.Flags().GetString("addr")
	count, _ := cmd.Flags().GetInt32("count")
	direction, _ := cmd.Flags().GetInt32("direction")
	index, _ := cmd.Flags().GetInt64("index")
	status, err := parseStatus(statusStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, errors.Wrapf(err, "status %s", statusStr))
		return
	}
	params := &bty.ReqGameList{
		Status:    status,
		Addr:      addr,
		Count:     count,
		Direction: direction,
		Index:     index,
	}
	var res bty.ReplyGameList
	ctx := jsonclient.NewRPCCtx(rpcLaddr, bty.BombX+".ListGames", params, &res)
	ctx.SetResultCb(func(res interface{}) (interface{}, error) {
		list := res.(*bty.ReplyGameList)
		games := make([]*GameResult, 0, len(list.Games))
		for _, g := range list.Games {
			games = append(games, toGameResult(g))
		}
		return games, nil
	})
	ctx.Run()
}

// ParamsCmd 执行器配置
func ParamsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "params",
		Short: "Show reveal time and vault address",
		Run:   params,
	}
	return cmd
}

func params(cmd *cobra.Command, args []string) {
	rpcLaddr, _ := cmd.Flags().GetString("rpc_laddr")
	var res bty.Params
	ctx := jsonclient.NewRPCCtx(rpcLaddr, bty.BombX+".GetParams", &types.ReqNil{}, &res)
	ctx.Run()
}
