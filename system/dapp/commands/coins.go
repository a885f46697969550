// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	commandtypes "github.com/33cn/digitalbomb/system/dapp/commands/types"
	cty "github.com/33cn/digitalbomb/system/dapp/coins/types"
	"github.com/33cn/digitalbomb/types"
	"github.com/spf13/cobra"
)

// CoinsCmd coins command func
func CoinsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coins",
		Short: "Coins operation",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		TransferCmd(),
	)
	return cmd
}

// TransferCmd transfer coins
func TransferCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Transfer coins to an address or executor",
		Run:   transfer,
	}
	addTransferFlags(cmd)
	return cmd
}

func addTransferFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("to", "t", "", "receiver address or executor name")
	cmd.MarkFlagRequired("to")
	cmd.Flags().StringP("amount", "a", "", "transaction amount")
	cmd.MarkFlagRequired("amount")
	commandtypes.AddKeyFlag(cmd)
}

func transfer(cmd *cobra.Command, args []string) {
	toStr, _ := cmd.Flags().GetString("to")
	amountStr, _ := cmd.Flags().GetString("amount")
	to, err := commandtypes.ParseAddr(toStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	amount, err := commandtypes.FormatAmountDisplay2Value(amountStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	if err := commandtypes.SendTx(cmd, types.CoinsX, cty.EncodeTransfer(amount), to); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
