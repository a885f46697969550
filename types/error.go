// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

// 系统错误
var (
	ErrNotFound                = errors.New("ErrNotFound")
	ErrNoBalance               = errors.New("ErrNoBalance")
	ErrAmount                  = errors.New("ErrAmount")
	ErrSendSameToRecv          = errors.New("ErrSendSameToRecv")
	ErrInvalidAddress          = errors.New("ErrInvalidAddress")
	ErrDecode                  = errors.New("ErrDecode")
	ErrInvalidParam            = errors.New("ErrInvalidParam")
	ErrSign                    = errors.New("ErrSign")
	ErrNoSignature             = errors.New("ErrNoSignature")
	ErrTxDup                   = errors.New("ErrTxDup")
	ErrTxExist                 = errors.New("ErrTxExist")
	ErrTxNotExist              = errors.New("ErrTxNotExist")
	ErrTxMsgSizeTooBig         = errors.New("ErrTxMsgSizeTooBig")
	ErrTxAccountRefs           = errors.New("ErrTxAccountRefs")
	ErrExecNameNotAllow        = errors.New("ErrExecNameNotAllow")
	ErrUnRegistedDriver        = errors.New("ErrUnRegistedDriver")
	ErrActionNotSupport        = errors.New("ErrActionNotSupport")
	ErrMethodReturnType        = errors.New("ErrMethodReturnType")
	ErrQueryNotSupport         = errors.New("ErrQueryNotSupport")
	ErrNotAllowKey             = errors.New("ErrNotAllowKey")
	ErrNotAllowMemSetKey       = errors.New("ErrNotAllowMemSetKey")
	ErrMemFull                 = errors.New("ErrMemFull")
	ErrManyTx                  = errors.New("ErrManyTx")
	ErrEmptyTx                 = errors.New("ErrEmptyTx")
	ErrBlockNotFound           = errors.New("ErrBlockNotFound")
	ErrGenesisExist            = errors.New("ErrGenesisExist")
	ErrIsClosed                = errors.New("ErrIsClosed")
	ErrToAddrNotSameToExecAddr = errors.New("ErrToAddrNotSameToExecAddr")
	ErrTypeAsset               = errors.New("ErrTypeAsset")
)
