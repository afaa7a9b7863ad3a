package model

import "errors"

var (
	ErrInsufficientFunds = errors.New("not enough balance")
	ErrSpinInProgress    = errors.New("spin in progress")
	ErrInvalidLadder     = errors.New("invalid bet ladder")

	ErrTokenAbsent     = errors.New("card not present")
	ErrTokenUnknown    = errors.New("unknown card")
	ErrCardInUse       = errors.New("another card balance is live")
	ErrBalanceOverflow = errors.New("balance does not fit card record")
	ErrStorage         = errors.New("non-volatile storage failure")
	ErrLedgerNotLoaded = errors.New("card ledger not loaded")

	ErrInputBusy = errors.New("input queue full")
)
