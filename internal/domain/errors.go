package domain

import "errors"

var (
	ErrInsufficientBalance  = errors.New("trader trust balance below required freeze")
	ErrOrphanNotification   = errors.New("notification has no owning trader")
	ErrTransactionNotFound  = errors.New("transaction not found")
	ErrTraderNotFound       = errors.New("trader not found")
	ErrRateNotSet           = errors.New("transaction rate is not set")
	ErrTransactionFinalized = errors.New("transaction already in terminal status")
)
