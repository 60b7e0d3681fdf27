package model

import "errors"

// Sentinel errors shared by the stores, the session and the presentation layers.
// Callers match them with errors.Is; wrapped variants carry extra context.
var (
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidKind        = errors.New("invalid transaction kind")
	ErrInvalidCategory    = errors.New("category not allowed for this kind")
	ErrInvalidTransaction = errors.New("invalid transaction")
	ErrUnknownCategory    = errors.New("unknown budget category")
	ErrInvalidLimit       = errors.New("invalid budget limit")
	ErrNotFound           = errors.New("transaction not found")
)
