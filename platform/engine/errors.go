package engine

import "errors"

// Command rejections. None of these leaves any player, market or journal
// state modified; validation runs to completion before the first write.
var (
	ErrNotYourTurn        = errors.New("not your turn")
	ErrWrongPhase         = errors.New("action not allowed in this phase")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInsufficientFunds  = errors.New("insufficient funds")
	ErrInsufficientCredit = errors.New("insufficient credit")
	ErrExpired            = errors.New("offer expired")
	ErrNotOwned           = errors.New("asset not owned")
	ErrNotController      = errors.New("offer belongs to another player")
	ErrGameOver           = errors.New("game over")
	ErrUnknownPlayer      = errors.New("unknown player")
	ErrUnknownCommand     = errors.New("unknown command")
	ErrUnknownOffer       = errors.New("unknown offer")
	ErrRoomClosed         = errors.New("room closed")
)
