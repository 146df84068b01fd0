package errors

import "errors"

var (
	ErrGameNotFound      = errors.New("game not found")
	ErrCreateGameFailed  = errors.New("create game failed")
	ErrGameFinished      = errors.New("game is already finished")
	ErrNotYourTurn       = errors.New("not your turn")
	ErrInvalidRecord     = errors.New("invalid game record")
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrInternal          = errors.New("internal error")
)
