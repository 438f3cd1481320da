package errors

import "errors"

var (
	ErrCreateGameFailed = errors.New("create game failed")
	ErrJoinGameFailed   = errors.New("join game failed")
	ErrGameNotFound     = errors.New("game not found")
	ErrGameFull         = errors.New("game already has both players")
	ErrIllegalAction    = errors.New("action is not legal in this position")
	ErrCorruptRecord    = errors.New("stored game record failed to replay")
	ErrInternal         = errors.New("internal error")
)
