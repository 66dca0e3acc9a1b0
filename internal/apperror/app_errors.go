package apperror

import "errors"

var (
	ErrGameFinished    = errors.New("game is already finished")
	ErrNotYourTurn     = errors.New("it's not your turn")
	ErrCellOccupied    = errors.New("cell is already occupied")
	ErrGameNotFound    = errors.New("game not found")
	ErrUnknownGameType = errors.New("unknown game type")
	ErrInvalidMark     = errors.New("invalid player mark")
	ErrGameWithoutABot = errors.New("game has no bot player")
	ErrGameConflict    = errors.New("game was changed by another request")
)
