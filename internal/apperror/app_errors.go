package apperror

import "errors"

var (
	ErrGameFinished     = errors.New("game is already finished")
	ErrNotYourTurn      = errors.New("it's not your turn")
	ErrNotComputerTurn  = errors.New("it's not the computer's turn")
	ErrCellOccupied     = errors.New("cell is already occupied")
	ErrInvalidCell      = errors.New("invalid cell index")
	ErrGameNotFound     = errors.New("game not found")
	ErrStorageNotConfig = errors.New("unknown storage type")
)
