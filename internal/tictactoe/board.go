package tictactoe

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Mark - symbol placed on the board. Empty marks an unoccupied cell.
type Mark string

const (
	PlayerX Mark = "X"
	PlayerO Mark = "O"

	Empty Mark = ""
)

// BoardSize - number of cells on a 3x3 board.
const BoardSize = 9

var ErrUnknownMark = errors.New("unknown mark")

// WinCombos - rows top-to-bottom, columns left-to-right, then both diagonals.
// DetectWinner scans them in this order.
var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// Board - 3x3 grid in row-major order (index = row*3 + col).
// It is an array, so assignment and function arguments copy it.
type Board [BoardSize]Mark

// IsValid - reports whether the mark is X or O.
func (that Mark) IsValid() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent - returns the other mark.
func Opponent(mark Mark) Mark {
	if mark == PlayerX {
		return PlayerO
	}
	return PlayerX
}

// MarshalJSON - empty cells are encoded as null.
func (that Mark) MarshalJSON() ([]byte, error) {
	if that == Empty {
		return []byte("null"), nil
	}
	return json.Marshal(string(that))
}

func (that *Mark) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*that = Empty
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to decode mark: %w", err)
	}

	mark := Mark(raw)
	if mark != Empty && !mark.IsValid() {
		return fmt.Errorf("%w: %q", ErrUnknownMark, raw)
	}

	*that = mark
	return nil
}

// NewBoard - returns a board of nine empty cells.
func NewBoard() Board {
	return Board{}
}

// IsValidMove - the index is inside the board and the cell is empty.
func IsValidMove(board Board, index int) bool {
	return index >= 0 && index < BoardSize && board[index] == Empty
}

// ApplyMove - places mark at index. An illegal move returns the board unchanged.
func ApplyMove(board Board, index int, mark Mark) Board {
	if !IsValidMove(board, index) {
		return board
	}

	next := board
	next[index] = mark

	return next
}

// DetectWinner - returns the mark on the first completed line, or Empty.
func DetectWinner(board Board) Mark {
	for _, combo := range WinCombos {
		a, b, c := board[combo[0]], board[combo[1]], board[combo[2]]
		if a != Empty && a == b && b == c {
			return a
		}
	}

	return Empty
}

// IsBoardFull - no empty cell left.
func IsBoardFull(board Board) bool {
	for _, cell := range board {
		if cell == Empty {
			return false
		}
	}

	return true
}

// EmptyCells - indices of empty cells in ascending order.
func EmptyCells(board Board) []int {
	cells := make([]int, 0, BoardSize)
	for i, cell := range board {
		if cell == Empty {
			cells = append(cells, i)
		}
	}

	return cells
}

// String - compact form such as "XO./.X./..O", rows separated by '/'.
func (that Board) String() string {
	out := make([]byte, 0, BoardSize+2)
	for i, cell := range that {
		if i > 0 && i%3 == 0 {
			out = append(out, '/')
		}
		switch cell {
		case Empty:
			out = append(out, '.')
		default:
			out = append(out, cell[0])
		}
	}

	return string(out)
}
