// Package minimax picks the computer's move with an exhaustive game-tree search.
//
// The search is plain minimax without pruning or caching. Terminal positions
// score 10-depth when the computer has won, depth-10 when the human has won and
// 0 for a full board, so the computer prefers quick wins and slow losses.
// Empty cells are visited in ascending order and only a strictly better score
// replaces the current best, which makes the first of several equal moves win.
package minimax

import (
	"errors"
	"fmt"
	"math"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const winScore = 10

var (
	ErrNoMovesAvailable = errors.New("no moves available")
	ErrInvalidMarks     = errors.New("computer and human marks must be X and O")
)

// BestMove - index of the optimal move for computer. It panics when the board
// has no empty cell or is already decided, or when the marks are not X and O:
// those are caller bugs.
func BestMove(board tictactoe.Board, computer, human tictactoe.Mark) int {
	index, _ := Evaluate(board, computer, human)
	return index
}

// Evaluate - same as BestMove, also returns the score of the chosen move.
func Evaluate(board tictactoe.Board, computer, human tictactoe.Mark) (int, int) {
	if !computer.IsValid() || !human.IsValid() || computer == human {
		panic(fmt.Errorf("%w: computer=%q human=%q", ErrInvalidMarks, computer, human))
	}

	if tictactoe.DetectWinner(board) != tictactoe.Empty || tictactoe.IsBoardFull(board) {
		panic(fmt.Errorf("%w: board %s", ErrNoMovesAvailable, board))
	}

	score, index := search(board, 0, true, computer, human)

	return index, score
}

// search - returns the best score for the side to move and the move that reaches it.
// maximizing always means "good for computer", whichever mark moves at this depth.
func search(board tictactoe.Board, depth int, maximizing bool, computer, human tictactoe.Mark) (int, int) {
	switch tictactoe.DetectWinner(board) {
	case computer:
		return winScore - depth, -1
	case human:
		return depth - winScore, -1
	}

	if tictactoe.IsBoardFull(board) {
		return 0, -1
	}

	moves := tictactoe.EmptyCells(board)

	mover := human
	bestScore := math.MaxInt
	if maximizing {
		mover = computer
		bestScore = math.MinInt
	}
	bestIndex := moves[0]

	for _, move := range moves {
		next := board
		next[move] = mover

		score, _ := search(next, depth+1, !maximizing, computer, human)

		if (maximizing && score > bestScore) || (!maximizing && score < bestScore) {
			bestScore = score
			bestIndex = move
		}
	}

	return bestScore, bestIndex
}
