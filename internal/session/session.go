// Package session holds the turn-sequencing state machine of one human-vs-computer run.
//
// A Session is never modified after it is returned: every accepted move yields a
// new Session and every rejected one returns the very same pointer, so callers
// detect a no-op with a pointer comparison.
package session

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

// Result - outcome of a finished game from the human's point of view.
type Result string

const (
	ResultNone Result = ""
	ResultWin  Result = "win"
	ResultLose Result = "lose"
	ResultTie  Result = "tie"
)

// State - AwaitingMove while the game runs, Finished once a result is known.
type State string

const (
	StateAwaitingMove State = "awaiting_move"
	StateFinished     State = "finished"
)

// HistoryEntry - one completed game. Winner is Empty for a tie.
type HistoryEntry struct {
	Timestamp time.Time      `json:"timestamp"`
	Result    Result         `json:"result"`
	Winner    tictactoe.Mark `json:"winner"`
}

type Session struct {
	Board          tictactoe.Board `json:"board"`
	CurrentPlayer  tictactoe.Mark  `json:"current_player"`
	HumanPlayer    tictactoe.Mark  `json:"human_player"`
	ComputerPlayer tictactoe.Mark  `json:"computer_player"`
	IsGameOver     bool            `json:"is_game_over"`
	Result         Result          `json:"result"`
	Winner         tictactoe.Mark  `json:"winner"`
	History        []HistoryEntry  `json:"history"`
}

// New - fresh session with an empty board and X to move. The human plays X when
// humanGoesFirst is set, O otherwise. history is carried over as is.
func New(humanGoesFirst bool, history []HistoryEntry) *Session {
	human := tictactoe.PlayerO
	if humanGoesFirst {
		human = tictactoe.PlayerX
	}

	if history == nil {
		history = []HistoryEntry{}
	}

	return &Session{
		Board:          tictactoe.NewBoard(),
		CurrentPlayer:  tictactoe.PlayerX,
		HumanPlayer:    human,
		ComputerPlayer: tictactoe.Opponent(human),
		History:        history,
	}
}

// ApplyMove - plays the current mover's mark at index, stamping a finished game with time.Now.
func ApplyMove(s *Session, index int) *Session {
	return ApplyMoveAt(s, index, time.Now())
}

// ApplyMoveAt - like ApplyMove with an explicit timestamp for the history entry.
// A finished session or an illegal index returns s itself.
func ApplyMoveAt(s *Session, index int, at time.Time) *Session {
	if s.IsGameOver || !tictactoe.IsValidMove(s.Board, index) {
		return s
	}

	next := *s
	next.Board = tictactoe.ApplyMove(s.Board, index, s.CurrentPlayer)

	winner := tictactoe.DetectWinner(next.Board)
	full := tictactoe.IsBoardFull(next.Board)

	var result Result
	switch {
	case winner == s.HumanPlayer:
		result = ResultWin
	case winner == s.ComputerPlayer:
		result = ResultLose
	case full:
		result = ResultTie
	}

	if result == ResultNone {
		next.CurrentPlayer = tictactoe.Opponent(s.CurrentPlayer)
		return &next
	}

	next.IsGameOver = true
	next.Result = result
	next.Winner = winner

	history := make([]HistoryEntry, len(s.History), len(s.History)+1)
	copy(history, s.History)
	next.History = append(history, HistoryEntry{
		Timestamp: at,
		Result:    result,
		Winner:    winner,
	})

	return &next
}

// State - derived from IsGameOver.
func (that *Session) State() State {
	if that.IsGameOver {
		return StateFinished
	}
	return StateAwaitingMove
}

func (that *Session) IsHumanTurn() bool {
	return !that.IsGameOver && that.CurrentPlayer == that.HumanPlayer
}

func (that *Session) IsComputerTurn() bool {
	return !that.IsGameOver && that.CurrentPlayer == that.ComputerPlayer
}
