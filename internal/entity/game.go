package entity

import (
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
)

// Game - a stored run of human-vs-computer games under one ID.
// Generation grows on every reset, so a delayed computer move scheduled
// for an earlier generation can tell it is stale.
type Game struct {
	ID         string           `json:"id"`
	Generation int              `json:"generation"`
	Session    *session.Session `json:"session"`
	CreatedAt  time.Time        `json:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at"`
}

// Stats - totals over a session history.
type Stats struct {
	Played int `json:"played"`
	Wins   int `json:"wins"`
	Losses int `json:"losses"`
	Ties   int `json:"ties"`
}

func NewGame(id string, s *session.Session, now time.Time) *Game {
	return &Game{
		ID:        id,
		Session:   s,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Advance - replaces the session snapshot.
func (that *Game) Advance(s *session.Session, now time.Time) {
	that.Session = s
	that.UpdatedAt = now
}

// Reset - starts a new game, keeping the history, and bumps the generation.
func (that *Game) Reset(humanGoesFirst bool, now time.Time) {
	that.Session = session.New(humanGoesFirst, that.Session.History)
	that.Generation++
	that.UpdatedAt = now
}

func (that *Game) IsFinished() bool {
	return that.Session.IsGameOver
}

func (that *Game) Stats() Stats {
	stats := Stats{Played: len(that.Session.History)}

	for _, entry := range that.Session.History {
		switch entry.Result {
		case session.ResultWin:
			stats.Wins++
		case session.ResultLose:
			stats.Losses++
		case session.ResultTie:
			stats.Ties++
		case session.ResultNone:
		}
	}

	return stats
}
