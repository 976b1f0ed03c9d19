package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
)

// computerTurnTimeout - bounds storage calls made from a delayed computer move.
const computerTurnTimeout = 5 * time.Second

type gameService interface {
	CreateGame(ctx context.Context, humanGoesFirst bool) (*entity.Game, error)
	UpdateGame(ctx context.Context, game *entity.Game) error
	DeleteGame(ctx context.Context, gameID string) error
	GetGameByID(ctx context.Context, id string) (*entity.Game, error)
}

type botService interface {
	ChooseMove(s *session.Session) (int, error)
	SuggestMove(s *session.Session) (int, int, error)
}

type pendingMove struct {
	timer      *time.Timer
	generation int
}

// Hint - the engine's suggestion for the human.
type Hint struct {
	Cell  int `json:"cell"`
	Score int `json:"score"`
}

// GameManager - accepts human moves, schedules the computer's reply after a
// delay and keeps session history across resets. All mutations go through one
// mutex, so a session only ever has a single writer.
type GameManager struct {
	logger *slog.Logger

	gameService gameService
	botService  botService

	delay time.Duration
	now   func() time.Time

	mu      sync.Mutex
	pending map[string]pendingMove
}

func NewGameManager(logger *slog.Logger, gameService gameService, botService botService, delay time.Duration) *GameManager {
	return &GameManager{
		logger:      logger.With("component", "game_manager"),
		gameService: gameService,
		botService:  botService,
		delay:       delay,
		now:         time.Now,
		pending:     make(map[string]pendingMove),
	}
}

// StartSession - creates a game; the computer's opening is scheduled when it leads.
func (that *GameManager) StartSession(ctx context.Context, humanGoesFirst bool) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameService.CreateGame(ctx, humanGoesFirst)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Debug("session started", "gameID", game.ID, "human", game.Session.HumanPlayer)
	that.scheduleComputerTurnLocked(game)

	return game, nil
}

// ResetSession - new board with history kept; a pending computer move is dropped.
func (that *GameManager) ResetSession(ctx context.Context, id string, humanGoesFirst bool) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	that.cancelPendingLocked(id)

	game.Reset(humanGoesFirst, that.now())
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	that.logger.Debug("session reset", "gameID", id, "generation", game.Generation)
	that.scheduleComputerTurnLocked(game)

	return game, nil
}

// MakeTurn - applies the human's move. Requests out of turn, after the end or
// on an illegal cell are rejected with an error and leave the game untouched.
func (that *GameManager) MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", id)

	that.mu.Lock()
	defer that.mu.Unlock()

	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if game.IsFinished() {
		return game, apperror.ErrGameFinished
	}

	if !game.Session.IsHumanTurn() {
		return game, apperror.ErrNotYourTurn
	}

	next := session.ApplyMoveAt(game.Session, cell, that.now())
	if next == game.Session {
		return game, rejectedCellError(game.Session, cell)
	}

	game.Advance(next, that.now())
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("human moved", "cell", cell, "result", next.Result)
	that.scheduleComputerTurnLocked(game)

	return game, nil
}

// PlayComputerTurn - plays the computer's move right away, dropping any pending timer.
func (that *GameManager) PlayComputerTurn(ctx context.Context, id string) (*entity.Game, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPendingLocked(id)

	return that.playComputerTurnLocked(ctx, id, -1)
}

func (that *GameManager) GetSession(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *GameManager) GetHistory(ctx context.Context, id string) ([]session.HistoryEntry, error) {
	game, err := that.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	return game.Session.History, nil
}

func (that *GameManager) GetStats(ctx context.Context, id string) (entity.Stats, error) {
	game, err := that.GetSession(ctx, id)
	if err != nil {
		return entity.Stats{}, err
	}

	return game.Stats(), nil
}

// GetHint - the move the engine would make in the human's place.
func (that *GameManager) GetHint(ctx context.Context, id string) (Hint, error) {
	game, err := that.GetSession(ctx, id)
	if err != nil {
		return Hint{}, err
	}

	cell, score, err := that.botService.SuggestMove(game.Session)
	if err != nil {
		return Hint{}, fmt.Errorf("failed to suggest move: %w", err)
	}

	return Hint{Cell: cell, Score: score}, nil
}

func (that *GameManager) DeleteSession(ctx context.Context, id string) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.cancelPendingLocked(id)

	if err := that.gameService.DeleteGame(ctx, id); err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}

	return nil
}

// Close - stops every pending computer move.
func (that *GameManager) Close() {
	that.mu.Lock()
	defer that.mu.Unlock()

	for id := range that.pending {
		that.cancelPendingLocked(id)
	}
}

// playComputerTurnLocked - generation -1 skips the staleness check.
func (that *GameManager) playComputerTurnLocked(ctx context.Context, id string, generation int) (*entity.Game, error) {
	log := that.logger.With("method", "playComputerTurn", "gameID", id)

	game, err := that.gameService.GetGameByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	if generation >= 0 && game.Generation != generation {
		log.Debug("stale computer move skipped", "scheduled", generation, "current", game.Generation)
		return game, nil
	}

	cell, err := that.botService.ChooseMove(game.Session)
	if err != nil {
		return game, fmt.Errorf("bot failed to choose move: %w", err)
	}

	game.Advance(session.ApplyMoveAt(game.Session, cell, that.now()), that.now())
	if err = that.gameService.UpdateGame(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to update game: %w", err)
	}

	log.Debug("computer moved", "cell", cell, "result", game.Session.Result)

	return game, nil
}

func (that *GameManager) scheduleComputerTurnLocked(game *entity.Game) {
	if !game.Session.IsComputerTurn() {
		return
	}

	id, generation := game.ID, game.Generation
	that.cancelPendingLocked(id)

	var timer *time.Timer
	timer = time.AfterFunc(that.delay, func() {
		that.mu.Lock()
		defer that.mu.Unlock()

		current, ok := that.pending[id]
		if !ok || current.timer != timer {
			return
		}
		delete(that.pending, id)

		ctx, cancel := context.WithTimeout(context.Background(), computerTurnTimeout)
		defer cancel()

		if _, err := that.playComputerTurnLocked(ctx, id, generation); err != nil {
			that.logger.Error("delayed computer move failed", "gameID", id, "error", err)
		}
	})

	that.pending[id] = pendingMove{timer: timer, generation: generation}
}

func (that *GameManager) cancelPendingLocked(id string) {
	if pending, ok := that.pending[id]; ok {
		pending.timer.Stop()
		delete(that.pending, id)
	}
}

func rejectedCellError(s *session.Session, cell int) error {
	if cell < 0 || cell >= len(s.Board) {
		return fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, cell)
	}

	return fmt.Errorf("%w: cell %d", apperror.ErrCellOccupied, cell)
}

// IsRejection - errors that mean the request was refused, not that something broke.
func IsRejection(err error) bool {
	return errors.Is(err, apperror.ErrGameFinished) ||
		errors.Is(err, apperror.ErrNotYourTurn) ||
		errors.Is(err, apperror.ErrNotComputerTurn) ||
		errors.Is(err, apperror.ErrInvalidCell) ||
		errors.Is(err, apperror.ErrCellOccupied)
}
