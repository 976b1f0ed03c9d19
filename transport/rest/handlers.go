package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/entity"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/usecase"
)

type gameUseCase interface {
	StartSession(ctx context.Context, humanGoesFirst bool) (*entity.Game, error)
	ResetSession(ctx context.Context, id string, humanGoesFirst bool) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, cell int) (*entity.Game, error)
	GetSession(ctx context.Context, id string) (*entity.Game, error)
	GetHistory(ctx context.Context, id string) ([]session.HistoryEntry, error)
	GetStats(ctx context.Context, id string) (entity.Stats, error)
	GetHint(ctx context.Context, id string) (usecase.Hint, error)
	DeleteSession(ctx context.Context, id string) error
}

type startRequest struct {
	HumanGoesFirst *bool `json:"human_goes_first"`
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

// sessionResponse - what the presentation layer polls after every transition.
type sessionResponse struct {
	ID             string          `json:"id"`
	Board          tictactoe.Board `json:"board"`
	State          session.State   `json:"state"`
	CurrentPlayer  tictactoe.Mark  `json:"current_player"`
	HumanPlayer    tictactoe.Mark  `json:"human_player"`
	ComputerPlayer tictactoe.Mark  `json:"computer_player"`
	IsGameOver     bool            `json:"is_game_over"`
	IsHumanTurn    bool            `json:"is_human_turn"`
	Result         *session.Result `json:"result"`
	Winner         tictactoe.Mark  `json:"winner"`
	GamesPlayed    int             `json:"games_played"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger *slog.Logger
	games  gameUseCase
}

func newHandlers(logger *slog.Logger, games gameUseCase) *handlers {
	return &handlers{
		logger: logger.With("component", "rest"),
		games:  games,
	}
}

func (that *handlers) startSession(w http.ResponseWriter, r *http.Request) {
	humanGoesFirst, ok := that.decodeStart(w, r)
	if !ok {
		return
	}

	game, err := that.games.StartSession(r.Context(), humanGoesFirst)
	if err != nil {
		that.writeError(w, "startSession", err)
		return
	}

	writeJSON(w, http.StatusCreated, toSessionResponse(game))
}

func (that *handlers) getSession(w http.ResponseWriter, r *http.Request) {
	game, err := that.games.GetSession(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getSession", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(game))
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Cell == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "body must be {\"cell\": 0..8}"})
		return
	}

	game, err := that.games.MakeTurn(r.Context(), chi.URLParam(r, "id"), *req.Cell)
	if err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(game))
}

func (that *handlers) resetSession(w http.ResponseWriter, r *http.Request) {
	humanGoesFirst, ok := that.decodeStart(w, r)
	if !ok {
		return
	}

	game, err := that.games.ResetSession(r.Context(), chi.URLParam(r, "id"), humanGoesFirst)
	if err != nil {
		that.writeError(w, "resetSession", err)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(game))
}

func (that *handlers) getHistory(w http.ResponseWriter, r *http.Request) {
	history, err := that.games.GetHistory(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getHistory", err)
		return
	}

	writeJSON(w, http.StatusOK, history)
}

func (that *handlers) getStats(w http.ResponseWriter, r *http.Request) {
	stats, err := that.games.GetStats(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getStats", err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

func (that *handlers) getHint(w http.ResponseWriter, r *http.Request) {
	hint, err := that.games.GetHint(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getHint", err)
		return
	}

	writeJSON(w, http.StatusOK, hint)
}

func (that *handlers) deleteSession(w http.ResponseWriter, r *http.Request) {
	if err := that.games.DeleteSession(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeError(w, "deleteSession", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodeStart - an empty body means the human goes first.
func (that *handlers) decodeStart(w http.ResponseWriter, r *http.Request) (bool, bool) {
	var req startRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
			return false, false
		}
	}

	if req.HumanGoesFirst == nil {
		return true, true
	}

	return *req.HumanGoesFirst, true
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: apperror.ErrGameNotFound.Error()})
	case errors.Is(err, apperror.ErrInvalidCell):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case usecase.IsRejection(err):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	default:
		that.logger.Error("request failed", "method", method, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
	}
}

func toSessionResponse(game *entity.Game) sessionResponse {
	s := game.Session

	var result *session.Result
	if s.Result != session.ResultNone {
		result = &s.Result
	}

	return sessionResponse{
		ID:             game.ID,
		Board:          s.Board,
		State:          s.State(),
		CurrentPlayer:  s.CurrentPlayer,
		HumanPlayer:    s.HumanPlayer,
		ComputerPlayer: s.ComputerPlayer,
		IsGameOver:     s.IsGameOver,
		IsHumanTurn:    s.IsHumanTurn(),
		Result:         result,
		Winner:         s.Winner,
		GamesPlayed:    len(s.History),
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
