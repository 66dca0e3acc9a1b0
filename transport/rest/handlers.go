package rest

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type gamePlayService interface {
	CreateGame(ctx context.Context, gameType, botMark string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID, mark string, action engine.Action) (*entity.Game, error)

	Analyze(board engine.Board) (*entity.Analysis, error)
}

type createGameRequest struct {
	Type    string `json:"type"`
	BotMark string `json:"bot_mark"`
}

type turnRequest struct {
	Mark string `json:"mark"`
	Row  *int   `json:"row"`
	Col  *int   `json:"col"`
}

type analyzeRequest struct {
	Board *engine.Board `json:"board"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type gameHandlers struct {
	logger   *slog.Logger
	gamePlay gamePlayService
}

func newGameHandlers(logger *slog.Logger, gamePlay gamePlayService) *gameHandlers {
	return &gameHandlers{
		logger:   logger.With("component", "rest"),
		gamePlay: gamePlay,
	}
}

func (that *gameHandlers) createGame(w http.ResponseWriter, r *http.Request) {
	request := createGameRequest{Type: entity.WithBotType}
	// an empty body creates a bot game with the default bot mark
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	game, err := that.gamePlay.CreateGame(r.Context(), request.Type, request.BotMark)
	if err != nil {
		that.writeServiceError(w, "createGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *gameHandlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.gamePlay.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeServiceError(w, "getGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) deleteGame(w http.ResponseWriter, r *http.Request) {
	if err := that.gamePlay.DeleteGame(r.Context(), chi.URLParam(r, "id")); err != nil {
		that.writeServiceError(w, "deleteGame", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (that *gameHandlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var request turnRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if request.Row == nil || request.Col == nil {
		that.writeError(w, http.StatusBadRequest, errors.New("row and col are required"))
		return
	}

	action := engine.Action{Row: *request.Row, Col: *request.Col}
	game, err := that.gamePlay.MakeTurn(r.Context(), chi.URLParam(r, "id"), request.Mark, action)
	if err != nil {
		that.writeServiceError(w, "makeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *gameHandlers) analyze(w http.ResponseWriter, r *http.Request) {
	var request analyzeRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		// a well-formed body with a bad position is reported like any other invalid board
		if statusFor(err) == http.StatusUnprocessableEntity {
			that.writeServiceError(w, "analyze", err)
			return
		}
		that.writeError(w, http.StatusBadRequest, err)
		return
	}

	if request.Board == nil {
		that.writeServiceError(w, "analyze", fmt.Errorf("%w: board is required", engine.ErrInvalidBoardState))
		return
	}

	analysis, err := that.gamePlay.Analyze(*request.Board)
	if err != nil {
		that.writeServiceError(w, "analyze", err)
		return
	}

	that.writeJSON(w, http.StatusOK, analysis)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, apperror.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrGameFinished),
		errors.Is(err, apperror.ErrCellOccupied),
		errors.Is(err, apperror.ErrNotYourTurn),
		errors.Is(err, apperror.ErrGameConflict):
		return http.StatusConflict
	case errors.Is(err, engine.ErrInvalidAction),
		errors.Is(err, engine.ErrInvalidBoardState),
		errors.Is(err, engine.ErrInvalidCell),
		errors.Is(err, apperror.ErrInvalidMark),
		errors.Is(err, apperror.ErrUnknownGameType):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (that *gameHandlers) writeServiceError(w http.ResponseWriter, method string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeError(w, status, errors.New("internal server error"))
		return
	}

	that.logger.Debug("request rejected", "method", method, "error", err)
	that.writeError(w, status, err)
}

func (that *gameHandlers) writeError(w http.ResponseWriter, status int, err error) {
	that.writeJSON(w, status, errorResponse{Error: err.Error()})
}

func (that *gameHandlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}
