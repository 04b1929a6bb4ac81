package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/dto"
)

const maxBodyBytes = 1 << 10

type GameHandler interface {
	GetGame(w http.ResponseWriter, r *http.Request)
	MakeMove(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type gameHandler struct {
	logger     *slog.Logger
	games      gameUseCase
	sessionTTL time.Duration
}

type moveRequest struct {
	Cell *int `json:"cell"`
}

type gameResponse struct {
	Game    dto.Game `json:"game"`
	Applied *bool    `json:"applied,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewGameHandler(logger *slog.Logger, games gameUseCase, sessionTTL time.Duration) GameHandler {
	return &gameHandler{
		logger:     logger,
		games:      games,
		sessionTTL: sessionTTL,
	}
}

func (that *gameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.SessionID(w, r, that.sessionTTL)

	game, err := that.games.GetOrCreateGame(r.Context(), sessionID)
	if err != nil {
		that.writeError(w, "GetGame", err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{Game: dto.NewGame(game)})
}

func (that *gameHandler) MakeMove(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.SessionID(w, r, that.sessionTTL)

	var request moveRequest
	if err := decodeJSON(w, r, &request); err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	game, applied, err := that.games.MakeMove(r.Context(), sessionID, *request.Cell)
	if err != nil {
		that.writeError(w, "MakeMove", err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{Game: dto.NewGame(game), Applied: &applied})
}

func (that *gameHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.SessionID(w, r, that.sessionTTL)

	game, err := that.games.Reset(r.Context(), sessionID)
	if err != nil {
		that.writeError(w, "Reset", err)
		return
	}

	writeJSON(w, http.StatusOK, gameResponse{Game: dto.NewGame(game)})
}

func (that *gameHandler) writeError(w http.ResponseWriter, method string, err error) {
	if errors.Is(err, apperror.ErrMalformedRequest) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	that.logger.Error("request failed", "method", method, "error", err)
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
}

func decodeJSON(w http.ResponseWriter, r *http.Request, request *moveRequest) error {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(request); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", apperror.ErrMalformedRequest)
		}
		return fmt.Errorf("%w: %w", apperror.ErrMalformedRequest, err)
	}

	if request.Cell == nil {
		return fmt.Errorf("%w: cell is required", apperror.ErrMalformedRequest)
	}

	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("failed to write response", "error", err)
	}
}
