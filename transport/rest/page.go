package rest

import (
	"embed"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/dto"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

type PageHandler interface {
	Index(w http.ResponseWriter, r *http.Request)
	Move(w http.ResponseWriter, r *http.Request)
	Reset(w http.ResponseWriter, r *http.Request)
}

type pageHandler struct {
	logger     *slog.Logger
	games      gameUseCase
	sessionTTL time.Duration
}

func NewPageHandler(logger *slog.Logger, games gameUseCase, sessionTTL time.Duration) PageHandler {
	return &pageHandler{
		logger:     logger,
		games:      games,
		sessionTTL: sessionTTL,
	}
}

func (that *pageHandler) Index(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.SessionID(w, r, that.sessionTTL)

	game, err := that.games.GetOrCreateGame(r.Context(), sessionID)
	if err != nil {
		that.logger.Error("failed to load game", "method", "Index", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err = pageTemplate.Execute(w, dto.NewGame(game)); err != nil {
		that.logger.Error("failed to render page", "method", "Index", "error", err)
	}
}

// Move - form post from a board button. A cell that cannot be parsed is treated like any
// other ignored click.
func (that *pageHandler) Move(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.SessionID(w, r, that.sessionTTL)

	cell, err := strconv.Atoi(r.FormValue("cell"))
	if err == nil {
		if _, _, err = that.games.MakeMove(r.Context(), sessionID, cell); err != nil {
			that.logger.Error("failed to make move", "method", "Move", "error", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (that *pageHandler) Reset(w http.ResponseWriter, r *http.Request) {
	sessionID := pkg.SessionID(w, r, that.sessionTTL)

	if _, err := that.games.Reset(r.Context(), sessionID); err != nil {
		that.logger.Error("failed to reset game", "method", "Reset", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
