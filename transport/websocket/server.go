package websocket

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 1 << 10
)

type gameUseCase interface {
	GetOrCreateGame(ctx context.Context, sessionID string) (*entity.Game, error)
	MakeMove(ctx context.Context, sessionID string, cell int) (*entity.Game, bool, error)
	Reset(ctx context.Context, sessionID string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, sessionID string, message *Message) (*Response, error)

type Server struct {
	logger     *slog.Logger
	games      gameUseCase
	sessionTTL time.Duration
	upgrader   websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, games gameUseCase, sessionTTL time.Duration) *Server {
	server := &Server{
		logger:     logger.With("component", "websocket"),
		games:      games,
		sessionTTL: sessionTTL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionState] = server.handleState
	server.handlers[ActionMove] = server.handleMove
	server.handlers[ActionReset] = server.handleReset

	return server
}

func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", that.upgradeToWebSocket)

	return otelhttp.NewHandler(mux, "websocket")
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Handler(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	return pkg.Serve(ctx, srv)
}

// upgradeToWebSocket - upgrades the connection to WebSocket. The session cookie is issued on
// the handshake response, so a browser shares its board with the page.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	sessionID := sessionFromRequest(req)

	var header http.Header
	if sessionID == "" {
		sessionID = pkg.GenerateNewSessionID()
		header = http.Header{}
		header.Add("Set-Cookie", pkg.NewSessionCookie(sessionID, that.sessionTTL).String())
	}

	conn, err := that.upgrader.Upgrade(writer, req, header)
	if err != nil {
		// the upgrader already replied with an error status
		log.Warn("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	log.Info("WebSocket connection established", "session", sessionID)

	if err = that.handleMessages(req.Context(), conn, sessionID); err != nil {
		log.Error("error handling messages", "session", sessionID, "error", err)
	}
}

// handleMessages - processes messages from the client until it goes away.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn, sessionID string) error {
	log := that.logger.With("method", "handleMessages", "session", sessionID)

	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	done := make(chan struct{})
	defer close(done)

	go that.keepAlive(ctx, conn, done)

	for {
		var message Message
		if err := conn.ReadJSON(&message); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Info("WebSocket connection closed")
				return nil
			}

			if isDecodeError(err) {
				log.Debug("failed to decode message", "error", err)
				if err = that.write(conn, errorResponse(ErrMalformedMessage)); err != nil {
					return err
				}
				continue
			}

			return err
		}

		response := that.process(ctx, sessionID, &message)
		if err := that.write(conn, response); err != nil {
			return err
		}
	}
}

func (that *Server) process(ctx context.Context, sessionID string, message *Message) *Response {
	handler, ok := that.handlers[message.Action]
	if !ok {
		return errorResponse(ErrUnknownAction)
	}

	response, err := handler(ctx, sessionID, message)
	if errors.Is(err, apperror.ErrMalformedRequest) {
		return errorResponse(err)
	}

	if err != nil {
		that.logger.Error("error processing message", "action", message.Action, "session", sessionID, "error", err)
		return errorResponse(err)
	}

	return response
}

// keepAlive - pings the client so dead connections hit the read deadline.
func (that *Server) keepAlive(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				return
			}
		case <-ctx.Done():
			msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
			_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(writeWait))
			return
		case <-done:
			return
		}
	}
}

func (that *Server) write(conn *websocket.Conn, response *Response) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(response)
}

func sessionFromRequest(req *http.Request) string {
	cookie, err := req.Cookie(pkg.SessionCookieName)
	if err != nil || !pkg.IsValidSessionID(cookie.Value) {
		return ""
	}

	return cookie.Value
}
