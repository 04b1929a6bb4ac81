package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-hotseat/transport/dto"
)

const (
	ActionState = "game:state"
	ActionMove  = "game:move"
	ActionReset = "game:reset"
	ActionError = "error"
)

var (
	ErrMalformedMessage = fmt.Errorf("%w: message is not valid json", apperror.ErrMalformedRequest)
	ErrCellRequired     = fmt.Errorf("%w: cell is required", apperror.ErrMalformedRequest)
	ErrUnknownAction    = apperror.ErrUnknownAction
	errInternal         = errors.New("internal error")
)

// Message - request sent by the client.
type Message struct {
	Action string `json:"action"`
	Cell   *int   `json:"cell,omitempty"`
}

// Response - reply to every message, carrying either the game or the error.
type Response struct {
	Action  string    `json:"action"`
	Game    *dto.Game `json:"game,omitempty"`
	Applied *bool     `json:"applied,omitempty"`
	Error   string    `json:"error,omitempty"`
}

func gameResponse(action string, game dto.Game, applied *bool) *Response {
	return &Response{
		Action:  action,
		Game:    &game,
		Applied: applied,
	}
}

// errorResponse - client errors are echoed, everything else is hidden behind errInternal.
func errorResponse(err error) *Response {
	if !errors.Is(err, apperror.ErrMalformedRequest) && !errors.Is(err, apperror.ErrUnknownAction) {
		err = errInternal
	}

	return &Response{
		Action: ActionError,
		Error:  err.Error(),
	}
}

func isDecodeError(err error) bool {
	var (
		syntaxErr *json.SyntaxError
		typeErr   *json.UnmarshalTypeError
	)

	return errors.As(err, &syntaxErr) || errors.As(err, &typeErr) || errors.Is(err, io.ErrUnexpectedEOF)
}

func (that *Server) handleState(ctx context.Context, sessionID string, _ *Message) (*Response, error) {
	game, err := that.games.GetOrCreateGame(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return gameResponse(ActionState, dto.NewGame(game), nil), nil
}

func (that *Server) handleMove(ctx context.Context, sessionID string, message *Message) (*Response, error) {
	if message.Cell == nil {
		return nil, ErrCellRequired
	}

	game, applied, err := that.games.MakeMove(ctx, sessionID, *message.Cell)
	if err != nil {
		return nil, err
	}

	return gameResponse(ActionMove, dto.NewGame(game), &applied), nil
}

func (that *Server) handleReset(ctx context.Context, sessionID string, _ *Message) (*Response, error) {
	game, err := that.games.Reset(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	return gameResponse(ActionReset, dto.NewGame(game), nil), nil
}
