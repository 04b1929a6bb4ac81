package dto

import "github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"

// Game - what a rendering layer needs to draw the board and the status line.
type Game struct {
	ID          string         `json:"id"`
	Board       [9]string      `json:"board"`
	Turn        string         `json:"player_turn"`
	Outcome     entity.Outcome `json:"outcome"`
	Winner      string         `json:"winner,omitempty"`
	WinningLine []int          `json:"winning_line,omitempty"`
	Status      string         `json:"status"`
	Finished    bool           `json:"finished"`
}

func NewGame(game *entity.Game) Game {
	outcome := game.Outcome()

	view := Game{
		ID:       game.ID,
		Turn:     string(game.Turn),
		Outcome:  outcome,
		Winner:   string(outcome.Winner()),
		Status:   game.StatusText(),
		Finished: outcome.IsFinished(),
	}

	for i, cell := range game.Board {
		view.Board[i] = string(cell)
	}

	if line, ok := game.Board.WinningLine(); ok {
		view.WinningLine = line[:]
	}

	return view
}

// Cell - one square of the rendered grid.
type Cell struct {
	Index   int
	Mark    string
	Winning bool
}

// Rows - the board as three rows of cells, top to bottom.
func (that Game) Rows() [3][3]Cell {
	winning := make(map[int]bool, len(that.WinningLine))
	for _, cell := range that.WinningLine {
		winning[cell] = true
	}

	var rows [3][3]Cell
	for i, mark := range that.Board {
		rows[i/3][i%3] = Cell{
			Index:   i,
			Mark:    mark,
			Winning: winning[i],
		}
	}

	return rows
}
