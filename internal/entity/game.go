package entity

import (
	"errors"
	"fmt"
)

// Mark - content of a single cell, also used as the turn flag.
type Mark string

const (
	EmptyCell Mark = ""
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
)

// Opponent - returns the mark that plays after m.
func (m Mark) Opponent() Mark {
	if m == PlayerX {
		return PlayerO
	}
	return PlayerX
}

func (m Mark) isValid() bool {
	return m == EmptyCell || m == PlayerX || m == PlayerO
}

// Outcome - derived game result, never stored.
type Outcome string

const (
	OutcomeInProgress Outcome = "in_progress"
	OutcomeWonByX     Outcome = "won_by_x"
	OutcomeWonByO     Outcome = "won_by_o"
	OutcomeDraw       Outcome = "draw"
)

func (o Outcome) IsFinished() bool {
	return o != OutcomeInProgress
}

// Winner - returns the winning mark or EmptyCell for draw and in-progress games.
func (o Outcome) Winner() Mark {
	switch o {
	case OutcomeWonByX:
		return PlayerX
	case OutcomeWonByO:
		return PlayerO
	default:
		return EmptyCell
	}
}

func wonBy(mark Mark) Outcome {
	if mark == PlayerX {
		return OutcomeWonByX
	}
	return OutcomeWonByO
}

const BoardSize = 9

var (
	ErrInvalidGame = errors.New("invalid game state")

	// WinCombos - rows, columns and diagonals, in evaluation order.
	WinCombos = [8][3]int{
		{0, 1, 2},
		{3, 4, 5},
		{6, 7, 8},
		{0, 3, 6},
		{1, 4, 7},
		{2, 5, 8},
		{0, 4, 8},
		{2, 4, 6},
	}
)

// Board - 9 cells, row-major: index = row*3 + col.
type Board [BoardSize]Mark

// WinningLine - returns the first line holding three identical non-empty marks.
func (b Board) WinningLine() ([3]int, bool) {
	for _, combo := range WinCombos {
		a, c1, c2 := b[combo[0]], b[combo[1]], b[combo[2]]
		if a != EmptyCell && a == c1 && c1 == c2 {
			return combo, true
		}
	}

	return [3]int{}, false
}

func (b Board) IsFull() bool {
	for _, cell := range b {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

func (b Board) Count(mark Mark) int {
	count := 0
	for _, cell := range b {
		if cell == mark {
			count++
		}
	}

	return count
}

// Outcome - evaluates all winning lines, then fullness.
func (b Board) Outcome() Outcome {
	if line, ok := b.WinningLine(); ok {
		return wonBy(b[line[0]])
	}

	if b.IsFull() {
		return OutcomeDraw
	}

	return OutcomeInProgress
}

// Game - board and turn flag of one hot-seat session.
type Game struct {
	ID    string `json:"id"`
	Board Board  `json:"board"`
	Turn  Mark   `json:"player_turn"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:   id,
		Turn: PlayerX,
	}
}

func (that *Game) Outcome() Outcome {
	return that.Board.Outcome()
}

func (that *Game) IsFinished() bool {
	return that.Outcome().IsFinished()
}

// ApplyMove - places the current mark on cell and flips the turn.
// Out of range cells, occupied cells and finished games leave the game untouched
// and report false.
func (that *Game) ApplyMove(cell int) bool {
	if cell < 0 || cell >= BoardSize {
		return false
	}

	if that.Board[cell] != EmptyCell || that.IsFinished() {
		return false
	}

	that.Board[cell] = that.Turn
	that.Turn = that.Turn.Opponent()

	return true
}

// Reset - clears every cell and gives the first move back to X.
func (that *Game) Reset() {
	that.Board = Board{}
	that.Turn = PlayerX
}

// StatusText - the status line shown above the board.
func (that *Game) StatusText() string {
	switch outcome := that.Outcome(); outcome {
	case OutcomeWonByX, OutcomeWonByO:
		return "Winner: " + string(outcome.Winner())
	case OutcomeDraw:
		return "It's a draw!"
	default:
		return "Next player: " + string(that.Turn)
	}
}

// Validate - checks that the game is reachable from an empty board by legal play.
func (that *Game) Validate() error {
	for i, cell := range that.Board {
		if !cell.isValid() {
			return fmt.Errorf("%w: cell %d holds %q", ErrInvalidGame, i, cell)
		}
	}

	xCount, oCount := that.Board.Count(PlayerX), that.Board.Count(PlayerO)

	var expectedTurn Mark
	switch xCount - oCount {
	case 0:
		expectedTurn = PlayerX
	case 1:
		expectedTurn = PlayerO
	default:
		return fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidGame, xCount, oCount)
	}

	if that.Turn != expectedTurn {
		return fmt.Errorf("%w: turn is %q, expected %q", ErrInvalidGame, that.Turn, expectedTurn)
	}

	xWins, oWins := false, false
	for _, combo := range WinCombos {
		a, b, c := that.Board[combo[0]], that.Board[combo[1]], that.Board[combo[2]]
		if a == EmptyCell || a != b || b != c {
			continue
		}

		if a == PlayerX {
			xWins = true
		} else {
			oWins = true
		}
	}

	switch {
	case xWins && oWins:
		return fmt.Errorf("%w: both players own a winning line", ErrInvalidGame)
	case xWins && expectedTurn != PlayerO, oWins && expectedTurn != PlayerX:
		// the loser moved after the game was decided
		return fmt.Errorf("%w: move made after the game was won", ErrInvalidGame)
	}

	return nil
}
