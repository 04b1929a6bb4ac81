// Package tui draws a hot-seat game in the terminal.
package tui

import (
	"log/slog"
	"strconv"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
)

const (
	cellWidth  = 7
	cellHeight = 3

	// focus slot after the nine cells
	resetSlot = entity.BoardSize
)

var (
	cellStyle    = tcell.StyleDefault.Background(tcell.ColorDarkSlateGray).Foreground(tcell.ColorWhite)
	focusStyle   = tcell.StyleDefault.Background(tcell.ColorSteelBlue).Foreground(tcell.ColorWhite)
	winningStyle = tcell.StyleDefault.Background(tcell.ColorGold).Foreground(tcell.ColorBlack)
)

type Board struct {
	logger *slog.Logger
	app    *tview.Application
	game   *entity.Game

	cells  [entity.BoardSize]*tview.Button
	status *tview.TextView
	reset  *tview.Button
	root   *tview.Flex

	focus   int
	winning [entity.BoardSize]bool
}

func New(logger *slog.Logger, app *tview.Application, game *entity.Game) *Board {
	board := &Board{
		logger: logger.With("component", "tui"),
		app:    app,
		game:   game,
		status: tview.NewTextView().SetTextAlign(tview.AlignCenter),
	}

	grid := tview.NewGrid().
		SetRows(cellHeight, cellHeight, cellHeight).
		SetColumns(cellWidth, cellWidth, cellWidth).
		SetGap(0, 1)

	for i := range board.cells {
		cell := i
		button := tview.NewButton("").SetSelectedFunc(func() {
			board.focus = cell
			board.Click(cell)
		})

		board.cells[i] = button
		grid.AddItem(button, i/3, i%3, 1, 1, 0, 0, i == 0)
	}

	board.reset = tview.NewButton("Reset Game").SetSelectedFunc(board.Reset)

	board.root = tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(grid, cellHeight*3, 0, true).
		AddItem(board.status, 1, 0, false).
		AddItem(board.reset, 1, 0, false)
	board.root.SetBorder(true).SetTitle(" Tic-Tac-Toe ")
	board.root.SetInputCapture(board.HandleKey)

	board.refresh()

	return board
}

// Root - primitive to hand to the application.
func (that *Board) Root() tview.Primitive {
	return that.root
}

// Focused - primitive that should own the focus.
func (that *Board) Focused() tview.Primitive {
	if that.focus == resetSlot {
		return that.reset
	}

	return that.cells[that.focus]
}

// Click - the current player marks cell, ignored clicks leave the board as it was.
func (that *Board) Click(cell int) bool {
	mark := that.game.Turn

	applied := that.game.ApplyMove(cell)
	if !applied {
		that.logger.Debug("move ignored", "cell", cell, "outcome", that.game.Outcome())
		return false
	}

	that.logger.Debug("move applied", "cell", cell, "mark", mark)

	if outcome := that.game.Outcome(); outcome.IsFinished() {
		that.logger.Info("game finished", "outcome", outcome)
	}

	that.refresh()

	return true
}

func (that *Board) Reset() {
	that.game.Reset()
	that.logger.Info("game reset")

	that.refresh()
}

func (that *Board) Game() entity.Game {
	return *that.game
}

func (that *Board) Label(cell int) string {
	return that.cells[cell].GetLabel()
}

func (that *Board) Status() string {
	return that.status.GetText(true)
}

// Winning - reports whether cell is drawn as part of the winning line.
func (that *Board) Winning(cell int) bool {
	return that.winning[cell]
}

// HandleKey - keyboard shortcuts on top of the focused button's own handling.
func (that *Board) HandleKey(event *tcell.EventKey) *tcell.EventKey {
	switch event.Key() {
	case tcell.KeyEscape:
		that.app.Stop()
		return nil
	case tcell.KeyTab:
		that.moveFocus((that.focus + 1) % (resetSlot + 1))
		return nil
	case tcell.KeyBacktab:
		that.moveFocus((that.focus + resetSlot) % (resetSlot + 1))
		return nil
	case tcell.KeyUp:
		that.stepFocus(-3)
		return nil
	case tcell.KeyDown:
		that.stepFocus(3)
		return nil
	case tcell.KeyLeft:
		that.stepFocus(-1)
		return nil
	case tcell.KeyRight:
		that.stepFocus(1)
		return nil
	case tcell.KeyRune:
	default:
		return event
	}

	switch r := event.Rune(); {
	case r >= '1' && r <= '9':
		cell, _ := strconv.Atoi(string(r))
		that.moveFocus(cell - 1)
		that.Click(cell - 1)
	case r == 'r' || r == 'R':
		that.Reset()
	case r == 'q' || r == 'Q':
		that.app.Stop()
	default:
		return event
	}

	return nil
}

// stepFocus - arrows walk the grid and stop at its edges, leaving the reset button for Tab.
func (that *Board) stepFocus(delta int) {
	if that.focus == resetSlot {
		that.moveFocus(entity.BoardSize - 1)
		return
	}

	next := that.focus + delta
	if next < 0 || next >= entity.BoardSize {
		return
	}

	if (delta == 1 || delta == -1) && next/3 != that.focus/3 {
		return
	}

	that.moveFocus(next)
}

func (that *Board) moveFocus(slot int) {
	that.focus = slot
	that.app.SetFocus(that.Focused())
}

func (that *Board) refresh() {
	that.winning = [entity.BoardSize]bool{}
	if line, ok := that.game.Board.WinningLine(); ok {
		for _, cell := range line {
			that.winning[cell] = true
		}
	}

	for i, button := range that.cells {
		label := string(that.game.Board[i])
		if label == "" {
			label = " "
		}

		style := cellStyle
		if that.winning[i] {
			style = winningStyle
		}

		button.SetLabel(label).
			SetStyle(style).
			SetActivatedStyle(focusStyle)
	}

	that.status.SetText(that.game.StatusText())
}
