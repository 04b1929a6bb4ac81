package main

import (
	"flag"
	"io"
	"log/slog"
	"os"

	"github.com/rivo/tview"

	"github.com/rocketscienceinc/tictactoe-hotseat/internal/entity"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-hotseat/internal/tui"
)

func main() {
	logFile := flag.String("log-file", "", "write debug logs to this file")
	flag.Parse()

	logger, closeLog, err := initLogger(*logFile)
	if err != nil {
		slog.Error("failed to open log file", "error", err)
		os.Exit(1)
	}
	defer closeLog()

	app := tview.NewApplication().EnableMouse(true)
	board := tui.New(logger, app, entity.NewGame(pkg.GenerateNewSessionID()))

	if err = app.SetRoot(board.Root(), true).SetFocus(board.Focused()).Run(); err != nil {
		logger.Error("terminal ui stopped", "error", err)
		closeLog()
		os.Exit(1)
	}
}

// initLogger - the terminal belongs to the ui, so logs go to a file or nowhere.
func initLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewJSONHandler(io.Discard, nil)), func() {}, nil
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, nil, err
	}

	logger := slog.New(slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))

	return logger, func() { _ = file.Close() }, nil
}
