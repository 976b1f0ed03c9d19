// Command cli plays a single-player game against the computer in a terminal.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/config"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/minimax"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/render"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

var errQuit = errors.New("quit")

func main() {
	conf, err := config.Load("config.yml")
	if err != nil {
		if conf, err = config.FromEnv(); err != nil {
			fmt.Fprintf(os.Stderr, "config: %v\n", err)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	game := &cli{
		in:     bufio.NewScanner(os.Stdin),
		out:    os.Stdout,
		render: render.New(os.Stdout),
		delay:  conf.ComputerMoveDelay,
		logger: logger,
	}

	if err = game.run(); err != nil && !errors.Is(err, errQuit) {
		logger.Error("cli stopped", "error", err)
		os.Exit(1)
	}
}

type cli struct {
	in     *bufio.Scanner
	out    io.Writer
	render *render.Renderer
	delay  time.Duration
	logger *slog.Logger
}

// run - plays games until the player declines a rematch; history is carried across games.
func (that *cli) run() error {
	var history []session.HistoryEntry

	for {
		first, err := that.askYesNo("Do you want to go first? [Y/n] ", true)
		if err != nil {
			return err
		}

		s, err := that.play(session.New(first, history))
		if err != nil {
			return err
		}
		history = s.History

		fmt.Fprintf(that.out, "Games: %d\n", len(history))

		again, err := that.askYesNo("Play again? [Y/n] ", true)
		if err != nil || !again {
			return err
		}
	}
}

func (that *cli) play(s *session.Session) (*session.Session, error) {
	for !s.IsGameOver {
		fmt.Fprint(that.out, "\n"+that.render.Board(s.Board))
		fmt.Fprintln(that.out, that.render.Status(s))

		if s.IsComputerTurn() {
			time.Sleep(that.delay)
			s = session.ApplyMove(s, minimax.BestMove(s.Board, s.ComputerPlayer, s.HumanPlayer))
			continue
		}

		cell, err := that.askCell(s.Board)
		if err != nil {
			return nil, err
		}
		s = session.ApplyMove(s, cell)
	}

	fmt.Fprint(that.out, "\n"+that.render.Board(s.Board))
	fmt.Fprintln(that.out, that.render.Status(s))

	return s, nil
}

func (that *cli) askCell(board tictactoe.Board) (int, error) {
	for {
		line, err := that.prompt("Cell (0-8, q to quit): ")
		if err != nil {
			return 0, err
		}

		if line == "q" {
			return 0, errQuit
		}

		cell, err := strconv.Atoi(line)
		if err == nil && tictactoe.IsValidMove(board, cell) {
			return cell, nil
		}

		fmt.Fprintln(that.out, "That cell is not available.")
	}
}

func (that *cli) askYesNo(question string, fallback bool) (bool, error) {
	line, err := that.prompt(question)
	if err != nil {
		return false, err
	}

	switch strings.ToLower(line) {
	case "":
		return fallback, nil
	case "y", "yes":
		return true, nil
	case "q":
		return false, errQuit
	default:
		return false, nil
	}
}

func (that *cli) prompt(question string) (string, error) {
	fmt.Fprint(that.out, question)

	if !that.in.Scan() {
		if err := that.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}

		return "", errQuit
	}

	return strings.TrimSpace(that.in.Text()), nil
}
