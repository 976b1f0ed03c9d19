// Package render draws boards and session status for terminals.
package render

import (
	"io"
	"strconv"
	"strings"

	"github.com/muesli/termenv"

	"github.com/rocketscienceinc/tictactoe-minimax/internal/session"
	"github.com/rocketscienceinc/tictactoe-minimax/internal/tictactoe"
)

const rowSeparator = "---+---+---"

// Renderer - colours marks according to the terminal's detected profile.
type Renderer struct {
	out *termenv.Output
}

// New - opts are passed through to termenv, e.g. termenv.WithProfile(termenv.Ascii) for plain text.
func New(w io.Writer, opts ...termenv.OutputOption) *Renderer {
	return &Renderer{out: termenv.NewOutput(w, opts...)}
}

// Board - three rows; empty cells show their index so the player knows what to type.
func (that *Renderer) Board(board tictactoe.Board) string {
	var sb strings.Builder

	for row := 0; row < 3; row++ {
		if row > 0 {
			sb.WriteString(rowSeparator)
			sb.WriteByte('\n')
		}

		for col := 0; col < 3; col++ {
			if col > 0 {
				sb.WriteByte('|')
			}

			index := row*3 + col
			sb.WriteByte(' ')
			sb.WriteString(that.cell(board[index], index))
			sb.WriteByte(' ')
		}

		sb.WriteByte('\n')
	}

	return sb.String()
}

// Status - one line describing whose turn it is or how the game ended.
func (that *Renderer) Status(s *session.Session) string {
	switch {
	case s.Result == session.ResultWin:
		return that.out.String("You win!").Foreground(that.out.Color("2")).Bold().String()
	case s.Result == session.ResultLose:
		return that.out.String("You lose.").Foreground(that.out.Color("1")).Bold().String()
	case s.Result == session.ResultTie:
		return that.out.String("It's a tie.").Bold().String()
	case s.IsHumanTurn():
		return "Your move (" + that.mark(s.HumanPlayer) + ")"
	default:
		return "Computer is thinking..."
	}
}

func (that *Renderer) cell(mark tictactoe.Mark, index int) string {
	if mark == tictactoe.Empty {
		return that.out.String(strconv.Itoa(index)).Faint().String()
	}

	return that.mark(mark)
}

func (that *Renderer) mark(mark tictactoe.Mark) string {
	color := "4"
	if mark == tictactoe.PlayerO {
		color = "3"
	}

	return that.out.String(string(mark)).Foreground(that.out.Color(color)).Bold().String()
}
