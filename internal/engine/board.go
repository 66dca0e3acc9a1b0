package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

const Size = 3

var (
	ErrInvalidAction     = errors.New("invalid action")
	ErrInvalidBoardState = errors.New("invalid board state")
	ErrInvalidCell       = errors.New("invalid cell value")
)

// Cell is the content of a single square.
type Cell uint8

const (
	Empty Cell = iota
	MarkX
	MarkO
)

func (that Cell) String() string {
	switch that {
	case MarkX:
		return "X"
	case MarkO:
		return "O"
	default:
		return ""
	}
}

// Opponent returns the other mark. Empty has no opponent.
func (that Cell) Opponent() Cell {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func ParseCell(value string) (Cell, error) {
	switch strings.ToUpper(strings.TrimSpace(value)) {
	case "X":
		return MarkX, nil
	case "O":
		return MarkO, nil
	case "":
		return Empty, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidCell, value)
	}
}

func (that Cell) MarshalJSON() ([]byte, error) {
	return json.Marshal(that.String())
}

func (that *Cell) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err != nil {
		return fmt.Errorf("cell must be a string: %w", err)
	}

	cell, err := ParseCell(value)
	if err != nil {
		return err
	}

	*that = cell
	return nil
}

// Action identifies the square to fill.
type Action struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func (that Action) InBounds() bool {
	return that.Row >= 0 && that.Row < Size && that.Col >= 0 && that.Col < Size
}

func (that Action) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Board is a row-major 3x3 grid. It is a value type: every transition returns a copy.
type Board [Size][Size]Cell

// UnmarshalJSON accepts exactly Size rows of Size cells. A missing or extra square is an error
// rather than being filled in or dropped.
func (that *Board) UnmarshalJSON(data []byte) error {
	var rows [][]Cell
	if err := json.Unmarshal(data, &rows); err != nil {
		return err
	}

	if len(rows) != Size {
		return fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidBoardState, Size, len(rows))
	}

	var board Board
	for i, row := range rows {
		if len(row) != Size {
			return fmt.Errorf("%w: row %d has %d cells", ErrInvalidBoardState, i, len(row))
		}
		copy(board[i][:], row)
	}

	*that = board
	return nil
}

// InitialState returns the empty board.
func InitialState() Board {
	return Board{}
}

func (that Board) counts() (int, int) {
	var xCount, oCount int
	for _, row := range that {
		for _, cell := range row {
			switch cell {
			case MarkX:
				xCount++
			case MarkO:
				oCount++
			}
		}
	}

	return xCount, oCount
}

// ActivePlayer returns the mark that moves next. X always opens, so the side to move
// is derived from the mark counts alone.
func ActivePlayer(board Board) (Cell, error) {
	if board == InitialState() {
		return MarkX, nil
	}

	xCount, oCount := board.counts()
	switch xCount - oCount {
	case 1:
		return MarkO, nil
	case 0:
		return MarkX, nil
	default:
		return Empty, fmt.Errorf("%w: %d X marks against %d O marks", ErrInvalidBoardState, xCount, oCount)
	}
}

// LegalActions lists the empty squares in row-major order.
func LegalActions(board Board) []Action {
	actions := make([]Action, 0, Size*Size)
	for i, row := range board {
		for j, cell := range row {
			if cell == Empty {
				actions = append(actions, Action{Row: i, Col: j})
			}
		}
	}

	return actions
}

// Apply returns the board that results from the active player marking the given square.
// The input board is left untouched.
func Apply(board Board, action Action) (Board, error) {
	if !action.InBounds() {
		return board, fmt.Errorf("%w: %s is outside the board", ErrInvalidAction, action)
	}

	player, err := ActivePlayer(board)
	if err != nil {
		return board, err
	}

	next := board
	next[action.Row][action.Col] = player

	return next, nil
}

func (that Board) transpose() Board {
	var transposed Board
	for i := range Size {
		for j := range Size {
			transposed[j][i] = that[i][j]
		}
	}

	return transposed
}

func lineOwner(line [Size]Cell) Cell {
	if line[0] != Empty && line[0] == line[1] && line[1] == line[2] {
		return line[0]
	}

	return Empty
}

// Winner checks rows, then columns, then both diagonals. Empty means nobody has three in a row.
func Winner(board Board) Cell {
	for _, row := range board {
		if owner := lineOwner(row); owner != Empty {
			return owner
		}
	}

	for _, column := range board.transpose() {
		if owner := lineOwner(column); owner != Empty {
			return owner
		}
	}

	diagonals := [2][Size]Cell{
		{board[0][2], board[1][1], board[2][0]},
		{board[0][0], board[1][1], board[2][2]},
	}

	// X is checked on both diagonals before O.
	for _, mark := range []Cell{MarkX, MarkO} {
		for _, diagonal := range diagonals {
			if lineOwner(diagonal) == mark {
				return mark
			}
		}
	}

	return Empty
}

// IsTerminal reports whether the game is over: somebody won or the board is full.
func IsTerminal(board Board) bool {
	if Winner(board) != Empty {
		return true
	}

	return len(LegalActions(board)) == 0
}

// Utility scores a finished board from X's side: +1 X won, -1 O won, 0 otherwise.
// It is only meaningful for terminal boards.
func Utility(board Board) int {
	switch Winner(board) {
	case MarkX:
		return 1
	case MarkO:
		return -1
	default:
		return 0
	}
}

// String renders the board as three lines using '.' for empty squares.
func (that Board) String() string {
	var builder strings.Builder
	for i, row := range that {
		for _, cell := range row {
			if cell == Empty {
				builder.WriteByte('.')
				continue
			}
			builder.WriteString(cell.String())
		}
		if i < Size-1 {
			builder.WriteByte('\n')
		}
	}

	return builder.String()
}
