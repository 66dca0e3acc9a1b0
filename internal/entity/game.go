package entity

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
)

const (
	StatusFinished = "finished"
	StatusOngoing  = "ongoing"

	PlayerX   = "X"
	PlayerO   = "O"
	PlayerTie = "-"
)

const (
	PrivateType = "private"
	WithBotType = "bot"
)

var ErrUnknownGameStatus = errors.New("unknown game status")

type Game struct {
	ID      string          `json:"id"`
	Board   engine.Board    `json:"board"`
	Winner  string          `json:"winner"`
	Status  string          `json:"status"`
	Turn    string          `json:"player_turn"`
	Type    string          `json:"type,omitempty"`
	BotMark string          `json:"bot_mark,omitempty"`
	History []engine.Action `json:"history,omitempty"`
}

func NewGame(id, gameType string) *Game {
	return &Game{
		ID:     id,
		Board:  engine.InitialState(),
		Turn:   PlayerX,
		Status: StatusOngoing,
		Type:   gameType,
	}
}

// DetermineGameResult returns the winning mark, PlayerTie for a full board, or "" while the game goes on.
func (that *Game) DetermineGameResult() string {
	if winner := engine.Winner(that.Board); winner != engine.Empty {
		return winner.String()
	}

	if engine.IsTerminal(that.Board) {
		return PlayerTie
	}

	return ""
}

func (that *Game) UpdateGameState() error {
	switch winner := that.DetermineGameResult(); winner {
	// one player wins or tie
	case PlayerX, PlayerO, PlayerTie:
		that.Winner = winner
		that.Status = StatusFinished
		that.Turn = ""
	// game continue
	default:
		player, err := engine.ActivePlayer(that.Board)
		if err != nil {
			return fmt.Errorf("failed to determine turn: %w", err)
		}

		that.Winner = ""
		that.Status = StatusOngoing
		that.Turn = player.String()
	}

	return nil
}

func (that *Game) MakeTurn(playerMark string, action engine.Action) error {
	if that.IsFinished() {
		return apperror.ErrGameFinished
	}

	if !action.InBounds() {
		return fmt.Errorf("%w: %s", engine.ErrInvalidAction, action)
	}

	if that.Turn != playerMark {
		return apperror.ErrNotYourTurn
	}

	if that.Board[action.Row][action.Col] != engine.Empty {
		return apperror.ErrCellOccupied
	}

	board, err := engine.Apply(that.Board, action)
	if err != nil {
		return fmt.Errorf("failed to apply %s: %w", action, err)
	}

	that.Board = board
	that.History = append(that.History, action)

	return that.UpdateGameState()
}

func (that *Game) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Game) IsOngoing() bool {
	return that.Status == StatusOngoing
}

func (that *Game) ConfirmOngoingState() error {
	switch {
	case that.IsFinished():
		return apperror.ErrGameFinished
	case that.IsOngoing():
		return nil
	default:
		return fmt.Errorf("%w: %s", ErrUnknownGameStatus, that.Status)
	}
}

func (that *Game) IsWithBot() bool {
	return that.Type == WithBotType
}

// IsBotTurn reports whether the bot holds the mark that moves next.
func (that *Game) IsBotTurn() bool {
	return that.IsWithBot() && that.IsOngoing() && that.Turn == that.BotMark
}

func IsValidMark(mark string) bool {
	return mark == PlayerX || mark == PlayerO
}

func IsValidType(gameType string) bool {
	return gameType == PrivateType || gameType == WithBotType
}

func GetRandomMark() string {
	if rand.Intn(2) == 0 { //nolint: gosec // it's ok
		return PlayerX
	}
	return PlayerO
}
