package service

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type BotService interface {
	MakeTurn(game *entity.Game) error
}

type botService struct {
	logger *slog.Logger
}

// NewBotService - a bot that always plays the minimax move, so it never loses.
func NewBotService(logger *slog.Logger) BotService {
	return &botService{
		logger: logger.With("component", "bot"),
	}
}

func (that *botService) MakeTurn(game *entity.Game) error {
	if !game.IsWithBot() || !entity.IsValidMark(game.BotMark) {
		return apperror.ErrGameWithoutABot
	}

	if err := game.ConfirmOngoingState(); err != nil {
		return err
	}

	if game.Turn != game.BotMark {
		return apperror.ErrNotYourTurn
	}

	action, err := engine.BestAction(game.Board)
	if err != nil {
		return fmt.Errorf("failed to find best action: %w", err)
	}

	if err = game.MakeTurn(game.BotMark, action); err != nil {
		return fmt.Errorf("bot failed to make turn: %w", err)
	}

	that.logger.Debug("bot made turn", "gameID", game.ID, "mark", game.BotMark, "action", action.String())

	return nil
}
