package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const randomMark = "random"

type GamePlayService interface {
	CreateGame(ctx context.Context, gameType, botMark string) (*entity.Game, error)
	GetGame(ctx context.Context, gameID string) (*entity.Game, error)
	DeleteGame(ctx context.Context, gameID string) error

	MakeTurn(ctx context.Context, gameID, mark string, action engine.Action) (*entity.Game, error)

	Analyze(board engine.Board) (*entity.Analysis, error)
}

type gamePlayService struct {
	logger *slog.Logger

	gameService GameService
	botService  BotService

	defaultBotMark string
}

// NewGamePlayService - defaultBotMark is used for bot games created without a mark: X, O or "random".
func NewGamePlayService(logger *slog.Logger, gameService GameService, botService BotService, defaultBotMark string) GamePlayService {
	return &gamePlayService{
		logger:         logger.With("component", "gameplay"),
		gameService:    gameService,
		botService:     botService,
		defaultBotMark: defaultBotMark,
	}
}

func (that *gamePlayService) CreateGame(ctx context.Context, gameType, botMark string) (*entity.Game, error) {
	if !entity.IsValidType(gameType) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrUnknownGameType, gameType)
	}

	if gameType == entity.WithBotType {
		mark, err := that.resolveBotMark(botMark)
		if err != nil {
			return nil, err
		}
		botMark = mark
	}

	game, err := that.gameService.CreateGame(ctx, gameType, botMark)
	if err != nil {
		return nil, fmt.Errorf("failed to create new game: %w", err)
	}

	// the bot opens when it plays X
	if game.IsBotTurn() {
		if err = that.botService.MakeTurn(game); err != nil {
			return nil, fmt.Errorf("bot failed to make first turn: %w", err)
		}

		if err = that.gameService.UpdateGame(ctx, game); err != nil {
			return nil, fmt.Errorf("failed to update game with bot: %w", err)
		}
	}

	that.logger.Info("game created", "gameID", game.ID, "type", game.Type, "botMark", game.BotMark)

	return game, nil
}

func (that *gamePlayService) resolveBotMark(botMark string) (string, error) {
	if botMark == "" {
		botMark = that.defaultBotMark
	}

	if botMark == randomMark {
		return entity.GetRandomMark(), nil
	}

	if !entity.IsValidMark(botMark) {
		return "", fmt.Errorf("%w: %q", apperror.ErrInvalidMark, botMark)
	}

	return botMark, nil
}

func (that *gamePlayService) GetGame(ctx context.Context, gameID string) (*entity.Game, error) {
	game, err := that.gameService.GetGameByID(ctx, gameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game by id: %w", err)
	}

	return game, nil
}

func (that *gamePlayService) DeleteGame(ctx context.Context, gameID string) error {
	if err := that.gameService.DeleteGame(ctx, gameID); err != nil {
		return fmt.Errorf("failed to delete game by id: %w", err)
	}

	return nil
}

func (that *gamePlayService) MakeTurn(ctx context.Context, gameID, mark string, action engine.Action) (*entity.Game, error) {
	log := that.logger.With("method", "MakeTurn", "gameID", gameID)

	if !entity.IsValidMark(mark) {
		return nil, fmt.Errorf("%w: %q", apperror.ErrInvalidMark, mark)
	}

	game, err := that.gameService.ModifyGame(ctx, gameID, func(game *entity.Game) error {
		// nobody plays the bot's mark for it
		if game.IsWithBot() && mark == game.BotMark {
			return apperror.ErrNotYourTurn
		}

		if err := game.MakeTurn(mark, action); err != nil {
			return fmt.Errorf("failed to make turn: %w", err)
		}

		if game.IsBotTurn() {
			if err := that.botService.MakeTurn(game); err != nil {
				return fmt.Errorf("bot failed to make turn: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	if game.IsFinished() {
		log.Info("game finished", "winner", game.Winner)
	}

	return game, nil
}

func (that *gamePlayService) Analyze(board engine.Board) (*entity.Analysis, error) {
	player, err := engine.ActivePlayer(board)
	if err != nil {
		return nil, fmt.Errorf("failed to determine active player: %w", err)
	}

	analysis := &entity.Analysis{
		Board:    board,
		Scores:   []engine.ScoredAction{},
		Terminal: engine.IsTerminal(board),
		Winner:   engine.Winner(board).String(),
		Utility:  engine.Utility(board),
	}

	if analysis.Terminal {
		return analysis, nil
	}

	scores, err := engine.ScoreActions(board)
	if err != nil {
		return nil, fmt.Errorf("failed to score actions: %w", err)
	}

	best, err := engine.PickBest(player, scores)
	if err != nil {
		return nil, fmt.Errorf("failed to find best action: %w", err)
	}

	analysis.Player = player.String()
	analysis.Scores = scores
	analysis.Best = &best

	return analysis, nil
}
