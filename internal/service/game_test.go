package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errRedisDown = errors.New("redis down")

func TestGameService_CreateGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores a new bot game", func(t *testing.T) {
		// Given: a repository that accepts writes
		repo := newMockGameRepo(t)
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		gameService := NewGameService(repo)

		// When: creating a bot game
		game, err := gameService.CreateGame(ctx, entity.WithBotType, entity.PlayerO)

		// Then: the game starts empty with a fresh id
		require.NoError(t, err)
		assert.NotEmpty(t, game.ID)
		assert.Equal(t, engine.InitialState(), game.Board)
		assert.Equal(t, entity.PlayerX, game.Turn)
		assert.Equal(t, entity.PlayerO, game.BotMark)
		assert.Equal(t, entity.StatusOngoing, game.Status)
	})

	t.Run("Private games never carry a bot mark", func(t *testing.T) {
		repo := newMockGameRepo(t)
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(nil).Once()
		gameService := NewGameService(repo)

		game, err := gameService.CreateGame(ctx, entity.PrivateType, entity.PlayerO)

		require.NoError(t, err)
		assert.Empty(t, game.BotMark)
	})

	t.Run("Storage failure", func(t *testing.T) {
		// Given: a repository that fails
		repo := newMockGameRepo(t)
		repo.On("CreateOrUpdate", mock.Anything, mock.AnythingOfType("*entity.Game")).Return(errRedisDown).Once()
		gameService := NewGameService(repo)

		// When: creating a game
		game, err := gameService.CreateGame(ctx, entity.PrivateType, "")

		// Then: the error is passed on
		require.ErrorIs(t, err, errRedisDown)
		assert.Nil(t, game)
	})
}

func TestGameService_GetGameByID(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the stored game", func(t *testing.T) {
		repo := newMockGameRepo(t)
		stored := entity.NewGame("game-1", entity.PrivateType)
		repo.On("GetByID", mock.Anything, "game-1").Return(stored, nil).Once()

		game, err := NewGameService(repo).GetGameByID(ctx, "game-1")

		require.NoError(t, err)
		assert.Equal(t, stored, game)
	})

	t.Run("Not found", func(t *testing.T) {
		repo := newMockGameRepo(t)
		repo.On("GetByID", mock.Anything, "missing").Return(&entity.Game{}, apperror.ErrGameNotFound).Once()

		game, err := NewGameService(repo).GetGameByID(ctx, "missing")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, game)
	})
}

func TestGameService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()

	repo := newMockGameRepo(t)
	game := entity.NewGame("game-1", entity.PrivateType)
	repo.On("CreateOrUpdate", mock.Anything, game).Return(nil).Once()
	repo.On("DeleteByID", mock.Anything, "game-1").Return(nil).Once()
	repo.On("DeleteByID", mock.Anything, "missing").Return(apperror.ErrGameNotFound).Once()

	gameService := NewGameService(repo)

	require.NoError(t, gameService.UpdateGame(ctx, game))
	require.NoError(t, gameService.DeleteGame(ctx, "game-1"))
	require.ErrorIs(t, gameService.DeleteGame(ctx, "missing"), apperror.ErrGameNotFound)
}

func TestGameService_ModifyGame(t *testing.T) {
	ctx := context.Background()

	t.Run("Modification is applied to the stored game", func(t *testing.T) {
		// Given: a stored private game
		repo := newMockGameRepo(t)
		stored := entity.NewGame("game-1", entity.PrivateType)
		repo.On("UpdateByID", mock.Anything, "game-1").Return(stored, nil).Once()

		// When: X plays the centre through ModifyGame
		game, err := NewGameService(repo).ModifyGame(ctx, "game-1", func(game *entity.Game) error {
			return game.MakeTurn(entity.PlayerX, engine.Action{Row: 1, Col: 1})
		})

		// Then: the returned game carries the turn
		require.NoError(t, err)
		assert.Equal(t, engine.MarkX, game.Board[1][1])
		assert.Equal(t, entity.PlayerO, game.Turn)
	})

	t.Run("Rejected modification is passed on", func(t *testing.T) {
		repo := newMockGameRepo(t)
		stored := entity.NewGame("game-1", entity.PrivateType)
		repo.On("UpdateByID", mock.Anything, "game-1").Return(stored, nil).Once()

		_, err := NewGameService(repo).ModifyGame(ctx, "game-1", func(game *entity.Game) error {
			return game.MakeTurn(entity.PlayerO, engine.Action{Row: 1, Col: 1})
		})

		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})
}
