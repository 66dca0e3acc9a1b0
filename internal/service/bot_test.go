package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/engine"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func newBotGame(botMark string) *entity.Game {
	game := entity.NewGame("game-1", entity.WithBotType)
	game.BotMark = botMark
	return game
}

func TestBotService_MakeTurn(t *testing.T) {
	bot := NewBotService(discardLogger())

	t.Run("Bot opens in the top left corner", func(t *testing.T) {
		// Given: an empty board with the bot playing X
		game := newBotGame(entity.PlayerX)

		// When: the bot moves
		err := bot.MakeTurn(game)

		// Then: the first of the equally good openings is played
		require.NoError(t, err)
		assert.Equal(t, engine.MarkX, game.Board[0][0])
		assert.Equal(t, entity.PlayerO, game.Turn)
		assert.Equal(t, []engine.Action{{Row: 0, Col: 0}}, game.History)
	})

	t.Run("Bot blocks an immediate threat", func(t *testing.T) {
		// Given: X threatens the top row and the bot plays O
		game := newBotGame(entity.PlayerO)
		for _, action := range []engine.Action{{Row: 0, Col: 0}, {Row: 1, Col: 1}, {Row: 0, Col: 1}} {
			require.NoError(t, game.MakeTurn(game.Turn, action))
		}

		// When: the bot moves
		require.NoError(t, bot.MakeTurn(game))

		// Then: the top right corner is taken
		assert.Equal(t, engine.MarkO, game.Board[0][2])
	})

	t.Run("Bot takes a win", func(t *testing.T) {
		// Given: the bot (X) has two in the left column
		game := newBotGame(entity.PlayerX)
		for _, action := range []engine.Action{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}, {Row: 1, Col: 1}} {
			require.NoError(t, game.MakeTurn(game.Turn, action))
		}

		// When: the bot moves
		require.NoError(t, bot.MakeTurn(game))

		// Then: the game is won
		assert.True(t, game.IsFinished())
		assert.Equal(t, entity.PlayerX, game.Winner)
	})

	t.Run("Not the bot's turn", func(t *testing.T) {
		// Given: an empty board with the bot playing O
		game := newBotGame(entity.PlayerO)

		// When: the bot is asked to move
		err := bot.MakeTurn(game)

		// Then: ErrNotYourTurn is returned
		require.ErrorIs(t, err, apperror.ErrNotYourTurn)
	})

	t.Run("Finished game", func(t *testing.T) {
		// Given: a finished game
		game := newBotGame(entity.PlayerO)
		game.Status = entity.StatusFinished

		// Then: the bot refuses to move
		require.ErrorIs(t, bot.MakeTurn(game), apperror.ErrGameFinished)
	})

	t.Run("Game without a bot", func(t *testing.T) {
		// Given: a private game
		game := entity.NewGame("game-1", entity.PrivateType)

		// Then: there is no bot to move
		require.ErrorIs(t, bot.MakeTurn(game), apperror.ErrGameWithoutABot)
	})
}
