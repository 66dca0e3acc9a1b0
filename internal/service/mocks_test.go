package service

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/mock"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockGameRepo struct {
	mock.Mock
}

func newMockGameRepo(t *testing.T) *mockGameRepo {
	t.Helper()

	repo := &mockGameRepo{}
	t.Cleanup(func() { repo.AssertExpectations(t) })

	return repo
}

func (that *mockGameRepo) CreateOrUpdate(ctx context.Context, game *entity.Game) error {
	args := that.Called(ctx, game)
	return args.Error(0)
}

func (that *mockGameRepo) GetByID(ctx context.Context, id string) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	return game, args.Error(1)
}

// UpdateByID runs update against the game the expectation returns, the way the repository does
// against the stored one.
func (that *mockGameRepo) UpdateByID(ctx context.Context, id string, update func(game *entity.Game) error) (*entity.Game, error) {
	args := that.Called(ctx, id)
	game, _ := args.Get(0).(*entity.Game)
	if err := args.Error(1); err != nil {
		return game, err
	}

	if err := update(game); err != nil {
		return game, err
	}

	return game, nil
}

func (that *mockGameRepo) DeleteByID(ctx context.Context, id string) error {
	args := that.Called(ctx, id)
	return args.Error(0)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
