package pkg

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateGameID(t *testing.T) {
	// When: generating two ids
	first, err := GenerateGameID()
	require.NoError(t, err)
	second, err := GenerateGameID()
	require.NoError(t, err)

	// Then: both are valid and distinct uuids
	_, err = uuid.Parse(first)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}
