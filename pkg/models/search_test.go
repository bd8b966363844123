package models_test

import (
	"testing"

	"github.com/jinzhu/copier"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capydb/capydb-go/pkg/models"
	"github.com/capydb/capydb-go/pkg/testutils"
)

func TestQueryResponsePreservesServerOrder(t *testing.T) {
	var matches []models.QueryMatch
	err := copier.Copy(&matches, &testutils.TestMatches)
	require.NoError(t, err)

	response := models.NewQueryResponse(matches)
	require.Equal(t, len(testutils.TestMatches), response.Len())

	first, ok := response.First()
	require.True(t, ok)
	assert.Equal(t, "profile.bio", first.Path)
	assert.Equal(t, "doc-1", first.Document.ID)
	assert.InDelta(t, 0.93, first.Score, 0.0001)

	// The client trusts the server's ranking as-is
	for index, match := range response.Matches {
		assert.Equal(t, testutils.TestMatches[index].Chunk, match.Chunk)
	}
}

func TestQueryResponseEmpty(t *testing.T) {
	response := models.NewQueryResponse(nil)

	assert.Equal(t, 0, response.Len())
	assert.NotNil(t, response.Matches)

	_, ok := response.First()
	assert.False(t, ok)
}
