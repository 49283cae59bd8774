package metadata_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vmunix/watchrr/internal/metadata"
	"github.com/vmunix/watchrr/internal/metadata/mocks"
	"github.com/vmunix/watchrr/pkg/medianame"
	"github.com/vmunix/watchrr/pkg/tvdb"
	"go.uber.org/mock/gomock"
)

// testLogger returns a discard logger for tests.
func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestResolver_Resolve(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := mocks.NewMockSearcher(ctrl)
	client.EXPECT().
		Search(gomock.Any(), "The Show", 2020, gomock.Any()).
		Return([]tvdb.SearchResult{
			{ID: 101, Name: "The Show", Year: 2020, Type: "series"},
			{ID: 202, Name: "The Other Show", Year: 2015, Type: "series"},
		}, nil)

	resolver := metadata.NewResolver(client, 85, testLogger())
	rec, err := resolver.Resolve(context.Background(),
		medianame.ParsedName{Title: "The Show", Year: 2020}, metadata.KindSeries)

	require.NoError(t, err)
	assert.Equal(t, 101, rec.ID)
	assert.Equal(t, "The Show", rec.Name)
	assert.Equal(t, metadata.KindSeries, rec.Kind)
	assert.Equal(t, 2020, rec.Year)
}

func TestResolver_Resolve_EmptyTitle(t *testing.T) {
	ctrl := gomock.NewController(t)

	// No search call is expected for an empty title.
	client := mocks.NewMockSearcher(ctrl)
	resolver := metadata.NewResolver(client, 85, testLogger())

	_, err := resolver.Resolve(context.Background(), medianame.ParsedName{}, "")
	assert.ErrorIs(t, err, metadata.ErrEmptyTitle)
	assert.True(t, metadata.IsNoMatch(err))
}

func TestResolver_Resolve_NoResults(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := mocks.NewMockSearcher(ctrl)
	client.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, nil)

	resolver := metadata.NewResolver(client, 85, testLogger())
	_, err := resolver.Resolve(context.Background(),
		medianame.ParsedName{Title: "Nothing Here"}, "")

	assert.ErrorIs(t, err, metadata.ErrNoResults)
}

func TestResolver_Resolve_TypeHintFiltersEverything(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := mocks.NewMockSearcher(ctrl)
	client.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]tvdb.SearchResult{
			{ID: 1, Name: "Some Movie", Type: "movie"},
		}, nil)

	resolver := metadata.NewResolver(client, 85, testLogger())
	_, err := resolver.Resolve(context.Background(),
		medianame.ParsedName{Title: "Some Movie"}, metadata.KindSeries)

	assert.ErrorIs(t, err, metadata.ErrWrongType)
}

func TestResolver_Resolve_LowConfidence(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := mocks.NewMockSearcher(ctrl)
	client.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]tvdb.SearchResult{
			{ID: 1, Name: "Completely Unrelated Program", Type: "series"},
		}, nil)

	resolver := metadata.NewResolver(client, 85, testLogger())
	_, err := resolver.Resolve(context.Background(),
		medianame.ParsedName{Title: "My Show"}, "")

	assert.ErrorIs(t, err, metadata.ErrLowConfidence)
	assert.True(t, metadata.IsNoMatch(err))
}

func TestResolver_Resolve_MatchesEnglishTranslation(t *testing.T) {
	ctrl := gomock.NewController(t)

	// The native name is nothing like the query but the English
	// translation matches; the record carries the translation.
	client := mocks.NewMockSearcher(ctrl)
	client.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]tvdb.SearchResult{
			{
				ID:           77,
				Name:         "La Casa de Papel",
				Year:         2017,
				Type:         "series",
				Translations: map[string]string{"eng": "Money Heist"},
			},
		}, nil)

	resolver := metadata.NewResolver(client, 85, testLogger())
	rec, err := resolver.Resolve(context.Background(),
		medianame.ParsedName{Title: "Money Heist", Year: 2017}, "")

	require.NoError(t, err)
	assert.Equal(t, 77, rec.ID)
	assert.Equal(t, "Money Heist", rec.Name)
}

func TestResolver_Resolve_SearchError(t *testing.T) {
	ctrl := gomock.NewController(t)

	client := mocks.NewMockSearcher(ctrl)
	client.EXPECT().
		Search(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection refused"))

	resolver := metadata.NewResolver(client, 85, testLogger())
	_, err := resolver.Resolve(context.Background(),
		medianame.ParsedName{Title: "Whatever"}, "")

	require.Error(t, err)
	assert.False(t, metadata.IsNoMatch(err))
}
