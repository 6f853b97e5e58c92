package hints

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ngoctranle/mediadex/internal/domain/hints"
	"github.com/ngoctranle/mediadex/internal/domain/item"
	"github.com/ngoctranle/mediadex/pkg/apperror"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

func newTestUseCase(index *fakeIndex, events *fakeEvents) *SearchHintsUseCase {
	enricher := NewEnricher(newFakeStore(), newFakeImageCache(), 0, logger.NewNop())
	if events == nil {
		return NewSearchHintsUseCase(index, enricher, nil, logger.NewNop())
	}
	return NewSearchHintsUseCase(index, enricher, events, logger.NewNop())
}

func movieInfos(names ...string) []hints.SearchHintInfo {
	infos := make([]hints.SearchHintInfo, len(names))
	for i, name := range names {
		infos[i] = hints.SearchHintInfo{Item: newItem(name, item.KindMovie), MatchedTerm: name}
	}
	return infos
}

func TestExecute_MissingTerm_RejectsBeforeIndex(t *testing.T) {
	index := &fakeIndex{}
	uc := newTestUseCase(index, nil)

	_, err := uc.Execute(context.Background(), QueryInput{Term: ""})

	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	assert.Nil(t, index.lastQuery, "index must not be consulted for an invalid query")
}

func TestExecute_PagedBatmanSearch(t *testing.T) {
	index := &fakeIndex{
		infos:      movieInfos("Batman Begins", "Batman Returns"),
		total:      2,
		applyLimit: true,
	}
	uc := newTestUseCase(index, nil)

	limit := 1
	result, err := uc.Execute(context.Background(), QueryInput{Term: "batman", Limit: &limit})
	require.NoError(t, err)

	assert.Equal(t, 2, result.TotalRecordCount, "total reflects all matches, not the page")
	require.Len(t, result.SearchHints, 1)
	assert.Equal(t, "Batman Begins", result.SearchHints[0].Name)
}

func TestExecute_PreservesIndexOrder(t *testing.T) {
	names := make([]string, 50)
	for i := range names {
		names[i] = fmt.Sprintf("Movie %03d", i)
	}
	index := &fakeIndex{infos: movieInfos(names...), total: len(names)}
	uc := newTestUseCase(index, nil)

	result, err := uc.Execute(context.Background(), QueryInput{Term: "movie"})
	require.NoError(t, err)

	require.Len(t, result.SearchHints, len(names))
	for i, name := range names {
		assert.Equal(t, name, result.SearchHints[i].Name)
	}
}

func TestExecute_IndexFailure(t *testing.T) {
	index := &fakeIndex{err: errors.New("connection refused")}
	uc := newTestUseCase(index, nil)

	_, err := uc.Execute(context.Background(), QueryInput{Term: "batman"})

	assert.ErrorIs(t, err, apperror.ErrInternal)
}

func TestExecute_PublishesSearchEvent(t *testing.T) {
	index := &fakeIndex{infos: movieInfos("Batman Begins"), total: 7}
	events := &fakeEvents{}
	uc := newTestUseCase(index, events)

	_, err := uc.Execute(context.Background(), QueryInput{Term: "batman"})
	require.NoError(t, err)

	require.Len(t, events.published, 1)
	assert.Equal(t, "batman", events.published[0].Term)
	assert.Equal(t, 7, events.published[0].TotalMatches)
	assert.Equal(t, 1, events.published[0].Returned)
}

func TestExecute_EventFailureDoesNotFailSearch(t *testing.T) {
	index := &fakeIndex{infos: movieInfos("Batman Begins"), total: 1}
	events := &fakeEvents{err: errors.New("broker unavailable")}
	uc := newTestUseCase(index, events)

	result, err := uc.Execute(context.Background(), QueryInput{Term: "batman"})

	require.NoError(t, err)
	assert.Len(t, result.SearchHints, 1)
}

func TestExecute_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	index := &fakeIndex{infos: movieInfos("Batman Begins"), total: 1}
	uc := newTestUseCase(index, nil)

	_, err := uc.Execute(ctx, QueryInput{Term: "batman"})
	assert.ErrorIs(t, err, context.Canceled)
}
