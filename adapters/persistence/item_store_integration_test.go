package persistence

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/suite"

	"github.com/ngoctranle/mediadex/internal/domain/hints"
	"github.com/ngoctranle/mediadex/internal/domain/item"
	"github.com/ngoctranle/mediadex/pkg/apperror"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

type ItemStoreIntegrationTestSuite struct {
	suite.Suite
	dbPool *pgxpool.Pool
	store  item.Store
	index  hints.Index
}

func TestItemStoreIntegration(t *testing.T) {
	if os.Getenv("INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration tests. Set INTEGRATION_TESTS=1 and DB_DSN to run.")
	}
	suite.Run(t, new(ItemStoreIntegrationTestSuite))
}

func (s *ItemStoreIntegrationTestSuite) SetupSuite() {
	ctx := context.Background()

	pool, err := pgxpool.New(ctx, os.Getenv("DB_DSN"))
	if err != nil {
		s.T().Fatalf("Failed to create pgxpool: %s", err)
	}
	s.dbPool = pool

	schema, err := os.ReadFile("../../scripts/schema.sql")
	if err != nil {
		s.T().Fatalf("Failed to read schema: %s", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		s.T().Fatalf("Failed to apply schema: %s", err)
	}

	testLogger := logger.NewNop()
	s.store = NewPostgresItemStore(pool, testLogger)
	s.index = NewPostgresSearchIndex(pool, testLogger)
}

func (s *ItemStoreIntegrationTestSuite) SetupTest() {
	_, err := s.dbPool.Exec(context.Background(), `TRUNCATE items CASCADE`)
	s.Require().NoError(err)
}

func (s *ItemStoreIntegrationTestSuite) TearDownSuite() {
	if s.dbPool != nil {
		s.dbPool.Close()
	}
}

func (s *ItemStoreIntegrationTestSuite) insertItem(id, parentID uuid.UUID, name string, kind item.Kind) {
	query := `INSERT INTO items (id, parent_id, name, kind, images) VALUES ($1, $2, $3, $4, '{}')`
	var parent any
	if parentID != uuid.Nil {
		parent = parentID
	}
	_, err := s.dbPool.Exec(context.Background(), query, id, parent, name, string(kind))
	s.Require().NoError(err)
}

func (s *ItemStoreIntegrationTestSuite) Test_ByID_NotFound() {
	_, err := s.store.ByID(context.Background(), uuid.New())
	s.ErrorIs(err, apperror.ErrNotFound)
}

func (s *ItemStoreIntegrationTestSuite) Test_AncestorsOf_ImmediateParentFirst() {
	ctx := context.Background()

	rootID, seriesID, seasonID, episodeID := uuid.New(), uuid.New(), uuid.New(), uuid.New()
	s.insertItem(rootID, uuid.Nil, "TV Shows", item.KindFolder)
	s.insertItem(seriesID, rootID, "The Wire", item.KindSeries)
	s.insertItem(seasonID, seriesID, "Season 1", item.KindSeason)
	s.insertItem(episodeID, seasonID, "The Target", item.KindEpisode)

	episode, err := s.store.ByID(ctx, episodeID)
	s.Require().NoError(err)

	ancestors, err := s.store.AncestorsOf(ctx, episode)
	s.Require().NoError(err)

	s.Require().Len(ancestors, 3)
	s.Equal(seasonID, ancestors[0].ID)
	s.Equal(seriesID, ancestors[1].ID)
	s.Equal(rootID, ancestors[2].ID)
}

func (s *ItemStoreIntegrationTestSuite) Test_Search_PagedWithTotal() {
	ctx := context.Background()

	s.insertItem(uuid.New(), uuid.Nil, "Batman Begins", item.KindMovie)
	s.insertItem(uuid.New(), uuid.Nil, "Batman Returns", item.KindMovie)

	limit := 1
	infos, total, err := s.index.Search(ctx, hints.SearchQuery{
		Term:         "batman",
		Limit:        &limit,
		IncludeMedia: true,
	})
	s.Require().NoError(err)

	s.Equal(2, total)
	s.Require().Len(infos, 1)
	s.Equal("Batman Begins", infos[0].Item.Name)
	s.Equal("Batman", infos[0].MatchedTerm)
}

func (s *ItemStoreIntegrationTestSuite) Test_Search_KindFilterIsCaseInsensitive() {
	ctx := context.Background()

	s.insertItem(uuid.New(), uuid.Nil, "Batman Begins", item.KindMovie)
	s.insertItem(uuid.New(), uuid.Nil, "Batman: The Animated Series", item.KindSeries)

	infos, _, err := s.index.Search(ctx, hints.SearchQuery{
		Term:             "batman",
		IncludeMedia:     true,
		IncludeItemTypes: []string{"movie"},
	})
	s.Require().NoError(err)
	s.Require().Len(infos, 1)
	s.Equal("Batman Begins", infos[0].Item.Name)
}

func (s *ItemStoreIntegrationTestSuite) Test_Search_UnsetFlagFiltersLikeFalse() {
	ctx := context.Background()

	flagged := uuid.New()
	s.insertItem(flagged, uuid.Nil, "Movie Night", item.KindProgram)
	s.insertItem(uuid.New(), uuid.Nil, "Morning News", item.KindProgram)
	_, err := s.dbPool.Exec(ctx, `UPDATE items SET is_movie = TRUE WHERE id = $1`, flagged)
	s.Require().NoError(err)

	isMovie := false
	infos, _, err := s.index.Search(ctx, hints.SearchQuery{
		Term:         "o",
		IncludeMedia: true,
		IsMovie:      &isMovie,
	})
	s.Require().NoError(err)
	s.Require().Len(infos, 1)
	s.Equal("Morning News", infos[0].Item.Name)
}

func (s *ItemStoreIntegrationTestSuite) Test_Search_CategoryInclusionFlags() {
	ctx := context.Background()

	s.insertItem(uuid.New(), uuid.Nil, "Christian Bale", item.KindPerson)
	s.insertItem(uuid.New(), uuid.Nil, "Batman Begins", item.KindMovie)

	infos, _, err := s.index.Search(ctx, hints.SearchQuery{Term: "a", IncludeMedia: true})
	s.Require().NoError(err)
	s.Require().Len(infos, 1)
	s.Equal("Batman Begins", infos[0].Item.Name)

	infos, _, err = s.index.Search(ctx, hints.SearchQuery{Term: "a", IncludeMedia: true, IncludePeople: true})
	s.Require().NoError(err)
	s.Len(infos, 2)
}
