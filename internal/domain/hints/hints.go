package hints

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/ngoctranle/mediadex/internal/domain/item"
)

// SearchQuery is the validated query executed by the search index.
// Nil pointers mean "unspecified": absent bounds apply no paging
// restriction and absent tri-state flags apply no category filter.
type SearchQuery struct {
	Term       string
	StartIndex *int
	Limit      *int
	UserID     uuid.UUID
	ParentID   uuid.UUID

	IncludeItemTypes []string
	ExcludeItemTypes []string
	MediaTypes       []string

	IncludePeople  bool
	IncludeMedia   bool
	IncludeGenres  bool
	IncludeStudios bool
	IncludeArtists bool

	IsMovie  *bool
	IsSeries *bool
	IsNews   *bool
	IsKids   *bool
	IsSports *bool
}

// SearchHintInfo is one raw match reported by the index: the matched
// item plus the literal substring of its name that matched the term.
type SearchHintInfo struct {
	Item        *item.Item
	MatchedTerm string
}

// SearchHint is the enriched, client-facing search result. String
// fields left empty and nil pointers are "unset" and omitted from the
// response body.
type SearchHint struct {
	ID uuid.UUID
	// ItemID is a backward-compatibility alias, always mirroring ID.
	ItemID      uuid.UUID
	Name        string
	MatchedTerm string
	Type        string
	MediaType   string
	IsFolder    *bool

	IndexNumber       *int32
	ParentIndexNumber *int32
	RunTime           *time.Duration
	ProductionYear    *int32
	StartDate         *time.Time
	EndDate           *time.Time

	PrimaryImageTag         string
	PrimaryImageAspectRatio *float64
	ThumbImageTag           string
	// ThumbImageItemID identifies the item the thumb was resolved
	// from, which may be an ancestor. Lowercase hex, no separators.
	ThumbImageItemID    string
	BackdropImageTag    string
	BackdropImageItemID string

	SeriesName  string
	Status      string
	Album       string
	AlbumID     *uuid.UUID
	AlbumArtist string
	Artists     []string

	ChannelID   uuid.UUID
	ChannelName string
}

// SearchHintResult is one page of hints plus the total match count as
// reported by the index, independent of page size.
type SearchHintResult struct {
	SearchHints      []SearchHint
	TotalRecordCount int
}

// Index executes a normalized query and returns the current page of
// matches, in rank order, plus the total match count.
type Index interface {
	Search(ctx context.Context, q SearchQuery) ([]SearchHintInfo, int, error)
}

// ImageCache provides opaque cache tags for item artwork and the
// aspect ratio of primary images. An empty tag (or zero ratio) with a
// nil error means the value is simply absent.
type ImageCache interface {
	Tag(ctx context.Context, it *item.Item, kind item.ImageKind) (string, error)
	PrimaryAspectRatio(ctx context.Context, it *item.Item) (float64, error)
}
