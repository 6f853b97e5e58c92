package hints

import (
	"strings"

	"github.com/google/uuid"

	"github.com/ngoctranle/mediadex/internal/domain/hints"
	"github.com/ngoctranle/mediadex/pkg/apperror"
)

// QueryInput carries the raw, loosely-typed filter parameters of a
// search request. List-valued filters arrive as comma-delimited
// strings; tri-state flags are nil when the client did not send them.
type QueryInput struct {
	Term       string
	StartIndex *int
	Limit      *int
	UserID     uuid.UUID
	ParentID   uuid.UUID

	IncludeItemTypes string
	ExcludeItemTypes string
	MediaTypes       string

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

// NormalizeQuery turns raw filter input into a validated SearchQuery.
// Pure transformation: the only failure is a missing search term or a
// negative paging bound.
func NormalizeQuery(in QueryInput) (hints.SearchQuery, error) {
	term := strings.TrimSpace(in.Term)
	if term == "" {
		return hints.SearchQuery{}, apperror.NewInvalidInput("'term' query param is required", nil)
	}
	if in.StartIndex != nil && *in.StartIndex < 0 {
		return hints.SearchQuery{}, apperror.NewInvalidInput("'start_index' must not be negative", nil)
	}
	if in.Limit != nil && *in.Limit < 0 {
		return hints.SearchQuery{}, apperror.NewInvalidInput("'limit' must not be negative", nil)
	}

	return hints.SearchQuery{
		Term:       term,
		StartIndex: in.StartIndex,
		Limit:      in.Limit,
		UserID:     in.UserID,
		ParentID:   in.ParentID,

		IncludeItemTypes: splitList(in.IncludeItemTypes),
		ExcludeItemTypes: splitList(in.ExcludeItemTypes),
		MediaTypes:       splitList(in.MediaTypes),

		IncludePeople:  in.IncludePeople,
		IncludeMedia:   in.IncludeMedia,
		IncludeGenres:  in.IncludeGenres,
		IncludeStudios: in.IncludeStudios,
		IncludeArtists: in.IncludeArtists,

		IsMovie:  in.IsMovie,
		IsSeries: in.IsSeries,
		IsNews:   in.IsNews,
		IsKids:   in.IsKids,
		IsSports: in.IsSports,
	}, nil
}

// splitList splits a comma-delimited filter, trimming whitespace and
// dropping empty segments. Case is preserved for the index. A nil
// result means "no restriction".
func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
