package persistence

import (
	"context"
	"strings"
	"unicode/utf8"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ngoctranle/mediadex/internal/domain/hints"
	"github.com/ngoctranle/mediadex/internal/domain/item"
	"github.com/ngoctranle/mediadex/pkg/apperror"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

type postgresSearchIndex struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresSearchIndex(db *pgxpool.Pool, logger logger.Logger) hints.Index {
	return &postgresSearchIndex{db: db, logger: logger}
}

// mediaKinds is the base corpus, searched only when the media
// inclusion flag is set. The remaining kinds are each gated by their
// own flag.
var mediaKinds = []string{
	string(item.KindMovie), string(item.KindSeries), string(item.KindSeason),
	string(item.KindEpisode), string(item.KindAlbum), string(item.KindSong),
	string(item.KindProgram), string(item.KindChannel), string(item.KindPlaylist),
	string(item.KindFolder),
}

func (r *postgresSearchIndex) Search(ctx context.Context, q hints.SearchQuery) ([]hints.SearchHintInfo, int, error) {
	cols := make([]string, 0, len(itemColumns)+1)
	cols = append(cols, itemColumns...)
	cols = append(cols, "count(*) OVER() AS total")

	builder := psql.Select(cols...).From("items").
		Where(sq.ILike{"name": "%" + escapeLike(q.Term) + "%"})

	if q.ParentID != uuid.Nil {
		builder = builder.Where(sq.Eq{"parent_id": q.ParentID})
	}
	if q.UserID != uuid.Nil {
		builder = builder.Where(sq.Or{sq.Eq{"owner_id": nil}, sq.Eq{"owner_id": q.UserID}})
	}
	// Kind and media type filters match case-insensitively.
	if len(q.IncludeItemTypes) > 0 {
		builder = builder.Where(sq.Eq{"lower(kind)": lowerAll(q.IncludeItemTypes)})
	}
	if len(q.ExcludeItemTypes) > 0 {
		builder = builder.Where(sq.NotEq{"lower(kind)": lowerAll(q.ExcludeItemTypes)})
	}
	if len(q.MediaTypes) > 0 {
		builder = builder.Where(sq.Eq{"lower(media_type)": lowerAll(q.MediaTypes)})
	}
	if excluded := excludedKinds(q); len(excluded) > 0 {
		builder = builder.Where(sq.NotEq{"lower(kind)": lowerAll(excluded)})
	}

	builder = triStateWhere(builder, "is_movie", q.IsMovie)
	builder = triStateWhere(builder, "is_series", q.IsSeries)
	builder = triStateWhere(builder, "is_news", q.IsNews)
	builder = triStateWhere(builder, "is_kids", q.IsKids)
	builder = triStateWhere(builder, "is_sports", q.IsSports)

	// Shorter names first: "Batman" outranks "Batman Begins" for the
	// same substring match.
	builder = builder.OrderBy("char_length(name)", "name")

	if q.StartIndex != nil {
		builder = builder.Offset(uint64(*q.StartIndex))
	}
	if q.Limit != nil {
		builder = builder.Limit(uint64(*q.Limit))
	}

	sqlStr, args, err := builder.ToSql()
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to build search query", err)
	}

	rows, err := r.db.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, 0, apperror.NewInternal("failed to execute search query", err)
	}
	defer rows.Close()

	infos := make([]hints.SearchHintInfo, 0)
	total := 0
	for rows.Next() {
		it, err := scanItem(rows, &total)
		if err != nil {
			return nil, 0, apperror.NewInternal("failed to scan search result", err)
		}
		infos = append(infos, hints.SearchHintInfo{
			Item:        it,
			MatchedTerm: matchedTerm(it.Name, q.Term),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperror.NewInternal("error iterating search results", err)
	}
	return infos, total, nil
}

func excludedKinds(q hints.SearchQuery) []string {
	var out []string
	if !q.IncludePeople {
		out = append(out, string(item.KindPerson))
	}
	if !q.IncludeGenres {
		out = append(out, string(item.KindGenre))
	}
	if !q.IncludeStudios {
		out = append(out, string(item.KindStudio))
	}
	if !q.IncludeArtists {
		out = append(out, string(item.KindArtist))
	}
	if !q.IncludeMedia {
		out = append(out, mediaKinds...)
	}
	return out
}

// triStateWhere applies a tri-state flag filter. The flag columns are
// nullable; a row that never set the flag filters like false.
func triStateWhere(builder sq.SelectBuilder, column string, flag *bool) sq.SelectBuilder {
	if flag == nil {
		return builder
	}
	return builder.Where(sq.Expr("COALESCE("+column+", FALSE) = ?", *flag))
}

func lowerAll(vals []string) []string {
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = strings.ToLower(v)
	}
	return out
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(term string) string {
	return likeEscaper.Replace(term)
}

// matchedTerm extracts the literal substring of the item name that
// matched, preserving the name's casing. Case mapping can change a
// rune's byte length, so offsets into the lowered name do not carry
// over to the original; boundaries are located on the original string
// instead. Falls back to the term when the match does not line up
// with rune boundaries.
func matchedTerm(name, term string) string {
	lowered := strings.ToLower(term)
	for i := range name {
		if !strings.HasPrefix(strings.ToLower(name[i:]), lowered) {
			continue
		}
		for j := i + 1; j <= len(name); j++ {
			if j < len(name) && !utf8.RuneStart(name[j]) {
				continue
			}
			if strings.ToLower(name[i:j]) == lowered {
				return name[i:j]
			}
		}
		break
	}
	return term
}
