package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ngoctranle/mediadex/internal/domain/item"
	"github.com/ngoctranle/mediadex/pkg/apperror"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Column order must match scanItem.
var itemColumns = []string{
	"id", "parent_id", "channel_id", "name", "kind", "media_type", "is_folder",
	"index_number", "parent_index_number", "run_time_ms", "production_year", "end_date",
	"images", "series_name", "series_status", "program_start",
	"album_artist", "album_artists", "artists", "album", "album_id",
}

type rowScanner interface {
	Scan(dest ...any) error
}

type postgresItemStore struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresItemStore(db *pgxpool.Pool, logger logger.Logger) item.Store {
	return &postgresItemStore{db: db, logger: logger}
}

func (r *postgresItemStore) ByID(ctx context.Context, id uuid.UUID) (*item.Item, error) {
	sqlStr, args, err := psql.Select(itemColumns...).From("items").Where(sq.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build item query", err)
	}

	it, err := scanItem(r.db.QueryRow(ctx, sqlStr, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("item", id.String())
		}
		return nil, apperror.NewInternal("failed to load item", err)
	}
	return it, nil
}

func (r *postgresItemStore) AncestorsOf(ctx context.Context, it *item.Item) ([]*item.Item, error) {
	if it.ParentID == uuid.Nil {
		return nil, nil
	}

	cols := strings.Join(itemColumns, ", ")
	prefixed := "i." + strings.Join(itemColumns, ", i.")

	// Walks the ownership chain from the immediate parent outward;
	// depth keeps the chain order in the result.
	query := `
	WITH RECURSIVE chain AS (
		SELECT ` + cols + `, 1 AS depth
		FROM items WHERE id = $1
		UNION ALL
		SELECT ` + prefixed + `, c.depth + 1
		FROM items i JOIN chain c ON i.id = c.parent_id
	)
	SELECT ` + cols + ` FROM chain ORDER BY depth`

	rows, err := r.db.Query(ctx, query, it.ParentID)
	if err != nil {
		return nil, apperror.NewInternal("failed to walk ancestors", err)
	}
	defer rows.Close()

	var ancestors []*item.Item
	for rows.Next() {
		ancestor, err := scanItem(rows)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan ancestor", err)
		}
		ancestors = append(ancestors, ancestor)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating ancestors", err)
	}
	return ancestors, nil
}

// scanItem reads one items row into the domain model, building the
// category payload that matches the row's kind. Extra destinations
// (e.g. a window-function total) are appended to the scan list.
func scanItem(row rowScanner, extra ...any) (*item.Item, error) {
	var (
		it             item.Item
		parentID       *uuid.UUID
		channelID      *uuid.UUID
		mediaType      *string
		runTimeMs      *int64
		imagesJSON     []byte
		seriesName     *string
		seriesStatus   *string
		programStart   *time.Time
		albumArtist    *string
		albumArtists   []string
		artists        []string
		albumName      *string
		albumID        *uuid.UUID
	)

	dest := []any{
		&it.ID, &parentID, &channelID, &it.Name, &it.Kind, &mediaType, &it.IsFolder,
		&it.IndexNumber, &it.ParentIndexNumber, &runTimeMs, &it.ProductionYear, &it.EndDate,
		&imagesJSON, &seriesName, &seriesStatus, &programStart,
		&albumArtist, &albumArtists, &artists, &albumName, &albumID,
	}
	dest = append(dest, extra...)

	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	if parentID != nil {
		it.ParentID = *parentID
	}
	if channelID != nil {
		it.ChannelID = *channelID
	}
	if mediaType != nil {
		it.MediaType = *mediaType
	}
	if runTimeMs != nil {
		d := time.Duration(*runTimeMs) * time.Millisecond
		it.RunTime = &d
	}

	if len(imagesJSON) > 0 {
		var raw map[string]string
		if err := json.Unmarshal(imagesJSON, &raw); err != nil {
			return nil, fmt.Errorf("decode item images: %w", err)
		}
		if len(raw) > 0 {
			it.Images = make(map[item.ImageKind]string, len(raw))
			for kind, publicID := range raw {
				it.Images[item.ImageKind(kind)] = publicID
			}
		}
	}

	if seriesName != nil && *seriesName != "" {
		it.Series = &item.SeriesInfo{SeriesName: *seriesName}
	}

	switch it.Kind {
	case item.KindSeries:
		details := &item.SeriesDetails{}
		if seriesStatus != nil && *seriesStatus != "" {
			status := item.SeriesStatus(*seriesStatus)
			details.Status = &status
		}
		it.Details = details
	case item.KindProgram:
		if programStart != nil {
			it.Program = &item.ProgramInfo{StartDate: *programStart}
		}
	case item.KindAlbum:
		info := &item.AlbumInfo{Artists: artists}
		if albumArtist != nil {
			info.AlbumArtist = *albumArtist
		}
		it.Album = info
	case item.KindSong:
		info := &item.SongInfo{Artists: artists, AlbumArtists: albumArtists}
		if albumName != nil {
			info.Album = *albumName
		}
		if albumID != nil {
			info.AlbumID = *albumID
		}
		it.Song = info
	}

	return &it, nil
}
