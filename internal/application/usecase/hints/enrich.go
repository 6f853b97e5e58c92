package hints

import (
	"context"
	"encoding/hex"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ngoctranle/mediadex/internal/domain/hints"
	"github.com/ngoctranle/mediadex/internal/domain/item"
	"github.com/ngoctranle/mediadex/pkg/apperror"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

// Enricher maps one raw index match to a client-facing SearchHint.
// Missing optional data (images, aspect ratio, ancestors, channel) is
// never an error: the corresponding hint field stays unset.
type Enricher struct {
	items           item.Store
	images          hints.ImageCache
	providerTimeout time.Duration
	logger          logger.Logger
}

func NewEnricher(items item.Store, images hints.ImageCache, providerTimeout time.Duration, log logger.Logger) *Enricher {
	return &Enricher{
		items:           items,
		images:          images,
		providerTimeout: providerTimeout,
		logger:          log,
	}
}

func (e *Enricher) Enrich(ctx context.Context, info hints.SearchHintInfo) hints.SearchHint {
	it := info.Item

	hint := hints.SearchHint{
		ID:                it.ID,
		ItemID:            it.ID,
		Name:              it.Name,
		MatchedTerm:       info.MatchedTerm,
		Type:              string(it.Kind),
		MediaType:         it.MediaType,
		IndexNumber:       it.IndexNumber,
		ParentIndexNumber: it.ParentIndexNumber,
		RunTime:           it.RunTime,
		ProductionYear:    it.ProductionYear,
		EndDate:           it.EndDate,
		ChannelID:         it.ChannelID,
	}

	if it.IsFolder {
		isFolder := true
		hint.IsFolder = &isFolder
	}

	e.resolvePrimaryImage(ctx, it, &hint)

	if tag, source, ok := e.resolveImage(ctx, it, item.ImageThumb); ok {
		hint.ThumbImageTag = tag
		hint.ThumbImageItemID = source
	}
	if tag, source, ok := e.resolveImage(ctx, it, item.ImageBackdrop); ok {
		hint.BackdropImageTag = tag
		hint.BackdropImageItemID = source
	}

	e.applyCategory(ctx, it, &hint)
	e.resolveChannelName(ctx, it, &hint)

	return hint
}

func (e *Enricher) resolvePrimaryImage(ctx context.Context, it *item.Item, hint *hints.SearchHint) {
	ctx, cancel := e.providerCtx(ctx)
	defer cancel()

	tag, err := e.images.Tag(ctx, it, item.ImagePrimary)
	if err != nil {
		e.logger.Warn("primary image tag lookup failed",
			zap.String("item_id", it.ID.String()), zap.Error(err))
		return
	}
	if tag == "" {
		return
	}
	hint.PrimaryImageTag = tag

	// Aspect ratio is only meaningful when a primary image exists.
	ratio, err := e.images.PrimaryAspectRatio(ctx, it)
	if err != nil {
		e.logger.Warn("primary aspect ratio lookup failed",
			zap.String("item_id", it.ID.String()), zap.Error(err))
		return
	}
	if ratio > 0 {
		hint.PrimaryImageAspectRatio = &ratio
	}
}

// resolveImage finds the source item for thumb/backdrop artwork and
// fetches its cache tag. The source is the item itself when it has an
// image of the kind; otherwise the nearest ancestor that has one —
// for episode thumbs the owning series is preferred over closer
// ancestors. The returned id is the source item's, not the original's.
func (e *Enricher) resolveImage(ctx context.Context, it *item.Item, kind item.ImageKind) (tag, sourceID string, ok bool) {
	ctx, cancel := e.providerCtx(ctx)
	defer cancel()

	source := e.resolveImageSource(ctx, it, kind)
	if source == nil {
		return "", "", false
	}

	tag, err := e.images.Tag(ctx, source, kind)
	if err != nil {
		e.logger.Warn("image tag lookup failed",
			zap.String("item_id", source.ID.String()), zap.String("kind", string(kind)), zap.Error(err))
		return "", "", false
	}
	if tag == "" {
		return "", "", false
	}
	return tag, hexID(source.ID), true
}

func (e *Enricher) resolveImageSource(ctx context.Context, it *item.Item, kind item.ImageKind) *item.Item {
	if it.HasImage(kind) {
		return it
	}

	ancestors, err := e.items.AncestorsOf(ctx, it)
	if err != nil {
		e.logger.Warn("ancestor lookup failed",
			zap.String("item_id", it.ID.String()), zap.Error(err))
		return nil
	}

	if kind == item.ImageThumb && it.Kind == item.KindEpisode {
		if src := firstAncestor(ancestors, func(a *item.Item) bool {
			return a.Kind == item.KindSeries && a.HasImage(kind)
		}); src != nil {
			return src
		}
	}
	return firstAncestor(ancestors, func(a *item.Item) bool {
		return a.HasImage(kind)
	})
}

// firstAncestor returns the first entry of the chain satisfying the
// predicate. The chain is linear and ordered immediate-parent first,
// so first hit is nearest.
func firstAncestor(ancestors []*item.Item, pred func(*item.Item) bool) *item.Item {
	for _, a := range ancestors {
		if pred(a) {
			return a
		}
	}
	return nil
}

// applyCategory fills the category-specific hint fields. Categories
// are mutually exclusive; series-bearing items (episodes, seasons)
// are checked first.
func (e *Enricher) applyCategory(ctx context.Context, it *item.Item, hint *hints.SearchHint) {
	switch {
	case it.Series != nil:
		hint.SeriesName = it.Series.SeriesName

	case it.Program != nil:
		start := it.Program.StartDate
		hint.StartDate = &start

	case it.Details != nil:
		if it.Details.Status != nil {
			hint.Status = string(*it.Details.Status)
		}

	case it.Album != nil:
		hint.Artists = it.Album.Artists
		hint.AlbumArtist = it.Album.AlbumArtist

	case it.Song != nil:
		if len(it.Song.AlbumArtists) > 0 {
			hint.AlbumArtist = it.Song.AlbumArtists[0]
		}
		hint.Artists = it.Song.Artists
		e.resolveSongAlbum(ctx, it.Song, hint)
	}
}

// resolveSongAlbum follows the song's album-entity reference when
// present; otherwise the song's own free-text album name is used and
// the album id stays unset.
func (e *Enricher) resolveSongAlbum(ctx context.Context, song *item.SongInfo, hint *hints.SearchHint) {
	if song.AlbumID == uuid.Nil {
		hint.Album = song.Album
		return
	}

	ctx, cancel := e.providerCtx(ctx)
	defer cancel()

	album, err := e.items.ByID(ctx, song.AlbumID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			e.logger.Warn("album lookup failed",
				zap.String("album_id", song.AlbumID.String()), zap.Error(err))
		}
		hint.Album = song.Album
		return
	}
	hint.Album = album.Name
	albumID := album.ID
	hint.AlbumID = &albumID
}

func (e *Enricher) resolveChannelName(ctx context.Context, it *item.Item, hint *hints.SearchHint) {
	if it.ChannelID == uuid.Nil {
		return
	}

	ctx, cancel := e.providerCtx(ctx)
	defer cancel()

	channel, err := e.items.ByID(ctx, it.ChannelID)
	if err != nil {
		if !errors.Is(err, apperror.ErrNotFound) {
			e.logger.Warn("channel lookup failed",
				zap.String("channel_id", it.ChannelID.String()), zap.Error(err))
		}
		return
	}
	hint.ChannelName = channel.Name
}

func (e *Enricher) providerCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if e.providerTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, e.providerTimeout)
}

// hexID renders an item id in canonical lowercase hex, no separators.
func hexID(id uuid.UUID) string {
	return hex.EncodeToString(id[:])
}
