package item

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Kind is the concrete category of a library item. The client-facing
// type name of a search hint is derived from it.
type Kind string

const (
	KindMovie    Kind = "Movie"
	KindSeries   Kind = "Series"
	KindSeason   Kind = "Season"
	KindEpisode  Kind = "Episode"
	KindAlbum    Kind = "MusicAlbum"
	KindSong     Kind = "Audio"
	KindProgram  Kind = "TvProgram"
	KindChannel  Kind = "TvChannel"
	KindPlaylist Kind = "Playlist"
	KindFolder   Kind = "Folder"
	KindPerson   Kind = "Person"
	KindGenre    Kind = "Genre"
	KindStudio   Kind = "Studio"
	KindArtist   Kind = "MusicArtist"
)

type ImageKind string

const (
	ImagePrimary  ImageKind = "primary"
	ImageThumb    ImageKind = "thumb"
	ImageBackdrop ImageKind = "backdrop"
)

type SeriesStatus string

const (
	SeriesContinuing SeriesStatus = "Continuing"
	SeriesEnded      SeriesStatus = "Ended"
	SeriesUnreleased SeriesStatus = "Unreleased"
)

// Item is one entry of the library hierarchy. ParentID links the
// ownership chain up to the library root (uuid.Nil at the root).
// Exactly one of the category payloads below is set, matching Kind;
// SeriesInfo is the exception: it marks any item that belongs to a
// series (episodes, seasons) regardless of its own kind.
type Item struct {
	ID        uuid.UUID
	ParentID  uuid.UUID
	ChannelID uuid.UUID
	Name      string
	Kind      Kind
	MediaType string
	IsFolder  bool

	IndexNumber       *int32
	ParentIndexNumber *int32
	RunTime           *time.Duration
	ProductionYear    *int32
	EndDate           *time.Time

	// Images maps each image kind the item actually has to the public
	// id of the stored artwork. Absence of a key means no image of
	// that kind.
	Images map[ImageKind]string

	Series  *SeriesInfo
	Details *SeriesDetails
	Program *ProgramInfo
	Album   *AlbumInfo
	Song    *SongInfo
}

// SeriesInfo is carried by items owned by a series.
type SeriesInfo struct {
	SeriesName string
}

// SeriesDetails is carried by items of KindSeries.
type SeriesDetails struct {
	Status *SeriesStatus
}

// ProgramInfo is carried by items of KindProgram.
type ProgramInfo struct {
	StartDate time.Time
}

// AlbumInfo is carried by items of KindAlbum.
type AlbumInfo struct {
	Artists     []string
	AlbumArtist string
}

// SongInfo is carried by items of KindSong. AlbumID references the
// album entity when known (uuid.Nil otherwise); Album is the free-text
// album name used as fallback.
type SongInfo struct {
	Artists      []string
	AlbumArtists []string
	Album        string
	AlbumID      uuid.UUID
}

func (i *Item) HasImage(kind ImageKind) bool {
	_, ok := i.Images[kind]
	return ok
}

// Store provides hierarchy lookups over library items.
type Store interface {
	// ByID returns the item or an apperror.ErrNotFound-based error.
	ByID(ctx context.Context, id uuid.UUID) (*Item, error)

	// AncestorsOf walks the ownership chain of an item, immediate
	// parent first, out to the library root.
	AncestorsOf(ctx context.Context, it *Item) ([]*Item, error)
}
