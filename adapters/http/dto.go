package http

import (
	"time"

	"github.com/google/uuid"

	"github.com/ngoctranle/mediadex/internal/domain/hints"
)

type SearchHintDTO struct {
	ID     string `json:"id"`
	ItemID string `json:"item_id"`
	Name   string `json:"name"`

	MatchedTerm string `json:"matched_term"`
	Type        string `json:"type"`
	MediaType   string `json:"media_type,omitempty"`
	IsFolder    *bool  `json:"is_folder,omitempty"`

	IndexNumber       *int32     `json:"index_number,omitempty"`
	ParentIndexNumber *int32     `json:"parent_index_number,omitempty"`
	RunTimeMs         *int64     `json:"run_time_ms,omitempty"`
	ProductionYear    *int32     `json:"production_year,omitempty"`
	StartDate         *time.Time `json:"start_date,omitempty"`
	EndDate           *time.Time `json:"end_date,omitempty"`

	PrimaryImageTag         string   `json:"primary_image_tag,omitempty"`
	PrimaryImageAspectRatio *float64 `json:"primary_image_aspect_ratio,omitempty"`
	ThumbImageTag           string   `json:"thumb_image_tag,omitempty"`
	ThumbImageItemID        string   `json:"thumb_image_item_id,omitempty"`
	BackdropImageTag        string   `json:"backdrop_image_tag,omitempty"`
	BackdropImageItemID     string   `json:"backdrop_image_item_id,omitempty"`

	SeriesName  string   `json:"series_name,omitempty"`
	Status      string   `json:"status,omitempty"`
	Album       string   `json:"album,omitempty"`
	AlbumID     string   `json:"album_id,omitempty"`
	AlbumArtist string   `json:"album_artist,omitempty"`
	Artists     []string `json:"artists,omitempty"`

	ChannelID   string `json:"channel_id,omitempty"`
	ChannelName string `json:"channel_name,omitempty"`
}

type SearchHintResultDTO struct {
	SearchHints      []SearchHintDTO `json:"search_hints"`
	TotalRecordCount int             `json:"total_record_count"`
}

func ToSearchHintDTO(h hints.SearchHint) SearchHintDTO {
	dto := SearchHintDTO{
		ID:     h.ID.String(),
		ItemID: h.ItemID.String(),
		Name:   h.Name,

		MatchedTerm: h.MatchedTerm,
		Type:        h.Type,
		MediaType:   h.MediaType,
		IsFolder:    h.IsFolder,

		IndexNumber:       h.IndexNumber,
		ParentIndexNumber: h.ParentIndexNumber,
		ProductionYear:    h.ProductionYear,
		StartDate:         h.StartDate,
		EndDate:           h.EndDate,

		PrimaryImageTag:         h.PrimaryImageTag,
		PrimaryImageAspectRatio: h.PrimaryImageAspectRatio,
		ThumbImageTag:           h.ThumbImageTag,
		ThumbImageItemID:        h.ThumbImageItemID,
		BackdropImageTag:        h.BackdropImageTag,
		BackdropImageItemID:     h.BackdropImageItemID,

		SeriesName:  h.SeriesName,
		Status:      h.Status,
		Album:       h.Album,
		AlbumArtist: h.AlbumArtist,
		Artists:     h.Artists,

		ChannelName: h.ChannelName,
	}
	if h.RunTime != nil {
		ms := h.RunTime.Milliseconds()
		dto.RunTimeMs = &ms
	}
	if h.AlbumID != nil {
		dto.AlbumID = h.AlbumID.String()
	}
	if h.ChannelID != uuid.Nil {
		dto.ChannelID = h.ChannelID.String()
	}
	return dto
}

func ToSearchHintResultDTO(res *hints.SearchHintResult) SearchHintResultDTO {
	dtos := make([]SearchHintDTO, len(res.SearchHints))
	for i, h := range res.SearchHints {
		dtos[i] = ToSearchHintDTO(h)
	}
	return SearchHintResultDTO{
		SearchHints:      dtos,
		TotalRecordCount: res.TotalRecordCount,
	}
}
