package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	hintsUC "github.com/ngoctranle/mediadex/internal/application/usecase/hints"
	"github.com/ngoctranle/mediadex/pkg/apperror"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

type SearchHandler struct {
	searchHints *hintsUC.SearchHintsUseCase
	logger      logger.Logger
}

func NewSearchHandler(uc *hintsUC.SearchHintsUseCase, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchHints: uc,
		logger:      log,
	}
}

func (h *SearchHandler) Search(c *gin.Context) {
	in := hintsUC.QueryInput{
		Term:             c.Query("term"),
		IncludeItemTypes: c.Query("include_item_types"),
		ExcludeItemTypes: c.Query("exclude_item_types"),
		MediaTypes:       c.Query("media_types"),
	}

	var err error
	if in.StartIndex, err = intParam(c, "start_index"); err != nil {
		c.Error(err)
		return
	}
	if in.Limit, err = intParam(c, "limit"); err != nil {
		c.Error(err)
		return
	}
	if in.ParentID, err = uuidParam(c, "parent_id"); err != nil {
		c.Error(err)
		return
	}

	// A bearer token wins over the user_id query param.
	if userID, ok := GetUserIDFromGinContext(c); ok {
		in.UserID = userID
	} else if in.UserID, err = uuidParam(c, "user_id"); err != nil {
		c.Error(err)
		return
	}

	if in.IncludePeople, err = boolParam(c, "include_people"); err != nil {
		c.Error(err)
		return
	}
	if in.IncludeMedia, err = boolParam(c, "include_media"); err != nil {
		c.Error(err)
		return
	}
	if in.IncludeGenres, err = boolParam(c, "include_genres"); err != nil {
		c.Error(err)
		return
	}
	if in.IncludeStudios, err = boolParam(c, "include_studios"); err != nil {
		c.Error(err)
		return
	}
	if in.IncludeArtists, err = boolParam(c, "include_artists"); err != nil {
		c.Error(err)
		return
	}

	if in.IsMovie, err = triStateParam(c, "is_movie"); err != nil {
		c.Error(err)
		return
	}
	if in.IsSeries, err = triStateParam(c, "is_series"); err != nil {
		c.Error(err)
		return
	}
	if in.IsNews, err = triStateParam(c, "is_news"); err != nil {
		c.Error(err)
		return
	}
	if in.IsKids, err = triStateParam(c, "is_kids"); err != nil {
		c.Error(err)
		return
	}
	if in.IsSports, err = triStateParam(c, "is_sports"); err != nil {
		c.Error(err)
		return
	}

	output, err := h.searchHints.Execute(c.Request.Context(), in)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToSearchHintResultDTO(output))
}

func intParam(c *gin.Context, name string) (*int, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, apperror.NewInvalidInput("'"+name+"' must be an integer", err)
	}
	return &v, nil
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperror.NewInvalidInput("'"+name+"' must be a valid uuid", err)
	}
	return id, nil
}

func boolParam(c *gin.Context, name string) (bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperror.NewInvalidInput("'"+name+"' must be a boolean", err)
	}
	return v, nil
}

// triStateParam keeps "not sent" distinct from "false".
func triStateParam(c *gin.Context, name string) (*bool, error) {
	raw, ok := c.GetQuery(name)
	if !ok || raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, apperror.NewInvalidInput("'"+name+"' must be a boolean", err)
	}
	return &v, nil
}
