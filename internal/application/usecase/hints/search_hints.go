package hints

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ngoctranle/mediadex/internal/application/service"
	"github.com/ngoctranle/mediadex/internal/domain/hints"
	"github.com/ngoctranle/mediadex/pkg/apperror"
	"github.com/ngoctranle/mediadex/pkg/logger"
)

type SearchHintsUseCase struct {
	index    hints.Index
	enricher *Enricher
	events   service.EventPublisher
	logger   logger.Logger
}

func NewSearchHintsUseCase(index hints.Index, enricher *Enricher, events service.EventPublisher, log logger.Logger) *SearchHintsUseCase {
	return &SearchHintsUseCase{
		index:    index,
		enricher: enricher,
		events:   events,
		logger:   log,
	}
}

// Execute normalizes the raw filter input, runs it against the search
// index and enriches the returned page into client-facing hints.
// Paging is the index's job; enrichment preserves the index ordering.
func (uc *SearchHintsUseCase) Execute(ctx context.Context, in QueryInput) (*hints.SearchHintResult, error) {
	query, err := NormalizeQuery(in)
	if err != nil {
		return nil, err
	}

	infos, total, err := uc.index.Search(ctx, query)
	if err != nil {
		uc.logger.Error("search index query failed", err, zap.String("term", query.Term))
		return nil, apperror.NewInternal("search failed", err)
	}

	result := &hints.SearchHintResult{
		SearchHints:      make([]hints.SearchHint, len(infos)),
		TotalRecordCount: total,
	}

	// Hints are independent of each other, so the page is enriched
	// concurrently. Each hint writes to its own slot, which keeps the
	// index ordering in the output.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(pageWorkers(len(infos)))
	for i, info := range infos {
		i, info := i, info
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result.SearchHints[i] = uc.enricher.Enrich(gctx, info)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if uc.events != nil {
		evt := service.SearchEvent{
			Term:         query.Term,
			TotalMatches: total,
			Returned:     len(infos),
			UserID:       query.UserID,
			At:           time.Now().UTC(),
		}
		if err := uc.events.PublishSearch(ctx, evt); err != nil {
			uc.logger.Warn("search event publish failed", zap.Error(err))
		}
	}

	uc.logger.Info("search executed",
		zap.String("term", query.Term), zap.Int("total", total), zap.Int("returned", len(infos)))

	return result, nil
}

func pageWorkers(pageSize int) int {
	if pageSize < 1 {
		return 1
	}
	return pageSize
}
