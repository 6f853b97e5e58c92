package hints

import (
	"context"

	"github.com/google/uuid"

	"github.com/ngoctranle/mediadex/internal/application/service"
	"github.com/ngoctranle/mediadex/internal/domain/hints"
	"github.com/ngoctranle/mediadex/internal/domain/item"
	"github.com/ngoctranle/mediadex/pkg/apperror"
)

type fakeStore struct {
	items         map[uuid.UUID]*item.Item
	ancestors     map[uuid.UUID][]*item.Item
	byIDCalls     []uuid.UUID
	ancestorCalls []uuid.UUID
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		items:     make(map[uuid.UUID]*item.Item),
		ancestors: make(map[uuid.UUID][]*item.Item),
	}
}

func (f *fakeStore) add(it *item.Item) {
	f.items[it.ID] = it
}

func (f *fakeStore) ByID(_ context.Context, id uuid.UUID) (*item.Item, error) {
	f.byIDCalls = append(f.byIDCalls, id)
	it, ok := f.items[id]
	if !ok {
		return nil, apperror.NewNotFound("item", id.String())
	}
	return it, nil
}

func (f *fakeStore) AncestorsOf(_ context.Context, it *item.Item) ([]*item.Item, error) {
	f.ancestorCalls = append(f.ancestorCalls, it.ID)
	return f.ancestors[it.ID], nil
}

type fakeImageCache struct {
	tags       map[string]string
	ratios     map[uuid.UUID]float64
	ratioCalls int
	tagErr     error
}

func newFakeImageCache() *fakeImageCache {
	return &fakeImageCache{
		tags:   make(map[string]string),
		ratios: make(map[uuid.UUID]float64),
	}
}

func (f *fakeImageCache) setTag(it *item.Item, kind item.ImageKind, tag string) {
	f.tags[it.ID.String()+"/"+string(kind)] = tag
}

func (f *fakeImageCache) Tag(_ context.Context, it *item.Item, kind item.ImageKind) (string, error) {
	if f.tagErr != nil {
		return "", f.tagErr
	}
	if !it.HasImage(kind) {
		return "", nil
	}
	return f.tags[it.ID.String()+"/"+string(kind)], nil
}

func (f *fakeImageCache) PrimaryAspectRatio(_ context.Context, it *item.Item) (float64, error) {
	f.ratioCalls++
	return f.ratios[it.ID], nil
}

type fakeIndex struct {
	lastQuery  *hints.SearchQuery
	infos      []hints.SearchHintInfo
	total      int
	err        error
	applyLimit bool
}

func (f *fakeIndex) Search(_ context.Context, q hints.SearchQuery) ([]hints.SearchHintInfo, int, error) {
	f.lastQuery = &q
	if f.err != nil {
		return nil, 0, f.err
	}
	infos := f.infos
	if f.applyLimit && q.Limit != nil && len(infos) > *q.Limit {
		infos = infos[:*q.Limit]
	}
	return infos, f.total, nil
}

type fakeEvents struct {
	published []service.SearchEvent
	err       error
}

func (f *fakeEvents) PublishSearch(_ context.Context, evt service.SearchEvent) error {
	if f.err != nil {
		return f.err
	}
	f.published = append(f.published, evt)
	return nil
}

func newItem(name string, kind item.Kind) *item.Item {
	return &item.Item{ID: uuid.New(), Name: name, Kind: kind}
}

func withImage(it *item.Item, kind item.ImageKind) *item.Item {
	if it.Images == nil {
		it.Images = make(map[item.ImageKind]string)
	}
	it.Images[kind] = "art/" + it.ID.String() + "/" + string(kind)
	return it
}
