package services

import (
	"context"
	"sort"
	"sync"

	"github.com/terraincognita07/rhythm/internal/models"
)

// CategoryLookup caches the category table. Categories are read-only at
// runtime so the cache is loaded once and dropped only through Invalidate.
type CategoryLookup struct {
	store Transactor

	mu     sync.RWMutex
	byID   map[uint]models.Category
	loaded bool
}

func NewCategoryLookup(store Transactor) *CategoryLookup {
	return &CategoryLookup{store: store}
}

// Resolve returns the category for id, or the uncategorized fallback.
func (lookup *CategoryLookup) Resolve(ctx context.Context, id uint) (models.Category, error) {
	byID, err := lookup.snapshot(ctx)
	if err != nil {
		return models.Category{}, err
	}
	if category, ok := byID[id]; ok {
		return category, nil
	}
	return models.Category{ID: id, Name: models.UncategorizedName, Color: models.UncategorizedColor}, nil
}

func (lookup *CategoryLookup) List(ctx context.Context) ([]models.Category, error) {
	byID, err := lookup.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	categories := make([]models.Category, 0, len(byID))
	for _, category := range byID {
		categories = append(categories, category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return categories[i].ID < categories[j].ID
	})
	return categories, nil
}

// All returns a copy of the cached table keyed by id.
func (lookup *CategoryLookup) All(ctx context.Context) (map[uint]models.Category, error) {
	byID, err := lookup.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	copied := make(map[uint]models.Category, len(byID))
	for id, category := range byID {
		copied[id] = category
	}
	return copied, nil
}

func (lookup *CategoryLookup) Invalidate() {
	lookup.mu.Lock()
	defer lookup.mu.Unlock()
	lookup.byID = nil
	lookup.loaded = false
}

func (lookup *CategoryLookup) snapshot(ctx context.Context) (map[uint]models.Category, error) {
	lookup.mu.RLock()
	if lookup.loaded {
		byID := lookup.byID
		lookup.mu.RUnlock()
		return byID, nil
	}
	lookup.mu.RUnlock()

	lookup.mu.Lock()
	defer lookup.mu.Unlock()
	if lookup.loaded {
		return lookup.byID, nil
	}

	var categories []models.Category
	err := lookup.store.WithinTransaction(ctx, func(repos Repositories) error {
		entries, err := repos.Categories.List()
		if err != nil {
			return err
		}
		categories = entries
		return nil
	})
	if err != nil {
		return nil, err
	}

	byID := make(map[uint]models.Category, len(categories))
	for _, category := range categories {
		byID[category.ID] = category
	}
	lookup.byID = byID
	lookup.loaded = true
	return byID, nil
}
