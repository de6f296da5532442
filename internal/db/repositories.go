package db

import (
	"context"

	"github.com/terraincognita07/rhythm/internal/services"
	"gorm.io/gorm"
)

type Repositories struct {
	Occurrences *OccurrenceRepository
	Deletions   *DeletionRepository
	Friends     *FriendRepository
	Categories  *CategoryRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Occurrences: NewOccurrenceRepository(database),
		Deletions:   NewDeletionRepository(database),
		Friends:     NewFriendRepository(database),
		Categories:  NewCategoryRepository(database),
	}
}

func (repos *Repositories) ServiceRepositories() services.Repositories {
	return services.Repositories{
		Occurrences: repos.Occurrences,
		Deletions:   repos.Deletions,
		Friends:     repos.Friends,
		Categories:  repos.Categories,
	}
}

// Store hands out repositories bound to a single transaction.
type Store struct {
	database *gorm.DB
}

func NewStore(database *gorm.DB) *Store {
	return &Store{database: database}
}

func (store *Store) WithinTransaction(ctx context.Context, fn func(repos services.Repositories) error) error {
	return store.database.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewRepositories(tx).ServiceRepositories())
	})
}

func (store *Store) Close() error {
	sqlDB, err := store.database.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
