package repository

import (
	"context"

	"mediaUserApp/models"
)

// AccountStore defines operations on Account entities.
type AccountStore interface {
	Create(ctx context.Context, username, password string, role models.Role) (*models.Account, error)
	FindByCredentials(ctx context.Context, username, password string) (*models.Account, error)
	GetByID(ctx context.Context, id int64) (*models.Account, error)
	GetByUsername(ctx context.Context, username string) (*models.Account, error)
	Exists(ctx context.Context, username string) (bool, error)
	ListAll(ctx context.Context) ([]models.Account, error)
	Delete(ctx context.Context, id int64) error
}

var _ AccountStore = (*AccountRepository)(nil)
