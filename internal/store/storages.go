package store

import (
	"github.com/vidtube/accounts/internal/logger"
)

// Storages bundles all repositories behind a single wiring point for the
// service layer.
type Storages struct {
	UserRepository    UserRepository
	ChannelRepository ChannelRepository
}

// NewStorages constructs every repository over the shared database
// connection.
func NewStorages(db *DB, hasher PasswordHasher, ids IDGenerator, logger *logger.Logger) *Storages {
	return &Storages{
		UserRepository:    NewUserRepository(db, hasher, ids, logger),
		ChannelRepository: NewChannelRepository(db, logger),
	}
}
