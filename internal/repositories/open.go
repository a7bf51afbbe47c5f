package repositories

import (
	"context"
	"fmt"

	"github.com/Rohan-debug788/SkillSwap/internal/config"
	"github.com/Rohan-debug788/SkillSwap/internal/database"
	"github.com/Rohan-debug788/SkillSwap/internal/models"
	"github.com/Rohan-debug788/SkillSwap/internal/repositories/memstore"
	"github.com/Rohan-debug788/SkillSwap/internal/services"
	"github.com/Rohan-debug788/SkillSwap/pkg/logger"
)

// Backend is the entity store the binaries run on.
type Backend interface {
	services.Store
	LinkTelegramChat(ctx context.Context, userID string, chatID int64) error
	CreateUser(ctx context.Context, user *models.User) error
	CreateSkill(ctx context.Context, skill *models.Skill) error
}

var (
	_ Backend = (*Store)(nil)
	_ Backend = (*memstore.Store)(nil)
)

// Open selects the store named by cfg.StoreDriver. The returned func
// releases it.
func Open(cfg *config.Config) (Backend, func() error, error) {
	switch cfg.StoreDriver {
	case config.StoreDriverMemory:
		logger.Warn("Using in-memory store, data is lost on restart")
		return memstore.New(), func() error { return nil }, nil
	case config.StoreDriverPostgres:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			_ = database.Close(db)
			return nil, nil, err
		}
		return NewStore(db), func() error { return database.Close(db) }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
