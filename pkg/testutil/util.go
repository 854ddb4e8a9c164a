package testutil

import (
	"context"
	"fmt"

	"github.com/giftgroup/backend/config"
	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/pkg/logger"
	"github.com/giftgroup/backend/pkg/xcontext"
	"github.com/google/uuid"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

const TokenSecret = "secret"

// MockContext returns a context with a fresh in-memory database whose tables
// are migrated but empty.
func MockContext() context.Context {
	// A named shared-cache database survives across the pooled connections of
	// one gorm.DB and is invisible to other MockContext calls.
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		panic(err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		panic(err)
	}
	sqlDB.SetMaxOpenConns(1)

	cfg := config.Default()
	cfg.Database.Driver = "sqlite"
	cfg.Auth.TokenSecret = TokenSecret
	cfg.Draw.SolveTimeout = 0

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewNopLogger())
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}

// WithUserID switches the acting user of ctx while keeping its database.
func WithUserID(ctx context.Context, userID string) context.Context {
	return xcontext.WithRequestUserID(ctx, userID)
}
