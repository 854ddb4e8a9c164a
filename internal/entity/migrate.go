package entity

import (
	"context"

	"github.com/giftgroup/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&Group{},
		&GroupMembership{},
		&Exclusion{},
		&Assignment{},
	)
}
