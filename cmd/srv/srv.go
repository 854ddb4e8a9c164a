package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/giftgroup/backend/config"
	"github.com/giftgroup/backend/internal/client"
	"github.com/giftgroup/backend/internal/domain"
	"github.com/giftgroup/backend/internal/domain/drawsolver"
	"github.com/giftgroup/backend/internal/entity"
	"github.com/giftgroup/backend/internal/repository"
	"github.com/giftgroup/backend/pkg/grouplock"
	"github.com/giftgroup/backend/pkg/idutil"
	"github.com/giftgroup/backend/pkg/kafka"
	"github.com/giftgroup/backend/pkg/logger"
	"github.com/giftgroup/backend/pkg/pubsub"
	"github.com/giftgroup/backend/pkg/router"
	"github.com/giftgroup/backend/pkg/xcontext"
	"github.com/giftgroup/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type srv struct {
	ctx context.Context
	app *cli.App

	redisClient xredis.Client
	publisher   pubsub.Publisher

	groupRepo      repository.GroupRepository
	exclusionRepo  repository.ExclusionRepository
	assignmentRepo repository.AssignmentRepository

	drawDomain      domain.DrawDomain
	exclusionDomain domain.ExclusionDomain

	router *router.Router
}

func (s *srv) loadConfig(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithConfigs(context.Background(), cfg)
	return nil
}

func (s *srv) loadLogger() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger("giftgroup", logger.ParseLevel(cfg.LogLevel), os.Stdout))
}

func (s *srv) loadDatabase() error {
	cfg := xcontext.Configs(s.ctx).Database

	var dialector gorm.Dialector
	switch cfg.Driver {
	case "mysql":
		dialector = mysql.New(mysql.Config{
			DSN:                       cfg.ConnectionString(),
			DefaultStringSize:         256,
			DisableDatetimePrecision:  true,
			DontSupportRenameIndex:    true,
			DontSupportRenameColumn:   true,
			SkipInitializeWithVersion: false,
		})
	case "sqlite":
		dialector = sqlite.Open(cfg.ConnectionString())
	default:
		return fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return err
	}

	s.ctx = xcontext.WithDB(s.ctx, db)
	return nil
}

func (s *srv) migrateDB() error {
	return entity.MigrateTable(s.ctx)
}

func (s *srv) loadRedis() error {
	cfg := xcontext.Configs(s.ctx)
	if cfg.Draw.LockBackend != "redis" {
		return nil
	}

	redisClient, err := xredis.NewClient(s.ctx)
	if err != nil {
		return err
	}

	s.redisClient = redisClient
	return nil
}

func (s *srv) loadPublisher() error {
	cfg := xcontext.Configs(s.ctx).Kafka
	if cfg.Addr == "" {
		return nil
	}

	if err := idutil.Init(0); err != nil {
		return err
	}

	var err error
	s.publisher, err = kafka.NewPublisher(cfg.ClientID, strings.Split(cfg.Addr, ","))
	return err
}

func (s *srv) loadRepos() {
	s.groupRepo = repository.NewGroupRepository()
	s.exclusionRepo = repository.NewExclusionRepository()
	s.assignmentRepo = repository.NewAssignmentRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)

	var locker grouplock.Locker
	if s.redisClient != nil {
		locker = grouplock.NewRedis(s.redisClient, cfg.Draw.LockTTL)
	} else {
		locker = grouplock.NewLocal()
	}

	var notifier client.DrawNotifier
	if s.publisher != nil {
		notifier = client.NewPublisherDrawNotifier(s.publisher, cfg.Kafka.DrawTopic)
	} else {
		notifier = client.NewLogDrawNotifier()
	}

	solver := drawsolver.New(
		drawsolver.WithAttempts(cfg.Draw.MaxAttempts),
		drawsolver.WithNodeBudget(cfg.Draw.NodeBudget),
		drawsolver.WithTimeout(cfg.Draw.SolveTimeout),
	)

	s.drawDomain = domain.NewDrawDomain(s.groupRepo, s.exclusionRepo, s.assignmentRepo, solver, locker, notifier)
	s.exclusionDomain = domain.NewExclusionDomain(s.groupRepo, s.exclusionRepo)
}

func (s *srv) close() {
	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close publisher: %v", err)
		}
	}

	if s.redisClient != nil {
		if err := s.redisClient.Close(); err != nil {
			xcontext.Logger(s.ctx).Warnf("Cannot close redis client: %v", err)
		}
	}
}
