package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

type Configs struct {
	Env      string
	LogLevel string

	Database  DatabaseConfigs
	ApiServer ServerConfigs
	Auth      AuthConfigs
	Redis     RedisConfigs
	Kafka     KafkaConfigs
	Draw      DrawConfigs
}

type DatabaseConfigs struct {
	Driver   string
	Host     string
	Port     string
	Database string
	User     string
	Password string

	// Path is the sqlite file, ignored by mysql.
	Path string
}

func (d *DatabaseConfigs) ConnectionString() string {
	if d.Driver == "sqlite" {
		return d.Path
	}

	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User,
		d.Password,
		d.Host,
		d.Port,
		d.Database,
	)
}

type ServerConfigs struct {
	Host string
	Port string
	Cert string
	Key  string
}

func (s ServerConfigs) Address() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

type AuthConfigs struct {
	TokenSecret string
}

type RedisConfigs struct {
	Addr     string
	Password string
	DB       int
}

type KafkaConfigs struct {
	Addr      string
	ClientID  string
	DrawTopic string
}

type DrawConfigs struct {
	MaxAttempts  int
	NodeBudget   int
	SolveTimeout time.Duration

	// LockBackend is "local" or "redis".
	LockBackend string
	LockTTL     time.Duration
}

func Default() Configs {
	return Configs{
		Env:      "local",
		LogLevel: "info",
		Database: DatabaseConfigs{
			Driver:   "mysql",
			Host:     "localhost",
			Port:     "3306",
			Database: "giftgroup",
			User:     "root",
			Path:     "giftgroup.db",
		},
		ApiServer: ServerConfigs{
			Port: "8080",
		},
		Kafka: KafkaConfigs{
			ClientID:  "giftgroup-backend",
			DrawTopic: "draw_performed",
		},
		Draw: DrawConfigs{
			MaxAttempts:  100,
			NodeBudget:   1_000_000,
			SolveTimeout: 5 * time.Second,
			LockBackend:  "local",
			LockTTL:      30 * time.Second,
		},
	}
}

// Load reads .env (if present), then the TOML file at path (if not empty),
// then environment overrides, and validates the result.
func Load(path string) (Configs, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Configs{}, fmt.Errorf("cannot load .env: %w", err)
	}

	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Configs{}, fmt.Errorf("cannot decode config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return Configs{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Configs{}, err
	}

	return cfg, nil
}

func (c *Configs) applyEnv() error {
	setString(&c.Env, "ENV")
	setString(&c.LogLevel, "LOG_LEVEL")

	setString(&c.Database.Driver, "DB_DRIVER")
	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.Database, "DB_DATABASE")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.Path, "DB_PATH")

	setString(&c.ApiServer.Host, "API_HOST")
	setString(&c.ApiServer.Port, "API_PORT")
	setString(&c.ApiServer.Cert, "SERVER_CERT")
	setString(&c.ApiServer.Key, "SERVER_KEY")

	setString(&c.Auth.TokenSecret, "TOKEN_SECRET")

	setString(&c.Redis.Addr, "REDIS_ADDRESS")
	setString(&c.Redis.Password, "REDIS_PASSWORD")

	setString(&c.Kafka.Addr, "KAFKA_ADDRESS")
	setString(&c.Kafka.ClientID, "KAFKA_CLIENT_ID")
	setString(&c.Kafka.DrawTopic, "KAFKA_DRAW_TOPIC")

	setString(&c.Draw.LockBackend, "DRAW_LOCK_BACKEND")

	if err := setInt(&c.Redis.DB, "REDIS_DB"); err != nil {
		return err
	}

	if err := setInt(&c.Draw.MaxAttempts, "DRAW_MAX_ATTEMPTS"); err != nil {
		return err
	}

	if err := setInt(&c.Draw.NodeBudget, "DRAW_NODE_BUDGET"); err != nil {
		return err
	}

	if err := setDuration(&c.Draw.SolveTimeout, "DRAW_SOLVE_TIMEOUT"); err != nil {
		return err
	}

	return setDuration(&c.Draw.LockTTL, "DRAW_LOCK_TTL")
}

func (c Configs) Validate() error {
	switch c.Database.Driver {
	case "mysql", "sqlite":
	default:
		return fmt.Errorf("invalid database driver %q", c.Database.Driver)
	}

	if c.Auth.TokenSecret == "" {
		return errors.New("missing auth token secret")
	}

	if c.ApiServer.Port == "" {
		return errors.New("missing api server port")
	}

	if c.Draw.MaxAttempts < 0 {
		return errors.New("draw max attempts must not be negative")
	}

	if c.Draw.NodeBudget <= 0 {
		return errors.New("draw node budget must be positive")
	}

	switch c.Draw.LockBackend {
	case "local":
	case "redis":
		if c.Redis.Addr == "" {
			return errors.New("missing redis address for redis lock backend")
		}

		if c.Draw.LockTTL <= 0 {
			return errors.New("draw lock ttl must be positive for redis lock backend")
		}
	default:
		return fmt.Errorf("invalid draw lock backend %q", c.Draw.LockBackend)
	}

	return nil
}

func setString(field *string, key string) {
	if v, ok := os.LookupEnv(key); ok {
		*field = v
	}
}

func setInt(field *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}

	*field = n
	return nil
}

func setDuration(field *time.Duration, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok {
		return nil
	}

	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}

	*field = d
	return nil
}
