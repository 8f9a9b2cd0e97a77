package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env  string `validate:"required,oneof=development stage production"`
	Http Http

	Cors CORS `validate:"required"`

	Storage Storage `validate:"required"`
	Cache   Cache   `validate:"required"`

	Kafka Kafka `validate:"required"`

	// секции конкретных драйверов проверяются в Validate только для выбранного драйвера
	Postgres Postgres `validate:"-"`
	Mongo    Mongo    `validate:"-"`
	Redis    Redis    `validate:"-"`

	Mpesa      Mpesa      `validate:"required"`
	Reconciler Reconciler `validate:"-"`
}

type Http struct {
	Host string `validate:"required,hostname|ip"`
	Port string `validate:"required,gt=0,lte=65535"`

	RequestTimeout time.Duration `validate:"gte=0"`
}

type Storage struct {
	Driver string `validate:"required,oneof=mongo postgres"`
}

type Cache struct {
	Driver   string        `validate:"required,oneof=memory redis"`
	Capacity int           `validate:"gte=1"`
	TTL      time.Duration `validate:"gt=0"`
	// StatusTTL сколько живет закешированный ответ на запрос статуса платежа
	StatusTTL time.Duration `validate:"gte=0"`
}

type Kafka struct {
	GroupID string   `validate:"required"`
	Brokers []string `validate:"required,min=1,dive,hostname_port"`
	Topic   string   `validate:"required"`

	PaymentsTopic string `validate:"required"`

	ReaderMaxWait time.Duration `validate:"gte=0"`
	BatchTimeout  time.Duration `validate:"gte=0"`
}

type Postgres struct {
	Host     string `validate:"required,hostname|ip"`
	Port     int    `validate:"required,gt=0,lte=65535"`
	DBName   string `validate:"required"`
	User     string `validate:"required"`
	Password string `validate:"required"`

	SSLMode string `validate:"required,oneof=disable require verify-ca verify-full"`

	MaxOpenConns    int           `validate:"gte=1"`
	MaxIdleConns    int           `validate:"gte=0"`
	ConnMaxLifetime time.Duration `validate:"gte=0"`
}

type Mongo struct {
	URI      string `validate:"required,uri"`
	Database string `validate:"required"`

	ConnectTimeout time.Duration `validate:"gte=0"`
	MaxPoolSize    uint64        `validate:"gte=1"`
}

type Redis struct {
	Addr     string `validate:"required,hostname_port"`
	Password string
	DB       int `validate:"gte=0"`
}

type Mpesa struct {
	BaseURL         string `validate:"required,url"`
	ConsumerKey     string `validate:"required"`
	ConsumerSecret  string `validate:"required"`
	ShortCode       string `validate:"required,numeric"`
	Passkey         string `validate:"required"`
	CallbackURL     string `validate:"required,url"`
	TransactionType string `validate:"required,oneof=CustomerPayBillOnline CustomerBuyGoodsOnline"`

	Timeout            time.Duration `validate:"gt=0"`
	BreakerMaxFailures int           `validate:"gte=1"`
	BreakerOpenTimeout time.Duration `validate:"gt=0"`
}

// Reconciler по умолчанию выключен: без него зависшие платежи остаются в pending
type Reconciler struct {
	Enabled      bool
	Interval     time.Duration `validate:"gt=0"`
	PendingAfter time.Duration `validate:"gt=0"`
	BatchSize    int           `validate:"gte=1"`
}

func New() Config {
	return Config{
		Env: env("ENV", "development"),

		Http: Http{
			Host:           env("HOST", "localhost"),
			Port:           env("PORT", "8080"),
			RequestTimeout: envDuration("HTTP_REQUEST_TIMEOUT", 30*time.Second),
		},

		Cors: CORS{
			AllowedOrigins: strings.Split(env("ALLOWED_CORS_ORIGINS", "http://localhost:3000"), ","),
		},

		Storage: Storage{
			Driver: env("STORAGE_DRIVER", "mongo"),
		},

		Cache: Cache{
			Driver:    env("CACHE_DRIVER", "memory"),
			Capacity:  envInt("CACHE_CAPACITY", 1000),
			TTL:       envDuration("CACHE_TTL", 10*time.Minute),
			StatusTTL: envDuration("CACHE_STATUS_TTL", 3*time.Second),
		},

		Kafka: Kafka{
			GroupID:       env("KAFKA_GROUP_ID", "checkout-service"),
			Topic:         env("KAFKA_TOPIC", "checkouts"),
			PaymentsTopic: env("KAFKA_PAYMENTS_TOPIC", "payments"),
			Brokers:       strings.Split(env("KAFKA_BROKERS", "localhost:9092"), ","),

			ReaderMaxWait: envDuration("KAFKA_READER_MAX_WAIT", 10*time.Millisecond),
			BatchTimeout:  envDuration("KAFKA_BATCH_TIMEOUT", 10*time.Millisecond),
		},

		Postgres: Postgres{
			Port:     envInt("POSTGRES_PORT", 5432),
			Host:     env("POSTGRES_HOST", "localhost"),
			DBName:   env("POSTGRES_DB", "checkout"),
			User:     env("POSTGRES_USER", ""),
			Password: env("POSTGRES_PASSWORD", ""),

			SSLMode: env("POSTGRES_SSL_MODE", "disable"),

			MaxOpenConns:    envInt("POSTGRES_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    envInt("POSTGRES_MAX_IDLE_CONNS", 25),
			ConnMaxLifetime: envDuration("POSTGRES_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Mongo: Mongo{
			URI:            env("MONGO_URI", "mongodb://localhost:27017"),
			Database:       env("MONGO_DB", "grocery"),
			ConnectTimeout: envDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
			MaxPoolSize:    uint64(envInt("MONGO_MAX_POOL_SIZE", 100)),
		},

		Redis: Redis{
			Addr:     env("REDIS_ADDR", "localhost:6379"),
			Password: env("REDIS_PASSWORD", ""),
			DB:       envInt("REDIS_DB", 0),
		},

		Mpesa: Mpesa{
			BaseURL:         env("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke"),
			ConsumerKey:     env("MPESA_CONSUMER_KEY", ""),
			ConsumerSecret:  env("MPESA_CONSUMER_SECRET", ""),
			ShortCode:       env("MPESA_SHORTCODE", "174379"),
			Passkey:         env("MPESA_PASSKEY", ""),
			CallbackURL:     env("MPESA_CALLBACK_URL", ""),
			TransactionType: env("MPESA_TRANSACTION_TYPE", "CustomerPayBillOnline"),

			Timeout:            envDuration("MPESA_TIMEOUT", 30*time.Second),
			BreakerMaxFailures: envInt("MPESA_BREAKER_MAX_FAILURES", 5),
			BreakerOpenTimeout: envDuration("MPESA_BREAKER_OPEN_TIMEOUT", 30*time.Second),
		},

		Reconciler: Reconciler{
			Enabled:      envBool("RECONCILER_ENABLED", false),
			Interval:     envDuration("RECONCILER_INTERVAL", time.Minute),
			PendingAfter: envDuration("RECONCILER_PENDING_AFTER", 10*time.Minute),
			BatchSize:    envInt("RECONCILER_BATCH_SIZE", 50),
		},
	}
}

type CORS struct {
	AllowedOrigins []string `validate:"required,min=1,dive,url"`
}

func (c Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}

	switch c.Storage.Driver {
	case "postgres":
		if err := validate.Struct(c.Postgres); err != nil {
			return err
		}
	case "mongo":
		if err := validate.Struct(c.Mongo); err != nil {
			return err
		}
	}

	if c.Cache.Driver == "redis" {
		if err := validate.Struct(c.Redis); err != nil {
			return err
		}
	}

	if c.Reconciler.Enabled {
		return validate.Struct(c.Reconciler)
	}
	return nil
}

func env(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		i, err := strconv.Atoi(value)
		if err == nil {
			return i
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		b, err := strconv.ParseBool(value)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err == nil {
			return d
		}
	}
	return fallback
}
