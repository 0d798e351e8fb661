package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Razorpay      RazorpayConfig
	Weather       WeatherConfig
	GenAI         GenAIConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WORTHEAT_APP_ENV" required:"true"`
	Port         string `envconfig:"WORTHEAT_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"WORTHEAT_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WORTHEAT_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WORTHEAT_DB_DSN"`
	Driver string `envconfig:"WORTHEAT_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WORTHEAT_DB_HOST"`
	LegacyPort     int    `envconfig:"WORTHEAT_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WORTHEAT_DB_USER"`
	LegacyPassword string `envconfig:"WORTHEAT_DB_PASSWORD"`
	LegacyName     string `envconfig:"WORTHEAT_DB_NAME"`
	LegacySSLMode  string `envconfig:"WORTHEAT_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WORTHEAT_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WORTHEAT_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WORTHEAT_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WORTHEAT_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"WORTHEAT_REDIS_URL" required:"true"`
	Address      string        `envconfig:"WORTHEAT_REDIS_ADDR"`
	Password     string        `envconfig:"WORTHEAT_REDIS_PASSWORD"`
	DB           int           `envconfig:"WORTHEAT_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WORTHEAT_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WORTHEAT_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WORTHEAT_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WORTHEAT_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WORTHEAT_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"WORTHEAT_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"WORTHEAT_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"WORTHEAT_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"WORTHEAT_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WORTHEAT_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WORTHEAT_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WORTHEAT_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WORTHEAT_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WORTHEAT_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"WORTHEAT_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"WORTHEAT_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"WORTHEAT_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"WORTHEAT_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"WORTHEAT_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"WORTHEAT_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"WORTHEAT_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"WORTHEAT_AUTO_MIGRATE" default:"false"`
}

type RazorpayConfig struct {
	KeyID     string        `envconfig:"WORTHEAT_RAZORPAY_KEY_ID" required:"true"`
	KeySecret string        `envconfig:"WORTHEAT_RAZORPAY_KEY_SECRET" required:"true"`
	BaseURL   string        `envconfig:"WORTHEAT_RAZORPAY_BASE_URL" default:"https://api.razorpay.com"`
	Timeout   time.Duration `envconfig:"WORTHEAT_RAZORPAY_TIMEOUT" default:"10s"`
}

type WeatherConfig struct {
	APIKey  string        `envconfig:"WORTHEAT_WEATHER_API_KEY"`
	BaseURL string        `envconfig:"WORTHEAT_WEATHER_BASE_URL" default:"https://api.weatherapi.com/v1"`
	Timeout time.Duration `envconfig:"WORTHEAT_WEATHER_TIMEOUT" default:"5s"`
}

type GenAIConfig struct {
	APIKey  string        `envconfig:"WORTHEAT_GENAI_API_KEY"`
	BaseURL string        `envconfig:"WORTHEAT_GENAI_BASE_URL" default:"https://generativelanguage.googleapis.com"`
	Model   string        `envconfig:"WORTHEAT_GENAI_MODEL" default:"gemini-1.5-flash"`
	Timeout time.Duration `envconfig:"WORTHEAT_GENAI_TIMEOUT" default:"15s"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"WORTHEAT_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"WORTHEAT_PUBSUB_ORDERS_TOPIC" default:"wortheat-order-events"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"WORTHEAT_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"WORTHEAT_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"WORTHEAT_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
