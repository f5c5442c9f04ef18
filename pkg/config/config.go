package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App           AppConfig
	Site          SiteConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	ZainCash      ZainCashConfig
	SMTP          SMTPConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
	Booking       BookingConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.ZainCash.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"NETWAVE_APP_ENV" required:"true"`
	Port         string `envconfig:"NETWAVE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"NETWAVE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"NETWAVE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// SiteConfig carries public-facing site parameters shared across services.
type SiteConfig struct {
	// PublicBaseURL is the origin the frontend is served from; payment
	// redirect URLs are built on top of it.
	PublicBaseURL string `envconfig:"NETWAVE_PUBLIC_BASE_URL" default:"http://localhost:3000"`
	DefaultLocale string `envconfig:"NETWAVE_DEFAULT_LOCALE" default:"ar"`
}

type DBConfig struct {
	DSN    string `envconfig:"NETWAVE_DB_DSN"`
	Driver string `envconfig:"NETWAVE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"NETWAVE_DB_HOST"`
	LegacyPort     int    `envconfig:"NETWAVE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"NETWAVE_DB_USER"`
	LegacyPassword string `envconfig:"NETWAVE_DB_PASSWORD"`
	LegacyName     string `envconfig:"NETWAVE_DB_NAME"`
	LegacySSLMode  string `envconfig:"NETWAVE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"NETWAVE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"NETWAVE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"NETWAVE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"NETWAVE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"NETWAVE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"NETWAVE_REDIS_ADDR"`
	Password     string        `envconfig:"NETWAVE_REDIS_PASSWORD"`
	DB           int           `envconfig:"NETWAVE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"NETWAVE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"NETWAVE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"NETWAVE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"NETWAVE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"NETWAVE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                string `envconfig:"NETWAVE_JWT_SECRET" required:"true"`
	Issuer                string `envconfig:"NETWAVE_JWT_ISSUER" required:"true"`
	ExpirationMinutes     int    `envconfig:"NETWAVE_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshExpirationDays int    `envconfig:"NETWAVE_JWT_REFRESH_EXPIRATION_DAYS" default:"7"`
}

// AccessTokenTTL returns the admin access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return time.Hour
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh session lifetime.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshExpirationDays <= 0 {
		return 0
	}
	return time.Duration(j.RefreshExpirationDays) * 24 * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"NETWAVE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"NETWAVE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"NETWAVE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"NETWAVE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"NETWAVE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"NETWAVE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"NETWAVE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"NETWAVE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"NETWAVE_AUTO_MIGRATE" default:"false"`
}

// ZainCashConfig configures the payment gateway client. The Environment
// flag is the only switch for sandbox (demo) behaviour; credentials being
// absent never silently enables it.
type ZainCashConfig struct {
	Environment string `envconfig:"NETWAVE_ZAINCASH_ENV" default:"sandbox"`
	MerchantID  string `envconfig:"NETWAVE_ZAINCASH_MERCHANT_ID"`
	Secret      string `envconfig:"NETWAVE_ZAINCASH_SECRET"`
	MSISDN      string `envconfig:"NETWAVE_ZAINCASH_MSISDN"`
	APIURL      string `envconfig:"NETWAVE_ZAINCASH_API_URL" default:"https://test.zaincash.iq"`
}

// IsSandbox reports whether the gateway runs in the local demo mode.
func (z ZainCashConfig) IsSandbox() bool {
	return strings.EqualFold(strings.TrimSpace(z.Environment), GatewayEnvSandbox)
}

func (z ZainCashConfig) validate() error {
	env := strings.ToLower(strings.TrimSpace(z.Environment))
	switch env {
	case GatewayEnvSandbox:
		return nil
	case GatewayEnvProduction:
		missing := []string{}
		if strings.TrimSpace(z.MerchantID) == "" {
			missing = append(missing, EnvZainCashMerchantID)
		}
		if strings.TrimSpace(z.Secret) == "" {
			missing = append(missing, EnvZainCashSecret)
		}
		if strings.TrimSpace(z.MSISDN) == "" {
			missing = append(missing, EnvZainCashMSISDN)
		}
		if len(missing) > 0 {
			return fmt.Errorf("zaincash production mode requires %s", strings.Join(missing, ", "))
		}
		return nil
	default:
		return fmt.Errorf("zaincash environment must be %q or %q", GatewayEnvProduction, GatewayEnvSandbox)
	}
}

type SMTPConfig struct {
	Host      string `envconfig:"NETWAVE_SMTP_HOST"`
	Port      int    `envconfig:"NETWAVE_SMTP_PORT" default:"587"`
	User      string `envconfig:"NETWAVE_SMTP_USER"`
	Password  string `envconfig:"NETWAVE_SMTP_PASSWORD"`
	From      string `envconfig:"NETWAVE_SMTP_FROM"`
	AdminAddr string `envconfig:"NETWAVE_ADMIN_EMAIL"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"NETWAVE_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	NotificationTopic        string `envconfig:"NETWAVE_PUBSUB_NOTIFICATION_TOPIC" default:"nw-notification-events"`
	NotificationSubscription string `envconfig:"NETWAVE_PUBSUB_NOTIFICATION_SUBSCRIPTION" default:"nw-notification-events-worker"`
}

type OutboxConfig struct {
	BatchSize      int           `envconfig:"NETWAVE_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int           `envconfig:"NETWAVE_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int           `envconfig:"NETWAVE_OUTBOX_MAX_ATTEMPTS" default:"10"`
	IdempotencyTTL time.Duration `envconfig:"NETWAVE_OUTBOX_IDEMPOTENCY_TTL" default:"72h"`
}

// BookingConfig carries booking-flow defaults.
type BookingConfig struct {
	// DefaultAmountIQD is the consultation price charged when a service
	// has no price of its own, in Iraqi dinars.
	DefaultAmountIQD string `envconfig:"NETWAVE_BOOKING_DEFAULT_AMOUNT_IQD" default:"50000"`
}

// DefaultAmount parses the configured default booking amount.
func (b BookingConfig) DefaultAmount() (decimal.Decimal, error) {
	amount, err := decimal.NewFromString(strings.TrimSpace(b.DefaultAmountIQD))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid default booking amount %q: %w", b.DefaultAmountIQD, err)
	}
	if amount.Sign() <= 0 {
		return decimal.Zero, fmt.Errorf("default booking amount must be positive, got %s", amount)
	}
	return amount, nil
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
