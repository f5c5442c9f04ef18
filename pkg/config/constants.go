package config

// EnvPrefix is passed to envconfig.Process; individual fields carry full
// names in their tags so the prefix stays empty.
const EnvPrefix = ""

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	GatewayEnvProduction = "production"
	GatewayEnvSandbox    = "sandbox"
)

// Environment variable names referenced from error messages and tests.
const (
	EnvAppEnv   = "NETWAVE_APP_ENV"
	EnvPort     = "NETWAVE_APP_PORT"
	EnvDBDSN    = "NETWAVE_DB_DSN"
	EnvDBHost   = "NETWAVE_DB_HOST"
	EnvDBUser   = "NETWAVE_DB_USER"
	EnvDBName   = "NETWAVE_DB_NAME"
	EnvRedisURL = "NETWAVE_REDIS_URL"

	EnvJWTSecret  = "NETWAVE_JWT_SECRET"
	EnvJWTIssuer  = "NETWAVE_JWT_ISSUER"
	EnvJWTExpMins = "NETWAVE_JWT_EXPIRATION_MINUTES"

	EnvZainCashEnv        = "NETWAVE_ZAINCASH_ENV"
	EnvZainCashMerchantID = "NETWAVE_ZAINCASH_MERCHANT_ID"
	EnvZainCashSecret     = "NETWAVE_ZAINCASH_SECRET"
	EnvZainCashMSISDN     = "NETWAVE_ZAINCASH_MSISDN"
	EnvZainCashAPIURL     = "NETWAVE_ZAINCASH_API_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
