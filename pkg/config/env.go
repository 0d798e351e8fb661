package config

// EnvPrefix is intentionally empty: every field names its variable explicitly.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv  = "WORTHEAT_APP_ENV"
	EnvPort    = "WORTHEAT_APP_PORT"
	EnvDBDSN   = "WORTHEAT_DB_DSN"
	EnvDBHost  = "WORTHEAT_DB_HOST"
	EnvDBUser  = "WORTHEAT_DB_USER"
	EnvDBName  = "WORTHEAT_DB_NAME"
	EnvRedisURL = "WORTHEAT_REDIS_URL"

	EnvJWTSecret              = "WORTHEAT_JWT_SECRET"
	EnvJWTIssuer              = "WORTHEAT_JWT_ISSUER"
	EnvJWTExpMins             = "WORTHEAT_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "WORTHEAT_REFRESH_TOKEN_TTL_MINUTES"

	EnvRazorpayKeyID     = "WORTHEAT_RAZORPAY_KEY_ID"
	EnvRazorpayKeySecret = "WORTHEAT_RAZORPAY_KEY_SECRET"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
