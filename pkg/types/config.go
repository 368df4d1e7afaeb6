package types

type Config struct {
	Environment     string `envconfig:"ENVIRONMENT" default:"development"`
	ServerPort      uint   `envconfig:"SERVER_PORT" default:"8080"`
	DatabaseURL     string `envconfig:"DATABASE_URL"`
	DBMaxConns      int32  `envconfig:"DB_MAX_CONNS" default:"10"`
	DBConnectTries  int    `envconfig:"DB_CONNECT_TRIES" default:"5"`
	ReadTimeoutSec  uint   `envconfig:"READ_TIMEOUT_SEC" default:"10"`
	WriteTimeoutSec uint   `envconfig:"WRITE_TIMEOUT_SEC" default:"15"`

	// Cognito Auth
	CognitoUserPoolID string `envconfig:"COGNITO_USER_POOL_ID"`
	CognitoClientID   string `envconfig:"COGNITO_CLIENT_ID"`
	CognitoIssuerURL  string `envconfig:"COGNITO_ISSUER_URL"`

	// Cookie encryption keys (base64 encoded)
	// openssl rand -base64 32
	// to generate values
	CookieHashKey  string `envconfig:"COOKIE_HASH_KEY"`  // 32 or 64 bytes
	CookieBlockKey string `envconfig:"COOKIE_BLOCK_KEY"` // 16, 24, or 32 bytes
	CookieSecure   bool   `envconfig:"COOKIE_SECURE" default:"true"`

	// Photo storage: "s3" or "supabase"
	StorageBackend    string `envconfig:"STORAGE_BACKEND" default:"s3"`
	S3Bucket          string `envconfig:"S3_BUCKET"`
	S3PublicBaseURL   string `envconfig:"S3_PUBLIC_BASE_URL"`
	SupabaseProjectID string `envconfig:"SUPABASE_PROJECT_ID"`
	SupabaseAPIKey    string `envconfig:"SUPABASE_API_KEY"`
	SupabaseBucket    string `envconfig:"SUPABASE_BUCKET" default:"victim-photos"`

	// Outbound mail, console output when no key is set
	SendgridAPIKey  string `envconfig:"SENDGRID_API_KEY"`
	MailFromAddress string `envconfig:"MAIL_FROM_ADDRESS" default:"no-reply@homerelief.lk"`
	MailFromName    string `envconfig:"MAIL_FROM_NAME" default:"Home Relief"`

	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	RollbarToken string `envconfig:"ROLLBAR_TOKEN"`

	RealtimeRetrySec uint `envconfig:"REALTIME_RETRY_SEC" default:"5"`
	AdminPageSize    int  `envconfig:"ADMIN_PAGE_SIZE" default:"10"`
	ViewIdleMinutes  uint `envconfig:"VIEW_IDLE_MINUTES" default:"30"`
}
