package constants

import "time"

const (
	PasswordMinLength = 8
	PasswordMaxLength = 72
	EmailMaxLength    = 255

	TitleMaxLength       = 120
	CategoryMaxLength    = 50
	DonorNameMaxLength   = 120
	ItemMaxLength        = 120
	DefaultCategory      = "general"
	DefaultDonorName     = "Anonymous"
	MinDonationQuantity  = 1
	RecentListingLimit   = 5
	DefaultListingLimit  = 100
	SessionSecretMinSize = 32

	BcryptCost = 12

	DefaultMaxRequestSize = 1 << 20

	RateLimitRegisterRequestsPerSecond = 0.05
	RateLimitRegisterBurst             = 5
	RateLimitLoginRequestsPerSecond    = 0.1
	RateLimitLoginBurst                = 10
	RateLimitWriteRequestsPerSecond    = 0.5
	RateLimitWriteBurst                = 20
	RateLimitGeneralRequestsPerSecond  = 2
	RateLimitGeneralBurst              = 60
	RateLimitCleanupInterval           = 5 * time.Minute

	DBPoolMaxOpenConns    = 25
	DBPoolMinOpenConns    = 5
	DBPoolConnMaxLifetime = time.Hour
	DBPoolConnMaxIdleTime = 30 * time.Minute
	DBPoolHealthCheck     = time.Minute
	DBPoolConnectTimeout  = 5 * time.Second
	DBPoolMaxAttempts     = 10
	DBPoolRetryDelay      = time.Second
	DBPoolMetricsInterval = 30 * time.Second

	ServerReadHeaderTimeout = 10 * time.Second
	ServerReadTimeout       = 30 * time.Second
	ServerWriteTimeout      = 30 * time.Second
	ServerIdleTimeout       = 120 * time.Second

	ShutdownTimeout = 30 * time.Second
	DrainTimeout    = 10 * time.Second

	RequestTimeout = 5 * time.Second

	DefaultHTTPPort   = "8080"
	DefaultSessionTTL = 7 * 24 * time.Hour

	FeedWriteWait      = 10 * time.Second
	FeedPongWait       = 60 * time.Second
	FeedPingPeriod     = 54 * time.Second
	FeedSendBufferSize = 16
)
