package constants

// Database connection pool defaults.
const (
	DatabaseMaxOpenConns    = 25
	DatabaseMaxIdleConns    = 5
	DatabaseConnMaxLifetime = 30 // minutes
	DatabaseSSLMode         = "disable"
)

// Admission queue settings.
const (
	QueueAdmission = "admission"

	// AdmissionMaxRetry is the number of retries after the first attempt,
	// giving three total attempts for transient failures.
	AdmissionMaxRetry = 2

	// AdmissionBackoffBaseMS is the delay before the first retry; each
	// subsequent retry doubles it (1s, 2s, 4s, ...).
	AdmissionBackoffBaseMS = 1000

	// AdmissionRetentionMinutes keeps terminal task records around for
	// observability before asynq discards them.
	AdmissionRetentionMinutes = 60
)

// Space lock settings.
const (
	LockLeaseMS          = 10000
	LockAcquireTimeoutMS = 3000
	LockRetryIntervalMS  = 50
)

// Booking defaults.
const (
	SubmitWaitTimeoutMS = 10000
	MaxNotesLength      = 500
)

// Rules cache.
const (
	RulesCacheTTLSeconds = 300
)

// Pagination defaults.
const (
	DefaultPageNumber = 1
	DefaultPageSize   = 20
	MaxPageSize       = 100
)
