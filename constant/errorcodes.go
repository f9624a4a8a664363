package constant

// Generator service error codes
const (
	// Validation errors (0xx)
	ErrCodeInvalidMode   = "SVC001"
	ErrCodeEmptyValue    = "SVC002"
	ErrCodeNoFile        = "SVC003"
	ErrCodeExtNotAllowed = "SVC004"

	// Generation errors (1xx)
	ErrCodeEncodeFailure  = "SVC101"
	ErrCodeStoreFailure   = "SVC102"
	ErrCodeResolveFailure = "SVC103"
)

// Payment service error codes
const (
	ErrCodePaymentNotConfigured = "PAY001"
	ErrCodeInvalidAmount        = "PAY002"
	ErrCodeOrderCreation        = "PAY003"
	ErrCodeMissingFields        = "PAY004"
	ErrCodeVerifyFailed         = "PAY005"
)

// Blob store error codes
const (
	ErrCodeBlobMkdir    = "BLOB001"
	ErrCodeBlobWrite    = "BLOB002"
	ErrCodeBlobNotFound = "BLOB003"
	ErrCodeBlobBadName  = "BLOB004"
)

// Session store error codes
const (
	ErrCodeSessionDBOpen    = "SES001"
	ErrCodeSessionDBMigrate = "SES002"
	ErrCodeSessionDBQuery   = "SES003"
	ErrCodeSessionDBWrite   = "SES004"
	ErrCodeSessionCookie    = "SES005"
)

// Error types for categorization
const (
	ErrTypeValidation = "validation"
	ErrTypeStorage    = "storage"
	ErrTypeEncoding   = "encoding"
	ErrTypePayment    = "payment"
	ErrTypeSession    = "session"
	ErrTypeDB         = "db"
)
