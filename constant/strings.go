package constant

// Request context keys
const (
	RequestIDKey = "request_id"
)

// HTTP header names
const (
	HeaderRequestID = "X-Request-ID"
)

// Function/Context names
const (
	// Domain context names
	CtxDomain        = "domain"
	CtxGenerate      = "Generate"
	CtxResolveTarget = "ResolveTarget"
	CtxCreateOrder   = "CreateOrder"
	CtxVerifyPayment = "VerifyPayment"

	// Infrastructure context names
	CtxBlobStore    = "blobstore"
	CtxSessionStore = "session"
	CtxGateway      = "razorpay"
	CtxDB           = "db"
	CtxAPI          = "api"

	// General context names
	CtxRouter         = "Router"
	CtxMain           = "Main"
	CtxIndex          = "Index"
	CtxServeFile      = "ServeFile"
	CtxServeQR        = "ServeQR"
	CtxPaymentHandler = "PaymentHandler"
)

// Data field keys
const (
	// Service data fields
	DataService  = "service"
	DataMode     = "mode"
	DataTarget   = "target"
	DataFilename = "filename"
	DataQRFile   = "qr_file"
	DataBytes    = "bytes"

	// Payment data fields
	DataOrderID   = "order_id"
	DataPaymentID = "payment_id"
	DataAmount    = "amount"
	DataCurrency  = "currency"
	DataReceipt   = "receipt"

	// Session data fields
	DataSessionID = "session_id"

	// Database data fields
	DataPath         = "path"
	DataElapsed      = "elapsed"
	DataRows         = "rows"
	DataSQL          = "sql"
	DataData         = "data"
	DataRowsAffected = "rows_affected"

	// API data fields
	DataMethod      = "method"
	DataRemoteAddr  = "remote_addr"
	DataUserAgent   = "user_agent"
	DataStatus      = "status"
	DataLatency     = "latency"
	DataSize        = "size"
	DataPort        = "port"
	DataEnvironment = "environment"
)

// Error message constants
const (
	ErrInvalidMode          = "invalid submission"
	ErrEmptyValue           = "enter a URL or text"
	ErrNoFile               = "choose a file"
	ErrExtNotAllowed        = "file type not allowed"
	ErrBlobNotFound         = "file not found"
	ErrUnsafeFilename       = "unsafe filename"
	ErrPaymentNotConfigured = "payment not configured"
	ErrInvalidAmount        = "invalid amount"
	ErrOrderCreation        = "failed to create order"
	ErrMissingFields        = "missing payment details"
	ErrVerifyFailed         = "payment signature verification failed"
)

// Flash messages shown to the user
const (
	FlashCompletePayment       = "Please complete payment to generate QR codes."
	FlashEnterURL              = "Please enter a URL or some text."
	FlashChooseFile            = "Please choose a file to upload."
	FlashFileTypeNotAllowed    = "File type not allowed."
	FlashInvalidSubmission     = "Invalid submission."
	FlashGenerationFailed      = "Failed to generate QR code."
	FlashPaymentNotConfigured  = "Payment is not configured on the server."
	FlashMissingPaymentDetails = "Missing payment details from Razorpay."
	FlashVerificationFailed    = "Payment verification failed. If you were charged, please contact support."
	FlashPaymentSuccess        = "Payment successful! QR generator unlocked."
)

// API error codes
const (
	ErrCodeAPIDecodeRequest  = "API001"
	ErrCodeAPIServiceError   = "API002"
	ErrCodeAPIRenderFailure  = "API003"
	ErrCodeAppBlobInit       = "APP001"
	ErrCodeAppSessionInit    = "APP002"
	ErrCodeAppServerStart    = "APP003"
	ErrCodeAppServerShutdown = "APP004"
)

// Error types
const (
	ErrTypeAPI = "api"
	ErrTypeApp = "application"
)

// API routes
const (
	RouteIndex          = "/"
	RouteFile           = "/file/{filename}"
	RouteQR             = "/qr/{filename}"
	RouteCreateOrder    = "/create_order"
	RoutePaymentHandler = "/payment_handler"
	RouteHealthcheck    = "/health"
)

// Log keys
const (
	LogTimeKey         = "time"
	LogLevelKey        = "level"
	LogNameKey         = "logger"
	LogCallerKey       = "caller"
	LogMessageKey      = "msg"
	LogStacktraceKey   = "stacktrace"
	LogRequestIDKey    = "request_id"
	LogFunctionKey     = "function"
	LogErrorCodeKey    = "error_code"
	LogErrorTypeKey    = "error_type"
	LogErrorMessageKey = "error_message"
	LogEncodingJSON    = "json"
	LogEncodingConsole = "console"
	LogOutputStdout    = "stdout"
	LogOutputStderr    = "stderr"
)

// Message constants for application
const (
	MsgApplicationStarting   = "Application starting"
	MsgFailedToInitBlobStore = "Failed to initialize blob store"
	MsgFailedToInitSessions  = "Failed to initialize session store"
	MsgPaymentKeysMissing    = "Razorpay keys not set, payment endpoints disabled"
	MsgServerStarting        = "Server starting"
	MsgServerFailedToStart   = "Server failed to start"
	MsgServerShuttingDown    = "Server shutting down"
	MsgServerShutdownError   = "Error during server shutdown"
	MsgServerStopped         = "Server stopped"
	MsgRequestReceived       = "Request received"
	MsgRequestCompleted      = "Request completed"
	MsgSettingUpRoutes       = "Setting up API routes"
	MsgHealthcheckRequest    = "Handling healthcheck request"
	MsgHealthy               = "Healthy"
)

// Session store keys
const (
	SessionKeyPaid    = "paid"
	SessionKeyFlashes = "flashes"
)
