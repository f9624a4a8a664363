package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port              int
	BaseURL           string
	UploadDir         string
	QRDir             string
	SessionSecret     string
	SessionDBPath     string
	SessionCacheSize  int
	RazorpayKeyID     string
	RazorpayKeySecret string
	RequirePayment    bool
	PriceINR          float64
	MaxUploadBytes    int64
	AllowedExtensions []string
	LogLevel          string
}

func LoadConfig() Config {
	port, _ := strconv.Atoi(getEnv("PORT", "8080"))
	cacheSize, _ := strconv.Atoi(getEnv("SESSION_CACHE_SIZE", "10000"))
	price, _ := strconv.ParseFloat(getEnv("PRICE_INR", "1"), 64)
	maxUpload, _ := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "52428800"), 10, 64)
	requirePayment, _ := strconv.ParseBool(getEnv("REQUIRE_PAYMENT", "false"))

	return Config{
		Port:              port,
		BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
		UploadDir:         getEnv("UPLOAD_DIR", "uploads"),
		QRDir:             getEnv("QR_DIR", "qrcodes"),
		SessionSecret:     getEnv("SESSION_SECRET", "change-this-in-production"),
		SessionDBPath:     getEnv("SESSION_DB_PATH", ""),
		SessionCacheSize:  cacheSize,
		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", ""),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
		RequirePayment:    requirePayment,
		PriceINR:          price,
		MaxUploadBytes:    maxUpload,
		AllowedExtensions: splitList(getEnv("ALLOWED_EXTENSIONS", "")),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// splitList parses a comma separated list, dropping empty entries.
// An empty input means the extension allow-list is disabled.
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.TrimSpace(strings.ToLower(part))
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
