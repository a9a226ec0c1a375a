package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"jobassist-backend/internal/shared/telemetry"
)

// Config is the process configuration, read once from the environment.
type Config struct {
	Env             string
	Port            string
	CORSAllowOrigin []string

	// CV storage.
	ObjectStoreType string
	LocalStoreDir   string
	AWSRegion       string
	S3Bucket        string
	S3Prefix        string
	SSEKMSKeyID     string

	LLMProvider  string
	LLMModel     string
	LLMTimeout   time.Duration
	GeminiAPIKey string
	OpenAIAPIKey string

	DatabaseURL        string
	RedisURL           string
	EventsRedisChannel string
	EventsSQSQueueURL  string

	FetchTimeout     time.Duration
	JobDescCacheTTL  time.Duration
	AIRequestsPerMin int

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string
	UIRedirectURL      string
}

var (
	envAliases = map[string]string{
		"production": "production", "prod": "production",
		"staging": "staging", "local": "local", "test": "test",
	}
	storeAliases    = map[string]string{"s3": "s3", "local": "local"}
	providerAliases = map[string]string{
		"gemini": "gemini", "openai": "openai",
		"none": "none", "placeholder": "none",
	}
)

// Load reads .env files (the real environment wins) and then the process
// environment. Unparseable values fall back to their defaults with a warning.
func Load() Config {
	for _, file := range []string{".env", "cmd/.env"} {
		if err := godotenv.Load(file); err != nil && !os.IsNotExist(err) {
			telemetry.Warn("config.dotenv_skipped", map[string]any{"file": file, "error": err.Error()})
		}
	}

	var e reader
	cfg := Config{
		Env:             e.choice("ENV", envAliases, "dev"),
		Port:            e.str("PORT", "8080"),
		CORSAllowOrigin: e.list("CORS_ALLOW_ORIGINS", "http://localhost:3000"),

		ObjectStoreType: e.choice("OBJECT_STORE", storeAliases, "local"),
		LocalStoreDir:   e.str("LOCAL_STORE_DIR", "./data"),
		AWSRegion:       e.str("AWS_REGION", ""),
		S3Bucket:        e.str("S3_BUCKET", ""),
		S3Prefix:        e.str("S3_PREFIX", "cvs/"),
		SSEKMSKeyID:     e.str("SSE_KMS_KEY_ID", ""),

		LLMProvider:  e.choice("LLM_PROVIDER", providerAliases, "gemini"),
		LLMModel:     e.str("LLM_MODEL", ""),
		LLMTimeout:   e.duration("LLM_TIMEOUT", 90*time.Second),
		GeminiAPIKey: e.str("GEMINI_API_KEY", ""),
		OpenAIAPIKey: e.str("OPENAI_API_KEY", ""),

		DatabaseURL:        e.str("DATABASE_URL", ""),
		RedisURL:           e.str("REDIS_URL", ""),
		EventsRedisChannel: e.str("EVENTS_REDIS_CHANNEL", "jobassist.applications"),
		EventsSQSQueueURL:  e.str("EVENTS_SQS_QUEUE_URL", ""),

		FetchTimeout:     e.duration("FETCH_TIMEOUT", 20*time.Second),
		JobDescCacheTTL:  e.duration("JD_CACHE_TTL", 24*time.Hour),
		AIRequestsPerMin: e.integer("RATE_LIMIT_AI_RPM", 10),

		GoogleClientID:     e.str("GOOGLE_CLIENT_ID", ""),
		GoogleClientSecret: e.str("GOOGLE_CLIENT_SECRET", ""),
		GoogleRedirectURL:  e.str("GOOGLE_REDIRECT_URL", ""),
		UIRedirectURL:      e.str("UI_REDIRECT_URL", ""),
	}

	for _, p := range e.problems {
		telemetry.Warn("config.invalid_value", p)
	}
	if cfg.Env == "production" && cfg.DatabaseURL == "" {
		telemetry.Warn("config.missing_database_url", map[string]any{"env": cfg.Env})
	}
	return cfg
}

// IsDevLike reports whether in-memory fallbacks are allowed.
func (c Config) IsDevLike() bool {
	return c.Env == "dev" || c.Env == "local"
}

// reader looks up variables and records values it had to discard.
type reader struct {
	problems []map[string]any
}

func (r *reader) raw(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func (r *reader) reject(key, value, want string) {
	r.problems = append(r.problems, map[string]any{"key": key, "value": value, "want": want})
}

func (r *reader) str(key, def string) string {
	if v := r.raw(key); v != "" {
		return v
	}
	return def
}

func (r *reader) duration(key string, def time.Duration) time.Duration {
	v := r.raw(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		r.reject(key, v, "positive duration")
		return def
	}
	return d
}

func (r *reader) integer(key string, def int) int {
	v := r.raw(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		r.reject(key, v, "integer")
		return def
	}
	return n
}

// choice maps the value case-insensitively through aliases. Unknown values
// become def.
func (r *reader) choice(key string, aliases map[string]string, def string) string {
	v := strings.ToLower(r.raw(key))
	if v == "" {
		return def
	}
	if canonical, ok := aliases[v]; ok {
		return canonical
	}
	r.reject(key, v, "known value")
	return def
}

func (r *reader) list(key, def string) []string {
	var out []string
	for _, part := range strings.Split(r.str(key, def), ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
