package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	CORS     CORSConfig
	Log      LogConfig
	Gemini   GeminiConfig
	Calendar CalendarConfig
	Import   ImportConfig
	Export   ExportConfig
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// GeminiConfig points the extraction client at the generative backend.
// The API key itself is never configured here; callers supply it per request.
type GeminiConfig struct {
	BaseURL string
	Model   string
	Timeout time.Duration
}

// CalendarConfig tunes the commit engine.
type CalendarConfig struct {
	Timezone          string
	DefaultCalendarID string
	PaceInterval      time.Duration
	UpcomingWindow    time.Duration
}

// ImportConfig limits accepted schedule documents.
type ImportConfig struct {
	MaxFileSizeBytes int64
	AllowedMIMEs     []string
}

// ExportConfig points the PDF renderer at a TrueType font. The font must
// cover the glyphs of the schedules it renders; Japanese summaries need a
// CJK-capable face such as IPAex Gothic.
type ExportConfig struct {
	PDFFontPath string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Gemini = GeminiConfig{
		BaseURL: v.GetString("GEMINI_BASE_URL"),
		Model:   v.GetString("GEMINI_MODEL"),
		Timeout: parseDuration(v.GetString("GEMINI_TIMEOUT"), 60*time.Second),
	}

	cfg.Calendar = CalendarConfig{
		Timezone:          v.GetString("CALENDAR_TIMEZONE"),
		DefaultCalendarID: v.GetString("CALENDAR_DEFAULT_ID"),
		PaceInterval:      parseDuration(v.GetString("CALENDAR_PACE_INTERVAL"), 200*time.Millisecond),
		UpcomingWindow:    parseDuration(v.GetString("CALENDAR_UPCOMING_WINDOW"), 14*24*time.Hour),
	}

	maxFileSize := v.GetInt64("IMPORT_MAX_FILE_SIZE")
	if maxFileSize <= 0 {
		maxFileSize = 20 * 1024 * 1024
	}
	cfg.Import = ImportConfig{
		MaxFileSizeBytes: maxFileSize,
		AllowedMIMEs:     splitAndTrim(v.GetString("IMPORT_ALLOWED_MIME_TYPES")),
	}

	cfg.Export = ExportConfig{PDFFontPath: v.GetString("EXPORT_PDF_FONT_PATH")}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com/v1beta")
	v.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	v.SetDefault("GEMINI_TIMEOUT", "60s")

	v.SetDefault("CALENDAR_TIMEZONE", "Asia/Tokyo")
	v.SetDefault("CALENDAR_DEFAULT_ID", "primary")
	v.SetDefault("CALENDAR_PACE_INTERVAL", "200ms")
	v.SetDefault("CALENDAR_UPCOMING_WINDOW", "336h")

	v.SetDefault("IMPORT_MAX_FILE_SIZE", 20*1024*1024)
	v.SetDefault("IMPORT_ALLOWED_MIME_TYPES", "image/png,image/jpeg,image/webp,application/pdf")

	v.SetDefault("EXPORT_PDF_FONT_PATH", "assets/fonts/ipaexg.ttf")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
