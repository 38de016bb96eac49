package runtimeconfig

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrContentDirRequired = errors.New("site config: content directory is required")
var ErrDataDirRequired = errors.New("site config: data directory is required")
var ErrEmailAPIKeyRequired = errors.New("site config: email api key is required when email is enabled")
var ErrEmailSenderRequired = errors.New("site config: email from address is required when email is enabled")
var ErrEmailRecipientRequired = errors.New("site config: notification recipient is required when email is enabled")
var ErrSiteURLRequired = errors.New("site config: site url is required")
var ErrStorageProviderUnknown = errors.New("site config: storage provider is invalid")
var ErrStorageDSNRequired = errors.New("site config: storage dsn is required for the bun provider")
var ErrSearchLimitInvalid = errors.New("site config: search limits must be zero or positive")
var ErrLoggingProviderUnknown = errors.New("site config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("site config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("site config: logging format is invalid")

// Config aggregates every runtime setting of the site. Zero values are
// replaced by DefaultConfig when loading from file.
type Config struct {
	SiteName    string            `yaml:"site_name"`
	SiteURL     string            `yaml:"site_url"`
	Content     ContentConfig     `yaml:"content"`
	Search      SearchConfig      `yaml:"search"`
	Email       EmailConfig       `yaml:"email"`
	Subscribers SubscribersConfig `yaml:"subscribers"`
	Storage     StorageConfig     `yaml:"storage"`
	Server      ServerConfig      `yaml:"server"`
	Lint        LintConfig        `yaml:"lint"`
	Routes      RoutesConfig      `yaml:"routes"`
	Logging     LoggingConfig     `yaml:"logging"`
}

// ContentConfig points at the MDX directories and the JSON fixtures.
type ContentConfig struct {
	Dir            string       `yaml:"dir"`
	InsightsDir    string       `yaml:"insights_dir"`
	CaseStudiesDir string       `yaml:"case_studies_dir"`
	DataDir        string       `yaml:"data_dir"`
	Patterns       []string     `yaml:"patterns"`
	IncludeDrafts  bool         `yaml:"include_drafts"`
	Parser         ParserConfig `yaml:"parser"`
}

// ParserConfig mirrors interfaces.ParseOptions for runtime configuration.
type ParserConfig struct {
	Extensions []string `yaml:"extensions"`
	HardWraps  bool     `yaml:"hard_wraps"`
	SafeMode   bool     `yaml:"safe_mode"`
}

// SearchConfig tunes the query matcher.
type SearchConfig struct {
	MaxResults         int      `yaml:"max_results"`
	MaxSuggestions     int      `yaml:"max_suggestions"`
	SuggestionDistance int      `yaml:"suggestion_distance"` // 0 derives the distance from the query length
	MetadataFields     []string `yaml:"metadata_fields"`
}

// EmailConfig configures the email delivery provider.
type EmailConfig struct {
	Enabled  bool          `yaml:"enabled"`
	Provider string        `yaml:"provider"`
	APIKey   string        `yaml:"api_key"`
	From     string        `yaml:"from"`
	NotifyTo []string      `yaml:"notify_to"`
	ReplyTo  string        `yaml:"reply_to"`
	Timeout  time.Duration `yaml:"timeout"`
}

// SubscribersConfig configures mailing list bookkeeping.
type SubscribersConfig struct {
	UnsubscribeSecret string `yaml:"unsubscribe_secret"`
	ConfirmedPath     string `yaml:"confirmed_path"`
	ErrorPath         string `yaml:"error_path"`
}

// StorageConfig selects where subscriber state is kept.
type StorageConfig struct {
	Provider string        `yaml:"provider"`
	DSN      string        `yaml:"dsn"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// ServerConfig captures HTTP listener settings.
type ServerConfig struct {
	Addr           string        `yaml:"addr"`
	AllowedOrigins []string      `yaml:"allowed_origins"`
	ReadTimeout    time.Duration `yaml:"read_timeout"`
	WriteTimeout   time.Duration `yaml:"write_timeout"`
}

// LintConfig captures the content lint scripts' inputs and outputs.
type LintConfig struct {
	Dir             string `yaml:"dir"`
	ReportPath      string `yaml:"report_path"`
	MinInsightLinks int    `yaml:"min_insight_links"`
	MinToolLinks    int    `yaml:"min_tool_links"`
}

// RoutesConfig maps content types to public URL patterns.
type RoutesConfig struct {
	Paths map[string]string `yaml:"paths"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// DefaultConfig returns the settings used by the production site.
func DefaultConfig() Config {
	return Config{
		SiteName: "Northwind Consulting",
		SiteURL:  "http://localhost:3000",
		Content: ContentConfig{
			Dir:            "content",
			InsightsDir:    "insights",
			CaseStudiesDir: "case-studies",
			DataDir:        "data",
			Patterns:       []string{"*.mdx", "*.md"},
		},
		Search: SearchConfig{
			MaxResults:         20,
			MaxSuggestions:     5,
			SuggestionDistance: 0,
			MetadataFields:     []string{"tags", "author", "category", "location", "department", "industry"},
		},
		Email: EmailConfig{
			Provider: "resend",
			From:     "Northwind Consulting <hello@example.com>",
			Timeout:  10 * time.Second,
		},
		Subscribers: SubscribersConfig{
			ConfirmedPath: "/unsubscribe/confirmed",
			ErrorPath:     "/unsubscribe/error",
		},
		Storage: StorageConfig{
			Provider: "memory",
			CacheTTL: time.Minute,
		},
		Server: ServerConfig{
			Addr:           ":8080",
			AllowedOrigins: []string{"*"},
			ReadTimeout:    10 * time.Second,
			WriteTimeout:   30 * time.Second,
		},
		Lint: LintConfig{
			Dir:             "content/insights",
			ReportPath:      "accessibility-report.json",
			MinInsightLinks: 2,
			MinToolLinks:    1,
		},
		Routes: RoutesConfig{
			Paths: map[string]string{
				"insight":     "/insights/:slug",
				"event":       "/events/:slug",
				"job":         "/careers/:slug",
				"tool":        "/tools/:slug",
				"case-study":  "/case-studies/:slug",
				"unsubscribe": "/api/unsubscribe",
			},
		},
		Logging: LoggingConfig{
			Provider: "gologger",
			Level:    "info",
			Format:   "console",
		},
	}
}

// Validate performs high-level consistency checks.
func (cfg Config) Validate() error {
	if strings.TrimSpace(cfg.SiteURL) == "" {
		return ErrSiteURLRequired
	}
	if strings.TrimSpace(cfg.Content.Dir) == "" {
		return ErrContentDirRequired
	}
	if strings.TrimSpace(cfg.Content.DataDir) == "" {
		return ErrDataDirRequired
	}
	if cfg.Search.MaxResults < 0 || cfg.Search.MaxSuggestions < 0 || cfg.Search.SuggestionDistance < 0 {
		return ErrSearchLimitInvalid
	}
	if cfg.Email.Enabled {
		if strings.TrimSpace(cfg.Email.APIKey) == "" {
			return ErrEmailAPIKeyRequired
		}
		if strings.TrimSpace(cfg.Email.From) == "" {
			return ErrEmailSenderRequired
		}
		if len(cfg.Email.NotifyTo) == 0 {
			return ErrEmailRecipientRequired
		}
	}
	switch normalize(cfg.Storage.Provider) {
	case "", "memory":
	case "bun", "sqlite":
		if strings.TrimSpace(cfg.Storage.DSN) == "" {
			return ErrStorageDSNRequired
		}
	default:
		return fmt.Errorf("%w: %s", ErrStorageProviderUnknown, cfg.Storage.Provider)
	}
	switch normalize(cfg.Logging.Provider) {
	case "", "none", "gologger":
	default:
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, cfg.Logging.Provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
		return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
	}
	return nil
}

// InsightsPath joins the content root with the insights directory.
func (c ContentConfig) InsightsPath() string {
	return joinDir(c.Dir, c.InsightsDir)
}

// CaseStudiesPath joins the content root with the case studies directory.
func (c ContentConfig) CaseStudiesPath() string {
	return joinDir(c.Dir, c.CaseStudiesDir)
}

func joinDir(root, dir string) string {
	root = strings.TrimRight(strings.TrimSpace(root), "/")
	dir = strings.Trim(strings.TrimSpace(dir), "/")
	switch {
	case root == "":
		return dir
	case dir == "":
		return root
	default:
		return root + "/" + dir
	}
}

func normalize(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func isSupportedLevel(level string) bool {
	switch normalize(level) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch normalize(format) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
