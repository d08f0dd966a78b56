package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/leadflow/internal/apperr"
)

// Config holds the full application configuration.
type Config struct {
	Sink      SinkConfig      `yaml:"sink" mapstructure:"sink"`
	Google    GoogleConfig    `yaml:"google" mapstructure:"google"`
	Notion    NotionConfig    `yaml:"notion" mapstructure:"notion"`
	LLM       LLMConfig       `yaml:"llm" mapstructure:"llm"`
	OpenAI    OpenAIConfig    `yaml:"openai" mapstructure:"openai"`
	Anthropic AnthropicConfig `yaml:"anthropic" mapstructure:"anthropic"`
	Gemini    GeminiConfig    `yaml:"gemini" mapstructure:"gemini"`
	SMTP      SMTPConfig      `yaml:"smtp" mapstructure:"smtp"`
	Outreach  OutreachConfig  `yaml:"outreach" mapstructure:"outreach"`
	Server    ServerConfig    `yaml:"server" mapstructure:"server"`
	Log       LogConfig       `yaml:"log" mapstructure:"log"`
}

// SinkConfig selects the lead persistence backend.
type SinkConfig struct {
	Driver string `yaml:"driver" mapstructure:"driver"` // "sheets" or "notion"
}

// GoogleConfig holds the service-account fields and target spreadsheet.
type GoogleConfig struct {
	Type                string `yaml:"type" mapstructure:"type"`
	ProjectID           string `yaml:"project_id" mapstructure:"project_id"`
	PrivateKeyID        string `yaml:"private_key_id" mapstructure:"private_key_id"`
	PrivateKey          string `yaml:"private_key" mapstructure:"private_key"`
	ClientEmail         string `yaml:"client_email" mapstructure:"client_email"`
	ClientID            string `yaml:"client_id" mapstructure:"client_id"`
	AuthURI             string `yaml:"auth_uri" mapstructure:"auth_uri"`
	TokenURI            string `yaml:"token_uri" mapstructure:"token_uri"`
	AuthProviderCertURL string `yaml:"auth_provider_x509_cert_url" mapstructure:"auth_provider_x509_cert_url"`
	ClientCertURL       string `yaml:"client_x509_cert_url" mapstructure:"client_x509_cert_url"`
	SpreadsheetID       string `yaml:"spreadsheet_id" mapstructure:"spreadsheet_id"`
	SheetName           string `yaml:"sheet_name" mapstructure:"sheet_name"`
	SheetsBaseURL       string `yaml:"sheets_base_url" mapstructure:"sheets_base_url"`
	TimeoutSecs         int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// NotionConfig holds the Notion lead database settings.
type NotionConfig struct {
	Token     string  `yaml:"token" mapstructure:"token"`
	LeadDB    string  `yaml:"lead_db" mapstructure:"lead_db"`
	RateLimit   float64 `yaml:"rate_limit" mapstructure:"rate_limit"`
	TimeoutSecs int     `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// LLMConfig selects the text-generation provider.
type LLMConfig struct {
	Provider    string `yaml:"provider" mapstructure:"provider"` // "openai", "anthropic" or "gemini"
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
	MaxTokens   int    `yaml:"max_tokens" mapstructure:"max_tokens"`
}

// OpenAIConfig holds OpenAI API settings.
type OpenAIConfig struct {
	Key     string `yaml:"key" mapstructure:"key"`
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Model   string `yaml:"model" mapstructure:"model"`
}

// AnthropicConfig holds Anthropic API settings.
type AnthropicConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// GeminiConfig holds Google Gemini API settings.
type GeminiConfig struct {
	Key   string `yaml:"key" mapstructure:"key"`
	Model string `yaml:"model" mapstructure:"model"`
}

// SMTPConfig holds the outbound mail relay settings.
type SMTPConfig struct {
	Host        string `yaml:"host" mapstructure:"host"`
	Port        int    `yaml:"port" mapstructure:"port"`
	User        string `yaml:"user" mapstructure:"user"`
	Password    string `yaml:"password" mapstructure:"password"`
	From        string `yaml:"from" mapstructure:"from"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// OutreachConfig configures the generated email.
type OutreachConfig struct {
	Subject      string   `yaml:"subject" mapstructure:"subject"`
	SignOff      string   `yaml:"sign_off" mapstructure:"sign_off"`
	TemplateFile string   `yaml:"template_file" mapstructure:"template_file"`
	Industries   []string `yaml:"industries" mapstructure:"industries"`
}

// ServerConfig configures the web dashboard.
type ServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level     string `yaml:"level" mapstructure:"level"`
	Format    string `yaml:"format" mapstructure:"format"`
	ErrorFile string `yaml:"error_file" mapstructure:"error_file"`
}

// DefaultErrorFile receives top-level failures when no config is available.
const DefaultErrorFile = "leadflow-error.log"

// envBindings maps config keys to the conventional variable names used by
// service-account JSON exports and the mail/LLM providers.
var envBindings = map[string]string{
	"google.type":                        "GOOGLE_TYPE",
	"google.project_id":                  "GOOGLE_PROJECT_ID",
	"google.private_key_id":              "GOOGLE_PRIVATE_KEY_ID",
	"google.private_key":                 "GOOGLE_PRIVATE_KEY",
	"google.client_email":                "GOOGLE_CLIENT_EMAIL",
	"google.client_id":                   "GOOGLE_CLIENT_ID",
	"google.auth_uri":                    "GOOGLE_AUTH_URI",
	"google.token_uri":                   "GOOGLE_TOKEN_URI",
	"google.auth_provider_x509_cert_url": "GOOGLE_AUTH_PROVIDER_X509_CERT_URL",
	"google.client_x509_cert_url":        "GOOGLE_CLIENT_X509_CERT_URL",
	"google.spreadsheet_id":              "GOOGLE_SPREADSHEET_ID",
	"openai.key":                         "OPENAI_API_KEY",
	"anthropic.key":                      "ANTHROPIC_API_KEY",
	"gemini.key":                         "GEMINI_API_KEY",
	"notion.token":                       "NOTION_TOKEN",
	"notion.lead_db":                     "NOTION_LEAD_DB",
	"smtp.user":                          "SMTP_USER",
	"smtp.password":                      "SMTP_PASSWORD",
}

// Load reads configuration from .env, config file and environment.
func Load() (*Config, error) {
	// .env is optional; variables already set in the process win.
	_ = godotenv.Load()

	v := viper.New()

	// Config file
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// Environment
	v.SetEnvPrefix("LEADFLOW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	for key, env := range envBindings {
		prefixed := "LEADFLOW_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(key, prefixed, env); err != nil {
			return nil, eris.Wrapf(err, "config: bind env %s", env)
		}
	}

	// Defaults
	v.SetDefault("sink.driver", "sheets")
	v.SetDefault("google.type", "service_account")
	v.SetDefault("google.auth_uri", "https://accounts.google.com/o/oauth2/auth")
	v.SetDefault("google.token_uri", "https://oauth2.googleapis.com/token")
	v.SetDefault("google.auth_provider_x509_cert_url", "https://www.googleapis.com/oauth2/v1/certs")
	v.SetDefault("google.client_x509_cert_url", "")
	v.SetDefault("google.sheet_name", "Sheet1")
	v.SetDefault("google.sheets_base_url", "https://sheets.googleapis.com/v4")
	v.SetDefault("google.timeout_secs", 30)
	v.SetDefault("notion.rate_limit", 3.0)
	v.SetDefault("notion.timeout_secs", 30)
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.timeout_secs", 60)
	v.SetDefault("llm.max_tokens", 600)
	v.SetDefault("openai.base_url", "https://api.openai.com/v1")
	v.SetDefault("openai.model", "gpt-4o-mini")
	v.SetDefault("anthropic.model", "claude-haiku-4-5-20251001")
	v.SetDefault("gemini.model", "gemini-2.5-flash")
	v.SetDefault("smtp.host", "smtp.gmail.com")
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.timeout_secs", 30)
	v.SetDefault("outreach.subject", "Free 15-Min Workflow Audit")
	v.SetDefault("outreach.sign_off", "")
	v.SetDefault("outreach.template_file", "")
	v.SetDefault("outreach.industries", []string{"Technology", "Healthcare"})
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8501)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.error_file", DefaultErrorFile)

	// Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.User
	}

	return &cfg, nil
}

// Validate checks that every value required by mode is present. It runs
// before any network call and returns an *apperr.ConfigurationError naming
// the first missing variable.
//
// Modes: "import" needs only the sink; "send", "dashboard" and "serve" need
// the sink, the LLM provider and SMTP credentials.
func (c *Config) Validate(mode string) error {
	switch mode {
	case "import", "send", "dashboard", "serve":
	default:
		return eris.Errorf("config: unknown mode %q", mode)
	}

	if err := c.validateSink(); err != nil {
		return err
	}
	if mode == "import" {
		return nil
	}

	if err := c.validateLLM(); err != nil {
		return err
	}

	required := []struct {
		value string
		env   string
	}{
		{c.SMTP.User, "SMTP_USER"},
		{c.SMTP.Password, "SMTP_PASSWORD"},
	}
	for _, r := range required {
		if strings.TrimSpace(r.value) == "" {
			return apperr.NewConfigurationError(r.env)
		}
	}

	if mode == "serve" && c.Server.Port <= 0 {
		return eris.New("config: server.port must be > 0")
	}

	return nil
}

func (c *Config) validateSink() error {
	switch c.Sink.Driver {
	case "sheets":
		g := c.Google
		required := []struct {
			value string
			env   string
		}{
			{g.Type, "GOOGLE_TYPE"},
			{g.ProjectID, "GOOGLE_PROJECT_ID"},
			{g.PrivateKeyID, "GOOGLE_PRIVATE_KEY_ID"},
			{g.PrivateKey, "GOOGLE_PRIVATE_KEY"},
			{g.ClientEmail, "GOOGLE_CLIENT_EMAIL"},
			{g.ClientID, "GOOGLE_CLIENT_ID"},
			{g.AuthURI, "GOOGLE_AUTH_URI"},
			{g.TokenURI, "GOOGLE_TOKEN_URI"},
			{g.AuthProviderCertURL, "GOOGLE_AUTH_PROVIDER_X509_CERT_URL"},
			{g.SpreadsheetID, "GOOGLE_SPREADSHEET_ID"},
		}
		for _, r := range required {
			if strings.TrimSpace(r.value) == "" {
				return apperr.NewConfigurationError(r.env)
			}
		}
	case "notion":
		if strings.TrimSpace(c.Notion.Token) == "" {
			return apperr.NewConfigurationError("NOTION_TOKEN")
		}
		if strings.TrimSpace(c.Notion.LeadDB) == "" {
			return apperr.NewConfigurationError("NOTION_LEAD_DB")
		}
	default:
		return eris.Errorf("config: unknown sink driver %q", c.Sink.Driver)
	}
	return nil
}

func (c *Config) validateLLM() error {
	var key, env string
	switch c.LLM.Provider {
	case "openai":
		key, env = c.OpenAI.Key, "OPENAI_API_KEY"
	case "anthropic":
		key, env = c.Anthropic.Key, "ANTHROPIC_API_KEY"
	case "gemini":
		key, env = c.Gemini.Key, "GEMINI_API_KEY"
	default:
		return eris.Errorf("config: unknown llm provider %q", c.LLM.Provider)
	}
	if strings.TrimSpace(key) == "" {
		return apperr.NewConfigurationError(env)
	}
	return nil
}

// Seconds converts a *_secs setting to a duration, falling back to def when
// the setting is not positive.
func Seconds(secs int, def time.Duration) time.Duration {
	if secs <= 0 {
		return def
	}
	return time.Duration(secs) * time.Second
}

// InitLogger initializes the global zap logger. When cfg.ErrorFile is set,
// error-level entries are also appended to that file as JSON lines.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}

	if cfg.ErrorFile != "" {
		fileCore, err := errorFileCore(cfg.ErrorFile)
		if err != nil {
			return err
		}
		logger = logger.WithOptions(zap.WrapCore(func(c zapcore.Core) zapcore.Core {
			return zapcore.NewTee(c, fileCore)
		}))
	}

	zap.ReplaceGlobals(logger)

	return nil
}

// AppendErrorLog writes err to path as a single error-level JSON line. It is
// used for failures that happen before (or while) the logger is configured.
func AppendErrorLog(path string, err error) error {
	if path == "" {
		path = DefaultErrorFile
	}
	core, openErr := errorFileCore(path)
	if openErr != nil {
		return openErr
	}
	logger := zap.New(core)
	logger.Error("leadflow: fatal error", zap.Error(err))
	return logger.Sync()
}

func errorFileCore(path string) (zapcore.Core, error) {
	ws, _, err := zap.Open(path)
	if err != nil {
		return nil, eris.Wrapf(err, "config: open error log %s", path)
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	return zapcore.NewCore(enc, ws, zapcore.ErrorLevel), nil
}
