package main

import (
	"context"
	"time"

	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/leadflow/internal/apperr"
	"github.com/sells-group/leadflow/internal/config"
	"github.com/sells-group/leadflow/internal/dashboard"
	"github.com/sells-group/leadflow/internal/intake"
	"github.com/sells-group/leadflow/internal/outreach"
	"github.com/sells-group/leadflow/internal/sink"
	anthropicpkg "github.com/sells-group/leadflow/pkg/anthropic"
	"github.com/sells-group/leadflow/pkg/gemini"
	"github.com/sells-group/leadflow/pkg/google"
	"github.com/sells-group/leadflow/pkg/notion"
	"github.com/sells-group/leadflow/pkg/openai"
)

// appEnv holds the clients built once at startup and shared by every
// command.
type appEnv struct {
	Sink       sink.Sink
	Intake     *intake.Service
	Generator  outreach.Generator // nil in import mode
	Sender     outreach.Sender    // nil in import mode
	Industries []string
	Metrics    *dashboard.Metrics
}

// Controller returns a dashboard controller over the environment.
func (e *appEnv) Controller() *dashboard.Controller {
	return dashboard.NewController(dashboard.Deps{
		Intake:     e.Intake,
		Sink:       e.Sink,
		Generator:  e.Generator,
		Sender:     e.Sender,
		Industries: e.Industries,
		Metrics:    e.Metrics,
	})
}

// initEnv validates the configuration for mode, then builds and authorizes
// the sink and (outside import mode) the generator and sender.
func initEnv(ctx context.Context, mode string) (*appEnv, error) {
	if err := cfg.Validate(mode); err != nil {
		return nil, err
	}

	s, err := initSink(ctx)
	if err != nil {
		return nil, err
	}

	env := &appEnv{
		Sink:       s,
		Intake:     intake.NewService(s),
		Industries: cfg.Outreach.Industries,
		Metrics:    dashboard.NewMetrics(),
	}
	if mode == "import" {
		return env, nil
	}

	gen, err := initGenerator(ctx)
	if err != nil {
		return nil, err
	}
	env.Generator = gen
	env.Sender = initSender()

	zap.L().Info("environment ready",
		zap.String("mode", mode),
		zap.String("sink", cfg.Sink.Driver),
		zap.String("llm", cfg.LLM.Provider),
		zap.String("smtp_host", cfg.SMTP.Host),
	)
	return env, nil
}

func initSink(ctx context.Context) (sink.Sink, error) {
	switch cfg.Sink.Driver {
	case "notion":
		client := notion.NewClient(cfg.Notion.Token,
			notion.WithRateLimit(cfg.Notion.RateLimit),
			notion.WithTimeout(config.Seconds(cfg.Notion.TimeoutSecs, 30*time.Second)),
		)
		return sink.NewNotion(client, cfg.Notion.LeadDB), nil
	default:
		client, err := google.NewClient(cfg.ServiceAccount(), cfg.Google.SpreadsheetID,
			google.WithBaseURL(cfg.Google.SheetsBaseURL),
			google.WithTimeout(config.Seconds(cfg.Google.TimeoutSecs, 30*time.Second)),
		)
		if err != nil {
			return nil, apperr.NewExternalServiceError("sheets", "load credentials", err)
		}
		if err := client.Authorize(ctx); err != nil {
			return nil, apperr.NewExternalServiceError("sheets", "authorize", err)
		}
		return sink.NewSheets(client, cfg.Google.SheetName), nil
	}
}

func initGenerator(ctx context.Context) (*outreach.LLMGenerator, error) {
	tmpl := outreach.DefaultTemplate()
	if cfg.Outreach.TemplateFile != "" {
		t, err := outreach.LoadTemplate(cfg.Outreach.TemplateFile)
		if err != nil {
			return nil, err
		}
		tmpl = t
	}
	if cfg.Outreach.Subject != "" {
		tmpl.Subject = cfg.Outreach.Subject
	}
	if cfg.Outreach.SignOff != "" {
		tmpl.SignOff = cfg.Outreach.SignOff
	}

	timeout := config.Seconds(cfg.LLM.TimeoutSecs, time.Minute)

	var completer outreach.Completer
	switch cfg.LLM.Provider {
	case "anthropic":
		client := anthropicpkg.NewClient(cfg.Anthropic.Key,
			option.WithRequestTimeout(timeout),
			option.WithMaxRetries(0),
		)
		completer = outreach.NewAnthropicCompleter(client, cfg.Anthropic.Model, cfg.LLM.MaxTokens)
	case "gemini":
		client, err := gemini.NewClient(ctx, cfg.Gemini.Key, cfg.Gemini.Model)
		if err != nil {
			return nil, apperr.NewExternalServiceError("gemini", "create client", err)
		}
		completer = outreach.NewGeminiCompleter(client, cfg.LLM.MaxTokens)
	case "openai":
		client := openai.NewClient(cfg.OpenAI.Key,
			openai.WithBaseURL(cfg.OpenAI.BaseURL),
			openai.WithModel(cfg.OpenAI.Model),
			openai.WithTimeout(timeout),
		)
		completer = outreach.NewOpenAICompleter(client, cfg.LLM.MaxTokens)
	default:
		return nil, eris.Errorf("unknown llm provider %q", cfg.LLM.Provider)
	}

	return outreach.NewLLMGenerator(completer, tmpl, timeout), nil
}

func initSender() *outreach.SMTPSender {
	return outreach.NewSMTPSender(outreach.SMTPSettings{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		User:     cfg.SMTP.User,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		Subject:  cfg.Outreach.Subject,
		Timeout:  config.Seconds(cfg.SMTP.TimeoutSecs, 30*time.Second),
	})
}
