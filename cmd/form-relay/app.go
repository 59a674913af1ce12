package main

import (
	"context"
	"fmt"
	"sync"

	"form-relay/internal/common/aws"
	"form-relay/internal/common/config"
	"form-relay/internal/common/logger"
	"form-relay/internal/common/observability"
	"form-relay/internal/form"
	"form-relay/internal/notify"
	"form-relay/internal/relay"
	"form-relay/internal/verification"

	"go.uber.org/zap"
)

// app holds the process-wide dependencies shared by every form handler.
type app struct {
	cfg      *config.Config
	zap      *zap.Logger
	log      logger.Logger
	obs      *observability.Observability
	verifier *verification.Client
	notifier *notify.Notifier

	closeOnce sync.Once
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.LoadFromFile(configPath)
	}
	return config.Load()
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, fmt.Errorf("config load failed: %w", err)
	}

	zapLog := logger.Build(logger.Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Output:     cfg.Logging.Output,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
	})
	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service":     cfg.App.Name,
		"environment": cfg.App.Environment,
	})

	obs, err := observability.New(observability.Options{
		ServiceName:    cfg.Observability.ServiceName,
		JaegerEndpoint: cfg.Observability.JaegerEndpoint,
	})
	if err != nil {
		return nil, fmt.Errorf("observability init failed: %w", err)
	}

	sns, err := aws.NewSNSClient(ctx, cfg.AWS.Region, cfg.AWS.Endpoint)
	if err != nil {
		obs.Shutdown()
		return nil, fmt.Errorf("sns client init failed: %w", err)
	}

	verifier, err := verification.NewClient(ctx, verification.Settings{
		APIKey:    cfg.Recaptcha.APIKey,
		SiteKey:   cfg.Recaptcha.SiteKey,
		ProjectID: cfg.Recaptcha.ProjectID,
		Endpoint:  cfg.Recaptcha.Endpoint,
		Timeout:   config.GetDuration(cfg.Recaptcha.Timeout),
	}, log)
	if err != nil {
		obs.Shutdown()
		return nil, fmt.Errorf("verification client init failed: %w", err)
	}

	return &app{
		cfg:      cfg,
		zap:      zapLog,
		log:      log,
		obs:      obs,
		verifier: verifier,
		notifier: notify.NewNotifier(sns, log),
	}, nil
}

// topicFor resolves where a form's notifications go.
func (a *app) topicFor(schema *form.Schema) string {
	if schema.Name == form.NameContact {
		return config.ContactTopicARN
	}
	return a.cfg.Forms.JoinUs.TopicARN
}

func (a *app) handler(name string) (*relay.Handler, error) {
	schema, err := form.Lookup(name)
	if err != nil {
		return nil, err
	}
	return relay.NewHandler(relay.Options{
		Schema:        schema,
		Topic:         a.topicFor(schema),
		Verifier:      a.verifier,
		Notifier:      a.notifier,
		CORS:          relay.DefaultCORS(a.cfg.CORS.AllowOrigin),
		Logger:        a.log,
		Observability: a.obs,
	})
}

// close flushes telemetry and logs. It is safe to call more than once.
func (a *app) close() {
	a.closeOnce.Do(func() {
		a.obs.Shutdown()
		_ = a.zap.Sync()
	})
}
