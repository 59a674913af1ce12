// internal/common/config/config.go
package config

import "time"

// ContactTopicARN is the fixed destination of contact form notifications.
const ContactTopicARN = "arn:aws:sns:us-east-2:823741290812:valorem-contact-form"

// DefaultAllowOrigin is the only browser origin allowed to post the forms.
const DefaultAllowOrigin = "https://www.valoremgp.com"

// Config is the main application configuration struct.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Recaptcha     RecaptchaConfig     `mapstructure:"recaptcha"`
	Forms         FormsConfig         `mapstructure:"forms"`
	CORS          CORSConfig          `mapstructure:"cors"`
	AWS           AWSConfig           `mapstructure:"aws"`
	Server        ServerConfig        `mapstructure:"server"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// --- Core App Config ---
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// RecaptchaConfig holds the reCAPTCHA Enterprise credentials. Empty values are allowed here;
// verification fails closed per request when any of the three is missing.
type RecaptchaConfig struct {
	APIKey    string `mapstructure:"api_key"`
	SiteKey   string `mapstructure:"site_key"`
	ProjectID string `mapstructure:"project_id"`
	Endpoint  string `mapstructure:"endpoint" validate:"omitempty,url"`
	Timeout   int    `mapstructure:"timeout" validate:"gte=0"` // milliseconds, 0 = no client timeout
}

type FormsConfig struct {
	JoinUs struct {
		TopicARN string `mapstructure:"topic_arn"`
	} `mapstructure:"join_us"`
}

type CORSConfig struct {
	AllowOrigin string `mapstructure:"allow_origin" validate:"required"`
}

type AWSConfig struct {
	Region   string `mapstructure:"region" validate:"required"`
	Endpoint string `mapstructure:"endpoint" validate:"omitempty,url"` // local stacks only
}

type ServerConfig struct {
	Address         string `mapstructure:"address" validate:"required"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout" validate:"gt=0"` // milliseconds
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	Output     string `mapstructure:"output" validate:"required"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

type ObservabilityConfig struct {
	ServiceName    string `mapstructure:"service_name"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint" validate:"omitempty,url"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
