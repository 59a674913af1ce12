package verification

import "time"

// Settings are the reCAPTCHA Enterprise credentials and transport options.
type Settings struct {
	APIKey    string
	SiteKey   string
	ProjectID string

	// Endpoint overrides the API base URL; empty uses https://recaptchaenterprise.googleapis.com/.
	Endpoint string
	// Timeout bounds each assessment call; zero leaves it to the hosting platform.
	Timeout time.Duration
}

// Complete reports whether every credential needed for an assessment is present.
func (s Settings) Complete() bool {
	return s.APIKey != "" && s.SiteKey != "" && s.ProjectID != ""
}
