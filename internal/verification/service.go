package verification

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	commonhttp "form-relay/internal/common/http"
	"form-relay/internal/common/logger"
	"form-relay/internal/common/metrics"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/googleapi/transport"
	"google.golang.org/api/option"
	recaptcha "google.golang.org/api/recaptchaenterprise/v1"
)

// Client creates reCAPTCHA Enterprise assessments. It is safe for concurrent use.
type Client struct {
	settings Settings
	logger   logger.Logger
	service  *recaptcha.Service
}

// NewClient builds the assessment client. Missing credentials are not an error here;
// Verify fails closed for every request instead.
func NewClient(ctx context.Context, settings Settings, log logger.Logger) (*Client, error) {
	httpClient := commonhttp.NewClient(settings.Timeout, func(base http.RoundTripper) http.RoundTripper {
		return &transport.APIKey{Key: settings.APIKey, Transport: base}
	})

	opts := []option.ClientOption{option.WithHTTPClient(httpClient.Standard())}
	if settings.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(settings.Endpoint))
	}

	service, err := recaptcha.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create recaptcha enterprise service: %w", err)
	}

	if !settings.Complete() {
		log.Error("Missing reCAPTCHA configuration (API key, site key or project ID)", nil)
	}

	return &Client{
		settings: settings,
		logger:   log.WithFields(map[string]interface{}{"component": "verification"}),
		service:  service,
	}, nil
}

// Verify exchanges token for an assessment and checks it against action.
// The returned error is reserved for caller mistakes; service failures are reported as an invalid Outcome.
func (c *Client) Verify(ctx context.Context, token, action string) (Outcome, error) {
	if token == "" {
		return Outcome{}, ErrMissingToken
	}
	if action == "" {
		return Outcome{}, ErrMissingAction
	}

	outcome, result := c.assess(ctx, token, action)
	metrics.VerificationsTotal.WithLabelValues(action, result).Inc()
	return outcome, nil
}

func (c *Client) assess(ctx context.Context, token, action string) (Outcome, string) {
	log := c.logger.WithFields(map[string]interface{}{"expectedAction": action})

	if !c.settings.Complete() {
		log.Error("Missing environment variables for reCAPTCHA (API_KEY, SITE_KEY, or PROJECT_ID)", nil)
		return rejected(ReasonConfiguration), resultMisconfigured
	}

	assessment, err := c.service.Projects.Assessments.Create(
		"projects/"+c.settings.ProjectID,
		&recaptcha.GoogleCloudRecaptchaenterpriseV1Assessment{
			Event: &recaptcha.GoogleCloudRecaptchaenterpriseV1Event{
				Token:          token,
				SiteKey:        c.settings.SiteKey,
				ExpectedAction: action,
			},
		},
	).Context(ctx).Do()
	if err != nil {
		c.logTransportError(log, err)
		return rejected(ReasonUnavailable), resultUnavailable
	}

	props := assessment.TokenProperties
	if props == nil || !props.Valid {
		invalidReason := ""
		if props != nil {
			invalidReason = props.InvalidReason
		}
		log.Warn("The CreateAssessment call failed", map[string]interface{}{"invalidReason": invalidReason})
		return rejected(ReasonInvalidToken), resultInvalidToken
	}

	if props.Action != action {
		log.Warn("reCAPTCHA action mismatch", map[string]interface{}{"action": props.Action})
		return rejected(ReasonActionMismatch), resultActionMismatch
	}

	var score float64
	if assessment.RiskAnalysis != nil {
		score = assessment.RiskAnalysis.Score
	}
	if score < MinScore {
		log.Warn("Low reCAPTCHA score", map[string]interface{}{"score": score})
		return rejected(ReasonLowScore), resultLowScore
	}

	log.Debug("reCAPTCHA assessment passed", map[string]interface{}{"score": score})
	return accepted(), resultValid
}

func (c *Client) logTransportError(log logger.Logger, err error) {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		log.Error("HTTP error calling reCAPTCHA REST API", map[string]interface{}{
			"status": apiErr.Code,
			"body":   apiErr.Body,
		})
		return
	}
	log.WithError(err).Error("Unexpected error during reCAPTCHA verification", nil)
}
