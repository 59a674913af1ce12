// Package relay runs one form submission through verification, validation and notification.
package relay

import (
	"context"
	"encoding/base64"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"

	"form-relay/internal/common/errors"
	"form-relay/internal/common/logger"
	"form-relay/internal/common/metrics"
	"form-relay/internal/common/observability"
	"form-relay/internal/common/validation"
	"form-relay/internal/form"
	"form-relay/internal/notify"
	"form-relay/internal/verification"

	"github.com/aws/aws-lambda-go/events"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const okBody = `{"ok":true}`

type Verifier interface {
	Verify(ctx context.Context, token, action string) (verification.Outcome, error)
}

type Sender interface {
	Send(ctx context.Context, formName, topic string, msg form.Notification) error
}

// Options are the per-form dependencies of a Handler.
type Options struct {
	Schema        *form.Schema
	Topic         string
	Verifier      Verifier
	Notifier      Sender
	CORS          CORS
	Logger        logger.Logger
	Observability *observability.Observability
}

// Handler is stateless apart from its read-only configuration; one instance serves all invocations.
type Handler struct {
	schema   *form.Schema
	envelope validation.JSONSchema
	topic    string
	verifier Verifier
	notifier Sender
	cors     CORS
	logger   logger.Logger
	errors   *errors.ErrorHandler
	obs      *observability.Observability
}

func NewHandler(opts Options) (*Handler, error) {
	if opts.Schema == nil {
		return nil, fmt.Errorf("form schema is required")
	}
	if opts.Verifier == nil {
		return nil, fmt.Errorf("verifier is required")
	}
	if opts.Notifier == nil {
		return nil, fmt.Errorf("notifier is required")
	}
	if opts.CORS.AllowOrigin == "" {
		return nil, fmt.Errorf("cors allow origin is required")
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNoOpLogger()
	}
	if opts.Observability == nil {
		opts.Observability = observability.Noop()
	}

	log := opts.Logger.WithFields(map[string]interface{}{"form": opts.Schema.Name})
	return &Handler{
		schema:   opts.Schema,
		envelope: opts.Schema.Envelope(),
		topic:    opts.Topic,
		verifier: opts.Verifier,
		notifier: opts.Notifier,
		cors:     opts.CORS,
		logger:   log,
		errors:   errors.NewErrorHandler(log),
		obs:      opts.Observability,
	}, nil
}

// Form returns the name of the form this handler serves.
func (h *Handler) Form() string {
	return h.schema.Name
}

// CORSHeaders returns the header set every response of this form carries.
func (h *Handler) CORSHeaders() map[string]string {
	return h.cors.Headers()
}

// Handle processes one event. Every expected failure is returned as a response, never as an error.
func (h *Handler) Handle(ctx context.Context, ev Event) (events.APIGatewayProxyResponse, error) {
	start := time.Now()
	ctx, span := h.obs.StartSpan(ctx, "relay.handle", attribute.String("form", h.schema.Name))
	defer span.End()

	if ev.IsPreflight() {
		h.record(ctx, metrics.OutcomePreflight, start)
		return h.respond(http.StatusNoContent, ""), nil
	}

	submissionID := ev.RequestContext.RequestID
	if submissionID == "" {
		submissionID = uuid.New().String()
	}
	fields := map[string]interface{}{"submissionId": submissionID, "method": ev.Method()}

	if err := h.process(ctx, ev, h.logger.WithFields(fields)); err != nil {
		status, body := h.errors.Handle(err, fields)
		outcome := metrics.OutcomeRejected
		if status >= http.StatusInternalServerError {
			outcome = metrics.OutcomeServerError
			span.SetStatus(codes.Error, err.Error())
		}
		h.record(ctx, outcome, start)
		return h.respond(status, body), nil
	}

	h.record(ctx, metrics.OutcomeAccepted, start)
	return h.respond(http.StatusOK, okBody), nil
}

func (h *Handler) process(ctx context.Context, ev Event, log logger.Logger) error {
	body, stdErr := h.parseBody(ev)
	if stdErr != nil {
		return stdErr
	}

	token, _ := body[form.TokenField].(string)
	if token == "" {
		return errors.NewMissingTokenError()
	}

	if stdErr := h.verify(ctx, token); stdErr != nil {
		return stdErr
	}

	submission, stdErr := h.schema.Validate(body)
	if stdErr != nil {
		return stdErr
	}

	msg, err := h.schema.Render(submission)
	if err != nil {
		return errors.NewInternalError(err)
	}

	if err := h.send(ctx, msg); err != nil {
		return err
	}

	log.Info("Submission relayed", nil)
	return nil
}

func (h *Handler) parseBody(ev Event) (map[string]interface{}, *errors.StandardError) {
	raw := ev.Body
	if ev.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(raw)
		if err != nil {
			return nil, errors.NewInvalidJSONError(fmt.Sprintf("base64 body: %v", err))
		}
		raw = string(decoded)
	}
	if raw == "" {
		raw = "{}"
	}

	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, errors.NewInvalidJSONError(err.Error())
	}
	if doc == nil {
		doc = map[string]interface{}{}
	}
	body, ok := doc.(map[string]interface{})
	if !ok {
		return nil, errors.NewInvalidJSONError("body is not a JSON object")
	}

	result, err := validation.ValidateDocument(body, h.envelope)
	if err != nil {
		return nil, errors.NewInvalidJSONError(err.Error())
	}
	if !result.Valid {
		return nil, errors.NewInvalidJSONError(result.Summary())
	}
	return body, nil
}

func (h *Handler) verify(ctx context.Context, token string) *errors.StandardError {
	ctx, span := h.obs.StartSpan(ctx, "verification.assess", attribute.String("action", h.schema.Action))
	defer span.End()

	outcome, err := h.verifier.Verify(ctx, token, h.schema.Action)
	if err != nil {
		return errors.NewInternalError(err)
	}
	if outcome.Valid {
		return nil
	}

	if outcome.Reason == verification.ReasonConfiguration {
		stdErr := errors.NewConfigurationError("reCAPTCHA credentials are incomplete")
		stdErr.Message = outcome.Reason
		return stdErr
	}
	return errors.NewVerificationFailedError(outcome.Reason)
}

func (h *Handler) send(ctx context.Context, msg form.Notification) error {
	ctx, span := h.obs.StartSpan(ctx, "notify.publish", attribute.String("topic", h.topic))
	defer span.End()

	err := h.notifier.Send(ctx, h.schema.Name, h.topic, msg)
	switch {
	case err == nil:
		return nil
	case stderrors.Is(err, notify.ErrTopicNotConfigured):
		return errors.NewConfigurationError(fmt.Sprintf("no destination topic configured for form %s", h.schema.Name))
	default:
		span.RecordError(err)
		return errors.NewNotificationSendFailedError(h.topic, err)
	}
}

func (h *Handler) respond(status int, body string) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: status,
		Headers:    h.CORSHeaders(),
		Body:       body,
	}
}

func (h *Handler) record(ctx context.Context, outcome string, start time.Time) {
	metrics.SubmissionsTotal.WithLabelValues(h.schema.Name, outcome).Inc()
	h.obs.RecordRequest(ctx, h.schema.Name, outcome, time.Since(start))
}
