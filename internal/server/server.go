// Package server exposes the form handlers over plain HTTP for local runs and container deployments.
package server

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"form-relay/internal/common/errors"
	"form-relay/internal/common/logger"
	"form-relay/internal/relay"

	"github.com/aws/aws-lambda-go/events"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// maxBodyBytes bounds what is read from a request; API Gateway caps payloads at 10 MB.
const maxBodyBytes = 10 << 20

// FormHandler is satisfied by *relay.Handler.
type FormHandler interface {
	Form() string
	CORSHeaders() map[string]string
	Handle(ctx context.Context, ev relay.Event) (events.APIGatewayProxyResponse, error)
}

// Route mounts one form handler at a path.
type Route struct {
	Path    string
	Handler FormHandler
}

func NewRouter(routes []Route, log logger.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"ok"}`)
	})
	r.Handle("/metrics", promhttp.Handler())

	for _, route := range routes {
		r.HandleFunc(route.Path, adapt(route.Handler, log))
	}
	return r
}

// adapt turns an http.Request into the lambda-shaped event and writes the handler's response back.
func adapt(h FormHandler, log logger.Logger) http.HandlerFunc {
	log = log.WithFields(map[string]interface{}{"form": h.Form()})

	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
		if err != nil {
			log.Warn("Failed to read request body", map[string]interface{}{"error": err.Error()})
			writeError(w, h.CORSHeaders(), errors.NewInvalidJSONError(err.Error()))
			return
		}

		headers := make(map[string]string, len(r.Header))
		for k := range r.Header {
			headers[k] = r.Header.Get(k)
		}

		ev := relay.Event{
			HTTPMethod: r.Method,
			Headers:    headers,
			Body:       string(body),
			RequestContext: relay.RequestContext{
				RequestID: middleware.GetReqID(r.Context()),
				HTTP:      relay.HTTPContext{Method: r.Method},
			},
		}

		resp, err := h.Handle(r.Context(), ev)
		if err != nil {
			log.Error("Form handler failed", map[string]interface{}{"error": err.Error()})
			writeError(w, h.CORSHeaders(), errors.NewInternalError(err))
			return
		}

		for k, v := range resp.Headers {
			w.Header().Set(k, v)
		}
		if resp.Body != "" {
			w.Header().Set("Content-Type", "application/json")
		}
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			_, _ = io.WriteString(w, resp.Body)
		}
	}
}

func writeError(w http.ResponseWriter, headers map[string]string, stdErr *errors.StandardError) {
	for k, v := range headers {
		w.Header().Set(k, v)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(stdErr.StatusCode())
	_, _ = io.WriteString(w, errors.Body(stdErr))
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight requests.
func Run(ctx context.Context, addr string, handler http.Handler, shutdownTimeout time.Duration, log logger.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening", map[string]interface{}{"address": addr})
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}
