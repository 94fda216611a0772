// Package opsnotify is a client for the operator notification webhook.
package opsnotify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"
	"net/http"
	"time"
)

type Service struct {
	apiURL     string
	httpClient *http.Client
	logger     zerolog.Logger
	breaker    *gobreaker.CircuitBreaker

	tripAfter      uint32
	breakerTimeout time.Duration
}

func (s *Service) LoggerComponent() string {
	return "OpsNotify.Service"
}

func NewService(apiURL string, opts ...ServiceOption) (*Service, error) {
	if apiURL == "" {
		return nil, fmt.Errorf("api url is empty")
	}

	c := &Service{
		apiURL:         apiURL,
		httpClient:     http.DefaultClient,
		logger:         log.Logger,
		tripAfter:      5,
		breakerTimeout: 30 * time.Second,
	}

	for _, o := range opts {
		o(c)
	}

	c.logger = c.logger.With().Str("component", c.LoggerComponent()).Logger()
	c.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "opsnotify",
		Timeout: c.breakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= c.tripAfter
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			c.logger.Warn().
				Str("breaker", name).
				Stringer("from", from).
				Stringer("to", to).
				Msg("Circuit breaker state changed")
		},
	})

	return c, nil
}

type ServiceOption func(*Service)

func WithLogger(l zerolog.Logger) ServiceOption {
	return func(s *Service) {
		s.logger = l
	}
}

func WithHTTPClient(c *http.Client) ServiceOption {
	return func(s *Service) {
		s.httpClient = c
	}
}

// WithBreaker opens the circuit after tripAfter consecutive failures and
// tries the sink again once timeout has passed
func WithBreaker(tripAfter uint32, timeout time.Duration) ServiceOption {
	return func(s *Service) {
		s.tripAfter = tripAfter
		s.breakerTimeout = timeout
	}
}

// Send delivers the event. It fails fast with gobreaker.ErrOpenState while the sink is considered down.
func (s *Service) Send(ctx context.Context, in *Event) (*SendResponse, error) {
	l := s.logger.With().
		Str("method", "Send").
		Str("event_id", in.ID).
		Str("kind", in.Kind).
		Logger()
	ctx = l.WithContext(ctx)

	res, err := s.breaker.Execute(func() (interface{}, error) {
		out := &SendResponse{}
		if err := s.genericCall(ctx, http.MethodPost, "/api/notifications", in, out); err != nil {
			return nil, err
		}
		return out, nil
	})
	if err != nil {
		return nil, err
	}

	out := res.(*SendResponse)
	l.Debug().Bool("accepted", out.Accepted).Msg("Send success")

	return out, nil
}

type RemoteError struct {
	ResponseBody string
	StatusCode   int
}

func NewRemoteError(responseBody string, statusCode int) *RemoteError {
	return &RemoteError{ResponseBody: responseBody, StatusCode: statusCode}
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("remote error %d: %s", e.StatusCode, e.ResponseBody)
}

func (s *Service) genericCall(ctx context.Context, method, endpoint string, in interface{}, out interface{}) error {
	l := zerolog.Ctx(ctx).With().Str("http_method", method).Str("endpoint", endpoint).Logger()
	ctx = l.WithContext(ctx)

	res, err := s.request(ctx, method, endpoint, in)
	if err != nil {
		l.Error().Err(err).
			Msg("Service request failed")
		return fmt.Errorf("request: %w", err)
	}
	defer func() {
		_ = res.Body.Close()
	}()

	if res.StatusCode >= 400 {
		resBody := readString(res.Body)
		l.Error().
			Int("http_status", res.StatusCode).
			Str("http_body", resBody).
			Msg("Service responded with error")
		return NewRemoteError(resBody, res.StatusCode)
	}

	if err := readJSON(res.Body, out); err != nil {
		return fmt.Errorf("body read: %w", err)
	}

	return nil
}

func (s *Service) request(
	ctx context.Context,
	method string,
	endpoint string,
	bodyParams interface{},
) (*http.Response, error) {
	fullURL := s.apiURL + endpoint
	l := zerolog.Ctx(ctx).With().
		Str("url", fullURL).
		Logger()
	l.Debug().Msg("HTTP request")

	rawJSON, err := json.Marshal(bodyParams)
	if err != nil {
		return nil, fmt.Errorf("json encode: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, fullURL, bytes.NewReader(rawJSON))
	if err != nil {
		return nil, fmt.Errorf("new request: %w", err)
	}

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")

	l.Debug().Str("request_body", string(rawJSON)).Msg("Doing request")

	res, err := s.httpClient.Do(req)
	if err != nil {
		l.Error().Err(err).
			Msg("Call failed")
		return nil, fmt.Errorf("do request: %w", err)
	}

	return res, nil
}
