// Package ssllabs wraps the SSL Labs assessment API. Every operation returns a
// result model; failures are reported through the model's error list.
package ssllabs

import (
	"context"

	"github.com/Adda-Baaj/ssll-wrapper/pkg/httpclient"
)

// DefaultAPIURL is the public SSL Labs v2 endpoint.
const DefaultAPIURL = "https://api.ssllabs.com/api/v2/"

// PreflightFailedMessage is recorded when a host fails local validation.
const PreflightFailedMessage = "Host does not pass preflight validation. No Api call has been made."

// Service exposes the remote operations as typed calls.
type Service struct {
	apiURL    string
	provider  ApiProvider
	requests  RequestModelFactory
	populator ResponsePopulator
	validator UrlValidator
	log       Logger
}

// Option customizes a Service.
type Option func(*Service)

// WithProvider replaces the transport-facing provider.
func WithProvider(p ApiProvider) Option {
	return func(s *Service) {
		if p != nil {
			s.provider = p
		}
	}
}

// WithHTTPClient builds the default provider on top of client.
func WithHTTPClient(client httpclient.Client) Option {
	return func(s *Service) {
		if client != nil {
			s.provider = NewHTTPProvider(client)
		}
	}
}

// WithLogger sets the logger used for request and failure tracing.
func WithLogger(log Logger) Option {
	return func(s *Service) {
		if log != nil {
			s.log = log
		}
	}
}

// NewService creates a Service for apiURL, which is normalized once here.
// A blank apiURL selects DefaultAPIURL.
func NewService(apiURL string, opts ...Option) *Service {
	s := &Service{log: noopLogger{}}
	s.apiURL = s.validator.Format(apiURL)
	if s.apiURL == "" {
		s.apiURL = DefaultAPIURL
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.provider == nil {
		s.provider = NewHTTPProvider(nil)
	}
	return s
}

// APIURL returns the normalized base URL.
func (s *Service) APIURL() string { return s.apiURL }

// Info reports engine and criteria versions. Online is true only when the
// engine version was returned.
func (s *Service) Info(ctx context.Context) *Info {
	info := &Info{}
	req := s.requests.Info(s.apiURL)

	ok := s.call(ctx, req, info, func(raw *RawResponse) error {
		return s.populator.PopulateInfo(raw, info)
	})
	if ok && info.EngineVersion != nil {
		info.Online = true
	}

	info.reconcile()
	return info
}

// Analyze starts or polls an assessment of host. Zero option fields take the
// values of DefaultAnalyzeOptions.
func (s *Service) Analyze(ctx context.Context, host string, opts AnalyzeOptions) *Analyze {
	analyze := &Analyze{}
	if !s.preflight(host, analyze) {
		return analyze
	}

	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		analyze.addError(err.Error())
		return analyze
	}

	req := s.requests.Analyze(s.apiURL, host, opts)
	s.call(ctx, req, analyze, func(raw *RawResponse) error {
		return s.populator.PopulateAnalyze(raw, analyze)
	})

	analyze.reconcile()
	return analyze
}

// GetEndpointData retrieves the detailed report for endpoint s of host.
func (s *Service) GetEndpointData(ctx context.Context, host, endpoint string, opts EndpointOptions) *EndpointData {
	data := &EndpointData{}
	if !s.preflight(host, data) {
		return data
	}

	opts = opts.withDefaults()
	if err := opts.validate(); err != nil {
		data.addError(err.Error())
		return data
	}

	req := s.requests.EndpointData(s.apiURL, host, endpoint, opts)
	s.call(ctx, req, data, func(raw *RawResponse) error {
		return s.populator.PopulateEndpoint(raw, data)
	})

	data.reconcile()
	return data
}

// GetStatusCodes retrieves the status detail code table.
func (s *Service) GetStatusCodes(ctx context.Context) *StatusCodes {
	codes := &StatusCodes{}
	req := s.requests.StatusCodes(s.apiURL)

	s.call(ctx, req, codes, func(raw *RawResponse) error {
		return s.populator.PopulateStatusCodes(raw, codes)
	})

	codes.reconcile()
	return codes
}

// preflight rejects malformed hosts before anything is sent.
func (s *Service) preflight(host string, target ResultModel) bool {
	if s.validator.IsValid(host) {
		return true
	}
	s.log.WarnObj("host failed preflight validation", "preflight", map[string]any{
		"host": host,
	})
	target.Base().addError(PreflightFailedMessage)
	return false
}

// call is the single failure boundary of an operation: transport and decode
// errors are recorded on target instead of being returned.
func (s *Service) call(ctx context.Context, req RequestModel, target ResultModel, populate func(*RawResponse) error) bool {
	s.log.DebugObj("ssllabs request", "request", map[string]any{
		"path": req.Path,
		"url":  req.URL(),
	})

	raw, err := s.provider.MakeGetRequest(ctx, req)
	if err == nil {
		err = populate(raw)
	}
	if err != nil {
		s.log.WarnObj("ssllabs request failed", "request_error", map[string]any{
			"path":  req.Path,
			"error": err.Error(),
		})
		target.Base().addError(err.Error())
		return false
	}
	return true
}
