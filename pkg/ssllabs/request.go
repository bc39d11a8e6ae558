package ssllabs

import (
	"net/url"
	"strings"
)

// Remote operation paths.
const (
	PathInfo            = "info"
	PathAnalyze         = "analyze"
	PathGetEndpointData = "getEndpointData"
	PathGetStatusCodes  = "getStatusCodes"
)

// QueryParam is one key/value pair of a request query string.
type QueryParam struct {
	Key   string
	Value string
}

// RequestModel describes one outbound call independently of the transport.
type RequestModel struct {
	BaseURL string
	Path    string
	params  []QueryParam
}

// Params returns a copy of the ordered query parameters.
func (r RequestModel) Params() []QueryParam {
	out := make([]QueryParam, len(r.params))
	copy(out, r.params)
	return out
}

// Param returns the value of the first parameter named key.
func (r RequestModel) Param(key string) (string, bool) {
	for _, p := range r.params {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// URL renders the full request URL, keeping parameters in declaration order.
func (r RequestModel) URL() string {
	var b strings.Builder
	b.WriteString(r.BaseURL)
	b.WriteString(r.Path)
	for i, p := range r.params {
		if i == 0 {
			b.WriteByte('?')
		} else {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.Key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.Value))
	}
	return b.String()
}

// RequestModelFactory builds request descriptors. It does not validate input.
type RequestModelFactory struct{}

func newRequest(apiURL, path string, params ...QueryParam) RequestModel {
	return RequestModel{BaseURL: apiURL, Path: path, params: params}
}

// Info builds the info request.
func (RequestModelFactory) Info(apiURL string) RequestModel {
	return newRequest(apiURL, PathInfo)
}

// Analyze builds the analyze request.
func (RequestModelFactory) Analyze(apiURL, host string, opts AnalyzeOptions) RequestModel {
	return newRequest(apiURL, PathAnalyze,
		QueryParam{Key: "host", Value: host},
		QueryParam{Key: "publish", Value: opts.Publish.String()},
		QueryParam{Key: "clearCache", Value: opts.ClearCache.String()},
		QueryParam{Key: "fromCache", Value: opts.FromCache.String()},
		QueryParam{Key: "all", Value: opts.All.String()},
	)
}

// EndpointData builds the getEndpointData request; s is passed through unchanged.
func (RequestModelFactory) EndpointData(apiURL, host, s string, opts EndpointOptions) RequestModel {
	return newRequest(apiURL, PathGetEndpointData,
		QueryParam{Key: "host", Value: host},
		QueryParam{Key: "s", Value: s},
		QueryParam{Key: "fromCache", Value: opts.FromCache.String()},
	)
}

// StatusCodes builds the getStatusCodes request.
func (RequestModelFactory) StatusCodes(apiURL string) RequestModel {
	return newRequest(apiURL, PathGetStatusCodes)
}
