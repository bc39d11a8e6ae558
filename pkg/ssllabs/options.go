package ssllabs

import "fmt"

// Publish controls whether the assessment result is listed on the public boards.
type Publish string

// ClearCache controls whether cached assessment results are discarded first.
type ClearCache string

// FromCache controls whether a cached assessment may be returned.
type FromCache string

// All controls how much endpoint detail the analyze call returns.
type All string

const (
	PublishOn  Publish = "on"
	PublishOff Publish = "off"

	ClearCacheOn     ClearCache = "on"
	ClearCacheOff    ClearCache = "off"
	ClearCacheIgnore ClearCache = "ignore"

	FromCacheOn     FromCache = "on"
	FromCacheOff    FromCache = "off"
	FromCacheIgnore FromCache = "ignore"

	AllOn   All = "on"
	AllDone All = "done"
)

// Wire literals accepted by the remote API, per option set.
var (
	publishTokens = map[Publish]string{
		PublishOn:  "on",
		PublishOff: "off",
	}
	clearCacheTokens = map[ClearCache]string{
		ClearCacheOn:     "on",
		ClearCacheOff:    "off",
		ClearCacheIgnore: "ignore",
	}
	fromCacheTokens = map[FromCache]string{
		FromCacheOn:     "on",
		FromCacheOff:    "off",
		FromCacheIgnore: "ignore",
	}
	allTokens = map[All]string{
		AllOn:   "on",
		AllDone: "done",
	}
)

// Valid reports whether p is a known publish literal.
func (p Publish) Valid() bool {
	_, ok := publishTokens[p]
	return ok
}

// Valid reports whether c is a known clearCache literal.
func (c ClearCache) Valid() bool {
	_, ok := clearCacheTokens[c]
	return ok
}

// Valid reports whether f is a known fromCache literal.
func (f FromCache) Valid() bool {
	_, ok := fromCacheTokens[f]
	return ok
}

// Valid reports whether a is a known all literal.
func (a All) Valid() bool {
	_, ok := allTokens[a]
	return ok
}

func (p Publish) String() string    { return publishTokens[p] }
func (c ClearCache) String() string { return clearCacheTokens[c] }
func (f FromCache) String() string  { return fromCacheTokens[f] }
func (a All) String() string        { return allTokens[a] }

// AnalyzeOptions carries the optional analyze parameters. Zero fields fall back
// to the values of DefaultAnalyzeOptions.
type AnalyzeOptions struct {
	Publish    Publish
	ClearCache ClearCache
	FromCache  FromCache
	All        All
}

// DefaultAnalyzeOptions starts a fresh, unpublished assessment with full endpoint detail.
func DefaultAnalyzeOptions() AnalyzeOptions {
	return AnalyzeOptions{
		Publish:    PublishOff,
		ClearCache: ClearCacheOn,
		FromCache:  FromCacheOff,
		All:        AllOn,
	}
}

func (o AnalyzeOptions) withDefaults() AnalyzeOptions {
	def := DefaultAnalyzeOptions()
	if o.Publish == "" {
		o.Publish = def.Publish
	}
	if o.ClearCache == "" {
		o.ClearCache = def.ClearCache
	}
	if o.FromCache == "" {
		o.FromCache = def.FromCache
	}
	if o.All == "" {
		o.All = def.All
	}
	return o
}

func (o AnalyzeOptions) validate() error {
	switch {
	case !o.Publish.Valid():
		return &OptionError{Name: "publish", Value: string(o.Publish)}
	case !o.ClearCache.Valid():
		return &OptionError{Name: "clearCache", Value: string(o.ClearCache)}
	case !o.FromCache.Valid():
		return &OptionError{Name: "fromCache", Value: string(o.FromCache)}
	case !o.All.Valid():
		return &OptionError{Name: "all", Value: string(o.All)}
	}
	return nil
}

// EndpointOptions carries the optional getEndpointData parameters.
type EndpointOptions struct {
	FromCache FromCache
}

// DefaultEndpointOptions never serves endpoint data from cache.
func DefaultEndpointOptions() EndpointOptions {
	return EndpointOptions{FromCache: FromCacheOff}
}

func (o EndpointOptions) withDefaults() EndpointOptions {
	if o.FromCache == "" {
		o.FromCache = DefaultEndpointOptions().FromCache
	}
	return o
}

func (o EndpointOptions) validate() error {
	if !o.FromCache.Valid() {
		return &OptionError{Name: "fromCache", Value: string(o.FromCache)}
	}
	return nil
}

// OptionError reports an option value outside its closed set.
type OptionError struct {
	Name  string
	Value string
}

func (e *OptionError) Error() string {
	return fmt.Sprintf("invalid %s option %q", e.Name, e.Value)
}
