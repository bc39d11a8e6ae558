package ssllabs

// Error is a single failure recorded on a result, local or remote.
type Error struct {
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

// Result is the shape shared by every result model. Errors is append-only.
type Result struct {
	HasErrorOccurred bool    `json:"hasErrorOccurred"`
	Errors           []Error `json:"errors,omitempty"`
}

// Base returns the shared result fields.
func (r *Result) Base() *Result { return r }

// addError records a failure and raises the error flag.
func (r *Result) addError(msg string) {
	r.HasErrorOccurred = true
	r.Errors = append(r.Errors, Error{Message: msg})
}

// reconcile raises HasErrorOccurred when errors were appended without it.
func (r *Result) reconcile() {
	if len(r.Errors) != 0 && !r.HasErrorOccurred {
		r.HasErrorOccurred = true
	}
}

// ResultModel is implemented by every model embedding Result.
type ResultModel interface {
	Base() *Result
}

// Info is the response of the info call.
type Info struct {
	Result
	EngineVersion        *string  `json:"engineVersion"`
	CriteriaVersion      *string  `json:"criteriaVersion"`
	ClientMaxAssessments int      `json:"clientMaxAssessments"`
	MaxAssessments       int      `json:"maxAssessments"`
	CurrentAssessments   int      `json:"currentAssessments"`
	NewAssessmentCoolOff int64    `json:"newAssessmentCoolOff"`
	Notice               string   `json:"notice"`
	Messages             []string `json:"messages,omitempty"`
	Online               bool     `json:"online"`
}

// Assessment states reported in Analyze.Status.
const (
	StatusDNS        = "DNS"
	StatusErrored    = "ERROR"
	StatusInProgress = "IN_PROGRESS"
	StatusReady      = "READY"
)

// Analyze is the host-level assessment snapshot returned by the analyze call.
type Analyze struct {
	Result
	Host            string     `json:"host"`
	Port            int        `json:"port"`
	Protocol        string     `json:"protocol"`
	IsPublic        bool       `json:"isPublic"`
	Status          string     `json:"status"`
	StatusMessage   string     `json:"statusMessage"`
	StartTime       int64      `json:"startTime"`
	TestTime        int64      `json:"testTime"`
	EngineVersion   string     `json:"engineVersion"`
	CriteriaVersion string     `json:"criteriaVersion"`
	CacheExpiryTime int64      `json:"cacheExpiryTime"`
	CertHostnames   []string   `json:"certHostnames,omitempty"`
	Endpoints       []Endpoint `json:"endpoints,omitempty"`
}

// Endpoint is a single server assessment as listed in Analyze.Endpoints.
type Endpoint struct {
	IPAddress            string           `json:"ipAddress"`
	ServerName           string           `json:"serverName"`
	StatusMessage        string           `json:"statusMessage"`
	StatusDetails        string           `json:"statusDetails"`
	StatusDetailsMessage string           `json:"statusDetailsMessage"`
	Grade                string           `json:"grade"`
	GradeTrustIgnored    string           `json:"gradeTrustIgnored"`
	HasWarnings          bool             `json:"hasWarnings"`
	IsExceptional        bool             `json:"isExceptional"`
	Progress             int              `json:"progress"`
	Duration             int64            `json:"duration"`
	ETA                  int              `json:"eta"`
	Delegation           int              `json:"delegation"`
	Details              *EndpointDetails `json:"details,omitempty"`
}

// EndpointData is the result of getEndpointData.
type EndpointData struct {
	Result
	Endpoint
}

// EndpointDetails holds the commonly used parts of the detailed endpoint report.
type EndpointDetails struct {
	HostStartTime   int64         `json:"hostStartTime"`
	Key             *Key          `json:"key,omitempty"`
	Cert            *Cert         `json:"cert,omitempty"`
	Protocols       []Protocol    `json:"protocols,omitempty"`
	ServerSignature string        `json:"serverSignature"`
	VulnBeast       bool          `json:"vulnBeast"`
	RenegSupport    int           `json:"renegSupport"`
	Heartbleed      bool          `json:"heartbleed"`
	Heartbeat       bool          `json:"heartbeat"`
	OpenSslCcs      int           `json:"openSslCcs"`
	Poodle          bool          `json:"poodle"`
	PoodleTLS       int           `json:"poodleTls"`
	FallbackScsv    bool          `json:"fallbackScsv"`
	Freak           bool          `json:"freak"`
	Logjam          bool          `json:"logjam"`
	DrownVulnerable bool          `json:"drownVulnerable"`
	ForwardSecrecy  int           `json:"forwardSecrecy"`
	SupportsRc4     bool          `json:"supportsRc4"`
	Rc4Only         bool          `json:"rc4Only"`
	SniRequired     bool          `json:"sniRequired"`
	HSTSPolicy      *HSTSPolicy   `json:"hstsPolicy,omitempty"`
	OcspStapling    bool          `json:"ocspStapling"`
	Suites          *ProtocolList `json:"suites,omitempty"`
}

type Key struct {
	Size       int    `json:"size"`
	Strength   int    `json:"strength"`
	Alg        string `json:"alg"`
	DebianFlaw bool   `json:"debianFlaw"`
}

type Cert struct {
	Subject          string   `json:"subject"`
	CommonNames      []string `json:"commonNames,omitempty"`
	AltNames         []string `json:"altNames,omitempty"`
	NotBefore        int64    `json:"notBefore"`
	NotAfter         int64    `json:"notAfter"`
	IssuerSubject    string   `json:"issuerSubject"`
	IssuerLabel      string   `json:"issuerLabel"`
	SigAlg           string   `json:"sigAlg"`
	RevocationStatus int      `json:"revocationStatus"`
	Issues           int      `json:"issues"`
}

type Protocol struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Version string `json:"version"`
}

type ProtocolList struct {
	List       []Suite `json:"list,omitempty"`
	Preference bool    `json:"preference"`
}

type Suite struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	CipherStrength int    `json:"cipherStrength"`
}

type HSTSPolicy struct {
	LongMaxAge        int64  `json:"LONG_MAX_AGE"`
	Header            string `json:"header"`
	Status            string `json:"status"`
	MaxAge            int64  `json:"maxAge"`
	IncludeSubDomains bool   `json:"includeSubDomains"`
	Preload           bool   `json:"preload"`
}

// StatusCodes maps status detail codes to human readable messages.
type StatusCodes struct {
	Result
	StatusDetails map[string]string `json:"statusDetails"`
}
