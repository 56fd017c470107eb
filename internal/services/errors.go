package services

// ValidationError reports a request the relay refuses to forward.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// ConfigError reports a missing or unusable server-side credential. It is
// distinct from UpstreamError so a misconfigured relay is never mistaken for
// an upstream outage.
type ConfigError struct{ Message string }

func (e *ConfigError) Error() string { return e.Message }

// UpstreamError carries a non-success reply from the generative-language
// API. StatusCode and Body are forwarded to the client verbatim.
type UpstreamError struct {
	StatusCode int
	Message    string
	Body       []byte
}

func (e *UpstreamError) Error() string { return e.Message }
