package gmaps

import "net/http"

const apiKeyHeader = "X-Goog-Api-Key"

// apiKeyTransport authenticates Places API (New) calls with an API key header.
type apiKeyTransport struct {
	key  string
	base http.RoundTripper
}

func (t *apiKeyTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	clone := req.Clone(req.Context())
	clone.Header.Set(apiKeyHeader, t.key)
	return t.base.RoundTrip(clone)
}

func withAPIKey(client *http.Client, key string) *http.Client {
	base := client.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	return &http.Client{
		Timeout:   client.Timeout,
		Transport: &apiKeyTransport{key: key, base: base},
	}
}
