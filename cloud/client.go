// Package cloud is a thin JSON-over-HTTP client for registry lookups.
package cloud

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/joshyorko/wrangler-opencode/common"
)

// Pseudo statuses for requests that never got an HTTP answer.
const (
	StatusMalformed   = 9001
	StatusUnreachable = 9002
)

type Request struct {
	Url     string
	Headers map[string]string
}

type Response struct {
	Status  int
	Err     error
	Body    []byte
	Elapsed common.Duration
}

func (it *Response) Answered() bool {
	return it.Err == nil && it.Status < StatusMalformed
}

type Client interface {
	Endpoint() string
	NewRequest(path string) *Request
	Get(request *Request) *Response
	WithTimeout(time.Duration) Client
}

type internalClient struct {
	endpoint string
	client   *http.Client
}

// EnsureHttps normalizes endpoint; plain http is only allowed on loopback.
func EnsureHttps(endpoint string) (string, error) {
	nice := strings.TrimRight(strings.TrimSpace(endpoint), "/")
	parsed, err := url.Parse(nice)
	if err != nil {
		return "", err
	}
	if parsed.Scheme == "https" || parsed.Hostname() == "127.0.0.1" {
		return nice, nil
	}
	return "", fmt.Errorf("endpoint %q must start with https://", nice)
}

func NewClient(endpoint string) (Client, error) {
	https, err := EnsureHttps(endpoint)
	if err != nil {
		return nil, err
	}
	return &internalClient{
		endpoint: https,
		client:   &http.Client{Transport: http.DefaultTransport},
	}, nil
}

func (it *internalClient) Endpoint() string {
	return it.endpoint
}

func (it *internalClient) WithTimeout(timeout time.Duration) Client {
	return &internalClient{
		endpoint: it.endpoint,
		client:   &http.Client{Transport: it.client.Transport, Timeout: timeout},
	}
}

func (it *internalClient) NewRequest(path string) *Request {
	return &Request{
		Url:     path,
		Headers: make(map[string]string),
	}
}

func (it *internalClient) Get(request *Request) *Response {
	target := it.endpoint + request.Url
	stopwatch := common.Stopwatch("GET %s", target)
	response := &Response{}
	defer func() {
		response.Elapsed = stopwatch.Elapsed()
		common.Debug("GET %s => %d in %s", target, response.Status, response.Elapsed)
	}()

	outgoing, err := http.NewRequest(http.MethodGet, target, nil)
	if err != nil {
		response.Status, response.Err = StatusMalformed, err
		return response
	}
	outgoing.Header.Set("User-Agent", common.UserAgent())
	for name, value := range request.Headers {
		outgoing.Header.Set(name, value)
	}
	incoming, err := it.client.Do(outgoing)
	if err != nil {
		response.Status, response.Err = StatusUnreachable, err
		return response
	}
	defer incoming.Body.Close()

	response.Status = incoming.StatusCode
	response.Body, response.Err = io.ReadAll(incoming.Body)
	return response
}
