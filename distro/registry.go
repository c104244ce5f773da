package distro

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/joshyorko/wrangler-opencode/cloud"
	"github.com/tidwall/gjson"
)

// Checker answers whether a package version already exists.
type Checker interface {
	Published(name, version string) (bool, error)
}

type Registry struct {
	client cloud.Client
}

func NewRegistry(endpoint string) (*Registry, error) {
	client, err := cloud.NewClient(endpoint)
	if err != nil {
		return nil, err
	}
	return &Registry{client: client.WithTimeout(30 * time.Second)}, nil
}

func (it *Registry) Endpoint() string {
	return it.client.Endpoint()
}

func (it *Registry) fetch(name, tag string) *cloud.Response {
	request := it.client.NewRequest(fmt.Sprintf("/%s/%s", url.PathEscape(name), url.PathEscape(tag)))
	request.Headers["Accept"] = "application/json"
	return it.client.Get(request)
}

func (it *Registry) Published(name, version string) (bool, error) {
	response := it.fetch(name, version)
	if !response.Answered() {
		return false, fmt.Errorf("registry %s: %w", it.Endpoint(), response.Err)
	}
	switch response.Status {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	}
	return false, fmt.Errorf("registry %s answered %d for %s@%s", it.Endpoint(), response.Status, name, version)
}

// Latest is the version behind the "latest" dist-tag.
func (it *Registry) Latest(name string) (string, error) {
	response := it.fetch(name, "latest")
	if !response.Answered() {
		return "", fmt.Errorf("registry %s: %w", it.Endpoint(), response.Err)
	}
	if response.Status != http.StatusOK {
		return "", fmt.Errorf("registry %s answered %d for %s", it.Endpoint(), response.Status, name)
	}
	version := gjson.GetBytes(response.Body, "version").String()
	if len(version) == 0 {
		return "", fmt.Errorf("registry %s gave no version for %s", it.Endpoint(), name)
	}
	return version, nil
}
