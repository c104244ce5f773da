package cloud_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/joshyorko/wrangler-opencode/cloud"
	"github.com/joshyorko/wrangler-opencode/hamlet"
)

func TestOnlyHttpsOrLoopbackEndpointsAreAccepted(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	endpoint, err := cloud.EnsureHttps(" https://registry.npmjs.org/ ")
	must.Nil(err)
	must.Equal("https://registry.npmjs.org", endpoint)

	_, err = cloud.EnsureHttps("http://registry.npmjs.org")
	wont.Nil(err)

	endpoint, err = cloud.EnsureHttps("http://127.0.0.1:4873")
	must.Nil(err)
	must.Equal("http://127.0.0.1:4873", endpoint)
}

func TestGetCarriesHeadersAndBody(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if request.Header.Get("Accept") != "application/json" || len(request.Header.Get("User-Agent")) == 0 {
			writer.WriteHeader(http.StatusBadRequest)
			return
		}
		writer.Write([]byte(`{"ok":true}`))
	}))
	defer server.Close()

	client, err := cloud.NewClient(server.URL)
	must.Nil(err)
	request := client.NewRequest("/probe")
	request.Headers["Accept"] = "application/json"
	response := client.WithTimeout(5 * time.Second).Get(request)
	must.Nil(response.Err)
	must.Equal(200, response.Status)
	must.True(response.Answered())
	must.Equal(`{"ok":true}`, string(response.Body))
}

func TestErrorStatusIsStillAnAnswer(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	client, err := cloud.NewClient(server.URL)
	must.Nil(err)
	response := client.Get(client.NewRequest("/missing"))
	must.True(response.Answered())
	must.Equal(http.StatusNotFound, response.Status)
}

func TestTransportFailureIsReported(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	client, err := cloud.NewClient("http://127.0.0.1:1")
	must.Nil(err)
	response := client.Get(client.NewRequest("/"))
	wont.Nil(response.Err)
	wont.True(response.Answered())
	must.Equal(cloud.StatusUnreachable, response.Status)
}
