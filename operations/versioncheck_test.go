package operations

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/joshyorko/wrangler-opencode/hamlet"
	"github.com/joshyorko/wrangler-opencode/supervisor"
)

func TestNewerVersionsAreDetected(t *testing.T) {
	must, wont := hamlet.Specifications(t)

	must.True(newerThan("1.3.0", "1.2.9"))
	wont.True(newerThan("1.3.0", "1.3.0"))
	wont.True(newerThan("1.3.0", ""))
	wont.True(newerThan("garbage", "1.0.0"))
}

func TestLatestVersionIsCached(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		calls.Add(1)
		writer.Write([]byte(`{"version": "2.0.0"}`))
	}))
	defer server.Close()

	filename := filepath.Join(t.TempDir(), "cache", "latest.json")
	must.Nil(refreshVersionInfo(filename, server.URL, "wrangler-opencode"))
	must.Nil(refreshVersionInfo(filename, server.URL, "wrangler-opencode"))
	must.Equal(int32(1), calls.Load())

	latest, err := loadVersionInfo(filename)
	must.Nil(err)
	must.Equal("2.0.0", latest.Version)
	must.Equal("wrangler-opencode", latest.Package)
}

func TestInstalledVersionComesFromPackageManifest(t *testing.T) {
	must, _ := hamlet.Specifications(t)

	root := t.TempDir()
	directory := filepath.Join(root, "node_modules", "wrangler-opencode")
	must.Nil(os.MkdirAll(directory, 0o750))
	must.Nil(os.WriteFile(filepath.Join(directory, "package.json"), []byte(`{"version": "1.2.3"}`), 0o600))

	options := &supervisor.Options{WorkingDirectory: root, WrapperPackage: "wrangler-opencode"}
	must.Equal("1.2.3", installedVersion(options))

	options.WorkingDirectory = t.TempDir()
	must.Equal("", installedVersion(options))
}
