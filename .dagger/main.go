// CI functions for wrangler-opencode
//
// Runs the Go test suite and the distribution pipeline inside containers, so
// a release candidate can be checked the same way on every machine.

package main

import (
	"context"
	"dagger/wrangler-opencode-ci/internal/dagger"
)

type WranglerOpencodeCi struct{}

func goContainer(source *dagger.Directory) *dagger.Container {
	return dag.Container().
		From("golang:1.24").
		WithMountedDirectory("/src", source).
		WithWorkdir("/src").
		WithMountedCache("/go/pkg/mod", dag.CacheVolume("go-mod-cache")).
		WithMountedCache("/root/.cache/go-build", dag.CacheVolume("go-build-cache"))
}

// Run the Go test suite
func (m *WranglerOpencodeCi) Test(ctx context.Context, source *dagger.Directory) (string, error) {
	return goContainer(source).
		WithExec([]string{"go", "vet", "./..."}).
		WithExec([]string{"go", "test", "./..."}).
		Stdout(ctx)
}

// Build both command line tools for linux
func (m *WranglerOpencodeCi) BuildTools(ctx context.Context, source *dagger.Directory, version string) *dagger.Directory {
	ldflags := "-s -w -X github.com/joshyorko/wrangler-opencode/common.Version=" + version
	return goContainer(source).
		WithEnvVariable("CGO_ENABLED", "0").
		WithExec([]string{"go", "build", "-trimpath", "-ldflags", ldflags, "-o", "/out/wrangler", "./cmd/wrangler"}).
		WithExec([]string{"go", "build", "-trimpath", "-ldflags", ldflags, "-o", "/out/distctl", "./cmd/distctl"}).
		Directory("/out")
}

// Show the release plan without building or publishing anything
func (m *WranglerOpencodeCi) DryRelease(ctx context.Context, source *dagger.Directory, bump string) (string, error) {
	return goContainer(source).
		WithExec([]string{"go", "run", "./cmd/distctl", "publish", bump, "--dry-run", "--offline"}).
		Stdout(ctx)
}
