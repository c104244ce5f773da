package distro

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/fail"
	"github.com/joshyorko/wrangler-opencode/journal"
	"github.com/joshyorko/wrangler-opencode/settings"
	"github.com/joshyorko/wrangler-opencode/shell"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

var ErrAlreadyPublished = errors.New("version already published")

// Publisher runs one release cycle: bump, build, publish, commit.
type Publisher struct {
	Builder           *Builder
	Assembler         *Assembler
	Host              string
	HostDir           string
	HostManifest      string
	HostBuild         string
	AssistantManifest string
	Npm               string
	Git               string
	Targets           []Target
	Registry          Checker
	Runner            Runner
	DryRun            bool
}

// Release is one planned publish.
type Release struct {
	Bump          Bump
	AssistantFrom string
	AssistantTo   string
	HostFrom      string
	HostTo        string
	Packages      []PackageVersion
}

type PackageVersion struct {
	Name      string
	Version   string
	Directory string
}

func NewPublisher(root string, config *settings.Settings) *Publisher {
	builder := NewBuilder(root, config)
	return &Publisher{
		Builder:           builder,
		Assembler:         NewAssembler(builder.Layout),
		Host:              config.Packages.Host,
		HostDir:           config.Distribution.HostDir,
		HostManifest:      config.Distribution.HostManifest,
		HostBuild:         config.Distribution.HostBuild,
		AssistantManifest: config.Distribution.AssistantManifest,
		Npm:               config.Distribution.Npm,
		Git:               config.Distribution.Git,
		Targets:           Select(false),
		Runner:            ShellRunner(),
	}
}

func (it *Publisher) path(name string) string {
	return it.Builder.path(name)
}

func (it *Publisher) runner() Runner {
	if it.DryRun {
		return DryRunner{}
	}
	if it.Runner == nil {
		return ShellRunner()
	}
	return it.Runner
}

// ManifestVersion reads the version field of a package.json file.
func ManifestVersion(filename string) (string, error) {
	blob, err := os.ReadFile(filename)
	if err != nil {
		return "", err
	}
	version := gjson.GetBytes(blob, "version")
	if !version.Exists() {
		return "", fmt.Errorf("%q has no version", filename)
	}
	return version.String(), nil
}

// escapeKey makes a package name usable as one gjson/sjson path element.
func escapeKey(key string) string {
	builder := strings.Builder{}
	for _, char := range key {
		if strings.ContainsRune(`.*?@|#\`, char) {
			builder.WriteRune('\\')
		}
		builder.WriteRune(char)
	}
	return builder.String()
}

// Plan computes versions for bump and refuses versions already present in
// the registry.
func (it *Publisher) Plan(bump Bump) (release *Release, err error) {
	defer fail.Around(&err)

	release = &Release{Bump: bump}
	release.AssistantFrom, err = ManifestVersion(it.path(it.AssistantManifest))
	fail.Fast(err)
	release.HostFrom, err = ManifestVersion(it.path(it.HostManifest))
	fail.Fast(err)
	release.AssistantTo, err = bump.Apply(release.AssistantFrom)
	fail.Fast(err)
	release.HostTo, err = bump.Apply(release.HostFrom)
	fail.Fast(err)

	for _, target := range it.Targets {
		release.Packages = append(release.Packages, PackageVersion{
			Name:      target.PackageName(it.Builder.Wrapper),
			Version:   release.AssistantTo,
			Directory: it.Builder.PackageDir(target),
		})
	}
	release.Packages = append(release.Packages, PackageVersion{
		Name:      it.Builder.Wrapper,
		Version:   release.AssistantTo,
		Directory: it.Builder.WrapperDir(),
	}, PackageVersion{
		Name:      it.Host,
		Version:   release.HostTo,
		Directory: it.path(it.HostDir),
	})

	if it.Registry != nil {
		for _, entry := range release.Packages {
			published, err := it.Registry.Published(entry.Name, entry.Version)
			fail.Fast(err)
			fail.On(published, "%w: %s@%s", ErrAlreadyPublished, entry.Name, entry.Version)
		}
	}
	return release, nil
}

// Summary lists what the release changes and publishes, one step per line.
func (it *Release) Summary() []string {
	lines := []string{
		fmt.Sprintf("assistant %s -> %s", it.AssistantFrom, it.AssistantTo),
		fmt.Sprintf("host      %s -> %s", it.HostFrom, it.HostTo),
	}
	for _, entry := range it.Packages {
		lines = append(lines, fmt.Sprintf("publish   %s@%s", entry.Name, entry.Version))
	}
	return lines
}

func (it *Release) Title() string {
	return fmt.Sprintf("Release (%s bump)", it.Bump)
}

func (it *Release) Log() {
	common.Log("%s:", it.Title())
	for _, line := range it.Summary() {
		common.Log("  %s", line)
	}
}

func (it *Release) CommitMessage(assistant, host string) string {
	return fmt.Sprintf("release: %s v%s, %s v%s", assistant, it.AssistantTo, host, it.HostTo)
}

func rewrite(filename string, edits map[string]string) error {
	blob, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	for path, value := range edits {
		blob, err = sjson.SetBytes(blob, path, value)
		if err != nil {
			return fmt.Errorf("%q at %q: %w", filename, path, err)
		}
	}
	return os.WriteFile(filename, blob, 0o644)
}

func (it *Publisher) bumpManifests(release *Release) (err error) {
	defer fail.Around(&err)

	if it.DryRun {
		common.Log("[dry-run] would set %s version %s", it.AssistantManifest, release.AssistantTo)
		common.Log("[dry-run] would set %s version %s and %s %s", it.HostManifest, release.HostTo, it.Builder.Wrapper, Caret(release.AssistantTo))
		return nil
	}
	err = rewrite(it.path(it.AssistantManifest), map[string]string{
		"version": release.AssistantTo,
	})
	fail.Fast(err)
	dependency := "dependencies." + escapeKey(it.Builder.Wrapper)
	err = rewrite(it.path(it.HostManifest), map[string]string{
		"version":  release.HostTo,
		dependency: Caret(release.AssistantTo),
	})
	fail.Fast(err)
	return nil
}

func (it *Publisher) build(ctx context.Context, release *Release) (err error) {
	defer fail.Around(&err)

	it.Builder.DryRun = it.DryRun
	if it.Runner != nil {
		it.Builder.Runner = it.Runner
	}
	err = it.Builder.Build(ctx, it.Targets, release.AssistantTo)
	fail.Fast(err)
	if it.DryRun {
		common.Log("[dry-run] would assemble %d platform packages and %s", len(it.Targets), it.Builder.Wrapper)
	} else {
		_, err = it.Assembler.Assemble(it.Targets, release.AssistantTo)
		fail.Fast(err)
	}
	command, err := shell.Split(it.HostBuild)
	fail.On(err != nil || len(command) == 0, "Host build command %q is not usable: %v", it.HostBuild, err)
	err = it.runner().Run(ctx, Command{Directory: it.path(it.HostDir), Environment: it.Builder.Environment, Args: command})
	fail.Fast(err)
	return nil
}

func (it *Publisher) publish(ctx context.Context, release *Release) (err error) {
	defer fail.Around(&err)

	runner := it.runner()
	for _, entry := range release.Packages {
		common.Log("Publishing %s@%s ...", entry.Name, entry.Version)
		err = runner.Run(ctx, Command{
			Directory:   entry.Directory,
			Environment: it.Builder.Environment,
			Args:        []string{it.Npm, "publish", "--access", "public"},
		})
		fail.Fast(err)
	}
	return nil
}

func (it *Publisher) commit(ctx context.Context, release *Release) (err error) {
	defer fail.Around(&err)

	runner := it.runner()
	root := it.Builder.Root
	manifests := []string{filepath.ToSlash(it.AssistantManifest), filepath.ToSlash(it.HostManifest)}
	err = runner.Run(ctx, Command{
		Directory:   root,
		Environment: it.Builder.Environment,
		Args:        append([]string{it.Git, "add"}, manifests...),
	})
	fail.Fast(err)
	err = runner.Run(ctx, Command{
		Directory:   root,
		Environment: it.Builder.Environment,
		Args:        []string{it.Git, "commit", "-m", release.CommitMessage(it.Builder.Binary, it.Host)},
	})
	fail.Fast(err)
	return nil
}

// Execute performs a planned release; every step is fatal.
func (it *Publisher) Execute(ctx context.Context, release *Release) (err error) {
	defer fail.Around(&err)
	defer common.Stopwatch("Release took").Log()

	release.Log()
	fail.Fast(it.bumpManifests(release))
	fail.Fast(it.build(ctx, release))
	fail.Fast(it.publish(ctx, release))
	fail.Fast(it.commit(ctx, release))
	common.Log("Released %s %s and %s %s.", it.Builder.Wrapper, release.AssistantTo, it.Host, release.HostTo)
	if !it.DryRun {
		detail := fmt.Sprintf("%s@%s %s@%s", it.Builder.Wrapper, release.AssistantTo, it.Host, release.HostTo)
		err = journal.Post("release", detail, "%s bump from %s", release.Bump, release.AssistantFrom)
		if err != nil {
			common.Uncritical("journal", err)
		}
	}
	return nil
}

func (it *Publisher) Publish(ctx context.Context, bump Bump) error {
	release, err := it.Plan(bump)
	if err != nil {
		return err
	}
	return it.Execute(ctx, release)
}
