package main

import (
	"os"
	"path/filepath"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/distro"
	"github.com/joshyorko/wrangler-opencode/pretty"
	"github.com/joshyorko/wrangler-opencode/settings"
	"github.com/joshyorko/wrangler-opencode/xviper"

	"github.com/spf13/cobra"
)

var (
	debugFlag      bool
	traceFlag      bool
	silentFlag     bool
	dryFlag        bool
	devFlag        bool
	parallelFlag   bool
	rootOption     string
	settingsFile   string
	registryOption string
	targetsOption  string
	versionOption  string
)

var distctlCmd = &cobra.Command{
	Use:   "distctl",
	Short: "Build, package and publish the opencode distribution.",
	Long: `Build the opencode executable for every platform, assemble the npm packages
around it and publish them together with the wrangler host package.`,
	SilenceUsage:     true,
	PersistentPreRun: initialize,
}

func initialize(cmd *cobra.Command, args []string) {
	if len(settingsFile) > 0 {
		xviper.SetConfigFile(settingsFile)
	}
	if len(registryOption) > 0 {
		xviper.Set("distribution.registry", registryOption)
	}
	common.ControllerType = "distctl"
	common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
	pretty.Setup()
}

func ExitProtection() {
	status := recover()
	if status != nil {
		exit, ok := status.(common.ExitCode)
		if ok {
			exit.ShowMessage()
			common.WaitLogs()
			os.Exit(exit.Code)
		}
		common.WaitLogs()
		panic(status)
	}
	common.WaitLogs()
}

func workspace() (string, *settings.Settings) {
	root, err := filepath.Abs(rootOption)
	pretty.Guard(err == nil, 2, "Invalid root %q: %v", rootOption, err)
	config, err := settings.SummonSettings()
	pretty.Guard(err == nil, 2, "Settings problem: %v", err)
	return root, config
}

func selectedTargets() []distro.Target {
	if len(targetsOption) == 0 {
		return distro.Select(devFlag)
	}
	targets, err := distro.ParseTargets(targetsOption)
	pretty.Guard(err == nil, 2, "Error: %v", err)
	return targets
}

func currentVersion(root string, config *settings.Settings) string {
	if len(versionOption) > 0 {
		return versionOption
	}
	version, err := distro.ManifestVersion(filepath.Join(root, config.Distribution.AssistantManifest))
	pretty.Guard(err == nil, 2, "Cannot read version, use --version: %v", err)
	return version
}

func addMatrixFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVarP(&devFlag, "dev", "", false, "Only the host platform.")
	cmd.Flags().StringVarP(&targetsOption, "targets", "t", "", "Comma separated os/arch pairs instead of the full matrix.")
	cmd.Flags().StringVarP(&versionOption, "version", "", "", "Version to stamp, defaults to the assistant manifest version.")
}

func main() {
	defer ExitProtection()

	if err := distctlCmd.Execute(); err != nil {
		pretty.Exit(1, "Error: %v", err)
	}
}

func init() {
	distctlCmd.PersistentFlags().BoolVarP(&silentFlag, "silent", "", false, "Be less verbose on output.")
	distctlCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "", false, "Show debug messages.")
	distctlCmd.PersistentFlags().BoolVarP(&traceFlag, "trace", "", false, "Show trace messages.")
	distctlCmd.PersistentFlags().BoolVarP(&dryFlag, "dry-run", "d", false, "Only show what would be done.")
	distctlCmd.PersistentFlags().StringVarP(&rootOption, "root", "r", ".", "Repository root.")
	distctlCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "", "", "Settings file overriding the built in defaults.")
	distctlCmd.PersistentFlags().StringVarP(&registryOption, "registry", "", "", "Registry to check published versions against, overrides distribution.registry.")
}
