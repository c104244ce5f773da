package cmd

import (
	"strings"

	"github.com/joshyorko/wrangler-opencode/common"
	"github.com/joshyorko/wrangler-opencode/operations"
	"github.com/joshyorko/wrangler-opencode/pretty"
	"github.com/joshyorko/wrangler-opencode/xviper"

	"github.com/spf13/cobra"
)

var (
	debugFlag    bool
	traceFlag    bool
	silentFlag   bool
	promptFlag   bool
	homeOption   string
	settingsFile string
	workerEnv    string
	workerConfig string

	launch = operations.LaunchOpenCode
)

var rootCmd = &cobra.Command{
	Use:   common.ProgramName,
	Short: "Develop, configure and deploy Workers, with an assistant on call.",
	Long: `Develop, configure and deploy Workers.

Use "wrangler -p [instruction...]" or "wrangler opencode [args...]" to start
the opencode assistant with the current project already described to it.`,
	Args:             cobra.ArbitraryArgs,
	SilenceUsage:     true,
	TraverseChildren: true,
	PersistentPreRun: initialize,
	Run: func(cmd *cobra.Command, args []string) {
		if !promptFlag {
			cmd.Help()
			return
		}
		launch(operations.LaunchArgs{
			Instruction: strings.TrimSpace(strings.Join(args, " ")),
			Environment: workerEnv,
			ConfigPath:  workerConfig,
		})
	},
}

func initialize(cmd *cobra.Command, args []string) {
	if len(homeOption) > 0 {
		common.Product.ForceHome(homeOption)
	}
	if len(settingsFile) > 0 {
		xviper.SetConfigFile(settingsFile)
	}
	common.DefineVerbosity(silentFlag, debugFlag, traceFlag)
	if !debugFlag && !traceFlag && !silentFlag && xviper.IsSet(common.LogLevelSetting) {
		common.DefineVerbosityByName(xviper.GetString(common.LogLevelSetting))
	}
	pretty.Setup()
	common.Trace("%s %s on %s, settings %q", common.ProgramName, common.Version, common.Platform(), xviper.ConfigFileUsed())
}

// Root is exposed for command line tests.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the host command line; failures become exit code 1.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		pretty.Exit(1, "Error: %v", err)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&promptFlag, "prompt", "p", false, "Launch opencode for this project, using remaining arguments as the initial instruction.")

	rootCmd.PersistentFlags().BoolVarP(&silentFlag, "silent", "", false, "Be less verbose on output.")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "", false, "Show debug messages.")
	rootCmd.PersistentFlags().BoolVarP(&traceFlag, "trace", "", false, "Show trace messages.")
	rootCmd.PersistentFlags().StringVarP(&homeOption, "home", "", "", "Override the wrangler-opencode home directory.")
	rootCmd.PersistentFlags().StringVarP(&settingsFile, "settings", "", "", "Settings file to use instead of <home>/config.yaml.")
	rootCmd.PersistentFlags().StringVarP(&workerEnv, "env", "e", "", "Worker environment to describe to the assistant.")
	rootCmd.PersistentFlags().StringVarP(&workerConfig, "config", "c", "", "Path to the Worker configuration file.")
}
