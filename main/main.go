package main

import (
	"fmt"
	"os"

	"github.com/adammck/quadruped/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "main",
})

var rootCmd = &cobra.Command{
	Use:   "quadruped",
	Short: "Walk a simulated quadruped with FABRIK legs",
	Long: `quadruped walks a four-legged body around a virtual world. Each leg is an
IK chain which reaches for its foot target, and a gait steps one foot at a
time when it falls too far behind the body.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		if debug {
			logrus.SetLevel(logrus.DebugLevel)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to a TOML config file (default: built-in settings)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every tick")
}

// loadConfig returns the config at the given path, or the defaults if there
// isn't one.
func loadConfig(path string) (config.Config, error) {
	if path == "" {
		c := config.Default()
		return c, c.Validate()
	}
	return config.Load(path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
