package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/babylonlabs-io/payment-service/pkg"
)

const (
	defaultConfigFileName = "config.yml"
	configPathEnv         = "PAYMENT_CONFIG"
)

var (
	cfgPath string
	rootCmd = &cobra.Command{
		Use:   "payment-service",
		Short: "Streams a shared benefit pool to share-holding beneficiaries",
	}
)

func Setup() error {
	homePath, err := os.UserHomeDir()
	if err != nil {
		return err
	}

	defaultConfigPath := pkg.Getenv(configPathEnv, getDefaultConfigFile(homePath, defaultConfigFileName))

	rootCmd.AddCommand(StartServerCmd())
	rootCmd.AddCommand(DeployCmd())
	rootCmd.AddCommand(DumpStateCmd())
	rootCmd.AddCommand(IssueTokenCmd())
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultConfigPath, fmt.Sprintf("config file (default %s)", defaultConfigPath))
	if err := rootCmd.Execute(); err != nil {
		return err
	}

	return nil
}

func getDefaultConfigFile(homePath, filename string) string {
	return filepath.Join(homePath, filename)
}

func GetConfigPath() string {
	return cfgPath
}
