package config

import (
	"errors"
	"strings"

	"github.com/babylonlabs-io/payment-service/pkg"
)

const defaultDeploymentRecordPath = "deployment.json"

type LedgerConfig struct {
	// Administrator is the only identity allowed to allocate shares and
	// change the streaming time. It is fixed once the ledger is deployed.
	Administrator string `mapstructure:"administrator"`
	Name          string `mapstructure:"name"`
	// DeploymentRecordPath is where the deploy command writes {address, owner}.
	DeploymentRecordPath string `mapstructure:"deployment-record-path"`
}

func (cfg *LedgerConfig) Validate() error {
	cfg.Administrator = strings.TrimSpace(cfg.Administrator)
	if cfg.Administrator == "" {
		return errors.New("administrator is required")
	}

	if err := pkg.ValidateAddress(cfg.Administrator); err != nil {
		return err
	}

	if cfg.DeploymentRecordPath == "" {
		cfg.DeploymentRecordPath = defaultDeploymentRecordPath
	}

	return nil
}
