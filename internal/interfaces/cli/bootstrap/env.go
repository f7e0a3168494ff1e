// Package bootstrap loads configuration and process-wide singletons shared by
// every CLI command.
package bootstrap

import (
	"fmt"
	"os"

	"github.com/orris-inc/memberhub/internal/infrastructure/config"
	"github.com/orris-inc/memberhub/internal/infrastructure/database"
	"github.com/orris-inc/memberhub/internal/shared/biztime"
	"github.com/orris-inc/memberhub/internal/shared/id"
	"github.com/orris-inc/memberhub/internal/shared/logger"
)

// Flags are the persistent flags every command accepts.
type Flags struct {
	Env        string
	ConfigPath string
}

// ResolveEnv lets the ENV variable override the --env flag.
func (f *Flags) ResolveEnv() string {
	if envVar := os.Getenv("ENV"); envVar != "" {
		f.Env = envVar
	}
	return f.Env
}

// Init loads config and initializes the logger, business timezone and
// sequence generator. The database is opened only when withDB is set; the
// caller then owns database.Close.
func Init(flags *Flags, withDB bool) (*config.Config, logger.Interface, error) {
	cfg, err := config.Load(flags.ResolveEnv(), flags.ConfigPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger, cfg.Server.Mode); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	log := logger.NewLogger()

	// Business timezone drives day boundaries for validity and statistics.
	if err := biztime.Init(cfg.Server.Timezone); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize business timezone: %w", err)
	}

	if err := id.Init(cfg.Accounting.SeqNodeID); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize sequence generator: %w", err)
	}

	if withDB {
		if err := database.Init(&cfg.Database); err != nil {
			return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
		}
	}

	return cfg, log, nil
}
