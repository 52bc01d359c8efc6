// Package userdesk parses userdesk command flags and launches the bootstrap runtime.
package userdesk

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/louisbranch/userdesk/internal/identity"
	"github.com/louisbranch/userdesk/internal/mirror"
	entrypoint "github.com/louisbranch/userdesk/internal/platform/cmd"
	"github.com/louisbranch/userdesk/internal/seeder"
	"github.com/louisbranch/userdesk/internal/storage/sqlite"
	"github.com/louisbranch/userdesk/internal/syncsvc"
)

// Config holds userdesk command configuration.
type Config struct {
	DBPath     string `env:"USERDESK_DB_PATH" envDefault:"userdesk.db"`
	MirrorPath string `env:"USERDESK_MIRROR_PATH" envDefault:"users.json"`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The SQLite record store path")
	fs.StringVar(&cfg.MirrorPath, "mirror-path", cfg.MirrorPath, "The JSON mirror snapshot path")

	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the userdesk bootstrap runtime: it seeds empty stores and
// brings the mirror snapshot up from the record store.
func Run(ctx context.Context, cfg Config) error {
	return RunWithProvider(ctx, cfg, nil)
}

// RunWithProvider runs the bootstrap with an identity provider for admin
// provisioning. A nil provider skips provisioning.
func RunWithProvider(ctx context.Context, cfg Config, provider identity.Provider) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceUserdesk, func(ctx context.Context) error {
		records, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open record store: %w", err)
		}
		defer func() {
			if closeErr := records.Close(); closeErr != nil {
				log.Printf("close record store: %v", closeErr)
			}
		}()

		mirrorStore, err := mirror.NewStore(cfg.MirrorPath)
		if err != nil {
			return fmt.Errorf("open mirror store: %w", err)
		}
		svc, err := syncsvc.New(records, mirrorStore)
		if err != nil {
			return fmt.Errorf("build sync service: %w", err)
		}

		seed, err := seeder.New(records, svc, provider)
		if err != nil {
			return fmt.Errorf("build seeder: %w", err)
		}
		if err := seed.Run(ctx); err != nil {
			return fmt.Errorf("seed stores: %w", err)
		}
		if err := svc.InitializeMirror(ctx); err != nil {
			return fmt.Errorf("initialize mirror: %w", err)
		}

		log.Printf("userdesk bootstrap complete, records at %s, mirror at %s", cfg.DBPath, mirrorStore.Path())
		return nil
	})
}
