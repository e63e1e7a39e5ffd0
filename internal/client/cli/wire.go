package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/dmitrijs2005/profilekeeper/internal/client/config"
	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/accounts"
	"github.com/dmitrijs2005/profilekeeper/internal/client/repositories/storage"
	"github.com/dmitrijs2005/profilekeeper/internal/client/services"
	"github.com/dmitrijs2005/profilekeeper/internal/client/session"
	"github.com/dmitrijs2005/profilekeeper/internal/cryptox"
	"github.com/dmitrijs2005/profilekeeper/internal/filex"
	"github.com/dmitrijs2005/profilekeeper/internal/logging"
)

// Open wires an App from configuration: durable storage in cfg.DataDir, an
// in-memory session store, and the account service on top. The returned
// function closes the durable storage.
func Open(ctx context.Context, cfg *config.Config, in io.Reader, out io.Writer) (*App, func() error, error) {
	log := logging.New(cfg.LogLevel, os.Stderr)

	mode, err := accounts.ParseMode(cfg.ConsistencyMode)
	if err != nil {
		return nil, nil, err
	}
	scheme, err := cryptox.SchemeByName(cfg.PasswordScheme)
	if err != nil {
		return nil, nil, err
	}

	dataDir, err := filex.EnsureDir(cfg.DataDir)
	if err != nil {
		return nil, nil, err
	}
	cfg.DataDir = dataDir

	key, err := cfg.RememberKey()
	if err != nil {
		return nil, nil, fmt.Errorf("remember key: %w", err)
	}

	durable, closeFn, err := storage.OpenDurable(ctx, storage.Backend(cfg.Backend), dataDir)
	if err != nil {
		return nil, nil, fmt.Errorf("open storage: %w", err)
	}
	log.Debug(ctx, "storage opened", "backend", cfg.Backend, "dir", dataDir)

	store := accounts.NewStore(durable,
		accounts.WithMode(mode),
		accounts.WithPasswordScheme(scheme),
		accounts.WithLogger(log),
	)
	svc := services.NewAccountService(store,
		session.NewMarker(storage.NewMemoryRepository()),
		session.NewRemember(durable, key, cfg.RememberTTL),
		log,
	)
	return NewApp(svc, log, in, out), closeFn, nil
}
