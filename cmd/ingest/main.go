// Command ingest normalises CSV headers and uploads files to an ingestion API.
package main

import (
	"context"
	"os"

	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/blob"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/ingestion"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/notify"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ingest-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/ingest-cli/internal/core/ports/driven"
	"github.com/custodia-labs/ingest-cli/internal/core/services"
	"github.com/custodia-labs/ingest-cli/internal/logger"
)

// version is set at build time via -ldflags "-X main.version=...".
var version = "dev"

func main() {
	cli.SetVersion(version)
	cli.Bootstrap = bootstrap

	if err := cli.ExecuteContext(context.Background()); err != nil {
		logger.Error("%v", err)
		os.Exit(1)
	}
}

// bootstrap wires stores, adapters and services for one command run.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(), error) {
	configStore, err := newConfigStore(opts)
	if err != nil {
		return nil, nil, err
	}
	settingsService := services.NewSettingsService(configStore)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, err
	}

	var (
		connectorCache driven.ConnectorStore
		uploadStore    driven.UploadStore
		closeStore     func()
	)
	if opts.Ephemeral {
		connectorCache = memory.NewConnectorStore()
		uploadStore = memory.NewUploadStore()
	} else {
		store, err := sqlite.NewStore(opts.DataDir)
		if err != nil {
			return nil, nil, err
		}
		logger.Debug("using database %s", store.Path())
		connectorCache = store.ConnectorStore()
		uploadStore = store.UploadStore()
		closeStore = func() {
			if err := store.Close(); err != nil {
				logger.Warn("closing database: %v", err)
			}
		}
	}

	// Commands that configure the endpoint must still run without one.
	var (
		source driven.ConnectorSource
		client driven.IngestionClient
	)
	if settings.Endpoint.IsConfigured() {
		c, err := ingestion.NewFromSettings(ctx, *settings)
		if err != nil {
			logger.Warn("ingestion endpoint unavailable: %v", err)
		} else {
			source, client = c, c
		}
	}

	blobs := blob.NewRouter(
		blob.NewFileSource(),
		blob.NewGitHubSourceFromToken(ctx, settings.Sources.GitHubToken),
	)
	if token := settings.Sources.GoogleDriveToken; token != "" {
		drive, err := blob.NewDriveSourceFromToken(ctx, token)
		if err != nil {
			logger.Warn("google drive source disabled: %v", err)
		} else {
			blobs.Register(drive)
		}
	}

	directory := services.NewConnectorDirectory(source, connectorCache)
	selection := services.NewSelectionState(directory)
	notifier := services.NewOutcomeNotifier(notify.NewConsoleNotifier(os.Stderr))
	upload := services.NewUploadService(
		selection,
		services.NewNormalizer(services.WithQuoteAwareHeader(settings.Upload.QuoteAwareHeader)),
		services.NewSubmitter(client),
		notifier,
	)
	upload.SetBlobOpener(blobs)
	upload.SetHistoryStore(uploadStore)

	return &cli.Services{
		Directory: directory,
		Selection: selection,
		Upload:    upload,
		History:   services.NewHistoryService(uploadStore),
		Settings:  settingsService,
		Notices:   notifier,
	}, closeStore, nil
}

func newConfigStore(opts cli.Options) (driven.ConfigStore, error) {
	if opts.Ephemeral {
		return memory.NewConfigStore(), nil
	}
	return file.NewConfigStore(opts.ConfigDir)
}
