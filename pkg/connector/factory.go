// pkg/connector/factory.go
package connector

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/jmunguiamm/integridad-informacion/pkg/config"
)

// ConnectorFactory creates spreadsheet connectors
type ConnectorFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewConnectorFactory creates a new connector factory
func NewConnectorFactory(cfg *config.Config, logger *zap.Logger) *ConnectorFactory {
	return &ConnectorFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateSheetsConnector creates a new Google Sheets connector authenticated
// with the configured service account.
func (f *ConnectorFactory) CreateSheetsConnector(ctx context.Context) (*SheetsConnector, error) {
	f.logger.Info("Creating Google Sheets connector")

	if f.cfg.GoogleServiceAccount == "" {
		return nil, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT credentials are not configured")
	}

	connector, err := NewSheetsConnector(ctx, []byte(f.cfg.GoogleServiceAccount), f.cfg.SheetCacheTTL, f.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Sheets connector: %w", err)
	}

	if err := connector.Validate(ctx, f.cfg.FormsSheetID); err != nil {
		return nil, err
	}

	return connector, nil
}
