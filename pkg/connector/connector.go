// pkg/connector/connector.go
package connector

import (
	"context"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// TableReader reads one worksheet of a spreadsheet as a table
type TableReader interface {
	// Read fetches the named worksheet, treating its first row as headers
	Read(ctx context.Context, sheetID, worksheet string) (*model.Table, error)

	// Validate verifies the spreadsheet is reachable with current credentials
	Validate(ctx context.Context, sheetID string) error
}

// TableWriter persists a table into one worksheet of a spreadsheet
type TableWriter interface {
	// Write replaces the worksheet contents; clear controls whether existing
	// cells beyond the new data are wiped first
	Write(ctx context.Context, sheetID, worksheet string, t *model.Table, clear bool) error

	// Append adds the table's rows after the worksheet's last non-empty row
	Append(ctx context.Context, sheetID, worksheet string, t *model.Table) error
}
