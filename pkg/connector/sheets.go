// pkg/connector/sheets.go
package connector

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/jmunguiamm/integridad-informacion/pkg/model"
)

// SheetsConnector reads and writes Google Sheets worksheets as tables. Reads
// are cached for a short TTL because the hosting shell re-reads the same
// worksheets on every interaction.
type SheetsConnector struct {
	svc    *sheets.Service
	logger *zap.Logger
	ttl    time.Duration

	mu    sync.Mutex
	cache map[string]cacheEntry
}

type cacheEntry struct {
	table   *model.Table
	fetched time.Time
}

// NewSheetsConnector creates a connector authenticated with the given
// service-account credentials JSON.
func NewSheetsConnector(ctx context.Context, credentialsJSON []byte, ttl time.Duration, logger *zap.Logger) (*SheetsConnector, error) {
	svc, err := sheets.NewService(ctx,
		option.WithCredentialsJSON(credentialsJSON),
		option.WithScopes(sheets.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &SheetsConnector{
		svc:    svc,
		logger: logger,
		ttl:    ttl,
		cache:  make(map[string]cacheEntry),
	}, nil
}

// Validate verifies the spreadsheet is reachable with current credentials
func (c *SheetsConnector) Validate(ctx context.Context, sheetID string) error {
	_, err := c.svc.Spreadsheets.Get(sheetID).
		Fields("properties.title").Context(ctx).Do()
	if err != nil {
		return model.WrapTransport(err, "spreadsheet validation failed")
	}
	return nil
}

// Read fetches one worksheet as a table. The requested worksheet name is
// matched exactly against the spreadsheet's tabs, then case-insensitively by
// substring, then the first tab is used as a last resort so a renamed tab
// degrades the run instead of failing it.
func (c *SheetsConnector) Read(ctx context.Context, sheetID, worksheet string) (*model.Table, error) {
	cacheKey := sheetID + "/" + worksheet

	c.mu.Lock()
	if entry, ok := c.cache[cacheKey]; ok && time.Since(entry.fetched) < c.ttl {
		c.mu.Unlock()
		c.logger.Debug("Worksheet served from cache", zap.String("worksheet", worksheet))
		return entry.table.Clone(), nil
	}
	c.mu.Unlock()

	titles, err := c.worksheetTitles(ctx, sheetID)
	if err != nil {
		return nil, err
	}
	title, exact := chooseWorksheet(titles, worksheet)
	if title == "" {
		return nil, model.NewDataError(model.KindTransport,
			"spreadsheet %q has no worksheets", sheetID)
	}
	if !exact {
		c.logger.Warn("Worksheet resolved by fuzzy match",
			zap.String("requested", worksheet),
			zap.String("resolved", title))
	}

	resp, err := c.svc.Spreadsheets.Values.Get(sheetID, fmt.Sprintf("'%s'", title)).
		Context(ctx).Do()
	if err != nil {
		return nil, model.WrapTransport(err, fmt.Sprintf("failed to read worksheet %q", title))
	}

	table := tableFromValues(resp.Values)
	c.logger.Info("Worksheet read",
		zap.String("worksheet", title),
		zap.Int("rows", len(table.Rows)),
		zap.Int("columns", len(table.Columns)))

	c.mu.Lock()
	c.cache[cacheKey] = cacheEntry{table: table.Clone(), fetched: time.Now()}
	c.mu.Unlock()
	return table, nil
}

// Write replaces the worksheet contents with the table
func (c *SheetsConnector) Write(ctx context.Context, sheetID, worksheet string, t *model.Table, clear bool) error {
	rng := fmt.Sprintf("'%s'", worksheet)
	if clear {
		_, err := c.svc.Spreadsheets.Values.Clear(sheetID, rng, &sheets.ClearValuesRequest{}).
			Context(ctx).Do()
		if err != nil {
			return model.WrapTransport(err, fmt.Sprintf("failed to clear worksheet %q", worksheet))
		}
	}

	_, err := c.svc.Spreadsheets.Values.Update(sheetID, rng, valueRange(t, true)).
		ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return model.WrapTransport(err, fmt.Sprintf("failed to write worksheet %q", worksheet))
	}

	c.invalidate(sheetID)
	c.logger.Info("Worksheet written",
		zap.String("worksheet", worksheet),
		zap.Int("rows", len(t.Rows)))
	return nil
}

// Append adds the table's rows after the worksheet's last non-empty row,
// without a header row.
func (c *SheetsConnector) Append(ctx context.Context, sheetID, worksheet string, t *model.Table) error {
	rng := fmt.Sprintf("'%s'", worksheet)
	_, err := c.svc.Spreadsheets.Values.Append(sheetID, rng, valueRange(t, false)).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return model.WrapTransport(err, fmt.Sprintf("failed to append to worksheet %q", worksheet))
	}

	c.invalidate(sheetID)
	c.logger.Info("Rows appended",
		zap.String("worksheet", worksheet),
		zap.Int("rows", len(t.Rows)))
	return nil
}

func (c *SheetsConnector) invalidate(sheetID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.cache {
		if strings.HasPrefix(key, sheetID+"/") {
			delete(c.cache, key)
		}
	}
}

func (c *SheetsConnector) worksheetTitles(ctx context.Context, sheetID string) ([]string, error) {
	resp, err := c.svc.Spreadsheets.Get(sheetID).
		Fields("sheets.properties.title").Context(ctx).Do()
	if err != nil {
		return nil, model.WrapTransport(err, "failed to list worksheets")
	}

	titles := make([]string, 0, len(resp.Sheets))
	for _, sh := range resp.Sheets {
		if sh.Properties != nil {
			titles = append(titles, sh.Properties.Title)
		}
	}
	return titles, nil
}

// chooseWorksheet picks the tab to read for a requested name. The bool is
// true only for an exact title match.
func chooseWorksheet(titles []string, want string) (string, bool) {
	for _, title := range titles {
		if title == want {
			return title, true
		}
	}
	if want != "" {
		lowered := strings.ToLower(want)
		for _, title := range titles {
			if strings.Contains(strings.ToLower(title), lowered) {
				return title, false
			}
		}
	}
	if len(titles) > 0 {
		return titles[0], false
	}
	return "", false
}

// tableFromValues converts the raw API value grid into a table. The first
// row supplies trimmed headers; short rows are padded with blanks.
func tableFromValues(values [][]interface{}) *model.Table {
	if len(values) == 0 {
		return model.NewTable(nil)
	}

	columns := make([]string, len(values[0]))
	for i, cell := range values[0] {
		columns[i] = strings.TrimSpace(cellString(cell))
	}

	table := model.NewTable(columns)
	for _, raw := range values[1:] {
		row := make(model.Row, len(columns))
		for i, col := range columns {
			if i < len(raw) {
				row[col] = cellString(raw[i])
			} else {
				row[col] = ""
			}
		}
		table.AppendRow(row)
	}
	return table
}

func valueRange(t *model.Table, withHeader bool) *sheets.ValueRange {
	var values [][]interface{}
	if withHeader {
		header := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			header[i] = col
		}
		values = append(values, header)
	}
	for _, row := range t.Rows {
		cells := make([]interface{}, len(t.Columns))
		for i, col := range t.Columns {
			cells[i] = row[col]
		}
		values = append(values, cells)
	}
	return &sheets.ValueRange{Values: values}
}

func cellString(cell interface{}) string {
	switch v := cell.(type) {
	case string:
		return v
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", v)
	}
}
