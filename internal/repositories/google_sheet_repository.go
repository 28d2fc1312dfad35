package repositories

import (
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"superagent/internal/models/chat_models"
	"superagent/pkg/utils"
)

const valueInputRaw = "RAW"

var updatedRowPattern = regexp.MustCompile(`![A-Z]+(\d+)`)

type GoogleSheetConfig struct {
	SpreadsheetID   string
	Worksheet       string
	CredentialsFile string
}

type googleSheetRepository struct {
	values        *sheets.SpreadsheetsValuesService
	spreadsheetID string
	worksheet     string
	logger        *zap.Logger
}

// NewGoogleSheetRepository builds a Sheets API client. Without extra options
// it authenticates with the configured service account file.
func NewGoogleSheetRepository(ctx context.Context, cfg GoogleSheetConfig, logger *zap.Logger, opts ...option.ClientOption) (SheetRepository, error) {
	if cfg.SpreadsheetID == "" {
		return nil, fmt.Errorf("%w: spreadsheet id", utils.ErrMissingConfig)
	}
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(cfg.CredentialsFile),
			option.WithScopes(sheets.SpreadsheetsScope),
		}
	}

	srv, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	return &googleSheetRepository{
		values:        srv.Spreadsheets.Values,
		spreadsheetID: cfg.SpreadsheetID,
		worksheet:     cfg.Worksheet,
		logger:        logger,
	}, nil
}

func (g *googleSheetRepository) EnsureHeader(ctx context.Context) error {
	headerRange := g.a1("A1:" + chat_models.LastColumnLetter + "1")

	resp, err := g.values.Get(g.spreadsheetID, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read header: %w", err)
	}

	var existing []interface{}
	if len(resp.Values) > 0 {
		existing = resp.Values[0]
	}
	if headerMatches(existing) {
		return nil
	}

	header := make([]interface{}, 0, len(chat_models.SheetHeader))
	for _, h := range chat_models.SheetHeader {
		header = append(header, h)
	}

	// An empty first row is overwritten in place, same as a mismatched one.
	_, err = g.values.Update(g.spreadsheetID, headerRange, &sheets.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	return nil
}

func (g *googleSheetRepository) AppendRow(ctx context.Context, record chat_models.CompletionRecord) (int, error) {
	if err := g.EnsureHeader(ctx); err != nil {
		g.logger.Warn("sheet header check failed", zap.Error(err))
	}

	resp, err := g.values.Append(g.spreadsheetID, g.a1("A:"+chat_models.LastColumnLetter), &sheets.ValueRange{
		Values: [][]interface{}{record.Values()},
	}).ValueInputOption(valueInputRaw).InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("append row: %w", err)
	}
	if resp.Updates == nil {
		return 0, fmt.Errorf("append row: %w: no updates in response", utils.ErrBadUpdatedRange)
	}

	return parseUpdatedRow(resp.Updates.UpdatedRange)
}

func (g *googleSheetRepository) MarkNotified(ctx context.Context, rowIndex int, at time.Time) error {
	if err := g.writeCell(ctx, chat_models.ColumnEmailSentLetter, rowIndex, utils.FormatSheetTimestamp(at)); err != nil {
		return fmt.Errorf("write email sent at row %d: %w", rowIndex, err)
	}

	resp, err := g.values.Get(g.spreadsheetID, g.cell(chat_models.ColumnPhoneLetter, rowIndex)).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("read phone at row %d: %w", rowIndex, err)
	}
	phone := firstCell(resp.Values)
	if phone == "" {
		return nil
	}

	if err := g.writeCell(ctx, chat_models.ColumnWhatsAppLinkLetter, rowIndex, utils.WhatsAppLink(phone)); err != nil {
		return fmt.Errorf("write whatsapp link at row %d: %w", rowIndex, err)
	}
	return nil
}

func (g *googleSheetRepository) writeCell(ctx context.Context, column string, row int, value string) error {
	_, err := g.values.Update(g.spreadsheetID, g.cell(column, row), &sheets.ValueRange{
		Values: [][]interface{}{{value}},
	}).ValueInputOption(valueInputRaw).Context(ctx).Do()
	return err
}

func (g *googleSheetRepository) cell(column string, row int) string {
	return g.a1(column + strconv.Itoa(row))
}

// a1 qualifies ref with the worksheet name, quoted for names with spaces.
func (g *googleSheetRepository) a1(ref string) string {
	if g.worksheet == "" {
		return ref
	}
	return "'" + strings.ReplaceAll(g.worksheet, "'", "''") + "'!" + ref
}

func headerMatches(row []interface{}) bool {
	if len(row) != len(chat_models.SheetHeader) {
		return false
	}
	for i, h := range chat_models.SheetHeader {
		if fmt.Sprint(row[i]) != h {
			return false
		}
	}
	return true
}

func firstCell(values [][]interface{}) string {
	if len(values) == 0 || len(values[0]) == 0 {
		return ""
	}
	return strings.TrimSpace(fmt.Sprint(values[0][0]))
}

// parseUpdatedRow reads the row number out of an updated range such as
// "'Campaign5'!A7:M7".
func parseUpdatedRow(updatedRange string) (int, error) {
	m := updatedRowPattern.FindStringSubmatch(updatedRange)
	if m == nil {
		return 0, fmt.Errorf("%w: %q", utils.ErrBadUpdatedRange, updatedRange)
	}
	return strconv.Atoi(m[1])
}
