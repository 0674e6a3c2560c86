package storage

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/sheets/v4"
)

// SheetsRepository mirrors expenses into a single Google Sheets worksheet. The sheet has no notion
// of users, so every user shares it.
type SheetsRepository struct {
	service       *sheets.Service
	spreadsheetId string
	sheetName     string
	loc           *time.Location
}

func NewSheetsRepository(service *sheets.Service, spreadsheetId, sheetName string, loc *time.Location) *SheetsRepository {
	return &SheetsRepository{
		service:       service,
		spreadsheetId: spreadsheetId,
		sheetName:     sheetName,
		loc:           loc,
	}
}

func (r *SheetsRepository) columns() string {
	return fmt.Sprintf("%s!A:G", r.sheetName)
}

// EnsureHeader writes the column titles when the sheet is empty.
func (r *SheetsRepository) EnsureHeader(ctx context.Context) error {
	headerRange := fmt.Sprintf("%s!A1:G1", r.sheetName)
	existing, err := r.service.Spreadsheets.Values.Get(r.spreadsheetId, headerRange).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to read sheet header: %w", err)
	}
	if len(existing.Values) > 0 && len(existing.Values[0]) > 0 {
		return nil
	}

	header := make([]interface{}, len(Header))
	for i, title := range Header {
		header[i] = title
	}
	_, err = r.service.Spreadsheets.Values.Update(r.spreadsheetId, headerRange, &sheets.ValueRange{
		Values: [][]interface{}{header},
	}).ValueInputOption("RAW").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("unable to write sheet header: %w", err)
	}
	log.Infof("Created header in sheet %s", r.sheetName)
	return nil
}

func (r *SheetsRepository) Store(ctx context.Context, rows []Row) error {
	if len(rows) == 0 {
		return nil
	}
	values := make([][]interface{}, 0, len(rows))
	for _, row := range rows {
		values = append(values, row.Values())
	}
	_, err := r.service.Spreadsheets.Values.Append(r.spreadsheetId, r.columns(), &sheets.ValueRange{
		Values: values,
	}).ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to append rows: %w", err)
		log.Error(err)
		return err
	}
	log.Debugf("appended %d rows to sheet %s", len(rows), r.sheetName)
	return nil
}

// Delete removes the last sheet row with the same time, description and amount as row.
func (r *SheetsRepository) Delete(ctx context.Context, row Row) error {
	values, err := r.readAll(ctx)
	if err != nil {
		return err
	}
	index := -1
	for i := len(values) - 1; i >= 0; i-- {
		candidate, err := parseValues(values[i], r.loc)
		if err != nil {
			continue
		}
		if candidate.sameEntry(row) {
			index = i
			break
		}
	}
	if index < 0 {
		return ErrRowNotFound
	}

	sheetId, err := r.sheetId(ctx)
	if err != nil {
		return err
	}
	_, err = r.service.Spreadsheets.BatchUpdate(r.spreadsheetId, &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			DeleteDimension: &sheets.DeleteDimensionRequest{
				Range: &sheets.DimensionRange{
					SheetId:    sheetId,
					Dimension:  "ROWS",
					StartIndex: int64(index),
					EndIndex:   int64(index + 1),
					// zero values are meaningful here
					ForceSendFields: []string{"SheetId", "StartIndex"},
				},
			},
		}},
	}).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to delete sheet row %d: %w", index+1, err)
		log.Error(err)
		return err
	}
	log.Debugf("deleted sheet row %d (%s)", index+1, row.Description)
	return nil
}

func (r *SheetsRepository) List(ctx context.Context, userId int, from, to time.Time) ([]Row, error) {
	values, err := r.readAll(ctx)
	if err != nil {
		return nil, err
	}
	var rows []Row
	for i, cells := range values {
		row, err := parseValues(cells, r.loc)
		if err != nil {
			// the header and hand-edited rows end up here
			log.Tracef("skipping sheet row %d: %v", i+1, err)
			continue
		}
		if row.within(from, to) {
			row.UserId = userId
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func (r *SheetsRepository) readAll(ctx context.Context) ([][]interface{}, error) {
	response, err := r.service.Spreadsheets.Values.Get(r.spreadsheetId, r.columns()).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to read sheet: %w", err)
		log.Error(err)
		return nil, err
	}
	return response.Values, nil
}

func (r *SheetsRepository) sheetId(ctx context.Context) (int64, error) {
	spreadsheet, err := r.service.Spreadsheets.Get(r.spreadsheetId).Fields("sheets.properties").Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to read spreadsheet: %w", err)
	}
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == r.sheetName {
			return sheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("sheet %q not found in spreadsheet", r.sheetName)
}
