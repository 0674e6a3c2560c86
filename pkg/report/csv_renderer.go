package report

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/chitieu/chitieu/pkg/storage"
	log "github.com/sirupsen/logrus"
)

type Renderer interface {
	RenderRows(rows []storage.Row) (string, error)
}

// CsvRendererImpl writes rows with the sheet header and a closing total line.
type CsvRendererImpl struct {
}

func NewCsvRenderer() *CsvRendererImpl {
	return &CsvRendererImpl{}
}

func (r *CsvRendererImpl) RenderRows(rows []storage.Row) (string, error) {
	data := make([][]string, 0, len(rows)+2)
	data = append(data, storage.Header)

	total := int64(0)
	for _, row := range rows {
		data = append(data, []string{
			row.FullTime.Format(storage.TimeLayout),
			strconv.Itoa(row.Day),
			strconv.Itoa(row.Month),
			strconv.Itoa(row.Year),
			row.Description,
			row.Category,
			strconv.FormatInt(row.Amount, 10),
		})
		total += row.Amount
	}
	data = append(data, []string{"Tổng", "", "", "", "", "", strconv.FormatInt(total, 10)})

	var b bytes.Buffer
	writer := csv.NewWriter(&b)
	for _, row := range data {
		err := writer.Write(row)
		if err != nil {
			log.Errorf("Error writing to csv: %v", err)
			return "", err
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		log.Errorf("Error writing to csv: %v", err)
		return "", err
	}

	return b.String(), nil
}
