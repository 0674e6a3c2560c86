package google

import (
	"context"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService creates a Sheets API client on top of an authorized HTTP client. Extra options,
// such as option.WithEndpoint, are passed through.
func NewSheetsService(ctx context.Context, client *http.Client, opts ...option.ClientOption) (*sheets.Service, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(client)}, opts...)
	service, err := sheets.NewService(ctx, opts...)
	if err != nil {
		err := fmt.Errorf("unable to create Sheets client: %v", err)
		log.Error(err)
		return nil, err
	}
	return service, nil
}
