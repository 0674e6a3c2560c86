package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/sheets/v4"
)

var ErrNoCredentials = errors.New("google service account credentials not configured")

// Credentials returns the service account key, preferring inline JSON over a key file.
func Credentials(inlineJSON string, file string) ([]byte, error) {
	if inlineJSON != "" {
		return []byte(inlineJSON), nil
	}
	if file == "" {
		return nil, ErrNoCredentials
	}
	data, err := os.ReadFile(file)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file %s: %w", file, err)
	}
	return data, nil
}

// ServiceAccountClient returns an HTTP client authorized to read and write spreadsheets on behalf
// of the service account.
func ServiceAccountClient(ctx context.Context, credentials []byte) (*http.Client, error) {
	jwtConfig, err := google.JWTConfigFromJSON(credentials, sheets.SpreadsheetsScope)
	if err != nil {
		err := fmt.Errorf("unable to parse service account credentials: %w", err)
		log.Error(err)
		return nil, err
	}
	log.Debugf("using Google service account %s", jwtConfig.Email)
	return jwtConfig.Client(ctx), nil
}
