package ports

import "context"

// Fetcher retrieves remote bytes.
//
//go:generate mockgen -source=fetcher.go -destination=mocks/mock_fetcher.go -package=mocks
type Fetcher interface {
	// Fetch returns the body stored at url. Timeout and retry are the
	// implementation's concern.
	Fetch(ctx context.Context, url string) ([]byte, error)
}
