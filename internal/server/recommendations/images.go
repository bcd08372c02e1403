package recommendations

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/dmitrijs2005/nutriai/internal/common"
	"github.com/dmitrijs2005/nutriai/internal/netx"
)

// ImageFinder resolves a recipe name to a single image URL.
type ImageFinder interface {
	FindImage(ctx context.Context, name string) (string, error)
}

// NoImages skips enrichment entirely.
type NoImages struct{}

func (NoImages) FindImage(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: image lookup disabled", common.ErrImageLookup)
}

// SearchFinder queries a Custom Search style JSON API for the first image
// hit.
type SearchFinder struct {
	endpoint string
	key      string
	engineID string
	client   *http.Client
}

func NewSearchFinder(endpoint, key, engineID string, timeout time.Duration) *SearchFinder {
	return &SearchFinder{
		endpoint: endpoint,
		key:      key,
		engineID: engineID,
		client:   &http.Client{Timeout: timeout},
	}
}

type searchResponse struct {
	Items []struct {
		Link string `json:"link"`
	} `json:"items"`
}

func (f *SearchFinder) FindImage(ctx context.Context, name string) (string, error) {
	if name == "" {
		return "", fmt.Errorf("%w: empty name", common.ErrImageLookup)
	}

	q := url.Values{
		"key":        {f.key},
		"cx":         {f.engineID},
		"q":          {name},
		"searchType": {"image"},
		"num":        {"1"},
	}

	var resp searchResponse
	if err := netx.GetJSON(ctx, f.client, f.endpoint+"?"+q.Encode(), nil, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrImageLookup, err)
	}

	for _, it := range resp.Items {
		if it.Link != "" {
			return it.Link, nil
		}
	}
	return "", fmt.Errorf("%w: %w", common.ErrImageLookup, errNoImage)
}

var errNoImage = errors.New("no image found")
