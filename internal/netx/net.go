// Package netx wraps the small amount of HTTP plumbing shared by the
// outbound clients: recipe generator, image search and the chat
// completion API.
package netx

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
)

const maxBodySize = 4 << 20

// StatusError is returned when the remote side answered with a non-2xx code.
type StatusError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request failed: %s; body: %s", e.Status, e.Body)
}

// Do executes req and returns the response body. Any non-2xx status becomes
// a *StatusError carrying a trimmed copy of the body.
func Do(client *http.Client, req *http.Request) ([]byte, error) {
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b := strings.TrimSpace(string(body))
		if len(b) > 512 {
			b = b[:512]
		}
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status, Body: b}
	}
	return body, nil
}

// GetJSON issues a GET and decodes the JSON response into out.
func GetJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	copyHeader(req.Header, header)
	req.Header.Set("Accept", "application/json")

	return doJSON(client, req, out)
}

// PostJSON marshals in, POSTs it and decodes the JSON response into out.
// A nil out discards the body.
func PostJSON(ctx context.Context, client *http.Client, endpoint string, header http.Header, in, out any) error {
	payload, err := json.Marshal(in)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	copyHeader(req.Header, header)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	return doJSON(client, req, out)
}

// IsTransient reports whether err is worth retrying: transport failures and
// 5xx answers are, anything else is not. Context cancellation never is.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}

	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode >= 500
	}

	var ne net.Error
	if errors.As(err, &ne) {
		return true
	}

	var ue *url.Error
	return errors.As(err, &ue)
}

func doJSON(client *http.Client, req *http.Request, out any) error {
	body, err := Do(client, req)
	if err != nil {
		return err
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func copyHeader(dst, src http.Header) {
	for k, vs := range src {
		for _, v := range vs {
			dst.Add(k, v)
		}
	}
}
