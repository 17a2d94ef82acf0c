package api

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/ka2n/yure/log"
	"github.com/morikuni/failure/v2"
)

// Client performs the single GET against the event service.
// No timeout is set on the underlying http.Client; the transport default applies.
type Client struct {
	httpClient *http.Client
}

// NewClient creates a client whose requests are logged at debug level
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Transport: log.Transport()},
	}
}

// NewClientWithHTTP creates a client on top of the given http.Client
func NewClientWithHTTP(c *http.Client) *Client {
	return &Client{httpClient: c}
}

// Fetch issues a GET for rawURL and returns the body unmodified.
// Failures carry ErrConnection or ErrProtocol and never include the body.
func (c *Client) Fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", failure.New(ErrConnection,
			failure.Message("Failed to build earthquake request"),
			failure.Context{"url": rawURL, "cause": err.Error()},
		)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", failure.New(ErrConnection,
			failure.Message("Failed to reach the earthquake service"),
			failure.Context{"url": rawURL, "cause": err.Error()},
		)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", failure.New(ErrProtocol,
			failure.Message("Earthquake service returned an error status"),
			failure.Context{"url": rawURL, "status": strconv.Itoa(resp.StatusCode)},
		)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", failure.New(ErrConnection,
			failure.Message("Failed to read the earthquake response"),
			failure.Context{"url": rawURL, "cause": err.Error()},
		)
	}

	return string(body), nil
}

// IsFetchFailure reports whether err is a connection or protocol failure
func IsFetchFailure(err error) bool {
	return failure.Is(err, ErrConnection, ErrProtocol)
}
