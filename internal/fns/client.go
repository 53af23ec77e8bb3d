package fns

import (
	"context"
	"strings"

	"receipt_check/internal/config"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

const (
	defaultBaseURL = "https://proverkacheka.nalog.ru:9999"
	ticketPath     = "/v1/inns/*/kkts/*/fss/{fn}/tickets/{fd}"
)

// staticHeaders identify the client as the official mobile app. The values,
// including the misspelled OS name, are what the service accepts.
// Accept-Encoding is left to the transport so gzip bodies are inflated.
func staticHeaders() map[string]string {
	return map[string]string{
		"Device-OS":     "Adnroid 5.1",
		"Version":       "2",
		"ClientVersion": "1.4.4.1",
		"Connection":    "Keep-Alive",
		"User-Agent":    "okhttp/3.0.1",
	}
}

func requestHeaders(creds Credentials) map[string]string {
	headers := staticHeaders()
	headers["Device-Id"] = creds.DeviceID
	return headers
}

type Client struct {
	http   *resty.Client
	logger *zap.Logger
}

func NewClient(cfg config.Config, logger *zap.Logger) *Client {
	logger = logger.Named("fns")

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(cfg.Timeout).
		SetLogger(logger.Sugar())

	return &Client{
		http:   httpClient,
		logger: logger,
	}
}

// Close drops idle keep-alive connections.
func (c *Client) Close() {
	c.http.GetClient().CloseIdleConnections()
}

// Lookup performs one lookup on the calling goroutine.
func (c *Client) Lookup(ctx context.Context, params RequestParams) Outcome {
	return c.NewTask(params).Run(ctx)
}

func (c *Client) fetch(ctx context.Context, params RequestParams) Outcome {
	creds := EncodeCredentials(params.Phone, params.Password)

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(requestHeaders(creds)).
		SetAuthScheme("Basic").
		SetAuthToken(creds.AuthToken).
		SetPathParams(params.pathParams()).
		SetQueryParams(params.query()).
		Get(ticketPath)
	if err != nil {
		return transportFailure(err)
	}

	return classifyResponse(resp.StatusCode(), resp.Status(), resp.Body())
}
