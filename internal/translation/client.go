// Package translation provides the translate-service glue and the diary
// backfill that fills missing definition translations.
package translation

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"
)

// Client translates short texts through the public Google translate endpoint.
type Client struct {
	endpoint       string
	targetLanguage string
	http           *resty.Client
}

func NewClient(endpoint, targetLanguage string) *Client {
	return &Client{
		endpoint:       endpoint,
		targetLanguage: targetLanguage,
		http:           resty.New().SetTimeout(10 * time.Second),
	}
}

// Translate returns the translated text. The endpoint answers with a nested
// array where the translation sits at [0][0][0].
func (c *Client) Translate(ctx context.Context, text string) (string, error) {
	var body []byte
	err := retry.Do(
		func() error {
			res, err := c.http.R().
				SetContext(ctx).
				SetQueryParams(map[string]string{
					"client": "gtx",
					"sl":     "en",
					"tl":     c.targetLanguage,
					"dt":     "t",
					"q":      text,
				}).
				Get(c.endpoint)
			if err != nil {
				return fmt.Errorf("client.R().Get > %w", err)
			}
			if res.StatusCode() != http.StatusOK {
				return fmt.Errorf("status code: %d, body: %s", res.StatusCode(), string(res.Body()))
			}
			body = res.Body()
			return nil
		},
		retry.Attempts(3),
		retry.Delay(500*time.Millisecond),
		retry.Context(ctx),
	)
	if err != nil {
		return "", err
	}

	return parseTranslation(body)
}

func parseTranslation(body []byte) (string, error) {
	var data []any
	if err := json.Unmarshal(body, &data); err != nil {
		return "", fmt.Errorf("json.Unmarshal > %w", err)
	}

	segments, ok := first(data).([]any)
	if !ok {
		return "", fmt.Errorf("unexpected translation response shape")
	}
	segment, ok := first(segments).([]any)
	if !ok {
		return "", fmt.Errorf("unexpected translation response shape")
	}
	translated, ok := first(segment).(string)
	if !ok || translated == "" {
		return "", fmt.Errorf("empty translation in response")
	}
	return translated, nil
}

func first(values []any) any {
	if len(values) == 0 {
		return nil
	}
	return values[0]
}
