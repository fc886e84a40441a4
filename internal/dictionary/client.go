package dictionary

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/avast/retry-go"
	"github.com/go-resty/resty/v2"

	"github.com/worddiary/worddiary/internal/word"
)

// Client fetches definitions from a dictionaryapi.dev compatible endpoint.
type Client struct {
	endpoint  string
	fileCache *FileCache
	http      *resty.Client
}

func NewClient(endpoint, cacheDirectory string) *Client {
	return &Client{
		endpoint:  endpoint,
		fileCache: NewFileCache(cacheDirectory),
		http:      resty.New().SetTimeout(10 * time.Second),
	}
}

func (c *Client) lookupAPI(ctx context.Context, text string) ([]byte, error) {
	var body []byte
	err := retry.Do(
		func() error {
			res, err := c.http.R().
				SetContext(ctx).
				Get(fmt.Sprintf("%s/%s", c.endpoint, url.PathEscape(text)))
			if err != nil {
				return fmt.Errorf("client.R().Get > %w", err)
			}
			if res.StatusCode() == http.StatusNotFound {
				return retry.Unrecoverable(fmt.Errorf("no definition found for %q", text))
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
		return nil, err
	}
	return body, nil
}

// Lookup returns a new diary entry for the given text, built from the first
// API result. The raw response is cached on disk per word.
func (c *Client) Lookup(ctx context.Context, text string) (word.Word, error) {
	contents, err := c.fileCache.cache(text, func() ([]byte, error) {
		return c.lookupAPI(ctx, text)
	})
	if err != nil {
		return word.Word{}, fmt.Errorf("fileCache.cache > %w", err)
	}

	var entries []Entry
	if err := json.Unmarshal(contents, &entries); err != nil {
		return word.Word{}, fmt.Errorf("json.Unmarshal > %w", err)
	}
	if len(entries) == 0 {
		return word.Word{}, fmt.Errorf("empty dictionary response for %q", text)
	}

	entry := entries[0]
	senses := entry.ToSenses()
	if len(senses) == 0 {
		return word.Word{}, fmt.Errorf("no usable definitions for %q", text)
	}

	result := word.New(entry.Word, senses)
	result.Phonetic = entry.phonetic()
	return result, nil
}
