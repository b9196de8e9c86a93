package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/pkg/errors"
)

type baseURLGetter interface {
	BaseURL() string
}

// Client fetches the latest rates relative to a base currency from an
// exchangerate-api compatible endpoint (GET {base-url}/{base}).
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ratesResponse struct {
	Base  string             `json:"base"`
	Rates map[string]float64 `json:"rates"`
}

func New(getter baseURLGetter) *Client {
	return &Client{
		baseURL:    getter.BaseURL(),
		httpClient: &http.Client{},
	}
}

func (c *Client) GetRates(ctx context.Context, base string) (map[string]float64, error) {
	url := fmt.Sprintf("%s/%s", c.baseURL, base)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "building rates request")
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "requesting rates")
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, errors.Errorf("rates endpoint returned status %d", res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading rates response")
	}

	rates := ratesResponse{}
	err = json.Unmarshal(body, &rates)
	if err != nil {
		return nil, errors.Wrap(err, "unmarshalling rates response")
	}

	if len(rates.Rates) == 0 {
		return nil, errors.New("rates response contains no rates")
	}

	return rates.Rates, nil
}
