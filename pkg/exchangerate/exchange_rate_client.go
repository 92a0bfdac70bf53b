package exchangerate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/allanboury/ao-trading-dasboard/internal/logger"
)

const defaultBaseUrl = "https://v6.exchangerate-api.com"

// Client talks to the exchangerate-api.com v6 endpoint. BaseUrl is
// overridable so tests can point it at a local server.
type Client struct {
	HttpClient *http.Client
	ApiKey     string
	BaseUrl    string
}

type LatestRatesResponse struct {
	Result             string             `json:"result"`
	ErrorType          string             `json:"error-type"`
	BaseCode           string             `json:"base_code"`
	TimeLastUpdateUnix int64              `json:"time_last_update_unix"`
	ConversionRates    map[string]float64 `json:"conversion_rates"`
}

// GetLatestRates fetches the current snapshot of rates quoted against
// base. One call returns every currency the provider knows, which is why
// the dashboard only ever needs a single fetch per session.
func (c Client) GetLatestRates(ctx context.Context, base string) (*LatestRatesResponse, error) {
	baseUrl := c.BaseUrl
	if baseUrl == "" {
		baseUrl = defaultBaseUrl
	}
	url := fmt.Sprintf("%s/v6/%s/latest/%s", baseUrl, c.ApiKey, base)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	response, err := c.HttpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	responseBytes, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, fmt.Errorf("received status code %d and failed to read body: %w", response.StatusCode, err)
	}

	if response.StatusCode != 200 {
		errJson := LatestRatesResponse{}
		err = json.Unmarshal(responseBytes, &errJson)
		if err != nil || errJson.ErrorType == "" {
			return nil, fmt.Errorf("rate request failed with status code %d", response.StatusCode)
		}
		return nil, fmt.Errorf("rate request failed with status code %d: %s", response.StatusCode, errJson.ErrorType)
	}

	var responseJson LatestRatesResponse
	err = json.Unmarshal(responseBytes, &responseJson)
	if err != nil {
		return nil, err
	}
	if responseJson.Result != "success" {
		return nil, fmt.Errorf("rate request failed: %s", responseJson.ErrorType)
	}

	logger.Debug("fetched %d rates against %s", len(responseJson.ConversionRates), responseJson.BaseCode)
	return &responseJson, nil
}
