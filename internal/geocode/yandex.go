// Package geocode talks to the external geocoding provider.
package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"foodcart-matching-service/internal/domain"
)

const defaultBaseURL = "https://geocode-maps.yandex.ru/1.x"

type geocodeResponse struct {
	Response struct {
		GeoObjectCollection struct {
			FeatureMember []struct {
				GeoObject struct {
					Point struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// YandexClient resolves addresses through the Yandex geocoding HTTP API.
//
// Every failure mode (HTTP error status, timeout, connection failure, empty
// or malformed payload) collapses into a plain "unresolved" answer. One
// request per lookup, no retry, no backoff: the caller's cache records the
// failure and never asks again.
type YandexClient struct {
	session *http.Client
	apiKey  string
	baseURL string
}

func NewYandexClient(apiKey string) (*YandexClient, error) {
	if apiKey == "" {
		return nil, errors.New("geocoder api key is empty")
	}

	return &YandexClient{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
	}, nil
}

// NewYandexClientWithBaseURL overrides the provider endpoint, for tests.
func NewYandexClientWithBaseURL(apiKey, baseURL string) (*YandexClient, error) {
	c, err := NewYandexClient(apiKey)
	if err != nil {
		return nil, err
	}
	c.baseURL = baseURL
	return c, nil
}

// Lookup issues a single geocoding request for the address and returns the
// provider's first (most relevant) result.
func (c *YandexClient) Lookup(ctx context.Context, address string) (domain.Coordinates, bool) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return domain.Coordinates{}, false
	}

	q := req.URL.Query()
	q.Set("geocode", address)
	q.Set("apikey", c.apiKey)
	q.Set("format", "json")
	req.URL.RawQuery = q.Encode()

	resp, err := c.session.Do(req)
	if err != nil {
		return domain.Coordinates{}, false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, false
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, false
	}

	found := decoded.Response.GeoObjectCollection.FeatureMember
	if len(found) == 0 {
		return domain.Coordinates{}, false
	}

	// The provider ranks results by relevance; only the first one matters.
	coords, ok := parsePos(found[0].GeoObject.Point.Pos)
	if !ok {
		return domain.Coordinates{}, false
	}

	return coords, true
}

// parsePos parses the provider's space-separated "longitude latitude" pair.
// A malformed pair is a data problem on the provider side and reads as
// unresolved, not as a program error.
func parsePos(pos string) (domain.Coordinates, bool) {
	parts := strings.Fields(pos)
	if len(parts) != 2 {
		return domain.Coordinates{}, false
	}

	lon, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.Coordinates{}, false
	}
	lat, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.Coordinates{}, false
	}

	return domain.Coordinates{Lon: lon, Lat: lat}, true
}
