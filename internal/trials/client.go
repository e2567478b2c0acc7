package trials

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	apperrors "exmplr-agent/pkg/errors"
)

// searchPath is the filtered trials search endpoint, relative to the API
// base URL.
const searchPath = "/listoftrialswithfilters"

// Trial is a read-only projection of one search hit. Phase and Sponsor are
// optional in the API response and may be empty.
type Trial struct {
	Title      string   `json:"title"`
	Status     string   `json:"status"`
	Phase      string   `json:"phase,omitempty"`
	Conditions []string `json:"conditions"`
	Sponsor    string   `json:"sponsor,omitempty"`
}

// SearchResult holds the hits of one search call and the total reported by
// the API, which can be larger than the page returned.
type SearchResult struct {
	Total  int     `json:"total"`
	Trials []Trial `json:"trials"`
}

// Client issues filtered search requests against the Exmplr trials API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient constructs a search client. The timeout bounds the whole
// request; the upstream API has no streaming responses.
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// searchResponse mirrors the nested Elasticsearch-style envelope returned
// by the trials endpoint.
type searchResponse struct {
	Hits struct {
		Total struct {
			Value int `json:"value"`
		} `json:"total"`
		Hits []struct {
			Source trialSource `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type trialSource struct {
	BriefTitle    string   `json:"brief_title"`
	OverallStatus string   `json:"overall_status"`
	Phase         string   `json:"phase"`
	Condition     []string `json:"condition"`
	LeadSponsor   *struct {
		Agency string `json:"agency"`
	} `json:"lead_sponsor"`
}

// Search posts the complete parameter set to the trials endpoint and decodes
// the hit list. A zero-hit response is a valid result, not an error.
func (c *Client) Search(ctx context.Context, params Params) (*SearchResult, error) {
	body, err := json.Marshal(params)
	if err != nil {
		return nil, apperrors.NewTransportError("encoding search request", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+searchPath, bytes.NewReader(body))
	if err != nil {
		return nil, apperrors.NewTransportError("creating search request", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewTransportError("trials API request", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return nil, apperrors.NewAPIStatusError(resp.StatusCode, string(raw))
	}

	var envelope searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, apperrors.NewTransportError("parsing trials API response", err)
	}

	result := &SearchResult{
		Total:  envelope.Hits.Total.Value,
		Trials: make([]Trial, 0, len(envelope.Hits.Hits)),
	}
	for _, hit := range envelope.Hits.Hits {
		t := Trial{
			Title:      hit.Source.BriefTitle,
			Status:     hit.Source.OverallStatus,
			Phase:      hit.Source.Phase,
			Conditions: hit.Source.Condition,
		}
		if hit.Source.LeadSponsor != nil {
			t.Sponsor = hit.Source.LeadSponsor.Agency
		}
		result.Trials = append(result.Trials, t)
	}
	return result, nil
}
