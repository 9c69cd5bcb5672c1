package oracle

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	apperr "github.com/chilli-axe/mpc-autofill-sub000/internal/errors"
	"github.com/chilli-axe/mpc-autofill-sub000/internal/model"
)

const metadataCacheSize = 4096

// HTTPOracle talks JSON to a remote search backend. Card metadata is
// immutable per identifier, so it is cached in an LRU; search results are
// not cached here; the reconciler owns result caching and invalidation.
type HTTPOracle struct {
	baseURL string
	client  *http.Client
	cache   *lru.Cache[string, model.CardRecord]
}

// NewHTTPOracle creates an oracle client for the given backend base URL.
func NewHTTPOracle(baseURL string) (*HTTPOracle, error) {
	cache, err := lru.New[string, model.CardRecord](metadataCacheSize)
	if err != nil {
		return nil, err
	}
	return &HTTPOracle{
		baseURL: baseURL,
		client:  &http.Client{Timeout: 30 * time.Second},
		cache:   cache,
	}, nil
}

type searchRequest struct {
	Settings model.SearchSettings `json:"searchSettings"`
	Queries  []model.SearchQuery  `json:"queries"`
}

type searchResponse struct {
	Results model.SearchResults `json:"results"`
}

// Search implements Oracle.
func (o *HTTPOracle) Search(ctx context.Context, settings model.SearchSettings, queries []model.SearchQuery) (model.SearchResults, error) {
	var resp searchResponse
	err := o.post(ctx, "/2/searchResults/", searchRequest{Settings: settings, Queries: queries}, &resp)
	if err != nil {
		return nil, &apperr.OracleError{Operation: "search", Err: err}
	}
	if resp.Results == nil {
		resp.Results = make(model.SearchResults)
	}
	return resp.Results, nil
}

type cardbacksRequest struct {
	Settings model.SearchSettings `json:"searchSettings"`
}

type cardbacksResponse struct {
	Cardbacks []string `json:"cardbacks"`
}

// Cardbacks implements Oracle.
func (o *HTTPOracle) Cardbacks(ctx context.Context, settings model.SearchSettings) ([]string, error) {
	var resp cardbacksResponse
	err := o.post(ctx, "/2/cardbacks/", cardbacksRequest{Settings: settings}, &resp)
	if err != nil {
		return nil, &apperr.OracleError{Operation: "cardbacks", Err: err}
	}
	return resp.Cardbacks, nil
}

type dfcPairsResponse struct {
	DFCPairs map[string]string `json:"dfcPairs"`
}

// DFCPairs implements Oracle.
func (o *HTTPOracle) DFCPairs(ctx context.Context) (map[string]string, error) {
	var resp dfcPairsResponse
	err := o.get(ctx, "/2/DFCPairs/", &resp)
	if err != nil {
		return nil, &apperr.OracleError{Operation: "dfc_pairs", Err: err}
	}
	return resp.DFCPairs, nil
}

type metadataRequest struct {
	Identifiers []string `json:"cardIdentifiers"`
}

type metadataResponse struct {
	Results map[string]model.CardRecord `json:"results"`
}

// Metadata implements Oracle. Records already cached are served locally;
// only cache misses hit the backend.
func (o *HTTPOracle) Metadata(ctx context.Context, identifiers []string) (map[string]model.CardRecord, error) {
	records := make(map[string]model.CardRecord, len(identifiers))
	var missing []string
	for _, id := range identifiers {
		if record, ok := o.cache.Get(id); ok {
			records[id] = record
		} else {
			missing = append(missing, id)
		}
	}
	if len(missing) == 0 {
		return records, nil
	}

	var resp metadataResponse
	err := o.post(ctx, "/2/cards/", metadataRequest{Identifiers: missing}, &resp)
	if err != nil {
		return nil, &apperr.OracleError{Operation: "metadata", Err: err}
	}
	for id, record := range resp.Results {
		o.cache.Add(id, record)
		records[id] = record
	}
	return records, nil
}

func (o *HTTPOracle) post(ctx context.Context, path string, body, out any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return o.do(req, out)
}

func (o *HTTPOracle) get(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, o.baseURL+path, nil)
	if err != nil {
		return err
	}
	return o.do(req, out)
}

func (o *HTTPOracle) do(req *http.Request, out any) error {
	resp, err := o.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("backend returned %s", resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
