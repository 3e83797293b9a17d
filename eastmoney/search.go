// Package eastmoney searches funds with the eastmoney fund suggestion API.
package eastmoney

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/PaesslerAG/jsonpath"
	"github.com/etnz/fundwatch"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public search endpoint.
const DefaultBaseURL = "https://fundsuggest.eastmoney.com/FundSearch/api/FundSearchAPI.ashx"

// Client searches funds. Its zero value uses DefaultBaseURL and http.DefaultClient.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     zerolog.Logger
}

// New returns a Client whose responses are cached on disk for the day in
// cacheDir (the temp dir if empty).
func New(cacheDir string, l zerolog.Logger) *Client {
	return &Client{HTTP: fundwatch.NewDailyCachingClient(cacheDir), Log: l}
}

// datasPath selects the list of hits in a search response:
//
//	{"ErrCode":0,"Datas":[{"CODE":"001186","NAME":"富国文体健康股票A","CATEGORYDESC":"基金"}]}
const datasPath = "$.Datas"

// Search implements fundwatch.Searcher. Hits are returned in the service
// order, best match first.
func (c *Client) Search(ctx context.Context, query string) ([]fundwatch.SearchResult, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	addr := base + "?m=1&key=" + url.QueryEscape(query)

	data, err := fundwatch.Get(ctx, c.HTTP, addr)
	if err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", query, err)
	}
	results, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("cannot search %q: %w", query, err)
	}
	c.Log.Debug().Str("query", query).Int("hits", len(results)).Msg("search")
	return results, nil
}

// parse extracts search hits from a response body. A response without hits
// is an empty list.
func parse(data []byte) ([]fundwatch.SearchResult, error) {
	var jobj any
	if err := json.Unmarshal(data, &jobj); err != nil {
		return nil, fmt.Errorf("could not decode search json: %w", err)
	}
	jval, err := jsonpath.Get(datasPath, jobj)
	if err != nil {
		// no Datas at all: the service found nothing.
		return nil, nil
	}
	jlist, ok := jval.([]any)
	if !ok {
		return nil, nil
	}
	results := make([]fundwatch.SearchResult, 0, len(jlist))
	for _, item := range jlist {
		jitem, ok := item.(map[string]any)
		if !ok {
			continue
		}
		code, err := fundwatch.ParseCode(str(jitem["CODE"]))
		if err != nil {
			// stocks, managers and companies share the same API, ignore them.
			continue
		}
		results = append(results, fundwatch.SearchResult{
			Code:     code,
			Name:     str(jitem["NAME"]),
			Category: str(jitem["CATEGORYDESC"]),
		})
	}
	return results, nil
}

func str(v any) string {
	s, _ := v.(string)
	return s
}
