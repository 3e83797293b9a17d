// Package fundgz fetches intraday fund valuations from fundgz.1234567.com.cn.
//
// The service answers a JSONP payload per fund code:
//
//	jsonpgz({"fundcode":"001186","name":"富国文体健康股票A","jzrq":"2024-05-10","dwjz":"3.6305","gsz":"3.6512","gszzl":"0.57","gztime":"2024-05-13 15:00"});
//
// An unknown fund answers an empty call: "jsonpgz();".
package fundgz

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/fundwatch"
	"github.com/rs/zerolog"
)

// DefaultBaseURL is the public endpoint of the valuation service.
const DefaultBaseURL = "http://fundgz.1234567.com.cn/js/"

// ErrNotFound is returned when the service has no valuation for a fund.
var ErrNotFound = errors.New("fund not found or no valuation available")

// Client fetches valuations. Its zero value uses DefaultBaseURL and
// http.DefaultClient.
type Client struct {
	BaseURL string
	HTTP    *http.Client
	Log     zerolog.Logger
	now     func() time.Time
}

// New returns a Client logging to l.
func New(l zerolog.Logger) *Client {
	return &Client{Log: l}
}

var jsonp = regexp.MustCompile(`(?s)jsonpgz\s*\((.*)\)`)

// payload is the JSON object wrapped in the JSONP call.
type payload struct {
	FundCode string `json:"fundcode"`
	Name     string `json:"name"`
	JZRQ     string `json:"jzrq"`   // reference date
	DWJZ     string `json:"dwjz"`   // reference unit price
	GSZ      string `json:"gsz"`    // estimated unit price
	GSZZL    string `json:"gszzl"`  // estimated change in percent
	GZTime   string `json:"gztime"` // time of the estimate
}

// Valuation implements fundwatch.Valuer.
func (c *Client) Valuation(ctx context.Context, code fundwatch.Code) (fundwatch.Valuation, error) {
	if err := code.Validate(); err != nil {
		return fundwatch.Valuation{}, err
	}
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	now := time.Now
	if c.now != nil {
		now = c.now
	}
	// rt defeats intermediate caches, the estimate changes all day long.
	addr := base + url.PathEscape(string(code)) + ".js?rt=" + strconv.FormatInt(now().UnixMilli(), 10)

	data, err := fundwatch.Get(ctx, c.HTTP, addr)
	if err != nil {
		c.Log.Debug().Err(err).Str("code", string(code)).Msg("valuation request failed")
		return fundwatch.Valuation{}, fmt.Errorf("cannot fetch valuation of %s: %w", code, err)
	}
	v, err := parse(code, data)
	if err != nil {
		return fundwatch.Valuation{}, err
	}
	c.Log.Debug().Str("code", string(code)).Str("dwjz", v.ReferencePrice).Str("gsz", v.Estimate).Msg("valuation")
	return v, nil
}

// parse decodes a JSONP response body.
func parse(code fundwatch.Code, data []byte) (fundwatch.Valuation, error) {
	m := jsonp.FindSubmatch(data)
	if m == nil {
		return fundwatch.Valuation{}, fmt.Errorf("valuation of %s: unexpected response %q", code, truncate(string(data), 64))
	}
	body := strings.TrimSpace(string(m[1]))
	if body == "" {
		return fundwatch.Valuation{}, fmt.Errorf("valuation of %s: %w", code, ErrNotFound)
	}
	var p payload
	if err := json.Unmarshal([]byte(body), &p); err != nil {
		return fundwatch.Valuation{}, fmt.Errorf("valuation of %s: could not decode json: %w", code, err)
	}
	return fundwatch.Valuation{
		Code:           code, // the requested code wins over the payload one
		Name:           p.Name,
		ReferenceDate:  p.JZRQ,
		ReferencePrice: p.DWJZ,
		Estimate:       p.GSZ,
		EstimateChange: p.GSZZL,
		EstimatedAt:    p.GZTime,
	}, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
