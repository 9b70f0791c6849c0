// Package catalog is the client for the provider's JSON content API.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"zee5/internal/config"
	"zee5/internal/httputil"
)

const (
	siteOrigin  = "https://www.zee5.com"
	tokenHeader = "X-ACCESS-TOKEN"
)

// Session is the transport session and access token shared by every call
// of one browsing session. It is passed by value and never mutated.
type Session struct {
	HTTP  *http.Client
	Token string
}

// WithToken returns a copy of the session carrying tok.
func (s Session) WithToken(tok string) Session {
	s.Token = tok
	return s
}

// Options configures a Client.
type Options struct {
	Endpoints         config.Endpoints
	Platform          string
	Country           string
	Languages         string // comma separated
	SearchLanguages   string // comma separated
	PageSize          int
	RequestsPerSecond float64
}

// OptionsFromConfig derives client options from the application config.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Endpoints:         cfg.Endpoints,
		Platform:          cfg.Platform,
		Country:           cfg.Country,
		Languages:         cfg.LanguageParam(),
		SearchLanguages:   strings.Join(cfg.SearchLanguages, ","),
		PageSize:          cfg.PageSize,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}
}

// Client issues authenticated GET requests against the content API.
type Client struct {
	opts    Options
	limiter *rate.Limiter
}

// New creates a catalog client.
func New(opts Options) *Client {
	limiter := rate.NewLimiter(rate.Inf, 0)
	if opts.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(opts.RequestsPerSecond), 1)
	}
	return &Client{opts: opts, limiter: limiter}
}

// PageSize returns the number of items requested per page.
func (c *Client) PageSize() int {
	return c.opts.PageSize
}

// PlatformToken fetches a fresh session access token for the configured platform.
func (c *Client) PlatformToken(ctx context.Context, sess Session) (string, error) {
	q := url.Values{}
	q.Set("platform_name", c.opts.Platform)
	u := httputil.BuildURL(c.opts.Endpoints.UserAction, "token", "platform_tokens.php") + "?" + q.Encode()

	var resp platformToken
	if err := c.get(ctx, sess, "platform token", u, &resp); err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &TransportError{Kind: ErrDecode, Op: "platform token", URL: u, Err: errors.New("empty token")}
	}
	return resp.Token, nil
}

// VideoToken fetches the short-lived token that gates stream URLs.
func (c *Client) VideoToken(ctx context.Context, sess Session) (string, error) {
	u := httputil.BuildURL(c.opts.Endpoints.UserAction, "tokennd", "")

	var resp videoToken
	if err := c.get(ctx, sess, "video token", u, &resp); err != nil {
		return "", err
	}
	if resp.VideoToken == "" {
		return "", &TransportError{Kind: ErrDecode, Op: "video token", URL: u, Err: errors.New("empty video token")}
	}
	return resp.VideoToken, nil
}

// Collections returns the top-level collection map (name to id) for the
// configured platform.
func (c *Client) Collections(ctx context.Context, sess Session) (map[string]string, error) {
	q := url.Values{}
	q.Set("lang", "en")
	q.Set("ccode", c.opts.Country)
	u := httputil.BuildURL(c.opts.Endpoints.B2B, "front", "countrylist.php") + "?" + q.Encode()

	var resp []countryEntry
	if err := c.get(ctx, sess, "country collections", u, &resp); err != nil {
		return nil, err
	}
	if len(resp) == 0 {
		return nil, &TransportError{Kind: ErrDecode, Op: "country collections", URL: u, Err: errors.New("empty country list")}
	}
	collections, ok := resp[0].Collections[c.opts.Platform]
	if !ok {
		return nil, &TransportError{
			Kind: ErrDecode,
			Op:   "country collections",
			URL:  u,
			Err:  fmt.Errorf("no collections for platform %q", c.opts.Platform),
		}
	}
	return collections, nil
}

// Collection fetches one page of a top-level collection. Buckets carry at
// most one preview item each.
func (c *Client) Collection(ctx context.Context, sess Session, id string, page int) (*Collection, error) {
	q := c.pageQuery(page)
	q.Set("item_limit", "1")
	return c.collection(ctx, sess, "collection", id, q)
}

// Bucket fetches one page of a bucket's items.
func (c *Client) Bucket(ctx context.Context, sess Session, id string, page int) (*Collection, error) {
	q := c.pageQuery(page)
	q.Set("translation", "en")
	return c.collection(ctx, sess, "bucket", id, q)
}

// Show fetches a TV show with its seasons.
func (c *Client) Show(ctx context.Context, sess Session, id string) (*Show, error) {
	if err := httputil.ValidateID(id); err != nil {
		return nil, fmt.Errorf("invalid show ID: %w", err)
	}
	u := httputil.BuildURL(c.opts.Endpoints.API, "content", "tvshow", id)

	var show Show
	if err := c.get(ctx, sess, "show", u, &show); err != nil {
		return nil, err
	}
	return &show, nil
}

// Season fetches a season with its episodes.
func (c *Client) Season(ctx context.Context, sess Session, id string) (*Season, error) {
	if err := httputil.ValidateID(id); err != nil {
		return nil, fmt.Errorf("invalid season ID: %w", err)
	}
	u := httputil.BuildURL(c.opts.Endpoints.API, "content", "season", id)

	var season Season
	if err := c.get(ctx, sess, "season", u, &season); err != nil {
		return nil, err
	}
	return &season, nil
}

// Details fetches the full record of a playable asset.
func (c *Client) Details(ctx context.Context, sess Session, id string) (*Details, error) {
	if err := httputil.ValidateID(id); err != nil {
		return nil, fmt.Errorf("invalid content ID: %w", err)
	}
	q := url.Values{}
	q.Set("translation", "en")
	u := httputil.BuildURL(c.opts.Endpoints.API, "content", "details", id) + "?" + q.Encode()

	var details Details
	if err := c.get(ctx, sess, "details", u, &details); err != nil {
		return nil, err
	}
	return &details, nil
}

// AutoSuggest runs a catalog search. Results are limited to one page.
func (c *Client) AutoSuggest(ctx context.Context, sess Session, query string) (*SearchResult, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(c.opts.PageSize))
	q.Set("translation", "en")
	q.Set("languages", c.opts.SearchLanguages)
	q.Set("country", c.opts.Country)
	q.Set("version", "1")
	u := httputil.BuildURL(c.opts.Endpoints.API, "content", "getContent", "autoSuggest") + "?" + q.Encode()

	var result SearchResult
	if err := c.get(ctx, sess, "autosuggest", u, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) pageQuery(page int) url.Values {
	if page < 1 {
		page = 1
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(c.opts.PageSize))
	q.Set("languages", c.opts.Languages)
	q.Set("version", "3")
	return q
}

func (c *Client) collection(ctx context.Context, sess Session, op, id string, q url.Values) (*Collection, error) {
	if err := httputil.ValidateID(id); err != nil {
		return nil, fmt.Errorf("invalid %s ID: %w", op, err)
	}
	u := httputil.BuildURL(c.opts.Endpoints.API, "content", "collection", id) + "?" + q.Encode()

	var coll Collection
	if err := c.get(ctx, sess, op, u, &coll); err != nil {
		return nil, err
	}
	return &coll, nil
}

// get performs one authenticated request and decodes the JSON body into v.
func (c *Client) get(ctx context.Context, sess Session, op, u string, v any) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return &TransportError{Kind: ErrRequest, Op: op, URL: u, Err: err}
	}

	header := httputil.BrowserHeaders(siteOrigin)
	if sess.Token != "" {
		header.Set(tokenHeader, sess.Token)
	}

	logrus.WithField("url", u).Info("making request")

	client := sess.HTTP
	if client == nil {
		client = httputil.NewClient()
	}

	body, err := httputil.GetBody(ctx, client, u, header)
	if err != nil {
		var statusErr *httputil.StatusError
		if errors.As(err, &statusErr) {
			kind := ErrStatus
			if statusErr.Code == http.StatusUnauthorized || statusErr.Code == http.StatusForbidden {
				kind = ErrUnauthorized
			}
			return &TransportError{Kind: kind, Op: op, URL: u, Err: err}
		}
		return &TransportError{Kind: ErrRequest, Op: op, URL: u, Err: err}
	}

	if err := json.Unmarshal(body, v); err != nil {
		return &TransportError{Kind: ErrDecode, Op: op, URL: u, Err: err}
	}
	return nil
}
