// Package registry implements the RegistryGateway port against a crates.io compatible API.
package registry

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/cenk/backoff"
	"github.com/rs/dnscache"
	circuit "github.com/rubyist/circuitbreaker"
	"go.trai.ch/depclean/internal/core/domain"
	"go.trai.ch/zerr"
	"golang.org/x/sync/singleflight"
)

const (
	dialTimeout       = 30 * time.Second
	defaultRetryDelay = 250 * time.Millisecond
	breakerCooldown   = 30 * time.Second
	maxErrorBody      = 1024
)

// versionsResponse is the body of GET /api/v1/crates/{name}/versions.
type versionsResponse struct {
	Versions []versionInfo `json:"versions"`
}

type versionInfo struct {
	Num       string `json:"num"`
	CreatedAt string `json:"created_at"`
	Downloads uint64 `json:"downloads"`
	Yanked    bool   `json:"yanked"`
}

// permanentError marks a failure that retrying cannot fix and that says nothing about registry health.
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }

func (e *permanentError) Unwrap() error { return e.err }

// Gateway fetches version metadata from the registry.
//
// Concurrent lookups for the same crate share one in-flight request. Nothing is kept once it
// completes. Calls are retried with exponential backoff and each host has its own circuit breaker.
//
// The configured timeout is the budget of one Fetch. It is split evenly between the first
// attempt and every retry, so a hung first attempt still leaves time to retry.
type Gateway struct {
	baseURL        string
	userAgent      string
	client         *http.Client
	retries        int
	retryDelay     time.Duration
	attemptTimeout time.Duration
	threshold      int64

	breakersMu sync.Mutex
	breakers   map[string]*circuit.Breaker

	inflight singleflight.Group
}

// Option configures a Gateway.
type Option func(*Gateway)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(g *Gateway) {
		if c != nil {
			g.client = c
		}
	}
}

// WithRetryDelay sets the initial backoff interval between attempts.
func WithRetryDelay(d time.Duration) Option {
	return func(g *Gateway) {
		if d > 0 {
			g.retryDelay = d
		}
	}
}

// NewGateway creates a Gateway from the run settings.
func NewGateway(settings domain.Settings, opts ...Option) *Gateway {
	timeout := settings.Timeout
	if timeout <= 0 {
		timeout = domain.DefaultTimeout
	}
	retries := max(settings.Retries, 0)

	g := &Gateway{
		baseURL:        strings.TrimSuffix(settings.RegistryURL, "/"),
		userAgent:      settings.UserAgent,
		client:         newHTTPClient(timeout),
		retries:        retries,
		retryDelay:     defaultRetryDelay,
		attemptTimeout: timeout / time.Duration(retries+1),
		threshold:      int64(settings.BreakerThreshold),
		breakers:       make(map[string]*circuit.Breaker),
	}
	if g.threshold < 1 {
		g.threshold = domain.DefaultBreakerThreshold
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// newHTTPClient builds a client whose dialer resolves hosts through a DNS cache.
func newHTTPClient(timeout time.Duration) *http.Client {
	resolver := &dnscache.Resolver{}
	dialer := &net.Dialer{
		Timeout:   dialTimeout,
		KeepAlive: dialTimeout,
	}

	transport := &http.Transport{
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			host, port, err := net.SplitHostPort(addr)
			if err != nil {
				return nil, err
			}
			ips, err := resolver.LookupHost(ctx, host)
			if err != nil {
				return nil, err
			}
			var lastErr error
			for _, ip := range ips {
				conn, err := dialer.DialContext(ctx, network, net.JoinHostPort(ip, port))
				if err == nil {
					return conn, nil
				}
				lastErr = err
			}
			if lastErr == nil {
				lastErr = &net.DNSError{Err: "no addresses", Name: host}
			}
			return nil, lastErr
		},
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
	}

	return &http.Client{Timeout: timeout, Transport: transport}
}

// Fetch returns the registry metadata of one version of a crate.
func (g *Gateway) Fetch(ctx context.Context, name, version string) (*domain.VersionMetadata, error) {
	versions, err := g.versions(ctx, name)
	if err != nil {
		return nil, err
	}

	info, ok := versions[version]
	if !ok {
		notFound := zerr.With(domain.ErrVersionNotFound, "crate", name)
		return nil, zerr.With(notFound, "version", version)
	}
	return toMetadata(name, info)
}

func toMetadata(name string, info versionInfo) (*domain.VersionMetadata, error) {
	v, err := domain.ParseVersion(info.Num)
	if err != nil {
		return nil, zerr.With(err, "crate", name)
	}

	publishedAt, err := time.Parse(time.RFC3339, info.CreatedAt)
	if err != nil {
		tsErr := zerr.Wrap(err, domain.ErrInvalidTimestamp.Error())
		tsErr = zerr.With(tsErr, "crate", name)
		return nil, zerr.With(tsErr, "created_at", info.CreatedAt)
	}

	return &domain.VersionMetadata{
		Version:       v,
		PublishedAt:   publishedAt,
		DownloadCount: info.Downloads,
		IsYanked:      info.Yanked,
	}, nil
}

// versions returns the versions of a crate keyed by version string.
func (g *Gateway) versions(ctx context.Context, name string) (map[string]versionInfo, error) {
	result, err, _ := g.inflight.Do(name, func() (any, error) {
		body, err := g.fetchCrate(ctx, name)
		if err != nil {
			return nil, err
		}

		byVersion := make(map[string]versionInfo, len(body.Versions))
		for _, v := range body.Versions {
			byVersion[v.Num] = v
		}
		return byVersion, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(map[string]versionInfo), nil //nolint:forcetypeassert // only map values are stored
}

// fetchCrate requests the versions list through the host's circuit breaker.
func (g *Gateway) fetchCrate(ctx context.Context, name string) (*versionsResponse, error) {
	endpoint := g.baseURL + "/api/v1/crates/" + url.PathEscape(name) + "/versions"
	host := hostOf(endpoint)
	breaker := g.breaker(host)

	if !breaker.Ready() {
		return nil, unavailable(host, name)
	}

	var (
		body    *versionsResponse
		outcome error
	)
	err := breaker.Call(func() error {
		body, outcome = g.getWithRetry(ctx, endpoint)
		var perm *permanentError
		if errors.As(outcome, &perm) {
			return nil
		}
		return outcome
	}, 0)
	if errors.Is(err, circuit.ErrBreakerOpen) {
		return nil, unavailable(host, name)
	}
	if err != nil {
		return nil, zerr.With(err, "crate", name)
	}

	var perm *permanentError
	if errors.As(outcome, &perm) {
		return nil, zerr.With(perm.err, "crate", name)
	}
	return body, nil
}

// retryPolicy allows g.retries extra attempts. WithMaxRetries treats zero as unlimited,
// so zero retries maps to StopBackOff.
func (g *Gateway) retryPolicy(ctx context.Context) backoff.BackOff {
	if g.retries == 0 {
		return backoff.WithContext(&backoff.StopBackOff{}, ctx)
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = g.retryDelay
	policy.MaxInterval = 10 * g.retryDelay
	policy.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(g.retries)), ctx)
}

// getWithRetry performs the request, retrying transport failures, 429 and 5xx responses.
func (g *Gateway) getWithRetry(ctx context.Context, endpoint string) (*versionsResponse, error) {
	var (
		body *versionsResponse
		perm error
	)
	err := backoff.Retry(func() error {
		resp, err := g.get(ctx, endpoint)
		if err == nil {
			body = resp
			return nil
		}
		var permErr *permanentError
		if errors.As(err, &permErr) {
			perm = err
			return nil
		}
		return err
	}, g.retryPolicy(ctx))
	if err != nil {
		return nil, err
	}
	if perm != nil {
		return nil, perm
	}
	return body, nil
}

// get performs a single request within the per-attempt budget.
func (g *Gateway) get(ctx context.Context, endpoint string) (*versionsResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, g.attemptTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, http.NoBody)
	if err != nil {
		reqErr := zerr.With(zerr.Wrap(err, domain.ErrRegistryRequest.Error()), "url", endpoint)
		return nil, &permanentError{err: reqErr}
	}
	req.Header.Set("User-Agent", g.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrRegistryRequest.Error()), "url", endpoint)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	switch {
	case resp.StatusCode == http.StatusOK:
	case resp.StatusCode == http.StatusNotFound:
		return nil, &permanentError{err: zerr.With(domain.ErrVersionNotFound, "url", endpoint)}
	case resp.StatusCode == http.StatusTooManyRequests, resp.StatusCode >= http.StatusInternalServerError:
		return nil, statusError(resp, endpoint)
	default:
		return nil, &permanentError{err: statusError(resp, endpoint)}
	}

	var body versionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		decodeErr := zerr.With(zerr.Wrap(err, domain.ErrRegistryDecode.Error()), "url", endpoint)
		return nil, &permanentError{err: decodeErr}
	}
	return &body, nil
}

func statusError(resp *http.Response, endpoint string) error {
	snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	statusErr := zerr.With(domain.ErrRegistryStatus, "status_code", resp.StatusCode)
	statusErr = zerr.With(statusErr, "url", endpoint)
	if body := strings.TrimSpace(string(snippet)); body != "" {
		statusErr = zerr.With(statusErr, "body", body)
	}
	return statusErr
}

func unavailable(host, name string) error {
	openErr := zerr.With(domain.ErrRegistryUnavailable, "host", host)
	openErr = zerr.With(openErr, "crate", name)
	return zerr.With(openErr, "reason", "circuit open")
}

// breaker returns the circuit breaker of a host, creating it on first use.
func (g *Gateway) breaker(host string) *circuit.Breaker {
	g.breakersMu.Lock()
	defer g.breakersMu.Unlock()

	if b, ok := g.breakers[host]; ok {
		return b
	}

	cooldown := backoff.NewExponentialBackOff()
	cooldown.InitialInterval = breakerCooldown
	cooldown.MaxInterval = 5 * time.Minute
	cooldown.Multiplier = 2.0
	cooldown.Reset()

	b := circuit.NewBreakerWithOptions(&circuit.Options{
		BackOff:    cooldown,
		ShouldTrip: circuit.ConsecutiveTripFunc(g.threshold),
	})
	g.breakers[host] = b
	return b
}

// BreakerStates reports "open" or "closed" for every host contacted so far.
func (g *Gateway) BreakerStates() map[string]string {
	g.breakersMu.Lock()
	defer g.breakersMu.Unlock()

	states := make(map[string]string, len(g.breakers))
	for host, b := range g.breakers {
		if b.Tripped() {
			states[host] = "open"
		} else {
			states[host] = "closed"
		}
	}
	return states
}

func hostOf(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" {
		return rawURL
	}
	return parsed.Host
}
