// internal/adapters/directory/client.go
package directory

import (
	"context"
	crand "crypto/rand"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"hotel_match/internal/adapters/observability"
	"hotel_match/internal/domain"
)

const breakerName = "user-directory"

type Client struct {
	base string
	hc   *http.Client
	rl   *rate.Limiter
	cb   *gobreaker.CircuitBreaker[any]
}

func New(base string, rps int) (*Client, error) {
	if base == "" {
		return nil, fmt.Errorf("directory base URL is required")
	}
	if rps <= 0 {
		rps = 5
	}
	observability.SetBreakerState(breakerName, gobreaker.StateClosed)
	cb := gobreaker.NewCircuitBreaker[any](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(c gobreaker.Counts) bool { return c.ConsecutiveFailures >= 5 },
		// a 404 or a canceled caller says nothing about the directory's health
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, domain.ErrNotFound) || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state change")
			observability.SetBreakerState(name, to)
		},
	})
	return &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: 20 * time.Second},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
		cb:   cb,
	}, nil
}

// ---- Public API ----

func (c *Client) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	if err := c.call(ctx, "users", c.base+"/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetUser(ctx context.Context, id int) (domain.User, error) {
	var out domain.User
	if err := c.call(ctx, "user", fmt.Sprintf("%s/users/%d", c.base, id), &out); err != nil {
		return domain.User{}, err
	}
	return out, nil
}

// ---- Internals ----

var (
	ErrNotFound     = fmt.Errorf("directory: %w", domain.ErrNotFound)
	ErrUnauthorized = errors.New("directory: unauthorized")
	ErrForbidden    = errors.New("directory: forbidden")
)

func (c *Client) call(ctx context.Context, endpoint, url string, out any) error {
	start := time.Now()
	status := 0
	_, err := c.cb.Execute(func() (any, error) {
		var err error
		status, err = c.get(ctx, url, out)
		return nil, err
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		status = http.StatusServiceUnavailable
		err = fmt.Errorf("directory unavailable: %w", err)
	}
	observability.ObserveExternal("directory", endpoint, status, time.Since(start))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		log.Warn().Err(err).
			Str("endpoint", endpoint).
			Int("status", status).
			Str("err_type", observability.LabelErr(err)).
			Msg("directory request failed")
	}
	return err
}

// get performs a GET with client-side rate limiting, retries, and JSON decode into out.
// Retries on 429 and transient 5xx, honoring Retry-After when provided.
// It returns the last HTTP status seen (0 when no response arrived).
func (c *Client) get(ctx context.Context, url string, out any) (int, error) {
	if err := c.rl.Wait(ctx); err != nil {
		return 0, err
	}

	var lastErr error
	lastStatus := 0
	for i := 0; i < 4; i++ {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
		if err != nil {
			return 0, err
		}
		req.Header.Set("Accept", "application/json")
		req.Header.Set("User-Agent", "hotel-match/1.0")

		resp, err := c.hc.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			lastErr = err
			if i < 3 && sleepCtx(ctx, backoff(i)) {
				continue
			}
			if ctx.Err() != nil {
				return 0, ctx.Err()
			}
			return 0, lastErr
		}
		lastStatus = resp.StatusCode

		switch resp.StatusCode {
		case http.StatusOK:
			err := json.NewDecoder(resp.Body).Decode(out)
			resp.Body.Close()
			if err != nil {
				return lastStatus, fmt.Errorf("decode %s: %w", url, err)
			}
			return lastStatus, nil

		case http.StatusNotFound:
			resp.Body.Close()
			return lastStatus, ErrNotFound

		case http.StatusUnauthorized:
			resp.Body.Close()
			return lastStatus, ErrUnauthorized

		case http.StatusForbidden:
			resp.Body.Close()
			return lastStatus, ErrForbidden

		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			wait := retryAfter(resp)
			resp.Body.Close()
			if wait == 0 {
				wait = backoff(i)
			}
			lastErr = fmt.Errorf("remote %d", resp.StatusCode)
			if i < 3 && sleepCtx(ctx, wait) {
				continue
			}
			if ctx.Err() != nil {
				return lastStatus, ctx.Err()
			}
			return lastStatus, lastErr

		default:
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
			resp.Body.Close()
			return lastStatus, fmt.Errorf("bad status %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
		}
	}

	return lastStatus, lastErr
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns 200ms doubled per attempt plus up to 50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	return base + time.Duration(0.5*f*float64(base))
}
