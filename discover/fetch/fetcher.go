package fetch

import (
	"context"
	"errors"
	"io"
	"math/rand"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/morikuni/failure/v2"
	"github.com/poliscout/poliscout/log"
)

// Config holds fetcher tunables
type Config struct {
	// MaxAttempts bounds retries per user agent for 429/5xx responses
	MaxAttempts int `validate:"gte=1,lte=10"`

	// BackoffBase is the first exponential backoff delay
	BackoffBase time.Duration `validate:"gt=0"`

	// RetryAfterDefault applies when a 429 carries no usable Retry-After
	RetryAfterDefault time.Duration `validate:"gte=0"`

	// RetryAfterCap bounds server-supplied Retry-After values
	RetryAfterCap time.Duration `validate:"gt=0"`

	// RateInterval is the minimum spacing between requests to one host
	RateInterval time.Duration `validate:"gt=0"`

	// Timeout applies per GET request
	Timeout time.Duration `validate:"gt=0"`

	// HeadTimeout applies per HEAD probe
	HeadTimeout time.Duration `validate:"gt=0"`

	// MaxBodyBytes bounds how much of a response body is read
	MaxBodyBytes int64 `validate:"gt=0"`
}

// DefaultConfig returns production fetch settings
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       3,
		BackoffBase:       500 * time.Millisecond,
		RetryAfterDefault: 5 * time.Second,
		RetryAfterCap:     60 * time.Second,
		RateInterval:      time.Second,
		Timeout:           15 * time.Second,
		HeadTimeout:       5 * time.Second,
		MaxBodyBytes:      2 << 20,
	}
}

// Result is a completed fetch. Status-code handling is the caller's job:
// 4xx/5xx that survived the retry policy come back as an error, anything
// else (including 404) comes back as a Result.
type Result struct {
	Body            []byte
	FinalURL        string
	ContentType     string
	StatusCode      int
	UsedBotAgent    bool
	LocaleCorrected bool
	LocaleFlagged   bool

	retryAfter string
}

// Fetcher performs resilient HTTP retrieval: user-agent negotiation,
// backoff retries, per-host rate limiting, locale-redirect correction and
// login-wall rejection.
type Fetcher struct {
	// Client may be replaced in tests; redirects are followed
	Client *http.Client

	limiter *RateLimiter
	cfg     Config
}

// New creates a fetcher sharing the given process-wide rate limiter
func New(cfg Config, limiter *RateLimiter) *Fetcher {
	return &Fetcher{
		Client:  &http.Client{},
		limiter: limiter,
		cfg:     cfg,
	}
}

// errForbiddenStatus signals a 403 to the user-agent ladder
var errForbiddenStatus = errors.New("forbidden status")

// Fetch retrieves a URL with the full resilience stack. The body of the
// first successful response is returned together with the final URL after
// redirects.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Result, error) {
	if IsBlockedURL(rawURL) {
		return nil, failure.New(ErrInvalidTarget,
			failure.Message("URL matches a login/auth pattern"),
			failure.Context{"url": rawURL},
		)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, failure.New(ErrInvalidTarget,
			failure.Message("URL cannot be parsed"),
			failure.Context{"url": rawURL},
		)
	}

	agents := agentsFor(u.Host)
	for _, agent := range agents {
		res, err := f.fetchWithRetries(ctx, rawURL, agent)
		if errors.Is(err, errForbiddenStatus) {
			log.Debug("403 with current user agent, rotating", "url", rawURL, "bot", agent.IsBot)
			continue
		}
		if err != nil {
			return nil, err
		}

		if hasLoginWall(res.Body) {
			return nil, failure.New(ErrAuthWall,
				failure.Message("page is a login wall"),
				failure.Context{"url": res.FinalURL},
			)
		}

		return f.correctLocale(ctx, res, agent), nil
	}

	return nil, failure.New(ErrForbidden,
		failure.Message("all user agents rejected with 403"),
		failure.Context{"url": rawURL, "agents": strconv.Itoa(len(agents))},
	)
}

// Head issues a single rate-limited HEAD probe. No retries and no user
// agent negotiation; probing is cheap enough to simply fail.
func (f *Fetcher) Head(ctx context.Context, rawURL string) (*Result, error) {
	if IsBlockedURL(rawURL) {
		return nil, failure.New(ErrInvalidTarget,
			failure.Message("URL matches a login/auth pattern"),
			failure.Context{"url": rawURL},
		)
	}

	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return nil, failure.New(ErrInvalidTarget,
			failure.Message("URL cannot be parsed"),
			failure.Context{"url": rawURL},
		)
	}

	if err := f.limiter.Wait(ctx, u.Host); err != nil {
		return nil, failure.New(ErrRequestFailed,
			failure.Message("rate limit wait cancelled"),
			failure.Context{"url": rawURL, "error": err.Error()},
		)
	}

	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.HeadTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodHead, rawURL, nil)
	if err != nil {
		return nil, failure.New(ErrRequestFailed,
			failure.Message("request cannot be built"),
			failure.Context{"url": rawURL, "error": err.Error()},
		)
	}
	setHeaders(req, userAgent{Value: defaultUserAgent})

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, failure.New(ErrRequestFailed,
			failure.Message("HEAD request failed"),
			failure.Context{"url": rawURL, "error": err.Error()},
		)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1024))

	return &Result{
		FinalURL:    resp.Request.URL.String(),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}, nil
}

// fetchWithRetries runs the backoff loop for one user agent. 429 and 5xx
// are retried, 403 is surfaced as errForbiddenStatus so the caller can
// rotate identities, everything else is returned to the caller as-is.
func (f *Fetcher) fetchWithRetries(ctx context.Context, rawURL string, agent userAgent) (*Result, error) {
	u, _ := url.Parse(rawURL)

	var lastStatus int
	for attempt := 0; attempt < f.cfg.MaxAttempts; attempt++ {
		if err := f.limiter.Wait(ctx, u.Host); err != nil {
			return nil, failure.New(ErrRequestFailed,
				failure.Message("rate limit wait cancelled"),
				failure.Context{"url": rawURL, "error": err.Error()},
			)
		}

		res, err := f.doRequest(ctx, rawURL, agent)
		if err != nil {
			return nil, err
		}

		lastStatus = res.StatusCode
		lastAttempt := attempt == f.cfg.MaxAttempts-1
		switch {
		case res.StatusCode == http.StatusTooManyRequests:
			if lastAttempt {
				break
			}
			delay := f.retryAfter(res) + f.backoff(attempt)
			log.Debug("429 received, backing off", "url", rawURL, "delay", delay, "attempt", attempt)
			if err := sleepCtx(ctx, delay); err != nil {
				return nil, failure.New(ErrRateLimited,
					failure.Message("cancelled while waiting out a 429"),
					failure.Context{"url": rawURL},
				)
			}
		case res.StatusCode >= 500:
			if lastAttempt {
				break
			}
			log.Debug("server error, retrying", "url", rawURL, "status", res.StatusCode, "attempt", attempt)
			if err := sleepCtx(ctx, f.backoff(attempt)); err != nil {
				return nil, failure.New(ErrUpstreamServer,
					failure.Message("cancelled while retrying a server error"),
					failure.Context{"url": rawURL},
				)
			}
		case res.StatusCode == http.StatusForbidden:
			return nil, errForbiddenStatus
		default:
			return res, nil
		}
	}

	code := ErrUpstreamServer
	if lastStatus == http.StatusTooManyRequests {
		code = ErrRateLimited
	}
	return nil, failure.New(code,
		failure.Message("retries exhausted"),
		failure.Context{"url": rawURL, "status": strconv.Itoa(lastStatus)},
	)
}

func (f *Fetcher) doRequest(ctx context.Context, rawURL string, agent userAgent) (*Result, error) {
	reqCtx, cancel := context.WithTimeout(ctx, f.cfg.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, failure.New(ErrRequestFailed,
			failure.Message("request cannot be built"),
			failure.Context{"url": rawURL, "error": err.Error()},
		)
	}
	setHeaders(req, agent)

	resp, err := f.Client.Do(req)
	if err != nil {
		return nil, failure.New(ErrRequestFailed,
			failure.Message("GET request failed"),
			failure.Context{"url": rawURL, "error": err.Error()},
		)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.cfg.MaxBodyBytes))
	if err != nil {
		return nil, failure.New(ErrRequestFailed,
			failure.Message("response body cannot be read"),
			failure.Context{"url": rawURL, "error": err.Error()},
		)
	}

	return &Result{
		Body:         body,
		FinalURL:     resp.Request.URL.String(),
		ContentType:  resp.Header.Get("Content-Type"),
		StatusCode:   resp.StatusCode,
		UsedBotAgent: agent.IsBot,
		retryAfter:   resp.Header.Get("Retry-After"),
	}, nil
}

// correctLocale reverses automatic language redirects. If the final URL
// carries a non-English locale segment, English editions are tried in
// order and the first un-localized success replaces the result; otherwise
// the localized result is kept and flagged.
func (f *Fetcher) correctLocale(ctx context.Context, res *Result, agent userAgent) *Result {
	if !IsLocaleMarked(res.FinalURL) {
		return res
	}

	for _, variant := range englishVariants(res.FinalURL) {
		vres, err := f.fetchWithRetries(ctx, variant, agent)
		if err != nil {
			continue
		}
		if vres.StatusCode != http.StatusOK || IsLocaleMarked(vres.FinalURL) || hasLoginWall(vres.Body) {
			continue
		}
		log.Debug("locale redirect corrected", "from", res.FinalURL, "to", vres.FinalURL)
		vres.LocaleCorrected = true
		return vres
	}

	res.LocaleFlagged = true
	return res
}

func (f *Fetcher) retryAfter(res *Result) time.Duration {
	return retryAfterHeader(res.retryAfter, f.cfg.RetryAfterDefault, f.cfg.RetryAfterCap)
}

// retryAfterHeader parses a Retry-After value as delay seconds or an
// HTTP-date, capped to keep a hostile server from stalling a run
func retryAfterHeader(value string, def, limit time.Duration) time.Duration {
	if value == "" {
		return def
	}

	if secs, err := strconv.Atoi(value); err == nil {
		d := time.Duration(secs) * time.Second
		if d < 0 {
			return def
		}
		if d > limit {
			return limit
		}
		return d
	}

	if when, err := http.ParseTime(value); err == nil {
		d := time.Until(when)
		if d < 0 {
			return def
		}
		if d > limit {
			return limit
		}
		return d
	}

	return def
}

func (f *Fetcher) backoff(attempt int) time.Duration {
	d := f.cfg.BackoffBase << attempt
	jitter := time.Duration(rand.Int63n(int64(f.cfg.BackoffBase)/2 + 1))
	return d + jitter
}

func setHeaders(req *http.Request, agent userAgent) {
	req.Header.Set("User-Agent", agent.Value)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
