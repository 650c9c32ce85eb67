package espn

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/gamewatchr/internal/domain/league"
	"github.com/riskibarqy/gamewatchr/internal/domain/team"
	"github.com/riskibarqy/gamewatchr/internal/platform/logging"
	"github.com/riskibarqy/gamewatchr/internal/platform/resilience"
	"github.com/riskibarqy/gamewatchr/internal/usecase"
	"github.com/valyala/fasthttp"
)

const (
	defaultBaseURL      = "https://site.api.espn.com/apis/site/v2/sports"
	defaultUserAgent    = "GameWatchr/1.0"
	defaultTimeout      = 8 * time.Second
	defaultMaxBodyBytes = 8 << 20
)

var errFeedTransient = crerr.New("team feed transient failure")

type ClientConfig struct {
	HTTPClient     *fasthttp.Client
	BaseURL        string
	UserAgent      string
	Timeout        time.Duration
	MaxBodyBytes   int
	Logger         *logging.Logger
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Client fetches league rosters from the public sports feed and normalizes them.
// Each feed path has its own circuit breaker so one failing league never
// rejects requests for another.
type Client struct {
	httpClient *fasthttp.Client
	baseURL    string
	userAgent  string
	timeout    time.Duration
	logger     *logging.Logger
	flight     resilience.SingleFlight

	breakerCfg resilience.CircuitBreakerConfig
	breakersMu sync.Mutex
	breakers   map[string]*resilience.CircuitBreaker
}

func NewClient(cfg ClientConfig) *Client {
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = defaultMaxBodyBytes
	}

	// A caller supplied client keeps its own MaxResponseBodySize.
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &fasthttp.Client{
			MaxConnsPerHost:     100,
			ReadTimeout:         timeout,
			WriteTimeout:        timeout,
			MaxIdleConnDuration: time.Minute,
			MaxResponseBodySize: maxBody,
		}
	}

	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	userAgent := strings.TrimSpace(cfg.UserAgent)
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	return &Client{
		httpClient: httpClient,
		baseURL:    baseURL,
		userAgent:  userAgent,
		timeout:    timeout,
		logger:     logger,
		breakerCfg: cfg.CircuitBreaker,
		breakers:   make(map[string]*resilience.CircuitBreaker),
	}
}

// breakerFor returns the breaker of one feed path, creating it on first use.
// A disabled config yields nil, which admits every call.
func (c *Client) breakerFor(path string) *resilience.CircuitBreaker {
	if !c.breakerCfg.Enabled {
		return nil
	}
	c.breakersMu.Lock()
	defer c.breakersMu.Unlock()

	b, ok := c.breakers[path]
	if !ok {
		b = resilience.NewCircuitBreakerFromConfig(c.breakerCfg.WithTransitionLog("espn:"+path, c.logger))
		c.breakers[path] = b
	}
	return b
}

// FetchTeams performs one round-trip for the league and normalizes the payload.
// Only transport failures are returned; a malformed payload yields no teams.
func (c *Client) FetchTeams(ctx context.Context, leagueID string, locator league.FeedLocator) ([]team.Team, error) {
	if locator.IsZero() {
		return nil, fmt.Errorf("%w: league %s has no feed locator", usecase.ErrInvalidInput, leagueID)
	}

	raw, err := c.fetch(ctx, locator)
	if err != nil {
		return nil, err
	}

	teams := NormalizeTeams(leagueID, raw)
	if len(teams) == 0 {
		c.logger.DebugContext(ctx, "feed payload has no teams", "league_id", leagueID, "feed_path", locator.Path())
	}
	return teams, nil
}

func (c *Client) fetch(ctx context.Context, locator league.FeedLocator) ([]byte, error) {
	path := locator.Path()
	fullURL := c.baseURL + "/" + path + "/teams"
	breaker := c.breakerFor(path)

	var raw []byte
	err := breaker.Guard(func() error {
		body, err := c.sharedGet(ctx, fullURL)
		raw = body
		return err
	}, isFeedCircuitFailure)
	if stderrors.Is(err, resilience.ErrCircuitOpen) {
		c.logger.WarnContext(ctx, "feed circuit breaker rejected request", "feed_path", path, "state", breaker.State())
		return nil, fmt.Errorf("%w: team feed is temporarily unavailable", usecase.ErrDependencyUnavailable)
	}
	if err != nil {
		return nil, err
	}
	return raw, nil
}

// sharedGet joins concurrent callers of the same URL onto one request. The
// request runs on the client timeout, not on any caller's context; each caller
// stops waiting when its own ctx ends.
func (c *Client) sharedGet(ctx context.Context, fullURL string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, callerAbandoned(err)
	}

	results := c.flight.DoChan(fullURL, func() (any, error) {
		return c.executeRequest(time.Now().Add(c.timeout), fullURL)
	})
	select {
	case <-ctx.Done():
		return nil, callerAbandoned(ctx.Err())
	case res := <-results:
		if res.Err != nil {
			return nil, res.Err
		}
		body, ok := res.Val.([]byte)
		if !ok {
			return nil, fmt.Errorf("unexpected response payload type %T", res.Val)
		}
		return body, nil
	}
}

// callerAbandoned counts an expired deadline against the feed; an explicit
// cancel does not.
func callerAbandoned(err error) error {
	if stderrors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: %v", usecase.ErrDependencyUnavailable, errFeedTransient, err)
	}
	return fmt.Errorf("%w: %v", usecase.ErrDependencyUnavailable, err)
}

func (c *Client) executeRequest(deadline time.Time, fullURL string) ([]byte, error) {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(fullURL)
	req.Header.SetMethod(fasthttp.MethodGet)
	req.Header.Set("Accept", "application/json")
	req.Header.SetUserAgent(c.userAgent)

	if err := c.httpClient.DoDeadline(req, resp, deadline); err != nil {
		return nil, fmt.Errorf("%w: %w: send request: %v", usecase.ErrDependencyUnavailable, errFeedTransient, err)
	}

	status := resp.StatusCode()
	if status < fasthttp.StatusOK || status >= fasthttp.StatusMultipleChoices {
		if isRetryableStatus(status) {
			return nil, fmt.Errorf("%w: %w: feed responded with status %d", usecase.ErrDependencyUnavailable, errFeedTransient, status)
		}
		return nil, fmt.Errorf("%w: feed responded with status %d", usecase.ErrDependencyUnavailable, status)
	}

	body := resp.Body()
	out := make([]byte, len(body))
	copy(out, body)
	return out, nil
}

func isFeedCircuitFailure(err error) bool {
	if err == nil {
		return false
	}
	return stderrors.Is(err, errFeedTransient)
}

func isRetryableStatus(code int) bool {
	return code == fasthttp.StatusTooManyRequests || code >= fasthttp.StatusInternalServerError
}
