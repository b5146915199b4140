package backend

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/bnema/lesson-kiosk/internal/domain"
	"github.com/go-resty/resty/v2"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
)

// Config locates the schedule backend. Paths are joined to BaseURL.
type Config struct {
	BaseURL     string
	TimePath    string
	LessonsPath string
	FloorPath   string
	Timeout     time.Duration
	UserAgent   string
	// Location interprets timestamps that carry no zone.
	Location *time.Location
}

// Client talks to the schedule backend. It implements ports.LessonSource and
// ports.TimeSource.
type Client struct {
	http   *resty.Client
	cfg    Config
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Client, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("backend base URL is empty")
	}
	if _, err := url.ParseRequestURI(base); err != nil {
		return nil, fmt.Errorf("invalid backend base URL %q: %w", cfg.BaseURL, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = defaultTimeout
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if logger == nil {
		logger = slog.Default()
	}

	client := resty.New().
		SetBaseURL(base).
		SetTimeout(cfg.Timeout).
		SetResponseBodyLimit(maxBodyBytes).
		SetHeader("Accept", "application/json")
	if cfg.UserAgent != "" {
		client.SetHeader("User-Agent", cfg.UserAgent)
	}

	return &Client{http: client, cfg: cfg, logger: logger}, nil
}

// ServerTime fetches the backend's notion of now.
func (c *Client) ServerTime(ctx context.Context) (time.Time, error) {
	resp, err := c.http.R().SetContext(ctx).Get(c.cfg.TimePath)
	if err := classifyResponse(resp, err, c.cfg.TimePath); err != nil {
		return time.Time{}, err
	}

	return decodeServerTime(resp.Body(), c.cfg.Location)
}

// Lessons fetches the lessons for q: classroom queries are POSTed, floor
// queries are a GET on the building/floor path.
func (c *Client) Lessons(ctx context.Context, q domain.Query) (domain.LessonSet, error) {
	var (
		resp *resty.Response
		err  error
		path string
	)

	switch q.View {
	case domain.ViewFloor:
		path = strings.TrimRight(c.cfg.FloorPath, "/") + "/" + url.PathEscape(q.Building) + "/" + url.PathEscape(q.Floor)
		req := c.http.R().SetContext(ctx)
		if q.Date != "" {
			req.SetQueryParam("date", q.Date)
		}
		resp, err = req.Get(path)
	default:
		path = c.cfg.LessonsPath
		resp, err = c.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			SetBody(lessonsRequest{
				Classroom: q.Classroom,
				Building:  q.Building,
				Date:      q.Date,
				Period:    string(q.Period),
			}).
			Post(path)
	}

	if err := classifyResponse(resp, err, path); err != nil {
		return domain.LessonSet{}, err
	}

	set, err := decodeLessons(resp.Body(), c.cfg.Location)
	if err != nil {
		return domain.LessonSet{}, err
	}

	c.logger.Debug("Fetched lessons", "view", q.View, "path", path, "lessons", len(set.Lessons))
	return set, nil
}

func classifyResponse(resp *resty.Response, err error, path string) error {
	if err != nil {
		return fmt.Errorf("%w: request %s: %w", domain.ErrTransport, path, err)
	}
	if !resp.IsSuccess() {
		return fmt.Errorf("%w: %s returned status %d", domain.ErrTransport, path, resp.StatusCode())
	}

	return nil
}
