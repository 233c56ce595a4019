package refresh

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"github.com/dustin/go-humanize"
	"github.com/mat-sik/domainatrix-go/internal/domain"
	"github.com/mat-sik/domainatrix-go/internal/table"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

var (
	ErrTransport             = errors.New("transport error")
	ErrUnexpectedContentType = errors.New("unexpected content type")
)

const (
	DefaultTimeout = 15 * time.Second
	maxBodyBytes   = 16 << 20
	jsonMediaType  = "application/json"
)

type State int32

const (
	Idle State = iota
	InFlight
)

func (s State) String() string {
	if s == InFlight {
		return "in-flight"
	}
	return "idle"
}

// Surface is the display side the controller locks while a refresh is outstanding.
type Surface interface {
	SetEnabled(enabled bool)
	RefreshCompleted(outcome Outcome)
}

// Dispatcher runs f on the serialized context that owns the display.
type Dispatcher func(f func())

type Response struct {
	Body        []byte
	ContentType string
	StatusCode  int
	Err         error
}

// Outcome summarizes one finished refresh for the display.
type Outcome struct {
	At      time.Time
	Size    int
	Records int
	Err     error
}

type Config struct {
	BaseURL string
	Timeout time.Duration
	Client  *http.Client
	Now     func() time.Time
	Logger  *slog.Logger
}

type Controller struct {
	baseURL  string
	timeout  time.Duration
	client   *http.Client
	now      func() time.Time
	logger   *slog.Logger
	store    *table.Store
	surface  Surface
	dispatch Dispatcher
	inFlight atomic.Bool
	pending  sync.WaitGroup
}

func NewController(cfg Config, store *table.Store, surface Surface, dispatch Dispatcher) *Controller {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	client := cfg.Client
	if client == nil {
		client = NewHTTPClient(timeout)
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Controller{
		baseURL:  cfg.BaseURL,
		timeout:  timeout,
		client:   client,
		now:      now,
		logger:   logger,
		store:    store,
		surface:  surface,
		dispatch: dispatch,
	}
}

// NewHTTPClient returns a client that refuses anything below TLS 1.2.
func NewHTTPClient(timeout time.Duration) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{MinVersion: tls.VersionTLS12}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

func (c *Controller) State() State {
	if c.inFlight.Load() {
		return InFlight
	}
	return Idle
}

// RequestRefresh starts a refresh unless one is already outstanding.
// It returns immediately; the result is applied later through the dispatcher.
func (c *Controller) RequestRefresh(ctx context.Context) bool {
	if !c.inFlight.CompareAndSwap(false, true) {
		c.logger.Debug("Refresh already in flight")
		return false
	}
	c.pending.Add(1)
	c.surface.SetEnabled(false)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	req, err := c.newRequest(ctx)
	if err != nil {
		cancel()
		go c.complete(Response{Err: err})
		return true
	}

	c.logger.Info("Making request", "url", req.URL.String())
	go func() {
		defer cancel()
		c.complete(c.fetch(req))
	}()

	return true
}

// Wait blocks until no refresh is outstanding.
func (c *Controller) Wait() {
	c.pending.Wait()
}

func (c *Controller) complete(res Response) {
	c.dispatch(func() {
		c.OnResponse(res)
	})
}

// OnResponse applies a finished request. It must run on the dispatcher's context.
func (c *Controller) OnResponse(res Response) {
	if !c.inFlight.Load() {
		c.logger.Error("Response without an outstanding refresh")
		return
	}

	err := c.apply(res)
	if err != nil {
		c.logger.Warn("Reply", "size", humanize.Bytes(uint64(len(res.Body))), "status", res.StatusCode, "err", err)
	} else {
		c.logger.Info("Reply", "size", humanize.Bytes(uint64(len(res.Body))), "status", res.StatusCode, "records", c.store.Len())
	}

	c.inFlight.Store(false)
	c.surface.SetEnabled(true)
	c.store.NotifyDataChanged()
	c.surface.RefreshCompleted(Outcome{
		At:      c.now(),
		Size:    len(res.Body),
		Records: c.store.Len(),
		Err:     err,
	})
	c.pending.Done()
}

func (c *Controller) apply(res Response) error {
	if res.Err != nil {
		if errors.Is(res.Err, ErrTransport) {
			return res.Err
		}
		return fmt.Errorf("%w: %w", ErrTransport, res.Err)
	}
	if !strings.HasPrefix(res.ContentType, jsonMediaType) {
		return fmt.Errorf("%w: %q", ErrUnexpectedContentType, res.ContentType)
	}

	records, err := domain.Parse(res.Body)
	if err != nil {
		return err
	}

	c.store.ReplaceAll(records)
	return nil
}

func (c *Controller) newRequest(ctx context.Context) (*http.Request, error) {
	endpoint, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %w", ErrTransport, err)
	}
	endpoint = endpoint.JoinPath("data")

	query := endpoint.Query()
	query.Set("t", strconv.FormatInt(c.now().UTC().Unix(), 10))
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	req.Header.Set("Accept", jsonMediaType)

	return req, nil
}

func (c *Controller) fetch(req *http.Request) Response {
	resp, err := c.client.Do(req)
	if err != nil {
		return Response{Err: fmt.Errorf("%w: %w", ErrTransport, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return Response{StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: read body: %w", ErrTransport, err)}
	}
	if len(body) > maxBodyBytes {
		return Response{StatusCode: resp.StatusCode, Err: fmt.Errorf("%w: body exceeds %s", ErrTransport, humanize.IBytes(maxBodyBytes))}
	}

	return Response{
		Body:        body,
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
}
