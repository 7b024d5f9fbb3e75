package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/go-playground/validator/v10"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"
)

var (
	ErrBufferFull = errors.New("loki: entry buffer is full")
	ErrStopped    = errors.New("loki: pusher is stopped")
)

type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {
	// Url of the loki push endpoint, e.g. https://example-prod.grafana.net/loki/api/v1/push
	Url string `validate:"required,url"`

	// BatchMaxSize is the maximum number of log lines that are sent in one request
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the maximum time an entry waits before its batch is sent
	BatchMaxWait time.Duration `validate:"gte=1"`

	// BufferSize bounds the entries queued between Push and the sending goroutine
	BufferSize int `validate:"gte=1"`

	// Labels that are added to all log lines
	Labels map[string]string

	// TenantKey and TenantValue form an optional tenant header for multi-tenant setups.
	TenantKey   string
	TenantValue string

	// Username and Password enable basic authentication when both are set.
	Username string
	Password string

	Timeout time.Duration
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.BufferSize == 0 {
		cfg.BufferSize = 10 * cfg.BatchMaxSize
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}
}

// Pusher batches log entries and ships them to loki from a single background goroutine.
type Pusher struct {
	config    *Config
	ctx       context.Context
	cancel    context.CancelFunc
	client    *http.Client
	quit      chan struct{}
	entries   chan LogEntry
	waitGroup sync.WaitGroup
	stopOnce  sync.Once
	logsBatch []streamValue
	logger    Logger
}

type LogEntry struct {
	Level     string `json:"level"`
	Message   string `json:"msg"`
	Caller    string `json:"caller,omitempty"`
	ErrorType string `json:"error_type,omitempty"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values []streamValue     `json:"values"`
}

// streamValue is a [timestamp in unix nanoseconds, line] pair.
type streamValue [2]string

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:    &cfg,
		ctx:       ctx,
		cancel:    cancel,
		client:    &http.Client{Timeout: cfg.Timeout},
		quit:      make(chan struct{}),
		entries:   make(chan LogEntry, cfg.BufferSize),
		logsBatch: make([]streamValue, 0, cfg.BatchMaxSize),
		logger:    logger,
	}

	p.waitGroup.Add(1)
	go p.run()
	return p, nil
}

// Push queues an entry without blocking. Entries are dropped with ErrBufferFull while the queue is full.
func (p *Pusher) Push(e LogEntry) error {
	select {
	case <-p.quit:
		return ErrStopped
	default:
	}

	select {
	case p.entries <- e:
		return nil
	default:
		return ErrBufferFull
	}
}

// Stop sends what is buffered and stops the pusher. It is safe to call more than once.
func (p *Pusher) Stop() {
	p.stopOnce.Do(func() {
		close(p.quit)
		p.waitGroup.Wait()
		p.cancel()
	})
}

func (p *Pusher) run() {
	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()
	defer p.waitGroup.Done()

	for {
		select {
		case <-p.ctx.Done():
			return
		case <-p.quit:
			p.drain()
			p.flush()
			return
		case entry := <-p.entries:
			p.add(entry)
		case <-ticker.C:
			p.flush()
		}
	}
}

func (p *Pusher) drain() {
	for {
		select {
		case entry := <-p.entries:
			p.add(entry)
		default:
			return
		}
	}
}

func (p *Pusher) add(entry LogEntry) {
	line, err := json.Marshal(entry)
	if err != nil {
		p.logger.Error("failed to encode log entry", "error", err)
		return
	}
	p.logsBatch = append(p.logsBatch, streamValue{strconv.FormatInt(time.Now().UnixNano(), 10), string(line)})
	if len(p.logsBatch) >= p.config.BatchMaxSize {
		p.flush()
	}
}

func (p *Pusher) flush() {
	if len(p.logsBatch) == 0 {
		return
	}
	if err := p.send(); err != nil {
		p.logger.Error("failed to send logs", "error", err)
	}
	p.logsBatch = p.logsBatch[:0]
}

func (p *Pusher) send() error {
	buf := &bytes.Buffer{}
	gz := gzip.NewWriter(buf)

	if err := json.NewEncoder(gz).Encode(pushRequest{Streams: []stream{{
		Stream: p.config.Labels,
		Values: p.logsBatch,
	}}}); err != nil {
		return err
	}

	if err := gz.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(p.ctx, http.MethodPost, p.config.Url, buf)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	if p.config.TenantKey != "" {
		req.Header.Set(p.config.TenantKey, p.config.TenantValue)
	}

	if p.config.Username != "" && p.config.Password != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("received unexpected response code from Loki: %s, body: %s", resp.Status, string(body))
	}

	return nil
}
