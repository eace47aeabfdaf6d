// Package loki implements a small batching client for the Loki push API.
package loki

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
)

type Logger interface {
	Error(msg string, args ...any)
}

type Config struct {
	// Url of the loki push endpoint, e.g. https://loki.example.com/loki/api/v1/push
	Url string `validate:"required"`

	// BatchMaxSize is the number of entries that triggers an immediate push.
	BatchMaxSize int `validate:"gte=1"`

	// BatchMaxWait is the longest a batch may sit before being pushed anyway.
	BatchMaxWait time.Duration `validate:"gte=1"`

	// Labels added to the stream of every pushed entry.
	Labels map[string]string

	// Username and Password enable basic auth when set.
	Username string
	Password string
}

func (cfg *Config) setDefaults() {
	if cfg.BatchMaxSize == 0 {
		cfg.BatchMaxSize = 1000
	}
	if cfg.BatchMaxWait == 0 {
		cfg.BatchMaxWait = 5 * time.Second
	}
	if cfg.Labels == nil {
		cfg.Labels = map[string]string{}
	}
}

type LogEntry struct {
	Level   string `json:"level"`
	Message string `json:"msg"`
	Caller  string `json:"caller"`
}

type pushRequest struct {
	Streams []stream `json:"streams"`
}

type stream struct {
	Stream map[string]string `json:"stream"`
	Values [][2]string       `json:"values"`
}

type Pusher struct {
	config    Config
	client    *http.Client
	entries   chan LogEntry
	cancel    context.CancelFunc
	waitGroup sync.WaitGroup
	logger    Logger
}

func New(ctx context.Context, cfg Config, logger Logger) (*Pusher, error) {

	cfg.setDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	p := &Pusher{
		config:  cfg,
		client:  &http.Client{Timeout: 10 * time.Second},
		entries: make(chan LogEntry, cfg.BatchMaxSize),
		cancel:  cancel,
		logger:  logger,
	}

	p.waitGroup.Add(1)
	go p.run(ctx)
	return p, nil
}

// Push enqueues one entry; the batch is flushed on size or timer.
func (p *Pusher) Push(e LogEntry) error {
	p.entries <- e
	return nil
}

// Stop flushes the pending batch and shuts the pusher down.
func (p *Pusher) Stop() {
	p.cancel()
	p.waitGroup.Wait()
}

func (p *Pusher) run(ctx context.Context) {
	defer p.waitGroup.Done()

	batch := make([]LogEntry, 0, p.config.BatchMaxSize)
	ticker := time.NewTicker(p.config.BatchMaxWait)
	defer ticker.Stop()

	flush := func() {
		if len(batch) == 0 {
			return
		}
		if err := p.push(batch); err != nil {
			p.logger.Error("failed to push logs to loki", "error", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case entry := <-p.entries:
			batch = append(batch, entry)
			if len(batch) >= p.config.BatchMaxSize {
				flush()
			}
		case <-ticker.C:
			flush()
		case <-ctx.Done():
			flush()
			return
		}
	}
}

func (p *Pusher) push(batch []LogEntry) error {

	values := make([][2]string, 0, len(batch))
	for _, entry := range batch {
		line, err := json.Marshal(entry)
		if err != nil {
			return err
		}
		values = append(values, [2]string{
			strconv.FormatInt(time.Now().UnixNano(), 10),
			string(line),
		})
	}

	body, err := json.Marshal(pushRequest{
		Streams: []stream{{Stream: p.config.Labels, Values: values}},
	})
	if err != nil {
		return err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err = zw.Write(body); err != nil {
		return err
	}
	if err = zw.Close(); err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, p.config.Url, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")
	if p.config.Username != "" {
		req.SetBasicAuth(p.config.Username, p.config.Password)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected response status: %s", resp.Status)
	}
	return nil
}
