package logger

import (
	"context"
	"path/filepath"
	"strconv"

	"github.com/applyflow/applyflow/internal/config"
	"github.com/applyflow/applyflow/pkg/loki"
	log "github.com/sirupsen/logrus"
)

type logrusAdapter struct{}

func (l *logrusAdapter) Error(msg string, args ...any) {
	log.WithFields(log.Fields{"args": args, "source": "loki"}).Error(msg)
}

type lokiHook struct {
	pusher   *loki.Pusher
	minLevel log.Level
}

func (h *lokiHook) Fire(entry *log.Entry) error {
	// Pusher failures are reported through the adapter above; forwarding
	// those again would loop.
	if entry.Data["source"] == "loki" {
		return nil
	}

	caller := ""
	if entry.Caller != nil {
		caller = filepath.Base(entry.Caller.Function) + ":" + strconv.Itoa(entry.Caller.Line)
	}

	return h.pusher.Push(loki.LogEntry{
		Level:   entry.Level.String(),
		Message: entry.Message,
		Caller:  caller,
	})
}

func (h *lokiHook) Levels() []log.Level {
	var levels []log.Level
	for _, level := range log.AllLevels {
		if level <= h.minLevel {
			levels = append(levels, level)
		}
	}
	return levels
}

var lokiPusher *loki.Pusher

func setupLokiHook(cfg config.LoggerConfig) {
	pusher, err := loki.New(context.Background(), loki.Config{
		Url:      cfg.LokiURL,
		Username: cfg.LokiUser,
		Password: cfg.LokiPassword,
		Labels:   map[string]string{"app": cfg.AppName},
	}, &logrusAdapter{})
	if err != nil {
		log.Errorf("couldn't create loki pusher: %v", err)
		return
	}

	lokiPusher = pusher
	log.AddHook(&lokiHook{pusher: pusher, minLevel: log.InfoLevel})
}

func stopLokiHook() {
	if lokiPusher != nil {
		lokiPusher.Stop()
	}
}
