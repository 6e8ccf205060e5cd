package nats

import (
	"encoding/json"
	"sync"

	"github.com/nats-io/nats.go"

	"cardapio-digital/pkg/logger"
)

type CatalogHandler func(msg *CatalogChanged)

// Subscriber listens to catalog changes from every API instance
type Subscriber struct {
	conn       *nats.Conn
	sub        *nats.Subscription
	handlers   []CatalogHandler
	handlersMu sync.RWMutex
	running    bool
	runningMu  sync.Mutex
}

func NewSubscriber(conn *nats.Conn) *Subscriber {
	return &Subscriber{conn: conn}
}

func (s *Subscriber) OnCatalogChanged(handler CatalogHandler) {
	s.handlersMu.Lock()
	defer s.handlersMu.Unlock()
	s.handlers = append(s.handlers, handler)
}

func (s *Subscriber) Start() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if s.running {
		return nil
	}

	sub, err := s.conn.Subscribe(SubjectCatalogChanged, s.handleMessage)
	if err != nil {
		return err
	}
	s.sub = sub
	s.running = true

	logger.Info("NATS subscriber started", "subject", SubjectCatalogChanged)
	return nil
}

func (s *Subscriber) handleMessage(msg *nats.Msg) {
	var change CatalogChanged
	if err := json.Unmarshal(msg.Data, &change); err != nil {
		logger.Error("Failed to parse catalog change", "error", err)
		return
	}

	s.handlersMu.RLock()
	handlers := s.handlers
	s.handlersMu.RUnlock()

	for _, handler := range handlers {
		func(h CatalogHandler, c CatalogChanged) {
			defer func() {
				if r := recover(); r != nil {
					logger.Error("Catalog handler panicked", "error", r)
				}
			}()
			h(&c)
		}(handler, change)
	}
}

func (s *Subscriber) Stop() error {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	if !s.running {
		return nil
	}
	s.running = false

	if s.sub != nil {
		if err := s.sub.Unsubscribe(); err != nil {
			logger.Warn("Failed to unsubscribe", "error", err)
		}
	}
	logger.Info("NATS subscriber stopped")
	return nil
}

func (s *Subscriber) IsRunning() bool {
	s.runningMu.Lock()
	defer s.runningMu.Unlock()
	return s.running
}
