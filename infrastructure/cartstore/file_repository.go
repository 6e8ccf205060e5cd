package cartstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sync"

	"cardapio-digital/domain/cart"
	"cardapio-digital/pkg/logger"
)

var sessionPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

var ErrInvalidSession = errors.New("invalid cart session")

// FileRepository stores one JSON file per cart session, used when Redis is disabled
type FileRepository struct {
	dir string
	mu  sync.Mutex
}

func NewFileRepository(dir string) (*FileRepository, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create cart store dir: %w", err)
	}
	return &FileRepository{dir: dir}, nil
}

func (r *FileRepository) path(sessionID string) (string, error) {
	if !sessionPattern.MatchString(sessionID) {
		return "", ErrInvalidSession
	}
	return filepath.Join(r.dir, sessionID+".json"), nil
}

func (r *FileRepository) Load(ctx context.Context, sessionID string) (*cart.Cart, error) {
	p, err := r.path(sessionID)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	data, err := os.ReadFile(p)
	r.mu.Unlock()
	if errors.Is(err, os.ErrNotExist) {
		return cart.New(), nil
	}
	if err != nil {
		return nil, err
	}

	c, err := cart.Unmarshal(data)
	if err != nil {
		logger.WarnContext(ctx, "Discarding malformed cart file", "path", p, "error", err)
	}
	return c, nil
}

// Save writes through a temp file so a crash never leaves a half-written cart
func (r *FileRepository) Save(ctx context.Context, sessionID string, c *cart.Cart) error {
	p, err := r.path(sessionID)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c == nil || c.IsEmpty() {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return err
		}
		return nil
	}

	data, err := cart.Marshal(c)
	if err != nil {
		return err
	}
	tmp, err := os.CreateTemp(r.dir, ".cart-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), p)
}
