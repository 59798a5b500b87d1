package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/jask/splashgate/internal/database"
	"github.com/jask/splashgate/internal/database/repository"
)

// ErrEmptyName is returned when asked to greet nobody.
var ErrEmptyName = errors.New("greeter: name is empty")

// GreetMessage formats the greeting shown on the main surface.
func GreetMessage(name string) string {
	return fmt.Sprintf("Hello, %s! You've been greeted from Go!", name)
}

// GreetService greets people and, once the backend store is attached, records them.
type GreetService struct {
	mu   sync.RWMutex
	repo *repository.GreetingRepo
}

// Attach sets the store used to record greetings. Called by the startup job.
func (s *GreetService) Attach(repo *repository.GreetingRepo) {
	s.mu.Lock()
	s.repo = repo
	s.mu.Unlock()
}

// Attached reports whether greetings are being recorded.
func (s *GreetService) Attached() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.repo != nil
}

// Greet builds a greeting for name and records it when a store is attached.
// The greeting is returned even when recording fails.
func (s *GreetService) Greet(ctx context.Context, name string) (repository.Greeting, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return repository.Greeting{}, ErrEmptyName
	}
	g := repository.Greeting{
		ID:        uuid.NewString(),
		Name:      name,
		Message:   GreetMessage(name),
		CreatedAt: database.Now(),
	}
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()
	if repo == nil {
		return g, nil
	}
	if err := repo.Insert(ctx, g); err != nil {
		return g, fmt.Errorf("record greeting: %w", err)
	}
	return g, nil
}

// Recent lists the latest recorded greetings. Without a store it returns nothing.
func (s *GreetService) Recent(ctx context.Context, limit int) ([]repository.Greeting, error) {
	s.mu.RLock()
	repo := s.repo
	s.mu.RUnlock()
	if repo == nil || limit <= 0 {
		return nil, nil
	}
	return repo.Recent(ctx, limit)
}
