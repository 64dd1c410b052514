package session

import (
	"context"
	"sync"
	"time"
)

// MemoryStore - in-memory хранилище сессий для dev-режима и тестов.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*memorySession
}

type memorySession struct {
	values    map[string]string
	expiresAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: make(map[string]*memorySession)}
}

func (s *MemoryStore) live(sessionID string) *memorySession {
	sess, ok := s.sessions[sessionID]
	if !ok || time.Now().After(sess.expiresAt) {
		return nil
	}
	return sess
}

func (s *MemoryStore) Get(_ context.Context, sessionID, name string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.live(sessionID)
	if sess == nil {
		return "", false, nil
	}
	raw, ok := sess.values[name]
	return raw, ok, nil
}

func (s *MemoryStore) Set(_ context.Context, sessionID, name, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess := s.live(sessionID)
	if sess == nil {
		sess = &memorySession{values: make(map[string]string)}
		s.sessions[sessionID] = sess
	}
	sess.values[name] = value
	sess.expiresAt = time.Now().Add(ttl)
	return nil
}

func (s *MemoryStore) Has(_ context.Context, sessionID, name string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sess := s.live(sessionID)
	if sess == nil {
		return false, nil
	}
	_, ok := sess.values[name]
	return ok, nil
}

func (s *MemoryStore) Destroy(_ context.Context, sessionID string) error {
	s.mu.Lock()
	delete(s.sessions, sessionID)
	s.mu.Unlock()
	return nil
}
