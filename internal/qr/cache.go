// Package qr renders pairing URIs as QR codes and keeps the images around
// just long enough for the chat client to fetch them.
package qr

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

const imageSize = 256

// Cache is a short-lived in-memory store of rendered QR PNGs keyed by a
// random id. Entries expire after the configured TTL; expired entries are
// pruned on writes.
type Cache struct {
	mu      sync.RWMutex
	ttl     time.Duration
	entries map[string]entry
}

type entry struct {
	png       []byte
	expiresAt time.Time
}

// NewCache creates a cache with the given entry TTL.
func NewCache(ttl time.Duration) *Cache {
	return &Cache{
		ttl:     ttl,
		entries: make(map[string]entry),
	}
}

// Render encodes content as a QR PNG, stores it and returns its id.
func (c *Cache) Render(content string) (string, error) {
	png, err := qrcode.Encode(content, qrcode.Medium, imageSize)
	if err != nil {
		return "", fmt.Errorf("failed to encode QR code: %w", err)
	}

	id := uuid.NewString()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.pruneLocked(time.Now())
	c.entries[id] = entry{png: png, expiresAt: time.Now().Add(c.ttl)}
	return id, nil
}

// Get returns the PNG for an id, or false when it is unknown or expired.
func (c *Cache) Get(id string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	e, ok := c.entries[id]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.png, true
}

func (c *Cache) pruneLocked(now time.Time) {
	for id, e := range c.entries {
		if now.After(e.expiresAt) {
			delete(c.entries, id)
		}
	}
}
