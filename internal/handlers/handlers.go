package handlers

import (
	"github.com/01moynul/healthsync-golang/internal/cache"
)

// Handlers struct holds all dependencies for our handlers.
type Handlers struct {
	Cache *cache.ResultCache // Memoized warehouse result, shared by every request
}
