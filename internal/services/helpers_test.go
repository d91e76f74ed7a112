package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/cache"
	"github.com/SAP-F-2025/comprehension-service/internal/content"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories"
	"github.com/SAP-F-2025/comprehension-service/internal/repositories/postgres"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

func testRepo(t *testing.T) repositories.Repository {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)
	require.NoError(t, postgres.AutoMigrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return postgres.NewRepository(db)
}

func testItem() content.ItemContent {
	return content.ItemContent{
		ItemID:             "2_fb_basket_box",
		Item:               2,
		Condition:          "false_belief",
		FirstMention:       "basket",
		RecentMention:      "box",
		KnowledgeCue:       "explicit",
		Start:              "basket",
		End:                "box",
		Passage:            "<p>Sally puts the marble in the basket.</p>",
		CriticalQuestion:   "Sally will look for the marble in the",
		CriticalAnswer:     "basket",
		AttnCheck1Question: "Where was the marble at the start?",
		AttnCheck1Answer:   "basket",
		AttnCheck2Question: "Where was the marble at the end?",
		AttnCheck2Answer:   "box",
	}
}

func testCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	catalog, err := content.NewCatalog([]content.ItemContent{testItem()}, nil)
	require.NoError(t, err)
	return catalog
}

// memoryCache is an in-process CacheService for tests.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (m *memoryCache) Set(_ context.Context, key string, value interface{}, _ time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
	return nil
}

func (m *memoryCache) Get(_ context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (m *memoryCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, key)
	return nil
}

// DeletePattern only understands a trailing *.
func (m *memoryCache) DeletePattern(_ context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := pattern[:len(pattern)-1]
	for key := range m.entries {
		if len(key) >= len(prefix) && key[:len(prefix)] == prefix {
			delete(m.entries, key)
		}
	}
	m.deleted = append(m.deleted, pattern)
	return nil
}

func (m *memoryCache) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}
