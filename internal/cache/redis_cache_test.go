package cache

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cypherlabdev/kelly-sizer-service/internal/models"
	"github.com/cypherlabdev/kelly-sizer-service/pkg/kelly"
)

const testPage = "https://oddsjam.com/betting-tools/positive-ev"

// testRedisCacheSetup is a helper struct to hold test dependencies
type testRedisCacheSetup struct {
	cache     *RedisCache
	miniRedis *miniredis.Miniredis
	ctx       context.Context
}

// setupTestRedisCache creates a test cache with miniredis
func setupTestRedisCache(t *testing.T) *testRedisCacheSetup {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	config := RedisCacheConfig{
		Addr:        mr.Addr(),
		TTL:         30 * time.Minute,
		PageHistory: 3,
	}

	return &testRedisCacheSetup{
		cache:     NewRedisCache(config, zerolog.Nop()),
		miniRedis: mr,
		ctx:       context.Background(),
	}
}

// cleanup cleans up test resources
func (s *testRedisCacheSetup) cleanup() {
	s.cache.Close()
	s.miniRedis.Close()
}

// newTestSheet builds a one-row sheet for the given page
func newTestSheet(pageURL string) *models.Sheet {
	params := kelly.Params{Bankroll: 5000, KellyMultiplier: 1.05}
	rows := kelly.ParseTableBlock("1. +5%\n\n2. -200\n\n3. +120", params)

	return &models.Sheet{
		ID:              uuid.NewString(),
		PageURL:         pageURL,
		Profile:         models.DefaultProfile,
		Bankroll:        params.Bankroll,
		KellyMultiplier: params.KellyMultiplier,
		Rows:            rows,
		RowCount:        len(rows),
		ScrapedAt:       time.Now().UTC().Truncate(time.Second),
		ComputedAt:      time.Now().UTC().Truncate(time.Second),
	}
}

// TestNewRedisCache tests cache creation
func TestNewRedisCache(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NotNil(t, setup.cache.client)
	assert.Equal(t, 30*time.Minute, setup.cache.ttl)
	assert.Equal(t, int64(3), setup.cache.pageHistory)
}

// TestNewRedisCache_MinimumHistory tests that page history is at least one entry
func TestNewRedisCache_MinimumHistory(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	cache := NewRedisCache(RedisCacheConfig{Addr: mr.Addr(), TTL: time.Minute}, zerolog.Nop())
	defer cache.Close()

	assert.Equal(t, int64(1), cache.pageHistory)
}

// TestSet_Success tests successful sheet caching
func TestSet_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	sheet := newTestSheet(testPage)

	err := setup.cache.Set(setup.ctx, sheet)

	require.NoError(t, err)
	assert.True(t, setup.miniRedis.Exists("sheet:"+sheet.ID))
	assert.True(t, setup.miniRedis.Exists(pageKey(testPage)))
}

// TestSet_NoPage tests that sheets without a page are cached without history
func TestSet_NoPage(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	sheet := newTestSheet("")

	require.NoError(t, setup.cache.Set(setup.ctx, sheet))
	assert.True(t, setup.miniRedis.Exists("sheet:"+sheet.ID))
	assert.Len(t, setup.miniRedis.Keys(), 1)
}

// TestSet_ContextCanceled tests set operation with canceled context
func TestSet_ContextCanceled(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := setup.cache.Set(ctx, newTestSheet(testPage))

	assert.Error(t, err)
}

// TestGet_Success tests a cache round trip
func TestGet_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	original := newTestSheet(testPage)
	require.NoError(t, setup.cache.Set(setup.ctx, original))

	retrieved, err := setup.cache.Get(setup.ctx, original.ID)

	require.NoError(t, err)
	assert.Equal(t, original.ID, retrieved.ID)
	assert.Equal(t, original.PageURL, retrieved.PageURL)
	assert.Equal(t, original.Rows, retrieved.Rows)
	assert.True(t, original.ComputedAt.Equal(retrieved.ComputedAt))
}

// TestGet_NotFound tests retrieval of an unknown sheet
func TestGet_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	retrieved, err := setup.cache.Get(setup.ctx, "nonexistent")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, retrieved)
}

// TestGet_ExpiredKey tests retrieval of an expired sheet
func TestGet_ExpiredKey(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	sheet := newTestSheet(testPage)
	require.NoError(t, setup.cache.Set(setup.ctx, sheet))

	setup.miniRedis.FastForward(31 * time.Minute)

	retrieved, err := setup.cache.Get(setup.ctx, sheet.ID)

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, retrieved)
}

// TestGet_CorruptData tests retrieval of a value that is not a sheet
func TestGet_CorruptData(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	setup.miniRedis.Set("sheet:bad", "invalid json data")

	retrieved, err := setup.cache.Get(setup.ctx, "bad")

	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Nil(t, retrieved)
}

// TestGetByPage_NewestFirst tests page history ordering and trimming
func TestGetByPage_NewestFirst(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	var ids []string
	for i := 0; i < 5; i++ {
		sheet := newTestSheet(testPage)
		require.NoError(t, setup.cache.Set(setup.ctx, sheet))
		ids = append(ids, sheet.ID)
	}

	sheets, err := setup.cache.GetByPage(setup.ctx, testPage)

	require.NoError(t, err)
	require.Len(t, sheets, 3)
	assert.Equal(t, ids[4], sheets[0].ID)
	assert.Equal(t, ids[3], sheets[1].ID)
	assert.Equal(t, ids[2], sheets[2].ID)
}

// TestGetByPage_NotFound tests retrieval for a page without history
func TestGetByPage_NotFound(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	sheets, err := setup.cache.GetByPage(setup.ctx, "https://example.com/none")

	assert.NoError(t, err)
	assert.NotNil(t, sheets)
	assert.Empty(t, sheets)
}

// TestGetByPage_PartialData tests that missing and corrupt entries are skipped
func TestGetByPage_PartialData(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	valid := newTestSheet(testPage)
	require.NoError(t, setup.cache.Set(setup.ctx, valid))

	_, err := setup.miniRedis.Lpush(pageKey(testPage), "corrupt")
	require.NoError(t, err)
	setup.miniRedis.Set("sheet:corrupt", "invalid json data")
	_, err = setup.miniRedis.Lpush(pageKey(testPage), "missing")
	require.NoError(t, err)

	sheets, err := setup.cache.GetByPage(setup.ctx, testPage)

	require.NoError(t, err)
	require.Len(t, sheets, 1)
	assert.Equal(t, valid.ID, sheets[0].ID)
}

// TestCache_TTLRespected tests that TTL is set on sheet and history
func TestCache_TTLRespected(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	sheet := newTestSheet(testPage)
	require.NoError(t, setup.cache.Set(setup.ctx, sheet))

	for _, key := range []string{"sheet:" + sheet.ID, pageKey(testPage)} {
		ttl := setup.miniRedis.TTL(key)
		assert.True(t, ttl > 0, key)
		assert.True(t, ttl <= 30*time.Minute, key)
	}
}

// TestPing_Success tests successful Redis ping
func TestPing_Success(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	assert.NoError(t, setup.cache.Ping(setup.ctx))
}

// TestPing_RedisDown tests ping when Redis is down
func TestPing_RedisDown(t *testing.T) {
	setup := setupTestRedisCache(t)

	setup.miniRedis.Close()

	assert.Error(t, setup.cache.Ping(setup.ctx))

	setup.cache.Close()
}

// TestCache_ConcurrentAccess tests thread safety
func TestCache_ConcurrentAccess(t *testing.T) {
	setup := setupTestRedisCache(t)
	defer setup.cleanup()

	sheet := newTestSheet(testPage)
	require.NoError(t, setup.cache.Set(setup.ctx, sheet))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			assert.NoError(t, setup.cache.Set(setup.ctx, sheet))
		}()
		go func(i int) {
			defer wg.Done()
			retrieved, err := setup.cache.Get(setup.ctx, sheet.ID)
			assert.NoError(t, err, fmt.Sprintf("reader %d", i))
			assert.NotNil(t, retrieved)
		}(i)
	}
	wg.Wait()
}
