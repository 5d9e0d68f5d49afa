package service

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"space-booking-api/core/cache"
	"space-booking-api/core/params"
	"space-booking-api/modules/space/dto"
	"space-booking-api/modules/space/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSpaceRepo struct {
	mu     sync.Mutex
	spaces map[uuid.UUID]*entity.Space
	rules  map[uuid.UUID]*entity.BookingRules

	rulesReads int
}

func newFakeSpaceRepo() *fakeSpaceRepo {
	return &fakeSpaceRepo{
		spaces: make(map[uuid.UUID]*entity.Space),
		rules:  make(map[uuid.UUID]*entity.BookingRules),
	}
}

func (r *fakeSpaceRepo) Create(ctx context.Context, space *entity.Space) (*entity.Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *space
	stored.ID = uuid.New()
	stored.CreatedAt = time.Now().UTC()
	stored.UpdatedAt = stored.CreatedAt
	r.spaces[stored.ID] = &stored
	copied := stored
	return &copied, nil
}

func (r *fakeSpaceRepo) GetByID(ctx context.Context, id uuid.UUID) (*entity.Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.spaces[id]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeSpaceRepo) GetBySlug(ctx context.Context, slug string) (*entity.Space, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range r.spaces {
		if s.Slug == slug {
			copied := *s
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeSpaceRepo) ListByOrg(ctx context.Context, orgID uuid.UUID, queryParams params.QueryParams) (*entity.PaginatedSpaces, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var items []entity.Space
	for _, s := range r.spaces {
		if s.OrgID == orgID {
			items = append(items, *s)
		}
	}
	return &entity.PaginatedSpaces{
		Items:      items,
		TotalItems: len(items),
		PageNumber: queryParams.PageNumber,
		PageSize:   queryParams.PageSize,
	}, nil
}

func (r *fakeSpaceRepo) SlugExists(ctx context.Context, slug string) (bool, error) {
	s, err := r.GetBySlug(ctx, slug)
	return s != nil, err
}

func (r *fakeSpaceRepo) GetRules(ctx context.Context, spaceID uuid.UUID) (*entity.BookingRules, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rulesReads++
	if rules, ok := r.rules[spaceID]; ok {
		copied := *rules
		return &copied, nil
	}
	return nil, nil
}

func (r *fakeSpaceRepo) UpsertRules(ctx context.Context, rules *entity.BookingRules) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *rules
	r.rules[rules.SpaceID] = &copied
	return nil
}

// memoryCache is a map-backed cache.Cache; TTL is ignored.
type memoryCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newMemoryCache() *memoryCache {
	return &memoryCache{entries: make(map[string][]byte)}
}

func (c *memoryCache) GetJSON(ctx context.Context, key string, dest any) error {
	c.mu.Lock()
	raw, ok := c.entries[key]
	c.mu.Unlock()
	if !ok {
		return cache.ErrMiss
	}
	return json.Unmarshal(raw, dest)
}

func (c *memoryCache) SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	c.entries[key] = raw
	c.mu.Unlock()
	return nil
}

func (c *memoryCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	delete(c.entries, key)
	c.mu.Unlock()
	return nil
}

func TestCreateSpace(t *testing.T) {
	repo := newFakeSpaceRepo()
	svc := NewSpaceService(repo, cache.NewNoopCache(), time.Minute)
	orgID := uuid.New()

	created, appErr := svc.CreateSpace(context.Background(), orgID, &dto.CreateSpaceRequest{Name: "Court 1"})
	require.Nil(t, appErr)
	assert.Equal(t, "court-1", created.Slug)
	assert.Equal(t, "UTC", created.Timezone)
	assert.True(t, created.IsActive)

	// Default rules are written alongside the space.
	rules, err := svc.GetRules(context.Background(), created.ID)
	require.NoError(t, err)
	require.NotNil(t, rules)
	assert.Equal(t, entity.DefaultRules(created.ID).SlotDurationMinutes, rules.SlotDurationMinutes)

	// A second space with the same name gets a disambiguated slug.
	dup, appErr := svc.CreateSpace(context.Background(), orgID, &dto.CreateSpaceRequest{Name: "Court 1"})
	require.Nil(t, appErr)
	assert.NotEqual(t, created.Slug, dup.Slug)
	assert.Contains(t, dup.Slug, "court-1-")
}

func TestCreateSpaceValidation(t *testing.T) {
	repo := newFakeSpaceRepo()
	svc := NewSpaceService(repo, cache.NewNoopCache(), time.Minute)
	orgID := uuid.New()

	_, appErr := svc.CreateSpace(context.Background(), orgID, &dto.CreateSpaceRequest{Name: ""})
	require.NotNil(t, appErr)

	_, appErr = svc.CreateSpace(context.Background(), orgID, &dto.CreateSpaceRequest{Name: "Court", Timezone: "Mars/Olympus"})
	require.NotNil(t, appErr)
}

func TestGetRulesCaching(t *testing.T) {
	repo := newFakeSpaceRepo()
	svc := NewSpaceService(repo, newMemoryCache(), time.Minute)
	orgID := uuid.New()

	created, appErr := svc.CreateSpace(context.Background(), orgID, &dto.CreateSpaceRequest{Name: "Court 1"})
	require.Nil(t, appErr)

	_, err := svc.GetRules(context.Background(), created.ID)
	require.NoError(t, err)
	_, err = svc.GetRules(context.Background(), created.ID)
	require.NoError(t, err)

	repo.mu.Lock()
	reads := repo.rulesReads
	repo.mu.Unlock()
	assert.Equal(t, 1, reads, "second read should be served from the cache")
}

func TestUpdateRulesInvalidatesCache(t *testing.T) {
	repo := newFakeSpaceRepo()
	svc := NewSpaceService(repo, newMemoryCache(), time.Minute)
	orgID := uuid.New()

	created, appErr := svc.CreateSpace(context.Background(), orgID, &dto.CreateSpaceRequest{Name: "Court 1"})
	require.Nil(t, appErr)

	_, err := svc.GetRules(context.Background(), created.ID)
	require.NoError(t, err)

	updated, appErr := svc.UpdateRules(context.Background(), orgID, created.ID, &dto.UpdateRulesRequest{
		SlotDurationMinutes: 30,
		OpenTime:            "09:00",
		CloseTime:           "18:00",
		MaxAdvanceDays:      14,
		MaxDurationMinutes:  120,
		BufferMinutes:       10,
	})
	require.Nil(t, appErr)
	assert.Equal(t, 30, updated.SlotDurationMinutes)

	rules, err := svc.GetRules(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, rules.SlotDurationMinutes, "stale policy must not be served after an update")
	assert.Equal(t, "09:00", rules.OpenTime)
}

func TestUpdateRulesValidation(t *testing.T) {
	repo := newFakeSpaceRepo()
	svc := NewSpaceService(repo, cache.NewNoopCache(), time.Minute)
	orgID := uuid.New()

	created, appErr := svc.CreateSpace(context.Background(), orgID, &dto.CreateSpaceRequest{Name: "Court 1"})
	require.Nil(t, appErr)

	base := dto.UpdateRulesRequest{
		SlotDurationMinutes: 60,
		OpenTime:            "08:00",
		CloseTime:           "22:00",
		MaxAdvanceDays:      30,
		MaxDurationMinutes:  180,
	}

	tests := []struct {
		name   string
		mutate func(*dto.UpdateRulesRequest)
	}{
		{"zero slot duration", func(r *dto.UpdateRulesRequest) { r.SlotDurationMinutes = 0 }},
		{"max duration below one slot", func(r *dto.UpdateRulesRequest) { r.MaxDurationMinutes = 30 }},
		{"negative buffer", func(r *dto.UpdateRulesRequest) { r.BufferMinutes = -1 }},
		{"malformed open time", func(r *dto.UpdateRulesRequest) { r.OpenTime = "8am" }},
		{"close before open", func(r *dto.UpdateRulesRequest) { r.OpenTime = "22:00"; r.CloseTime = "08:00" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := base
			tt.mutate(&req)
			_, appErr := svc.UpdateRules(context.Background(), orgID, created.ID, &req)
			require.NotNil(t, appErr)
		})
	}

	t.Run("wrong organization", func(t *testing.T) {
		req := base
		_, appErr := svc.UpdateRules(context.Background(), uuid.New(), created.ID, &req)
		require.NotNil(t, appErr)
	})

	t.Run("unknown space", func(t *testing.T) {
		req := base
		_, appErr := svc.UpdateRules(context.Background(), orgID, uuid.New(), &req)
		require.NotNil(t, appErr)
	})
}
