package service

import (
	"context"
	"strconv"
	"sync"

	"hotelier/internal/dto"
	"hotelier/internal/model"
	"hotelier/internal/repository"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// Setting keys.
const (
	settingCurrency         = "currency"
	settingPageSize         = "page_size"
	settingCheckoutHour     = "checkout_hour"
	settingStatsRecentLimit = "stats_recent_limit"

	settingsChannel = "settings.changed"
)

// Settings is the immutable snapshot handed to consumers.
type Settings struct {
	Currency         string
	PageSize         int
	CheckoutHour     int
	StatsRecentLimit int
}

func defaultSettings() Settings {
	return Settings{
		Currency:         "USD",
		PageSize:         50,
		CheckoutHour:     11,
		StatsRecentLimit: 5,
	}
}

// SettingsService holds process-wide preferences with an explicit lifecycle:
// Load at startup, Save on change. Changes are broadcast over Redis pub/sub
// so other instances reload instead of serving a stale snapshot.
type SettingsService struct {
	repo repository.SettingRepository
	rdb  *redis.Client

	mu      sync.RWMutex
	current Settings
}

// NewSettingsService returns a service primed with defaults; call Load
// before serving. rdb may be nil (unit tests); broadcast then is a no-op.
func NewSettingsService(repo repository.SettingRepository, rdb *redis.Client) *SettingsService {
	return &SettingsService{repo: repo, rdb: rdb, current: defaultSettings()}
}

// Load reads all persisted settings into the in-memory snapshot.
// Unknown keys are ignored; missing keys keep their defaults.
func (s *SettingsService) Load(ctx context.Context) error {
	rows, err := s.repo.LoadAll(ctx)
	if err != nil {
		return persistence("settings.load", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = defaultSettings()
	for _, row := range rows {
		s.apply(row.Key, row.Value)
	}
	return nil
}

// Snapshot returns the current settings by value.
func (s *SettingsService) Snapshot() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

// Update persists the supplied fields, refreshes the snapshot, and
// broadcasts the change.
func (s *SettingsService) Update(ctx context.Context, req dto.UpdateSettingsRequest) (*dto.SettingsResponse, error) {
	changed := map[string]string{}
	if req.Currency != nil {
		changed[settingCurrency] = *req.Currency
	}
	if req.PageSize != nil {
		changed[settingPageSize] = strconv.Itoa(*req.PageSize)
	}
	if req.CheckoutHour != nil {
		changed[settingCheckoutHour] = strconv.Itoa(*req.CheckoutHour)
	}
	if req.StatsRecentLimit != nil {
		changed[settingStatsRecentLimit] = strconv.Itoa(*req.StatsRecentLimit)
	}

	for key, value := range changed {
		if err := s.repo.Upsert(ctx, &model.Setting{Key: key, Value: value}); err != nil {
			return nil, persistence("settings.update: "+key, err)
		}
	}

	s.mu.Lock()
	for key, value := range changed {
		s.apply(key, value)
	}
	s.mu.Unlock()

	if s.rdb != nil && len(changed) > 0 {
		if err := s.rdb.Publish(ctx, settingsChannel, "reload").Err(); err != nil {
			log.Debug().Err(err).Msg("settings: broadcast failed")
		}
	}

	resp := s.response()
	return &resp, nil
}

// Get returns the snapshot as a response DTO.
func (s *SettingsService) Get() dto.SettingsResponse {
	return s.response()
}

// WatchChanges subscribes to the settings channel and reloads on every
// message until ctx is cancelled. Run it in a goroutine on instances that
// must follow changes made elsewhere.
func (s *SettingsService) WatchChanges(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	sub := s.rdb.Subscribe(ctx, settingsChannel)
	defer sub.Close()

	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				return
			}
			if err := s.Load(ctx); err != nil {
				log.Error().Err(err).Msg("settings: reload after broadcast failed")
			}
		}
	}
}

// apply sets one key on the snapshot. Caller holds the write lock.
func (s *SettingsService) apply(key, value string) {
	switch key {
	case settingCurrency:
		s.current.Currency = value
	case settingPageSize:
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			s.current.PageSize = n
		}
	case settingCheckoutHour:
		if n, err := strconv.Atoi(value); err == nil && n >= 0 && n <= 23 {
			s.current.CheckoutHour = n
		}
	case settingStatsRecentLimit:
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			s.current.StatsRecentLimit = n
		}
	}
}

func (s *SettingsService) response() dto.SettingsResponse {
	snap := s.Snapshot()
	return dto.SettingsResponse{
		Currency:         snap.Currency,
		PageSize:         snap.PageSize,
		CheckoutHour:     snap.CheckoutHour,
		StatsRecentLimit: snap.StatsRecentLimit,
	}
}
