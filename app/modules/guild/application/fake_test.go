package guildservice

import (
	"context"
	"sync"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	guilddb "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/repositories"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/aetherius-rpg/questboard/internal/observability"
)

// FakeGuildRepository is an in-memory guild config store with optional
// per-method overrides.
type FakeGuildRepository struct {
	mu      sync.Mutex
	configs map[questtypes.GuildID]*guildtypes.GuildConfig

	SaveConfigFunc func(ctx context.Context, config *guildtypes.GuildConfig) error
}

var _ guilddb.Repository = (*FakeGuildRepository)(nil)

func NewFakeGuildRepository() *FakeGuildRepository {
	return &FakeGuildRepository{configs: make(map[questtypes.GuildID]*guildtypes.GuildConfig)}
}

func (f *FakeGuildRepository) GetConfig(_ context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	config, ok := f.configs[guildID]
	if !ok {
		return nil, guilddb.ErrNotFound
	}
	clone := *config
	return &clone, nil
}

func (f *FakeGuildRepository) SaveConfig(ctx context.Context, config *guildtypes.GuildConfig) error {
	if f.SaveConfigFunc != nil {
		return f.SaveConfigFunc(ctx, config)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	clone := *config
	f.configs[config.GuildID] = &clone
	return nil
}

func (f *FakeGuildRepository) DeleteConfig(_ context.Context, guildID questtypes.GuildID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.configs[guildID]; !ok {
		return guilddb.ErrNotFound
	}
	delete(f.configs, guildID)
	return nil
}

func (f *FakeGuildRepository) Stored(guildID questtypes.GuildID) *guildtypes.GuildConfig {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.configs[guildID]
}

func newTestService(repo *FakeGuildRepository) *GuildService {
	obs := observability.NoOp()
	return NewGuildService(repo, obs.Logger, obs.Metrics, obs.Tracer)
}
