package guilddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/uptrace/bun"
)

type GuildDBImpl struct {
	DB *bun.DB
}

func NewGuildDB(db *bun.DB) *GuildDBImpl {
	return &GuildDBImpl{DB: db}
}

func (db *GuildDBImpl) GetConfig(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error) {
	var model GuildConfig
	err := db.DB.NewSelect().Model(&model).Where("guild_id = ?", guildID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainConfig(&model), nil
}

// SaveConfig upserts: /setup may be re-run to change channels, roles or the
// join mode without losing the original created_at.
func (db *GuildDBImpl) SaveConfig(ctx context.Context, config *guildtypes.GuildConfig) error {
	model := toDBConfig(config)
	now := time.Now()
	if model.CreatedAt.IsZero() {
		model.CreatedAt = now
	}
	model.UpdatedAt = now

	_, err := db.DB.NewInsert().
		Model(model).
		On("CONFLICT (guild_id) DO UPDATE").
		Set("forum_channel_id = EXCLUDED.forum_channel_id").
		Set("embed_channel_id = EXCLUDED.embed_channel_id").
		Set("ping_roles = EXCLUDED.ping_roles").
		Set("join_mode = EXCLUDED.join_mode").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save guild config for %s: %w", config.GuildID, err)
	}
	return nil
}

func (db *GuildDBImpl) DeleteConfig(ctx context.Context, guildID questtypes.GuildID) error {
	res, err := db.DB.NewDelete().Model((*GuildConfig)(nil)).Where("guild_id = ?", guildID).Exec(ctx)
	if err != nil {
		return err
	}
	if rows, err := res.RowsAffected(); err == nil && rows == 0 {
		return ErrNotFound
	}
	return nil
}
