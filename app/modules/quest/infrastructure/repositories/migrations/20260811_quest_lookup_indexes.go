package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating quest lookup indexes...")
			_, err := db.ExecContext(ctx, `
				CREATE UNIQUE INDEX IF NOT EXISTS quests_thread_id_idx ON quests (thread_id);
				CREATE INDEX IF NOT EXISTS quests_guild_id_idx ON quests (guild_id);
				CREATE INDEX IF NOT EXISTS quests_embed_message_id_idx ON quests (embed_message_id);
				CREATE INDEX IF NOT EXISTS quest_applications_pending_idx
					ON quest_applications (quest_id, applicant_id) WHERE status = 'PENDING';
			`)
			if err != nil {
				return fmt.Errorf("failed to create quest indexes: %w", err)
			}
			fmt.Println("quest lookup indexes created successfully")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			_, err := db.ExecContext(ctx, `
				DROP INDEX IF EXISTS quests_thread_id_idx;
				DROP INDEX IF EXISTS quests_guild_id_idx;
				DROP INDEX IF EXISTS quests_embed_message_id_idx;
				DROP INDEX IF EXISTS quest_applications_pending_idx;
			`)
			return err
		},
	)
}
