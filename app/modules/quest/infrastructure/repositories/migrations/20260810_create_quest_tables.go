package migrations

import (
	"context"
	"fmt"

	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Creating quest tables...")
			if _, err := db.NewCreateTable().Model((*questdb.Quest)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create quests table: %w", err)
			}
			if _, err := db.NewCreateTable().Model((*questdb.QuestCounter)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create quest_counters table: %w", err)
			}
			if _, err := db.NewCreateTable().Model((*questdb.QuestApplication)(nil)).IfNotExists().Exec(ctx); err != nil {
				return fmt.Errorf("failed to create quest_applications table: %w", err)
			}
			fmt.Println("quest tables created successfully!")
			return nil
		},
		func(ctx context.Context, db *bun.DB) error {
			fmt.Println("Dropping quest tables...")
			if _, err := db.NewDropTable().Model((*questdb.QuestApplication)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*questdb.QuestCounter)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			if _, err := db.NewDropTable().Model((*questdb.Quest)(nil)).IfExists().Cascade().Exec(ctx); err != nil {
				return err
			}
			fmt.Println("quest tables dropped successfully!")
			return nil
		},
	)
}
