package questdb_test

import (
	"context"
	"database/sql"
	"fmt"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/migrate"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	questmigrations "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories/migrations"
)

// setupTestDB starts a postgres container, runs the quest migrations and
// returns a repository bound to it. Skipped when docker is unavailable.
func setupTestDB(t *testing.T) *questdb.QuestDBImpl {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("questboard_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(45*time.Second),
		),
	)
	if err != nil {
		t.Skipf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, db.PingContext(ctx))

	migrator := migrate.NewMigrator(db, questmigrations.Migrations)
	require.NoError(t, migrator.Init(ctx))
	_, err = migrator.Migrate(ctx)
	require.NoError(t, err)

	return questdb.NewQuestDB(db)
}

func randomQuest(t *testing.T, repo *questdb.QuestDBImpl, guildID questtypes.GuildID) *questtypes.Quest {
	t.Helper()
	ctx := context.Background()

	id, err := repo.GenerateQuestID(ctx)
	require.NoError(t, err)

	quest := &questtypes.Quest{
		ID:         id,
		GuildID:    guildID,
		ThreadID:   questtypes.ThreadID(gofakeit.DigitN(18)),
		DMID:       questtypes.UserID(gofakeit.DigitN(18)),
		Title:      gofakeit.BookTitle(),
		Status:     questtypes.StatusRecruiting,
		Mode:       questtypes.ModeOnline,
		QuestType:  questtypes.TypeOneshot,
		System:     "D&D",
		MaxPlayers: 4,
	}
	require.NoError(t, repo.Create(ctx, quest))
	return quest
}

func TestQuestDBIntegration(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	t.Run("GenerateQuestID sequences within a day", func(t *testing.T) {
		fixed := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
		repo.Now = func() time.Time { return fixed }
		defer func() { repo.Now = time.Now }()

		first, err := repo.GenerateQuestID(ctx)
		require.NoError(t, err)
		second, err := repo.GenerateQuestID(ctx)
		require.NoError(t, err)

		require.Equal(t, questtypes.QuestID("280826-0001"), first)
		require.Equal(t, questtypes.QuestID("280826-0002"), second)

		// A new day starts its own sequence without resetting the old one.
		repo.Now = func() time.Time { return fixed.Add(24 * time.Hour) }
		next, err := repo.GenerateQuestID(ctx)
		require.NoError(t, err)
		require.Equal(t, questtypes.QuestID("290826-0001"), next)
	})

	t.Run("round trip and lookups", func(t *testing.T) {
		quest := randomQuest(t, repo, "guild-lookup")

		got, err := repo.Get(ctx, quest.ID)
		require.NoError(t, err)
		require.Equal(t, quest.Title, got.Title)
		require.Equal(t, 1, got.Version)

		byThread, err := repo.GetByThread(ctx, quest.ThreadID)
		require.NoError(t, err)
		require.Equal(t, quest.ID, byThread.ID)

		_, err = repo.Get(ctx, "000000-9999")
		require.ErrorIs(t, err, questdb.ErrNotFound)
	})

	t.Run("UpdateCAS detects lost races", func(t *testing.T) {
		quest := randomQuest(t, repo, "guild-cas")

		winner := quest.Clone()
		winner.Roster = append(winner.Roster, "player-1")
		require.NoError(t, repo.UpdateCAS(ctx, winner))
		require.Equal(t, 2, winner.Version)

		// The loser still holds version 1.
		loser := quest.Clone()
		loser.Roster = append(loser.Roster, "player-2")
		require.ErrorIs(t, repo.UpdateCAS(ctx, loser), questdb.ErrVersionConflict)

		got, err := repo.Get(ctx, quest.ID)
		require.NoError(t, err)
		require.Equal(t, []questtypes.UserID{"player-1"}, got.Roster)
	})

	t.Run("application decisions are terminal", func(t *testing.T) {
		quest := randomQuest(t, repo, "guild-apps")

		app := &questtypes.Application{
			ID:          uuid.NewString(),
			QuestID:     quest.ID,
			GuildID:     quest.GuildID,
			ApplicantID: "applicant-1",
			Status:      questtypes.ApplicationPending,
			Message:     gofakeit.Sentence(6),
		}
		require.NoError(t, repo.CreateApplication(ctx, app))

		pending, err := repo.PendingApplication(ctx, quest.ID, "applicant-1")
		require.NoError(t, err)
		require.Equal(t, app.ID, pending.ID)

		resolved, err := repo.ResolveApplication(ctx, app.ID, questtypes.ApplicationAccepted, quest.DMID)
		require.NoError(t, err)
		require.Equal(t, questtypes.ApplicationAccepted, resolved.Status)
		require.NotNil(t, resolved.ResolvedAt)

		// A second decision cannot flip the outcome.
		_, err = repo.ResolveApplication(ctx, app.ID, questtypes.ApplicationDeclined, quest.DMID)
		require.ErrorIs(t, err, questdb.ErrApplicationResolved)

		_, err = repo.PendingApplication(ctx, quest.ID, "applicant-1")
		require.ErrorIs(t, err, questdb.ErrNotFound)
	})

	t.Run("ClearGuildQuests wipes only the guild", func(t *testing.T) {
		target := questtypes.GuildID(fmt.Sprintf("guild-clear-%s", gofakeit.DigitN(6)))
		for range 3 {
			randomQuest(t, repo, target)
		}
		other := randomQuest(t, repo, "guild-untouched")

		deleted, err := repo.ClearGuildQuests(ctx, target)
		require.NoError(t, err)
		require.Equal(t, 3, deleted)

		remaining, err := repo.ListByGuild(ctx, target)
		require.NoError(t, err)
		require.Empty(t, remaining)

		_, err = repo.Get(ctx, other.ID)
		require.NoError(t, err)
	})
}
