package questdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	"github.com/uptrace/bun"
)

// QuestDBImpl implements Repository on bun/Postgres.
type QuestDBImpl struct {
	DB *bun.DB
	// Now is the clock for id generation and timestamps; tests override it.
	Now func() time.Time
}

func NewQuestDB(db *bun.DB) *QuestDBImpl {
	return &QuestDBImpl{DB: db, Now: time.Now}
}

func (db *QuestDBImpl) now() time.Time {
	if db.Now != nil {
		return db.Now()
	}
	return time.Now()
}

// GenerateQuestID serializes concurrent callers in the database: the upsert
// increments the day's counter and returns the new value in one statement.
func (db *QuestDBImpl) GenerateQuestID(ctx context.Context) (questtypes.QuestID, error) {
	dateKey := db.now().UTC().Format("020106")

	var counter int
	err := db.DB.NewInsert().
		Model(&QuestCounter{DateKey: dateKey, Counter: 1}).
		On("CONFLICT (date_key) DO UPDATE").
		Set("counter = quest_counters.counter + 1").
		Returning("counter").
		Scan(ctx, &counter)
	if err != nil {
		return "", fmt.Errorf("failed to advance quest counter: %w", err)
	}

	return questtypes.QuestID(fmt.Sprintf("%s-%04d", dateKey, counter)), nil
}

func (db *QuestDBImpl) Create(ctx context.Context, quest *questtypes.Quest) error {
	model := toDBQuest(quest)
	model.Version = 1
	now := db.now()
	model.CreatedAt = now
	model.UpdatedAt = now

	if _, err := db.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert quest %s: %w", quest.ID, err)
	}

	quest.Version = model.Version
	quest.CreatedAt = model.CreatedAt
	quest.UpdatedAt = model.UpdatedAt
	return nil
}

func (db *QuestDBImpl) Get(ctx context.Context, id questtypes.QuestID) (*questtypes.Quest, error) {
	var model Quest
	err := db.DB.NewSelect().Model(&model).Where("quest_id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainQuest(&model), nil
}

func (db *QuestDBImpl) GetByThread(ctx context.Context, threadID questtypes.ThreadID) (*questtypes.Quest, error) {
	var model Quest
	err := db.DB.NewSelect().Model(&model).Where("thread_id = ?", threadID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainQuest(&model), nil
}

func (db *QuestDBImpl) GetByEmbedMessage(ctx context.Context, messageID questtypes.MessageID) (*questtypes.Quest, error) {
	var model Quest
	err := db.DB.NewSelect().Model(&model).Where("embed_message_id = ?", messageID).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainQuest(&model), nil
}

// UpdateCAS writes the quest only if the stored version still matches
// quest.Version, bumping it by one. A miss returns ErrVersionConflict.
func (db *QuestDBImpl) UpdateCAS(ctx context.Context, quest *questtypes.Quest) error {
	model := toDBQuest(quest)
	model.Version = quest.Version + 1
	model.UpdatedAt = db.now()

	res, err := db.DB.NewUpdate().
		Model(model).
		ExcludeColumn("created_at").
		Where("quest_id = ?", quest.ID).
		Where("version = ?", quest.Version).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update quest %s: %w", quest.ID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrVersionConflict
	}

	quest.Version = model.Version
	quest.UpdatedAt = model.UpdatedAt
	return nil
}

func (db *QuestDBImpl) Delete(ctx context.Context, id questtypes.QuestID) error {
	res, err := db.DB.NewDelete().Model((*Quest)(nil)).Where("quest_id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete quest %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

func (db *QuestDBImpl) ListByGuild(ctx context.Context, guildID questtypes.GuildID) ([]questtypes.Quest, error) {
	var models []Quest
	err := db.DB.NewSelect().Model(&models).
		Where("guild_id = ?", guildID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainQuests(models), nil
}

func (db *QuestDBImpl) ListAll(ctx context.Context) ([]questtypes.Quest, error) {
	var models []Quest
	err := db.DB.NewSelect().Model(&models).Order("created_at ASC").Scan(ctx)
	if err != nil {
		return nil, err
	}
	return toDomainQuests(models), nil
}

func (db *QuestDBImpl) ClearGuildQuests(ctx context.Context, guildID questtypes.GuildID) (int, error) {
	res, err := db.DB.NewDelete().Model((*Quest)(nil)).Where("guild_id = ?", guildID).Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear quests for guild %s: %w", guildID, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(affected), nil
}

func toDomainQuests(models []Quest) []questtypes.Quest {
	out := make([]questtypes.Quest, 0, len(models))
	for i := range models {
		out = append(out, *toDomainQuest(&models[i]))
	}
	return out
}

func (db *QuestDBImpl) CreateApplication(ctx context.Context, app *questtypes.Application) error {
	model := toDBApplication(app)
	model.CreatedAt = db.now()

	if _, err := db.DB.NewInsert().Model(model).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert application %s: %w", app.ID, err)
	}
	app.CreatedAt = model.CreatedAt
	return nil
}

func (db *QuestDBImpl) GetApplication(ctx context.Context, id string) (*questtypes.Application, error) {
	var model QuestApplication
	err := db.DB.NewSelect().Model(&model).Where("application_id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainApplication(&model), nil
}

// ResolveApplication is terminal: the status flip only matches PENDING rows,
// so a second decision on the same application cannot double-apply.
func (db *QuestDBImpl) ResolveApplication(ctx context.Context, id string, status questtypes.ApplicationStatus, resolvedBy questtypes.UserID) (*questtypes.Application, error) {
	resolvedAt := db.now()
	res, err := db.DB.NewUpdate().
		Model((*QuestApplication)(nil)).
		Set("status = ?", status).
		Set("resolved_at = ?", resolvedAt).
		Set("resolved_by = ?", resolvedBy).
		Where("application_id = ?", id).
		Where("status = ?", questtypes.ApplicationPending).
		Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve application %s: %w", id, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if affected == 0 {
		if _, getErr := db.GetApplication(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrApplicationResolved
	}
	return db.GetApplication(ctx, id)
}

func (db *QuestDBImpl) PendingApplication(ctx context.Context, questID questtypes.QuestID, applicantID questtypes.UserID) (*questtypes.Application, error) {
	var model QuestApplication
	err := db.DB.NewSelect().Model(&model).
		Where("quest_id = ?", questID).
		Where("applicant_id = ?", applicantID).
		Where("status = ?", questtypes.ApplicationPending).
		Order("created_at DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return toDomainApplication(&model), nil
}
