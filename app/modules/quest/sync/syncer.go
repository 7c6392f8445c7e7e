package questsync

import (
	"context"
	"errors"
	"log/slog"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
)

// GatewayPublisher sends render commands toward the Discord gateway.
type GatewayPublisher interface {
	Publish(ctx context.Context, topic string, payload any) error
}

// ConfigSource resolves guild configuration for component rendering.
type ConfigSource interface {
	GetConfig(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error)
}

// SyncMetrics counts surface pushes by outcome.
type SyncMetrics interface {
	RecordSyncPush(ctx context.Context, surface, outcome string)
}

// Syncer pushes a quest's current state to its external surfaces. Every push
// is best effort: a failed surface is logged, counted and skipped, never
// retried, and never fails the job.
type Syncer struct {
	repo      questdb.Repository
	guilds    ConfigSource
	publisher GatewayPublisher
	logger    *slog.Logger
	metrics   SyncMetrics
}

// NewSyncer creates a new Syncer.
func NewSyncer(repo questdb.Repository, guilds ConfigSource, publisher GatewayPublisher, logger *slog.Logger, metrics SyncMetrics) *Syncer {
	return &Syncer{
		repo:      repo,
		guilds:    guilds,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// SyncEverywhere renders the quest snapshot onto the embed message and the
// thread title. The snapshot is what the job carried; the title write-back
// re-reads the live record so a stale snapshot cannot clobber a newer push.
func (s *Syncer) SyncEverywhere(ctx context.Context, quest *questtypes.Quest) {
	s.pushEmbed(ctx, quest, quest.Status)
	s.pushTitle(ctx, quest, "")
}

// SyncDeleted renders the terminal DELETED view from a snapshot. The record
// may already be purged, so nothing is read back or written back.
func (s *Syncer) SyncDeleted(ctx context.Context, quest *questtypes.Quest) {
	s.pushEmbed(ctx, quest, questtypes.StatusDeleted)

	title := CanonicalTitle(quest, questtypes.StatusDeleted)
	if quest.LastPushedTitle == title {
		s.metrics.RecordSyncPush(ctx, "thread_title", "skipped")
		return
	}
	s.publishRename(ctx, quest, title)
}

func (s *Syncer) pushEmbed(ctx context.Context, quest *questtypes.Quest, status questtypes.QuestStatus) {
	if quest.EmbedChannelID == "" || quest.EmbedMessageID == "" {
		// No embed was ever posted; the next AttachEmbedMessage catches up.
		s.metrics.RecordSyncPush(ctx, "embed", "skipped")
		return
	}

	moderated := s.joinModerated(ctx, quest.GuildID)
	payload := questevents.EmbedUpdatePayload{
		QuestID:   quest.ID,
		ChannelID: quest.EmbedChannelID,
		MessageID: quest.EmbedMessageID,
	}
	if status == questtypes.StatusDeleted {
		payload.Embed = DeletedEmbed(quest)
		payload.Components = DisabledComponents(quest.ID, moderated)
	} else {
		payload.Embed = Embed(quest)
		if quest.IsTerminal() {
			payload.Components = DisabledComponents(quest.ID, moderated)
		} else {
			payload.Components = RecruitComponents(quest.ID, moderated)
		}
	}

	if err := s.publisher.Publish(ctx, questevents.EmbedUpdate, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to push quest embed",
			slog.String("quest_id", string(quest.ID)),
			slog.Any("error", err),
		)
		s.metrics.RecordSyncPush(ctx, "embed", "error")
		return
	}
	s.metrics.RecordSyncPush(ctx, "embed", "ok")
}

// pushTitle renames the thread to the canonical title when it drifted from
// the last pushed one, then records the new title best effort. A lost
// write-back only costs one redundant rename later.
func (s *Syncer) pushTitle(ctx context.Context, quest *questtypes.Quest, statusOverride questtypes.QuestStatus) {
	live, err := s.repo.Get(ctx, quest.ID)
	if err != nil {
		if !errors.Is(err, questdb.ErrNotFound) {
			s.logger.WarnContext(ctx, "Failed to reload quest for title sync",
				slog.String("quest_id", string(quest.ID)),
				slog.Any("error", err),
			)
		}
		s.metrics.RecordSyncPush(ctx, "thread_title", "skipped")
		return
	}

	title := CanonicalTitle(live, statusOverride)
	if live.LastPushedTitle == title {
		s.metrics.RecordSyncPush(ctx, "thread_title", "skipped")
		return
	}

	if !s.publishRename(ctx, live, title) {
		return
	}

	live.LastPushedTitle = title
	if err := s.repo.UpdateCAS(ctx, live); err != nil {
		s.logger.DebugContext(ctx, "Skipped last-pushed-title write-back",
			slog.String("quest_id", string(live.ID)),
			slog.Any("error", err),
		)
	}
}

func (s *Syncer) publishRename(ctx context.Context, quest *questtypes.Quest, title string) bool {
	err := s.publisher.Publish(ctx, questevents.ThreadRename, questevents.ThreadRenamePayload{
		QuestID:  quest.ID,
		ThreadID: quest.ThreadID,
		Title:    title,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "Failed to push thread rename",
			slog.String("quest_id", string(quest.ID)),
			slog.Any("error", err),
		)
		s.metrics.RecordSyncPush(ctx, "thread_title", "error")
		return false
	}
	s.metrics.RecordSyncPush(ctx, "thread_title", "ok")
	return true
}

func (s *Syncer) joinModerated(ctx context.Context, guildID questtypes.GuildID) bool {
	config, err := s.guilds.GetConfig(ctx, guildID)
	if err != nil {
		return false
	}
	return config.EffectiveJoinMode() == guildtypes.JoinModerated
}
