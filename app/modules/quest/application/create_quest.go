package questservice

import (
	"context"
	"errors"
	"log/slog"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	guilddb "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/repositories"
	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	"github.com/aetherius-rpg/questboard/internal/results"
	"github.com/aetherius-rpg/questboard/internal/titleparser"
)

// HandleThreadCreated registers a quest automatically when a thread appears
// in the guild's watched forum channel. Threads elsewhere, unconfigured
// guilds and duplicate delivery are all silent no-ops.
func (s *QuestService) HandleThreadCreated(ctx context.Context, payload questevents.ThreadCreatedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "HandleThreadCreated", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		config, err := s.guilds.GetConfig(ctx, payload.GuildID)
		if err != nil {
			if errors.Is(err, guilddb.ErrNotFound) {
				return results.OperationResult{}, nil
			}
			return results.OperationResult{}, err
		}
		if config.ForumChannelID == "" || config.ForumChannelID != payload.ParentChannelID {
			return results.OperationResult{}, nil
		}

		if _, err := s.repo.GetByThread(ctx, payload.ThreadID); err == nil {
			// Duplicate gateway delivery.
			return results.OperationResult{}, nil
		} else if !errors.Is(err, questdb.ErrNotFound) {
			return results.OperationResult{}, err
		}

		parsed := titleparser.Parse(payload.Title)
		return s.createQuest(ctx, config, createInput{
			guildID:  payload.GuildID,
			threadID: payload.ThreadID,
			dmID:     payload.AuthorID,
			parsed:   parsed,
			body:     payload.Body,
		})
	})
}

// CreateQuest is the explicit /quest recruit path. Command options override
// whatever the title tags say.
func (s *QuestService) CreateQuest(ctx context.Context, payload questevents.RecruitRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "CreateQuest", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		config, err := s.requireConfig(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if config == nil {
			return questFailure(payload.GuildID, "", payload.ActorID, ErrGuildNotConfigured), nil
		}
		if payload.MaxPlayers < 0 {
			return questFailure(payload.GuildID, "", payload.ActorID, ErrInvalidMaxPlayers), nil
		}

		if _, err := s.repo.GetByThread(ctx, payload.ThreadID); err == nil {
			return questFailure(payload.GuildID, "", payload.ActorID, ErrThreadRegistered), nil
		} else if !errors.Is(err, questdb.ErrNotFound) {
			return results.OperationResult{}, err
		}

		parsed := titleparser.Parse(payload.Title)
		if payload.Mode != "" {
			parsed.Mode = string(payload.Mode)
		}
		if payload.QuestType != "" {
			parsed.QuestType = string(payload.QuestType)
		}
		if payload.System != "" {
			parsed.System = payload.System
		}

		return s.createQuest(ctx, config, createInput{
			guildID:    payload.GuildID,
			threadID:   payload.ThreadID,
			dmID:       payload.ActorID,
			parsed:     parsed,
			body:       payload.Body,
			maxPlayers: payload.MaxPlayers,
		})
	})
}

// RegisterThread adopts an existing thread as a quest, with the actor as
// organizer.
func (s *QuestService) RegisterThread(ctx context.Context, payload questevents.RegisterRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "RegisterThread", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		config, err := s.requireConfig(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if config == nil {
			return questFailure(payload.GuildID, "", payload.ActorID, ErrGuildNotConfigured), nil
		}
		if payload.MaxPlayers < 0 {
			return questFailure(payload.GuildID, "", payload.ActorID, ErrInvalidMaxPlayers), nil
		}

		if _, err := s.repo.GetByThread(ctx, payload.ThreadID); err == nil {
			return questFailure(payload.GuildID, "", payload.ActorID, ErrThreadRegistered), nil
		} else if !errors.Is(err, questdb.ErrNotFound) {
			return results.OperationResult{}, err
		}

		return s.createQuest(ctx, config, createInput{
			guildID:    payload.GuildID,
			threadID:   payload.ThreadID,
			dmID:       payload.ActorID,
			parsed:     titleparser.Parse(payload.Title),
			body:       payload.Body,
			maxPlayers: payload.MaxPlayers,
		})
	})
}

type createInput struct {
	guildID    questtypes.GuildID
	threadID   questtypes.ThreadID
	dmID       questtypes.UserID
	parsed     titleparser.Fields
	body       string
	maxPlayers int
}

// createQuest allocates an id, resolves the game system and persists the new
// record. System resolution order: title tag, body-text heuristic, UNKNOWN.
func (s *QuestService) createQuest(ctx context.Context, config *guildtypes.GuildConfig, in createInput) (results.OperationResult, error) {
	system := in.parsed.System
	if system == "" {
		system = titleparser.DetectSystem(in.body)
	}
	systemUnknown := false
	if system == "" {
		system = questtypes.SystemUnknown
		systemUnknown = true
	}

	status := questtypes.StatusRecruiting
	if in.parsed.Status != "" && in.parsed.Status != string(questtypes.StatusDeleted) {
		status = questtypes.QuestStatus(in.parsed.Status)
	}

	id, err := s.repo.GenerateQuestID(ctx)
	if err != nil {
		return results.OperationResult{}, err
	}

	quest := &questtypes.Quest{
		ID:         id,
		GuildID:    in.guildID,
		ThreadID:   in.threadID,
		DMID:       in.dmID,
		Title:      in.parsed.Title,
		Status:     status,
		Mode:       questtypes.QuestMode(in.parsed.Mode),
		QuestType:  questtypes.QuestType(in.parsed.QuestType),
		System:     system,
		MaxPlayers: in.maxPlayers,
		Roster:     []questtypes.UserID{},
		Waitlist:   []questtypes.UserID{},
	}

	if err := s.repo.Create(ctx, quest); err != nil {
		return results.OperationResult{}, err
	}

	s.logger.InfoContext(ctx, "Quest created",
		slog.String("quest_id", string(quest.ID)),
		slog.String("guild_id", string(quest.GuildID)),
		slog.String("system", quest.System),
	)

	return results.OperationResult{
		Success: &questevents.QuestCreatedPayload{
			Quest:          *quest,
			EmbedChannelID: config.EmbedChannelID,
			JoinMode:       string(config.EffectiveJoinMode()),
			PingRoleID:     config.PingRoleFor(quest.Mode, quest.QuestType),
			SystemUnknown:  systemUnknown,
		},
	}, nil
}

// requireConfig returns (nil, nil) when the guild has no config.
func (s *QuestService) requireConfig(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error) {
	config, err := s.guilds.GetConfig(ctx, guildID)
	if err != nil {
		if errors.Is(err, guilddb.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return config, nil
}
