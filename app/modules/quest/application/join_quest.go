package questservice

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	"github.com/aetherius-rpg/questboard/internal/results"
	"github.com/google/uuid"
)

// Join handles a join/apply click. The guild's join mode decides whether the
// actor lands on the roster directly or opens a moderated application.
func (s *QuestService) Join(ctx context.Context, payload questevents.JoinRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Join", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		config, err := s.requireConfig(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		if config.EffectiveJoinMode() == guildtypes.JoinModerated {
			return s.openApplication(ctx, payload)
		}
		return s.directJoin(ctx, payload)
	})
}

func (s *QuestService) directJoin(ctx context.Context, payload questevents.JoinRequestedPayload) (results.OperationResult, error) {
	res, err := s.mutateQuest(ctx, payload.QuestID, func(quest *questtypes.Quest) (results.OperationResult, error) {
		if reject := joinRejection(quest, payload.ActorID); reject != nil {
			return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, reject), nil
		}

		if quest.HasCapacity() {
			quest.Roster = append(quest.Roster, payload.ActorID)
			quest.DeriveStatus()
			return results.OperationResult{Success: &questevents.QuestJoinedPayload{
				Quest:  *quest,
				UserID: payload.ActorID,
			}}, nil
		}

		quest.Waitlist = append(quest.Waitlist, payload.ActorID)
		return results.OperationResult{Success: &questevents.QuestWaitlistedPayload{
			Quest:    *quest,
			UserID:   payload.ActorID,
			Position: len(quest.Waitlist),
		}}, nil
	})
	if err != nil || res.Failure != nil {
		return res, err
	}

	s.syncFromResult(ctx, res)
	return res, nil
}

// openApplication is the moderated path: rate-limited, persisted, and handed
// to the organizer as a signed accept/decline decision.
func (s *QuestService) openApplication(ctx context.Context, payload questevents.JoinRequestedPayload) (results.OperationResult, error) {
	quest, err := s.repo.Get(ctx, payload.QuestID)
	if err != nil {
		if errors.Is(err, questdb.ErrNotFound) {
			return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrQuestNotFound), nil
		}
		return results.OperationResult{}, err
	}

	if reject := joinRejection(quest, payload.ActorID); reject != nil {
		return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, reject), nil
	}

	allowed, retryAfter := s.limiter.CheckAndRecord(string(payload.ActorID), string(payload.QuestID))
	if !allowed {
		reason := fmt.Errorf("too many applications; try again in %s", retryAfter.Round(time.Second))
		return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, reason), nil
	}

	if _, err := s.repo.PendingApplication(ctx, payload.QuestID, payload.ActorID); err == nil {
		return questFailure(payload.GuildID, payload.QuestID, payload.ActorID, ErrApplicationPending), nil
	} else if !errors.Is(err, questdb.ErrNotFound) {
		return results.OperationResult{}, err
	}

	app := &questtypes.Application{
		ID:          uuid.New().String(),
		QuestID:     quest.ID,
		GuildID:     quest.GuildID,
		ApplicantID: payload.ActorID,
		Status:      questtypes.ApplicationPending,
		Message:     payload.Message,
	}
	if err := s.repo.CreateApplication(ctx, app); err != nil {
		return results.OperationResult{}, err
	}

	token, err := s.tokens.GenerateDecisionToken(app.ID, string(quest.ID), string(payload.ActorID))
	if err != nil {
		return results.OperationResult{}, err
	}

	s.logger.InfoContext(ctx, "Application opened",
		slog.String("quest_id", string(quest.ID)),
		slog.String("applicant_id", string(payload.ActorID)),
	)

	return results.OperationResult{Success: &questevents.ApplicationOpenedPayload{
		Quest:         *quest,
		Application:   *app,
		DecisionToken: token,
	}}, nil
}

// joinRejection returns the reason an actor cannot join, or nil.
func joinRejection(quest *questtypes.Quest, actor questtypes.UserID) error {
	if quest.IsTerminal() {
		return ErrQuestClosed
	}
	if actor == quest.DMID {
		return ErrOrganizerCannotJoin
	}
	if quest.OnRoster(actor) || quest.OnWaitlist(actor) {
		return ErrAlreadyMember
	}
	return nil
}

// syncFromResult pushes the quest carried in a success payload.
func (s *QuestService) syncFromResult(ctx context.Context, res results.OperationResult) {
	switch p := res.Success.(type) {
	case *questevents.QuestJoinedPayload:
		s.enqueueSync(ctx, &p.Quest)
	case *questevents.QuestWaitlistedPayload:
		s.enqueueSync(ctx, &p.Quest)
	case *questevents.QuestLeftPayload:
		s.enqueueSync(ctx, &p.Quest)
	case *questevents.QuestKickedPayload:
		s.enqueueSync(ctx, &p.Quest)
	case *questevents.QuestStatusSetPayload:
		s.enqueueSync(ctx, &p.Quest)
	case *questevents.QuestUpdatedPayload:
		s.enqueueSync(ctx, &p.Quest)
	case *questevents.DecisionResolvedPayload:
		if p.Accepted {
			s.enqueueSync(ctx, &p.Quest)
		}
	}
}
