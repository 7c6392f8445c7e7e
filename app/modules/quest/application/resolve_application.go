package questservice

import (
	"context"
	"errors"
	"log/slog"

	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// ResolveApplication handles an organizer's accept/decline click. The
// decision is terminal: the PENDING guard in the store means a second click
// on the same application cannot double-apply. An accept that finds the
// roster full leaves the application pending so the organizer can decide
// again once a slot frees up.
func (s *QuestService) ResolveApplication(ctx context.Context, payload questevents.DecisionRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "ResolveApplication", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		claims, err := s.tokens.ValidateDecisionToken(payload.Token)
		if err != nil {
			return questFailure(payload.GuildID, "", payload.ActorID, ErrInvalidDecision), nil
		}

		app, err := s.repo.GetApplication(ctx, claims.ApplicationID)
		if err != nil {
			if errors.Is(err, questdb.ErrNotFound) {
				return questFailure(payload.GuildID, questtypes.QuestID(claims.QuestID), payload.ActorID, ErrInvalidDecision), nil
			}
			return results.OperationResult{}, err
		}
		if app.Status != questtypes.ApplicationPending {
			return questFailure(payload.GuildID, app.QuestID, payload.ActorID, ErrDecisionResolved), nil
		}

		quest, err := s.repo.Get(ctx, app.QuestID)
		if err != nil {
			if errors.Is(err, questdb.ErrNotFound) {
				// The quest is gone; close the application out.
				if _, resolveErr := s.repo.ResolveApplication(ctx, app.ID, questtypes.ApplicationDeclined, payload.ActorID); resolveErr != nil && !errors.Is(resolveErr, questdb.ErrApplicationResolved) {
					return results.OperationResult{}, resolveErr
				}
				return questFailure(payload.GuildID, app.QuestID, payload.ActorID, ErrQuestNotFound), nil
			}
			return results.OperationResult{}, err
		}

		if !canManage(quest, payload.ActorID, payload.IsAdmin) {
			return questFailure(payload.GuildID, quest.ID, payload.ActorID, ErrNotAuthorized), nil
		}

		if !payload.Accept {
			return s.declineApplication(ctx, quest, app, payload.ActorID)
		}
		return s.acceptApplication(ctx, quest, app, payload)
	})
}

func (s *QuestService) declineApplication(ctx context.Context, quest *questtypes.Quest, app *questtypes.Application, actor questtypes.UserID) (results.OperationResult, error) {
	resolved, err := s.repo.ResolveApplication(ctx, app.ID, questtypes.ApplicationDeclined, actor)
	if err != nil {
		if errors.Is(err, questdb.ErrApplicationResolved) {
			return questFailure(quest.GuildID, quest.ID, actor, ErrDecisionResolved), nil
		}
		return results.OperationResult{}, err
	}

	return results.OperationResult{Success: &questevents.DecisionResolvedPayload{
		Quest:       *quest,
		Application: *resolved,
		Accepted:    false,
	}}, nil
}

func (s *QuestService) acceptApplication(ctx context.Context, quest *questtypes.Quest, app *questtypes.Application, payload questevents.DecisionRequestedPayload) (results.OperationResult, error) {
	// Reject the accept outright while the roster is visibly full; the
	// application stays pending.
	if quest.IsTerminal() {
		return questFailure(quest.GuildID, quest.ID, payload.ActorID, ErrQuestClosed), nil
	}
	if !quest.HasCapacity() {
		return questFailure(quest.GuildID, quest.ID, payload.ActorID,
			errors.New("the roster filled up; the application stays pending")), nil
	}
	if quest.OnRoster(app.ApplicantID) || quest.OnWaitlist(app.ApplicantID) {
		// The applicant got in some other way; close the application out.
		if _, err := s.repo.ResolveApplication(ctx, app.ID, questtypes.ApplicationDeclined, payload.ActorID); err != nil && !errors.Is(err, questdb.ErrApplicationResolved) {
			return results.OperationResult{}, err
		}
		return questFailure(quest.GuildID, quest.ID, payload.ActorID, ErrAlreadyMember), nil
	}

	resolved, err := s.repo.ResolveApplication(ctx, app.ID, questtypes.ApplicationAccepted, payload.ActorID)
	if err != nil {
		if errors.Is(err, questdb.ErrApplicationResolved) {
			return questFailure(quest.GuildID, quest.ID, payload.ActorID, ErrDecisionResolved), nil
		}
		return results.OperationResult{}, err
	}

	// The roster write re-checks capacity under CAS; a racing direct join
	// may have taken the slot, in which case the applicant is queued.
	res, err := s.mutateQuest(ctx, quest.ID, func(current *questtypes.Quest) (results.OperationResult, error) {
		if current.OnRoster(app.ApplicantID) || current.OnWaitlist(app.ApplicantID) {
			return results.OperationResult{Success: &questevents.DecisionResolvedPayload{
				Quest:       *current,
				Application: *resolved,
				Accepted:    true,
			}}, nil
		}
		if current.HasCapacity() {
			current.Roster = append(current.Roster, app.ApplicantID)
			current.DeriveStatus()
			return results.OperationResult{Success: &questevents.DecisionResolvedPayload{
				Quest:       *current,
				Application: *resolved,
				Accepted:    true,
			}}, nil
		}
		current.Waitlist = append(current.Waitlist, app.ApplicantID)
		return results.OperationResult{Success: &questevents.DecisionResolvedPayload{
			Quest:       *current,
			Application: *resolved,
			Accepted:    true,
			Waitlisted:  true,
		}}, nil
	})
	if err != nil || res.Failure != nil {
		return res, err
	}

	s.logger.InfoContext(ctx, "Application accepted",
		slog.String("quest_id", string(quest.ID)),
		slog.String("applicant_id", string(app.ApplicantID)),
	)

	s.syncFromResult(ctx, res)
	return res, nil
}
