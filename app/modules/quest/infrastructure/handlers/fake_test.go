package questhandlers

import (
	"context"

	questservice "github.com/aetherius-rpg/questboard/app/modules/quest/application"
	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	"github.com/aetherius-rpg/questboard/internal/results"
)

// FakeQuestService is a programmable Service stub. Each operation delegates
// to its Func field; unset fields return an empty result.
type FakeQuestService struct {
	HandleThreadCreatedFunc func(ctx context.Context, payload questevents.ThreadCreatedPayload) (results.OperationResult, error)
	CreateQuestFunc         func(ctx context.Context, payload questevents.RecruitRequestedPayload) (results.OperationResult, error)
	RegisterThreadFunc      func(ctx context.Context, payload questevents.RegisterRequestedPayload) (results.OperationResult, error)
	JoinFunc                func(ctx context.Context, payload questevents.JoinRequestedPayload) (results.OperationResult, error)
	ResolveApplicationFunc  func(ctx context.Context, payload questevents.DecisionRequestedPayload) (results.OperationResult, error)
	LeaveFunc               func(ctx context.Context, payload questevents.LeaveRequestedPayload) (results.OperationResult, error)
	KickFunc                func(ctx context.Context, payload questevents.KickRequestedPayload) (results.OperationResult, error)
	SetStatusFunc           func(ctx context.Context, payload questevents.StatusSetRequestedPayload) (results.OperationResult, error)
	UpdateFunc              func(ctx context.Context, payload questevents.UpdateRequestedPayload) (results.OperationResult, error)
	DeleteFunc              func(ctx context.Context, payload questevents.DeleteRequestedPayload) (results.OperationResult, error)
	InfoFunc                func(ctx context.Context, payload questevents.InfoRequestedPayload) (results.OperationResult, error)
	ListFunc                func(ctx context.Context, payload questevents.ListRequestedPayload) (results.OperationResult, error)
	AttachEmbedMessageFunc  func(ctx context.Context, payload questevents.EmbedPostedPayload) (results.OperationResult, error)
}

var _ questservice.Service = (*FakeQuestService)(nil)

func (f *FakeQuestService) HandleThreadCreated(ctx context.Context, payload questevents.ThreadCreatedPayload) (results.OperationResult, error) {
	if f.HandleThreadCreatedFunc != nil {
		return f.HandleThreadCreatedFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) CreateQuest(ctx context.Context, payload questevents.RecruitRequestedPayload) (results.OperationResult, error) {
	if f.CreateQuestFunc != nil {
		return f.CreateQuestFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) RegisterThread(ctx context.Context, payload questevents.RegisterRequestedPayload) (results.OperationResult, error) {
	if f.RegisterThreadFunc != nil {
		return f.RegisterThreadFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) Join(ctx context.Context, payload questevents.JoinRequestedPayload) (results.OperationResult, error) {
	if f.JoinFunc != nil {
		return f.JoinFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) ResolveApplication(ctx context.Context, payload questevents.DecisionRequestedPayload) (results.OperationResult, error) {
	if f.ResolveApplicationFunc != nil {
		return f.ResolveApplicationFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) Leave(ctx context.Context, payload questevents.LeaveRequestedPayload) (results.OperationResult, error) {
	if f.LeaveFunc != nil {
		return f.LeaveFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) Kick(ctx context.Context, payload questevents.KickRequestedPayload) (results.OperationResult, error) {
	if f.KickFunc != nil {
		return f.KickFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) SetStatus(ctx context.Context, payload questevents.StatusSetRequestedPayload) (results.OperationResult, error) {
	if f.SetStatusFunc != nil {
		return f.SetStatusFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) Update(ctx context.Context, payload questevents.UpdateRequestedPayload) (results.OperationResult, error) {
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) Delete(ctx context.Context, payload questevents.DeleteRequestedPayload) (results.OperationResult, error) {
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) Info(ctx context.Context, payload questevents.InfoRequestedPayload) (results.OperationResult, error) {
	if f.InfoFunc != nil {
		return f.InfoFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) List(ctx context.Context, payload questevents.ListRequestedPayload) (results.OperationResult, error) {
	if f.ListFunc != nil {
		return f.ListFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}

func (f *FakeQuestService) AttachEmbedMessage(ctx context.Context, payload questevents.EmbedPostedPayload) (results.OperationResult, error) {
	if f.AttachEmbedMessageFunc != nil {
		return f.AttachEmbedMessageFunc(ctx, payload)
	}
	return results.OperationResult{}, nil
}
