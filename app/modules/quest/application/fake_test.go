package questservice

import (
	"context"
	"fmt"
	"sync"
	"time"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	questdb "github.com/aetherius-rpg/questboard/app/modules/quest/infrastructure/repositories"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/aetherius-rpg/questboard/pkg/jwt"
	"go.opentelemetry.io/otel/trace/noop"
)

// ------------------------
// Fake Quest Repo
// ------------------------

// FakeQuestRepository is an in-memory Repository with programmable overrides
// for failure injection. The default behavior honors the real store's
// version compare-and-swap semantics.
type FakeQuestRepository struct {
	mu     sync.Mutex
	trace  []string
	quests map[questtypes.QuestID]*questtypes.Quest
	apps   map[string]*questtypes.Application
	nextID int

	GetFunc       func(ctx context.Context, id questtypes.QuestID) (*questtypes.Quest, error)
	UpdateCASFunc func(ctx context.Context, quest *questtypes.Quest) error
	CreateFunc    func(ctx context.Context, quest *questtypes.Quest) error
}

func NewFakeQuestRepository() *FakeQuestRepository {
	return &FakeQuestRepository{
		quests: make(map[questtypes.QuestID]*questtypes.Quest),
		apps:   make(map[string]*questtypes.Application),
	}
}

func (f *FakeQuestRepository) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

// Trace returns the sequence of method calls made to the fake.
func (f *FakeQuestRepository) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// Seed installs a quest directly, bypassing the trace.
func (f *FakeQuestRepository) Seed(quest *questtypes.Quest) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if quest.Version == 0 {
		quest.Version = 1
	}
	f.quests[quest.ID] = quest.Clone()
}

// SeedApplication installs an application directly.
func (f *FakeQuestRepository) SeedApplication(app *questtypes.Application) {
	f.mu.Lock()
	defer f.mu.Unlock()
	copied := *app
	f.apps[app.ID] = &copied
}

// Stored returns the current stored state of a quest.
func (f *FakeQuestRepository) Stored(id questtypes.QuestID) *questtypes.Quest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if q, ok := f.quests[id]; ok {
		return q.Clone()
	}
	return nil
}

// StoredApplication returns the current stored state of an application.
func (f *FakeQuestRepository) StoredApplication(id string) *questtypes.Application {
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.apps[id]; ok {
		copied := *a
		return &copied
	}
	return nil
}

func (f *FakeQuestRepository) GenerateQuestID(ctx context.Context) (questtypes.QuestID, error) {
	f.record("GenerateQuestID")
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	return questtypes.QuestID(fmt.Sprintf("230826-%04d", f.nextID)), nil
}

func (f *FakeQuestRepository) Create(ctx context.Context, quest *questtypes.Quest) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, quest)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	quest.Version = 1
	quest.CreatedAt = time.Now()
	quest.UpdatedAt = quest.CreatedAt
	f.quests[quest.ID] = quest.Clone()
	return nil
}

func (f *FakeQuestRepository) Get(ctx context.Context, id questtypes.QuestID) (*questtypes.Quest, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if q, ok := f.quests[id]; ok {
		return q.Clone(), nil
	}
	return nil, questdb.ErrNotFound
}

func (f *FakeQuestRepository) GetByThread(ctx context.Context, threadID questtypes.ThreadID) (*questtypes.Quest, error) {
	f.record("GetByThread")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.quests {
		if q.ThreadID == threadID {
			return q.Clone(), nil
		}
	}
	return nil, questdb.ErrNotFound
}

func (f *FakeQuestRepository) GetByEmbedMessage(ctx context.Context, messageID questtypes.MessageID) (*questtypes.Quest, error) {
	f.record("GetByEmbedMessage")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, q := range f.quests {
		if q.EmbedMessageID == messageID {
			return q.Clone(), nil
		}
	}
	return nil, questdb.ErrNotFound
}

func (f *FakeQuestRepository) UpdateCAS(ctx context.Context, quest *questtypes.Quest) error {
	f.record("UpdateCAS")
	if f.UpdateCASFunc != nil {
		return f.UpdateCASFunc(ctx, quest)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	stored, ok := f.quests[quest.ID]
	if !ok || stored.Version != quest.Version {
		return questdb.ErrVersionConflict
	}
	quest.Version++
	quest.UpdatedAt = time.Now()
	f.quests[quest.ID] = quest.Clone()
	return nil
}

func (f *FakeQuestRepository) Delete(ctx context.Context, id questtypes.QuestID) error {
	f.record("Delete")
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.quests[id]; !ok {
		return questdb.ErrNotFound
	}
	delete(f.quests, id)
	return nil
}

func (f *FakeQuestRepository) ListByGuild(ctx context.Context, guildID questtypes.GuildID) ([]questtypes.Quest, error) {
	f.record("ListByGuild")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []questtypes.Quest
	for _, q := range f.quests {
		if q.GuildID == guildID {
			out = append(out, *q.Clone())
		}
	}
	return out, nil
}

func (f *FakeQuestRepository) ListAll(ctx context.Context) ([]questtypes.Quest, error) {
	f.record("ListAll")
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []questtypes.Quest
	for _, q := range f.quests {
		out = append(out, *q.Clone())
	}
	return out, nil
}

func (f *FakeQuestRepository) ClearGuildQuests(ctx context.Context, guildID questtypes.GuildID) (int, error) {
	f.record("ClearGuildQuests")
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for id, q := range f.quests {
		if q.GuildID == guildID {
			delete(f.quests, id)
			count++
		}
	}
	return count, nil
}

func (f *FakeQuestRepository) CreateApplication(ctx context.Context, app *questtypes.Application) error {
	f.record("CreateApplication")
	f.mu.Lock()
	defer f.mu.Unlock()
	app.CreatedAt = time.Now()
	copied := *app
	f.apps[app.ID] = &copied
	return nil
}

func (f *FakeQuestRepository) GetApplication(ctx context.Context, id string) (*questtypes.Application, error) {
	f.record("GetApplication")
	f.mu.Lock()
	defer f.mu.Unlock()
	if a, ok := f.apps[id]; ok {
		copied := *a
		return &copied, nil
	}
	return nil, questdb.ErrNotFound
}

func (f *FakeQuestRepository) ResolveApplication(ctx context.Context, id string, status questtypes.ApplicationStatus, resolvedBy questtypes.UserID) (*questtypes.Application, error) {
	f.record("ResolveApplication")
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.apps[id]
	if !ok {
		return nil, questdb.ErrNotFound
	}
	if a.Status != questtypes.ApplicationPending {
		return nil, questdb.ErrApplicationResolved
	}
	now := time.Now()
	a.Status = status
	a.ResolvedAt = &now
	a.ResolvedBy = resolvedBy
	copied := *a
	return &copied, nil
}

func (f *FakeQuestRepository) PendingApplication(ctx context.Context, questID questtypes.QuestID, applicantID questtypes.UserID) (*questtypes.Application, error) {
	f.record("PendingApplication")
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.apps {
		if a.QuestID == questID && a.ApplicantID == applicantID && a.Status == questtypes.ApplicationPending {
			copied := *a
			return &copied, nil
		}
	}
	return nil, questdb.ErrNotFound
}

var _ questdb.Repository = (*FakeQuestRepository)(nil)

// ------------------------
// Fake collaborators
// ------------------------

type fakeGuildConfigs struct {
	GetConfigFunc func(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error)
}

func (f *fakeGuildConfigs) GetConfig(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error) {
	if f.GetConfigFunc != nil {
		return f.GetConfigFunc(ctx, guildID)
	}
	return &guildtypes.GuildConfig{
		GuildID:        guildID,
		ForumChannelID: "forum-1",
		EmbedChannelID: "embed-chan-1",
		JoinMode:       guildtypes.JoinDirect,
	}, nil
}

type fakeLimiter struct {
	allowed    bool
	retryAfter time.Duration
	calls      int
}

func (f *fakeLimiter) CheckAndRecord(userID, questID string) (bool, time.Duration) {
	f.calls++
	return f.allowed, f.retryAfter
}

type fakeSync struct {
	mu      sync.Mutex
	synced  []questtypes.Quest
	deleted []questtypes.Quest
}

func (f *fakeSync) EnqueueSync(ctx context.Context, quest questtypes.Quest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.synced = append(f.synced, quest)
	return nil
}

func (f *fakeSync) EnqueueDeleteSync(ctx context.Context, quest questtypes.Quest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, quest)
	return nil
}

func (f *fakeSync) SyncedIDs() []questtypes.QuestID {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []questtypes.QuestID
	for _, q := range f.synced {
		out = append(out, q.ID)
	}
	return out
}

// ------------------------
// Service under test
// ------------------------

type testEnv struct {
	svc     *QuestService
	repo    *FakeQuestRepository
	guilds  *fakeGuildConfigs
	limiter *fakeLimiter
	sync    *fakeSync
}

func newTestEnv() *testEnv {
	repo := NewFakeQuestRepository()
	guilds := &fakeGuildConfigs{}
	limiter := &fakeLimiter{allowed: true}
	syncer := &fakeSync{}
	obs := observability.NoOp()

	svc := NewQuestService(
		repo,
		guilds,
		limiter,
		jwt.NewService("test-secret", 0),
		syncer,
		obs.Logger,
		obs.Metrics,
		noop.NewTracerProvider().Tracer("test"),
	)
	return &testEnv{svc: svc, repo: repo, guilds: guilds, limiter: limiter, sync: syncer}
}
