package questservice

import (
	"context"
	"testing"

	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	guilddb "github.com/aetherius-rpg/questboard/app/modules/guild/infrastructure/repositories"
	questevents "github.com/aetherius-rpg/questboard/app/modules/quest/domain/events"
	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
)

func TestHandleThreadCreated_RegistersQuest(t *testing.T) {
	env := newTestEnv()
	env.guilds.GetConfigFunc = func(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error) {
		return &guildtypes.GuildConfig{
			GuildID:        guildID,
			ForumChannelID: "forum-1",
			EmbedChannelID: "embed-chan-1",
			PingRoles: map[guildtypes.PingRoleKey]string{
				"ONLINE_ONESHOT": "role-online-oneshot",
			},
		}, nil
	}

	res, err := env.svc.HandleThreadCreated(context.Background(), questevents.ThreadCreatedPayload{
		GuildID:         "guild-1",
		ThreadID:        "thread-9",
		ParentChannelID: "forum-1",
		AuthorID:        "dm-1",
		Title:           "[RECRUITING] [ONLINE] [ONESHOT] [D&D] Lost Mine of Phandelver",
		Body:            "A classic starter adventure.",
	})
	if err != nil {
		t.Fatalf("HandleThreadCreated: %v", err)
	}
	created, ok := res.Success.(*questevents.QuestCreatedPayload)
	if !ok {
		t.Fatalf("expected QuestCreatedPayload, got %T", res.Success)
	}

	q := created.Quest
	if q.Title != "Lost Mine of Phandelver" {
		t.Errorf("title = %q", q.Title)
	}
	if q.Status != questtypes.StatusRecruiting || q.Mode != questtypes.ModeOnline || q.QuestType != questtypes.TypeOneshot {
		t.Errorf("parsed fields wrong: %+v", q)
	}
	if q.System != "D&D" {
		t.Errorf("system = %q, want D&D", q.System)
	}
	if q.DMID != "dm-1" {
		t.Errorf("dm = %q", q.DMID)
	}
	if created.PingRoleID != "role-online-oneshot" {
		t.Errorf("ping role = %q", created.PingRoleID)
	}
	if created.SystemUnknown {
		t.Error("system was tagged, must not be flagged unknown")
	}
}

func TestHandleThreadCreated_DetectsSystemFromBody(t *testing.T) {
	env := newTestEnv()

	res, err := env.svc.HandleThreadCreated(context.Background(), questevents.ThreadCreatedPayload{
		GuildID:         "guild-1",
		ThreadID:        "thread-9",
		ParentChannelID: "forum-1",
		AuthorID:        "dm-1",
		Title:           "Curse of Strahd, weekly",
		Body:            "Looking for three players for a pathfinder campaign.",
	})
	if err != nil {
		t.Fatalf("HandleThreadCreated: %v", err)
	}
	created := res.Success.(*questevents.QuestCreatedPayload)
	if created.Quest.System != "PATHFINDER" {
		t.Errorf("system = %q, want PATHFINDER", created.Quest.System)
	}
}

func TestHandleThreadCreated_UnknownSystemFlagged(t *testing.T) {
	env := newTestEnv()

	res, err := env.svc.HandleThreadCreated(context.Background(), questevents.ThreadCreatedPayload{
		GuildID:         "guild-1",
		ThreadID:        "thread-9",
		ParentChannelID: "forum-1",
		AuthorID:        "dm-1",
		Title:           "Mystery night",
		Body:            "Bring snacks.",
	})
	if err != nil {
		t.Fatalf("HandleThreadCreated: %v", err)
	}
	created := res.Success.(*questevents.QuestCreatedPayload)
	if created.Quest.System != questtypes.SystemUnknown {
		t.Errorf("system = %q, want %s", created.Quest.System, questtypes.SystemUnknown)
	}
	if !created.SystemUnknown {
		t.Error("expected the unknown-system flag so the organizer gets nudged")
	}
}

func TestHandleThreadCreated_IgnoresOtherChannels(t *testing.T) {
	env := newTestEnv()

	res, err := env.svc.HandleThreadCreated(context.Background(), questevents.ThreadCreatedPayload{
		GuildID:         "guild-1",
		ThreadID:        "thread-9",
		ParentChannelID: "some-other-channel",
		AuthorID:        "dm-1",
		Title:           "Offtopic thread",
	})
	if err != nil {
		t.Fatalf("HandleThreadCreated: %v", err)
	}
	if res.Success != nil || res.Failure != nil {
		t.Errorf("expected a silent no-op, got %+v", res)
	}
}

func TestHandleThreadCreated_UnconfiguredGuildIsNoOp(t *testing.T) {
	env := newTestEnv()
	env.guilds.GetConfigFunc = func(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error) {
		return nil, guilddb.ErrNotFound
	}

	res, err := env.svc.HandleThreadCreated(context.Background(), questevents.ThreadCreatedPayload{
		GuildID: "guild-1", ThreadID: "thread-9", ParentChannelID: "forum-1", AuthorID: "dm-1",
	})
	if err != nil {
		t.Fatalf("HandleThreadCreated: %v", err)
	}
	if res.Success != nil || res.Failure != nil {
		t.Errorf("expected a silent no-op, got %+v", res)
	}
}

func TestHandleThreadCreated_DuplicateDeliveryIsNoOp(t *testing.T) {
	env := newTestEnv()
	seedQuest(env, func(q *questtypes.Quest) { q.ThreadID = "thread-9" })

	res, err := env.svc.HandleThreadCreated(context.Background(), questevents.ThreadCreatedPayload{
		GuildID: "guild-1", ThreadID: "thread-9", ParentChannelID: "forum-1", AuthorID: "dm-1",
		Title: "Replayed event",
	})
	if err != nil {
		t.Fatalf("HandleThreadCreated: %v", err)
	}
	if res.Success != nil || res.Failure != nil {
		t.Errorf("expected a silent no-op, got %+v", res)
	}
}

func TestCreateQuest_OptionsOverrideTitleTags(t *testing.T) {
	env := newTestEnv()

	res, err := env.svc.CreateQuest(context.Background(), questevents.RecruitRequestedPayload{
		GuildID:    "guild-1",
		ThreadID:   "thread-5",
		ActorID:    "dm-2",
		Title:      "[OFFLINE] [CAMPAIGN] Long game",
		Mode:       questtypes.ModeOnline,
		System:     "Delta Green",
		MaxPlayers: 5,
	})
	if err != nil {
		t.Fatalf("CreateQuest: %v", err)
	}
	created := res.Success.(*questevents.QuestCreatedPayload)
	if created.Quest.Mode != questtypes.ModeOnline {
		t.Errorf("mode = %s, option must win over the title tag", created.Quest.Mode)
	}
	if created.Quest.QuestType != questtypes.TypeCampaign {
		t.Errorf("quest type = %s, want CAMPAIGN from the title", created.Quest.QuestType)
	}
	if created.Quest.System != "Delta Green" {
		t.Errorf("system = %q", created.Quest.System)
	}
	if created.Quest.MaxPlayers != 5 {
		t.Errorf("max players = %d", created.Quest.MaxPlayers)
	}
}

func TestCreateQuest_UnconfiguredGuildFails(t *testing.T) {
	env := newTestEnv()
	env.guilds.GetConfigFunc = func(ctx context.Context, guildID questtypes.GuildID) (*guildtypes.GuildConfig, error) {
		return nil, guilddb.ErrNotFound
	}

	res, err := env.svc.CreateQuest(context.Background(), questevents.RecruitRequestedPayload{
		GuildID: "guild-1", ThreadID: "thread-5", ActorID: "dm-2", Title: "No setup yet",
	})
	if err != nil {
		t.Fatalf("CreateQuest: %v", err)
	}
	failure, ok := res.Failure.(*questevents.QuestFailedPayload)
	if !ok || failure.Reason != ErrGuildNotConfigured.Error() {
		t.Errorf("expected not-configured failure, got %+v", res)
	}
}

func TestRegisterThread_AlreadyRegisteredFails(t *testing.T) {
	env := newTestEnv()
	seedQuest(env, nil)

	res, err := env.svc.RegisterThread(context.Background(), questevents.RegisterRequestedPayload{
		GuildID: "guild-1", ThreadID: "thread-1", ActorID: "dm-2", Title: "Again",
	})
	if err != nil {
		t.Fatalf("RegisterThread: %v", err)
	}
	failure, ok := res.Failure.(*questevents.QuestFailedPayload)
	if !ok || failure.Reason != ErrThreadRegistered.Error() {
		t.Errorf("expected already-registered failure, got %+v", res)
	}
}

func TestGeneratedQuestIDsAreSequential(t *testing.T) {
	env := newTestEnv()
	ctx := context.Background()

	first, err := env.repo.GenerateQuestID(ctx)
	if err != nil {
		t.Fatalf("GenerateQuestID: %v", err)
	}
	second, err := env.repo.GenerateQuestID(ctx)
	if err != nil {
		t.Fatalf("GenerateQuestID: %v", err)
	}
	if first != "230826-0001" || second != "230826-0002" {
		t.Errorf("ids = %s, %s", first, second)
	}
}
