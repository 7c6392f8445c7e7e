package guildservice

import (
	"context"
	"strings"
	"testing"

	guildevents "github.com/aetherius-rpg/questboard/app/modules/guild/domain/events"
	guildtypes "github.com/aetherius-rpg/questboard/app/modules/guild/domain/types"
	"github.com/google/go-cmp/cmp"
)

func TestSetupConfig_SavesFullConfiguration(t *testing.T) {
	repo := NewFakeGuildRepository()
	svc := newTestService(repo)

	res, err := svc.SetupConfig(context.Background(), guildevents.SetupRequestedPayload{
		GuildID:        "guild-1",
		ActorID:        "admin-1",
		IsAdmin:        true,
		ForumChannelID: "forum-1",
		EmbedChannelID: "embed-1",
		JoinMode:       "MODERATED",
		PingRoles: map[string]string{
			"ONLINE_ONESHOT":   "role-oo",
			"OFFLINE_CAMPAIGN": "role-fc",
		},
	})
	if err != nil {
		t.Fatalf("SetupConfig: %v", err)
	}
	saved, ok := res.Success.(*guildevents.ConfigSavedPayload)
	if !ok {
		t.Fatalf("expected ConfigSavedPayload, got %+v", res)
	}

	stored := repo.Stored("guild-1")
	if stored == nil {
		t.Fatal("config not stored")
	}
	if stored.JoinMode != guildtypes.JoinModerated {
		t.Errorf("join mode = %s", stored.JoinMode)
	}
	want := map[guildtypes.PingRoleKey]string{
		"ONLINE_ONESHOT":   "role-oo",
		"OFFLINE_CAMPAIGN": "role-fc",
	}
	if diff := cmp.Diff(want, stored.PingRoles); diff != "" {
		t.Errorf("ping roles (-want +got):\n%s", diff)
	}
	if saved.Config.ForumChannelID != "forum-1" || saved.Config.EmbedChannelID != "embed-1" {
		t.Errorf("saved channels = %+v", saved.Config)
	}
}

func TestSetupConfig_ReplacesExisting(t *testing.T) {
	repo := NewFakeGuildRepository()
	svc := newTestService(repo)
	ctx := context.Background()

	base := guildevents.SetupRequestedPayload{
		GuildID: "guild-1", ActorID: "admin-1", IsAdmin: true,
		ForumChannelID: "forum-1", EmbedChannelID: "embed-1",
		PingRoles: map[string]string{"ONLINE_ONESHOT": "role-old"},
	}
	if _, err := svc.SetupConfig(ctx, base); err != nil {
		t.Fatalf("first SetupConfig: %v", err)
	}

	base.ForumChannelID = "forum-2"
	base.PingRoles = nil
	if _, err := svc.SetupConfig(ctx, base); err != nil {
		t.Fatalf("second SetupConfig: %v", err)
	}

	stored := repo.Stored("guild-1")
	if stored.ForumChannelID != "forum-2" {
		t.Errorf("forum = %s, want the rerun's channel", stored.ForumChannelID)
	}
	// Rerunning /setup without roles drops the old ones.
	if len(stored.PingRoles) != 0 {
		t.Errorf("ping roles = %v, want cleared", stored.PingRoles)
	}
}

func TestSetupConfig_Rejections(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*guildevents.SetupRequestedPayload)
		wantReason string
	}{
		{
			name:       "non-admin",
			mutate:     func(p *guildevents.SetupRequestedPayload) { p.IsAdmin = false },
			wantReason: ErrNotAuthorized.Error(),
		},
		{
			name:       "missing embed channel",
			mutate:     func(p *guildevents.SetupRequestedPayload) { p.EmbedChannelID = "" },
			wantReason: ErrMissingChannels.Error(),
		},
		{
			name:       "bad join mode",
			mutate:     func(p *guildevents.SetupRequestedPayload) { p.JoinMode = "VOTE" },
			wantReason: ErrInvalidJoinMode.Error(),
		},
		{
			name: "bad ping role key",
			mutate: func(p *guildevents.SetupRequestedPayload) {
				p.PingRoles = map[string]string{"WEEKEND_ONLY": "role-x"}
			},
			wantReason: ErrInvalidPingRole.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := NewFakeGuildRepository()
			svc := newTestService(repo)

			payload := guildevents.SetupRequestedPayload{
				GuildID: "guild-1", ActorID: "admin-1", IsAdmin: true,
				ForumChannelID: "forum-1", EmbedChannelID: "embed-1",
			}
			tt.mutate(&payload)

			res, err := svc.SetupConfig(context.Background(), payload)
			if err != nil {
				t.Fatalf("SetupConfig: %v", err)
			}
			failure, ok := res.Failure.(*guildevents.GuildFailedPayload)
			if !ok || !strings.Contains(failure.Reason, tt.wantReason) {
				t.Errorf("failure = %+v, want reason %q", res, tt.wantReason)
			}
			if repo.Stored("guild-1") != nil {
				t.Error("rejected setup must not store anything")
			}
		})
	}
}
