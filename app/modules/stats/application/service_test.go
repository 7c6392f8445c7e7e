package statsservice

import (
	"bytes"
	"context"
	"testing"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	statsevents "github.com/aetherius-rpg/questboard/app/modules/stats/domain/events"
	"github.com/aetherius-rpg/questboard/internal/observability"
	"github.com/google/go-cmp/cmp"
	"github.com/xuri/excelize/v2"
)

type fakeQuestSource struct {
	quests  []questtypes.Quest
	cleared bool
}

func (f *fakeQuestSource) ListByGuild(_ context.Context, guildID questtypes.GuildID) ([]questtypes.Quest, error) {
	var out []questtypes.Quest
	for _, q := range f.quests {
		if q.GuildID == guildID {
			out = append(out, q)
		}
	}
	return out, nil
}

func (f *fakeQuestSource) ClearGuildQuests(_ context.Context, guildID questtypes.GuildID) (int, error) {
	count := 0
	kept := f.quests[:0]
	for _, q := range f.quests {
		if q.GuildID == guildID {
			count++
			continue
		}
		kept = append(kept, q)
	}
	f.quests = kept
	f.cleared = true
	return count, nil
}

func boardFixture() []questtypes.Quest {
	return []questtypes.Quest{
		{
			ID: "230826-0001", GuildID: "guild-1", Title: "Lost Mine",
			Status: questtypes.StatusRecruiting, Mode: questtypes.ModeOnline,
			QuestType: questtypes.TypeOneshot, System: "D&D",
			Roster: []questtypes.UserID{"a", "b"}, MaxPlayers: 4,
		},
		{
			ID: "230826-0002", GuildID: "guild-1", Title: "Strahd",
			Status: questtypes.StatusFull, Mode: questtypes.ModeOnline,
			QuestType: questtypes.TypeCampaign, System: "D&D",
			Roster:   []questtypes.UserID{"c", "d", "e"},
			Waitlist: []questtypes.UserID{"f"}, MaxPlayers: 3,
		},
		{
			ID: "230825-0001", GuildID: "guild-1", Title: "Masks of Nyarlathotep",
			Status: questtypes.StatusCompleted, Mode: questtypes.ModeOffline,
			QuestType: questtypes.TypeCampaign, System: "Call of Cthulhu",
			Roster:    []questtypes.UserID{"g"}, MaxPlayers: 5,
		},
		{
			ID: "230825-0002", GuildID: "guild-2", Title: "Other guild",
			Status: questtypes.StatusRecruiting, System: "Fate",
		},
	}
}

func newTestService(source *fakeQuestSource) *StatsService {
	obs := observability.NoOp()
	return NewStatsService(source, obs.Logger, obs.Metrics, obs.Tracer)
}

func TestOverview_Aggregates(t *testing.T) {
	svc := newTestService(&fakeQuestSource{quests: boardFixture()})

	res, err := svc.Overview(context.Background(), statsevents.OverviewRequestedPayload{
		GuildID: "guild-1", ActorID: "user-a",
	})
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	overview := res.Success.(*statsevents.OverviewPayload)

	stats := overview.Stats
	if stats.TotalQuests != 3 || stats.RosterSeats != 6 || stats.WaitlistedSeats != 1 {
		t.Errorf("counters = %+v", stats)
	}
	if stats.ByStatus[questtypes.StatusRecruiting] != 1 || stats.ByStatus[questtypes.StatusFull] != 1 {
		t.Errorf("by status = %v", stats.ByStatus)
	}
	if stats.ByMode[questtypes.ModeOnline] != 2 || stats.ByType[questtypes.TypeCampaign] != 2 {
		t.Errorf("by mode/type = %v / %v", stats.ByMode, stats.ByType)
	}

	wantSystems := []statsevents.SystemCount{
		{System: "D&D", Count: 2},
		{System: "Call of Cthulhu", Count: 1},
	}
	if diff := cmp.Diff(wantSystems, stats.TopSystems); diff != "" {
		t.Errorf("top systems (-want +got):\n%s", diff)
	}
}

func TestOverview_StatusFilter(t *testing.T) {
	svc := newTestService(&fakeQuestSource{quests: boardFixture()})

	res, err := svc.Overview(context.Background(), statsevents.OverviewRequestedPayload{
		GuildID: "guild-1", ActorID: "user-a", Status: questtypes.StatusCompleted,
	})
	if err != nil {
		t.Fatalf("Overview: %v", err)
	}
	stats := res.Success.(*statsevents.OverviewPayload).Stats
	if stats.TotalQuests != 1 || stats.ByStatus[questtypes.StatusCompleted] != 1 {
		t.Errorf("filtered stats = %+v", stats)
	}
}

func TestExport_WorkbookOpensAndListsQuests(t *testing.T) {
	svc := newTestService(&fakeQuestSource{quests: boardFixture()})

	res, err := svc.Export(context.Background(), statsevents.ExportRequestedPayload{
		GuildID: "guild-1", ActorID: "user-a",
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	export := res.Success.(*statsevents.ExportPayload)
	if export.Filename == "" || len(export.Workbook) == 0 {
		t.Fatalf("export = %+v", export)
	}
	if len(export.Chart) == 0 {
		t.Error("expected a status chart for a non-empty board")
	}

	f, err := excelize.OpenReader(bytes.NewReader(export.Workbook))
	if err != nil {
		t.Fatalf("OpenReader: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Quests")
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	// Header plus the guild's three quests.
	if len(rows) != 4 {
		t.Errorf("quest rows = %d, want 4", len(rows))
	}
	if rows[1][0] != "230826-0001" || rows[1][1] != "Lost Mine" {
		t.Errorf("first quest row = %v", rows[1])
	}

	overview, err := f.GetRows("Overview")
	if err != nil {
		t.Fatalf("GetRows overview: %v", err)
	}
	if overview[1][0] != "Total quests" || overview[1][1] != "3" {
		t.Errorf("overview rows = %v", overview[:2])
	}
}

func TestExport_EmptyBoardSkipsChart(t *testing.T) {
	svc := newTestService(&fakeQuestSource{})

	res, err := svc.Export(context.Background(), statsevents.ExportRequestedPayload{
		GuildID: "guild-1", ActorID: "user-a",
	})
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	export := res.Success.(*statsevents.ExportPayload)
	if len(export.Workbook) == 0 {
		t.Error("empty board still ships a workbook")
	}
	if len(export.Chart) != 0 {
		t.Error("no chart expected for an empty board")
	}
}

func TestClear(t *testing.T) {
	source := &fakeQuestSource{quests: boardFixture()}
	svc := newTestService(source)
	ctx := context.Background()

	res, err := svc.Clear(ctx, statsevents.ClearRequestedPayload{
		GuildID: "guild-1", ActorID: "user-a", IsAdmin: false,
	})
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	if failure, ok := res.Failure.(*statsevents.StatsFailedPayload); !ok || failure.Reason != ErrNotAuthorized.Error() {
		t.Errorf("expected authorization failure, got %+v", res)
	}
	if source.cleared {
		t.Fatal("non-admin clear must not touch the store")
	}

	res, err = svc.Clear(ctx, statsevents.ClearRequestedPayload{
		GuildID: "guild-1", ActorID: "admin-1", IsAdmin: true,
	})
	if err != nil {
		t.Fatalf("Clear: %v", err)
	}
	cleared := res.Success.(*statsevents.ClearedPayload)
	if cleared.Deleted != 3 {
		t.Errorf("deleted = %d, want 3", cleared.Deleted)
	}
	if remaining, _ := source.ListByGuild(ctx, "guild-2"); len(remaining) != 1 {
		t.Errorf("other guilds must be untouched, got %v", remaining)
	}
}
