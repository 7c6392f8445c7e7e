package statsservice

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	questtypes "github.com/aetherius-rpg/questboard/app/modules/quest/domain/types"
	statsevents "github.com/aetherius-rpg/questboard/app/modules/stats/domain/events"
	"github.com/aetherius-rpg/questboard/internal/results"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/xuri/excelize/v2"
)

// Export renders the guild's board into an xlsx workbook plus a status
// breakdown chart. The chart is omitted for empty boards; an empty workbook
// still ships so the command always answers with a file.
func (s *StatsService) Export(ctx context.Context, payload statsevents.ExportRequestedPayload) (results.OperationResult, error) {
	return s.withTelemetry(ctx, "Export", payload.GuildID, func(ctx context.Context) (results.OperationResult, error) {
		quests, err := s.quests.ListByGuild(ctx, payload.GuildID)
		if err != nil {
			return results.OperationResult{}, err
		}
		stats := aggregate(quests)

		workbook, err := buildWorkbook(quests, stats)
		if err != nil {
			return results.OperationResult{}, fmt.Errorf("failed to build workbook: %w", err)
		}

		chartPNG, err := renderStatusChart(stats)
		if err != nil {
			// The workbook alone is still a useful answer.
			s.logger.WarnContext(ctx, "Failed to render status chart",
				slog.String("guild_id", string(payload.GuildID)),
				slog.Any("error", err),
			)
			chartPNG = nil
		}

		return results.SuccessResult(&statsevents.ExportPayload{
			GuildID:  payload.GuildID,
			Filename: fmt.Sprintf("questboard-%s-%s.xlsx", payload.GuildID, time.Now().UTC().Format("20060102")),
			Workbook: workbook,
			Chart:    chartPNG,
		}), nil
	})
}

const (
	overviewSheet = "Overview"
	questsSheet   = "Quests"
)

func buildWorkbook(quests []questtypes.Quest, stats statsevents.GuildStats) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", overviewSheet); err != nil {
		return nil, err
	}

	rows := [][]any{
		{"Metric", "Value"},
		{"Total quests", stats.TotalQuests},
		{"Roster seats filled", stats.RosterSeats},
		{"Waitlisted players", stats.WaitlistedSeats},
	}
	for status, count := range stats.ByStatus {
		rows = append(rows, []any{fmt.Sprintf("Status %s", status), count})
	}
	for _, sc := range stats.TopSystems {
		rows = append(rows, []any{fmt.Sprintf("System %s", sc.System), sc.Count})
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(overviewSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	if _, err := f.NewSheet(questsSheet); err != nil {
		return nil, err
	}
	header := []any{"Quest ID", "Title", "Status", "Mode", "Type", "System", "Organizer", "Roster", "Waitlist", "Max players"}
	if err := f.SetSheetRow(questsSheet, "A1", &header); err != nil {
		return nil, err
	}
	for i, q := range quests {
		row := []any{
			string(q.ID), q.Title, string(q.Status), string(q.Mode), string(q.QuestType),
			q.System, string(q.DMID), len(q.Roster), len(q.Waitlist), q.MaxPlayers,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(questsSheet, cell, &row); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// renderStatusChart draws the status breakdown as a donut. Returns nil bytes
// for an empty board; go-chart cannot render zero values.
func renderStatusChart(stats statsevents.GuildStats) ([]byte, error) {
	var values []chart.Value
	for status, count := range stats.ByStatus {
		if count > 0 {
			values = append(values, chart.Value{Label: string(status), Value: float64(count)})
		}
	}
	if len(values) == 0 {
		return nil, nil
	}

	donut := chart.DonutChart{
		Title:  "Quests by status",
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := donut.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
