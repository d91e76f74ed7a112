package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestExportService(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)

	for _, key := range []string{"lantern", "willow"} {
		require.NoError(t, repo.Participant().Create(ctx, nil, &models.Participant{Key: key, Study: "nlm_fb", StartTime: testNow}))
	}
	require.NoError(t, repo.Trial().CreateCritical(ctx, nil, []*models.CriticalTrial{
		{ParticipantID: 1, ItemID: "2_fb", TrialIndex: 2, Response: "basket", IsCorrect: true, ReactionTime: 2500},
	}))

	svc := NewExportService(repo, "nlm_fb", testLogger(), validator.New())
	svc.(*exportService).now = func() time.Time { return testNow }

	t.Run("participants as csv", func(t *testing.T) {
		file, err := svc.Export(ctx, &ExportRequest{Model: models.ExportParticipant, Format: FormatCSV})
		require.NoError(t, err)
		assert.Equal(t, "nlm_fb_participant_2025-03-01-10-00-00.csv", file.Filename)
		assert.Equal(t, "text/csv", file.ContentType)

		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, "id", records[0][0])
		assert.Equal(t, "1", records[1][0])
		assert.Equal(t, "2", records[2][0])
	})

	t.Run("critical trials as xlsx", func(t *testing.T) {
		file, err := svc.Export(ctx, &ExportRequest{Model: models.ExportCritical, Format: FormatXLSX})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(file.Filename, ".xlsx"))

		f, err := excelize.OpenReader(bytes.NewReader(file.Data))
		require.NoError(t, err)
		defer f.Close()
		rows, err := f.GetRows(models.ExportCritical)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "basket", rows[1][13])
	})

	t.Run("empty attention checks", func(t *testing.T) {
		file, err := svc.Export(ctx, &ExportRequest{Model: models.ExportAttentionCheck, Format: FormatCSV})
		require.NoError(t, err)
		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		assert.Len(t, records, 1)
	})

	t.Run("rejects unknown model and format", func(t *testing.T) {
		_, err := svc.Export(ctx, &ExportRequest{Model: "answers", Format: FormatCSV})
		assert.True(t, IsValidation(err))

		_, err = svc.Export(ctx, &ExportRequest{Model: models.ExportCritical, Format: "pdf"})
		assert.True(t, IsValidation(err))
	})

	t.Run("critical stats", func(t *testing.T) {
		stats, err := svc.CriticalStats(ctx, "2_fb")
		require.NoError(t, err)
		assert.EqualValues(t, 1, stats.Total)
		assert.InDelta(t, 1.0, stats.CorrectRate, 1e-9)

		stats, err = svc.CriticalStats(ctx, "9_tb")
		require.NoError(t, err)
		assert.Zero(t, stats.Total)

		_, err = svc.CriticalStats(ctx, strings.Repeat("x", 81))
		assert.True(t, IsValidation(err))
	})
}

func TestExportService_Filters(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	ended := testNow.Add(time.Hour)

	participants := []*models.Participant{
		{Key: "lantern", Study: "nlm_fb", StartTime: testNow.Add(-48 * time.Hour), EndTime: &ended},
		{Key: "willow", Study: "nlm_fb", StartTime: testNow, EndTime: &ended},
		{Key: "harbor", Study: "nlm_fb", StartTime: testNow},
		{Key: "meadow", Study: "pilot", StartTime: testNow, EndTime: &ended},
	}
	for _, p := range participants {
		require.NoError(t, repo.Participant().Create(ctx, nil, p))
	}
	require.NoError(t, repo.Trial().CreateCritical(ctx, nil, []*models.CriticalTrial{
		{ParticipantID: participants[0].ID, ItemID: "2_fb", TrialIndex: 2, Response: "basket"},
		{ParticipantID: participants[1].ID, ItemID: "2_fb", TrialIndex: 2, Response: "box"},
		{ParticipantID: participants[1].ID, ItemID: "3_tb", TrialIndex: 2, Response: "bag"},
	}))

	svc := NewExportService(repo, "nlm_fb", testLogger(), validator.New())
	keys := func(file *ExportFile) []string {
		t.Helper()
		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		var out []string
		for _, r := range records[1:] {
			out = append(out, r[6]) // key
		}
		return out
	}

	t.Run("participants by study and finished", func(t *testing.T) {
		finished := true
		file, err := svc.Export(ctx, &ExportRequest{
			Model: models.ExportParticipant, Format: FormatCSV,
			Study: "nlm_fb", Finished: &finished, SortBy: "start_time", SortOrder: "desc",
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"willow", "lantern"}, keys(file))
		require.NotNil(t, file.Total)
		assert.EqualValues(t, 2, *file.Total)
	})

	t.Run("participants by start date with paging", func(t *testing.T) {
		from := testNow.Add(-time.Hour)
		file, err := svc.Export(ctx, &ExportRequest{
			Model: models.ExportParticipant, Format: FormatCSV,
			DateFrom: &from, Limit: 2, Offset: 1,
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"harbor", "meadow"}, keys(file))
		assert.EqualValues(t, 3, *file.Total)
	})

	t.Run("critical trials by participant and item", func(t *testing.T) {
		id := participants[1].ID
		file, err := svc.Export(ctx, &ExportRequest{
			Model: models.ExportCritical, Format: FormatCSV, ParticipantID: &id, ItemID: "3_tb",
		})
		require.NoError(t, err)
		records, err := csv.NewReader(bytes.NewReader(file.Data)).ReadAll()
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Contains(t, records[1], "bag")
		assert.Nil(t, file.Total)
	})

	t.Run("rejects bad sort and paging", func(t *testing.T) {
		_, err := svc.Export(ctx, &ExportRequest{Model: models.ExportParticipant, Format: FormatCSV, SortBy: "key"})
		assert.True(t, IsValidation(err))

		_, err = svc.Export(ctx, &ExportRequest{Model: models.ExportParticipant, Format: FormatCSV, Offset: -20})
		assert.True(t, IsValidation(err))
	})
}
