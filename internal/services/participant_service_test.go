package services

import (
	"context"
	"testing"

	"github.com/SAP-F-2025/comprehension-service/internal/models"
	"github.com/SAP-F-2025/comprehension-service/internal/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

func TestParticipantService(t *testing.T) {
	ctx := context.Background()
	repo := testRepo(t)
	svc := NewParticipantService(repo, testLogger(), validator.New())
	participant := &models.Participant{Key: "lantern", Study: "nlm_fb", StartTime: testNow}
	require.NoError(t, repo.Participant().Create(ctx, nil, participant))
	id := participant.ID

	t.Run("UpdateDevice", func(t *testing.T) {
		err := svc.UpdateDevice(ctx, id, &DeviceRequest{
			UAHeader: "Mozilla/5.0", Width: ptr(1920), Height: ptr(1080), WorkerID: "W1",
		})
		require.NoError(t, err)

		p, err := repo.Participant().GetByID(ctx, nil, id)
		require.NoError(t, err)
		assert.Equal(t, "Mozilla/5.0", p.UAHeader)
		assert.Equal(t, 1920, *p.ScreenWidth)
		assert.Equal(t, "W1", p.WorkerID)
		assert.Contains(t, p.Notes, `"ua_header":"Mozilla/5.0"`)
	})

	t.Run("RecordDemographics", func(t *testing.T) {
		err := svc.RecordDemographics(ctx, id, &DemographicsRequest{
			BirthYear:     ptr(1991),
			Gender:        ptr(models.GenderNonBinary),
			NativeEnglish: ptr(true),
			Dyslexia:      ptr(false),
			Vision:        ptr("normal"),
		})
		require.NoError(t, err)

		p, err := repo.Participant().GetByID(ctx, nil, id)
		require.NoError(t, err)
		assert.Equal(t, 1991, *p.BirthYear)
		assert.Equal(t, models.GenderNonBinary, *p.Gender)
		assert.True(t, *p.NativeEnglish)
		assert.Nil(t, p.ADHD)
	})

	t.Run("RecordDemographics rejects bad input", func(t *testing.T) {
		err := svc.RecordDemographics(ctx, id, &DemographicsRequest{Gender: ptr(models.Gender("robot"))})
		assert.True(t, IsValidation(err))

		err = svc.RecordDemographics(ctx, id, &DemographicsRequest{BirthYear: ptr(1850)})
		assert.True(t, IsValidation(err))

		p, err := repo.Participant().GetByID(ctx, nil, id)
		require.NoError(t, err)
		assert.Equal(t, 1991, *p.BirthYear, "rejected demographics must not be stored")
	})

	t.Run("RecordDebrief", func(t *testing.T) {
		require.NoError(t, svc.RecordDebrief(ctx, id, &DebriefRequest{PostTestPurpose: ptr("memory")}))

		p, err := repo.Participant().GetByID(ctx, nil, id)
		require.NoError(t, err)
		assert.Equal(t, "memory", *p.PostTestPurpose)
		assert.Nil(t, p.PostTestOther)
	})

	t.Run("GetWithTrials", func(t *testing.T) {
		require.NoError(t, repo.Trial().CreateAttentionChecks(ctx, nil, []*models.AttentionCheckTrial{
			{ParticipantID: id, ItemID: "2_fb_basket_box", QuestionID: "start_loc", Response: "basket", IsCorrect: true},
		}))

		p, err := svc.GetWithTrials(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, p.CriticalTrials)
		require.Len(t, p.AttentionCheckTrials, 1)
		assert.Equal(t, "start_loc", p.AttentionCheckTrials[0].QuestionID)
	})

	t.Run("unknown participant", func(t *testing.T) {
		_, err := svc.GetWithTrials(ctx, 9999)
		assert.ErrorIs(t, err, ErrParticipantNotFound)

		err = svc.RecordDebrief(ctx, 9999, &DebriefRequest{})
		assert.ErrorIs(t, err, ErrParticipantNotFound)
		assert.True(t, IsNotFound(err))
	})
}
