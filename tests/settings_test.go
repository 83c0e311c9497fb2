package tests

import (
	"context"
	"testing"

	"hotelier/internal/dto"
	"hotelier/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_DefaultsWithoutPersistedRows(t *testing.T) {
	svc := service.NewSettingsService(newStubSettingRepo(), nil)
	require.NoError(t, svc.Load(context.Background()))

	snap := svc.Snapshot()
	assert.Equal(t, "USD", snap.Currency)
	assert.Equal(t, 50, snap.PageSize)
	assert.Equal(t, 11, snap.CheckoutHour)
	assert.Equal(t, 5, snap.StatsRecentLimit)
}

func TestSettings_UpdatePersistsAndRefreshesSnapshot(t *testing.T) {
	repo := newStubSettingRepo()
	svc := service.NewSettingsService(repo, nil)
	require.NoError(t, svc.Load(context.Background()))

	currency := "EUR"
	pageSize := 25
	resp, err := svc.Update(context.Background(), dto.UpdateSettingsRequest{
		Currency: &currency,
		PageSize: &pageSize,
	})
	require.NoError(t, err)

	assert.Equal(t, "EUR", resp.Currency)
	assert.Equal(t, 25, resp.PageSize)
	// untouched keys keep their defaults
	assert.Equal(t, 11, resp.CheckoutHour)

	assert.Equal(t, "EUR", repo.values["currency"])
	assert.Equal(t, "25", repo.values["page_size"])
}

func TestSettings_LoadSurvivesRestart(t *testing.T) {
	repo := newStubSettingRepo()

	first := service.NewSettingsService(repo, nil)
	require.NoError(t, first.Load(context.Background()))
	hour := 14
	_, err := first.Update(context.Background(), dto.UpdateSettingsRequest{CheckoutHour: &hour})
	require.NoError(t, err)

	second := service.NewSettingsService(repo, nil)
	require.NoError(t, second.Load(context.Background()))
	assert.Equal(t, 14, second.Snapshot().CheckoutHour)
}

func TestSettings_InvalidStoredValueFallsBackToDefault(t *testing.T) {
	repo := newStubSettingRepo()
	repo.values["page_size"] = "not-a-number"
	repo.values["checkout_hour"] = "99"

	svc := service.NewSettingsService(repo, nil)
	require.NoError(t, svc.Load(context.Background()))

	snap := svc.Snapshot()
	assert.Equal(t, 50, snap.PageSize)
	assert.Equal(t, 11, snap.CheckoutHour)
}
