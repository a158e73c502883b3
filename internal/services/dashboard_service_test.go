package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/dto"
	"inventory-system/pkg/constants"
)

func TestDashboardService_GetDashboardStats(t *testing.T) {
	env := newTestEnv()
	ctx := actorCtx(testStaff)
	seedEquipments(t, env, "PAT-001", "PAT-002", "PAT-003")

	broken := newEquipmentPayload("PAT-004")
	broken.Status = constants.EquipmentStatusMaintenance
	_, err := env.equipments.CreateEquipment(ctx, broken)
	require.NoError(t, err)

	retired := newEquipmentPayload("PAT-005")
	retired.Status = constants.EquipmentStatusDecommissioned
	_, err = env.equipments.CreateEquipment(ctx, retired)
	require.NoError(t, err)

	_, err = env.loans.CreateLoan(ctx, newLoanPayload("PAT-001", "PAT-002"))
	require.NoError(t, err)

	stats, err := env.dashboard.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, dto.DashboardStatsDTO{
		TotalEquipments: 5,
		Available:       1,
		Loaned:          2,
		Maintenance:     1,
		ActiveLoans:     1,
		OverdueLoans:    0,
	}, *stats)
	assert.LessOrEqual(t, stats.Available+stats.Loaned+stats.Maintenance, stats.TotalEquipments)
}
