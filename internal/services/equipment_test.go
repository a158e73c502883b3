package services

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory-system/internal/dto"
	"inventory-system/pkg/constants"
	apperrors "inventory-system/pkg/errors"
)

func ptr(s string) *string { return &s }

func newEquipmentPayload(tag string) dto.CreateEquipmentDTO {
	return dto.CreateEquipmentDTO{
		NumeroPatrimonio:  tag,
		NumeroSerie:       "SN-" + tag,
		Marca:             "Dell",
		Modelo:            "Latitude 5420",
		TipoEquipamento:   "Notebook",
		DepartamentoAtual: "SEINTEC",
	}
}

func requireHTTPStatus(t *testing.T, err error, code int) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, code, apperrors.StatusCode(err), "error: %v", err)
}

func TestEquipmentService_CreateDefaultsAndAudit(t *testing.T) {
	env := newTestEnv()
	ctx := actorCtx(testStaff)

	created, err := env.equipments.CreateEquipment(ctx, newEquipmentPayload("PAT-001"))
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, constants.EquipmentStatusAvailable, created.Status)
	assert.False(t, created.ResponsavelAtual.Valid)
	assert.Equal(t, env.clock, created.CreatedAt)

	history := env.historyFor(created.ID)
	require.Len(t, history, 1)
	assert.Equal(t, constants.HistoryActionCreated, history[0].Action)
	assert.Equal(t, "Equipamento criado: PAT-001", history[0].Description)
	assert.Equal(t, testStaff.Username, history[0].User)
}

func TestEquipmentService_CreateHonoursExplicitStatus(t *testing.T) {
	env := newTestEnv()
	payload := newEquipmentPayload("PAT-002")
	payload.Status = constants.EquipmentStatusMaintenance
	payload.ResponsavelAtual = ptr("João Silva")

	created, err := env.equipments.CreateEquipment(actorCtx(testStaff), payload)
	require.NoError(t, err)
	assert.Equal(t, constants.EquipmentStatusMaintenance, created.Status)
	assert.Equal(t, "João Silva", created.ResponsavelAtual.String)
}

func TestEquipmentService_CreateDuplicateTagConflicts(t *testing.T) {
	env := newTestEnv()
	ctx := actorCtx(testStaff)

	_, err := env.equipments.CreateEquipment(ctx, newEquipmentPayload("PAT-001"))
	require.NoError(t, err)

	_, err = env.equipments.CreateEquipment(ctx, newEquipmentPayload("PAT-001"))
	requireHTTPStatus(t, err, http.StatusConflict)
	assert.ErrorIs(t, err, apperrors.ErrConflict)

	assert.Len(t, env.store.equipments, 1, "хранилище не должно измениться")
	assert.Len(t, env.store.history, 1)
}

func TestEquipmentService_List(t *testing.T) {
	env := newTestEnv()
	ctx := actorCtx(testStaff)

	for _, p := range []dto.CreateEquipmentDTO{
		newEquipmentPayload("PAT-001"),
		{NumeroPatrimonio: "PAT-002", NumeroSerie: "X1", Marca: "HP", Modelo: "EliteBook 840", TipoEquipamento: "Notebook", DepartamentoAtual: "PROTOCOLO"},
		{NumeroPatrimonio: "MON-001", NumeroSerie: "X2", Marca: "LG", Modelo: "24MK430", TipoEquipamento: "Monitor", DepartamentoAtual: "SEINTEC"},
	} {
		_, err := env.equipments.CreateEquipment(ctx, p)
		require.NoError(t, err)
	}

	all, err := env.equipments.GetEquipments(ctx, dto.EquipmentFilterDTO{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	filtered, err := env.equipments.GetEquipments(ctx, dto.EquipmentFilterDTO{Tipo: "Notebook", Departamento: "SEINTEC"})
	require.NoError(t, err)
	require.Len(t, filtered, 1)
	assert.Equal(t, "PAT-001", filtered[0].NumeroPatrimonio)

	searched, err := env.equipments.GetEquipments(ctx, dto.EquipmentFilterDTO{Search: "elitebook"})
	require.NoError(t, err)
	require.Len(t, searched, 1)
	assert.Equal(t, "PAT-002", searched[0].NumeroPatrimonio)
}

func TestEquipmentService_GetNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.equipments.GetEquipment(actorCtx(testStaff), "missing")
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestEquipmentService_UpdatePartial(t *testing.T) {
	env := newTestEnv()
	ctx := actorCtx(testStaff)
	created, err := env.equipments.CreateEquipment(ctx, newEquipmentPayload("PAT-001"))
	require.NoError(t, err)

	env.clock = env.clock.Add(time.Hour)
	updated, err := env.equipments.UpdateEquipment(ctx, created.ID, dto.UpdateEquipmentDTO{
		Marca:            ptr("Lenovo"),
		ResponsavelAtual: ptr("Maria Santos"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Lenovo", updated.Marca)
	assert.Equal(t, "Maria Santos", updated.ResponsavelAtual.String)
	assert.Equal(t, "Latitude 5420", updated.Modelo, "отсутствующие поля не меняются")
	assert.Equal(t, "SN-PAT-001", updated.NumeroSerie)
	assert.Equal(t, constants.EquipmentStatusAvailable, updated.Status)
	assert.Equal(t, env.clock, updated.UpdatedAt)
	assert.Equal(t, created.CreatedAt, updated.CreatedAt)

	stored := env.equipmentByTag("PAT-001")
	assert.Equal(t, "Lenovo", stored.Marca)

	history := env.historyFor(created.ID)
	require.Len(t, history, 2)
	assert.Equal(t, constants.HistoryActionUpdated, history[1].Action)
	assert.Equal(t, "Equipamento atualizado", history[1].Description)
}

func TestEquipmentService_UpdateNotFound(t *testing.T) {
	env := newTestEnv()
	_, err := env.equipments.UpdateEquipment(actorCtx(testStaff), "missing", dto.UpdateEquipmentDTO{Marca: ptr("HP")})
	requireHTTPStatus(t, err, http.StatusNotFound)
	assert.Empty(t, env.store.history)
}

func TestEquipmentService_DeleteRequiresAdmin(t *testing.T) {
	env := newTestEnv()
	created, err := env.equipments.CreateEquipment(actorCtx(testStaff), newEquipmentPayload("PAT-001"))
	require.NoError(t, err)

	err = env.equipments.DeleteEquipment(actorCtx(testStaff), created.ID)
	requireHTTPStatus(t, err, http.StatusForbidden)
	assert.Len(t, env.store.equipments, 1)

	err = env.equipments.DeleteEquipment(actorCtx(testAdmin), created.ID)
	require.NoError(t, err)
	assert.Empty(t, env.store.equipments)

	err = env.equipments.DeleteEquipment(actorCtx(testAdmin), created.ID)
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestEquipmentService_AttachTermo(t *testing.T) {
	env := newTestEnv()
	ctx := actorCtx(testStaff)
	created, err := env.equipments.CreateEquipment(ctx, newEquipmentPayload("PAT-001"))
	require.NoError(t, err)

	err = env.equipments.AttachTermo(ctx, created.ID, []byte("not a pdf"), "image/png")
	requireHTTPStatus(t, err, http.StatusBadRequest)
	assert.False(t, env.equipmentByTag("PAT-001").TermoResponsabilidade.Valid)

	content := []byte("%PDF-1.4 termo")
	require.NoError(t, env.equipments.AttachTermo(ctx, created.ID, content, constants.ContentTypePDF))

	stored := env.equipmentByTag("PAT-001")
	assert.Equal(t, base64.StdEncoding.EncodeToString(content), stored.TermoResponsabilidade.String)

	history, err := env.equipments.GetHistory(ctx, created.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, constants.HistoryActionTermUploaded, history[1].Action)
	assert.Equal(t, "Termo de responsabilidade anexado", history[1].Description)

	err = env.equipments.AttachTermo(ctx, "missing", content, constants.ContentTypePDF)
	requireHTTPStatus(t, err, http.StatusNotFound)
}

func TestEquipmentService_RequiresActor(t *testing.T) {
	env := newTestEnv()
	_, err := env.equipments.CreateEquipment(context.Background(), newEquipmentPayload("PAT-001"))
	requireHTTPStatus(t, err, http.StatusUnauthorized)
	assert.Empty(t, env.store.equipments)
}
