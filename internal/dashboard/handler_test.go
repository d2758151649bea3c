package dashboard

import (
	"testing"
	"time"

	"github.com/DiegoBrito17/caixapro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var agora = time.Date(2026, 8, 28, 15, 45, 0, 0, time.UTC)

func TestIntervaloPeriodoHoje(t *testing.T) {
	inicio, fim, err := intervaloPeriodo("hoje", "", "", agora)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28", inicio.Format("2006-01-02"))
	assert.Equal(t, inicio, fim)

	// Período vazio equivale a hoje
	inicio2, _, err := intervaloPeriodo("", "", "", agora)
	require.NoError(t, err)
	assert.Equal(t, inicio, inicio2)
}

func TestIntervaloPeriodoSemana(t *testing.T) {
	inicio, fim, err := intervaloPeriodo("semana", "", "", agora)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-22", inicio.Format("2006-01-02"))
	assert.Equal(t, "2026-08-28", fim.Format("2006-01-02"))
}

func TestIntervaloPeriodoMes(t *testing.T) {
	inicio, _, err := intervaloPeriodo("mes", "", "", agora)
	require.NoError(t, err)
	assert.Equal(t, "2026-07-28", inicio.Format("2006-01-02"))
}

func TestIntervaloPeriodoCustom(t *testing.T) {
	inicio, fim, err := intervaloPeriodo("custom", "2026-08-01", "2026-08-15", agora)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", inicio.Format("2006-01-02"))
	assert.Equal(t, "2026-08-15", fim.Format("2006-01-02"))
}

func TestIntervaloPeriodoCustomInvalido(t *testing.T) {
	_, _, err := intervaloPeriodo("custom", "01/08/2026", "2026-08-15", agora)
	assert.Error(t, err)

	_, _, err = intervaloPeriodo("custom", "2026-08-15", "2026-08-01", agora)
	assert.Error(t, err, "fim antes do início é rejeitado")
}

func TestIntervaloPeriodoDesconhecido(t *testing.T) {
	_, _, err := intervaloPeriodo("trimestre", "", "", agora)
	assert.Error(t, err)
}

func TestFiltrarTurnoNormalizaOsDoisLados(t *testing.T) {
	caixas := []models.Caixa{
		{ID: 1, Turno: "Manhã"},
		{ID: 2, Turno: "manha"},
		{ID: 3, Turno: "Tarde"},
		{ID: 4, Turno: "NOITE"},
	}

	manha := filtrarTurno(caixas, "manha")
	require.Len(t, manha, 2, "rótulos livres do mesmo bucket contam juntos")
	assert.Equal(t, uint(1), manha[0].ID)
	assert.Equal(t, uint(2), manha[1].ID)

	tarde := filtrarTurno(caixas, "tarde")
	require.Len(t, tarde, 1)
	assert.Equal(t, uint(3), tarde[0].ID)
}

func TestFiltrarTurnoSemCorrespondencia(t *testing.T) {
	caixas := []models.Caixa{{ID: 1, Turno: "Noite"}}
	assert.Empty(t, filtrarTurno(caixas, "tarde"))
}
