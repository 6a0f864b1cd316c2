package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/car4me/car4me/internal/database"
)

func newTestServer(t *testing.T, legacyCompat bool) (*Server, *database.DB) {
	t.Helper()

	db, err := database.New(database.Config{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate())

	return NewServer(db, 0, "", nil, legacyCompat), db
}

func doRequest(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealthEndpoint(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := doRequest(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ok", body["status"])
}

func TestClientLifecycleOverHTTP(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := doRequest(t, s, http.MethodPost, "/clientes", map[string]any{
		"nome":  "Ana Silva",
		"email": "ana@example.com",
		"nif":   "123456789",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "Ana Silva", created["nome"])
	assert.EqualValues(t, 1, created["id_cliente"])

	rec = doRequest(t, s, http.MethodGet, "/clientes/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	got := decode[map[string]any](t, rec)
	assert.Equal(t, false, got["tem_reservas"])

	rec = doRequest(t, s, http.MethodPut, "/clientes/1", map[string]any{
		"nome":  "Ana Santos",
		"email": "ana@example.com",
		"nif":   "123456789",
	})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, "/clientes/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	ack := decode[map[string]string](t, rec)
	assert.Equal(t, "Cliente eliminado com sucesso", ack["message"])

	rec = doRequest(t, s, http.MethodGet, "/clientes/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientCreateMissingFields(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := doRequest(t, s, http.MethodPost, "/clientes", map[string]any{"nome": "Ana"})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "Dados obrigatórios em falta", body["error"])
}

func TestVehicleInvalidIDIsBadRequest(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := doRequest(t, s, http.MethodGet, "/veiculos/abc", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "ID inválido", body["error"])
}

func TestVehicleDeleteBlockedOverHTTP(t *testing.T) {
	s, db := newTestServer(t, false)

	clientID, err := db.CreateClient(&database.Client{Name: "Ana", Email: "ana@example.com", TaxID: "123456789"})
	require.NoError(t, err)
	employeeID, err := db.CreateEmployee(&database.Employee{Name: "Marta", Email: "marta@example.com"})
	require.NoError(t, err)
	vehicleID, err := db.CreateVehicle(&database.Vehicle{
		Brand: "Toyota", Model: "RAV4", Plate: "AA-01-AA", Year: 2022,
		Status: database.VehicleStatusDefault,
	})
	require.NoError(t, err)
	_, err = db.CreateReservation(&database.Reservation{
		ClientID: clientID, VehicleID: vehicleID, EmployeeID: employeeID,
		StartDate: "2025-01-10 00:00:00", EndDate: "2025-01-15 00:00:00",
		Status: database.ReservationStatusActive,
	})
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodDelete, "/veiculos/1", nil)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "Não é possível apagar: o veículo possui reservas ativas ou canceladas.", body["error"])

	count, err := db.CountVehicleDeleteLogs(vehicleID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestVehicleListFilterQueryParams(t *testing.T) {
	s, db := newTestServer(t, false)

	_, err := db.CreateVehicle(&database.Vehicle{
		Brand: "Toyota", Model: "RAV4", Plate: "AA-01-AA", Year: 2022,
		Status: database.VehicleStatusDefault,
	})
	require.NoError(t, err)
	_, err = db.CreateVehicle(&database.Vehicle{
		Brand: "Renault", Model: "Clio", Plate: "BB-02-BB", Year: 2020,
		Status: "Alugado",
	})
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodGet, "/veiculos?marca=Toyota", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vehicles := decode[[]map[string]any](t, rec)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "RAV4", vehicles[0]["modelo"])
}

func TestVehicleListCategoryFilterParam(t *testing.T) {
	s, db := newTestServer(t, false)

	catID, err := db.CreateCategory(&database.Category{Name: "SUV", DayPrice: 55})
	require.NoError(t, err)

	_, err = db.CreateVehicle(&database.Vehicle{
		Brand: "Toyota", Model: "RAV4", Plate: "AA-01-AA", Year: 2022,
		Status: database.VehicleStatusDefault, CategoryID: &catID,
	})
	require.NoError(t, err)
	_, err = db.CreateVehicle(&database.Vehicle{
		Brand: "Renault", Model: "Clio", Plate: "BB-02-BB", Year: 2020,
		Status: database.VehicleStatusDefault,
	})
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodGet, fmt.Sprintf("/veiculos?id_categoria=%d", catID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vehicles := decode[[]map[string]any](t, rec)
	require.Len(t, vehicles, 1)
	assert.Equal(t, "RAV4", vehicles[0]["modelo"])
	assert.Equal(t, "SUV", vehicles[0]["categoria"])
}

func TestVehicleListLegacyCompatIgnoresFilters(t *testing.T) {
	s, db := newTestServer(t, true)

	_, err := db.CreateVehicle(&database.Vehicle{
		Brand: "Toyota", Model: "RAV4", Plate: "AA-01-AA", Year: 2022,
		Status: database.VehicleStatusDefault,
	})
	require.NoError(t, err)
	_, err = db.CreateVehicle(&database.Vehicle{
		Brand: "Renault", Model: "Clio", Plate: "BB-02-BB", Year: 2020,
		Status: "Alugado",
	})
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodGet, "/veiculos?marca=Toyota", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	vehicles := decode[[]map[string]any](t, rec)
	assert.Len(t, vehicles, 2)
}

func TestFavoriteRoutes(t *testing.T) {
	s, db := newTestServer(t, false)

	clientID, err := db.CreateClient(&database.Client{Name: "Ana", Email: "ana@example.com", TaxID: "123456789"})
	require.NoError(t, err)
	v1, err := db.CreateVehicle(&database.Vehicle{
		Brand: "Toyota", Model: "RAV4", Plate: "AA-01-AA", Year: 2022,
		Status: database.VehicleStatusDefault,
	})
	require.NoError(t, err)
	v2, err := db.CreateVehicle(&database.Vehicle{
		Brand: "Renault", Model: "Clio", Plate: "BB-02-BB", Year: 2020,
		Status: database.VehicleStatusDefault,
	})
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodPost, "/favoritos", []map[string]any{
		{"id_cliente": clientID, "id_veiculo": v1},
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	bulk := decode[map[string]any](t, rec)
	assert.EqualValues(t, 1, bulk["inseridos"])

	rec = doRequest(t, s, http.MethodGet, "/favoritos", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	groups := decode[[]map[string]any](t, rec)
	require.Len(t, groups, 1)

	rec = doRequest(t, s, http.MethodPut, "/clientes/1/favoritos/1", map[string]any{
		"novo_id_veiculo": v2,
	})
	require.Equal(t, http.StatusOK, rec.Code)
	repoint := decode[map[string]any](t, rec)
	assert.Equal(t, "Favorito atualizado com sucesso", repoint["message"])

	rec = doRequest(t, s, http.MethodDelete, "/clientes/1/favoritos/2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodDelete, "/clientes/1/favoritos/2", nil)
	require.Equal(t, http.StatusNotFound, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "Favorito não encontrado", body["error"])
}

func TestFavoriteCreateEmptyBody(t *testing.T) {
	s, _ := newTestServer(t, false)

	rec := doRequest(t, s, http.MethodPost, "/favoritos", []map[string]any{})
	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decode[map[string]string](t, rec)
	assert.Equal(t, "O body deve ser uma lista de favoritos", body["error"])
}

func TestReservationCreateOverHTTP(t *testing.T) {
	s, db := newTestServer(t, false)

	clientID, err := db.CreateClient(&database.Client{Name: "Ana", Email: "ana@example.com", TaxID: "123456789"})
	require.NoError(t, err)
	employeeID, err := db.CreateEmployee(&database.Employee{Name: "Marta", Email: "marta@example.com"})
	require.NoError(t, err)
	vehicleID, err := db.CreateVehicle(&database.Vehicle{
		Brand: "Toyota", Model: "RAV4", Plate: "AA-01-AA", Year: 2022,
		Status: database.VehicleStatusDefault,
	})
	require.NoError(t, err)

	rec := doRequest(t, s, http.MethodPost, "/reservas", map[string]any{
		"id_cliente":     clientID,
		"id_veiculo":     vehicleID,
		"id_funcionario": employeeID,
		"data_inicio":    "2025-01-10T00:00:00.000Z",
		"data_fim":       "2025-01-15T00:00:00.000Z",
		"preco_total":    250,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	created := decode[map[string]any](t, rec)
	assert.Equal(t, "2025-01-10 00:00:00", created["data_inicio"])
	assert.Equal(t, "ativa", created["estado"])

	// Reading it back must return the stored representation, not the
	// wire timestamp the create was given.
	rec = doRequest(t, s, http.MethodGet, "/reservas/1", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	fetched := decode[map[string]any](t, rec)
	assert.Equal(t, "2025-01-10 00:00:00", fetched["data_inicio"])
	assert.Equal(t, "2025-01-15 00:00:00", fetched["data_fim"])
}
