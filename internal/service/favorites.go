package service

import (
	"errors"

	"github.com/car4me/car4me/internal/database"
)

// Favorites implements the client-vehicle favorite relation. The composite
// (client, vehicle) pair is the identity; there is no per-row ID.
type Favorites struct {
	db *database.DB
}

// NewFavorites creates the favorites resource service.
func NewFavorites(db *database.DB) *Favorites {
	return &Favorites{db: db}
}

// FavoriteGroup is one client with every vehicle it favorited.
type FavoriteGroup struct {
	ClientID int64   `json:"id_cliente"`
	Vehicles []int64 `json:"veiculos"`
}

// BulkResult reports how many pairs a bulk create inserted.
type BulkResult struct {
	Inserted int64 `json:"inseridos"`
}

// RepointResult reports a repointed favorite half.
type RepointResult struct {
	Message string `json:"message"`
	From    int64  `json:"atualizado_de"`
	To      int64  `json:"atualizado_para"`
}

// List returns all favorite pairs grouped per client, in first-seen order.
func (s *Favorites) List() ([]FavoriteGroup, error) {
	pairs, err := s.db.ListFavorites()
	if err != nil {
		return nil, Store(err)
	}

	groups := make([]FavoriteGroup, 0)
	index := make(map[int64]int)
	for _, p := range pairs {
		i, ok := index[p.ClientID]
		if !ok {
			i = len(groups)
			index[p.ClientID] = i
			groups = append(groups, FavoriteGroup{ClientID: p.ClientID})
		}
		groups[i].Vehicles = append(groups[i].Vehicles, p.VehicleID)
	}
	return groups, nil
}

// Create bulk-inserts favorite pairs. The insert is a single statement, so
// either every pair lands or none do; a duplicate pair fails the whole
// batch.
func (s *Favorites) Create(pairs []database.Favorite) (*BulkResult, error) {
	if len(pairs) == 0 {
		return nil, Validation("O body deve ser uma lista de favoritos")
	}

	inserted, err := s.db.CreateFavorites(pairs)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, Conflict("Uma das relações já existe")
	}
	if err != nil {
		return nil, Store(err)
	}
	return &BulkResult{Inserted: inserted}, nil
}

// Delete removes an exact (client, vehicle) pair.
func (s *Favorites) Delete(clientID, vehicleID int64) (*Ack, error) {
	affected, err := s.db.DeleteFavorite(clientID, vehicleID)
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Favorito não encontrado")
	}
	return &Ack{Message: "Veículo removido dos favoritos"}, nil
}

// RepointVehicle replaces the vehicle half of the (client, vehicle) pair
// with newVehicleID.
func (s *Favorites) RepointVehicle(clientID, vehicleID, newVehicleID int64) (*RepointResult, error) {
	if newVehicleID == 0 {
		return nil, Validation("novo_id_veiculo é obrigatório")
	}

	affected, err := s.db.RepointFavoriteVehicle(clientID, vehicleID, newVehicleID)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, Conflict("Favorito já existe")
	}
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Favorito original não encontrado")
	}
	return &RepointResult{
		Message: "Favorito atualizado com sucesso",
		From:    vehicleID,
		To:      newVehicleID,
	}, nil
}

// RepointClient replaces the client half of the (client, vehicle) pair with
// newClientID.
func (s *Favorites) RepointClient(clientID, vehicleID, newClientID int64) (*RepointResult, error) {
	if newClientID == 0 {
		return nil, Validation("novo_id_cliente é obrigatório")
	}

	affected, err := s.db.RepointFavoriteClient(clientID, vehicleID, newClientID)
	if errors.Is(err, database.ErrDuplicate) {
		return nil, Conflict("Este cliente já tem este favorito")
	}
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Favorito original não encontrado")
	}
	return &RepointResult{
		Message: "Cliente associado ao favorito atualizado com sucesso",
		From:    clientID,
		To:      newClientID,
	}, nil
}
