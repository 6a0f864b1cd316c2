package service

import (
	"database/sql"

	"github.com/car4me/car4me/internal/database"
)

// Clients implements the client resource: CRUD with reservation aggregates
// on reads and the all-reservations-terminal delete guard.
type Clients struct {
	db *database.DB
}

// NewClients creates the client resource service.
func NewClients(db *database.DB) *Clients {
	return &Clients{db: db}
}

// ClientView is a client row annotated with its reservation aggregates.
type ClientView struct {
	database.Client
	HasReservations   bool    `json:"tem_reservas"`
	LastReservation   *string `json:"estado_ultima_reserva"`
	TotalReservations int     `json:"total_reservas"`
	ReservationIDs    []int64 `json:"reservas_ids"`
}

func clientView(c database.Client, summary ReservationSummary) ClientView {
	return ClientView{
		Client:            c,
		HasReservations:   summary.Has,
		LastReservation:   summary.LastStatus,
		TotalReservations: summary.Total,
		ReservationIDs:    summary.IDs,
	}
}

// List returns all clients annotated with their reservation aggregates.
func (s *Clients) List() ([]ClientView, error) {
	clients, err := s.db.ListClients()
	if err != nil {
		return nil, Store(err)
	}

	refs, err := s.db.ReservationRefsByClient()
	if err != nil {
		return nil, Store(err)
	}
	grouped := groupReservationRefs(refs)

	views := make([]ClientView, 0, len(clients))
	for _, c := range clients {
		views = append(views, clientView(c, summarizeReservations(grouped[c.ID])))
	}
	return views, nil
}

// Get returns one annotated client.
func (s *Clients) Get(id int64) (*ClientView, error) {
	c, err := s.db.GetClient(id)
	if err != nil {
		return nil, Store(err)
	}
	if c == nil {
		return nil, NotFound("Cliente não encontrado")
	}

	refs, err := s.db.ReservationRefsForClient(id)
	if err != nil {
		return nil, Store(err)
	}

	view := clientView(*c, summarizeReservations(refs))
	return &view, nil
}

// Create validates and inserts a client, returning the stored row with its
// generated ID.
func (s *Clients) Create(c *database.Client) (*database.Client, error) {
	if c == nil || c.Name == "" || c.Email == "" || c.TaxID == "" {
		return nil, Validation("Dados obrigatórios em falta")
	}

	id, err := s.db.CreateClient(c)
	if err != nil {
		return nil, Store(err)
	}
	c.ID = id
	return c, nil
}

// Update validates and fully replaces a client row.
func (s *Clients) Update(id int64, c *database.Client) (*database.Client, error) {
	if c == nil || c.Name == "" || c.Email == "" || c.TaxID == "" {
		return nil, Validation("Dados obrigatórios em falta")
	}

	affected, err := s.db.UpdateClient(id, c)
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Cliente não encontrado")
	}
	c.ID = id
	return c, nil
}

// Delete removes a client unless any of its reservations is outside the
// terminal "concluida" status. The guard and the delete run in one
// transaction so a reservation created concurrently cannot slip between
// check and act.
func (s *Clients) Delete(id int64) (*Ack, error) {
	err := s.db.Transaction(func(tx *sql.Tx) error {
		statuses, err := s.db.ReservationStatusesForClientTx(tx, id)
		if err != nil {
			return Store(err)
		}
		for _, status := range statuses {
			if status != database.ReservationStatusCompleted {
				return Conflict("Não é possível eliminar o cliente: possui reservas ativas ou canceladas.")
			}
		}

		affected, err := s.db.DeleteClientTx(tx, id)
		if err != nil {
			return Store(err)
		}
		if affected == 0 {
			return NotFound("Cliente não encontrado")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Ack{Message: "Cliente eliminado com sucesso"}, nil
}
