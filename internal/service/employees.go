package service

import (
	"database/sql"

	"github.com/car4me/car4me/internal/database"
)

// Employees implements the employee resource. The delete guard is narrower
// than the client one: only reservations still in the active status block
// removal.
type Employees struct {
	db *database.DB
}

// NewEmployees creates the employee resource service.
func NewEmployees(db *database.DB) *Employees {
	return &Employees{db: db}
}

// EmployeeView is an employee row annotated with its reservation aggregates.
type EmployeeView struct {
	database.Employee
	HasReservations   bool    `json:"tem_reservas"`
	LastReservation   *string `json:"estado_ultima_reserva"`
	TotalReservations int     `json:"total_reservas"`
	ReservationIDs    []int64 `json:"reservas_ids"`
}

func employeeView(e database.Employee, summary ReservationSummary) EmployeeView {
	return EmployeeView{
		Employee:          e,
		HasReservations:   summary.Has,
		LastReservation:   summary.LastStatus,
		TotalReservations: summary.Total,
		ReservationIDs:    summary.IDs,
	}
}

// List returns all employees annotated with their reservation aggregates.
func (s *Employees) List() ([]EmployeeView, error) {
	employees, err := s.db.ListEmployees()
	if err != nil {
		return nil, Store(err)
	}

	refs, err := s.db.ReservationRefsByEmployee()
	if err != nil {
		return nil, Store(err)
	}
	grouped := groupReservationRefs(refs)

	views := make([]EmployeeView, 0, len(employees))
	for _, e := range employees {
		views = append(views, employeeView(e, summarizeReservations(grouped[e.ID])))
	}
	return views, nil
}

// Get returns one annotated employee.
func (s *Employees) Get(id int64) (*EmployeeView, error) {
	e, err := s.db.GetEmployee(id)
	if err != nil {
		return nil, Store(err)
	}
	if e == nil {
		return nil, NotFound("Funcionário não encontrado")
	}

	refs, err := s.db.ReservationRefsForEmployee(id)
	if err != nil {
		return nil, Store(err)
	}

	view := employeeView(*e, summarizeReservations(refs))
	return &view, nil
}

// Create validates and inserts an employee.
func (s *Employees) Create(e *database.Employee) (*database.Employee, error) {
	if e == nil || e.Name == "" || e.Email == "" {
		return nil, Validation("Dados obrigatórios em falta")
	}

	id, err := s.db.CreateEmployee(e)
	if err != nil {
		return nil, Store(err)
	}
	e.ID = id
	return e, nil
}

// Update validates and fully replaces an employee row.
func (s *Employees) Update(id int64, e *database.Employee) (*database.Employee, error) {
	if e == nil || e.Name == "" || e.Email == "" {
		return nil, Validation("Dados obrigatórios em falta")
	}

	affected, err := s.db.UpdateEmployee(id, e)
	if err != nil {
		return nil, Store(err)
	}
	if affected == 0 {
		return nil, NotFound("Funcionário não encontrado")
	}
	e.ID = id
	return e, nil
}

// Delete removes an employee unless any of their reservations is still
// active. Existence is checked first, so an unknown ID reports NotFound
// rather than a guard failure. The checks and the delete share one
// transaction.
func (s *Employees) Delete(id int64) (*Ack, error) {
	err := s.db.Transaction(func(tx *sql.Tx) error {
		exists, err := s.db.EmployeeExistsTx(tx, id)
		if err != nil {
			return Store(err)
		}
		if !exists {
			return NotFound("Funcionário não encontrado")
		}

		active, err := s.db.ActiveReservationCountForEmployeeTx(tx, id)
		if err != nil {
			return Store(err)
		}
		if active > 0 {
			return Conflict("Não é possível eliminar: funcionário possui reservas ativas.")
		}

		if _, err := s.db.DeleteEmployeeTx(tx, id); err != nil {
			return Store(err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &Ack{Message: "Funcionário eliminado com sucesso."}, nil
}
