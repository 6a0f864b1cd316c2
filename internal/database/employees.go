package database

import (
	"database/sql"
	"fmt"
)

// Employee represents a row of the funcionarios table.
type Employee struct {
	ID    int64   `json:"id_funcionario"`
	Name  string  `json:"nome"`
	Email string  `json:"email"`
	Role  *string `json:"cargo"`
	Phone *string `json:"telefone"`
}

// ListEmployees retrieves all employees.
func (db *DB) ListEmployees() ([]Employee, error) {
	rows, err := db.Query(`
		SELECT id_funcionario, nome, email, cargo, telefone
		FROM funcionarios
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		e := Employee{}
		var role, phone sql.NullString
		if err := rows.Scan(&e.ID, &e.Name, &e.Email, &role, &phone); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		e.Role = nullStringToPtr(role)
		e.Phone = nullStringToPtr(phone)
		employees = append(employees, e)
	}
	return employees, rows.Err()
}

// GetEmployee retrieves an employee by ID. Returns nil when no row matches.
func (db *DB) GetEmployee(id int64) (*Employee, error) {
	e := &Employee{}
	var role, phone sql.NullString
	err := db.QueryRow(`
		SELECT id_funcionario, nome, email, cargo, telefone
		FROM funcionarios WHERE id_funcionario = ?
	`, id).Scan(&e.ID, &e.Name, &e.Email, &role, &phone)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}
	e.Role = nullStringToPtr(role)
	e.Phone = nullStringToPtr(phone)
	return e, nil
}

// CreateEmployee inserts a new employee row and returns the generated ID.
func (db *DB) CreateEmployee(e *Employee) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO funcionarios (nome, email, cargo, telefone)
		VALUES (?, ?, ?, ?)
	`, e.Name, e.Email, e.Role, e.Phone)
	if err != nil {
		return 0, fmt.Errorf("failed to create employee: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get employee id: %w", err)
	}
	return id, nil
}

// UpdateEmployee replaces every mutable column of the employee row. Returns
// the number of rows affected.
func (db *DB) UpdateEmployee(id int64, e *Employee) (int64, error) {
	result, err := db.Exec(`
		UPDATE funcionarios SET
			nome = ?, email = ?, cargo = ?, telefone = ?
		WHERE id_funcionario = ?
	`, e.Name, e.Email, e.Role, e.Phone, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update employee: %w", err)
	}
	return result.RowsAffected()
}

// EmployeeExistsTx reports whether the employee exists, inside the caller's
// transaction.
func (db *DB) EmployeeExistsTx(tx *sql.Tx, id int64) (bool, error) {
	var count int
	err := tx.QueryRow("SELECT COUNT(*) FROM funcionarios WHERE id_funcionario = ?", id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check employee: %w", err)
	}
	return count > 0, nil
}

// DeleteEmployeeTx removes an employee inside the caller's transaction.
// Returns the number of rows affected.
func (db *DB) DeleteEmployeeTx(tx *sql.Tx, id int64) (int64, error) {
	result, err := tx.Exec("DELETE FROM funcionarios WHERE id_funcionario = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete employee: %w", err)
	}
	return result.RowsAffected()
}
