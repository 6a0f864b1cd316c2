package database

import (
	"database/sql"
	"fmt"
)

// Client represents a row of the clientes table.
type Client struct {
	ID      int64   `json:"id_cliente"`
	Name    string  `json:"nome"`
	Email   string  `json:"email"`
	Phone   *string `json:"telefone"`
	TaxID   string  `json:"nif"`
	Address *string `json:"morada"`
}

// ListClients retrieves all clients.
func (db *DB) ListClients() ([]Client, error) {
	rows, err := db.Query(`
		SELECT id_cliente, nome, email, telefone, nif, morada
		FROM clientes
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}
	defer rows.Close()

	var clients []Client
	for rows.Next() {
		c, err := scanClient(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan client: %w", err)
		}
		clients = append(clients, *c)
	}
	return clients, rows.Err()
}

// GetClient retrieves a client by ID. Returns nil when no row matches.
func (db *DB) GetClient(id int64) (*Client, error) {
	c := &Client{}
	var phone, address sql.NullString
	err := db.QueryRow(`
		SELECT id_cliente, nome, email, telefone, nif, morada
		FROM clientes WHERE id_cliente = ?
	`, id).Scan(&c.ID, &c.Name, &c.Email, &phone, &c.TaxID, &address)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	c.Phone = nullStringToPtr(phone)
	c.Address = nullStringToPtr(address)
	return c, nil
}

// CreateClient inserts a new client row and returns the generated ID.
func (db *DB) CreateClient(c *Client) (int64, error) {
	result, err := db.Exec(`
		INSERT INTO clientes (nome, email, telefone, nif, morada)
		VALUES (?, ?, ?, ?, ?)
	`, c.Name, c.Email, c.Phone, c.TaxID, c.Address)
	if err != nil {
		return 0, fmt.Errorf("failed to create client: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get client id: %w", err)
	}
	return id, nil
}

// UpdateClient replaces every mutable column of the client row. Returns the
// number of rows affected.
func (db *DB) UpdateClient(id int64, c *Client) (int64, error) {
	result, err := db.Exec(`
		UPDATE clientes SET
			nome = ?, email = ?, telefone = ?, nif = ?, morada = ?
		WHERE id_cliente = ?
	`, c.Name, c.Email, c.Phone, c.TaxID, c.Address, id)
	if err != nil {
		return 0, fmt.Errorf("failed to update client: %w", err)
	}
	return result.RowsAffected()
}

// DeleteClientTx removes a client inside the caller's transaction. Returns
// the number of rows affected.
func (db *DB) DeleteClientTx(tx *sql.Tx, id int64) (int64, error) {
	result, err := tx.Exec("DELETE FROM clientes WHERE id_cliente = ?", id)
	if err != nil {
		return 0, fmt.Errorf("failed to delete client: %w", err)
	}
	return result.RowsAffected()
}

func scanClient(rows *sql.Rows) (*Client, error) {
	c := &Client{}
	var phone, address sql.NullString
	if err := rows.Scan(&c.ID, &c.Name, &c.Email, &phone, &c.TaxID, &address); err != nil {
		return nil, err
	}
	c.Phone = nullStringToPtr(phone)
	c.Address = nullStringToPtr(address)
	return c, nil
}
