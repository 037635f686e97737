package repository

import (
	"client-service/internal/entity"
	"context"
	"database/sql"
	"fmt"
)

type ClientRepository struct {
	db *sql.DB
}

func NewClientRepository(db *sql.DB) *ClientRepository {
	return &ClientRepository{db}
}

func (r *ClientRepository) GetClients(ctx context.Context) ([]entity.Client, error) {
	query := `SELECT client_id, name, address, phone FROM client`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing clients: %w", err)
	}
	defer rows.Close()

	clients := []entity.Client{}
	for rows.Next() {
		var client entity.Client
		if err := rows.Scan(&client.ClientID, &client.Name, &client.Address, &client.Phone); err != nil {
			return nil, fmt.Errorf("error scanning client row: %w", err)
		}
		clients = append(clients, client)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating client rows: %w", err)
	}
	return clients, nil
}

func (r *ClientRepository) GetParts(ctx context.Context) ([]entity.Part, error) {
	query := `SELECT part_id, client_id, part_name, part_description, part_value FROM part`
	return r.queryParts(ctx, query)
}

func (r *ClientRepository) GetPartsByClientID(ctx context.Context, clientID int64) ([]entity.Part, error) {
	query := `SELECT part_id, client_id, part_name, part_description, part_value FROM part WHERE client_id = ?`
	return r.queryParts(ctx, query, clientID)
}

func (r *ClientRepository) queryParts(ctx context.Context, query string, args ...any) ([]entity.Part, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing parts: %w", err)
	}
	defer rows.Close()

	parts := []entity.Part{}
	for rows.Next() {
		var (
			part  entity.Part
			value sql.NullString
		)
		if err := rows.Scan(&part.PartID, &part.ClientID, &part.PartName, &part.PartDescription, &value); err != nil {
			return nil, fmt.Errorf("error scanning part row: %w", err)
		}
		if value.Valid {
			part.PartValue = &value.String
		}
		parts = append(parts, part)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating part rows: %w", err)
	}
	return parts, nil
}

func (r *ClientRepository) GetProperties(ctx context.Context) ([]entity.Property, error) {
	query := `SELECT property_id, part_id, property_name, property_value FROM part_properties`
	return r.queryProperties(ctx, query)
}

func (r *ClientRepository) GetPropertiesByPartID(ctx context.Context, partID int64) ([]entity.Property, error) {
	query := `SELECT property_id, part_id, property_name, property_value FROM part_properties WHERE part_id = ?`
	return r.queryProperties(ctx, query, partID)
}

func (r *ClientRepository) queryProperties(ctx context.Context, query string, args ...any) ([]entity.Property, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing properties: %w", err)
	}
	defer rows.Close()

	properties := []entity.Property{}
	for rows.Next() {
		var property entity.Property
		if err := rows.Scan(&property.PropertyID, &property.PartID, &property.PropertyName, &property.PropertyValue); err != nil {
			return nil, fmt.Errorf("error scanning property row: %w", err)
		}
		properties = append(properties, property)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property rows: %w", err)
	}
	return properties, nil
}

// CreateClient inserts a client, one part owned by it and one property of that part
// in a single transaction, and returns the generated client and part ids.
func (r *ClientRepository) CreateClient(ctx context.Context, payload *entity.ClientPayload) (clientID, partID int64, err error) {
	err = withTx(ctx, r.db, func(tx *sql.Tx) error {
		clientQuery := `INSERT INTO client (name, address, phone) VALUES (?, ?, ?)`
		res, err := tx.ExecContext(ctx, clientQuery, payload.ClientName, payload.Address, payload.Phone)
		if err != nil {
			return opErr("inserting client", err)
		}
		if clientID, err = res.LastInsertId(); err != nil {
			return opErr("inserting client", err)
		}

		partQuery := `INSERT INTO part (client_id, part_name, part_description) VALUES (?, ?, ?)`
		res, err = tx.ExecContext(ctx, partQuery, clientID, payload.PartName, payload.PartDescription)
		if err != nil {
			return opErr("inserting part", err)
		}
		if partID, err = res.LastInsertId(); err != nil {
			return opErr("inserting part", err)
		}

		propertyQuery := `INSERT INTO part_properties (part_id, property_name, property_value) VALUES (?, ?, ?)`
		if _, err := tx.ExecContext(ctx, propertyQuery, partID, payload.PropertyName, payload.PropertyValue); err != nil {
			return opErr("inserting property", err)
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return clientID, partID, nil
}

// UpdateClient rewrites the client, the part (only when it belongs to that client) and
// every property of the part in a single transaction. Rows that do not match are left
// alone and are not reported as errors.
func (r *ClientRepository) UpdateClient(ctx context.Context, clientID, partID int64, payload *entity.ClientPayload) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		clientQuery := `UPDATE client SET name = ?, address = ?, phone = ? WHERE client_id = ?`
		if _, err := tx.ExecContext(ctx, clientQuery, payload.ClientName, payload.Address, payload.Phone, clientID); err != nil {
			return opErr("updating client", err)
		}

		partQuery := `UPDATE part SET part_name = ?, part_description = ? WHERE part_id = ? AND client_id = ?`
		if _, err := tx.ExecContext(ctx, partQuery, payload.PartName, payload.PartDescription, partID, clientID); err != nil {
			return opErr("updating part", err)
		}

		// No property key in the request: all properties of the part get the same values.
		propertyQuery := `UPDATE part_properties SET property_name = ?, property_value = ? WHERE part_id = ?`
		if _, err := tx.ExecContext(ctx, propertyQuery, payload.PropertyName, payload.PropertyValue, partID); err != nil {
			return opErr("updating properties", err)
		}
		return nil
	})
}

// DeleteClient removes the client's properties, then its parts, then the client itself.
func (r *ClientRepository) DeleteClient(ctx context.Context, clientID int64) error {
	return withTx(ctx, r.db, func(tx *sql.Tx) error {
		propertiesQuery := `DELETE FROM part_properties WHERE part_id IN (SELECT part_id FROM part WHERE client_id = ?)`
		if _, err := tx.ExecContext(ctx, propertiesQuery, clientID); err != nil {
			return opErr("deleting properties", err)
		}

		partsQuery := `DELETE FROM part WHERE client_id = ?`
		if _, err := tx.ExecContext(ctx, partsQuery, clientID); err != nil {
			return opErr("deleting parts", err)
		}

		clientQuery := `DELETE FROM client WHERE client_id = ?`
		if _, err := tx.ExecContext(ctx, clientQuery, clientID); err != nil {
			return opErr("deleting client", err)
		}
		return nil
	})
}

// Ping reports whether the database answers.
func (r *ClientRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
