package lead

import (
	"database/sql"
	"encoding/json"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(app Application) (Application, error) {
	detailsJSON, err := json.Marshal(app.Details)
	if err != nil {
		return Application{}, err
	}

	_, err = r.db.Exec(`INSERT INTO leads ("leadId", kind, name, email, phone, message, details, "createdAt")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`,
		app.ID, app.Kind, app.Name, app.Email, app.Phone, app.Message, detailsJSON, app.CreatedAt)
	if err != nil {
		return Application{}, err
	}
	return app, nil
}
