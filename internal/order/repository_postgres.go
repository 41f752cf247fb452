package order

import (
	"database/sql"
	"encoding/json"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `"orderId", "userId", items, subtotal, "shippingFee", total, status, progress, "createdAt", "estimatedDelivery", "deliveryDate", "trackingNumber"`

// CreateFromCart inserts the order and deletes the listed cart rows in one
// transaction so a concurrent reader either sees both effects or neither.
func (r *PostgresRepository) CreateFromCart(ord Order, itemIDs []string) (Order, error) {
	itemsJSON, err := json.Marshal(ord.Items)
	if err != nil {
		return Order{}, err
	}

	tx, err := r.db.Begin()
	if err != nil {
		return Order{}, err
	}

	if _, err := tx.Exec(`INSERT INTO orders ("orderId", "userId", items, subtotal, "shippingFee", total, status, progress, "createdAt", "estimatedDelivery", "deliveryDate", "trackingNumber")
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)`,
		ord.ID, ord.UserID, itemsJSON, ord.Subtotal, ord.ShippingFee, ord.Total,
		ord.Status, ord.Progress, ord.CreatedAt, ord.EstimatedDelivery, ord.DeliveryDate, ord.TrackingNumber); err != nil {
		tx.Rollback()
		return Order{}, err
	}

	if _, err := tx.Exec(`DELETE FROM cart_items WHERE "userId" = $1 AND "itemId" = ANY($2::text[])`,
		ord.UserID, pq.Array(itemIDs)); err != nil {
		tx.Rollback()
		return Order{}, err
	}

	if err := tx.Commit(); err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) ListByUser(userID int) ([]Order, error) {
	rows, err := r.db.Query(`SELECT `+orderColumns+` FROM orders WHERE "userId" = $1 ORDER BY "createdAt" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]Order, 0)
	for rows.Next() {
		ord, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, ord)
	}
	return orders, rows.Err()
}

func (r *PostgresRepository) GetByID(orderID string) (Order, error) {
	row := r.db.QueryRow(`SELECT `+orderColumns+` FROM orders WHERE "orderId" = $1`, orderID)
	ord, err := scanOrder(row)
	if err == sql.ErrNoRows {
		return Order{}, ErrNotFound
	}
	if err != nil {
		return Order{}, err
	}
	return ord, nil
}

func (r *PostgresRepository) UpdateFulfillment(orderID, status string, progress int, trackingNumber string, deliveryDate *string) (Order, error) {
	res, err := r.db.Exec(`UPDATE orders SET status = $1, progress = $2,
            "trackingNumber" = COALESCE(NULLIF($3, ''), "trackingNumber"),
            "deliveryDate" = COALESCE($4, "deliveryDate")
        WHERE "orderId" = $5`,
		status, progress, trackingNumber, deliveryDate, orderID)
	if err != nil {
		return Order{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return Order{}, err
	}
	if n == 0 {
		return Order{}, ErrNotFound
	}
	return r.GetByID(orderID)
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanOrder(row rowScanner) (Order, error) {
	var ord Order
	var itemsJSON []byte
	if err := row.Scan(&ord.ID, &ord.UserID, &itemsJSON, &ord.Subtotal, &ord.ShippingFee, &ord.Total,
		&ord.Status, &ord.Progress, &ord.CreatedAt, &ord.EstimatedDelivery, &ord.DeliveryDate, &ord.TrackingNumber); err != nil {
		return Order{}, err
	}
	if err := json.Unmarshal(itemsJSON, &ord.Items); err != nil {
		return Order{}, err
	}
	return ord, nil
}
