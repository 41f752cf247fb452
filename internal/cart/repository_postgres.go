package cart

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

const listCartQuery = `
        SELECT "itemId", title, price, image, quantity, "productId"
        FROM cart_items
        WHERE "userId" = $1
        ORDER BY "itemId"
    `

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]CartItem, error) {
	rows, err := r.db.Query(listCartQuery, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]CartItem, 0)
	for rows.Next() {
		var it CartItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Price, &it.Image, &it.Quantity, &it.ProductID); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Put(userID int, item CartItem) error {
	_, err := r.db.Exec(`INSERT INTO cart_items ("userId", "itemId", title, price, image, quantity, "productId")
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        ON CONFLICT ("userId", "itemId") DO UPDATE
        SET title = EXCLUDED.title, price = EXCLUDED.price, image = EXCLUDED.image,
            quantity = EXCLUDED.quantity, "productId" = EXCLUDED."productId"`,
		userID, item.ID, item.Title, item.Price, item.Image, item.Quantity, item.ProductID)
	return err
}

func (r *PostgresRepository) SetQuantity(userID int, itemID string, quantity int) error {
	res, err := r.db.Exec(`UPDATE cart_items SET quantity = $1 WHERE "userId" = $2 AND "itemId" = $3`,
		quantity, userID, itemID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	// the item vanished between read and write (e.g. concurrent removal)
	if n == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) Remove(userID int, itemID string) error {
	_, err := r.db.Exec(`DELETE FROM cart_items WHERE "userId" = $1 AND "itemId" = $2`, userID, itemID)
	return err
}
