package wishlist

import (
	"database/sql"

	"github.com/lib/pq"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(userID int) ([]WishlistItem, error) {
	rows, err := r.db.Query(`SELECT "itemId", title, price, images, "addedAt"
        FROM wishlist_items WHERE "userId" = $1 ORDER BY "addedAt" DESC`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]WishlistItem, 0)
	for rows.Next() {
		var it WishlistItem
		if err := rows.Scan(&it.ID, &it.Title, &it.Price, pq.Array(&it.Images), &it.AddedAt); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Put(userID int, item WishlistItem) error {
	_, err := r.db.Exec(`INSERT INTO wishlist_items ("userId", "itemId", title, price, images, "addedAt")
        VALUES ($1,$2,$3,$4,$5,$6)
        ON CONFLICT ("userId", "itemId") DO UPDATE
        SET title = EXCLUDED.title, price = EXCLUDED.price, images = EXCLUDED.images, "addedAt" = EXCLUDED."addedAt"`,
		userID, item.ID, item.Title, item.Price, pq.Array(item.Images), item.AddedAt)
	return err
}

func (r *PostgresRepository) Remove(userID int, itemID string) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE "userId" = $1 AND "itemId" = $2`, userID, itemID)
	return err
}

func (r *PostgresRepository) RemoveAll(userID int) error {
	_, err := r.db.Exec(`DELETE FROM wishlist_items WHERE "userId" = $1`, userID)
	return err
}
