package user

import (
	"database/sql"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgresRepository(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByID(id int) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT "userId", email, "displayName", phone, "avatarPic", "createdAt", "updatedAt"
        FROM users WHERE "userId" = $1`, id).
		Scan(&u.ID, &u.Email, &u.DisplayName, &u.Phone, &u.AvatarPic, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// GetByEmail joins the identity record so the password hash is available for
// authentication and re-authentication checks.
func (r *PostgresRepository) GetByEmail(email string) (User, error) {
	var u User
	err := r.db.QueryRow(`SELECT u."userId", u.email, c.password, u."displayName", u.phone, u."avatarPic", u."createdAt", u."updatedAt"
        FROM users u JOIN credentials c ON c."userId" = u."userId"
        WHERE u.email = $1`, email).
		Scan(&u.ID, &u.Email, &u.Password, &u.DisplayName, &u.Phone, &u.AvatarPic, &u.CreatedAt, &u.UpdatedAt)
	if err == sql.ErrNoRows {
		return User{}, ErrNotFound
	}
	if err != nil {
		return User{}, err
	}
	return u, nil
}

// Create inserts the profile document and the identity record together.
func (r *PostgresRepository) Create(u User) (User, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return User{}, err
	}

	err = tx.QueryRow(`INSERT INTO users (email, "displayName", phone, "createdAt", "updatedAt")
        VALUES ($1,$2,$3,$4,$5) RETURNING "userId"`,
		u.Email, u.DisplayName, u.Phone, u.CreatedAt, u.UpdatedAt).Scan(&u.ID)
	if err != nil {
		tx.Rollback()
		return User{}, err
	}
	if _, err := tx.Exec(`INSERT INTO credentials ("userId", email, password) VALUES ($1,$2,$3)`,
		u.ID, u.Email, u.Password); err != nil {
		tx.Rollback()
		return User{}, err
	}

	if err := tx.Commit(); err != nil {
		return User{}, err
	}
	return u, nil
}

func (r *PostgresRepository) Update(id int, update User) (User, error) {
	res, err := r.db.Exec(`UPDATE users SET
            "displayName" = COALESCE(NULLIF($1, ''), "displayName"),
            phone = COALESCE(NULLIF($2, ''), phone),
            "avatarPic" = COALESCE($3, "avatarPic"),
            "updatedAt" = $4
        WHERE "userId" = $5`,
		update.DisplayName, update.Phone, update.AvatarPic, update.UpdatedAt, id)
	if err != nil {
		return User{}, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return User{}, err
	}
	if n == 0 {
		return User{}, ErrNotFound
	}
	return r.GetByID(id)
}

// DeleteAccountData removes the user's wishlist items, cart items and
// profile row in a single transaction. The identity record stays until
// DeleteIdentity; orders are kept as historical records.
func (r *PostgresRepository) DeleteAccountData(userID int) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM wishlist_items WHERE "userId" = $1`, userID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM cart_items WHERE "userId" = $1`, userID); err != nil {
		tx.Rollback()
		return err
	}
	if _, err := tx.Exec(`DELETE FROM users WHERE "userId" = $1`, userID); err != nil {
		tx.Rollback()
		return err
	}

	return tx.Commit()
}

func (r *PostgresRepository) DeleteIdentity(userID int) error {
	_, err := r.db.Exec(`DELETE FROM credentials WHERE "userId" = $1`, userID)
	return err
}
