package user

import (
	"errors"
	"sync"
)

var (
	ErrNotFound               = errors.New("user not found")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrEmailExists            = errors.New("email already exists")
	ErrReauthenticationFailed = errors.New("re-authentication failed")
	ErrIdentityRemoval        = errors.New("identity record removal failed")
)

// Repository defines persistence operations for users. Account deletion is
// split in two: DeleteAccountData removes every owned document (wishlist,
// cart, profile) in one batch, DeleteIdentity removes the credential record
// afterwards. Orders are deliberately never touched.
type Repository interface {
	GetByID(id int) (User, error)
	GetByEmail(email string) (User, error)
	Create(user User) (User, error)
	Update(id int, user User) (User, error)
	DeleteAccountData(userID int) error
	DeleteIdentity(userID int) error
}

// Clearer removes every document a user owns in one collection. The cart and
// wishlist repositories satisfy it for the in-memory deletion cascade.
type Clearer interface {
	RemoveAll(userID int) error
}

// InMemoryRepository is used for tests and local scenarios.
type InMemoryRepository struct {
	mu         sync.RWMutex
	users      []User
	identities map[int]string
	nextID     int

	cart     Clearer
	wishlist Clearer
}

func NewInMemoryRepository(seed []User, cart, wishlist Clearer) *InMemoryRepository {
	repo := &InMemoryRepository{
		users:      make([]User, 0, len(seed)),
		identities: make(map[int]string),
		nextID:     1,
		cart:       cart,
		wishlist:   wishlist,
	}

	maxID := 0
	for _, u := range seed {
		repo.users = append(repo.users, u)
		repo.identities[u.ID] = u.Password
		if u.ID > maxID {
			maxID = u.ID
		}
	}

	repo.nextID = maxID + 1
	return repo
}

func (r *InMemoryRepository) GetByID(id int) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) GetByEmail(email string) (User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) Create(u User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if u.ID == 0 {
		u.ID = r.nextID
		r.nextID++
	}

	r.users = append(r.users, u)
	r.identities[u.ID] = u.Password
	return u, nil
}

func (r *InMemoryRepository) Update(id int, update User) (User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, u := range r.users {
		if u.ID == id {
			if update.DisplayName != "" {
				u.DisplayName = update.DisplayName
			}
			if update.Phone != "" {
				u.Phone = update.Phone
			}
			if update.AvatarPic != nil {
				u.AvatarPic = update.AvatarPic
			}
			if update.UpdatedAt != "" {
				u.UpdatedAt = update.UpdatedAt
			}
			r.users[i] = u
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *InMemoryRepository) DeleteAccountData(userID int) error {
	if err := r.wishlist.RemoveAll(userID); err != nil {
		return err
	}
	if err := r.cart.RemoveAll(userID); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	for i, u := range r.users {
		if u.ID == userID {
			r.users = append(r.users[:i], r.users[i+1:]...)
			return nil
		}
	}
	return ErrNotFound
}

func (r *InMemoryRepository) DeleteIdentity(userID int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.identities, userID)
	return nil
}
