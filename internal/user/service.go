package user

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetByID(id int) (User, error) {
	return s.repo.GetByID(id)
}

func (s *Service) Update(id int, u User) (User, error) {
	return s.repo.Update(id, u)
}

func (s *Service) Register(u User) (User, error) {
	if _, err := s.repo.GetByEmail(u.Email); err == nil {
		return User{}, ErrEmailExists
	} else if err != ErrNotFound {
		return User{}, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	u.Password = string(hashed)
	return s.repo.Create(u)
}

func (s *Service) Authenticate(email, password string) (User, error) {
	u, err := s.repo.GetByEmail(email)
	if err != nil {
		return User{}, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}

	return u, nil
}

// DeleteAccount removes the user's owned documents and then the identity
// record. A fresh credential re-proof is required first; on a wrong password
// nothing is deleted. If the identity removal fails after the data batch has
// committed, the degraded state is reported rather than rolled back.
func (s *Service) DeleteAccount(userID int, password string) error {
	u, err := s.repo.GetByID(userID)
	if err != nil {
		return err
	}

	cred, err := s.repo.GetByEmail(u.Email)
	if err != nil {
		return ErrReauthenticationFailed
	}
	if bcrypt.CompareHashAndPassword([]byte(cred.Password), []byte(password)) != nil {
		return ErrReauthenticationFailed
	}

	if err := s.repo.DeleteAccountData(userID); err != nil {
		return err
	}

	if err := s.repo.DeleteIdentity(userID); err != nil {
		fmt.Printf("warning: identity record for user %d not removed after data deletion: %v\n", userID, err)
		return fmt.Errorf("%w: %v", ErrIdentityRemoval, err)
	}
	return nil
}
