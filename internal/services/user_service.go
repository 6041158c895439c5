package services

import (
	"context"
	"log"
	"net/http"

	"accountd/internal/models"
	"accountd/internal/repositories"
	"accountd/internal/result"
	"accountd/internal/storage"
)

type UserService interface {
	GetUserDetails(ctx context.Context, userID string) result.Result[*models.User]
}

type userService struct {
	tx    storage.TxRunner
	users repositories.UserRepository
}

func NewUserService(tx storage.TxRunner, users repositories.UserRepository) UserService {
	return &userService{tx: tx, users: users}
}

func (s *userService) GetUserDetails(ctx context.Context, userID string) result.Result[*models.User] {
	var res result.Result[*models.User]
	err := s.tx.RunTx(ctx, func(q storage.Querier) error {
		user, err := s.users.FindByID(ctx, q, userID)
		if err != nil {
			return err
		}
		if user == nil {
			res = result.Fail[*models.User](http.StatusBadRequest, result.UserDoesNotExists)
			return nil
		}
		res = result.OK(http.StatusOK, user)
		return nil
	})
	if err != nil {
		log.Printf("[users][details] tx failed: %v", err)
		return result.Internal[*models.User]()
	}
	return res
}
