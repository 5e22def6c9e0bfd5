// internal/service/directory.go
package service

import (
	"context"

	"github.com/dangerclosesec/orgward/internal/model"
	"github.com/dangerclosesec/orgward/internal/repository"
	"github.com/google/uuid"
)

// Directory is the privileged identity lookup surface. It is consumed
// only by the workflow services in this package and is deliberately
// not routed by any handler: the workflows that call it have already
// performed their own authorization.
type Directory interface {
	LookupByEmail(ctx context.Context, email string) (*model.User, error)
	LookupByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

// DirectoryService resolves identities against the local user
// projection of the identity provider.
type DirectoryService struct {
	users repository.UserRepositoryIface
}

func NewDirectoryService(users repository.UserRepositoryIface) *DirectoryService {
	return &DirectoryService{users: users}
}

func (s *DirectoryService) LookupByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *DirectoryService) LookupByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	return s.users.FindByID(ctx, id)
}
