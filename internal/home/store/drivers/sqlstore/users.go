package sqlstore

import (
	"context"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
)

type usersRepo struct {
	q *Queries
	d Dialect
}

func (r *usersRepo) GetUserByID(ctx context.Context, id int64) (domain.User, error) {
	row, err := r.q.GetUserByID(ctx, id)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return r.withMemberships(ctx, row)
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row, err := r.q.GetUserByEmail(ctx, email)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return r.withMemberships(ctx, row)
}

func (r *usersRepo) withMemberships(ctx context.Context, row userRow) (domain.User, error) {
	ids, err := r.q.ListBuildingIDsForUser(ctx, row.ID)
	if err != nil {
		return domain.User{}, err
	}
	return mapUser(row, ids), nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) (int64, error) {
	createdAt := u.CreatedAt
	if createdAt.IsZero() {
		createdAt = now()
	}

	id, err := r.q.CreateUser(ctx, u.Name, u.Email, u.PasswordHash, createdAt)
	if r.d.uniqueViolation(err) {
		return 0, store.ErrAlreadyExists
	}
	return id, err
}
