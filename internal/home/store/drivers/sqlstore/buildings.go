package sqlstore

import (
	"context"

	"github.com/hearthhq/hearth/internal/home/domain"
	"github.com/hearthhq/hearth/internal/home/store"
)

type buildingsRepo struct {
	q *Queries
	d Dialect
}

func (r *buildingsRepo) CreateBuilding(ctx context.Context, b domain.Building) (int64, error) {
	createdAt := b.CreatedAt
	if createdAt.IsZero() {
		createdAt = now()
	}
	return r.q.CreateBuilding(ctx, b.Name, b.Address, createdAt)
}

func (r *buildingsRepo) GetBuildingByID(ctx context.Context, id int64) (domain.Building, error) {
	row, err := r.q.GetBuildingByID(ctx, id)
	if err != nil {
		return domain.Building{}, mapNotFound(err)
	}
	return mapBuilding(row), nil
}

func (r *buildingsRepo) ListBuildingsForUser(ctx context.Context, userID int64) ([]domain.Building, error) {
	rows, err := r.q.ListBuildingsForUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Building, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapBuilding(row))
	}
	return out, nil
}

func (r *buildingsRepo) AddMember(ctx context.Context, buildingID, userID int64) error {
	err := r.q.AddMember(ctx, buildingID, userID, now())
	if r.d.foreignKeyViolation(err) {
		return store.ErrNotFound
	}
	return err
}
