package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"appointment-booking-server/internal/models"
	"appointment-booking-server/internal/specification"
)

// GormStore is the gorm-backed Store implementation.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a GormStore over an open database handle.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// NewUnitOfWork opens a fresh unit of work with no staged changes.
func (s *GormStore) NewUnitOfWork() UnitOfWork {
	return &gormUnitOfWork{db: s.db}
}

type stagedChange func(tx *gorm.DB) (int64, error)

type gormUnitOfWork struct {
	db     *gorm.DB
	staged []stagedChange
}

func (u *gormUnitOfWork) Users() Repository[models.User] {
	return &gormRepository[models.User]{uow: u}
}

func (u *gormUnitOfWork) Appointments() Repository[models.Appointment] {
	return &gormRepository[models.Appointment]{uow: u}
}

func (u *gormUnitOfWork) RefreshTokens() Repository[models.RefreshToken] {
	return &gormRepository[models.RefreshToken]{uow: u}
}

// Complete flushes every staged change inside one transaction and returns
// the total affected row count. The staged list is cleared whether or not
// the transaction succeeds.
func (u *gormUnitOfWork) Complete(ctx context.Context) (int64, error) {
	staged := u.staged
	u.staged = nil

	var total int64
	err := u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, change := range staged {
			affected, err := change(tx)
			if err != nil {
				return err
			}
			total += affected
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

type gormRepository[T any] struct {
	uow *gormUnitOfWork
}

func (r *gormRepository[T]) GetByID(ctx context.Context, id string) (*T, error) {
	var entity T
	if err := r.uow.db.WithContext(ctx).First(&entity, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &entity, nil
}

func (r *gormRepository[T]) GetWithSpec(ctx context.Context, spec *specification.Specification[T]) (*T, error) {
	entities, err := r.ListWithSpec(ctx, spec)
	if err != nil {
		return nil, err
	}
	if len(entities) == 0 {
		return nil, ErrNotFound
	}
	return &entities[0], nil
}

func (r *gormRepository[T]) ListAll(ctx context.Context) ([]T, error) {
	var entities []T
	if err := r.uow.db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *gormRepository[T]) ListWithSpec(ctx context.Context, spec *specification.Specification[T]) ([]T, error) {
	entities, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return specification.Evaluate(entities, spec), nil
}

func (r *gormRepository[T]) CountWithSpec(ctx context.Context, spec *specification.Specification[T]) (int64, error) {
	entities, err := r.ListAll(ctx)
	if err != nil {
		return 0, err
	}
	return specification.Count(entities, spec), nil
}

func (r *gormRepository[T]) Add(entity *T) {
	r.uow.staged = append(r.uow.staged, func(tx *gorm.DB) (int64, error) {
		res := tx.Create(entity)
		return res.RowsAffected, res.Error
	})
}

func (r *gormRepository[T]) Update(entity *T) {
	r.uow.staged = append(r.uow.staged, func(tx *gorm.DB) (int64, error) {
		res := tx.Save(entity)
		return res.RowsAffected, res.Error
	})
}

func (r *gormRepository[T]) Delete(entity *T) {
	r.uow.staged = append(r.uow.staged, func(tx *gorm.DB) (int64, error) {
		res := tx.Delete(entity)
		return res.RowsAffected, res.Error
	})
}
