package repository

import (
	"context"

	repo "ecom/internal/repository"

	"gorm.io/gorm"
)

type txReposGorm struct {
	users    repo.UserRepository
	profiles repo.ProfileRepository
	carts    repo.CartRepository
	orders   repo.OrderRepository
}

func (r *txReposGorm) Users() repo.UserRepository       { return r.users }
func (r *txReposGorm) Profiles() repo.ProfileRepository { return r.profiles }
func (r *txReposGorm) Carts() repo.CartRepository       { return r.carts }
func (r *txReposGorm) Orders() repo.OrderRepository     { return r.orders }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			users:    NewUserGormRepository(tx),
			profiles: NewProfileGormRepository(tx),
			carts:    NewCartGormRepository(tx),
			orders:   NewOrderGormRepository(tx),
		}
		return fn(r)
	})
}
