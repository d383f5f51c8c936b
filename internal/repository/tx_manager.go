package repository

import "context"

// トランザクション内で使えるリポジトリ群
type TxRepos interface {
	Users() UserRepository
	Profiles() ProfileRepository
	Carts() CartRepository
	Orders() OrderRepository
}

// Usecaseからtxの開始/commit/rollbackを隠す
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
