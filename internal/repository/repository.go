package repository

import "errors"

// 見つからないを統一
var ErrNotFound = errors.New("not found")

// 一意制約違反を統一
var ErrDuplicate = errors.New("duplicate")

// 一覧系の共通クエリ（ページはbodyの{page, size}から来る）
type PageQuery struct {
	Page   int
	Size   int
	Search string
}

// page/sizeのデフォルトを埋める
func (q *PageQuery) Normalize() {
	if q.Page < 1 {
		q.Page = 1
	}
	if q.Size < 1 {
		q.Size = 10
	}
}

func (q PageQuery) Offset() int {
	return (q.Page - 1) * q.Size
}
