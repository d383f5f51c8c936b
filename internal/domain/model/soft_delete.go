package model

import "time"

// ソフトデリート共通フィールド。
// 物理削除はせず、is_active=false + 削除情報で表す。
// Restoreで全フィールドを元に戻す。
type SoftDelete struct {
	IsActive  bool       `gorm:"not null;default:true;index" json:"is_active"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *int64     `json:"deleted_by,omitempty"`
}

// 削除マークを付ける
func (s *SoftDelete) MarkDeleted(by int64, at time.Time) {
	s.IsActive = false
	s.DeletedAt = &at
	s.DeletedBy = &by
}

// 削除マークを消す
func (s *SoftDelete) Restore() {
	s.IsActive = true
	s.DeletedAt = nil
	s.DeletedBy = nil
}
