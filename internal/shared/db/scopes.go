package db

import (
	"gorm.io/gorm"
)

// Paginate is a GORM scope applying LIMIT/OFFSET for a 1-based page.
// A non-positive pageSize disables pagination.
func Paginate(page, pageSize int) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if pageSize <= 0 {
			return db
		}
		if page < 1 {
			page = 1
		}
		return db.Limit(pageSize).Offset((page - 1) * pageSize)
	}
}

// NewestFirst orders by created_at descending with id as a tiebreaker, so tickets
// created within the same clock tick keep a stable order across pages.
func NewestFirst() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("created_at DESC").Order("id DESC")
	}
}
