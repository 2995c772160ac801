package db

import (
	"context"

	"gorm.io/gorm"
)

type Database interface {
	GetDB() *gorm.DB
	Ping(ctx context.Context) error
	Close() error
}

type GormDatabase struct {
	DB *gorm.DB
}

func (g *GormDatabase) GetDB() *gorm.DB { return g.DB }

// Ping runs the lightweight query used by the keep-alive job.
func (g *GormDatabase) Ping(ctx context.Context) error {
	var count int64
	return g.DB.WithContext(ctx).Table("profiles").Limit(1).Count(&count).Error
}

func (g *GormDatabase) Close() error {
	sqlDB, err := g.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
