package database

import (
	"learnspace_backend/internal/config"
	"learnspace_backend/internal/model"
	"fmt"
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the Postgres connection. Migrations run in debug mode by
// default; release deployments opt in with the -migrate flag.
func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s TimeZone=%s",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.DBName,
		cfg.Port,
		cfg.SSLMode,
		cfg.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Info),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	if !migrate {
		return db, nil
	}

	err = db.AutoMigrate(
		&model.User{},
		&model.Community{},
		&model.Post{},
		&model.Comment{},
		&model.PostLike{},
		&model.Course{},
		&model.CourseModule{},
		&model.Lesson{},
		&model.LessonResource{},
		&model.ResourceUsageEvent{},
		&model.ResourceCategory{},
		&model.StorageFile{},
		&model.LessonProgress{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	// Seed the resource categories table with the built-in set so the
	// fallback list and the stored list start out identical.
	var count int64
	db.Model(&model.ResourceCategory{}).Count(&count)
	if count == 0 {
		for _, c := range model.BuiltinCategories() {
			db.Create(&c)
		}
	}

	return db, nil
}
