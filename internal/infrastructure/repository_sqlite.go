package infrastructure

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/ytdl-go/internal/domain"
)

// SQLiteRunRepository implements domain.RunRepository using SQLite
type SQLiteRunRepository struct {
	db *gorm.DB
}

// NewSQLiteRunRepository opens (and migrates) the history database
func NewSQLiteRunRepository(dbPath string) (*SQLiteRunRepository, error) {
	if dbPath != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(&domain.RunRecord{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteRunRepository{db: db}, nil
}

// Create stores a new run record
func (r *SQLiteRunRepository) Create(run *domain.RunRecord) error {
	return r.db.Create(run).Error
}

// FindByID finds a run by ID. Returns nil if not found.
func (r *SQLiteRunRepository) FindByID(id string) (*domain.RunRecord, error) {
	var run domain.RunRecord
	err := r.db.First(&run, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &run, nil
}

// FindRecent returns the newest runs first
func (r *SQLiteRunRepository) FindRecent(limit int) ([]*domain.RunRecord, error) {
	var runs []*domain.RunRecord
	err := r.recent(r.db, limit).Find(&runs).Error
	return runs, err
}

// FindByWorkflow returns runs of one workflow, newest first
func (r *SQLiteRunRepository) FindByWorkflow(workflow domain.Workflow, limit int) ([]*domain.RunRecord, error) {
	var runs []*domain.RunRecord
	query := r.db.Where("workflow = ?", workflow)
	err := r.recent(query, limit).Find(&runs).Error
	return runs, err
}

// Count returns the total number of runs
func (r *SQLiteRunRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&domain.RunRecord{}).Count(&count).Error
	return count, err
}

// CountByWorkflow returns the number of runs per workflow
func (r *SQLiteRunRepository) CountByWorkflow() (map[domain.Workflow]int64, error) {
	rows := []struct {
		Workflow domain.Workflow
		Count    int64
	}{}

	if err := r.db.Model(&domain.RunRecord{}).
		Select("workflow, count(*) as count").
		Group("workflow").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[domain.Workflow]int64, len(rows))
	for _, row := range rows {
		counts[row.Workflow] = row.Count
	}
	return counts, nil
}

// Close closes the database connection
func (r *SQLiteRunRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *SQLiteRunRepository) recent(query *gorm.DB, limit int) *gorm.DB {
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	return query
}
