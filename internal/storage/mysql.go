package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-match-go/internal/config"
	"resume-match-go/internal/storage/models"
	"resume-match-go/internal/types"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MySQL wraps the GORM database handle
type MySQL struct {
	db     *gorm.DB
	config *config.MySQLConfig
}

// NewMySQLAdapter 创建MySQL连接并迁移岗位表
func NewMySQLAdapter(cfg *config.MySQLConfig) (*MySQL, error) {
	if cfg == nil {
		return nil, fmt.Errorf("mysql config cannot be nil")
	}

	dsn := fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local&timeout=%ds&readTimeout=%ds&writeTimeout=%ds",
		cfg.Username, cfg.Password, cfg.Host, cfg.Port, cfg.Database,
		cfg.ConnectTimeoutSeconds, cfg.ReadTimeoutSeconds, cfg.WriteTimeoutSeconds,
	)

	logLevel := gormlogger.LogLevel(cfg.LogLevel)
	if logLevel < gormlogger.Silent || logLevel > gormlogger.Info {
		logLevel = gormlogger.Warn
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("连接MySQL失败 %s:%d: %w", cfg.Host, cfg.Port, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("获取底层连接池失败: %w", err)
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)
	sqlDB.SetConnMaxIdleTime(time.Duration(cfg.ConnMaxIdleTimeMinutes) * time.Minute)

	if err := db.AutoMigrate(&models.JobPosting{}); err != nil {
		return nil, fmt.Errorf("迁移岗位表失败: %w", err)
	}

	return &MySQL{db: db, config: cfg}, nil
}

// DB 返回底层GORM句柄
func (m *MySQL) DB() *gorm.DB {
	return m.db
}

// Close 关闭数据库连接
func (m *MySQL) Close() error {
	sqlDB, err := m.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// JobPostingStore 岗位持久化访问
type JobPostingStore struct {
	db *gorm.DB
}

// NewJobPostingStore 创建岗位存储
func NewJobPostingStore(m *MySQL) *JobPostingStore {
	return &JobPostingStore{db: m.db}
}

// Get 按ID取岗位，不存在时返回 (nil, nil)
func (s *JobPostingStore) Get(ctx context.Context, postingID string) (*types.JobPosting, error) {
	var model models.JobPosting
	err := s.db.WithContext(ctx).First(&model, "posting_id = ?", postingID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("查询岗位失败 %s: %w", postingID, err)
	}
	posting := model.ToDomain()
	return &posting, nil
}

// GetMany 按ID列表取岗位，保持入参顺序；缺失的ID被跳过
func (s *JobPostingStore) GetMany(ctx context.Context, postingIDs []string) ([]types.JobPosting, error) {
	if len(postingIDs) == 0 {
		return nil, nil
	}
	var rows []models.JobPosting
	err := s.db.WithContext(ctx).Where("posting_id IN ?", postingIDs).Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("批量查询岗位失败: %w", err)
	}

	byID := make(map[string]types.JobPosting, len(rows))
	for i := range rows {
		byID[rows[i].PostingID] = rows[i].ToDomain()
	}
	out := make([]types.JobPosting, 0, len(rows))
	for _, id := range postingIDs {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// Upsert 写入或更新岗位
func (s *JobPostingStore) Upsert(ctx context.Context, posting types.JobPosting) error {
	if posting.ID == "" {
		return fmt.Errorf("岗位ID不能为空")
	}
	model := models.FromDomain(posting)
	err := s.db.WithContext(ctx).Save(&model).Error
	if err != nil {
		return fmt.Errorf("写入岗位失败 %s: %w", posting.ID, err)
	}
	return nil
}

// List 按创建时间倒序分页列出岗位
func (s *JobPostingStore) List(ctx context.Context, offset, limit int) ([]types.JobPosting, error) {
	if limit <= 0 {
		limit = 50
	}
	var rows []models.JobPosting
	err := s.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("列出岗位失败: %w", err)
	}
	out := make([]types.JobPosting, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].ToDomain())
	}
	return out, nil
}
