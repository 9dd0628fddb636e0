package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"subtrack/internal/core"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// customerRow is the persisted shape of a customer record.
type customerRow struct {
	ID         uint   `gorm:"primaryKey;autoIncrement"`
	Owner      string `gorm:"index"`
	Name       string `gorm:"not null"`
	DeviceInfo string
	RegDate    string
	Duration   int
}

func (customerRow) TableName() string { return "customers" }

type accountRow struct {
	Username     string `gorm:"primaryKey"`
	PasswordHash string `gorm:"not null"`
	CreatedAt    time.Time
}

func (accountRow) TableName() string { return "accounts" }

type sqliteStore struct {
	db *gorm.DB
}

// NewSQLite opens (creating if needed) the SQLite database at dsn and
// migrates the schema.
func NewSQLite(dsn string) (Store, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.AutoMigrate(&customerRow{}, &accountRow{}); err != nil {
		return nil, fmt.Errorf("migrating schema: %w", err)
	}
	return &sqliteStore{db: db}, nil
}

func (s *sqliteStore) ListCustomers(ctx context.Context, owner string) ([]core.CustomerRecord, error) {
	var rows []customerRow
	err := s.db.WithContext(ctx).
		Where("owner = ?", owner).
		Order("id").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("listing customers: %w", err)
	}

	records := make([]core.CustomerRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toRecord())
	}
	return records, nil
}

func (s *sqliteStore) GetCustomer(ctx context.Context, owner string, id uint) (core.CustomerRecord, error) {
	var row customerRow
	err := s.db.WithContext(ctx).
		Where("owner = ? AND id = ?", owner, id).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return core.CustomerRecord{}, ErrNotFound
	}
	if err != nil {
		return core.CustomerRecord{}, fmt.Errorf("loading customer: %w", err)
	}
	return row.toRecord(), nil
}

func (s *sqliteStore) AddCustomer(ctx context.Context, rec *core.CustomerRecord) error {
	row := fromRecord(*rec)
	row.ID = 0 // let the database assign it
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("adding customer: %w", err)
	}
	rec.ID = row.ID
	return nil
}

func (s *sqliteStore) UpdateCustomer(ctx context.Context, rec core.CustomerRecord) error {
	row := fromRecord(rec)
	result := s.db.WithContext(ctx).
		Model(&customerRow{}).
		Where("owner = ? AND id = ?", rec.Owner, rec.ID).
		Select("Name", "DeviceInfo", "RegDate", "Duration").
		Updates(row)
	if result.Error != nil {
		return fmt.Errorf("updating customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) DeleteCustomer(ctx context.Context, owner string, id uint) error {
	result := s.db.WithContext(ctx).
		Where("owner = ? AND id = ?", owner, id).
		Delete(&customerRow{})
	if result.Error != nil {
		return fmt.Errorf("deleting customer: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *sqliteStore) CreateAccount(ctx context.Context, acct Account) error {
	if acct.CreatedAt.IsZero() {
		acct.CreatedAt = time.Now()
	}
	row := accountRow{
		Username:     acct.Username,
		PasswordHash: acct.PasswordHash,
		CreatedAt:    acct.CreatedAt,
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&accountRow{}).
		Where("username = ?", acct.Username).
		Count(&count).Error; err != nil {
		return fmt.Errorf("checking account: %w", err)
	}
	if count > 0 {
		return ErrAccountExists
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("creating account: %w", err)
	}
	return nil
}

func (s *sqliteStore) GetAccount(ctx context.Context, username string) (Account, error) {
	var row accountRow
	err := s.db.WithContext(ctx).
		Where("username = ?", username).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Account{}, ErrNotFound
	}
	if err != nil {
		return Account{}, fmt.Errorf("loading account: %w", err)
	}
	return Account{
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		CreatedAt:    row.CreatedAt,
	}, nil
}

func (s *sqliteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (row customerRow) toRecord() core.CustomerRecord {
	return core.CustomerRecord{
		ID:         row.ID,
		Owner:      row.Owner,
		Name:       row.Name,
		DeviceInfo: row.DeviceInfo,
		RegDate:    row.RegDate,
		Duration:   row.Duration,
	}
}

func fromRecord(rec core.CustomerRecord) customerRow {
	return customerRow{
		ID:         rec.ID,
		Owner:      rec.Owner,
		Name:       rec.Name,
		DeviceInfo: rec.DeviceInfo,
		RegDate:    rec.RegDate,
		Duration:   rec.Duration,
	}
}
