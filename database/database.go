// Package database stores preferences in SQLite, with the schema managed by embedded migrations.
package database

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"moul.io/zapgorm2"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const themeKey = "theme"

type Database struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

// NewDatabase opens (creating if necessary) the SQLite database at path. Call Migrate before use.
func NewDatabase(path string, log *zap.Logger) (*Database, error) {
	logger := zapgorm2.New(log.Named("gorm"))
	logger.IgnoreRecordNotFoundError = true
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{Logger: logger})
	if err != nil {
		return nil, err
	}
	return &Database{db: db, log: log.Named("database").Sugar()}, nil
}

// Open is NewDatabase followed by Migrate.
func Open(path string, log *zap.Logger) (*Database, error) {
	d, err := NewDatabase(path, log)
	if err != nil {
		return nil, err
	}
	if err := d.Migrate(); err != nil {
		_ = d.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return d, nil
}

func (d *Database) Migrate() error {
	d.log.Debug("running database migrations")
	fs, err := iofs.New(embedMigrations, "migrations")
	if err != nil {
		return err
	}
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	driver, err := sqlite3.WithInstance(sqlDB, &sqlite3.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithInstance("iofs", fs, "sqlite3", driver)
	if err != nil {
		return err
	}
	err = m.Up()
	switch {
	case err == nil:
		d.log.Debug("database migration complete")
	case errors.Is(err, migrate.ErrNoChange):
		d.log.Debug("no database migration required")
	default:
		return err
	}
	return nil
}

func (d *Database) Close() error {
	sqlDB, err := d.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (d *Database) GetTheme() (string, error) {
	var prefs []Preference
	if err := d.db.Where("name = ?", themeKey).Limit(1).Find(&prefs).Error; err != nil {
		return "", err
	}
	if len(prefs) == 0 {
		return "", nil
	}
	return prefs[0].Value, nil
}

func (d *Database) SetTheme(theme string) error {
	return d.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&Preference{Name: themeKey, Value: theme}).Error
}

func (d *Database) ListRecentURLs() ([]string, error) {
	var rows []RecentURL
	if err := d.db.Order("position").Find(&rows).Error; err != nil {
		return nil, err
	}
	urls := make([]string, 0, len(rows))
	for _, row := range rows {
		urls = append(urls, row.URL)
	}
	return urls, nil
}

// WriteRecentURLs replaces the whole list in one transaction.
func (d *Database) WriteRecentURLs(urls []string) error {
	return d.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&RecentURL{}).Error; err != nil {
			return fmt.Errorf("failed to delete recent URLs: %w", err)
		}
		if len(urls) == 0 {
			return nil
		}
		rows := make([]RecentURL, 0, len(urls))
		for i, u := range urls {
			rows = append(rows, RecentURL{Position: i, URL: u})
		}
		if err := tx.Create(&rows).Error; err != nil {
			return fmt.Errorf("failed to insert recent URLs: %w", err)
		}
		return nil
	})
}

type Preference struct {
	Name  string `gorm:"primaryKey"`
	Value string
}

func (Preference) TableName() string {
	return "preference"
}

type RecentURL struct {
	Position int `gorm:"primaryKey;autoIncrement:false"`
	URL      string
}

func (RecentURL) TableName() string {
	return "recent_url"
}
