package gormrepos

import (
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type (
	yajaStudent struct {
		ID            int    `gorm:"primaryKey;autoIncrement"`
		Date          string `gorm:"not null;index:idx_yaja_date"`
		Period        int    `gorm:"not null"`
		StudentName   string `gorm:"not null"`
		StudentCode   string `gorm:"not null"`
		StudentNumber string `gorm:"not null"`
		Reason        string `gorm:"not null"`
		CreatedAt     time.Time
	}

	hagteugsa struct {
		ID          int    `gorm:"primaryKey;autoIncrement"`
		Title       string `gorm:"not null"`
		Description string `gorm:"not null"`
		MaxMembers  int    `gorm:"not null"`
		CreatorName string `gorm:"not null"`
		CreatorCode string `gorm:"not null"`
		CreatedAt   time.Time
		Members     []hagteugsaMember `gorm:"foreignKey:HagteugsaID;constraint:OnDelete:CASCADE"`
	}

	hagteugsaMember struct {
		ID          int    `gorm:"primaryKey;autoIncrement"`
		HagteugsaID int    `gorm:"not null;index"`
		MemberName  string `gorm:"not null"`
		MemberCode  string `gorm:"not null"`
		JoinedAt    time.Time
	}

	suhang struct {
		ID          int    `gorm:"primaryKey;autoIncrement"`
		Subject     string `gorm:"not null"`
		Title       string `gorm:"not null"`
		Deadline    string `gorm:"not null;index"`
		Description string `gorm:"not null"`
		CreatorName string `gorm:"not null"`
		CreatorCode string `gorm:"not null"`
		CreatedAt   time.Time
	}

	userRow struct {
		ID        string `gorm:"primaryKey"`
		Name      string `gorm:"not null"`
		Password  string `gorm:"not null"` // bcrypt hash
		CreatedAt time.Time
	}
)

func (yajaStudent) TableName() string     { return "yaja_students" }
func (hagteugsa) TableName() string       { return "hagteugsa" }
func (hagteugsaMember) TableName() string { return "hagteugsa_members" }
func (suhang) TableName() string          { return "suhang" }
func (userRow) TableName() string         { return "users" }

// Open opens (creating if needed) the SQLite file at path and migrates its schema.
func Open(path string, debug ...bool) (*gorm.DB, error) {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

	logLevel := logger.Silent
	if len(debug) > 0 && debug[0] {
		logLevel = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logLevel)})
	if err != nil {
		return nil, errors.Wrap(err, "opening local database")
	}

	// SQLite has a single writer
	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrap(err, "getting local database handle")
	}
	sqlDB.SetMaxOpenConns(1)

	if err = Migrate(db); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&userRow{}, &yajaStudent{}, &hagteugsa{}, &hagteugsaMember{}, &suhang{}); err != nil {
		return errors.Wrap(err, "migrating local database")
	}
	return nil
}
