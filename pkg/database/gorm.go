package database

import (
	"log"
	"os"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Connections holds the two database handles the pipeline needs: the caller-scoped
// handle used on read paths and the service-role handle used for cache population
// and audit writes.
type Connections struct {
	Reader  *gorm.DB
	Service *gorm.DB
}

func getLogger() logger.Interface {
	return logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			ParameterizedQueries:      true, // Don't include params in the SQL log
			Colorful:                  true,
		},
	)
}

func configureConnectionPool(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return nil
}

func NewGormDBFromDSN(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: getLogger(),
	})
	if err != nil {
		return nil, err
	}

	if err := configureConnectionPool(db); err != nil {
		return nil, err
	}

	return db, nil
}

// NewConnections opens the reader and service handles. When both DSNs are equal a
// single pool is shared.
func NewConnections(readerDSN, serviceDSN string) (*Connections, error) {
	reader, err := NewGormDBFromDSN(readerDSN)
	if err != nil {
		return nil, err
	}

	if serviceDSN == "" || serviceDSN == readerDSN {
		return &Connections{Reader: reader, Service: reader}, nil
	}

	service, err := NewGormDBFromDSN(serviceDSN)
	if err != nil {
		return nil, err
	}

	return &Connections{Reader: reader, Service: service}, nil
}
