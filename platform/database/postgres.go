package database

import (
	"github.com/DedS3t/rich-backend/app/models"
	"github.com/go-pg/pg/v10"
	"github.com/go-pg/pg/v10/orm"
)

type Options struct {
	Addr     string
	User     string
	Password string
	Database string
}

func PostgreSQLConnection(opts Options) *pg.DB {
	return pg.Connect(&pg.Options{
		User:     opts.User,
		Addr:     opts.Addr,
		Password: opts.Password,
		Database: opts.Database,
	})
}

// CreateSchema creates the archive tables if they are missing.
func CreateSchema(db orm.DB) error {
	tables := []interface{}{
		(*models.GameResult)(nil),
	}
	for _, model := range tables {
		err := db.Model(model).CreateTable(&orm.CreateTableOptions{IfNotExists: true})
		if err != nil {
			return err
		}
	}
	return nil
}
