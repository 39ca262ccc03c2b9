package migration

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/pressly/goose/v3"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"stockdesk/internal/infrastructure/persistence/models"
)

// optionalColumn is a column that stores created by earlier releases may lack.
type optionalColumn struct {
	model  any
	column string
}

var optionalColumns = []optionalColumn{
	{model: &models.TicketModel{}, column: "pickup_at"},
	{model: &models.TicketModel{}, column: "pickup_recipient"},
	{model: &models.TicketModel{}, column: "pickup_proof_path"},
	{model: &models.TicketModel{}, column: "closed_at"},
	{model: &models.UserModel{}, column: "created_at"},
}

func goMigrations(dialect string) []*goose.Migration {
	return []*goose.Migration{
		goose.NewGoMigration(2,
			&goose.GoFunc{RunTx: addOptionalColumns(dialect)},
			nil,
		),
	}
}

// addOptionalColumns adds each optional column only when it is missing,
// so stores that already carry some of them upgrade cleanly.
func addOptionalColumns(dialect string) func(ctx context.Context, tx *sql.Tx) error {
	return func(ctx context.Context, tx *sql.Tx) error {
		gdb, err := openOnTx(dialect, tx)
		if err != nil {
			return err
		}
		migrator := gdb.WithContext(ctx).Migrator()
		for _, c := range optionalColumns {
			if migrator.HasColumn(c.model, c.column) {
				continue
			}
			if err := migrator.AddColumn(c.model, c.column); err != nil {
				return fmt.Errorf("failed to add column %s: %w", c.column, err)
			}
		}
		return nil
	}
}

func openOnTx(dialect string, tx *sql.Tx) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch dialect {
	case "sqlite":
		dialector = sqlite.Dialector{Conn: tx}
	case "mysql":
		dialector = mysql.New(mysql.Config{Conn: tx, SkipInitializeWithVersion: true})
	default:
		return nil, fmt.Errorf("unsupported migration dialect: %s", dialect)
	}
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 gormlogger.Default.LogMode(gormlogger.Silent),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open migration session: %w", err)
	}
	return gdb, nil
}
