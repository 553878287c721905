package connection

import (
	"database/sql"

	"gorm.io/gorm"
)

// SQLTx exposes the database/sql transaction underneath a gorm
// transaction so repositories written against *sql.Tx (the outbox) can
// join the same unit of work.
func SQLTx(tx *gorm.DB) (*sql.Tx, bool) {
	sqlTx, ok := tx.Statement.ConnPool.(*sql.Tx)
	return sqlTx, ok
}
