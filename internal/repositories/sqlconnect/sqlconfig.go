package sqlconnect

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"weexpense/pkg/utils"
)

// Connect opens and pings the MySQL database described by the DB_* env vars
// and hands the caller an explicit *sql.DB. The handle is owned by main and
// passed down; nothing in this package keeps global state.
func Connect() (*sql.DB, error) {
	user := os.Getenv("DB_USER")
	password := os.Getenv("DB_PASSWORD")
	dbname := os.Getenv("DB_NAME")
	port := os.Getenv("DB_PORT")
	host := os.Getenv("DB_HOST")

	// parseTime so DATETIME columns scan into time.Time.
	connectionString := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?parseTime=true", user, password, host, port, dbname)

	db, err := sql.Open("mysql", connectionString)
	if err != nil {
		return nil, utils.ErrorHandler(err, "failed to open DB connection")
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err = db.Ping(); err != nil {
		db.Close()
		return nil, utils.ErrorHandler(err, "failed to ping DB")
	}

	return db, nil
}
