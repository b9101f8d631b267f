package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names are quoted everywhere because SHOW is reserved in MySQL.

var mysqlSchema = []string{
	"CREATE TABLE IF NOT EXISTS `Venue` (" +
		"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"name VARCHAR(255) NOT NULL," +
		"city VARCHAR(120) NOT NULL," +
		"state VARCHAR(120) NOT NULL," +
		"address VARCHAR(120) NOT NULL," +
		"phone VARCHAR(120) NOT NULL," +
		"genres TEXT NOT NULL," +
		"image_link VARCHAR(500) NOT NULL DEFAULT ''," +
		"facebook_link VARCHAR(120) NOT NULL DEFAULT ''," +
		"website_link VARCHAR(120) NOT NULL DEFAULT ''," +
		"seeking_talent BOOLEAN NOT NULL DEFAULT FALSE," +
		"seeking_description VARCHAR(500) NOT NULL DEFAULT ''" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS `Artist` (" +
		"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"name VARCHAR(255) NOT NULL," +
		"city VARCHAR(120) NOT NULL," +
		"state VARCHAR(120) NOT NULL," +
		"phone VARCHAR(120) NOT NULL," +
		"genres TEXT NOT NULL," +
		"image_link VARCHAR(500) NOT NULL DEFAULT ''," +
		"facebook_link VARCHAR(120) NOT NULL DEFAULT ''," +
		"website_link VARCHAR(120) NOT NULL DEFAULT ''," +
		"seeking_venue BOOLEAN NOT NULL DEFAULT FALSE," +
		"seeking_description VARCHAR(500) NOT NULL DEFAULT ''" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
	"CREATE TABLE IF NOT EXISTS `Show` (" +
		"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY," +
		"artist_id BIGINT UNSIGNED NOT NULL," +
		"venue_id BIGINT UNSIGNED NOT NULL," +
		"start_time DATETIME NOT NULL," +
		"INDEX idx_show_start (start_time)," +
		"CONSTRAINT fk_show_artist FOREIGN KEY (artist_id) REFERENCES `Artist`(id) ON DELETE CASCADE," +
		"CONSTRAINT fk_show_venue FOREIGN KEY (venue_id) REFERENCES `Venue`(id) ON DELETE CASCADE" +
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4",
}

var sqliteSchema = []string{
	"CREATE TABLE IF NOT EXISTS `Venue` (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"name TEXT NOT NULL," +
		"city TEXT NOT NULL," +
		"state TEXT NOT NULL," +
		"address TEXT NOT NULL," +
		"phone TEXT NOT NULL," +
		"genres TEXT NOT NULL," +
		"image_link TEXT NOT NULL DEFAULT ''," +
		"facebook_link TEXT NOT NULL DEFAULT ''," +
		"website_link TEXT NOT NULL DEFAULT ''," +
		"seeking_talent BOOLEAN NOT NULL DEFAULT 0," +
		"seeking_description TEXT NOT NULL DEFAULT ''" +
		")",
	"CREATE TABLE IF NOT EXISTS `Artist` (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"name TEXT NOT NULL," +
		"city TEXT NOT NULL," +
		"state TEXT NOT NULL," +
		"phone TEXT NOT NULL," +
		"genres TEXT NOT NULL," +
		"image_link TEXT NOT NULL DEFAULT ''," +
		"facebook_link TEXT NOT NULL DEFAULT ''," +
		"website_link TEXT NOT NULL DEFAULT ''," +
		"seeking_venue BOOLEAN NOT NULL DEFAULT 0," +
		"seeking_description TEXT NOT NULL DEFAULT ''" +
		")",
	"CREATE TABLE IF NOT EXISTS `Show` (" +
		"id INTEGER PRIMARY KEY AUTOINCREMENT," +
		"artist_id INTEGER NOT NULL REFERENCES `Artist`(id) ON DELETE CASCADE," +
		"venue_id INTEGER NOT NULL REFERENCES `Venue`(id) ON DELETE CASCADE," +
		"start_time DATETIME NOT NULL" +
		")",
	"CREATE INDEX IF NOT EXISTS idx_show_start ON `Show`(start_time)",
}

// Migrate creates the Venue, Artist and Show tables if they do not exist.
// Statements run one at a time since neither driver is configured for
// multi-statement execution.
func Migrate(ctx context.Context, db *sql.DB, driver string) error {
	var stmts []string
	switch driver {
	case DriverMySQL:
		stmts = mysqlSchema
	case DriverSQLite:
		stmts = sqliteSchema
	default:
		return fmt.Errorf("unsupported db driver %q", driver)
	}
	for i, q := range stmts {
		if _, err := db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("migrate step %d: %w", i+1, err)
		}
	}
	return nil
}
