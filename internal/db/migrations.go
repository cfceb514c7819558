package db

// RunMigrations ensures the items table exists. It is idempotent; startup
// continues even when it fails, handlers then surface the missing table as
// query errors.
func RunMigrations(db *DB) error {
	return db.AutoMigrate(&Item{})
}

// ResetItems drops the items table and recreates it empty.
func ResetItems(db *DB) error {
	if err := db.Migrator().DropTable(&Item{}); err != nil {
		return err
	}
	return db.AutoMigrate(&Item{})
}
