package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Profiles table - named joystick layouts and thresholds
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			threshold REAL NOT NULL DEFAULT 0.25,
			left_origin_x REAL NOT NULL,
			left_origin_y REAL NOT NULL,
			left_radius REAL NOT NULL,
			left_deadzone REAL NOT NULL,
			right_origin_x REAL NOT NULL,
			right_origin_y REAL NOT NULL,
			right_radius REAL NOT NULL,
			right_deadzone REAL NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		// Settings table - application settings as key-value pairs
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
