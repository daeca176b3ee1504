package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/ayusman/mudra/internal/joystick"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Profile is a named kinematic calibration: both joystick layouts and
// the key-derivation threshold.
type Profile struct {
	ID        string
	Name      string
	Threshold float64
	Left      joystick.Config
	Right     joystick.Config
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ProfileRepository provides CRUD operations for profiles.
type ProfileRepository struct {
	db *sql.DB
}

// Profiles returns the profile repository for this store.
func (s *Store) Profiles() *ProfileRepository {
	return &ProfileRepository{db: s.db}
}

// Create inserts a new profile into the database.
func (r *ProfileRepository) Create(p *Profile) error {
	now := time.Now()
	p.CreatedAt = now
	p.UpdatedAt = now

	_, err := r.db.Exec(
		`INSERT INTO profiles (id, name, threshold,
			left_origin_x, left_origin_y, left_radius, left_deadzone,
			right_origin_x, right_origin_y, right_radius, right_deadzone,
			created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Threshold,
		p.Left.OriginX, p.Left.OriginY, p.Left.Radius, p.Left.Deadzone,
		p.Right.OriginX, p.Right.OriginY, p.Right.Radius, p.Right.Deadzone,
		p.CreatedAt, p.UpdatedAt,
	)
	return err
}

func scanProfile(row interface{ Scan(...any) error }) (*Profile, error) {
	p := &Profile{}
	err := row.Scan(
		&p.ID, &p.Name, &p.Threshold,
		&p.Left.OriginX, &p.Left.OriginY, &p.Left.Radius, &p.Left.Deadzone,
		&p.Right.OriginX, &p.Right.OriginY, &p.Right.Radius, &p.Right.Deadzone,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

const profileColumns = `id, name, threshold,
	left_origin_x, left_origin_y, left_radius, left_deadzone,
	right_origin_x, right_origin_y, right_radius, right_deadzone,
	created_at, updated_at`

// GetByID retrieves a profile by its ID.
func (r *ProfileRepository) GetByID(id string) (*Profile, error) {
	row := r.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE id = ?`, id)
	return scanProfile(row)
}

// GetByName retrieves a profile by its name.
func (r *ProfileRepository) GetByName(name string) (*Profile, error) {
	row := r.db.QueryRow(`SELECT `+profileColumns+` FROM profiles WHERE name = ?`, name)
	return scanProfile(row)
}

// List retrieves all profiles, newest first.
func (r *ProfileRepository) List() ([]*Profile, error) {
	rows, err := r.db.Query(`SELECT ` + profileColumns + ` FROM profiles ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var profiles []*Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}

// Update rewrites a profile's mutable fields.
func (r *ProfileRepository) Update(p *Profile) error {
	p.UpdatedAt = time.Now()

	res, err := r.db.Exec(
		`UPDATE profiles SET name = ?, threshold = ?,
			left_origin_x = ?, left_origin_y = ?, left_radius = ?, left_deadzone = ?,
			right_origin_x = ?, right_origin_y = ?, right_radius = ?, right_deadzone = ?,
			updated_at = ?
		 WHERE id = ?`,
		p.Name, p.Threshold,
		p.Left.OriginX, p.Left.OriginY, p.Left.Radius, p.Left.Deadzone,
		p.Right.OriginX, p.Right.OriginY, p.Right.Radius, p.Right.Deadzone,
		p.UpdatedAt, p.ID,
	)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete removes a profile by ID.
func (r *ProfileRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
