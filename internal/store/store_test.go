package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/uuid"

	"github.com/ayusman/mudra/internal/joystick"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testProfile(name string) *Profile {
	return &Profile{
		ID:        uuid.NewString(),
		Name:      name,
		Threshold: 0.25,
		Left:      joystick.Config{OriginX: 0.92, OriginY: 0.88, Radius: 0.12, Deadzone: 0.15},
		Right:     joystick.Config{OriginX: 0.08, OriginY: 0.88, Radius: 0.12, Deadzone: 0.15},
	}
}

func TestProfileRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("default")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if p.CreatedAt.IsZero() || p.UpdatedAt.IsZero() {
		t.Error("expected timestamps set on create")
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "default" {
		t.Errorf("unexpected name %q", got.Name)
	}
	if got.Threshold != 0.25 {
		t.Errorf("unexpected threshold %g", got.Threshold)
	}
	if got.Left != p.Left || got.Right != p.Right {
		t.Errorf("joystick layouts not round-tripped: %+v / %+v", got.Left, got.Right)
	}

	byName, err := repo.GetByName("default")
	if err != nil {
		t.Fatalf("GetByName() error = %v", err)
	}
	if byName.ID != p.ID {
		t.Errorf("GetByName returned wrong profile %q", byName.ID)
	}
}

func TestProfileRepository_GetMissing(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	if _, err := repo.GetByID("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByName("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestProfileRepository_DuplicateName(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	if err := repo.Create(testProfile("dup")); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Create(testProfile("dup")); err == nil {
		t.Error("expected unique-name violation")
	}
}

func TestProfileRepository_List(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	for _, name := range []string{"one", "two", "three"} {
		if err := repo.Create(testProfile(name)); err != nil {
			t.Fatalf("Create(%q) error = %v", name, err)
		}
	}

	profiles, err := repo.List()
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(profiles) != 3 {
		t.Errorf("expected 3 profiles, got %d", len(profiles))
	}
}

func TestProfileRepository_Update(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("tweak")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	p.Threshold = 0.3
	p.Left.Radius = 0.2
	if err := repo.Update(p); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.GetByID(p.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Threshold != 0.3 || got.Left.Radius != 0.2 {
		t.Errorf("update not persisted: %+v", got)
	}

	missing := testProfile("ghost")
	if err := repo.Update(missing); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing profile, got %v", err)
	}
}

func TestProfileRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	repo := s.Profiles()

	p := testProfile("gone")
	if err := repo.Create(p); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := repo.Delete(p.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetByID(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	if err := repo.Delete(p.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for double delete, got %v", err)
	}
}

func TestSettingsRepository(t *testing.T) {
	s := newTestStore(t)
	settings := s.Settings()

	if _, err := settings.Get(SettingActiveProfile); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for unset key, got %v", err)
	}

	if err := settings.Set(SettingActiveProfile, "abc"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, err := settings.Get(SettingActiveProfile)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "abc" {
		t.Errorf("expected %q, got %q", "abc", got)
	}

	// Set replaces the existing value.
	if err := settings.Set(SettingActiveProfile, "def"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	got, _ = settings.Get(SettingActiveProfile)
	if got != "def" {
		t.Errorf("expected %q, got %q", "def", got)
	}

	if err := settings.Delete(SettingActiveProfile); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := settings.Get(SettingActiveProfile); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Deleting a missing key is not an error.
	if err := settings.Delete("nope"); err != nil {
		t.Errorf("Delete(missing) error = %v", err)
	}
}
