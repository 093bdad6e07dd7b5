package session

import (
	"errors"
	"testing"

	"github.com/rhysbell/ritual/internal/constants"
	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/storage"
)

func newTestManager() (*Manager, *storage.MemStore) {
	store := storage.NewMemStore()
	return NewManager(store), store
}

func TestRegisterAndLogin(t *testing.T) {
	mgr, _ := newTestManager()

	user, err := mgr.Register("Alice", "alice@example.com", "correct horse")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected generated user ID")
	}
	if user.PasswordHash == "correct horse" {
		t.Error("password stored in plaintext")
	}
	if !mgr.IsAuthenticated() {
		t.Error("expected authenticated session after register")
	}

	if err := mgr.Logout(); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if mgr.IsAuthenticated() {
		t.Error("still authenticated after logout")
	}

	if _, err := mgr.Login("alice@example.com", "correct horse"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if !mgr.IsAuthenticated() {
		t.Error("expected authenticated session after login")
	}
}

func TestRegisterValidation(t *testing.T) {
	mgr, _ := newTestManager()

	if _, err := mgr.Register("", "alice@example.com", "longenough"); err == nil {
		t.Error("expected error for empty name")
	}
	if _, err := mgr.Register("Alice", "not-an-email", "longenough"); err == nil {
		t.Error("expected error for bad email")
	}
	if _, err := mgr.Register("Alice", "alice@example.com", "short"); err == nil {
		t.Error("expected error for short password")
	}
}

func TestRegisterDuplicate(t *testing.T) {
	mgr, _ := newTestManager()

	if _, err := mgr.Register("Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.Register("Alice", "alice@example.com", "another pass"); !errors.Is(err, ErrDuplicateAccount) {
		t.Errorf("expected ErrDuplicateAccount, got %v", err)
	}

	// A different email replaces the single account slot
	if _, err := mgr.Register("Bob", "bob@example.com", "correct horse"); err != nil {
		t.Fatalf("expected replacement register to succeed: %v", err)
	}
	user, err := mgr.CurrentUser()
	if err != nil {
		t.Fatal(err)
	}
	if user.Email != "bob@example.com" {
		t.Errorf("expected replaced account, got %q", user.Email)
	}
}

func TestLoginErrors(t *testing.T) {
	mgr, _ := newTestManager()

	if _, err := mgr.Login("alice@example.com", "whatever!"); !errors.Is(err, ErrNoAccount) {
		t.Errorf("expected ErrNoAccount, got %v", err)
	}

	if _, err := mgr.Register("Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatal(err)
	}

	if _, err := mgr.Login("alice@example.com", "wrong pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for bad password, got %v", err)
	}
	if _, err := mgr.Login("other@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials for wrong email, got %v", err)
	}
}

func TestLogoutKeepsData(t *testing.T) {
	mgr, store := newTestManager()

	if _, err := mgr.Register("Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatal(err)
	}
	if err := store.Set(constants.KeyHabits, `[]`); err != nil {
		t.Fatal(err)
	}

	if err := mgr.Logout(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(constants.KeyUser); err != nil {
		t.Error("logout removed the user record")
	}
	if _, err := store.Get(constants.KeyHabits); err != nil {
		t.Error("logout removed habit data")
	}
	if _, err := store.Get(constants.KeyAuth); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Error("logout left the auth marker in place")
	}
}

func TestUpdateProfile(t *testing.T) {
	mgr, _ := newTestManager()

	if _, err := mgr.UpdateProfile(ProfileUpdate{}); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound without account, got %v", err)
	}

	if _, err := mgr.Register("Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatal(err)
	}

	newName := "Alicia"
	user, err := mgr.UpdateProfile(ProfileUpdate{Name: &newName})
	if err != nil {
		t.Fatal(err)
	}
	if user.Name != "Alicia" {
		t.Errorf("expected updated name, got %q", user.Name)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("nil email field should be untouched, got %q", user.Email)
	}
}

func TestChangePassword(t *testing.T) {
	mgr, _ := newTestManager()

	if _, err := mgr.Register("Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatal(err)
	}

	if err := mgr.ChangePassword("wrong pass", "new password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if err := mgr.ChangePassword("correct horse", "short"); err == nil {
		t.Error("expected error for short new password")
	}
	if err := mgr.ChangePassword("correct horse", "new password"); err != nil {
		t.Fatalf("change password failed: %v", err)
	}

	if _, err := mgr.Login("alice@example.com", "correct horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Error("old password still accepted")
	}
	if _, err := mgr.Login("alice@example.com", "new password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
}

func TestUpdatePreferencesMerges(t *testing.T) {
	mgr, store := newTestManager()

	if _, err := mgr.Register("Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatal(err)
	}

	reminder := "08:30"
	if _, err := mgr.UpdatePreferences(PreferencesUpdate{ReminderAt: &reminder}); err != nil {
		t.Fatal(err)
	}

	dark := models.ThemeDark
	user, err := mgr.UpdatePreferences(PreferencesUpdate{Theme: &dark})
	if err != nil {
		t.Fatal(err)
	}
	if user.Preferences.Theme != models.ThemeDark {
		t.Errorf("expected dark theme, got %q", user.Preferences.Theme)
	}
	// The earlier reminder setting survives the theme-only update
	if user.Preferences.ReminderAt != "08:30" {
		t.Errorf("reminder lost by merge, got %q", user.Preferences.ReminderAt)
	}

	// Theme is mirrored to its own key
	if value, err := store.Get(constants.KeyTheme); err != nil || value != "dark" {
		t.Errorf("expected mirrored theme key, got %q err %v", value, err)
	}
	if mgr.Theme() != models.ThemeDark {
		t.Error("Theme() did not reflect the stored preference")
	}

	bogus := models.Theme("solarized")
	if _, err := mgr.UpdatePreferences(PreferencesUpdate{Theme: &bogus}); err == nil {
		t.Error("expected error for invalid theme")
	}
}

func TestThemeDefaultsToLight(t *testing.T) {
	mgr, _ := newTestManager()
	if mgr.Theme() != models.ThemeLight {
		t.Errorf("expected light default, got %q", mgr.Theme())
	}
}

func TestWipeData(t *testing.T) {
	mgr, store := newTestManager()

	if _, err := mgr.Register("Alice", "alice@example.com", "correct horse"); err != nil {
		t.Fatal(err)
	}
	store.Set(constants.KeyHabits, `[{"id":"h1"}]`)
	store.Set(constants.KeyHabitLogs, `[{"id":"l1"}]`)

	if err := mgr.WipeData(); err != nil {
		t.Fatal(err)
	}

	if _, err := store.Get(constants.KeyHabits); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Error("habits survived wipe")
	}
	if _, err := store.Get(constants.KeyHabitLogs); !errors.Is(err, storage.ErrKeyNotFound) {
		t.Error("logs survived wipe")
	}
	// The account record is kept
	if _, err := mgr.CurrentUser(); err != nil {
		t.Errorf("wipe removed the account: %v", err)
	}
}
