package system

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/rhysbell/ritual/internal/backup"
	"github.com/rhysbell/ritual/internal/cli"
	"github.com/rhysbell/ritual/internal/constants"
	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/session"
	"github.com/rhysbell/ritual/internal/storage"
	"github.com/rhysbell/ritual/internal/utils"
)

type DoctorCmd struct{}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	storeReachable := false

	// Check 1: store reachable
	if err := checkStoreReachable(ctx); err != nil {
		fmt.Printf("❌ Store reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Store reachable: OK\n")
		storeReachable = true
	}

	// Check 2: blobs parse (only if store is reachable)
	if storeReachable {
		if err := checkBlobsParse(ctx); err != nil {
			fmt.Printf("❌ Blobs parse: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Blobs parse: OK\n")
		}
	} else {
		fmt.Printf("⊘ Blobs parse: SKIPPED (store not reachable)\n")
	}

	// Check 3: habit integrity (only if store is reachable)
	if storeReachable {
		if err := checkHabitIntegrity(ctx); err != nil {
			fmt.Printf("❌ Habit integrity: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Habit integrity: OK\n")
		}
	} else {
		fmt.Printf("⊘ Habit integrity: SKIPPED (store not reachable)\n")
	}

	// Check 4: log date formats (only if store is reachable)
	if storeReachable {
		if err := checkLogDates(ctx); err != nil {
			fmt.Printf("❌ Log dates: FAIL\n")
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		} else {
			fmt.Printf("✓ Log dates: OK\n")
		}
	} else {
		fmt.Printf("⊘ Log dates: SKIPPED (store not reachable)\n")
	}

	// Check 5: account record (only if store is reachable)
	if storeReachable {
		if err := checkAccount(ctx); err != nil {
			fmt.Printf("⚠ Account: WARNING\n")
			fmt.Printf("   %v\n", err)
		} else {
			fmt.Printf("✓ Account: OK\n")
		}
	} else {
		fmt.Printf("⊘ Account: SKIPPED (store not reachable)\n")
	}

	// Check 6: backups present (warning only)
	if err := checkBackupsPresent(ctx); err != nil {
		fmt.Printf("⚠ Backups present: WARNING\n")
		fmt.Printf("   %v\n", err)
	} else {
		fmt.Printf("✓ Backups present: OK\n")
	}

	// Check 7: clock sanity
	if err := checkClock(); err != nil {
		fmt.Printf("❌ Clock: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
	} else {
		fmt.Printf("✓ Clock: OK\n")
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkStoreReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load store: %w", err)
	}
	return nil
}

// checkBlobsParse decodes every known blob directly, bypassing the
// repository's soft-fail reads so corruption is reported instead of hidden.
func checkBlobsParse(ctx *cli.Context) error {
	for _, key := range []string{constants.KeyHabits, constants.KeyHabitLogs} {
		raw, err := ctx.Store.Get(key)
		if err != nil {
			if errors.Is(err, storage.ErrKeyNotFound) {
				continue
			}
			return fmt.Errorf("failed to read key %q: %w", key, err)
		}
		var decoded []json.RawMessage
		if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
			return fmt.Errorf("key %q holds malformed JSON: %w", key, err)
		}
	}

	if raw, err := ctx.Store.Get(constants.KeyUser); err == nil {
		var user models.User
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			return fmt.Errorf("key %q holds malformed JSON: %w", constants.KeyUser, err)
		}
	} else if !errors.Is(err, storage.ErrKeyNotFound) {
		return fmt.Errorf("failed to read key %q: %w", constants.KeyUser, err)
	}

	return nil
}

func checkHabitIntegrity(ctx *cli.Context) error {
	habits := ctx.Tracker.Habits()

	ids := make(map[string]bool, len(habits))
	for _, habit := range habits {
		if ids[habit.ID] {
			return fmt.Errorf("duplicate habit ID found: %s", habit.ID)
		}
		ids[habit.ID] = true
	}

	orphaned := 0
	for _, log := range ctx.Tracker.Logs() {
		if !ids[log.HabitID] {
			orphaned++
		}
	}
	if orphaned > 0 {
		return fmt.Errorf("found %d orphaned logs (referencing non-existent habits)", orphaned)
	}

	return nil
}

func checkLogDates(ctx *cli.Context) error {
	invalid := 0
	for _, log := range ctx.Tracker.Logs() {
		if !utils.ValidateDateFormat(utils.DayPart(log.Date)) {
			invalid++
		}
	}
	if invalid > 0 {
		return fmt.Errorf("found %d logs with invalid date format", invalid)
	}
	return nil
}

func checkAccount(ctx *cli.Context) error {
	if _, err := ctx.Session.CurrentUser(); err != nil {
		if errors.Is(err, session.ErrNoAccount) {
			return fmt.Errorf("no account registered - run 'ritual account register'")
		}
		return fmt.Errorf("failed to read account: %w", err)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'ritual backup create'")
	}
	return nil
}

func checkClock() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}
