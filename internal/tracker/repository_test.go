package tracker

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/storage"
)

func newTestRepo() (*Repository, *storage.MemStore) {
	store := storage.NewMemStore()
	return NewRepository(store), store
}

func testHabit(title string) models.Habit {
	return models.Habit{
		ID:        uuid.New().String(),
		Title:     title,
		Schedule:  models.Schedule{Frequency: models.FrequencyDaily},
		CreatedAt: time.Now(),
	}
}

func TestSaveHabitUpsert(t *testing.T) {
	repo, _ := newTestRepo()

	habit := testHabit("Morning meditation")
	if !repo.SaveHabit(habit) {
		t.Fatal("failed to save habit")
	}

	// Saving the same ID again must replace, not duplicate
	habit.Title = "Updated meditation"
	if !repo.SaveHabit(habit) {
		t.Fatal("failed to update habit")
	}

	habits := repo.Habits()
	if len(habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(habits))
	}
	if habits[0].Title != "Updated meditation" {
		t.Errorf("expected updated title, got %q", habits[0].Title)
	}
}

func TestHabitLookups(t *testing.T) {
	repo, _ := newTestRepo()

	habit := testHabit("Read")
	repo.SaveHabit(habit)

	byID, ok := repo.HabitByID(habit.ID)
	if !ok || byID.Title != "Read" {
		t.Errorf("HabitByID failed: ok=%v title=%q", ok, byID.Title)
	}

	byTitle, ok := repo.HabitByTitle("Read")
	if !ok || byTitle.ID != habit.ID {
		t.Errorf("HabitByTitle failed: ok=%v id=%q", ok, byTitle.ID)
	}

	if _, ok := repo.HabitByID("missing"); ok {
		t.Error("expected lookup miss for unknown ID")
	}
}

func TestToggleCompletionInvolution(t *testing.T) {
	repo, _ := newTestRepo()

	habit := testHabit("Stretch")
	repo.SaveHabit(habit)

	if !repo.ToggleCompletion(habit.ID, "2024-03-05") {
		t.Fatal("first toggle failed")
	}
	logs := repo.LogsForDate("2024-03-05")
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if !logs[0].Completed {
		t.Error("first toggle should create a completed log")
	}

	// Second toggle flips the same log instead of creating another
	if !repo.ToggleCompletion(habit.ID, "2024-03-05") {
		t.Fatal("second toggle failed")
	}
	logs = repo.LogsForDate("2024-03-05")
	if len(logs) != 1 {
		t.Fatalf("expected 1 log after second toggle, got %d", len(logs))
	}
	if logs[0].Completed {
		t.Error("second toggle should uncomplete the log")
	}
}

func TestLogsForDateMatchesDayPrefix(t *testing.T) {
	repo, _ := newTestRepo()

	habit := testHabit("Walk")
	repo.SaveHabit(habit)
	repo.SaveLog(models.HabitLog{
		ID:        "l1",
		HabitID:   habit.ID,
		Date:      "2024-03-05T15:30:00",
		Completed: true,
	})

	logs := repo.LogsForDate("2024-03-05")
	if len(logs) != 1 {
		t.Fatalf("expected timestamped log to match its day, got %d logs", len(logs))
	}

	// A timestamped query date matches too
	logs = repo.LogsForDate("2024-03-05T08:00:00")
	if len(logs) != 1 {
		t.Fatalf("expected timestamped query to match, got %d logs", len(logs))
	}

	if logs := repo.LogsForDate("2024-03-06"); len(logs) != 0 {
		t.Errorf("expected no logs for other day, got %d", len(logs))
	}
}

func TestToggleOnTimestampedLog(t *testing.T) {
	repo, _ := newTestRepo()

	habit := testHabit("Journal")
	repo.SaveHabit(habit)
	repo.SaveLog(models.HabitLog{
		ID:        "l1",
		HabitID:   habit.ID,
		Date:      "2024-03-05T15:30:00",
		Completed: true,
	})

	// Toggling by day must find the timestamped log, not create a second one
	if !repo.ToggleCompletion(habit.ID, "2024-03-05") {
		t.Fatal("toggle failed")
	}
	logs := repo.LogsForHabit(habit.ID)
	if len(logs) != 1 {
		t.Fatalf("expected 1 log, got %d", len(logs))
	}
	if logs[0].Completed {
		t.Error("expected existing log to be flipped off")
	}
}

func TestDeleteHabitCascades(t *testing.T) {
	repo, _ := newTestRepo()

	keep := testHabit("Keep")
	drop := testHabit("Drop")
	repo.SaveHabit(keep)
	repo.SaveHabit(drop)
	repo.ToggleCompletion(keep.ID, "2024-03-05")
	repo.ToggleCompletion(drop.ID, "2024-03-05")
	repo.ToggleCompletion(drop.ID, "2024-03-06")

	if !repo.DeleteHabit(drop.ID) {
		t.Fatal("delete failed")
	}

	if _, ok := repo.HabitByID(drop.ID); ok {
		t.Error("deleted habit still present")
	}
	for _, l := range repo.Logs() {
		if l.HabitID == drop.ID {
			t.Errorf("orphaned log %s survived the cascade", l.ID)
		}
	}
	if logs := repo.LogsForHabit(keep.ID); len(logs) != 1 {
		t.Errorf("expected other habit's log to survive, got %d", len(logs))
	}
}

func TestArchiveRoundTrip(t *testing.T) {
	repo, _ := newTestRepo()

	habit := testHabit("Swim")
	repo.SaveHabit(habit)
	repo.ToggleCompletion(habit.ID, "2024-03-05")

	if !repo.ArchiveHabit(habit.ID) {
		t.Fatal("archive failed")
	}
	if len(repo.ActiveHabits()) != 0 {
		t.Error("archived habit still listed as active")
	}
	if len(repo.ArchivedHabits()) != 1 {
		t.Error("archived habit missing from archived list")
	}
	// Logs are kept through archival
	if logs := repo.LogsForHabit(habit.ID); len(logs) != 1 {
		t.Errorf("expected logs to survive archive, got %d", len(logs))
	}

	if !repo.UnarchiveHabit(habit.ID) {
		t.Fatal("unarchive failed")
	}
	if len(repo.ActiveHabits()) != 1 {
		t.Error("unarchived habit not listed as active")
	}
}

func TestReadsDegradeToEmpty(t *testing.T) {
	repo, store := newTestRepo()

	repo.SaveHabit(testHabit("Run"))
	store.FailReads = true

	if habits := repo.Habits(); len(habits) != 0 {
		t.Errorf("expected empty slice on read failure, got %d habits", len(habits))
	}
	if logs := repo.Logs(); logs == nil || len(logs) != 0 {
		t.Errorf("expected empty non-nil slice on read failure, got %v", logs)
	}
}

func TestWritesReportFailure(t *testing.T) {
	repo, store := newTestRepo()
	store.FailWrites = true

	if repo.SaveHabit(testHabit("Run")) {
		t.Error("expected SaveHabit to report failure")
	}
	if repo.ToggleCompletion("some-id", "2024-03-05") {
		t.Error("expected ToggleCompletion to report failure")
	}
	if repo.DeleteHabit("some-id") {
		t.Error("expected DeleteHabit to report failure")
	}
}

func TestCorruptBlobDegradesToEmpty(t *testing.T) {
	repo, store := newTestRepo()

	if err := store.Set("habits", "not json"); err != nil {
		t.Fatal(err)
	}
	if habits := repo.Habits(); len(habits) != 0 {
		t.Errorf("expected empty slice for corrupt blob, got %d habits", len(habits))
	}
}
