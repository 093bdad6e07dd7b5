package tracker

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/rhysbell/ritual/internal/constants"
	"github.com/rhysbell/ritual/internal/logger"
	"github.com/rhysbell/ritual/internal/models"
	"github.com/rhysbell/ritual/internal/storage"
	"github.com/rhysbell/ritual/internal/utils"
)

// Repository is the sole owner of the habit and log blobs. Every write is a
// full read-modify-write of one collection blob; a mutex serializes those
// cycles so two in-process writers cannot lose each other's updates.
// Cross-process writers remain last-write-wins.
//
// Reads degrade to empty collections and writes report success as a bool;
// storage failures are logged here and never propagate to callers.
type Repository struct {
	store storage.Provider
	mu    sync.Mutex
}

func NewRepository(store storage.Provider) *Repository {
	return &Repository{
		store: store,
	}
}

// Habits returns all habits, archived included. Returns an empty slice on
// storage read failure.
func (r *Repository) Habits() []models.Habit {
	return r.loadHabits()
}

// ActiveHabits returns all non-archived habits.
func (r *Repository) ActiveHabits() []models.Habit {
	habits := r.loadHabits()
	active := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.IsArchived {
			active = append(active, h)
		}
	}
	return active
}

// ArchivedHabits returns all archived habits.
func (r *Repository) ArchivedHabits() []models.Habit {
	habits := r.loadHabits()
	archived := make([]models.Habit, 0)
	for _, h := range habits {
		if h.IsArchived {
			archived = append(archived, h)
		}
	}
	return archived
}

// HabitByID looks up a habit by id.
func (r *Repository) HabitByID(id string) (models.Habit, bool) {
	for _, h := range r.loadHabits() {
		if h.ID == id {
			return h, true
		}
	}
	return models.Habit{}, false
}

// HabitByTitle looks up a habit by its display title.
func (r *Repository) HabitByTitle(title string) (models.Habit, bool) {
	for _, h := range r.loadHabits() {
		if h.Title == title {
			return h, true
		}
	}
	return models.Habit{}, false
}

// SaveHabit upserts a habit by id and reports whether the write persisted.
func (r *Repository) SaveHabit(habit models.Habit) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	habits := r.loadHabits()
	replaced := false
	for i, h := range habits {
		if h.ID == habit.ID {
			habits[i] = habit
			replaced = true
			break
		}
	}
	if !replaced {
		habits = append(habits, habit)
	}

	return r.saveHabits(habits)
}

// DeleteHabit removes the habit and every log that references it. The
// filtered logs blob is written before the habits blob: the key-value layer
// has no cross-key transactions, so a failure mid-cascade leaves the habit in
// place with fewer logs (retryable) instead of orphaning logs.
func (r *Repository) DeleteHabit(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs := r.loadLogs()
	kept := make([]models.HabitLog, 0, len(logs))
	for _, l := range logs {
		if l.HabitID != id {
			kept = append(kept, l)
		}
	}
	if !r.saveLogs(kept) {
		return false
	}

	habits := r.loadHabits()
	filtered := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if h.ID != id {
			filtered = append(filtered, h)
		}
	}
	return r.saveHabits(filtered)
}

// ArchiveHabit soft-removes a habit from active queries. Its logs are kept.
func (r *Repository) ArchiveHabit(id string) bool {
	return r.setArchived(id, true)
}

// UnarchiveHabit returns an archived habit to active queries.
func (r *Repository) UnarchiveHabit(id string) bool {
	return r.setArchived(id, false)
}

func (r *Repository) setArchived(id string, archived bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	habits := r.loadHabits()
	for i, h := range habits {
		if h.ID == id {
			habits[i].IsArchived = archived
		}
	}
	return r.saveHabits(habits)
}

// Logs returns the full log collection.
func (r *Repository) Logs() []models.HabitLog {
	return r.loadLogs()
}

// LogsForDate returns logs for the calendar day of the given date. Any time
// component on the date is truncated before matching.
func (r *Repository) LogsForDate(date string) []models.HabitLog {
	day := utils.DayPart(date)
	logs := r.loadLogs()
	matched := make([]models.HabitLog, 0)
	for _, l := range logs {
		if utils.DayPart(l.Date) == day {
			matched = append(matched, l)
		}
	}
	return matched
}

// LogsForHabit returns all logs for one habit.
func (r *Repository) LogsForHabit(habitID string) []models.HabitLog {
	logs := r.loadLogs()
	matched := make([]models.HabitLog, 0)
	for _, l := range logs {
		if l.HabitID == habitID {
			matched = append(matched, l)
		}
	}
	return matched
}

// SaveLog upserts a log by id and reports whether the write persisted.
func (r *Repository) SaveLog(log models.HabitLog) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	logs := r.loadLogs()
	replaced := false
	for i, l := range logs {
		if l.ID == log.ID {
			logs[i] = log
			replaced = true
			break
		}
	}
	if !replaced {
		logs = append(logs, log)
	}

	return r.saveLogs(logs)
}

// ToggleCompletion flips the completed flag of the log for (habitID, day),
// creating a completed log if none exists yet. Two toggles in a row return
// the log to its original state.
func (r *Repository) ToggleCompletion(habitID, date string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	day := utils.DayPart(date)
	logs := r.loadLogs()

	found := false
	for i, l := range logs {
		if l.HabitID == habitID && utils.DayPart(l.Date) == day {
			logs[i].Completed = !l.Completed
			found = true
			break
		}
	}
	if !found {
		logs = append(logs, models.HabitLog{
			ID:        fmt.Sprintf("%s_%s_%d", habitID, day, time.Now().UnixMilli()),
			HabitID:   habitID,
			Date:      day,
			Completed: true,
		})
	}

	return r.saveLogs(logs)
}

func (r *Repository) loadHabits() []models.Habit {
	var habits []models.Habit
	if !r.loadCollection(constants.KeyHabits, &habits) {
		return []models.Habit{}
	}
	if habits == nil {
		habits = []models.Habit{}
	}
	return habits
}

func (r *Repository) loadLogs() []models.HabitLog {
	var logs []models.HabitLog
	if !r.loadCollection(constants.KeyHabitLogs, &logs) {
		return []models.HabitLog{}
	}
	if logs == nil {
		logs = []models.HabitLog{}
	}
	return logs
}

func (r *Repository) loadCollection(key string, out interface{}) bool {
	raw, err := r.store.Get(key)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			logger.Error("Failed to read collection", "key", key, "error", err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(raw), out); err != nil {
		logger.Error("Failed to parse collection", "key", key, "error", err)
		return false
	}
	return true
}

func (r *Repository) saveHabits(habits []models.Habit) bool {
	return r.saveCollection(constants.KeyHabits, habits)
}

func (r *Repository) saveLogs(logs []models.HabitLog) bool {
	return r.saveCollection(constants.KeyHabitLogs, logs)
}

func (r *Repository) saveCollection(key string, collection interface{}) bool {
	raw, err := json.Marshal(collection)
	if err != nil {
		logger.Error("Failed to serialize collection", "key", key, "error", err)
		return false
	}
	if err := r.store.Set(key, string(raw)); err != nil {
		logger.Error("Failed to write collection", "key", key, "error", err)
		return false
	}
	return true
}
