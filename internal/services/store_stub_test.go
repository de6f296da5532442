package services

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/terraincognita07/rhythm/internal/models"
)

type occurrenceRepositoryStub struct {
	entries      []models.Occurrence
	nextID       uint
	createErr    error
	listErr      error
	hasAllDayErr error
	createCalls  int
}

func newOccurrenceRepositoryStub() *occurrenceRepositoryStub {
	return &occurrenceRepositoryStub{nextID: 1}
}

func sameSeriesSlot(left models.Occurrence, right models.Occurrence) bool {
	return left.Name == right.Name && left.Hour == right.Hour && CalendarDay(left.Date).Equal(CalendarDay(right.Date))
}

func (stub *occurrenceRepositoryStub) Create(entry *models.Occurrence) error {
	stub.createCalls++
	if stub.createErr != nil {
		return stub.createErr
	}
	for _, existing := range stub.entries {
		if sameSeriesSlot(existing, *entry) {
			return fmt.Errorf("%w: occurrences unique", ErrConstraintViolation)
		}
	}
	entry.ID = stub.nextID
	stub.nextID++
	entry.Date = CalendarDay(entry.Date)
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *occurrenceRepositoryStub) Save(entry *models.Occurrence) error {
	position := -1
	for index, existing := range stub.entries {
		if existing.ID == entry.ID {
			position = index
			continue
		}
		if sameSeriesSlot(existing, *entry) {
			return fmt.Errorf("%w: occurrences unique", ErrConstraintViolation)
		}
	}
	if position < 0 {
		return ErrRecordNotFound
	}
	stub.entries[position] = *entry
	return nil
}

func (stub *occurrenceRepositoryStub) FindByID(id uint) (models.Occurrence, error) {
	for _, entry := range stub.entries {
		if entry.ID == id {
			return entry, nil
		}
	}
	return models.Occurrence{}, ErrRecordNotFound
}

func (stub *occurrenceRepositoryStub) Delete(id uint) error {
	for index, entry := range stub.entries {
		if entry.ID == id {
			stub.entries = append(stub.entries[:index], stub.entries[index+1:]...)
			return nil
		}
	}
	return ErrRecordNotFound
}

func (stub *occurrenceRepositoryStub) DeleteSeriesFrom(name string, dayStart time.Time) (int64, error) {
	kept := stub.entries[:0]
	var removed int64
	for _, entry := range stub.entries {
		if entry.Name == name && !entry.Date.Before(dayStart) {
			removed++
			continue
		}
		kept = append(kept, entry)
	}
	stub.entries = kept
	return removed, nil
}

func (stub *occurrenceRepositoryStub) filter(keep func(models.Occurrence) bool) []models.Occurrence {
	result := make([]models.Occurrence, 0)
	for _, entry := range stub.entries {
		if keep(entry) {
			result = append(result, entry)
		}
	}
	return result
}

func sortByDayAndTime(entries []models.Occurrence) {
	sort.Slice(entries, func(i, j int) bool {
		left, right := entries[i], entries[j]
		if !left.Date.Equal(right.Date) {
			return left.Date.Before(right.Date)
		}
		if left.Hour != right.Hour {
			return left.Hour < right.Hour
		}
		if left.Minute != right.Minute {
			return left.Minute < right.Minute
		}
		return left.ID < right.ID
	})
}

func inRange(value time.Time, start time.Time, end time.Time) bool {
	return !value.Before(start) && value.Before(end)
}

func (stub *occurrenceRepositoryStub) ListByDayRange(dayStart time.Time, dayEnd time.Time) ([]models.Occurrence, error) {
	if stub.listErr != nil {
		return nil, stub.listErr
	}
	entries := stub.filter(func(entry models.Occurrence) bool { return inRange(entry.Date, dayStart, dayEnd) })
	sortByDayAndTime(entries)
	return entries, nil
}

func (stub *occurrenceRepositoryStub) ListBetween(fromStart time.Time, toEnd time.Time) ([]models.Occurrence, error) {
	return stub.ListByDayRange(fromStart, toEnd)
}

func (stub *occurrenceRepositoryStub) ListBySeriesNamePrefix(prefix string) ([]models.Occurrence, error) {
	entries := stub.filter(func(entry models.Occurrence) bool { return strings.HasPrefix(entry.Name, prefix) })
	sortByDayAndTime(entries)
	return entries, nil
}

func (stub *occurrenceRepositoryStub) ListRepeatingTemplates(excludeCategoryID uint) ([]models.Occurrence, error) {
	entries := stub.filter(func(entry models.Occurrence) bool {
		return entry.IntervalDays > 0 && entry.CategoryID != excludeCategoryID
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (stub *occurrenceRepositoryStub) ListRepeatingByCategory(categoryID uint) ([]models.Occurrence, error) {
	entries := stub.filter(func(entry models.Occurrence) bool {
		return entry.IntervalDays > 0 && entry.CategoryID == categoryID
	})
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries, nil
}

func (stub *occurrenceRepositoryStub) ExistsForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time, hour int) (bool, error) {
	for _, entry := range stub.entries {
		if entry.Name == name && entry.Hour == hour && inRange(entry.Date, dayStart, dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (stub *occurrenceRepositoryStub) ExistsAllDayForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time) (bool, error) {
	for _, entry := range stub.entries {
		if entry.Name == name && entry.AllDay && inRange(entry.Date, dayStart, dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (stub *occurrenceRepositoryStub) HasAllDayInRange(dayStart time.Time, dayEnd time.Time) (bool, error) {
	if stub.hasAllDayErr != nil {
		return false, stub.hasAllDayErr
	}
	for _, entry := range stub.entries {
		if entry.AllDay && inRange(entry.Date, dayStart, dayEnd) {
			return true, nil
		}
	}
	return false, nil
}

func (stub *occurrenceRepositoryStub) namedOn(name string) []time.Time {
	days := make([]time.Time, 0)
	entries := stub.filter(func(entry models.Occurrence) bool { return entry.Name == name })
	sortByDayAndTime(entries)
	for _, entry := range entries {
		days = append(days, entry.Date)
	}
	return days
}

type deletionRepositoryStub struct {
	entries   []models.Deletion
	createErr error
}

func (stub *deletionRepositoryStub) Create(entry *models.Deletion) error {
	if stub.createErr != nil {
		return stub.createErr
	}
	entry.ID = uint(len(stub.entries) + 1)
	stub.entries = append(stub.entries, *entry)
	return nil
}

func (stub *deletionRepositoryStub) ExistsForSeriesOnDay(name string, dayStart time.Time, dayEnd time.Time) (bool, error) {
	for _, entry := range stub.entries {
		if entry.Name != name {
			continue
		}
		if inRange(entry.Date, dayStart, dayEnd) || (entry.CancelFuture && entry.Date.Before(dayEnd)) {
			return true, nil
		}
	}
	return false, nil
}

func (stub *deletionRepositoryStub) ListBySeries(name string) ([]models.Deletion, error) {
	entries := make([]models.Deletion, 0)
	for _, entry := range stub.entries {
		if entry.Name == name {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

type friendRepositoryStub struct {
	entries []models.Friend
	nextID  uint
}

func newFriendRepositoryStub(friends ...models.Friend) *friendRepositoryStub {
	stub := &friendRepositoryStub{nextID: 1}
	for _, friend := range friends {
		friend := friend
		if err := stub.Create(&friend); err != nil {
			panic(err)
		}
	}
	return stub
}

func (stub *friendRepositoryStub) List() ([]models.Friend, error) {
	friends := slices.Clone(stub.entries)
	sort.Slice(friends, func(i, j int) bool { return friends[i].Name < friends[j].Name })
	return friends, nil
}

func (stub *friendRepositoryStub) ListWithBirthdayOn(month time.Month, day int) ([]models.Friend, error) {
	friends := make([]models.Friend, 0)
	for _, friend := range stub.entries {
		if friend.BirthdayMonth == int(month) && friend.BirthdayDay == day {
			friends = append(friends, friend)
		}
	}
	return friends, nil
}

func (stub *friendRepositoryStub) FindByID(id uint) (models.Friend, error) {
	for _, friend := range stub.entries {
		if friend.ID == id {
			return friend, nil
		}
	}
	return models.Friend{}, ErrRecordNotFound
}

func (stub *friendRepositoryStub) FindByName(name string) (models.Friend, bool, error) {
	for _, friend := range stub.entries {
		if friend.Name == name {
			return friend, true, nil
		}
	}
	return models.Friend{}, false, nil
}

func (stub *friendRepositoryStub) Create(friend *models.Friend) error {
	if _, found, _ := stub.FindByName(friend.Name); found {
		return fmt.Errorf("%w: friends.name", ErrConstraintViolation)
	}
	friend.ID = stub.nextID
	stub.nextID++
	stub.entries = append(stub.entries, *friend)
	return nil
}

func (stub *friendRepositoryStub) Save(friend *models.Friend) error {
	for index, existing := range stub.entries {
		if existing.ID == friend.ID {
			stub.entries[index] = *friend
			return nil
		}
	}
	return ErrRecordNotFound
}

func (stub *friendRepositoryStub) Delete(id uint) error {
	for index, friend := range stub.entries {
		if friend.ID == id {
			stub.entries = append(stub.entries[:index], stub.entries[index+1:]...)
			return nil
		}
	}
	return ErrRecordNotFound
}

func (stub *friendRepositoryStub) UpdateLastCall(id uint, day time.Time) error {
	for index, friend := range stub.entries {
		if friend.ID == id {
			lastCall := day
			stub.entries[index].LastCall = &lastCall
			return nil
		}
	}
	return ErrRecordNotFound
}

type categoryRepositoryStub struct {
	entries   []models.Category
	listCalls int
}

func (stub *categoryRepositoryStub) List() ([]models.Category, error) {
	stub.listCalls++
	return slices.Clone(stub.entries), nil
}

func (stub *categoryRepositoryStub) FindByID(id uint) (models.Category, error) {
	for _, category := range stub.entries {
		if category.ID == id {
			return category, nil
		}
	}
	return models.Category{}, ErrRecordNotFound
}

// memoryStore restores every stub to its pre-transaction state when fn fails.
type memoryStore struct {
	occurrences  *occurrenceRepositoryStub
	deletions    *deletionRepositoryStub
	friends      *friendRepositoryStub
	categories   *categoryRepositoryStub
	transactions int
}

func newMemoryStore(friends ...models.Friend) *memoryStore {
	return &memoryStore{
		occurrences: newOccurrenceRepositoryStub(),
		deletions:   &deletionRepositoryStub{},
		friends:     newFriendRepositoryStub(friends...),
		categories:  &categoryRepositoryStub{entries: models.DefaultCategories()},
	}
}

func (store *memoryStore) repositories() Repositories {
	return Repositories{
		Occurrences: store.occurrences,
		Deletions:   store.deletions,
		Friends:     store.friends,
		Categories:  store.categories,
	}
}

func (store *memoryStore) WithinTransaction(ctx context.Context, fn func(repos Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	store.transactions++

	occurrences := slices.Clone(store.occurrences.entries)
	nextOccurrenceID := store.occurrences.nextID
	deletions := slices.Clone(store.deletions.entries)
	friends := slices.Clone(store.friends.entries)
	nextFriendID := store.friends.nextID

	if err := fn(store.repositories()); err != nil {
		store.occurrences.entries = occurrences
		store.occurrences.nextID = nextOccurrenceID
		store.deletions.entries = deletions
		store.friends.entries = friends
		store.friends.nextID = nextFriendID
		return err
	}
	return nil
}

func mustDay(t *testing.T, raw string) time.Time {
	t.Helper()
	day, err := ParseDay(raw)
	if err != nil {
		t.Fatalf("parse day %q: %v", raw, err)
	}
	return day
}

func formatDays(days []time.Time) []string {
	formatted := make([]string, 0, len(days))
	for _, day := range days {
		formatted = append(formatted, FormatDay(day))
	}
	return formatted
}

func assertDays(t *testing.T, got []time.Time, want ...string) {
	t.Helper()
	formatted := formatDays(got)
	if !slices.Equal(formatted, want) {
		t.Fatalf("expected days %v, got %v", want, formatted)
	}
}
