package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newFriendFixture(t *testing.T, today string) (*FriendService, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	service := NewFriendService(store, time.UTC, nil)
	service.now = fixedClock(mustDay(t, today).Add(8 * time.Hour))
	return service, store
}

func TestCreateFriendSchedulesFirstBatch(t *testing.T) {
	service, store := newFriendFixture(t, "2024-06-01")

	friend, scheduled, err := service.CreateFriend(context.Background(), FriendInput{Name: " Ana ", CadenceDays: 7})
	if err != nil {
		t.Fatalf("CreateFriend() unexpected error: %v", err)
	}
	if friend.ID == 0 || friend.Name != "Ana" {
		t.Fatalf("unexpected friend: %#v", friend)
	}
	assertDays(t, scheduled, "2024-06-08", "2024-06-15", "2024-06-22", "2024-06-29")
	assertDays(t, store.occurrences.namedOn("Call Ana"), "2024-06-08", "2024-06-15", "2024-06-22", "2024-06-29")
}

func TestCreateFriendBirthdayOnlySchedulesNoCalls(t *testing.T) {
	service, store := newFriendFixture(t, "2024-06-01")

	friend, scheduled, err := service.CreateFriend(context.Background(), FriendInput{
		Name:          "Leo",
		CadenceDays:   30,
		BirthdayMonth: 3,
		BirthdayDay:   3,
		BirthdayOnly:  true,
	})
	if err != nil {
		t.Fatalf("CreateFriend() unexpected error: %v", err)
	}
	if friend.CadenceDays != 0 || len(scheduled) != 0 || len(store.occurrences.entries) != 0 {
		t.Fatalf("expected birthday-only friend without calls, got %#v scheduled=%v", friend, formatDays(scheduled))
	}
}

func TestCreateFriendRejectsInvalidInput(t *testing.T) {
	service, _ := newFriendFixture(t, "2024-06-01")

	invalid := []FriendInput{
		{Name: ""},
		{Name: "Ana", CadenceDays: -1},
		{Name: "Ana", CadenceDays: maxCadenceDays + 1},
		{Name: "Ana", BirthdayMonth: 2, BirthdayDay: 30},
		{Name: "Ana", BirthdayMonth: 13, BirthdayDay: 1},
		{Name: "Ana", BirthdayDay: 4},
		{Name: "Ana", BirthdayOnly: true},
	}
	for _, input := range invalid {
		if _, _, err := service.CreateFriend(context.Background(), input); !errors.Is(err, ErrInvalidFriendInput) {
			t.Fatalf("expected ErrInvalidFriendInput for %#v, got %v", input, err)
		}
	}
}

func TestCreateFriendDuplicateNameRollsBack(t *testing.T) {
	service, store := newFriendFixture(t, "2024-06-01")
	ctx := context.Background()
	if _, _, err := service.CreateFriend(ctx, FriendInput{Name: "Ana", CadenceDays: 7}); err != nil {
		t.Fatalf("CreateFriend() unexpected error: %v", err)
	}

	if _, _, err := service.CreateFriend(ctx, FriendInput{Name: "Ana", CadenceDays: 14}); !errors.Is(err, ErrFriendExists) {
		t.Fatalf("expected ErrFriendExists, got %v", err)
	}
	if len(store.friends.entries) != 1 || len(store.occurrences.entries) != CallBatchSize {
		t.Fatalf("expected first friend only, got friends=%d occurrences=%d", len(store.friends.entries), len(store.occurrences.entries))
	}
}

func TestCreateFriendRollsBackWhenSchedulingFails(t *testing.T) {
	service, store := newFriendFixture(t, "2024-06-01")
	store.occurrences.hasAllDayErr = errors.New("read failed")

	if _, _, err := service.CreateFriend(context.Background(), FriendInput{Name: "Ana", CadenceDays: 7}); err == nil {
		t.Fatal("expected scheduling error")
	}
	if len(store.friends.entries) != 0 {
		t.Fatalf("expected friend insert to be rolled back, got %d friends", len(store.friends.entries))
	}
}

func TestUpdateAndDeleteFriend(t *testing.T) {
	service, _ := newFriendFixture(t, "2024-06-01")
	ctx := context.Background()
	created, _, err := service.CreateFriend(ctx, FriendInput{Name: "Ana", CadenceDays: 7})
	if err != nil {
		t.Fatalf("CreateFriend() unexpected error: %v", err)
	}

	updated, err := service.UpdateFriend(ctx, created.ID, FriendInput{Name: "Ana", CadenceDays: 14, BirthdayMonth: 2, BirthdayDay: 29})
	if err != nil {
		t.Fatalf("UpdateFriend() unexpected error: %v", err)
	}
	if updated.CadenceDays != 14 || updated.BirthdayMonth != 2 || updated.BirthdayDay != 29 {
		t.Fatalf("unexpected updated friend: %#v", updated)
	}

	friends, err := service.ListFriends(ctx)
	if err != nil {
		t.Fatalf("ListFriends() unexpected error: %v", err)
	}
	if len(friends) != 1 || friends[0].CadenceDays != 14 {
		t.Fatalf("expected one updated friend, got %#v", friends)
	}

	if err := service.DeleteFriend(ctx, created.ID); err != nil {
		t.Fatalf("DeleteFriend() unexpected error: %v", err)
	}
	if err := service.DeleteFriend(ctx, created.ID); !errors.Is(err, ErrFriendNotFound) {
		t.Fatalf("expected ErrFriendNotFound, got %v", err)
	}
	if _, err := service.UpdateFriend(ctx, created.ID, FriendInput{Name: "Ana"}); !errors.Is(err, ErrFriendNotFound) {
		t.Fatalf("expected ErrFriendNotFound on update, got %v", err)
	}
}

func TestIsValidBirthday(t *testing.T) {
	cases := []struct {
		month int
		day   int
		want  bool
	}{
		{month: 2, day: 29, want: true},
		{month: 2, day: 30, want: false},
		{month: 4, day: 31, want: false},
		{month: 12, day: 31, want: true},
		{month: 0, day: 1, want: false},
	}
	for _, testCase := range cases {
		if got := IsValidBirthday(testCase.month, testCase.day); got != testCase.want {
			t.Fatalf("IsValidBirthday(%d, %d): expected %t, got %t", testCase.month, testCase.day, testCase.want, got)
		}
	}
}

func TestCreatedFriendCallsAreToppedUpOnView(t *testing.T) {
	friends, store := newFriendFixture(t, "2024-06-01")
	ctx := context.Background()
	if _, _, err := friends.CreateFriend(ctx, FriendInput{Name: "Ana", CadenceDays: 7}); err != nil {
		t.Fatalf("CreateFriend() unexpected error: %v", err)
	}
	calendar := NewCalendarService(store, time.UTC, 0, nil)
	calendar.now = friends.now

	if _, err := calendar.ViewDay(ctx, mustDay(t, "2024-06-22")); err != nil {
		t.Fatalf("ViewDay() unexpected error: %v", err)
	}
	calls := store.occurrences.namedOn("Call Ana")
	if len(calls) != 2*CallBatchSize {
		t.Fatalf("expected a second batch, got %v", formatDays(calls))
	}
	if got := FormatDay(calls[len(calls)-1]); got != "2024-07-27" {
		t.Fatalf("expected last call on 2024-07-27, got %s", got)
	}
}
