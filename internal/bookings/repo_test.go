package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/shareloop/shareloop-backend/pkg/db/models"
	"github.com/shareloop/shareloop-backend/pkg/enums"
	"github.com/shareloop/shareloop-backend/pkg/pagination"
)

func setupBookingsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  email TEXT NOT NULL UNIQUE,
  created_at DATETIME,
  updated_at DATETIME
);`
	items := `
CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  name TEXT NOT NULL,
  description TEXT NOT NULL,
  available INTEGER NOT NULL DEFAULT 1,
  owner_id INTEGER NOT NULL,
  request_id INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`
	bookings := `
CREATE TABLE IF NOT EXISTS bookings (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  item_id INTEGER NOT NULL,
  booker_id INTEGER NOT NULL,
  start_at DATETIME NOT NULL,
  end_at DATETIME NOT NULL,
  status TEXT NOT NULL DEFAULT 'WAITING',
  created_at DATETIME,
  updated_at DATETIME
);`

	for _, stmt := range []string{users, items, bookings} {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func seedUser(t *testing.T, db *gorm.DB, name, email string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: email}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func seedItem(t *testing.T, db *gorm.DB, ownerID int64) models.Item {
	t.Helper()
	item := models.Item{Name: "ladder", Description: "3m ladder", Available: true, OwnerID: ownerID}
	require.NoError(t, db.Create(&item).Error)
	return item
}

func seedBooking(t *testing.T, db *gorm.DB, itemID, bookerID int64, start, end time.Time, status enums.BookingStatus) models.Booking {
	t.Helper()
	booking := models.Booking{ItemID: itemID, BookerID: bookerID, Start: start, End: end, Status: status}
	require.NoError(t, db.Create(&booking).Error)
	return booking
}

func TestHasApprovedOverlap(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Olga", "olga@example.com")
	renter := seedUser(t, db, "Ray", "ray@example.com")
	item := seedItem(t, db, owner.ID)

	base := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	seedBooking(t, db, item.ID, renter.ID, base, base.Add(48*time.Hour), enums.BookingStatusApproved)

	cases := []struct {
		name     string
		start    time.Time
		end      time.Time
		expected bool
	}{
		{"inside", base.Add(time.Hour), base.Add(2 * time.Hour), true},
		{"straddles start", base.Add(-time.Hour), base.Add(time.Hour), true},
		{"straddles end", base.Add(47 * time.Hour), base.Add(50 * time.Hour), true},
		{"covers", base.Add(-time.Hour), base.Add(49 * time.Hour), true},
		{"before", base.Add(-3 * time.Hour), base.Add(-time.Hour), false},
		{"after", base.Add(49 * time.Hour), base.Add(50 * time.Hour), false},
		{"abuts end", base.Add(48 * time.Hour), base.Add(50 * time.Hour), false},
		{"abuts start", base.Add(-2 * time.Hour), base, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			overlaps, err := repo.HasApprovedOverlap(ctx, item.ID, tc.start, tc.end, 0)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, overlaps)
		})
	}
}

func TestHasApprovedOverlapIgnoresWaitingAndRejected(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Olga", "olga@example.com")
	renter := seedUser(t, db, "Ray", "ray@example.com")
	item := seedItem(t, db, owner.ID)

	base := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	seedBooking(t, db, item.ID, renter.ID, base, base.Add(24*time.Hour), enums.BookingStatusWaiting)
	seedBooking(t, db, item.ID, renter.ID, base, base.Add(24*time.Hour), enums.BookingStatusRejected)

	overlaps, err := repo.HasApprovedOverlap(ctx, item.ID, base, base.Add(24*time.Hour), 0)
	require.NoError(t, err)
	assert.False(t, overlaps)
}

func TestHasApprovedOverlapExcludesSelf(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Olga", "olga@example.com")
	renter := seedUser(t, db, "Ray", "ray@example.com")
	item := seedItem(t, db, owner.ID)

	base := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	existing := seedBooking(t, db, item.ID, renter.ID, base, base.Add(24*time.Hour), enums.BookingStatusApproved)

	overlaps, err := repo.HasApprovedOverlap(ctx, item.ID, existing.Start, existing.End, existing.ID)
	require.NoError(t, err)
	assert.False(t, overlaps)
}

func TestTransitionStatusOnlyFlipsWaiting(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Olga", "olga@example.com")
	renter := seedUser(t, db, "Ray", "ray@example.com")
	item := seedItem(t, db, owner.ID)

	base := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	booking := seedBooking(t, db, item.ID, renter.ID, base, base.Add(24*time.Hour), enums.BookingStatusWaiting)

	flipped, err := repo.TransitionStatus(ctx, booking.ID, enums.BookingStatusApproved)
	require.NoError(t, err)
	assert.True(t, flipped)

	// Second resolution races and must lose.
	flipped, err = repo.TransitionStatus(ctx, booking.ID, enums.BookingStatusRejected)
	require.NoError(t, err)
	assert.False(t, flipped)

	loaded, err := repo.FindByID(ctx, booking.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, enums.BookingStatusApproved, loaded.Status)
}

func TestListByBookerStateFilters(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Olga", "olga@example.com")
	renter := seedUser(t, db, "Ray", "ray@example.com")
	item := seedItem(t, db, owner.ID)

	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	past := seedBooking(t, db, item.ID, renter.ID, now.Add(-72*time.Hour), now.Add(-48*time.Hour), enums.BookingStatusApproved)
	current := seedBooking(t, db, item.ID, renter.ID, now.Add(-time.Hour), now.Add(time.Hour), enums.BookingStatusApproved)
	future := seedBooking(t, db, item.ID, renter.ID, now.Add(48*time.Hour), now.Add(72*time.Hour), enums.BookingStatusWaiting)
	rejected := seedBooking(t, db, item.ID, renter.ID, now.Add(96*time.Hour), now.Add(120*time.Hour), enums.BookingStatusRejected)

	page := pagination.Page{Size: 10}

	cases := []struct {
		state    enums.BookingState
		expected []int64
	}{
		{enums.BookingStateAll, []int64{rejected.ID, future.ID, current.ID, past.ID}},
		{enums.BookingStatePast, []int64{past.ID}},
		{enums.BookingStateCurrent, []int64{current.ID}},
		{enums.BookingStateFuture, []int64{rejected.ID, future.ID}},
		{enums.BookingStateWaiting, []int64{future.ID}},
		{enums.BookingStateRejected, []int64{rejected.ID}},
	}

	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			list, err := repo.ListByBooker(ctx, renter.ID, tc.state, now, page)
			require.NoError(t, err)

			ids := make([]int64, 0, len(list))
			for _, b := range list {
				ids = append(ids, b.ID)
			}
			assert.Equal(t, tc.expected, ids)
		})
	}
}

func TestListByOwnerJoinsItems(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Olga", "olga@example.com")
	other := seedUser(t, db, "Pat", "pat@example.com")
	renter := seedUser(t, db, "Ray", "ray@example.com")
	mine := seedItem(t, db, owner.ID)
	theirs := seedItem(t, db, other.ID)

	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	visible := seedBooking(t, db, mine.ID, renter.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), enums.BookingStatusWaiting)
	seedBooking(t, db, theirs.ID, renter.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), enums.BookingStatusWaiting)

	list, err := repo.ListByOwner(ctx, owner.ID, enums.BookingStateAll, now, pagination.Page{Size: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, visible.ID, list[0].ID)
	assert.Equal(t, mine.ID, list[0].Item.ID)
	assert.Equal(t, renter.ID, list[0].Booker.ID)
}

func TestLastAndNextForItem(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Olga", "olga@example.com")
	renter := seedUser(t, db, "Ray", "ray@example.com")
	item := seedItem(t, db, owner.ID)

	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	seedBooking(t, db, item.ID, renter.ID, now.Add(-96*time.Hour), now.Add(-72*time.Hour), enums.BookingStatusApproved)
	recent := seedBooking(t, db, item.ID, renter.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), enums.BookingStatusApproved)
	soon := seedBooking(t, db, item.ID, renter.ID, now.Add(24*time.Hour), now.Add(48*time.Hour), enums.BookingStatusApproved)
	seedBooking(t, db, item.ID, renter.ID, now.Add(72*time.Hour), now.Add(96*time.Hour), enums.BookingStatusApproved)
	// Waiting bookings never show up in the owner's last/next view.
	seedBooking(t, db, item.ID, renter.ID, now.Add(2*time.Hour), now.Add(4*time.Hour), enums.BookingStatusWaiting)

	last, err := repo.LastForItem(ctx, item.ID, now)
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, recent.ID, last.ID)

	next, err := repo.NextForItem(ctx, item.ID, now)
	require.NoError(t, err)
	require.NotNil(t, next)
	assert.Equal(t, soon.ID, next.ID)
}

func TestHasFinishedApprovedBooking(t *testing.T) {
	db := setupBookingsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	owner := seedUser(t, db, "Olga", "olga@example.com")
	renter := seedUser(t, db, "Ray", "ray@example.com")
	stranger := seedUser(t, db, "Sam", "sam@example.com")
	item := seedItem(t, db, owner.ID)

	now := time.Date(2026, 9, 10, 12, 0, 0, 0, time.UTC)
	seedBooking(t, db, item.ID, renter.ID, now.Add(-48*time.Hour), now.Add(-24*time.Hour), enums.BookingStatusApproved)
	// Ongoing rental does not qualify.
	seedBooking(t, db, item.ID, stranger.ID, now.Add(-time.Hour), now.Add(time.Hour), enums.BookingStatusApproved)

	ok, err := repo.HasFinishedApprovedBooking(ctx, item.ID, renter.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.HasFinishedApprovedBooking(ctx, item.ID, stranger.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)
}
