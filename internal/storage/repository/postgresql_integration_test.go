package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStorage_RegisterMember(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	planID := factory.CreatePlan(t, "Standard", 3, 9000, true)

	t.Run("creates user, membership and pending payment", func(t *testing.T) {
		last := "Smith"
		got, err := storage.RegisterMember(ctx, "Alice", &last, 30, "alice@example.com", planID, "CAD")
		require.NoError(t, err)
		require.NotEmpty(t, got.UserID)
		require.NotEmpty(t, got.MembershipID)
		require.NotEmpty(t, got.PaymentID)

		assert.Equal(t, 1, verify.CountMemberships(t, got.UserID))
		assert.Equal(t, 1, verify.CountPayments(t, got.MembershipID))

		var amount int
		var currency, status string
		err = storage.DB.QueryRow(
			`SELECT amount_cents, currency_code, status FROM payments WHERE id = $1`,
			got.PaymentID).Scan(&amount, &currency, &status)
		require.NoError(t, err)
		assert.Equal(t, 9000, amount)
		assert.Equal(t, "CAD", currency)
		assert.Equal(t, "PENDING", status)
	})

	t.Run("unknown plan", func(t *testing.T) {
		_, err := storage.RegisterMember(ctx, "Bob", nil, 25, "bob@example.com", "no-such-plan", "CAD")
		assert.ErrorIs(t, err, ErrPlanNotFound)

		// The transaction rolled back, no user row was left behind.
		var count int
		require.NoError(t, storage.DB.QueryRow(
			`SELECT COUNT(*) FROM users WHERE email = $1`, "bob@example.com").Scan(&count))
		assert.Equal(t, 0, count)
	})

	t.Run("second registration while membership is active", func(t *testing.T) {
		_, err := storage.RegisterMember(ctx, "Alice", nil, 30, "alice@example.com", planID, "CAD")
		assert.ErrorIs(t, err, ErrDuplicateActiveMembership)
	})

	t.Run("re-registration after expiry reuses the user", func(t *testing.T) {
		userID := factory.CreateUser(t, "Carol", 40, "carol@example.com", "")
		past := time.Now().UTC().AddDate(0, -6, 0)
		expired := past.AddDate(0, 1, 0)
		factory.CreateMembership(t, userID, planID, past, &expired)

		got, err := storage.RegisterMember(ctx, "Carol", nil, 40, "carol@example.com", planID, "CAD")
		require.NoError(t, err)
		assert.Equal(t, userID, got.UserID)
		assert.Equal(t, 2, verify.CountMemberships(t, userID))
	})
}

func TestStorage_MarkAttendanceToday(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	planID := factory.CreatePlan(t, "Standard", 3, 9000, true)
	trainerID := factory.CreateTrainer(t, "John", "Doe", "Strength")

	dayStart := time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC)
	dayEnd := dayStart.Add(24 * time.Hour)

	activeSince := time.Now().UTC().AddDate(0, -1, 0)

	aliceID := factory.CreateUser(t, "Alice", 30, "alice@example.com", trainerID)
	factory.CreateMembership(t, aliceID, planID, activeSince, nil)

	t.Run("first check-in creates the session", func(t *testing.T) {
		got, err := storage.MarkAttendanceToday(ctx, "alice@example.com", dayStart, dayEnd)
		require.NoError(t, err)
		assert.False(t, got.AlreadyMarked)
		assert.Equal(t, 1, verify.CountSessions(t, dayStart, dayEnd))
		assert.Equal(t, 1, verify.CountAttendance(t, aliceID))
	})

	t.Run("repeat check-in reports already marked without new rows", func(t *testing.T) {
		got, err := storage.MarkAttendanceToday(ctx, "alice@example.com", dayStart, dayEnd)
		require.NoError(t, err)
		assert.True(t, got.AlreadyMarked)
		assert.Equal(t, 1, verify.CountSessions(t, dayStart, dayEnd))
		assert.Equal(t, 1, verify.CountAttendance(t, aliceID))
	})

	t.Run("same trainer shares the session", func(t *testing.T) {
		bobID := factory.CreateUser(t, "Bob", 25, "bob@example.com", trainerID)
		factory.CreateMembership(t, bobID, planID, activeSince, nil)

		got, err := storage.MarkAttendanceToday(ctx, "bob@example.com", dayStart, dayEnd)
		require.NoError(t, err)
		assert.False(t, got.AlreadyMarked)
		assert.Equal(t, 1, verify.CountSessions(t, dayStart, dayEnd))
	})

	t.Run("member without a trainer gets a separate session", func(t *testing.T) {
		carolID := factory.CreateUser(t, "Carol", 40, "carol@example.com", "")
		factory.CreateMembership(t, carolID, planID, activeSince, nil)

		got, err := storage.MarkAttendanceToday(ctx, "carol@example.com", dayStart, dayEnd)
		require.NoError(t, err)
		assert.False(t, got.AlreadyMarked)
		assert.Equal(t, 2, verify.CountSessions(t, dayStart, dayEnd))
	})

	t.Run("next day starts a fresh session", func(t *testing.T) {
		nextStart := dayEnd
		nextEnd := nextStart.Add(24 * time.Hour)

		got, err := storage.MarkAttendanceToday(ctx, "alice@example.com", nextStart, nextEnd)
		require.NoError(t, err)
		assert.False(t, got.AlreadyMarked)
		assert.Equal(t, 1, verify.CountSessions(t, nextStart, nextEnd))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := storage.MarkAttendanceToday(ctx, "ghost@example.com", dayStart, dayEnd)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})

	t.Run("member without any membership", func(t *testing.T) {
		factory.CreateUser(t, "Dan", 35, "dan@example.com", "")

		_, err := storage.MarkAttendanceToday(ctx, "dan@example.com", dayStart, dayEnd)
		assert.ErrorIs(t, err, ErrMembershipNotActive)
	})

	t.Run("expired membership", func(t *testing.T) {
		eveID := factory.CreateUser(t, "Eve", 28, "eve@example.com", "")
		past := time.Now().UTC().AddDate(-1, 0, 0)
		expired := past.AddDate(0, 1, 0)
		factory.CreateMembership(t, eveID, planID, past, &expired)

		_, err := storage.MarkAttendanceToday(ctx, "eve@example.com", dayStart, dayEnd)
		assert.ErrorIs(t, err, ErrMembershipNotActive)
	})
}

func TestStorage_MarkAttendance(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	userID := factory.CreateUser(t, "Alice", 30, "alice@example.com", "")
	startAt := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)

	t.Run("creates a fresh session every call", func(t *testing.T) {
		first, err := storage.MarkAttendance(ctx, "alice@example.com", "Yoga", startAt)
		require.NoError(t, err)
		second, err := storage.MarkAttendance(ctx, "alice@example.com", "Yoga", startAt)
		require.NoError(t, err)

		assert.NotEqual(t, first, second)
		assert.Equal(t, 2, verify.CountAttendance(t, userID))
	})

	t.Run("unknown email", func(t *testing.T) {
		_, err := storage.MarkAttendance(ctx, "ghost@example.com", "Yoga", startAt)
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestStorage_TrainerAssignment(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	verify := NewTestVerification(storage)
	ctx := context.Background()

	planID := factory.CreatePlan(t, "Standard", 3, 9000, true)
	trainerID := factory.CreateTrainer(t, "John", "Doe", "Strength")

	aliceID := factory.CreateUser(t, "Alice", 30, "alice@example.com", "")
	factory.CreateMembership(t, aliceID, planID, time.Now().UTC().AddDate(0, -1, 0), nil)

	t.Run("assign links the member", func(t *testing.T) {
		err := storage.AssignTrainer(ctx, "alice@example.com", trainerID)
		require.NoError(t, err)
		verify.VerifyTrainerAssigned(t, aliceID, &trainerID)
	})

	t.Run("assignments listing filters by active membership", func(t *testing.T) {
		bobID := factory.CreateUser(t, "Bob", 25, "bob@example.com", trainerID)
		past := time.Now().UTC().AddDate(-1, 0, 0)
		expired := past.AddDate(0, 1, 0)
		factory.CreateMembership(t, bobID, planID, past, &expired)

		active, err := storage.ListTrainerAssignments(ctx, true)
		require.NoError(t, err)
		assert.Len(t, active, 1)
		assert.Equal(t, "alice@example.com", active[0].MemberEmail)

		all, err := storage.ListTrainerAssignments(ctx, false)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})

	t.Run("unassign clears the link", func(t *testing.T) {
		err := storage.UnassignTrainer(ctx, "alice@example.com")
		require.NoError(t, err)
		verify.VerifyTrainerAssigned(t, aliceID, nil)
	})

	t.Run("unassign unknown email", func(t *testing.T) {
		err := storage.UnassignTrainer(ctx, "ghost@example.com")
		assert.ErrorIs(t, err, ErrMemberNotFound)
	})
}

func TestStorage_ListMembers(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	planID := factory.CreatePlan(t, "Standard", 3, 9000, true)

	aliceID := factory.CreateUser(t, "Alice", 30, "alice@example.com", "")
	factory.CreateMembership(t, aliceID, planID, time.Now().UTC().AddDate(0, -1, 0), nil)

	// Bob never registered a membership but must still be listed.
	factory.CreateUser(t, "Bob", 25, "bob@example.com", "")

	got, err := storage.ListMembers(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, "Alice", got[0].FirstName)
	require.NotNil(t, got[0].MembershipStatus)
	assert.Equal(t, "ACTIVE", *got[0].MembershipStatus)
	require.NotNil(t, got[0].PlanName)
	assert.Equal(t, "Standard", *got[0].PlanName)

	assert.Equal(t, "Bob", got[1].FirstName)
	assert.Nil(t, got[1].MembershipStatus)
	assert.Nil(t, got[1].PlanName)
	assert.Nil(t, got[1].PriceCents)
}

func TestStorage_ListPlans(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	factory.CreatePlan(t, "Premium", 12, 30000, true)
	factory.CreatePlan(t, "Basic", 1, 4500, true)
	factory.CreatePlan(t, "Legacy", 1, 1000, false)

	got, err := storage.ListPlans(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Cheapest first, inactive plans hidden.
	assert.Equal(t, "Basic", got[0].Name)
	assert.Equal(t, "Premium", got[1].Name)
}

func TestStorage_FindMembershipsExpiringTomorrow(t *testing.T) {
	storage, cleanup := setupTestDatabase(t)
	defer cleanup()

	factory := NewTestDataFactory(storage)
	ctx := context.Background()

	planID := factory.CreatePlan(t, "Standard", 3, 9000, true)

	aliceID := factory.CreateUser(t, "Alice", 30, "alice@example.com", "")
	tomorrow := time.Now().UTC().AddDate(0, 0, 1)
	factory.CreateMembership(t, aliceID, planID, tomorrow.AddDate(0, -3, 0), &tomorrow)

	bobID := factory.CreateUser(t, "Bob", 25, "bob@example.com", "")
	nextWeek := time.Now().UTC().AddDate(0, 0, 7)
	factory.CreateMembership(t, bobID, planID, nextWeek.AddDate(0, -3, 0), &nextWeek)

	got, err := storage.FindMembershipsExpiringTomorrow(ctx)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "alice@example.com", got[0].Email)
	assert.Equal(t, "Standard", got[0].PlanName)
}
