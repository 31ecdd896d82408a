package mongodb

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

const mongoPort = nat.Port("27017/tcp")

func setupTestStorage(t *testing.T) *Storage {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping mongodb container test in short mode")
	}
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mongo:7",
			ExposedPorts: []string{string(mongoPort)},
			WaitingFor: wait.ForListeningPort(mongoPort).
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate mongodb container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	require.NoError(t, err)
	port, err := container.MappedPort(ctx, mongoPort)
	require.NoError(t, err)

	s, err := New(ctx, fmt.Sprintf("mongodb://%s:%s", host, port.Port()), "gym_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func newUser(t *testing.T, role models.Role, username string, created time.Time) *models.User {
	t.Helper()
	u, err := models.NewUser(role, username, "hash-"+username)
	require.NoError(t, err)
	u.CreatedAt, u.UpdatedAt = created, created
	return u
}

func TestStorage_Users(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)

	alice := newUser(t, models.RoleMember, "alice", base)
	alice.Member.Phone = "555-0101"
	id, err := s.CreateUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, id, 24)

	_, err = s.CreateUser(ctx, newUser(t, models.RoleTrainer, "alice", base))
	assert.ErrorIs(t, err, models.ErrUserExists)

	carol := newUser(t, models.RoleReceptionist, "carol", base.Add(time.Hour))
	carol.Receptionist.ExperienceYears = 3
	_, err = s.CreateUser(ctx, carol)
	require.NoError(t, err)

	got, err := s.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, base, got.CreatedAt)
	require.NotNil(t, got.Member)
	assert.Equal(t, "555-0101", got.Member.Phone)
	assert.Nil(t, got.Receptionist)

	byID, err := s.FindByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "alice", byID.Username)

	_, err = s.FindByID(ctx, "zzz")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
	_, err = s.FindByUsername(ctx, "ghost")
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	all, err := s.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "alice", all[0].Username)

	receptionists, err := s.FindByRole(ctx, models.RoleReceptionist)
	require.NoError(t, err)
	require.Len(t, receptionists, 1)
	assert.Equal(t, 3, receptionists[0].Receptionist.ExperienceYears)

	got.Username = "alicia"
	got.Member.Frozen = true
	matched, err := s.UpdateUser(ctx, "alice", got)
	require.NoError(t, err)
	assert.True(t, matched)

	exists, err := s.Exists(ctx, "alice")
	require.NoError(t, err)
	assert.False(t, exists)

	renamed, err := s.FindByUsername(ctx, "alicia")
	require.NoError(t, err)
	assert.True(t, renamed.Member.Frozen)

	matched, err = s.UpdateUser(ctx, "ghost", got)
	require.NoError(t, err)
	assert.False(t, matched)

	renamed.Username = "carol"
	_, err = s.UpdateUser(ctx, "alicia", renamed)
	assert.ErrorIs(t, err, models.ErrUserExists)

	deleted, err := s.DeleteUser(ctx, "carol")
	require.NoError(t, err)
	assert.True(t, deleted)
}

func TestStorage_Payments(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	first := &models.Payment{ID: "PAY-00000001", MemberID: "alice", Amount: 100, Currency: "USD",
		Method: models.MethodCard, Status: models.StatusSuccess, ReferenceNumber: "CARD-0000AAAA",
		Provider: "Card", CreatedAt: base}
	second := &models.Payment{ID: "PAY-00000002", MemberID: "alice", Amount: 50, Currency: "USD",
		Method: models.MethodWallet, Status: models.StatusFailed, ReferenceNumber: "WALLET-FAIL",
		Provider: "Wallet", CreatedAt: base.Add(time.Minute)}

	require.NoError(t, s.InsertPayment(ctx, first))
	require.NoError(t, s.InsertPayment(ctx, second))
	assert.Error(t, s.InsertPayment(ctx, first))

	history, err := s.FindPaymentsByMember(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second.ID, history[0].ID)
	assert.Equal(t, first.ID, history[1].ID)

	got, err := s.FindPaymentByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = s.FindPaymentByID(ctx, "PAY-MISSING")
	assert.ErrorIs(t, err, models.ErrPaymentNotFound)

	count, err := s.CountPaymentsByMember(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = s.CountPaymentsByMember(ctx, "bob")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestStorage_RenameMovesPayments(t *testing.T) {
	ctx := context.Background()
	s := setupTestStorage(t)
	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	alice := newUser(t, models.RoleMember, "alice", base)
	_, err := s.CreateUser(ctx, alice)
	require.NoError(t, err)

	for i, id := range []string{"PAY-0000000A", "PAY-0000000B"} {
		require.NoError(t, s.InsertPayment(ctx, &models.Payment{ID: id, MemberID: "alice", Amount: 10,
			Currency: "USD", Method: models.MethodCash, Status: models.StatusSuccess,
			CreatedAt: base.Add(time.Duration(i) * time.Minute)}))
	}

	alice.Username = "alicia"
	matched, err := s.UpdateUser(ctx, "alice", alice)
	require.NoError(t, err)
	require.True(t, matched)

	count, err := s.CountPaymentsByMember(ctx, "alicia")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	count, err = s.CountPaymentsByMember(ctx, "alice")
	require.NoError(t, err)
	assert.Zero(t, count)
}
