package member

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/magabrotheeeer/gym-management/internal/lib/password"
	"github.com/magabrotheeeer/gym-management/internal/models"
	"github.com/magabrotheeeer/gym-management/internal/services/identity"
	"github.com/magabrotheeeer/gym-management/internal/services/payment"
)

type UsersMock struct {
	mock.Mock
}

func (m *UsersMock) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UsersMock) UpdateUser(ctx context.Context, username string, user *models.User) (bool, error) {
	args := m.Called(ctx, username, user)
	return args.Bool(0), args.Error(1)
}

type PaymentsMock struct {
	mock.Mock
}

func (m *PaymentsMock) ProcessPayment(ctx context.Context, req *models.PaymentRequest) (*models.Payment, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Payment), args.Error(1)
}

func (m *PaymentsMock) GetPaymentHistory(ctx context.Context, memberID string) ([]*models.Payment, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *PaymentsMock) GetPaymentCount(ctx context.Context, memberID string) (int64, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).(int64), args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestService_MakePayment(t *testing.T) {
	member := &models.User{Username: "alice", Role: models.RoleMember, Member: &models.MemberProfile{IsActive: true}}
	trainer := &models.User{Username: "bob", Role: models.RoleTrainer, Trainer: &models.TrainerProfile{}}

	tests := []struct {
		name       string
		username   string
		setupMocks func(u *UsersMock, p *PaymentsMock)
		wantErr    error
	}{
		{
			name:     "member pays, member id forced",
			username: "alice",
			setupMocks: func(u *UsersMock, p *PaymentsMock) {
				u.On("FindByUsername", mock.Anything, "alice").Return(member, nil).Once()
				p.On("ProcessPayment", mock.Anything, mock.MatchedBy(func(r *models.PaymentRequest) bool {
					return r.MemberID == "alice" && r.Amount == 40
				})).Return(&models.Payment{ID: "PAY-1", Status: models.StatusSuccess}, nil).Once()
			},
		},
		{
			name:     "unknown user",
			username: "ghost",
			setupMocks: func(u *UsersMock, _ *PaymentsMock) {
				u.On("FindByUsername", mock.Anything, "ghost").Return(nil, models.ErrUserNotFound).Once()
			},
			wantErr: models.ErrUserNotFound,
		},
		{
			name:     "not a member",
			username: "bob",
			setupMocks: func(u *UsersMock, _ *PaymentsMock) {
				u.On("FindByUsername", mock.Anything, "bob").Return(trainer, nil).Once()
			},
			wantErr: models.ErrNotMember,
		},
		{
			name:       "blank username",
			username:   " ",
			setupMocks: func(*UsersMock, *PaymentsMock) {},
			wantErr:    models.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			payments := new(PaymentsMock)
			tt.setupMocks(users, payments)

			svc := New(users, payments, newNoopLogger())
			p, err := svc.MakePayment(context.Background(), tt.username, models.PaymentRequest{
				MemberID: "someone-else",
				Amount:   40,
				Method:   "card",
			})

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, p)
				payments.AssertNotCalled(t, "ProcessPayment", mock.Anything, mock.Anything)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "PAY-1", p.ID)
			}
			users.AssertExpectations(t)
			payments.AssertExpectations(t)
		})
	}
}

func TestService_TotalPaidAndSummary(t *testing.T) {
	member := &models.User{Username: "alice", Role: models.RoleMember}
	history := []*models.Payment{
		{ID: "PAY-3", Amount: 30, Status: models.StatusSuccess},
		{ID: "PAY-2", Amount: 50, Status: models.StatusFailed},
		{ID: "PAY-1", Amount: 100, Status: models.StatusSuccess},
	}

	users := new(UsersMock)
	payments := new(PaymentsMock)
	users.On("FindByUsername", mock.Anything, "alice").Return(member, nil)
	payments.On("GetPaymentHistory", mock.Anything, "alice").Return(history, nil)
	payments.On("GetPaymentCount", mock.Anything, "alice").Return(int64(3), nil)

	svc := New(users, payments, newNoopLogger())

	total, err := svc.TotalPaid(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 130.0, total)

	count, err := svc.PaymentCount(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	summary, err := svc.Summary(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, &Summary{Username: "alice", Count: 3, TotalPaid: 130}, summary)
}

// memStore — хранилище пользователей и платежей в памяти для сценарного теста.
type memStore struct {
	mu       sync.Mutex
	users    map[string]*models.User
	payments []*models.Payment
}

func newMemStore() *memStore {
	return &memStore{users: map[string]*models.User{}}
}

func (s *memStore) CreateUser(_ context.Context, u *models.User) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return "", models.ErrUserExists
	}
	cp := *u
	cp.ID = "id-" + u.Username
	s.users[u.Username] = &cp
	return cp.ID, nil
}

func (s *memStore) FindByUsername(_ context.Context, username string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memStore) UpdateUser(_ context.Context, username string, u *models.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[username]; !ok {
		return false, nil
	}
	delete(s.users, username)
	cp := *u
	s.users[u.Username] = &cp
	for _, p := range s.payments {
		if p.MemberID == username {
			p.MemberID = u.Username
		}
	}
	return true, nil
}

func (s *memStore) Exists(_ context.Context, username string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.users[username]
	return ok, nil
}

func (s *memStore) InsertPayment(_ context.Context, p *models.Payment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.payments = append(s.payments, &cp)
	return nil
}

func (s *memStore) FindPaymentsByMember(_ context.Context, memberID string) ([]*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Payment
	for _, p := range s.payments {
		if p.MemberID == memberID {
			out = append(out, p)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memStore) FindPaymentByID(_ context.Context, id string) (*models.Payment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range s.payments {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, models.ErrPaymentNotFound
}

func (s *memStore) CountPaymentsByMember(ctx context.Context, memberID string) (int64, error) {
	list, err := s.FindPaymentsByMember(ctx, memberID)
	return int64(len(list)), err
}

func TestSignupAndPaymentsScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	log := newNoopLogger()

	ids := identity.New(store, password.NewHasher(bcrypt.MinCost), nil, "password123", log)
	pays := payment.New(store, nil, nil, nil, payment.Settings{}, log)
	members := New(store, pays, log)

	alice, err := ids.Signup(ctx, "member", "alice", "pw1")
	require.NoError(t, err)
	assert.Equal(t, models.RoleMember, alice.Role)

	_, err = ids.Signup(ctx, "member", "alice", "different")
	assert.ErrorIs(t, err, models.ErrUserExists)

	card, err := members.MakePayment(ctx, "alice", models.PaymentRequest{Amount: 100, Method: "card"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusSuccess, card.Status)
	assert.True(t, strings.HasPrefix(card.ReferenceNumber, "CARD-"))

	wallet, err := members.MakePayment(ctx, "alice", models.PaymentRequest{Amount: 50, Method: "wallet"})
	require.NoError(t, err)
	assert.Equal(t, models.StatusFailed, wallet.Status)
	assert.Equal(t, "WALLET-FAIL", wallet.ReferenceNumber)

	count, err := pays.GetPaymentCount(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)

	total, err := members.TotalPaid(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 100.0, total)

	_, err = ids.LoginAs(ctx, "alice", "pw1", "member")
	require.NoError(t, err)
	_, err = ids.LoginAs(ctx, "alice", "pw1", "trainer")
	assert.ErrorIs(t, err, models.ErrInvalidCredentials)
}

func TestRenameKeepsPaymentHistory(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	log := newNoopLogger()

	ids := identity.New(store, password.NewHasher(bcrypt.MinCost), nil, "password123", log)
	pays := payment.New(store, nil, nil, nil, payment.Settings{}, log)
	members := New(store, pays, log)

	_, err := ids.Signup(ctx, "member", "alice", "pw1")
	require.NoError(t, err)
	_, err = members.MakePayment(ctx, "alice", models.PaymentRequest{Amount: 100, Method: "card"})
	require.NoError(t, err)
	_, err = members.MakePayment(ctx, "alice", models.PaymentRequest{Amount: 20, Method: "cash"})
	require.NoError(t, err)

	name := "alicia"
	_, err = ids.UpdateProfile(ctx, "alice", models.ProfilePatch{Username: &name})
	require.NoError(t, err)

	summary, err := members.Summary(ctx, "alicia")
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Count)
	assert.Equal(t, 120.0, summary.TotalPaid)

	_, err = members.Summary(ctx, "alice")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func newMember(username string) *models.User {
	return &models.User{
		Username: username,
		Role:     models.RoleMember,
		Member:   &models.MemberProfile{IsActive: true, Attendance: 4, MembershipType: "monthly"},
	}
}

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func newTestService(users Users, payments Payments) *Service {
	s := New(users, payments, newNoopLogger())
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestService_RenewMembership(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 3, 0)

	t.Run("renewed", func(t *testing.T) {
		users := new(UsersMock)
		users.On("FindByUsername", mock.Anything, "alice").Return(newMember("alice"), nil).Once()
		users.On("UpdateUser", mock.Anything, "alice", mock.MatchedBy(func(u *models.User) bool {
			return u.Member.MembershipType == "quarterly" &&
				u.Member.MembershipStart.Equal(start) &&
				u.Member.MembershipEnd.Equal(end) &&
				u.Member.Attendance == 4 &&
				u.UpdatedAt.Equal(fixedNow)
		})).Return(true, nil).Once()

		svc := newTestService(users, new(PaymentsMock))
		user, err := svc.RenewMembership(context.Background(), "alice", Renewal{Type: " quarterly ", Start: start, End: end})

		require.NoError(t, err)
		assert.Equal(t, "quarterly", user.Member.MembershipType)
		users.AssertExpectations(t)
	})

	tests := []struct {
		name    string
		renewal Renewal
	}{
		{name: "blank type", renewal: Renewal{Type: "  ", Start: start, End: end}},
		{name: "missing dates", renewal: Renewal{Type: "annual"}},
		{name: "end before start", renewal: Renewal{Type: "annual", Start: end, End: start}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			svc := newTestService(users, new(PaymentsMock))

			_, err := svc.RenewMembership(context.Background(), "alice", tt.renewal)
			assert.ErrorIs(t, err, models.ErrValidation)
			users.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything, mock.Anything)
		})
	}

	t.Run("trainer has no membership", func(t *testing.T) {
		users := new(UsersMock)
		users.On("FindByUsername", mock.Anything, "bob").
			Return(&models.User{Username: "bob", Role: models.RoleTrainer, Trainer: &models.TrainerProfile{}}, nil).Once()

		svc := newTestService(users, new(PaymentsMock))
		_, err := svc.RenewMembership(context.Background(), "bob", Renewal{Type: "annual", Start: start, End: end})
		assert.ErrorIs(t, err, models.ErrNotMember)
	})
}

func TestService_CancelMembership(t *testing.T) {
	users := new(UsersMock)
	users.On("FindByUsername", mock.Anything, "alice").Return(newMember("alice"), nil).Once()
	users.On("UpdateUser", mock.Anything, "alice", mock.MatchedBy(func(u *models.User) bool {
		return u.Member.MembershipType == models.MembershipCancelled
	})).Return(true, nil).Once()

	svc := newTestService(users, new(PaymentsMock))
	user, err := svc.CancelMembership(context.Background(), "alice", "moving away")
	require.NoError(t, err)
	assert.Equal(t, models.MembershipCancelled, user.Member.MembershipType)
	users.AssertExpectations(t)

	users.On("FindByUsername", mock.Anything, "ghost").Return(nil, models.ErrUserNotFound).Once()
	_, err = svc.CancelMembership(context.Background(), "ghost", "")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestService_Attendance(t *testing.T) {
	users := new(UsersMock)
	users.On("FindByUsername", mock.Anything, "alice").Return(newMember("alice"), nil).Once()
	users.On("FindByUsername", mock.Anything, "alice").Return(newMember("alice"), nil).Once()
	users.On("UpdateUser", mock.Anything, "alice", mock.MatchedBy(func(u *models.User) bool {
		return u.Member.Attendance == 5
	})).Return(true, nil).Once()

	svc := newTestService(users, new(PaymentsMock))

	count, err := svc.RecordAttendance(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 5, count)

	count, err = svc.Attendance(context.Background(), "alice")
	require.NoError(t, err)
	assert.Equal(t, 4, count)
	users.AssertExpectations(t)

	users.On("FindByUsername", mock.Anything, "carol").Return(newMember("carol"), nil).Once()
	users.On("UpdateUser", mock.Anything, "carol", mock.Anything).Return(false, nil).Once()
	_, err = svc.RecordAttendance(context.Background(), "carol")
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestMembershipScenario(t *testing.T) {
	ctx := context.Background()
	store := newMemStore()
	log := newNoopLogger()

	ids := identity.New(store, password.NewHasher(bcrypt.MinCost), nil, "password123", log)
	members := New(store, payment.New(store, nil, nil, nil, payment.Settings{}, log), log)

	_, err := ids.Signup(ctx, "member", "alice", "pw1")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		_, err := members.RecordAttendance(ctx, "alice")
		require.NoError(t, err)
	}
	count, err := members.Attendance(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = members.RenewMembership(ctx, "alice", Renewal{Type: "annual", Start: start, End: start.AddDate(1, 0, 0)})
	require.NoError(t, err)

	_, err = members.CancelMembership(ctx, "alice", "")
	require.NoError(t, err)

	profile, err := ids.GetProfile(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, models.MembershipCancelled, profile.Member.MembershipType)
	assert.Equal(t, 3, profile.Member.Attendance)
	require.NotNil(t, profile.Member.MembershipEnd)
	assert.Equal(t, start.AddDate(1, 0, 0), *profile.Member.MembershipEnd)
}
