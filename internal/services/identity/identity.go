// Package identity содержит регистрацию, вход и управление профилями
// пользователей клуба с учетом их роли.
package identity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/magabrotheeeer/gym-management/internal/lib/sl"
	"github.com/magabrotheeeer/gym-management/internal/models"
)

// UserRepository описывает контракт хранилища пользователей.
type UserRepository interface {
	// CreateUser сохраняет пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user *models.User) (string, error)
	// FindByUsername возвращает пользователя или models.ErrUserNotFound.
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	// UpdateUser заменяет запись с именем username. false, если запись не найдена.
	UpdateUser(ctx context.Context, username string, user *models.User) (bool, error)
	// Exists сообщает, занято ли имя пользователя.
	Exists(ctx context.Context, username string) (bool, error)
}

// Hasher хеширует и проверяет пароли.
type Hasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// Recorder учитывает регистрации и попытки входа.
type Recorder interface {
	UserSignedUp(role string)
	LoginAttempt(ok bool)
}

// RenameListener получает уведомление о смене имени пользователя.
type RenameListener interface {
	MemberRenamed(ctx context.Context, oldName, newName string) error
}

// Service отвечает за учетные записи. Recorder необязателен.
type Service struct {
	users           UserRepository
	hasher          Hasher
	recorder        Recorder
	renames         RenameListener
	defaultPassword string
	log             *slog.Logger

	now func() time.Time
}

// New создает сервис учетных записей. defaultPassword используется при сбросе пароля.
func New(users UserRepository, hasher Hasher, recorder Recorder, defaultPassword string, log *slog.Logger) *Service {
	return &Service{
		users:           users,
		hasher:          hasher,
		recorder:        recorder,
		defaultPassword: defaultPassword,
		log:             log,
		now:             time.Now,
	}
}

// OnRename подписывает l на переименования пользователей.
func (s *Service) OnRename(l RenameListener) {
	s.renames = l
}

// Signup регистрирует пользователя с указанной ролью и возвращает сохраненную запись.
func (s *Service) Signup(ctx context.Context, role, username, password string) (*models.User, error) {
	const op = "identity.Signup"

	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.Validationf("username is required")
	}
	if strings.TrimSpace(password) == "" {
		return nil, models.Validationf("password is required")
	}
	r, err := models.ParseRole(role)
	if err != nil {
		return nil, err
	}

	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if exists {
		return nil, models.ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := models.NewUser(r, username, hash)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now

	if _, err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	stored, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if s.recorder != nil {
		s.recorder.UserSignedUp(string(r))
	}
	s.log.Info("user signed up",
		slog.String("op", op),
		slog.String("username", username),
		slog.String("role", string(r)),
	)
	return stored, nil
}

// Login проверяет пароль. Отсутствие пользователя и неверный пароль
// неразличимы для вызывающей стороны.
func (s *Service) Login(ctx context.Context, username, password string) (*models.User, error) {
	const op = "identity.Login"

	user, err := s.authenticate(ctx, username, password)
	if s.recorder != nil {
		s.recorder.LoginAttempt(err == nil)
	}
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// LoginAs проверяет пароль и роль пользователя.
func (s *Service) LoginAs(ctx context.Context, username, password, expectedRole string) (*models.User, error) {
	user, err := s.Login(ctx, username, password)
	if err != nil {
		return nil, err
	}
	role, err := models.ParseRole(expectedRole)
	if err != nil || role != user.Role {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

func (s *Service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, models.ErrInvalidCredentials
	}
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, models.ErrNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, models.ErrInvalidCredentials
	}
	return user, nil
}

// GetProfile возвращает пользователя по имени.
func (s *Service) GetProfile(ctx context.Context, username string) (*models.User, error) {
	const op = "identity.GetProfile"
	user, err := s.users.FindByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}

// UpdateProfile применяет к профилю поля, допустимые для роли пользователя.
// Переименование в занятое имя возвращает models.ErrUserExists.
func (s *Service) UpdateProfile(ctx context.Context, username string, patch models.ProfilePatch) (*models.User, error) {
	const op = "identity.UpdateProfile"

	username = strings.TrimSpace(username)
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	newName, renamed := patch.RenamesTo(user.Username)
	if renamed {
		taken, err := s.users.Exists(ctx, newName)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if taken {
			return nil, models.ErrUserExists
		}
	}

	user.ApplyPatch(patch)
	user.UpdatedAt = s.now().UTC()

	if err := s.save(ctx, username, user); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	// Переименование уже сохранено, ошибка слушателя только логируется.
	if renamed && s.renames != nil {
		if err := s.renames.MemberRenamed(ctx, username, newName); err != nil {
			s.log.Error("rename listener failed", slog.String("op", op), sl.Err(err))
		}
	}

	s.log.Info("profile updated",
		slog.String("op", op),
		slog.String("username", user.Username),
		slog.String("role", string(user.Role)),
	)
	return user, nil
}

// ChangePassword меняет пароль после проверки старого.
func (s *Service) ChangePassword(ctx context.Context, username, oldPassword, newPassword string) error {
	const op = "identity.ChangePassword"

	username = strings.TrimSpace(username)
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.hasher.Compare(user.PasswordHash, oldPassword); err != nil {
		return models.ErrInvalidCredentials
	}
	if strings.TrimSpace(newPassword) == "" {
		return models.Validationf("new password is required")
	}

	if err := s.setPassword(ctx, user, newPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("password changed", slog.String("op", op), slog.String("username", username))
	return nil
}

// ResetPassword устанавливает пароль по умолчанию.
func (s *Service) ResetPassword(ctx context.Context, username string) error {
	const op = "identity.ResetPassword"

	username = strings.TrimSpace(username)
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := s.setPassword(ctx, user, s.defaultPassword); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	s.log.Warn("password reset to default", slog.String("op", op), slog.String("username", username))
	return nil
}

// Logout только подтверждает выход: сессий и токенов нет.
func (s *Service) Logout(_ context.Context, username string) error {
	const op = "identity.Logout"
	if strings.TrimSpace(username) == "" {
		return models.Validationf("username is required")
	}
	s.log.Info("user logged out", slog.String("op", op), slog.String("username", username))
	return nil
}

func (s *Service) setPassword(ctx context.Context, user *models.User, password string) error {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	user.UpdatedAt = s.now().UTC()
	return s.save(ctx, user.Username, user)
}

func (s *Service) save(ctx context.Context, username string, user *models.User) error {
	matched, err := s.users.UpdateUser(ctx, username, user)
	if err != nil {
		return err
	}
	if !matched {
		s.log.Error("user disappeared during update", slog.String("username", username), sl.Err(models.ErrUserNotFound))
		return models.ErrUserNotFound
	}
	return nil
}
