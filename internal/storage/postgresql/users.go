package postgresql

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// profile — ролевая часть пользователя в колонке JSONB.
type profile struct {
	Member       *models.MemberProfile       `json:"member,omitempty"`
	Trainer      *models.TrainerProfile      `json:"trainer,omitempty"`
	Receptionist *models.ReceptionistProfile `json:"receptionist,omitempty"`
}

const userColumns = `id, username, password_hash, role, profile, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	var (
		u   models.User
		raw []byte
	)
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role, &raw, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, err
	}
	var p profile
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &p); err != nil {
			return nil, err
		}
	}
	u.Member, u.Trainer, u.Receptionist = p.Member, p.Trainer, p.Receptionist
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return &u, nil
}

func marshalProfile(u *models.User) ([]byte, error) {
	return json.Marshal(profile{Member: u.Member, Trainer: u.Trainer, Receptionist: u.Receptionist})
}

// CreateUser сохраняет нового пользователя и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) (string, error) {
	const op = "storage.postgresql.CreateUser"
	if err := checkCtx(ctx, op); err != nil {
		return "", err
	}

	raw, err := marshalProfile(user)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	id := user.ID
	if id == "" {
		id = uuid.NewString()
	}

	query := `INSERT INTO users (id, username, password_hash, role, profile, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id;`
	var newID string
	err = s.DB.QueryRowContext(ctx, query,
		id, user.Username, user.PasswordHash, user.Role, raw, user.CreatedAt, user.UpdatedAt).Scan(&newID)
	if isUniqueViolation(err) {
		return "", fmt.Errorf("%s: %w", op, models.ErrUserExists)
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user.ID = newID
	return newID, nil
}

// FindByUsername возвращает пользователя по username.
func (s *Storage) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	const op = "storage.postgresql.FindByUsername"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindByID возвращает пользователя по ID.
func (s *Storage) FindByID(ctx context.Context, id string) (*models.User, error) {
	const op = "storage.postgresql.FindByID"
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return nil, models.ErrUserNotFound
	}

	row := s.DB.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return u, nil
}

// FindAll возвращает всех пользователей в порядке регистрации.
func (s *Storage) FindAll(ctx context.Context) ([]*models.User, error) {
	const op = "storage.postgresql.FindAll"
	return s.listUsers(ctx, op, `SELECT `+userColumns+` FROM users ORDER BY created_at, username`)
}

// FindByRole возвращает пользователей с указанной ролью.
func (s *Storage) FindByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	const op = "storage.postgresql.FindByRole"
	return s.listUsers(ctx, op, `SELECT `+userColumns+` FROM users WHERE role = $1 ORDER BY created_at, username`, role)
}

func (s *Storage) listUsers(ctx context.Context, op, query string, args ...any) ([]*models.User, error) {
	if err := checkCtx(ctx, op); err != nil {
		return nil, err
	}
	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// UpdateUser заменяет запись пользователя username. Возвращает false,
// если такой записи нет. При переименовании платежи участника переносятся
// на новое имя в той же транзакции.
func (s *Storage) UpdateUser(ctx context.Context, username string, user *models.User) (bool, error) {
	const op = "storage.postgresql.UpdateUser"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}

	raw, err := marshalProfile(user)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `UPDATE users
			  SET username = $2, password_hash = $3, profile = $4, updated_at = $5
			  WHERE username = $1`
	res, err := tx.ExecContext(ctx, query, username, user.Username, user.PasswordHash, raw, user.UpdatedAt)
	if isUniqueViolation(err) {
		return false, fmt.Errorf("%s: %w", op, models.ErrUserExists)
	}
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if n == 0 {
		return false, nil
	}

	if user.Username != username {
		_, err = tx.ExecContext(ctx, `UPDATE payments SET member_id = $2 WHERE member_id = $1`, username, user.Username)
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return true, nil
}

// Exists проверяет, занят ли username.
func (s *Storage) Exists(ctx context.Context, username string) (bool, error) {
	const op = "storage.postgresql.Exists"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	var exists bool
	err := s.DB.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// DeleteUser удаляет пользователя. false, если записи не было.
func (s *Storage) DeleteUser(ctx context.Context, username string) (bool, error) {
	const op = "storage.postgresql.DeleteUser"
	if err := checkCtx(ctx, op); err != nil {
		return false, err
	}
	res, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE username = $1`, username)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}
