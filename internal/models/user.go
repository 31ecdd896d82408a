// Package models содержит доменные структуры системы управления фитнес-клубом:
// пользователя с ролевыми профилями, платеж и запросы к сервисам.
package models

import (
	"strings"
	"time"
)

// Role — тег варианта пользователя. Набор ролей закрыт.
type Role string

const (
	RoleMember          Role = "member"
	RoleTrainer         Role = "trainer"
	RoleReceptionist    Role = "receptionist"
	RolePhysiotherapist Role = "physiotherapist"
)

// Roles возвращает все поддерживаемые роли.
func Roles() []Role {
	return []Role{RoleMember, RoleTrainer, RoleReceptionist, RolePhysiotherapist}
}

// MembershipCancelled — тип абонемента после его отмены.
const MembershipCancelled = "CANCELLED"

// ParseRole приводит строку к роли без учета регистра.
func ParseRole(s string) (Role, error) {
	role := Role(strings.ToLower(strings.TrimSpace(s)))
	if !role.Valid() {
		return "", ErrInvalidRole
	}
	return role, nil
}

// Valid сообщает, входит ли роль в закрытый набор.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleTrainer, RoleReceptionist, RolePhysiotherapist:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User — зарегистрированный пользователь клуба.
// Ровно один из профилей заполнен в соответствии с Role,
// у физиотерапевта профиля нет.
type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`

	Member       *MemberProfile       `json:"member,omitempty" bson:"member,omitempty"`
	Trainer      *TrainerProfile      `json:"trainer,omitempty" bson:"trainer,omitempty"`
	Receptionist *ReceptionistProfile `json:"receptionist,omitempty" bson:"receptionist,omitempty"`
}

// MemberProfile — данные участника клуба и его абонемента.
type MemberProfile struct {
	Age             int        `json:"age" bson:"age"`
	Gender          string     `json:"gender" bson:"gender"`
	Address         string     `json:"address" bson:"address"`
	Attendance      int        `json:"attendance" bson:"attendance"`
	IsActive        bool       `json:"is_active" bson:"is_active"`
	Frozen          bool       `json:"frozen" bson:"frozen"`
	Phone           string     `json:"phone" bson:"phone"`
	MembershipType  string     `json:"membership_type" bson:"membership_type"`
	MembershipStart *time.Time `json:"membership_start,omitempty" bson:"membership_start,omitempty"`
	MembershipEnd   *time.Time `json:"membership_end,omitempty" bson:"membership_end,omitempty"`
}

// TrainerProfile — данные тренера.
type TrainerProfile struct {
	Specialization  string  `json:"specialization" bson:"specialization"`
	ExperienceYears int     `json:"experience_years" bson:"experience_years"`
	WorkingHours    string  `json:"working_hours" bson:"working_hours"`
	Salary          float64 `json:"salary" bson:"salary"`
}

// ReceptionistProfile — данные администратора ресепшена.
type ReceptionistProfile struct {
	Phone           string `json:"phone" bson:"phone"`
	ExperienceYears int    `json:"experience_years" bson:"experience_years"`
}

// NewUser создает пользователя нужного варианта по тегу роли.
// Не проверяет уникальность и ничего не сохраняет.
func NewUser(role Role, username, passwordHash string) (*User, error) {
	u := &User{
		Username:     username,
		PasswordHash: passwordHash,
		Role:         role,
	}
	switch role {
	case RoleMember:
		u.Member = &MemberProfile{IsActive: true}
	case RoleTrainer:
		u.Trainer = &TrainerProfile{}
	case RoleReceptionist:
		u.Receptionist = &ReceptionistProfile{}
	case RolePhysiotherapist:
	default:
		return nil, ErrInvalidRole
	}
	return u, nil
}

// ProfilePatch — частичное обновление профиля. nil означает, что поле не меняется.
type ProfilePatch struct {
	Username *string `json:"username,omitempty"`

	Phone           *string    `json:"phone,omitempty"`
	Address         *string    `json:"address,omitempty"`
	Age             *int       `json:"age,omitempty"`
	Gender          *string    `json:"gender,omitempty"`
	Attendance      *int       `json:"attendance,omitempty"`
	IsActive        *bool      `json:"is_active,omitempty"`
	Frozen          *bool      `json:"frozen,omitempty"`
	MembershipType  *string    `json:"membership_type,omitempty"`
	MembershipStart *time.Time `json:"membership_start,omitempty"`
	MembershipEnd   *time.Time `json:"membership_end,omitempty"`

	Specialization  *string  `json:"specialization,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	WorkingHours    *string  `json:"working_hours,omitempty"`
	Salary          *float64 `json:"salary,omitempty"`
}

// RenamesTo возвращает новый username, если патч действительно его меняет.
func (p ProfilePatch) RenamesTo(current string) (string, bool) {
	if p.Username == nil {
		return "", false
	}
	name := strings.TrimSpace(*p.Username)
	if name == "" || name == current {
		return "", false
	}
	return name, true
}

// ApplyPatch применяет к пользователю только поля, допустимые для его роли.
// Остальные поля патча игнорируются.
func (u *User) ApplyPatch(p ProfilePatch) {
	if name, ok := p.RenamesTo(u.Username); ok {
		u.Username = name
	}

	switch u.Role {
	case RoleMember:
		if u.Member == nil {
			u.Member = &MemberProfile{IsActive: true}
		}
		m := u.Member
		setIf(&m.Phone, p.Phone)
		setIf(&m.Address, p.Address)
		setIf(&m.Age, p.Age)
		setIf(&m.Gender, p.Gender)
		setIf(&m.Attendance, p.Attendance)
		setIf(&m.IsActive, p.IsActive)
		setIf(&m.Frozen, p.Frozen)
		setIf(&m.MembershipType, p.MembershipType)
		if p.MembershipStart != nil {
			start := *p.MembershipStart
			m.MembershipStart = &start
		}
		if p.MembershipEnd != nil {
			end := *p.MembershipEnd
			m.MembershipEnd = &end
		}
	case RoleTrainer:
		if u.Trainer == nil {
			u.Trainer = &TrainerProfile{}
		}
		t := u.Trainer
		setIf(&t.Specialization, p.Specialization)
		setIf(&t.ExperienceYears, p.ExperienceYears)
		setIf(&t.WorkingHours, p.WorkingHours)
		setIf(&t.Salary, p.Salary)
	case RoleReceptionist:
		if u.Receptionist == nil {
			u.Receptionist = &ReceptionistProfile{}
		}
		r := u.Receptionist
		setIf(&r.Phone, p.Phone)
		setIf(&r.ExperienceYears, p.ExperienceYears)
	case RolePhysiotherapist:
		// ролевых полей нет
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
