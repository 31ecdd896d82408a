package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

var sortByCreated = options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}, {Key: "username", Value: 1}})

// CreateUser сохраняет пользователя и возвращает его ID.
func (s *Storage) CreateUser(ctx context.Context, user *models.User) (string, error) {
	const op = "storage.mongodb.CreateUser"

	doc := *user
	if doc.ID == "" {
		doc.ID = primitive.NewObjectID().Hex()
	}
	if _, err := s.users.InsertOne(ctx, &doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", fmt.Errorf("%s: %w", op, models.ErrUserExists)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	user.ID = doc.ID
	return doc.ID, nil
}

func (s *Storage) findOne(ctx context.Context, op string, filter bson.M) (*models.User, error) {
	var u models.User
	err := s.users.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &u, nil
}

// FindByUsername возвращает пользователя по username.
func (s *Storage) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.findOne(ctx, "storage.mongodb.FindByUsername", bson.M{"username": username})
}

// FindByID возвращает пользователя по ID.
func (s *Storage) FindByID(ctx context.Context, id string) (*models.User, error) {
	if _, err := primitive.ObjectIDFromHex(id); err != nil {
		return nil, models.ErrUserNotFound
	}
	return s.findOne(ctx, "storage.mongodb.FindByID", bson.M{"_id": id})
}

// FindAll возвращает всех пользователей в порядке регистрации.
func (s *Storage) FindAll(ctx context.Context) ([]*models.User, error) {
	return s.find(ctx, "storage.mongodb.FindAll", bson.M{})
}

// FindByRole возвращает пользователей с указанной ролью.
func (s *Storage) FindByRole(ctx context.Context, role models.Role) ([]*models.User, error) {
	return s.find(ctx, "storage.mongodb.FindByRole", bson.M{"role": role})
}

func (s *Storage) find(ctx context.Context, op string, filter bson.M) ([]*models.User, error) {
	cur, err := s.users.Find(ctx, filter, sortByCreated)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	var users []*models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return users, nil
}

// UpdateUser заменяет документ пользователя username. false, если документа нет.
// При переименовании платежи участника переносятся на новое имя.
func (s *Storage) UpdateUser(ctx context.Context, username string, user *models.User) (bool, error) {
	const op = "storage.mongodb.UpdateUser"

	update := bson.M{"$set": bson.M{
		"username":      user.Username,
		"password_hash": user.PasswordHash,
		"member":        user.Member,
		"trainer":       user.Trainer,
		"receptionist":  user.Receptionist,
		"updated_at":    user.UpdatedAt,
	}}
	res, err := s.users.UpdateOne(ctx, bson.M{"username": username}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, fmt.Errorf("%s: %w", op, models.ErrUserExists)
		}
		return false, fmt.Errorf("%s: %w", op, err)
	}
	if res.MatchedCount == 0 {
		return false, nil
	}

	// TODO: объединить с обновлением пользователя в транзакцию, когда
	// хранилище будет развернуто как replica set.
	if user.Username != username {
		_, err = s.payments.UpdateMany(ctx,
			bson.M{"member_id": username},
			bson.M{"$set": bson.M{"member_id": user.Username}},
		)
		if err != nil {
			return false, fmt.Errorf("%s: %w", op, err)
		}
	}
	return true, nil
}

// Exists проверяет, занят ли username.
func (s *Storage) Exists(ctx context.Context, username string) (bool, error) {
	const op = "storage.mongodb.Exists"
	n, err := s.users.CountDocuments(ctx, bson.M{"username": username}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return n > 0, nil
}

// DeleteUser удаляет пользователя. false, если документа не было.
func (s *Storage) DeleteUser(ctx context.Context, username string) (bool, error) {
	const op = "storage.mongodb.DeleteUser"
	res, err := s.users.DeleteOne(ctx, bson.M{"username": username})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return res.DeletedCount > 0, nil
}
