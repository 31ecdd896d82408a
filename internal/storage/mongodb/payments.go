package mongodb

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/magabrotheeeer/gym-management/internal/models"
)

// InsertPayment добавляет платеж в историю.
func (s *Storage) InsertPayment(ctx context.Context, p *models.Payment) error {
	const op = "storage.mongodb.InsertPayment"
	if _, err := s.payments.InsertOne(ctx, p); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// FindPaymentsByMember возвращает платежи участника, новые первыми.
func (s *Storage) FindPaymentsByMember(ctx context.Context, memberID string) ([]*models.Payment, error) {
	const op = "storage.mongodb.FindPaymentsByMember"

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.payments.Find(ctx, bson.M{"member_id": memberID}, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer cur.Close(ctx)

	payments := make([]*models.Payment, 0)
	if err := cur.All(ctx, &payments); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return payments, nil
}

// FindPaymentByID возвращает платеж по идентификатору.
func (s *Storage) FindPaymentByID(ctx context.Context, id string) (*models.Payment, error) {
	const op = "storage.mongodb.FindPaymentByID"
	var p models.Payment
	err := s.payments.FindOne(ctx, bson.M{"_id": id}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, models.ErrPaymentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &p, nil
}

// CountPaymentsByMember возвращает количество платежей участника.
func (s *Storage) CountPaymentsByMember(ctx context.Context, memberID string) (int64, error) {
	const op = "storage.mongodb.CountPaymentsByMember"
	n, err := s.payments.CountDocuments(ctx, bson.M{"member_id": memberID})
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return n, nil
}
