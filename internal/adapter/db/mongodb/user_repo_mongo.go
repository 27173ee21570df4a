package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"usuarios-api/internal/domain/user"
	apperrors "usuarios-api/pkg/errors"
	"usuarios-api/pkg/logger"
)

// MsgUserNotFound is the message returned when no record matches a cedula.
const MsgUserNotFound = "Usuario no encontrado"

// CollectionProvider hands out the users collection, connecting on demand.
// *Manager is the production implementation.
type CollectionProvider interface {
	Collection(ctx context.Context) (*mongo.Collection, error)
}

// UserRepoMongo implements the usecase Repository interface on top of MongoDB.
type UserRepoMongo struct {
	conn CollectionProvider // Shared connection handle
	log  *zap.Logger        // Structured logger for database operations
}

// NewUserRepoMongo creates a new instance of UserRepoMongo.
func NewUserRepoMongo(conn CollectionProvider, log *zap.Logger) *UserRepoMongo {
	return &UserRepoMongo{conn: conn, log: log}
}

// UserDocument represents the stored shape of a user.
type UserDocument struct {
	ID     primitive.ObjectID `bson:"_id,omitempty"`
	Nombre *string            `bson:"nombre,omitempty"`
	Cedula *float64           `bson:"cedula,omitempty"`
	Email  *string            `bson:"email,omitempty"`
	Edad   *float64           `bson:"edad,omitempty"`
}

func (d UserDocument) toDomain() *user.User {
	return &user.User{
		ID:     d.ID.Hex(),
		Nombre: d.Nombre,
		Cedula: d.Cedula,
		Email:  d.Email,
		Edad:   d.Edad,
	}
}

// Create inserts a new user and sets its storage-assigned ID.
func (r *UserRepoMongo) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return apperrors.NewValidationError("usuario", "user cannot be nil")
	}

	coll, err := r.conn.Collection(ctx)
	if err != nil {
		return err
	}

	doc := UserDocument{
		ID:     primitive.NewObjectID(),
		Nombre: u.Nombre,
		Cedula: u.Cedula,
		Email:  u.Email,
		Edad:   u.Edad,
	}

	if _, err := coll.InsertOne(ctx, doc); err != nil {
		logger.WithContext(ctx, r.log).Error("failed to create user in db", zap.Error(err))
		return apperrors.NewInternalError("failed to create user", err)
	}

	u.ID = doc.ID.Hex()
	logger.WithContext(ctx, r.log).Info("user created in db", zap.String("id", u.ID))
	return nil
}

// List returns every user in storage order.
func (r *UserRepoMongo) List(ctx context.Context) ([]user.User, error) {
	coll, err := r.conn.Collection(ctx)
	if err != nil {
		return nil, err
	}

	cursor, err := coll.Find(ctx, bson.D{})
	if err != nil {
		logger.WithContext(ctx, r.log).Error("failed to list users from db", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	var docs []UserDocument
	if err := cursor.All(ctx, &docs); err != nil {
		logger.WithContext(ctx, r.log).Error("failed to decode users from db", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to list users", err)
	}

	users := make([]user.User, len(docs))
	for i, d := range docs {
		users[i] = *d.toDomain()
	}
	return users, nil
}

// UpdateByCedula replaces the patched fields of one user matching cedula and returns
// the record as stored after the update. With several matches, one unspecified record changes.
func (r *UserRepoMongo) UpdateByCedula(ctx context.Context, cedula float64, patch user.UserPatch) (*user.User, error) {
	coll, err := r.conn.Collection(ctx)
	if err != nil {
		return nil, err
	}

	filter := bson.D{{Key: "cedula", Value: cedula}}

	var result *mongo.SingleResult
	if patch.IsEmpty() {
		// $set with no fields is rejected by the server; nothing to change anyway
		result = coll.FindOne(ctx, filter)
	} else {
		update := bson.D{{Key: "$set", Value: setFields(patch)}}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		result = coll.FindOneAndUpdate(ctx, filter, update, opts)
	}

	var doc UserDocument
	if err := result.Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.WithContext(ctx, r.log).Warn("user not found for update")
			return nil, apperrors.NewNotFoundError("user", MsgUserNotFound)
		}
		logger.WithContext(ctx, r.log).Error("failed to update user in db", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to update user", err)
	}

	logger.WithContext(ctx, r.log).Info("user updated in db", zap.String("id", doc.ID.Hex()))
	return doc.toDomain(), nil
}

// DeleteByCedula removes one user matching cedula and returns its last stored values.
func (r *UserRepoMongo) DeleteByCedula(ctx context.Context, cedula float64) (*user.User, error) {
	coll, err := r.conn.Collection(ctx)
	if err != nil {
		return nil, err
	}

	var doc UserDocument
	err = coll.FindOneAndDelete(ctx, bson.D{{Key: "cedula", Value: cedula}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			logger.WithContext(ctx, r.log).Warn("user not found for delete")
			return nil, apperrors.NewNotFoundError("user", MsgUserNotFound)
		}
		logger.WithContext(ctx, r.log).Error("failed to delete user in db", zap.Error(err))
		return nil, apperrors.NewInternalError("failed to delete user", err)
	}

	logger.WithContext(ctx, r.log).Info("user deleted in db", zap.String("id", doc.ID.Hex()))
	return doc.toDomain(), nil
}

// setFields builds the $set document for the non-nil fields of patch.
func setFields(patch user.UserPatch) bson.D {
	fields := bson.D{}
	if patch.Nombre != nil {
		fields = append(fields, bson.E{Key: "nombre", Value: *patch.Nombre})
	}
	if patch.Cedula != nil {
		fields = append(fields, bson.E{Key: "cedula", Value: *patch.Cedula})
	}
	if patch.Email != nil {
		fields = append(fields, bson.E{Key: "email", Value: *patch.Email})
	}
	if patch.Edad != nil {
		fields = append(fields, bson.E{Key: "edad", Value: *patch.Edad})
	}
	return fields
}
