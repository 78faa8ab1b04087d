package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizzapp-service/internal/domain"
)

type userDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Username    string             `bson:"username"`
	Password    string             `bson:"password"`
	DisplayName string             `bson:"displayName"`
	Avatar      string             `bson:"avatar"`
	HighScore   float64            `bson:"highScore"`
}

func (d userDoc) toDomain() domain.User {
	return domain.User{
		ID:          d.ID.Hex(),
		Username:    d.Username,
		Password:    d.Password,
		DisplayName: d.DisplayName,
		Avatar:      d.Avatar,
		HighScore:   d.HighScore,
	}
}

// UserStore implements app.UserRepository on the users collection.
type UserStore struct {
	coll *mongo.Collection
}

func NewUserStore(db *mongo.Database) *UserStore {
	return &UserStore{coll: db.Collection(usersCollection)}
}

func (s *UserStore) Create(ctx context.Context, user domain.User) error {
	oid, err := primitive.ObjectIDFromHex(user.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	_, err = s.coll.InsertOne(ctx, userDoc{
		ID:          oid,
		Username:    user.Username,
		Password:    user.Password,
		DisplayName: user.DisplayName,
		Avatar:      user.Avatar,
		HighScore:   user.HighScore,
	})
	if mongo.IsDuplicateKeyError(err) {
		return domain.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id string) (domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	return s.findOne(ctx, bson.M{"_id": oid})
}

func (s *UserStore) GetByUsername(ctx context.Context, username string) (domain.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *UserStore) Patch(ctx context.Context, id string, patch domain.UserPatch) (domain.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.User{}, domain.ErrUserNotFound
	}
	if patch.Empty() {
		return s.findOne(ctx, bson.M{"_id": oid})
	}

	set := bson.M{}
	if patch.DisplayName != nil {
		set["displayName"] = *patch.DisplayName
	}
	if patch.HighScore != nil {
		set["highScore"] = *patch.HighScore
	}
	if patch.Avatar != nil {
		set["avatar"] = *patch.Avatar
	}

	var doc userDoc
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("update user: %w", err)
	}
	return doc.toDomain(), nil
}

func (s *UserStore) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var doc userDoc
	err := s.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("find user: %w", err)
	}
	return doc.toDomain(), nil
}
