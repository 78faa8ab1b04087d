package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"quizzapp-service/internal/domain"
)

type questionDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	QuestionText  string             `bson:"questionText"`
	Type          string             `bson:"type"`
	Options       []string           `bson:"options"`
	CorrectAnswer string             `bson:"correctAnswer"`
	CreatedBy     primitive.ObjectID `bson:"createdBy"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func (d questionDoc) toDomain() domain.Question {
	opts := d.Options
	if opts == nil {
		opts = []string{}
	}
	return domain.Question{
		ID:            d.ID.Hex(),
		QuestionText:  d.QuestionText,
		Type:          domain.QuestionType(d.Type),
		Options:       opts,
		CorrectAnswer: d.CorrectAnswer,
		CreatedBy:     d.CreatedBy.Hex(),
		CreatedAt:     d.CreatedAt.UTC(),
	}
}

// QuestionStore implements app.QuestionRepository on the questions collection.
type QuestionStore struct {
	coll *mongo.Collection
}

func NewQuestionStore(db *mongo.Database) *QuestionStore {
	return &QuestionStore{coll: db.Collection(questionsCollection)}
}

func (s *QuestionStore) List(ctx context.Context) ([]domain.Question, error) {
	cur, err := s.coll.Find(ctx, bson.D{},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}, {Key: "_id", Value: -1}}))
	if err != nil {
		return nil, fmt.Errorf("find questions: %w", err)
	}
	var docs []questionDoc
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode questions: %w", err)
	}
	out := make([]domain.Question, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

func (s *QuestionStore) Get(ctx context.Context, id string) (domain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Question{}, domain.ErrInvalidID
	}
	var doc questionDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	return decodeResult(doc, err, "find question")
}

func (s *QuestionStore) Create(ctx context.Context, q domain.Question) error {
	oid, err := primitive.ObjectIDFromHex(q.ID)
	if err != nil {
		return domain.ErrInvalidID
	}
	author, err := primitive.ObjectIDFromHex(q.CreatedBy)
	if err != nil {
		return domain.ErrInvalidID
	}
	_, err = s.coll.InsertOne(ctx, questionDoc{
		ID:            oid,
		QuestionText:  q.QuestionText,
		Type:          string(q.Type),
		Options:       q.Options,
		CorrectAnswer: q.CorrectAnswer,
		CreatedBy:     author,
		CreatedAt:     q.CreatedAt,
	})
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (s *QuestionStore) Replace(ctx context.Context, id string, in domain.QuestionInput) (domain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Question{}, domain.ErrInvalidID
	}
	var doc questionDoc
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{
			"questionText":  in.QuestionText,
			"type":          string(in.Type),
			"options":       in.Options,
			"correctAnswer": in.CorrectAnswer,
		}},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	return decodeResult(doc, err, "update question")
}

func (s *QuestionStore) Delete(ctx context.Context, id string) (domain.Question, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.Question{}, domain.ErrInvalidID
	}
	var doc questionDoc
	err = s.coll.FindOneAndDelete(ctx, bson.M{"_id": oid}).Decode(&doc)
	return decodeResult(doc, err, "delete question")
}

func decodeResult(doc questionDoc, err error, op string) (domain.Question, error) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return domain.Question{}, domain.ErrQuestionNotFound
	}
	if err != nil {
		return domain.Question{}, fmt.Errorf("%s: %w", op, err)
	}
	return doc.toDomain(), nil
}
