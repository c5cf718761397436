package mongo

import (
	"context"
	"errors"
	"regexp"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const memberCollectionName = "members"

// mongoMemberRepository implements repository.MemberRepository
type mongoMemberRepository struct {
	collection *mongo.Collection
}

// NewMongoMemberRepository creates a new Member repository.
func NewMongoMemberRepository(db *mongo.Database) repository.MemberRepository {
	return &mongoMemberRepository{
		collection: db.Collection(memberCollectionName),
	}
}

// Create inserts a new member record.
func (r *mongoMemberRepository) Create(ctx context.Context, member *domain.Member) (primitive.ObjectID, error) {
	if member.Name == "" {
		return primitive.NilObjectID, errors.New("member name is required")
	}
	member.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	if member.JoinedAt.IsZero() {
		member.JoinedAt = now
	}
	member.CreatedAt = now
	member.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, member)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, repository.ErrDuplicate
		}
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted member ID")
	}
	return insertedID, nil
}

// GetByID retrieves a member by their ObjectID.
func (r *mongoMemberRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.Member, error) {
	var member domain.Member
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&member)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &member, nil
}

// GetAll retrieves the full member directory sorted by name.
func (r *mongoMemberRepository) GetAll(ctx context.Context) ([]domain.Member, error) {
	return r.find(ctx, bson.M{})
}

// Search matches the keyword case-insensitively against member name,
// email and phone. Keyword length policy lives in the service layer.
func (r *mongoMemberRepository) Search(ctx context.Context, keyword string) ([]domain.Member, error) {
	pattern := regexp.QuoteMeta(keyword)
	regex := bson.M{"$regex": pattern, "$options": "i"}
	filter := bson.M{"$or": []bson.M{
		{"name": regex},
		{"email": regex},
		{"phone": regex},
	}}
	return r.find(ctx, filter)
}

func (r *mongoMemberRepository) find(ctx context.Context, filter bson.M) ([]domain.Member, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var members []domain.Member
	if err = cursor.All(ctx, &members); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	if members == nil {
		members = []domain.Member{}
	}
	return members, nil
}

// EnsureMemberIndexes creates necessary indexes. Call during startup.
func EnsureMemberIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
