package mongo

import (
	"context"
	"errors"
	"time"

	"gymdesk/gym-app/internal/domain"
	"gymdesk/gym-app/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const dietPlanCollectionName = "diet_plans"

// mongoDietPlanRepository implements repository.DietPlanRepository
type mongoDietPlanRepository struct {
	collection *mongo.Collection
}

// NewMongoDietPlanRepository creates a new DietPlan repository.
func NewMongoDietPlanRepository(db *mongo.Database) repository.DietPlanRepository {
	return &mongoDietPlanRepository{
		collection: db.Collection(dietPlanCollectionName),
	}
}

// Create inserts a new diet plan document.
func (r *mongoDietPlanRepository) Create(ctx context.Context, plan *domain.DietPlan) (primitive.ObjectID, error) {
	if plan.TrainerID == primitive.NilObjectID || plan.Name == "" {
		return primitive.NilObjectID, errors.New("plan requires trainerId and name")
	}
	plan.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	plan.CreatedAt = now
	plan.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, plan)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted plan ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single diet plan by its ID.
func (r *mongoDietPlanRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.DietPlan, error) {
	var plan domain.DietPlan
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&plan)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &plan, nil
}

// GetByTrainerID retrieves all plans created by one trainer, newest first.
func (r *mongoDietPlanRepository) GetByTrainerID(ctx context.Context, trainerID primitive.ObjectID) ([]domain.DietPlan, error) {
	return r.find(ctx, bson.M{"trainerId": trainerID})
}

// GetAll retrieves every plan, newest first. Used by the admin dashboard listing.
func (r *mongoDietPlanRepository) GetAll(ctx context.Context) ([]domain.DietPlan, error) {
	return r.find(ctx, bson.M{})
}

func (r *mongoDietPlanRepository) find(ctx context.Context, filter bson.M) ([]domain.DietPlan, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var plans []domain.DietPlan
	if err = cursor.All(ctx, &plans); err != nil {
		return nil, err
	}
	if err = cursor.Err(); err != nil {
		return nil, err
	}
	// Return empty slice if no plans found (not an error)
	if plans == nil {
		plans = []domain.DietPlan{}
	}
	return plans, nil
}

// Replace swaps the stored document for the given plan wholesale.
// CreatedAt is preserved from the plan object; UpdatedAt is bumped.
func (r *mongoDietPlanRepository) Replace(ctx context.Context, plan *domain.DietPlan) error {
	if plan.ID == primitive.NilObjectID {
		return errors.New("diet plan ID is required for replace")
	}
	plan.UpdatedAt = time.Now().UTC()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": plan.ID}, plan)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a plan. The filter carries the trainer id so a plan can
// only be deleted by the trainer who owns it.
func (r *mongoDietPlanRepository) Delete(ctx context.Context, id primitive.ObjectID, trainerID primitive.ObjectID) error {
	if id == primitive.NilObjectID || trainerID == primitive.NilObjectID {
		return errors.New("plan ID and trainer ID are required for deletion")
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "trainerId": trainerID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		// Either the plan didn't exist or it belongs to another trainer.
		return repository.ErrNotFound
	}
	return nil
}

// EnsureDietPlanIndexes creates necessary indexes. Call during startup.
func EnsureDietPlanIndexes(ctx context.Context, collection *mongo.Collection) {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "trainerId", Value: 1}},
			Options: options.Index(),
		},
		{
			Keys:    bson.D{{Key: "assignedMembers", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys:    bson.D{{Key: "createdAt", Value: -1}},
			Options: options.Index(),
		},
	}
	_, _ = collection.Indexes().CreateMany(ctx, indexes)
}
