package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/locauto/rental-system/internal/core/domain"
	"github.com/locauto/rental-system/internal/core/ports"
)

const vehicleCollection = "vehicles"

// VehicleRepository implements ports.VehicleRepository on MongoDB.
type VehicleRepository struct {
	coll *mongo.Collection
}

func NewVehicleRepository(db *mongo.Database) *VehicleRepository {
	return &VehicleRepository{coll: db.Collection(vehicleCollection)}
}

// EnsureIndexes creates the unique registration index and the daily-rate
// index backing the price filter.
func (r *VehicleRepository) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "registration", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys: bson.D{{Key: "daily_rate", Value: 1}},
		},
	})
	if err != nil {
		return fmt.Errorf("vehicles indexes: %w", err)
	}
	return nil
}

type mongoVehicle struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Make         string             `bson:"make"`
	Model        string             `bson:"model"`
	Registration string             `bson:"registration"`
	Year         int                `bson:"year"`
	DailyRate    float64            `bson:"daily_rate"`
	Available    bool               `bson:"available"`
	CreatedAt    int64              `bson:"created_at"`
	UpdatedAt    int64              `bson:"updated_at"`
}

func (mv mongoVehicle) toDomain() *domain.Vehicle {
	return &domain.Vehicle{
		ID:           mv.ID.Hex(),
		Make:         mv.Make,
		Model:        mv.Model,
		Registration: mv.Registration,
		Year:         mv.Year,
		DailyRate:    mv.DailyRate,
		Available:    mv.Available,
		CreatedAt:    unixToTime(mv.CreatedAt),
		UpdatedAt:    unixToTime(mv.UpdatedAt),
	}
}

func (r *VehicleRepository) Create(ctx context.Context, v *domain.Vehicle) (*domain.Vehicle, error) {
	doc := mongoVehicle{
		Make:         v.Make,
		Model:        v.Model,
		Registration: v.Registration,
		Year:         v.Year,
		DailyRate:    v.DailyRate,
		Available:    v.Available,
		CreatedAt:    v.CreatedAt.Unix(),
		UpdatedAt:    v.UpdatedAt.Unix(),
	}

	res, err := r.coll.InsertOne(ctx, doc)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrVehicleExists
		}
		return nil, fmt.Errorf("insert vehicle: %w", err)
	}

	created := *v
	created.ID = res.InsertedID.(primitive.ObjectID).Hex()
	return &created, nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id string) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	var mv mongoVehicle
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return mv.toDomain(), nil
}

func (r *VehicleRepository) FindByRegistration(ctx context.Context, registration string) (*domain.Vehicle, error) {
	var mv mongoVehicle
	if err := r.coll.FindOne(ctx, bson.M{"registration": registration}).Decode(&mv); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle by registration: %w", err)
	}
	return mv.toDomain(), nil
}

func (r *VehicleRepository) ListAvailable(ctx context.Context) ([]*domain.Vehicle, error) {
	return r.list(ctx, bson.M{"available": true})
}

func (r *VehicleRepository) ListByMaxRate(ctx context.Context, max float64) ([]*domain.Vehicle, error) {
	return r.list(ctx, bson.M{"available": true, "daily_rate": bson.M{"$lte": max}})
}

func (r *VehicleRepository) list(ctx context.Context, filter bson.M) ([]*domain.Vehicle, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "daily_rate", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer cur.Close(ctx)

	var vehicles []*domain.Vehicle
	for cur.Next(ctx) {
		var mv mongoVehicle
		if err := cur.Decode(&mv); err != nil {
			return nil, fmt.Errorf("list vehicles: decode: %w", err)
		}
		vehicles = append(vehicles, mv.toDomain())
	}
	if err := cur.Err(); err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

func (r *VehicleRepository) Update(ctx context.Context, id string, fields ports.UpdateVehicleFields) (*domain.Vehicle, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrVehicleNotFound
	}

	set := bson.M{"updated_at": time.Now().UTC().Unix()}
	if fields.Make != nil {
		set["make"] = *fields.Make
	}
	if fields.Model != nil {
		set["model"] = *fields.Model
	}
	if fields.Registration != nil {
		set["registration"] = *fields.Registration
	}
	if fields.Year != nil {
		set["year"] = *fields.Year
	}
	if fields.DailyRate != nil {
		set["daily_rate"] = *fields.DailyRate
	}
	if fields.Available != nil {
		set["available"] = *fields.Available
	}

	res, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": set})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrVehicleExists
		}
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, domain.ErrVehicleNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *VehicleRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrVehicleNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrVehicleNotFound
	}
	return nil
}
