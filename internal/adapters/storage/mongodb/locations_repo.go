package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlink-api/internal/domain/locations"
)

type locationsRepo struct {
	col *mongo.Collection
}

func NewLocationsRepo(db *mongo.Database) locations.Repository {
	return &locationsRepo{col: db.Collection("ubicaciones_historicos")}
}

type locationDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	DispositivoID string             `bson:"dispositivo_id"`
	Fecha         time.Time          `bson:"fecha"`
	Latitud       float64            `bson:"latitud"`
	Longitud      float64            `bson:"longitud"`
}

func (d locationDoc) toDomain() locations.LocationRecord {
	return locations.LocationRecord{
		ID:            d.ID.Hex(),
		DispositivoID: d.DispositivoID,
		Fecha:         d.Fecha,
		Latitud:       d.Latitud,
		Longitud:      d.Longitud,
	}
}

func (r *locationsRepo) Create(ctx context.Context, l locations.LocationRecord) (locations.LocationRecord, error) {
	doc := locationDoc{
		ID:            primitive.NewObjectID(),
		DispositivoID: l.DispositivoID,
		Fecha:         l.Fecha,
		Latitud:       l.Latitud,
		Longitud:      l.Longitud,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return locations.LocationRecord{}, err
	}
	return doc.toDomain(), nil
}

func (r *locationsRepo) List(ctx context.Context, skip, limit int) ([]locations.LocationRecord, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]locations.LocationRecord, 0, limit)
	for cur.Next(ctx) {
		var doc locationDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *locationsRepo) GetByID(ctx context.Context, id string) (locations.LocationRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return locations.LocationRecord{}, locations.ErrInvalidID
	}

	var doc locationDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return locations.LocationRecord{}, locations.ErrNotFound
	}
	if err != nil {
		return locations.LocationRecord{}, err
	}
	return doc.toDomain(), nil
}

func (r *locationsRepo) Update(ctx context.Context, id string, in locations.UpdateInput) (locations.LocationRecord, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return locations.LocationRecord{}, locations.ErrInvalidID
	}

	set := bson.M{}
	if in.DispositivoID != nil {
		set["dispositivo_id"] = *in.DispositivoID
	}
	if in.Fecha != nil {
		set["fecha"] = *in.Fecha
	}
	if in.Latitud != nil {
		set["latitud"] = *in.Latitud
	}
	if in.Longitud != nil {
		set["longitud"] = *in.Longitud
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc locationDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return locations.LocationRecord{}, locations.ErrNotFound
	}
	if err != nil {
		return locations.LocationRecord{}, err
	}
	return doc.toDomain(), nil
}

func (r *locationsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return locations.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return locations.ErrNotFound
	}
	return nil
}
