package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlink-api/internal/domain/devices"
)

type devicesRepo struct {
	col *mongo.Collection
}

func NewDevicesRepo(db *mongo.Database) devices.Repository {
	return &devicesRepo{col: db.Collection("dispositivos")}
}

type deviceDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	Serial        string             `bson:"serial"`
	Estado        string             `bson:"estado"`
	FechaRegistro time.Time          `bson:"fecha_registro"`
}

func (d deviceDoc) toDomain() devices.Device {
	return devices.Device{
		ID:            d.ID.Hex(),
		Serial:        d.Serial,
		Estado:        d.Estado,
		FechaRegistro: d.FechaRegistro,
	}
}

func (r *devicesRepo) Create(ctx context.Context, dev devices.Device) (devices.Device, error) {
	doc := deviceDoc{
		ID:            primitive.NewObjectID(),
		Serial:        dev.Serial,
		Estado:        dev.Estado,
		FechaRegistro: dev.FechaRegistro,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return devices.Device{}, devices.ErrDuplicateSerial
		}
		return devices.Device{}, err
	}
	return doc.toDomain(), nil
}

func (r *devicesRepo) List(ctx context.Context, skip, limit int) ([]devices.Device, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]devices.Device, 0, limit)
	for cur.Next(ctx) {
		var doc deviceDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *devicesRepo) GetByID(ctx context.Context, id string) (devices.Device, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return devices.Device{}, devices.ErrInvalidID
	}

	var doc deviceDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return devices.Device{}, devices.ErrNotFound
	}
	if err != nil {
		return devices.Device{}, err
	}
	return doc.toDomain(), nil
}

func (r *devicesRepo) GetBySerial(ctx context.Context, serial string) (devices.Device, error) {
	var doc deviceDoc
	err := r.col.FindOne(ctx, bson.M{"serial": serial}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return devices.Device{}, devices.ErrNotFound
	}
	if err != nil {
		return devices.Device{}, err
	}
	return doc.toDomain(), nil
}

func (r *devicesRepo) Update(ctx context.Context, id string, in devices.UpdateInput) (devices.Device, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return devices.Device{}, devices.ErrInvalidID
	}

	set := bson.M{}
	if in.Serial != nil {
		set["serial"] = *in.Serial
	}
	if in.Estado != nil {
		set["estado"] = *in.Estado
	}
	if in.FechaRegistro != nil {
		set["fecha_registro"] = *in.FechaRegistro
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc deviceDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return devices.Device{}, devices.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return devices.Device{}, devices.ErrDuplicateSerial
	}
	if err != nil {
		return devices.Device{}, err
	}
	return doc.toDomain(), nil
}

func (r *devicesRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return devices.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return devices.ErrNotFound
	}
	return nil
}
