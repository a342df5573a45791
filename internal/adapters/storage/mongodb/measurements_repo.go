package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlink-api/internal/domain/measurements"
)

type measurementsRepo struct {
	col *mongo.Collection
}

func NewMeasurementsRepo(db *mongo.Database) measurements.Repository {
	return &measurementsRepo{col: db.Collection("mediciones")}
}

type measurementDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	DispositivoID string             `bson:"dispositivo_id"`
	Fecha         time.Time          `bson:"fecha"`
	Movimiento    bool               `bson:"movimiento"`
	UbicacionLat  float64            `bson:"ubicacion_lat"`
	UbicacionLng  float64            `bson:"ubicacion_lng"`
	EstadoCollar  bool               `bson:"estado_collar"`
	EstadoBroche  bool               `bson:"estado_broche"`
	Bateria       float64            `bson:"bateria"`
}

func (d measurementDoc) toDomain() measurements.Measurement {
	return measurements.Measurement{
		ID:            d.ID.Hex(),
		DispositivoID: d.DispositivoID,
		Fecha:         d.Fecha,
		Movimiento:    d.Movimiento,
		UbicacionLat:  d.UbicacionLat,
		UbicacionLng:  d.UbicacionLng,
		EstadoCollar:  d.EstadoCollar,
		EstadoBroche:  d.EstadoBroche,
		Bateria:       d.Bateria,
	}
}

func (r *measurementsRepo) Create(ctx context.Context, m measurements.Measurement) (measurements.Measurement, error) {
	doc := measurementDoc{
		ID:            primitive.NewObjectID(),
		DispositivoID: m.DispositivoID,
		Fecha:         m.Fecha,
		Movimiento:    m.Movimiento,
		UbicacionLat:  m.UbicacionLat,
		UbicacionLng:  m.UbicacionLng,
		EstadoCollar:  m.EstadoCollar,
		EstadoBroche:  m.EstadoBroche,
		Bateria:       m.Bateria,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return measurements.Measurement{}, err
	}
	return doc.toDomain(), nil
}

func (r *measurementsRepo) List(ctx context.Context, skip, limit int) ([]measurements.Measurement, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]measurements.Measurement, 0, limit)
	for cur.Next(ctx) {
		var doc measurementDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *measurementsRepo) GetByID(ctx context.Context, id string) (measurements.Measurement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return measurements.Measurement{}, measurements.ErrInvalidID
	}

	var doc measurementDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return measurements.Measurement{}, measurements.ErrNotFound
	}
	if err != nil {
		return measurements.Measurement{}, err
	}
	return doc.toDomain(), nil
}

func (r *measurementsRepo) Update(ctx context.Context, id string, in measurements.UpdateInput) (measurements.Measurement, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return measurements.Measurement{}, measurements.ErrInvalidID
	}

	set := bson.M{}
	if in.DispositivoID != nil {
		set["dispositivo_id"] = *in.DispositivoID
	}
	if in.Fecha != nil {
		set["fecha"] = *in.Fecha
	}
	if in.Movimiento != nil {
		set["movimiento"] = *in.Movimiento
	}
	if in.UbicacionLat != nil {
		set["ubicacion_lat"] = *in.UbicacionLat
	}
	if in.UbicacionLng != nil {
		set["ubicacion_lng"] = *in.UbicacionLng
	}
	if in.EstadoCollar != nil {
		set["estado_collar"] = *in.EstadoCollar
	}
	if in.EstadoBroche != nil {
		set["estado_broche"] = *in.EstadoBroche
	}
	if in.Bateria != nil {
		set["bateria"] = *in.Bateria
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc measurementDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return measurements.Measurement{}, measurements.ErrNotFound
	}
	if err != nil {
		return measurements.Measurement{}, err
	}
	return doc.toDomain(), nil
}

func (r *measurementsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return measurements.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return measurements.ErrNotFound
	}
	return nil
}
