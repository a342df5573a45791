package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlink-api/internal/domain/events"
)

type eventsRepo struct {
	col *mongo.Collection
}

func NewEventsRepo(db *mongo.Database) events.Repository {
	return &eventsRepo{col: db.Collection("eventos")}
}

type eventDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	UsuarioID     string             `bson:"usuario_id,omitempty"`
	DispositivoID string             `bson:"dispositivo_id"`
	Fecha         time.Time          `bson:"fecha"`
	Hora          int                `bson:"hora"`
	TipoEvento    string             `bson:"tipo_evento"`
	Descripcion   string             `bson:"descripcion"`
	Estado        string             `bson:"estado"`
}

func (d eventDoc) toDomain() events.Event {
	return events.Event{
		ID:            d.ID.Hex(),
		UsuarioID:     d.UsuarioID,
		DispositivoID: d.DispositivoID,
		Fecha:         d.Fecha,
		Hora:          d.Hora,
		TipoEvento:    d.TipoEvento,
		Descripcion:   d.Descripcion,
		Estado:        d.Estado,
	}
}

func (r *eventsRepo) Create(ctx context.Context, e events.Event) (events.Event, error) {
	doc := eventDoc{
		ID:            primitive.NewObjectID(),
		UsuarioID:     e.UsuarioID,
		DispositivoID: e.DispositivoID,
		Fecha:         e.Fecha,
		Hora:          e.Hora,
		TipoEvento:    e.TipoEvento,
		Descripcion:   e.Descripcion,
		Estado:        e.Estado,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return events.Event{}, err
	}
	return doc.toDomain(), nil
}

func (r *eventsRepo) List(ctx context.Context, skip, limit int) ([]events.Event, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]events.Event, 0, limit)
	for cur.Next(ctx) {
		var doc eventDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *eventsRepo) GetByID(ctx context.Context, id string) (events.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return events.Event{}, events.ErrInvalidID
	}

	var doc eventDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return events.Event{}, events.ErrNotFound
	}
	if err != nil {
		return events.Event{}, err
	}
	return doc.toDomain(), nil
}

func (r *eventsRepo) Update(ctx context.Context, id string, in events.UpdateInput) (events.Event, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return events.Event{}, events.ErrInvalidID
	}

	set := bson.M{}
	if in.UsuarioID != nil {
		set["usuario_id"] = *in.UsuarioID
	}
	if in.DispositivoID != nil {
		set["dispositivo_id"] = *in.DispositivoID
	}
	if in.Fecha != nil {
		set["fecha"] = *in.Fecha
	}
	if in.Hora != nil {
		set["hora"] = *in.Hora
	}
	if in.TipoEvento != nil {
		set["tipo_evento"] = *in.TipoEvento
	}
	if in.Descripcion != nil {
		set["descripcion"] = *in.Descripcion
	}
	if in.Estado != nil {
		set["estado"] = *in.Estado
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc eventDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return events.Event{}, events.ErrNotFound
	}
	if err != nil {
		return events.Event{}, err
	}
	return doc.toDomain(), nil
}

func (r *eventsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return events.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return events.ErrNotFound
	}
	return nil
}
