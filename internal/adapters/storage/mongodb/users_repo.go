package mongodb

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlink-api/internal/domain/users"
)

type usersRepo struct {
	col *mongo.Collection
}

func NewUsersRepo(db *mongo.Database) users.Repository {
	return &usersRepo{col: db.Collection("usuarios")}
}

type userDoc struct {
	ID             primitive.ObjectID `bson:"_id"`
	RolID          string             `bson:"rol_id,omitempty"`
	Nombre         string             `bson:"nombre"`
	NumeroContacto string             `bson:"numero_contacto"`
	Contrasena     string             `bson:"contrasena_"`
	Correo         string             `bson:"correo"`
	FechaRegistro  time.Time          `bson:"fecha_registro"`
}

func (d userDoc) toDomain() users.User {
	return users.User{
		ID:             d.ID.Hex(),
		RolID:          d.RolID,
		Nombre:         d.Nombre,
		NumeroContacto: d.NumeroContacto,
		Contrasena:     d.Contrasena,
		Correo:         d.Correo,
		FechaRegistro:  d.FechaRegistro,
	}
}

func (r *usersRepo) Create(ctx context.Context, u users.User) (users.User, error) {
	doc := userDoc{
		ID:             primitive.NewObjectID(),
		RolID:          u.RolID,
		Nombre:         u.Nombre,
		NumeroContacto: u.NumeroContacto,
		Contrasena:     u.Contrasena,
		Correo:         u.Correo,
		FechaRegistro:  u.FechaRegistro,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return users.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) List(ctx context.Context, skip, limit int) ([]users.User, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]users.User, 0, limit)
	for cur.Next(ctx) {
		var doc userDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return users.User{}, users.ErrInvalidID
	}

	var doc userDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) Update(ctx context.Context, id string, in users.UpdateInput) (users.User, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return users.User{}, users.ErrInvalidID
	}

	set := bson.M{}
	if in.RolID != nil {
		set["rol_id"] = *in.RolID
	}
	if in.Nombre != nil {
		set["nombre"] = *in.Nombre
	}
	if in.NumeroContacto != nil {
		set["numero_contacto"] = *in.NumeroContacto
	}
	if in.Contrasena != nil {
		set["contrasena_"] = *in.Contrasena
	}
	if in.Correo != nil {
		set["correo"] = *in.Correo
	}
	if in.FechaRegistro != nil {
		set["fecha_registro"] = *in.FechaRegistro
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc userDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return users.User{}, users.ErrNotFound
	}
	if err != nil {
		return users.User{}, err
	}
	return doc.toDomain(), nil
}

func (r *usersRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return users.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return users.ErrNotFound
	}
	return nil
}
