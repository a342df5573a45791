package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlink-api/internal/domain/usertypes"
)

type userTypesRepo struct {
	col *mongo.Collection
}

func NewUserTypesRepo(db *mongo.Database) usertypes.Repository {
	return &userTypesRepo{col: db.Collection("tipos_usuarios")}
}

type userTypeDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Nombre      string             `bson:"nombre"`
	Descripcion string             `bson:"descripcion"`
}

func (d userTypeDoc) toDomain() usertypes.UserType {
	return usertypes.UserType{
		ID:          d.ID.Hex(),
		Nombre:      d.Nombre,
		Descripcion: d.Descripcion,
	}
}

func (r *userTypesRepo) Create(ctx context.Context, t usertypes.UserType) (usertypes.UserType, error) {
	doc := userTypeDoc{
		ID:          primitive.NewObjectID(),
		Nombre:      t.Nombre,
		Descripcion: t.Descripcion,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return usertypes.UserType{}, usertypes.ErrDuplicateName
		}
		return usertypes.UserType{}, err
	}
	return doc.toDomain(), nil
}

func (r *userTypesRepo) List(ctx context.Context, skip, limit int) ([]usertypes.UserType, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]usertypes.UserType, 0, limit)
	for cur.Next(ctx) {
		var doc userTypeDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *userTypesRepo) GetByID(ctx context.Context, id string) (usertypes.UserType, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usertypes.UserType{}, usertypes.ErrInvalidID
	}

	var doc userTypeDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return usertypes.UserType{}, usertypes.ErrNotFound
	}
	if err != nil {
		return usertypes.UserType{}, err
	}
	return doc.toDomain(), nil
}

func (r *userTypesRepo) Update(ctx context.Context, id string, in usertypes.UpdateInput) (usertypes.UserType, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usertypes.UserType{}, usertypes.ErrInvalidID
	}

	set := bson.M{}
	if in.Nombre != nil {
		set["nombre"] = *in.Nombre
	}
	if in.Descripcion != nil {
		set["descripcion"] = *in.Descripcion
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc userTypeDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return usertypes.UserType{}, usertypes.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return usertypes.UserType{}, usertypes.ErrDuplicateName
	}
	if err != nil {
		return usertypes.UserType{}, err
	}
	return doc.toDomain(), nil
}

func (r *userTypesRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return usertypes.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return usertypes.ErrNotFound
	}
	return nil
}
