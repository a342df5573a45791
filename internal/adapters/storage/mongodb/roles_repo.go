package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlink-api/internal/domain/roles"
)

type rolesRepo struct {
	col *mongo.Collection
}

func NewRolesRepo(db *mongo.Database) roles.Repository {
	return &rolesRepo{col: db.Collection("roles")}
}

type roleDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Nombre      string             `bson:"nombre"`
	Descripcion string             `bson:"descripcion"`
	Nivel       int                `bson:"nivel"`
}

func (d roleDoc) toDomain() roles.Role {
	return roles.Role{
		ID:          d.ID.Hex(),
		Nombre:      d.Nombre,
		Descripcion: d.Descripcion,
		Nivel:       d.Nivel,
	}
}

func (r *rolesRepo) Create(ctx context.Context, rol roles.Role) (roles.Role, error) {
	doc := roleDoc{
		ID:          primitive.NewObjectID(),
		Nombre:      rol.Nombre,
		Descripcion: rol.Descripcion,
		Nivel:       rol.Nivel,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return roles.Role{}, roles.ErrDuplicateName
		}
		return roles.Role{}, err
	}
	return doc.toDomain(), nil
}

func (r *rolesRepo) List(ctx context.Context, skip, limit int) ([]roles.Role, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]roles.Role, 0, limit)
	for cur.Next(ctx) {
		var doc roleDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *rolesRepo) GetByID(ctx context.Context, id string) (roles.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return roles.Role{}, roles.ErrInvalidID
	}

	var doc roleDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return roles.Role{}, roles.ErrNotFound
	}
	if err != nil {
		return roles.Role{}, err
	}
	return doc.toDomain(), nil
}

func (r *rolesRepo) GetByName(ctx context.Context, nombre string) (roles.Role, error) {
	var doc roleDoc
	err := r.col.FindOne(ctx, bson.M{"nombre": nombre}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return roles.Role{}, roles.ErrNotFound
	}
	if err != nil {
		return roles.Role{}, err
	}
	return doc.toDomain(), nil
}

func (r *rolesRepo) Update(ctx context.Context, id string, in roles.UpdateInput) (roles.Role, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return roles.Role{}, roles.ErrInvalidID
	}

	set := bson.M{}
	if in.Nombre != nil {
		set["nombre"] = *in.Nombre
	}
	if in.Descripcion != nil {
		set["descripcion"] = *in.Descripcion
	}
	if in.Nivel != nil {
		set["nivel"] = *in.Nivel
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc roleDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return roles.Role{}, roles.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return roles.Role{}, roles.ErrDuplicateName
	}
	if err != nil {
		return roles.Role{}, err
	}
	return doc.toDomain(), nil
}

func (r *rolesRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return roles.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return roles.ErrNotFound
	}
	return nil
}
