package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"petlink-api/internal/domain/pets"
)

type petsRepo struct {
	col *mongo.Collection
}

func NewPetsRepo(db *mongo.Database) pets.Repository {
	return &petsRepo{col: db.Collection("mascotas")}
}

type petDoc struct {
	ID            primitive.ObjectID `bson:"_id"`
	Serial        string             `bson:"serial"`
	NombreMascota string             `bson:"nombre_mascota"`
	RazaPerro     string             `bson:"raza_perro"`
	EdadPerro     int                `bson:"edad_perro"`
}

func (d petDoc) toDomain() pets.Pet {
	return pets.Pet{
		ID:            d.ID.Hex(),
		Serial:        d.Serial,
		NombreMascota: d.NombreMascota,
		RazaPerro:     d.RazaPerro,
		EdadPerro:     d.EdadPerro,
	}
}

func (r *petsRepo) Create(ctx context.Context, p pets.Pet) (pets.Pet, error) {
	doc := petDoc{
		ID:            primitive.NewObjectID(),
		Serial:        p.Serial,
		NombreMascota: p.NombreMascota,
		RazaPerro:     p.RazaPerro,
		EdadPerro:     p.EdadPerro,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return pets.Pet{}, pets.ErrDuplicateSerial
		}
		return pets.Pet{}, err
	}
	return doc.toDomain(), nil
}

func (r *petsRepo) List(ctx context.Context, skip, limit int) ([]pets.Pet, int64, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}

	cur, err := r.col.Find(ctx, bson.M{}, listOptions(skip, limit))
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	out := make([]pets.Pet, 0, limit)
	for cur.Next(ctx) {
		var doc petDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		out = append(out, doc.toDomain())
	}
	return out, total, cur.Err()
}

func (r *petsRepo) GetByID(ctx context.Context, id string) (pets.Pet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return pets.Pet{}, pets.ErrInvalidID
	}

	var doc petDoc
	err = r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return doc.toDomain(), nil
}

func (r *petsRepo) Update(ctx context.Context, id string, in pets.UpdateInput) (pets.Pet, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return pets.Pet{}, pets.ErrInvalidID
	}

	set := bson.M{}
	if in.Serial != nil {
		set["serial"] = *in.Serial
	}
	if in.NombreMascota != nil {
		set["nombre_mascota"] = *in.NombreMascota
	}
	if in.RazaPerro != nil {
		set["raza_perro"] = *in.RazaPerro
	}
	if in.EdadPerro != nil {
		set["edad_perro"] = *in.EdadPerro
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	var doc petDoc
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return pets.Pet{}, pets.ErrNotFound
	}
	if mongo.IsDuplicateKeyError(err) {
		return pets.Pet{}, pets.ErrDuplicateSerial
	}
	if err != nil {
		return pets.Pet{}, err
	}
	return doc.toDomain(), nil
}

func (r *petsRepo) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return pets.ErrInvalidID
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return pets.ErrNotFound
	}
	return nil
}
