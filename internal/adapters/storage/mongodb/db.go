// Package mongodb implementa los repositorios de dominio sobre MongoDB.
//
// Cada colección usa ObjectID como clave primaria y los listados se
// ordenan por _id descendente (lo más reciente primero).
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// Open conecta con el servidor y verifica la conexión con un ping.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("conectar a mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		return nil, fmt.Errorf("ping a mongodb: %w", err)
	}
	return client, nil
}

// EnsureIndexes crea los índices únicos que respaldan las reglas de
// unicidad del dominio. Es idempotente.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	unique := options.Index().SetUnique(true)

	indexes := []struct {
		collection string
		field      string
	}{
		{"roles", "nombre"},
		{"tipos_usuarios", "nombre"},
		{"mascotas", "serial"},
		{"dispositivos", "serial"},
	}

	for _, ix := range indexes {
		_, err := db.Collection(ix.collection).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys:    bson.D{{Key: ix.field, Value: 1}},
			Options: unique,
		})
		if err != nil {
			return fmt.Errorf("crear índice %s.%s: %w", ix.collection, ix.field, err)
		}
	}
	return nil
}

// listOptions arma las opciones de paginación comunes a todos los listados.
func listOptions(skip, limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: -1}}).
		SetSkip(int64(skip)).
		SetLimit(int64(limit))
}
