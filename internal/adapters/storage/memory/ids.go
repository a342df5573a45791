package memory

import "go.mongodb.org/mongo-driver/bson/primitive"

// Los repos in-memory imitan la semántica de Mongo: generan ids con forma
// de ObjectID y rechazan como inválido todo id que no sea hex de 24.
func newID() string {
	return primitive.NewObjectID().Hex()
}

func validID(id string) bool {
	_, err := primitive.ObjectIDFromHex(id)
	return err == nil
}
