// Package memory provides process-local implementations of the repository
// ports. They back the "memory" storage driver and the test suites; every
// mutation on a single store is serialized by the store's mutex, so the
// quantity guard in AdjustQuantity holds under concurrent callers.
package memory

import "go.mongodb.org/mongo-driver/bson/primitive"

// newID returns an id in the same hex ObjectID format the Mongo stores use,
// so clients cannot tell the drivers apart.
func newID() string {
	return primitive.NewObjectID().Hex()
}
