package models

// SequenceCounter is the persisted next-identifier state used by the mongo
// backend, one document per counter name. Value is the last identifier that
// was issued; a fresh counter starts at 0 so the first increment yields 1.
type SequenceCounter struct {
	Name  string `bson:"name"`
	Value int64  `bson:"value"`
}
