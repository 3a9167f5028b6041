package queue

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/siddharthaBojanki/greenCart/pkg/logger"
)

// FailedJobRecord is the Mongo document written for each exhausted job, so
// failures can be inspected and replayed by hand.
type FailedJobRecord struct {
	Job      string    `bson:"job"`
	Payload  string    `bson:"payload"`
	Attempts int       `bson:"attempts"`
	Error    string    `bson:"error"`
	FailedAt time.Time `bson:"failedAt"`
}

// MongoFailedSink persists exhausted jobs to a collection.
type MongoFailedSink struct {
	coll *mongo.Collection
}

// NewMongoFailedSink records failures into coll (usually "failed_jobs").
func NewMongoFailedSink(coll *mongo.Collection) *MongoFailedSink {
	return &MongoFailedSink{coll: coll}
}

func (s *MongoFailedSink) RecordFailure(name string, payload []byte, attempts int, jobErr error) {
	errMsg := ""
	if jobErr != nil {
		errMsg = jobErr.Error()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := s.coll.InsertOne(ctx, FailedJobRecord{
		Job:      name,
		Payload:  string(payload),
		Attempts: attempts,
		Error:    errMsg,
		FailedAt: time.Now().UTC(),
	})
	if err != nil {
		logger.Error("queue: persist failed job", "job", name, "error", err)
	}
}
