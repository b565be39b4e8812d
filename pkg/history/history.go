// Package history keeps a record of every announcement request in MongoDB
// and Elasticsearch, whichever of them is configured.
package history

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"
	"github.com/travigo/expolly/pkg/database"
	"github.com/travigo/expolly/pkg/elastic_client"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const indexPrefix = "expolly-announcements"

type Record struct {
	Timestamp time.Time `bson:"timestamp" json:"Timestamp"`

	Origin      string `bson:"origin" json:"Origin"`
	Destination string `bson:"destination" json:"Destination"`

	Outcome    string   `bson:"outcome" json:"Outcome"`
	ErrorCode  string   `bson:"errorcode,omitempty" json:"ErrorCode,omitempty"`
	Candidates []string `bson:"candidates,omitempty" json:"Candidates,omitempty"`

	Narrative string `bson:"narrative,omitempty" json:"Narrative,omitempty"`
	AudioURL  string `bson:"audiourl,omitempty" json:"AudioURL,omitempty"`
}

type inserter interface {
	InsertOne(ctx context.Context, document interface{}, opts ...*options.InsertOneOptions) (*mongo.InsertOneResult, error)
}

type Recorder struct {
	collection inserter
	index      func(indexName string, document io.ReadSeeker)
}

// NewRecorder uses whatever database and elastic_client connected. It
// returns nil when neither did.
func NewRecorder() *Recorder {
	recorder := &Recorder{}

	if database.Connected() {
		recorder.collection = database.GetCollection(database.AnnouncementsCollection)
	}
	if elastic_client.Connected() {
		recorder.index = elastic_client.IndexRequest
	}

	if recorder.collection == nil && recorder.index == nil {
		return nil
	}

	return recorder
}

func (r *Recorder) Record(ctx context.Context, record Record) error {
	p := pool.New().WithErrors()

	if r.collection != nil {
		p.Go(func() error {
			_, err := r.collection.InsertOne(ctx, record)
			return err
		})
	}

	if r.index != nil {
		p.Go(func() error {
			recordJSON, err := json.Marshal(record)
			if err != nil {
				return err
			}

			r.index(IndexName(record.Timestamp), bytes.NewReader(recordJSON))
			return nil
		})
	}

	err := p.Wait()
	if err != nil {
		log.Error().Err(err).Str("outcome", record.Outcome).Msg("Failed to record announcement")
	}

	return err
}

// IndexName is the monthly Elasticsearch index a record is written to.
func IndexName(timestamp time.Time) string {
	return fmt.Sprintf("%s-%s", indexPrefix, timestamp.Format("2006-01"))
}
