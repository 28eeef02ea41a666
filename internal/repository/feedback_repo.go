package repository

import (
	"context"
	"errors"

	"feedback-backend/internal/models"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

const feedbackCollection = "feedbacks"

// FeedbackRepo stores feedback in a MongoDB collection.
type FeedbackRepo struct {
	collection *mongo.Collection
}

func NewFeedbackRepo(db *mongo.Database) *FeedbackRepo {
	return &FeedbackRepo{
		collection: db.Collection(feedbackCollection),
	}
}

// feedbackDocument is the stored shape. Raw values keep "absent" apart from
// "null" and preserve embedded key order. A missing componentData reads as [].
type feedbackDocument struct {
	ID             bson.ObjectID `bson:"_id"`
	ComponentData  bson.RawValue `bson:"componentData"`
	RightPanelData bson.RawValue `bson:"rightPanelData"`
}

func (d *feedbackDocument) toModel() (*models.Feedback, error) {
	f := &models.Feedback{ID: d.ID, ComponentData: models.Array()}
	if d.ComponentData.Type != 0 {
		v, err := valueFromRaw(d.ComponentData)
		if err != nil {
			return nil, err
		}
		f.ComponentData = v
	}
	if d.RightPanelData.Type != 0 {
		v, err := valueFromRaw(d.RightPanelData)
		if err != nil {
			return nil, err
		}
		f.RightPanelData = &v
	}
	return f, nil
}

func (r *FeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	cursor, err := r.collection.Find(ctx, bson.D{})
	if err != nil {
		return nil, infraErr("list", err)
	}
	defer cursor.Close(ctx)

	var docs []feedbackDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, infraErr("list", err)
	}

	out := make([]models.Feedback, 0, len(docs))
	for i := range docs {
		f, err := docs[i].toModel()
		if err != nil {
			return nil, infraErr("list", err)
		}
		out = append(out, *f)
	}
	return out, nil
}

func (r *FeedbackRepo) Create(ctx context.Context, payload models.FeedbackPayload) (*models.Feedback, error) {
	feedback := models.NewFeedback(bson.NewObjectID(), payload)

	doc := bson.D{{Key: "_id", Value: feedback.ID}}
	fields, err := setFields(models.FeedbackPayload{
		ComponentData:  &feedback.ComponentData,
		RightPanelData: feedback.RightPanelData,
	})
	if err != nil {
		return nil, infraErr("create", err)
	}
	doc = append(doc, fields...)

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return nil, infraErr("create", err)
	}
	return &feedback, nil
}

// UpdateByID applies the payload with $set, so fields missing from the
// payload keep their stored values.
func (r *FeedbackRepo) UpdateByID(ctx context.Context, id string, payload models.FeedbackPayload) (*models.Feedback, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, infraErr("update", ErrInvalidID)
	}

	var doc feedbackDocument
	if payload.IsEmpty() {
		err = r.collection.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	} else {
		fields, ferr := setFields(payload)
		if ferr != nil {
			return nil, infraErr("update", ferr)
		}
		opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
		err = r.collection.FindOneAndUpdate(ctx,
			bson.D{{Key: "_id", Value: oid}},
			bson.D{{Key: "$set", Value: fields}},
			opts,
		).Decode(&doc)
	}
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, infraErr("update", err)
	}

	f, err := doc.toModel()
	if err != nil {
		return nil, infraErr("update", err)
	}
	return f, nil
}

func (r *FeedbackRepo) DeleteByID(ctx context.Context, id string) (*models.Feedback, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, infraErr("delete", ErrInvalidID)
	}

	var doc feedbackDocument
	err = r.collection.FindOneAndDelete(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, infraErr("delete", err)
	}

	f, err := doc.toModel()
	if err != nil {
		return nil, infraErr("delete", err)
	}
	return f, nil
}

func (r *FeedbackRepo) Ping(ctx context.Context) error {
	return infraErr("ping", r.collection.Database().Client().Ping(ctx, nil))
}

func setFields(p models.FeedbackPayload) (bson.D, error) {
	var fields bson.D
	if p.ComponentData != nil {
		v, err := valueToBSON(*p.ComponentData)
		if err != nil {
			return nil, err
		}
		fields = append(fields, bson.E{Key: "componentData", Value: v})
	}
	if p.RightPanelData != nil {
		v, err := valueToBSON(*p.RightPanelData)
		if err != nil {
			return nil, err
		}
		fields = append(fields, bson.E{Key: "rightPanelData", Value: v})
	}
	return fields, nil
}
