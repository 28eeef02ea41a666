package repository

import (
	"context"
	"errors"
	"fmt"

	"feedback-backend/internal/models"
)

var (
	// ErrNotFound means no feedback document matched the identifier.
	ErrNotFound = errors.New("feedback not found")
	// ErrInvalidID means the identifier is not a 24 character hex ObjectID.
	ErrInvalidID = errors.New("invalid feedback id")
)

// FeedbackStore is the persistence contract the HTTP handlers use. Every error
// other than ErrNotFound is an *InfrastructureError.
type FeedbackStore interface {
	List(ctx context.Context) ([]models.Feedback, error)
	Create(ctx context.Context, payload models.FeedbackPayload) (*models.Feedback, error)
	UpdateByID(ctx context.Context, id string, payload models.FeedbackPayload) (*models.Feedback, error)
	DeleteByID(ctx context.Context, id string) (*models.Feedback, error)
	Ping(ctx context.Context) error
}

// InfrastructureError wraps a connectivity, driver or validation failure.
type InfrastructureError struct {
	Op  string
	Err error
}

func (e *InfrastructureError) Error() string {
	return fmt.Sprintf("feedback %s: %v", e.Op, e.Err)
}

func (e *InfrastructureError) Unwrap() error { return e.Err }

func infraErr(op string, err error) error {
	if err == nil {
		return nil
	}
	return &InfrastructureError{Op: op, Err: err}
}
