package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"feedback-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.mongodb.org/mongo-driver/v2/bson"
)

// Columns are json, not jsonb: json keeps the submitted key order.
const createFeedbackTable = `
CREATE TABLE IF NOT EXISTS feedbacks (
	id               CHAR(24) PRIMARY KEY,
	component_data   JSON NOT NULL,
	right_panel_data JSON,
	created_at       TIMESTAMPTZ NOT NULL DEFAULT now()
)`

const feedbackColumns = `id, component_data::text, right_panel_data::text`

// PostgresFeedbackRepo stores feedback rows in PostgreSQL. Identifiers are
// ObjectID hex strings so clients see the same id format as with MongoDB.
type PostgresFeedbackRepo struct {
	pool *pgxpool.Pool
}

func NewPostgresFeedbackRepo(pool *pgxpool.Pool) *PostgresFeedbackRepo {
	return &PostgresFeedbackRepo{pool: pool}
}

// EnsureSchema creates the feedbacks table when it does not exist yet.
func (r *PostgresFeedbackRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.pool.Exec(ctx, createFeedbackTable)
	return infraErr("ensure schema", err)
}

func (r *PostgresFeedbackRepo) List(ctx context.Context) ([]models.Feedback, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+feedbackColumns+` FROM feedbacks ORDER BY created_at, id`)
	if err != nil {
		return nil, infraErr("list", err)
	}
	defer rows.Close()

	out := []models.Feedback{}
	for rows.Next() {
		f, err := scanFeedback(rows)
		if err != nil {
			return nil, infraErr("list", err)
		}
		out = append(out, *f)
	}
	if err := rows.Err(); err != nil {
		return nil, infraErr("list", err)
	}
	return out, nil
}

func (r *PostgresFeedbackRepo) Create(ctx context.Context, payload models.FeedbackPayload) (*models.Feedback, error) {
	feedback := models.NewFeedback(bson.NewObjectID(), payload)

	component, err := json.Marshal(feedback.ComponentData)
	if err != nil {
		return nil, infraErr("create", err)
	}
	var panel *string
	if feedback.RightPanelData != nil {
		b, err := json.Marshal(*feedback.RightPanelData)
		if err != nil {
			return nil, infraErr("create", err)
		}
		s := string(b)
		panel = &s
	}

	_, err = r.pool.Exec(ctx,
		`INSERT INTO feedbacks (id, component_data, right_panel_data) VALUES ($1, $2::json, $3::json)`,
		feedback.ID.Hex(), string(component), panel,
	)
	if err != nil {
		return nil, infraErr("create", err)
	}
	return &feedback, nil
}

func (r *PostgresFeedbackRepo) UpdateByID(ctx context.Context, id string, payload models.FeedbackPayload) (*models.Feedback, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, infraErr("update", ErrInvalidID)
	}

	args := []interface{}{oid.Hex()}
	var sets []string
	for _, field := range []struct {
		column string
		value  *models.Value
	}{
		{"component_data", payload.ComponentData},
		{"right_panel_data", payload.RightPanelData},
	} {
		if field.value == nil {
			continue
		}
		b, err := json.Marshal(*field.value)
		if err != nil {
			return nil, infraErr("update", err)
		}
		args = append(args, string(b))
		sets = append(sets, fmt.Sprintf("%s = $%d::json", field.column, len(args)))
	}

	var query string
	if len(sets) == 0 {
		query = `SELECT ` + feedbackColumns + ` FROM feedbacks WHERE id = $1`
	} else {
		query = `UPDATE feedbacks SET ` + strings.Join(sets, ", ") + ` WHERE id = $1 RETURNING ` + feedbackColumns
	}

	f, err := scanFeedback(r.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, infraErr("update", err)
	}
	return f, nil
}

func (r *PostgresFeedbackRepo) DeleteByID(ctx context.Context, id string) (*models.Feedback, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, infraErr("delete", ErrInvalidID)
	}

	f, err := scanFeedback(r.pool.QueryRow(ctx,
		`DELETE FROM feedbacks WHERE id = $1 RETURNING `+feedbackColumns, oid.Hex()))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, infraErr("delete", err)
	}
	return f, nil
}

func (r *PostgresFeedbackRepo) Ping(ctx context.Context) error {
	return infraErr("ping", r.pool.Ping(ctx))
}

func scanFeedback(row pgx.Row) (*models.Feedback, error) {
	var (
		id        string
		component string
		panel     *string
	)
	if err := row.Scan(&id, &component, &panel); err != nil {
		return nil, err
	}

	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("stored id %q: %w", id, err)
	}
	f := &models.Feedback{ID: oid}
	if f.ComponentData, err = models.ParseValue([]byte(component)); err != nil {
		return nil, fmt.Errorf("component_data of %s: %w", id, err)
	}
	if panel != nil {
		v, err := models.ParseValue([]byte(*panel))
		if err != nil {
			return nil, fmt.Errorf("right_panel_data of %s: %w", id, err)
		}
		f.RightPanelData = &v
	}
	return f, nil
}
