package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/kubev2v/migration-sizer/internal/models"
	srvErrors "github.com/kubev2v/migration-sizer/pkg/errors"
)

// ScenarioStore persists sizing runs as JSON documents.
type ScenarioStore struct {
	db QueryInterceptor
}

func NewScenarioStore(db QueryInterceptor) *ScenarioStore {
	return &ScenarioStore{db: db}
}

func (s *ScenarioStore) Create(ctx context.Context, scenario models.Scenario) error {
	data, err := json.Marshal(scenario)
	if err != nil {
		return err
	}

	query, args, err := sq.Insert("scenarios").
		Columns("id", "profile", "scope", "data", "created_at").
		Values(scenario.ID.String(), scenario.Result.Profile.Name, scenario.Scope, string(data), scenario.CreatedAt).
		ToSql()
	if err != nil {
		return err
	}

	_, err = s.db.ExecContext(ctx, query, args...)
	return err
}

func (s *ScenarioStore) Get(ctx context.Context, id uuid.UUID) (*models.Scenario, error) {
	query, args, err := sq.Select("data").
		From("scenarios").
		Where(sq.Eq{"id": id.String()}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var data string
	err = s.db.QueryRowContext(ctx, query, args...).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, srvErrors.NewScenarioNotFoundError(id.String())
	}
	if err != nil {
		return nil, err
	}

	var scenario models.Scenario
	if err := json.Unmarshal([]byte(data), &scenario); err != nil {
		return nil, err
	}
	return &scenario, nil
}

// List returns scenarios newest first.
func (s *ScenarioStore) List(ctx context.Context) ([]models.Scenario, error) {
	query, args, err := sq.Select("data").
		From("scenarios").
		OrderBy("created_at DESC", "id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	scenarios := []models.Scenario{}
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var scenario models.Scenario
		if err := json.Unmarshal([]byte(data), &scenario); err != nil {
			return nil, err
		}
		scenarios = append(scenarios, scenario)
	}

	return scenarios, rows.Err()
}
