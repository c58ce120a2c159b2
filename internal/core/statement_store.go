package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"ledgerdocs/internal/db"
)

// StatementStore persists generated financial statements. Each generation
// inserts a fresh snapshot; readers fetch the latest per type and period.
type StatementStore struct {
	db db.Querier
}

func NewStatementStore(q db.Querier) *StatementStore {
	return &StatementStore{db: q}
}

const statementColumns = `id, tenant_id, statement_type, period, data, is_valid, generated_by, generated_at`

// Insert stores a statement snapshot and returns it with its assigned id.
func (s *StatementStore) Insert(ctx context.Context, stmt *FinancialStatement) (*FinancialStatement, error) {
	row := s.db.QueryRow(ctx, `
		INSERT INTO financial_statements (tenant_id, statement_type, period, data, is_valid, generated_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+statementColumns,
		stmt.TenantID, stmt.Type, stmt.Period, []byte(stmt.Data), stmt.IsValid, stmt.GeneratedBy,
	)
	return scanStatement(row)
}

// Latest returns the most recently generated statement of the given type and
// period, or nil when none has been generated.
func (s *StatementStore) Latest(ctx context.Context, tenantID uuid.UUID, statementType StatementType, period string) (*FinancialStatement, error) {
	row := s.db.QueryRow(ctx, `
		SELECT `+statementColumns+` FROM financial_statements
		WHERE tenant_id = $1 AND statement_type = $2 AND period = $3
		ORDER BY generated_at DESC, id DESC
		LIMIT 1`,
		tenantID, statementType, period,
	)
	stmt, err := scanStatement(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return stmt, err
}

func scanStatement(row pgx.Row) (*FinancialStatement, error) {
	var stmt FinancialStatement
	var data []byte
	err := row.Scan(
		&stmt.ID, &stmt.TenantID, &stmt.Type, &stmt.Period, &data,
		&stmt.IsValid, &stmt.GeneratedBy, &stmt.GeneratedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan financial statement: %w", err)
	}
	stmt.Data = data
	return &stmt, nil
}
