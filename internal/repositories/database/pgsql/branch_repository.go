package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	"github.com/staffdesk/ops_portal_app/internal/models"
	"github.com/staffdesk/ops_portal_app/internal/utils/mapping"
)

type PgxBranchRepository struct {
	BaseRepository
}

// newPgxBranchRepository creates a new repository for branch data.
func newPgxBranchRepository(pool *pgxpool.Pool) portsrepo.BranchRepositoryFacade {
	return &PgxBranchRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxBranchRepository implements portsrepo.BranchRepositoryFacade
var _ portsrepo.BranchRepositoryFacade = (*PgxBranchRepository)(nil)

const branchColumns = `
	branch_id, name, code, address, auto_approve, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanBranch(row pgx.Row) (models.Branch, error) {
	var b models.Branch
	err := row.Scan(
		&b.BranchID,
		&b.Name,
		&b.Code,
		&b.Address,
		&b.AutoApprove,
		&b.IsActive,
		&b.CreatedAt,
		&b.CreatedBy,
		&b.LastUpdatedAt,
		&b.LastUpdatedBy,
	)
	return b, err
}

func toDomainBranch(m models.Branch) domain.Branch {
	return domain.Branch{
		BranchID:    m.BranchID,
		Name:        m.Name,
		Code:        m.Code,
		Address:     m.Address,
		AutoApprove: m.AutoApprove,
		IsActive:    m.IsActive,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}
}

// SaveBranch inserts a new branch.
func (r *PgxBranchRepository) SaveBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		INSERT INTO branches (
			branch_id, name, code, address, auto_approve, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		branch.BranchID,
		branch.Name,
		branch.Code,
		branch.Address,
		branch.AutoApprove,
		branch.IsActive,
		branch.CreatedAt,
		branch.CreatedBy,
		branch.LastUpdatedAt,
		branch.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "branch code already exists: "+branch.Code, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert branch "+branch.Code, err)
	}
	return nil
}

// FindBranchByCode retrieves a branch by its short code.
func (r *PgxBranchRepository) FindBranchByCode(ctx context.Context, code string) (*domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches WHERE code = $1;`

	modelBranch, err := scanBranch(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find branch by code "+code, err)
	}

	domainBranch := toDomainBranch(modelBranch)
	return &domainBranch, nil
}

// ListBranches retrieves all branches, optionally including inactive ones.
func (r *PgxBranchRepository) ListBranches(ctx context.Context, includeInactive bool) ([]domain.Branch, error) {
	query := `SELECT ` + branchColumns + ` FROM branches`
	if !includeInactive {
		query += ` WHERE is_active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query branches", err)
	}
	defer rows.Close()

	branches := []domain.Branch{}
	for rows.Next() {
		b, scanErr := scanBranch(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan branch row", scanErr)
		}
		branches = append(branches, toDomainBranch(b))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating branch rows", err)
	}
	return branches, nil
}

// UpdateBranch updates name, address, auto-approve and active flags.
func (r *PgxBranchRepository) UpdateBranch(ctx context.Context, branch domain.Branch) error {
	query := `
		UPDATE branches
		SET name = $2, address = $3, auto_approve = $4, is_active = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE code = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		branch.Code,
		branch.Name,
		branch.Address,
		branch.AutoApprove,
		branch.IsActive,
		branch.LastUpdatedAt,
		branch.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update branch "+branch.Code, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
