package pgsql

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	"github.com/staffdesk/ops_portal_app/internal/models"
	"github.com/staffdesk/ops_portal_app/internal/utils/mapping"
)

type PgxStaffRepository struct {
	BaseRepository
}

// newPgxStaffRepository creates a new repository for staff data.
func newPgxStaffRepository(pool *pgxpool.Pool) portsrepo.StaffRepositoryFacade {
	return &PgxStaffRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxStaffRepository implements portsrepo.StaffRepositoryFacade
var _ portsrepo.StaffRepositoryFacade = (*PgxStaffRepository)(nil)

const staffColumns = `
	staff_id, name, email, phone, branch, role, password_hash,
	refresh_token_hash, refresh_token_expiry_time, last_viewed_at, is_active,
	created_at, created_by, last_updated_at, last_updated_by`

func scanStaff(row pgx.Row) (models.Staff, error) {
	var s models.Staff
	err := row.Scan(
		&s.StaffID,
		&s.Name,
		&s.Email,
		&s.Phone,
		&s.Branch,
		&s.Role,
		&s.PasswordHash,
		&s.RefreshTokenHash,
		&s.RefreshTokenExpiryTime,
		&s.LastViewedAt,
		&s.IsActive,
		&s.CreatedAt,
		&s.CreatedBy,
		&s.LastUpdatedAt,
		&s.LastUpdatedBy,
	)
	return s, err
}

// SaveStaff inserts a new staff member.
func (r *PgxStaffRepository) SaveStaff(ctx context.Context, staff domain.Staff) error {
	modelStaff := mapping.ToModelStaff(staff)
	query := `
		INSERT INTO staff (
			staff_id, name, email, phone, branch, role, password_hash,
			refresh_token_hash, refresh_token_expiry_time, last_viewed_at, is_active,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelStaff.StaffID,
		modelStaff.Name,
		modelStaff.Email,
		modelStaff.Phone,
		modelStaff.Branch,
		modelStaff.Role,
		modelStaff.PasswordHash,
		modelStaff.RefreshTokenHash,
		modelStaff.RefreshTokenExpiryTime,
		modelStaff.LastViewedAt,
		modelStaff.IsActive,
		modelStaff.CreatedAt,
		modelStaff.CreatedBy,
		modelStaff.LastUpdatedAt,
		modelStaff.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "staff email already registered: "+modelStaff.Email, apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert staff "+modelStaff.StaffID, err)
	}
	return nil
}

// FindStaffByID retrieves a staff member by ID.
func (r *PgxStaffRepository) FindStaffByID(ctx context.Context, staffID string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE staff_id = $1;`

	modelStaff, err := scanStaff(r.Pool.QueryRow(ctx, query, staffID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find staff by ID "+staffID, err)
	}

	domainStaff := mapping.ToDomainStaff(modelStaff)
	return &domainStaff, nil
}

// FindStaffByEmail retrieves a staff member by email.
func (r *PgxStaffRepository) FindStaffByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE email = $1;`

	modelStaff, err := scanStaff(r.Pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find staff by email", err)
	}

	domainStaff := mapping.ToDomainStaff(modelStaff)
	return &domainStaff, nil
}

// ListStaffByBranch retrieves active staff of a branch.
func (r *PgxStaffRepository) ListStaffByBranch(ctx context.Context, branch string) ([]domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE branch = $1 AND is_active = TRUE ORDER BY name;`
	return r.queryStaffList(ctx, query, branch)
}

// ListAdmins retrieves all active staff with the admin role.
func (r *PgxStaffRepository) ListAdmins(ctx context.Context) ([]domain.Staff, error) {
	query := `SELECT ` + staffColumns + ` FROM staff WHERE role = 'ADMIN' AND is_active = TRUE ORDER BY name;`
	return r.queryStaffList(ctx, query)
}

func (r *PgxStaffRepository) queryStaffList(ctx context.Context, query string, args ...interface{}) ([]domain.Staff, error) {
	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query staff", err)
	}
	defer rows.Close()

	staffList := []domain.Staff{}
	for rows.Next() {
		s, scanErr := scanStaff(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan staff row", scanErr)
		}
		staffList = append(staffList, mapping.ToDomainStaff(s))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating staff rows", err)
	}
	return staffList, nil
}

// UpdateStaff updates profile fields of a staff member.
func (r *PgxStaffRepository) UpdateStaff(ctx context.Context, staff domain.Staff) error {
	modelStaff := mapping.ToModelStaff(staff)
	query := `
		UPDATE staff
		SET name = $2, phone = $3, branch = $4, role = $5, password_hash = $6,
		    last_updated_at = $7, last_updated_by = $8
		WHERE staff_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelStaff.StaffID,
		modelStaff.Name,
		modelStaff.Phone,
		modelStaff.Branch,
		modelStaff.Role,
		modelStaff.PasswordHash,
		modelStaff.LastUpdatedAt,
		modelStaff.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update staff "+modelStaff.StaffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateRefreshToken stores the hashed refresh token and its expiry for a staff member.
func (r *PgxStaffRepository) UpdateRefreshToken(ctx context.Context, staffID string, tokenHash string, expiresAt *time.Time) error {
	query := `UPDATE staff SET refresh_token_hash = $2, refresh_token_expiry_time = $3 WHERE staff_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, staffID, tokenHash, expiresAt)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update refresh token for staff "+staffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UpdateLastViewedAt moves the notification read watermark of a staff member forward.
func (r *PgxStaffRepository) UpdateLastViewedAt(ctx context.Context, staffID string, viewedAt time.Time) error {
	query := `
		UPDATE staff
		SET last_viewed_at = $2
		WHERE staff_id = $1 AND (last_viewed_at IS NULL OR last_viewed_at < $2);
	`
	// RowsAffected of zero is fine here: the watermark never moves backwards.
	if _, err := r.Pool.Exec(ctx, query, staffID, viewedAt); err != nil {
		return apperrors.NewAppError(500, "failed to update last viewed time for staff "+staffID, err)
	}
	return nil
}

// DeactivateStaff marks a staff member inactive.
func (r *PgxStaffRepository) DeactivateStaff(ctx context.Context, staffID string, updatedBy string, updatedAt time.Time) error {
	query := `UPDATE staff SET is_active = FALSE, last_updated_at = $2, last_updated_by = $3 WHERE staff_id = $1;`

	cmdTag, err := r.Pool.Exec(ctx, query, staffID, updatedAt, updatedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to deactivate staff "+staffID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
