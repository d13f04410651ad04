package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/staffdesk/ops_portal_app/internal/apperrors"
	"github.com/staffdesk/ops_portal_app/internal/core/domain"
	portsrepo "github.com/staffdesk/ops_portal_app/internal/core/ports/repositories"
	"github.com/staffdesk/ops_portal_app/internal/models"
	"github.com/staffdesk/ops_portal_app/internal/utils/mapping"
	"github.com/staffdesk/ops_portal_app/internal/utils/pagination"
)

type PgxRequestRepository struct {
	BaseRepository
}

// newPgxRequestRepository creates a new repository for service request data.
func newPgxRequestRepository(pool *pgxpool.Pool) portsrepo.RequestRepositoryFacade {
	return &PgxRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxRequestRepository implements portsrepo.RequestRepositoryFacade
var _ portsrepo.RequestRepositoryFacade = (*PgxRequestRepository)(nil)

const requestColumns = `
	request_id, request_type, branch, staff_id, subject, description, quantity,
	estimated_cost, status, reviewed_by, reviewed_at, review_notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanServiceRequest(row pgx.Row) (models.ServiceRequest, error) {
	var req models.ServiceRequest
	err := row.Scan(
		&req.RequestID,
		&req.RequestType,
		&req.Branch,
		&req.StaffID,
		&req.Subject,
		&req.Description,
		&req.Quantity,
		&req.EstimatedCost,
		&req.Status,
		&req.ReviewedBy,
		&req.ReviewedAt,
		&req.ReviewNotes,
		&req.CreatedAt,
		&req.CreatedBy,
		&req.LastUpdatedAt,
		&req.LastUpdatedBy,
	)
	return req, err
}

// SaveRequest inserts a new service request.
func (r *PgxRequestRepository) SaveRequest(ctx context.Context, req domain.ServiceRequest) error {
	modelReq := mapping.ToModelServiceRequest(req)
	query := `
		INSERT INTO service_requests (
			request_id, request_type, branch, staff_id, subject, description, quantity,
			estimated_cost, status, reviewed_by, reviewed_at, review_notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		modelReq.RequestID,
		modelReq.RequestType,
		modelReq.Branch,
		modelReq.StaffID,
		modelReq.Subject,
		modelReq.Description,
		modelReq.Quantity,
		modelReq.EstimatedCost,
		modelReq.Status,
		modelReq.ReviewedBy,
		modelReq.ReviewedAt,
		modelReq.ReviewNotes,
		modelReq.CreatedAt,
		modelReq.CreatedBy,
		modelReq.LastUpdatedAt,
		modelReq.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert service request "+modelReq.RequestID, err)
	}
	return nil
}

// FindRequestByID retrieves a service request by ID.
func (r *PgxRequestRepository) FindRequestByID(ctx context.Context, requestID string) (*domain.ServiceRequest, error) {
	query := `SELECT ` + requestColumns + ` FROM service_requests WHERE request_id = $1;`

	modelReq, err := scanServiceRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find service request by ID "+requestID, err)
	}

	domainReq := mapping.ToDomainServiceRequest(modelReq)
	return &domainReq, nil
}

// ListRequests retrieves a paginated, filtered list of service requests.
func (r *PgxRequestRepository) ListRequests(ctx context.Context, filter portsrepo.RequestListFilter, limit int, nextToken *string) ([]domain.ServiceRequest, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + requestColumns + ` FROM service_requests WHERE 1=1`
	args := []interface{}{}

	if filter.Branch != nil {
		args = append(args, *filter.Branch)
		baseQuery += ` AND branch = $` + strconv.Itoa(len(args))
	}
	if filter.RequestType != nil {
		args = append(args, string(*filter.RequestType))
		baseQuery += ` AND request_type = $` + strconv.Itoa(len(args))
	}
	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		baseQuery += ` AND status = $` + strconv.Itoa(len(args))
	}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		args = append(args, lastCreatedAt)
		baseQuery += ` AND created_at < $` + strconv.Itoa(len(args))
	}

	args = append(args, fetchLimit)
	query := baseQuery + ` ORDER BY created_at DESC LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query service requests", err)
	}
	defer rows.Close()

	requests := make([]models.ServiceRequest, 0, fetchLimit)
	for rows.Next() {
		req, scanErr := scanServiceRequest(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan service request row", scanErr)
		}
		requests = append(requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating service request rows", err)
	}

	var nextTokenVal *string
	if len(requests) > limit {
		lastReq := requests[limit-1]
		token := pagination.EncodeDateBasedToken(lastReq.CreatedAt)
		nextTokenVal = &token
		requests = requests[:limit]
	}

	results := make([]domain.ServiceRequest, len(requests))
	for i, req := range requests {
		results[i] = mapping.ToDomainServiceRequest(req)
	}
	return results, nextTokenVal, nil
}

// UpdateRequest updates status and review fields of a service request.
func (r *PgxRequestRepository) UpdateRequest(ctx context.Context, req domain.ServiceRequest) error {
	modelReq := mapping.ToModelServiceRequest(req)
	query := `
		UPDATE service_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_notes = $5,
		    last_updated_at = $6, last_updated_by = $7
		WHERE request_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelReq.RequestID,
		modelReq.Status,
		modelReq.ReviewedBy,
		modelReq.ReviewedAt,
		modelReq.ReviewNotes,
		modelReq.LastUpdatedAt,
		modelReq.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update service request "+modelReq.RequestID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// CountByBranchAndStatus counts requests of a branch in the given status.
func (r *PgxRequestRepository) CountByBranchAndStatus(ctx context.Context, branch string, status domain.RequestStatus) (int, error) {
	query := `SELECT COUNT(*) FROM service_requests WHERE branch = $1 AND status = $2;`
	var count int
	if err := r.Pool.QueryRow(ctx, query, branch, string(status)).Scan(&count); err != nil {
		return 0, apperrors.NewAppError(500, "failed to count service requests for branch "+branch, err)
	}
	return count, nil
}
