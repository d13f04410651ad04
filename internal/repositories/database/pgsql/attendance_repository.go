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

type PgxAttendanceRepository struct {
	BaseRepository
}

// newPgxAttendanceRepository creates a new repository for attendance data.
func newPgxAttendanceRepository(pool *pgxpool.Pool) portsrepo.AttendanceRepositoryFacade {
	return &PgxAttendanceRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxAttendanceRepository implements portsrepo.AttendanceRepositoryFacade
var _ portsrepo.AttendanceRepositoryFacade = (*PgxAttendanceRepository)(nil)

const attendanceColumns = `
	record_id, staff_id, branch, date, check_in, check_out, status, notes,
	created_at, created_by, last_updated_at, last_updated_by`

func scanAttendanceRecord(row pgx.Row) (models.AttendanceRecord, error) {
	var rec models.AttendanceRecord
	err := row.Scan(
		&rec.RecordID,
		&rec.StaffID,
		&rec.Branch,
		&rec.Date,
		&rec.CheckIn,
		&rec.CheckOut,
		&rec.Status,
		&rec.Notes,
		&rec.CreatedAt,
		&rec.CreatedBy,
		&rec.LastUpdatedAt,
		&rec.LastUpdatedBy,
	)
	return rec, err
}

func toDomainAttendanceRecord(m models.AttendanceRecord) domain.AttendanceRecord {
	return domain.AttendanceRecord{
		RecordID:    m.RecordID,
		StaffID:     m.StaffID,
		Branch:      m.Branch,
		Date:        m.Date,
		CheckIn:     m.CheckIn,
		CheckOut:    m.CheckOut,
		Status:      domain.AttendanceStatus(m.Status),
		Notes:       m.Notes,
		AuditFields: mapping.ToDomainAuditFields(m.AuditFields),
	}
}

// SaveRecord inserts a new attendance record. Returns ErrDuplicate if a record
// already exists for (staffID, date).
func (r *PgxAttendanceRepository) SaveRecord(ctx context.Context, record domain.AttendanceRecord) error {
	query := `
		INSERT INTO attendance_records (
			record_id, staff_id, branch, date, check_in, check_out, status, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.RecordID,
		record.StaffID,
		record.Branch,
		record.Date,
		record.CheckIn,
		record.CheckOut,
		string(record.Status),
		record.Notes,
		record.CreatedAt,
		record.CreatedBy,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperrors.NewAppError(409, "attendance already recorded for staff "+record.StaffID+" on this date", apperrors.ErrDuplicate)
		}
		return apperrors.NewAppError(500, "failed to insert attendance record "+record.RecordID, err)
	}
	return nil
}

// FindRecordByStaffAndDate retrieves the record of a staff member for a calendar day.
func (r *PgxAttendanceRepository) FindRecordByStaffAndDate(ctx context.Context, staffID string, date time.Time) (*domain.AttendanceRecord, error) {
	query := `SELECT ` + attendanceColumns + ` FROM attendance_records WHERE staff_id = $1 AND date = $2::date;`

	modelRec, err := scanAttendanceRecord(r.Pool.QueryRow(ctx, query, staffID, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find attendance record for staff "+staffID, err)
	}

	domainRec := toDomainAttendanceRecord(modelRec)
	return &domainRec, nil
}

// UpdateRecord updates check-out, status and notes of a record.
func (r *PgxAttendanceRepository) UpdateRecord(ctx context.Context, record domain.AttendanceRecord) error {
	query := `
		UPDATE attendance_records
		SET check_out = $2, status = $3, notes = $4, last_updated_at = $5, last_updated_by = $6
		WHERE record_id = $1;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		record.RecordID,
		record.CheckOut,
		string(record.Status),
		record.Notes,
		record.LastUpdatedAt,
		record.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update attendance record "+record.RecordID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// ListRecordsByStaffAndMonth retrieves all records of a staff member within the
// month containing the given date.
func (r *PgxAttendanceRepository) ListRecordsByStaffAndMonth(ctx context.Context, staffID string, month time.Time) ([]domain.AttendanceRecord, error) {
	query := `
		SELECT ` + attendanceColumns + `
		FROM attendance_records
		WHERE staff_id = $1 AND date_trunc('month', date) = date_trunc('month', $2::date)
		ORDER BY date;
	`
	rows, err := r.Pool.Query(ctx, query, staffID, month)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query attendance records for staff "+staffID, err)
	}
	defer rows.Close()

	records := []domain.AttendanceRecord{}
	for rows.Next() {
		rec, scanErr := scanAttendanceRecord(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan attendance row for staff "+staffID, scanErr)
		}
		records = append(records, toDomainAttendanceRecord(rec))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating attendance rows for staff "+staffID, err)
	}
	return records, nil
}

// SummarizeBranchByDate aggregates a branch's attendance counts for one day.
func (r *PgxAttendanceRepository) SummarizeBranchByDate(ctx context.Context, branch string, date time.Time) (*domain.AttendanceSummary, error) {
	query := `
		SELECT
			COUNT(*) FILTER (WHERE status = 'PRESENT'),
			COUNT(*) FILTER (WHERE status = 'ABSENT'),
			COUNT(*) FILTER (WHERE status = 'HALF_DAY'),
			COUNT(*) FILTER (WHERE status = 'LEAVE')
		FROM attendance_records
		WHERE branch = $1 AND date = $2::date;
	`
	summary := domain.AttendanceSummary{Branch: branch, Date: date}
	err := r.Pool.QueryRow(ctx, query, branch, date).Scan(
		&summary.Present,
		&summary.Absent,
		&summary.HalfDay,
		&summary.OnLeave,
	)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to summarize attendance for branch "+branch, err)
	}
	return &summary, nil
}
