package repositories

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

// dateLayout is the wire format for DATE column values
const dateLayout = "2006-01-02"

// Shared repository errors
var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned on unique constraint violations
	ErrDuplicate = errors.New("already exists")
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository    *UserRepository
	NoticeRepository  *NoticeRepository
	PostRepository    *PostRepository
	InquiryRepository *InquiryRepository
	StayRepository    *StayRepository
	LeaveRepository   *LeaveRepository
	CheckInRepository *CheckInRepository
	MeritRepository   *MeritRepository
}

// NewRepositories creates all repositories sharing one pool
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:    NewUserRepository(db),
		NoticeRepository:  NewNoticeRepository(db),
		PostRepository:    NewPostRepository(db),
		InquiryRepository: NewInquiryRepository(db),
		StayRepository:    NewStayRepository(db),
		LeaveRepository:   NewLeaveRepository(db),
		CheckInRepository: NewCheckInRepository(db),
		MeritRepository:   NewMeritRepository(db),
	}
}

// formatDate renders a DATE column value as YYYY-MM-DD. Postgres returns
// DATE in binary format over the extended protocol, so scans go through
// pgtype.Date rather than a raw string destination.
func formatDate(d pgtype.Date) string {
	if !d.Valid {
		return ""
	}
	return d.Time.Format(dateLayout)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique violation
func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
