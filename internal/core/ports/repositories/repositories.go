package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	BranchRepo       BranchRepositoryFacade
	StaffRepo        StaffRepositoryFacade
	CashbookRepo     CashbookRepositoryWithTx
	TaskRepo         TaskRepositoryFacade
	AttendanceRepo   AttendanceRepositoryFacade
	RequestRepo      RequestRepositoryFacade
	NotificationRepo NotificationRepositoryFacade
	ReportingRepo    ReportingRepositoryFacade
}
