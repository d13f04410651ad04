package services

// ServiceContainer holds all service facades, wired once at startup and handed
// to the route registration layer.
type ServiceContainer struct {
	Branch             BranchSvcFacade
	Staff              StaffSvcFacade
	Cashbook           CashbookSvcFacade
	Task               TaskSvcFacade
	Attendance         AttendanceSvcFacade
	Request            RequestSvcFacade
	Notification       NotificationSvcFacade
	Reporting          ReportingSvcFacade
	TokenService       TokenSvcFacade
	GoogleOAuthHandler GoogleOAuthHandlerSvcFacade
}
