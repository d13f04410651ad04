package mailer

import "html/template"

// templates holds every transactional email body. They are deliberately plain:
// recipients read these in corporate mail clients with unpredictable CSS support.
var templates = template.Must(template.New("emails").Parse(`
{{define "layout_open"}}<div style="font-family:Arial,sans-serif;max-width:600px;margin:0 auto;padding:16px;color:#333">{{end}}
{{define "layout_close"}}<p style="color:#888;font-size:12px;margin-top:24px">This is an automated message from the operations portal. Please do not reply.</p></div>{{end}}

{{define "task_assigned"}}{{template "layout_open"}}
<h2>New Task Assigned</h2>
<p>Hi {{.AssigneeName}},</p>
<p>{{.AssignerName}} assigned you a new task at <strong>{{.Branch}}</strong>:</p>
<ul>
<li><strong>Task:</strong> {{.TaskTitle}}</li>
<li><strong>Priority:</strong> {{.Priority}}</li>
{{if .DueDate}}<li><strong>Due:</strong> {{.DueDate}}</li>{{end}}
</ul>
<p>Please log in to the portal to view the details.</p>
{{template "layout_close"}}{{end}}

{{define "task_completed"}}{{template "layout_open"}}
<h2>Task Completed</h2>
<p><strong>{{.AssigneeName}}</strong> completed the task <strong>{{.TaskTitle}}</strong> at {{.Branch}} on {{.CompletedAt}}.</p>
{{template "layout_close"}}{{end}}

{{define "task_overdue"}}{{template "layout_open"}}
<h2 style="color:#c0392b">Task Overdue</h2>
<p>Hi {{.AssigneeName}},</p>
<p>The task <strong>{{.TaskTitle}}</strong> at {{.Branch}} was due on <strong>{{.DueDate}}</strong> and is still open.</p>
<p>Please complete it or update its status in the portal.</p>
{{template "layout_close"}}{{end}}

{{define "cash_submitted"}}{{template "layout_open"}}
<h2>Cash Entry Submitted</h2>
<p><strong>{{.StaffName}}</strong> submitted a cash book entry for <strong>{{.Branch}}</strong> awaiting verification:</p>
<ul>
<li><strong>Date:</strong> {{.TransactionDate}}</li>
<li><strong>Cash In:</strong> {{.CashIn}}</li>
<li><strong>Cash Out:</strong> {{.CashOut}}</li>
{{if .Description}}<li><strong>Description:</strong> {{.Description}}</li>{{end}}
</ul>
{{template "layout_close"}}{{end}}

{{define "cash_approved"}}{{template "layout_open"}}
<h2 style="color:#27ae60">Cash Entry Approved</h2>
<p>Hi {{.StaffName}},</p>
<p>Your cash book entry for <strong>{{.Branch}}</strong> dated {{.TransactionDate}} was approved by {{.VerifierName}}.</p>
<p><strong>Running balance:</strong> {{.Balance}}</p>
{{if .Note}}<p><strong>Note:</strong> {{.Note}}</p>{{end}}
{{template "layout_close"}}{{end}}

{{define "cash_rejected"}}{{template "layout_open"}}
<h2 style="color:#c0392b">Cash Entry Rejected</h2>
<p>Hi {{.StaffName}},</p>
<p>Your cash book entry for <strong>{{.Branch}}</strong> dated {{.TransactionDate}} was rejected by {{.VerifierName}}.</p>
{{if .Note}}<p><strong>Reason:</strong> {{.Note}}</p>{{end}}
<p>Please review and resubmit if needed.</p>
{{template "layout_close"}}{{end}}

{{define "low_balance_alert"}}{{template "layout_open"}}
<h2 style="color:#c0392b">Low Balance Alert</h2>
<p>The cash balance at <strong>{{.Branch}}</strong> has dropped to <strong>{{.Balance}}</strong>, below the configured threshold of {{.Threshold}}.</p>
<p>Please arrange a cash top-up.</p>
{{template "layout_close"}}{{end}}

{{define "request_submitted"}}{{template "layout_open"}}
<h2>New Service Request</h2>
<p><strong>{{.StaffName}}</strong> at <strong>{{.Branch}}</strong> submitted a {{.RequestType}} request:</p>
<p>{{.Description}}</p>
<p>Please review it in the portal.</p>
{{template "layout_close"}}{{end}}

{{define "request_reviewed"}}{{template "layout_open"}}
<h2>Service Request {{.Status}}</h2>
<p>Hi {{.StaffName}},</p>
<p>Your {{.RequestType}} request at <strong>{{.Branch}}</strong> was marked <strong>{{.Status}}</strong> by {{.ReviewerName}}.</p>
{{if .Note}}<p><strong>Note:</strong> {{.Note}}</p>{{end}}
{{template "layout_close"}}{{end}}

{{define "daily_report"}}{{template "layout_open"}}
<h2>Daily Operations Report for {{.ReportDate}}</h2>
<table style="border-collapse:collapse;width:100%" border="1" cellpadding="6">
<tr style="background:#f4f4f4">
<th>Branch</th><th>Present</th><th>Absent</th><th>Open Tasks</th><th>Pending Cash</th><th>Pending Requests</th><th>Cash In</th><th>Cash Out</th><th>Closing Balance</th>
</tr>
{{range .Branches}}
<tr>
<td>{{.Branch}}</td><td>{{.PresentCount}}</td><td>{{.AbsentCount}}</td><td>{{.OpenTasks}}</td><td>{{.PendingCash}}</td><td>{{.PendingRequests}}</td><td>{{.ApprovedCashIn}}</td><td>{{.ApprovedCashOut}}</td><td>{{.ClosingBalance}}</td>
</tr>
{{end}}
</table>
{{template "layout_close"}}{{end}}

{{define "welcome"}}{{template "layout_open"}}
<h2>Welcome to the Operations Portal</h2>
<p>Hi {{.StaffName}},</p>
<p>Your account has been created with the <strong>{{.Role}}</strong> role at <strong>{{.Branch}}</strong>.</p>
<p>You can now log in and start managing tasks, attendance, cash book entries and service requests.</p>
{{template "layout_close"}}{{end}}
`))
