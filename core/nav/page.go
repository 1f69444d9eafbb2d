package nav

// Page identifies the view a RoutePath points at. The set below is closed
// over the dashboard's known screens; paths carrying a page outside it are
// still parsed (forward-compatible) but report Known() == false.
type Page string

const (
	PageDashboard  Page = "dashboard"
	PageAttendance Page = "attendance"
	PageHomework   Page = "homework"
	PageExams      Page = "exams"
	PagePayments   Page = "payments"
	PageTransport  Page = "transport"
	PageEnrollment Page = "enrollment"
	PageSubjects   Page = "subjects"
	PageClasses    Page = "classes"
	PageTeachers   Page = "teachers"
	PageStudents   Page = "students"
	PageReports    Page = "reports"
	PageSettings   Page = "settings"
)

var knownPages = map[Page]struct{}{
	PageDashboard:  {},
	PageAttendance: {},
	PageHomework:   {},
	PageExams:      {},
	PagePayments:   {},
	PageTransport:  {},
	PageEnrollment: {},
	PageSubjects:   {},
	PageClasses:    {},
	PageTeachers:   {},
	PageStudents:   {},
	PageReports:    {},
	PageSettings:   {},
}

// ParsePage maps a raw path segment to a Page. Empty input falls back to
// the dashboard; unknown segments pass through unchanged.
func ParsePage(s string) Page {
	if s == "" {
		return PageDashboard
	}
	return Page(s)
}

func (p Page) Known() bool {
	_, ok := knownPages[p]
	return ok
}

func (p Page) String() string {
	return string(p)
}
