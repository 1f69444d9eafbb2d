package nav

import (
	"net/url"
	"strings"
)

// Path segment keys of the hierarchical route grammar:
//
//	/ ("institute/" ID ("/class/" ID ("/subject/" ID)?)? |
//	   "child/" ID | "organization/" ID | "transport/" ID)? "/" page
const (
	segInstitute    = "institute"
	segClass        = "class"
	segSubject      = "subject"
	segChild        = "child"
	segOrganization = "organization"
	segTransport    = "transport"
)

var contextKeys = map[string]struct{}{
	segInstitute:    {},
	segClass:        {},
	segSubject:      {},
	segChild:        {},
	segOrganization: {},
	segTransport:    {},
}

// Build serializes a context and page into a RoutePath. Root precedence is
// applied via Context.ActiveRoot; hierarchy segments are only emitted while
// their parent is present, so a dangling "class" or "subject" can never
// appear.
func Build(ctx Context, page Page) string {
	if page == "" {
		page = PageDashboard
	}
	var b strings.Builder
	switch ctx.ActiveRoot() {
	case RootChild:
		writePair(&b, segChild, ctx.ChildID)
	case RootOrganization:
		writePair(&b, segOrganization, ctx.OrganizationID)
	case RootTransport:
		writePair(&b, segTransport, ctx.TransportID)
	case RootInstitute:
		writePair(&b, segInstitute, ctx.InstituteID)
		if ctx.ClassID != "" {
			writePair(&b, segClass, ctx.ClassID)
			if ctx.SubjectID != "" {
				writePair(&b, segSubject, ctx.SubjectID)
			}
		}
	}
	b.WriteByte('/')
	b.WriteString(string(page))
	return b.String()
}

// BuildPlain serializes a page without any context segments. Used when
// hierarchical URLs are disabled.
func BuildPlain(page Page) string {
	if page == "" {
		page = PageDashboard
	}
	return "/" + string(page)
}

func writePair(b *strings.Builder, key, id string) {
	b.WriteByte('/')
	b.WriteString(key)
	b.WriteByte('/')
	b.WriteString(url.PathEscape(id))
}

// Parse splits a RoutePath into the context it embeds and the page it
// points at. Segments are consumed pairwise; pairs with an unrecognized key
// are ignored for forward compatibility, and the final unpaired segment is
// the page. The root path and unparseable input yield an empty context and
// the dashboard page: this is the defined default, not an error.
func Parse(path string) (Context, Page) {
	var ctx Context
	segs := splitPath(path)
	if len(segs) == 0 {
		return ctx, PageDashboard
	}

	page := PageDashboard
	for i := 0; i < len(segs); i += 2 {
		if i == len(segs)-1 {
			page = ParsePage(segs[i])
			break
		}
		id := unescape(segs[i+1])
		switch segs[i] {
		case segInstitute:
			ctx.InstituteID = id
		case segClass:
			ctx.ClassID = id
		case segSubject:
			ctx.SubjectID = id
		case segChild:
			ctx.ChildID = id
		case segOrganization:
			ctx.OrganizationID = id
		case segTransport:
			ctx.TransportID = id
		}
	}
	return ctx.Normalized(), page
}

// ExtractBasePath strips every recognized key/ID pair from a path, leaving
// only the page segment(s). Routes are compared on base paths so that
// embedded context never affects matching. Idempotent.
func ExtractBasePath(path string) string {
	segs := splitPath(path)
	if len(segs) == 0 {
		return "/"
	}
	kept := make([]string, 0, len(segs))
	for i := 0; i < len(segs); {
		if _, ok := contextKeys[segs[i]]; ok && i+1 < len(segs) {
			i += 2
			continue
		}
		kept = append(kept, segs[i])
		i++
	}
	if len(kept) == 0 {
		return "/"
	}
	return "/" + strings.Join(kept, "/")
}

// Trail returns the breadcrumb RoutePaths for a context, from the root
// selection down to the full selection, each ending in the same page.
func Trail(ctx Context, page Page) []string {
	switch ctx.ActiveRoot() {
	case RootInstitute:
		trail := []string{Build(Context{InstituteID: ctx.InstituteID}, page)}
		if ctx.ClassID != "" {
			trail = append(trail, Build(Context{InstituteID: ctx.InstituteID, ClassID: ctx.ClassID}, page))
			if ctx.SubjectID != "" {
				trail = append(trail, Build(ctx, page))
			}
		}
		return trail
	case RootNone:
		return []string{Build(Context{}, page)}
	}
	return []string{Build(ctx, page)}
}

// splitPath drops any query/fragment and returns the non-empty path segments.
func splitPath(path string) []string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	path = strings.Trim(path, "/")
	if path == "" {
		return nil
	}
	segs := strings.Split(path, "/")
	kept := segs[:0]
	for _, s := range segs {
		if s != "" {
			kept = append(kept, s)
		}
	}
	return kept
}

func unescape(s string) string {
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return s
}
