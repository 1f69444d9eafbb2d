package nav

import "strings"

// IsActive reports whether currentPath is "on" targetPath, ignoring any
// context segments embedded on either side. A parent nav item stays active
// while one of its sub-pages is shown, so prefix matches count — but only
// at a "/" boundary ("/exam" is not active under "/exams").
func IsActive(currentPath, targetPath string) bool {
	cur := ExtractBasePath(currentPath)
	tgt := ExtractBasePath(targetPath)
	if cur == tgt {
		return true
	}
	if tgt == "/" {
		return false
	}
	return strings.HasPrefix(cur, tgt+"/")
}
