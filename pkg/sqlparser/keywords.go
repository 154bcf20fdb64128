package sqlparser

import "regexp"

// Raw-text fallback patterns for pagination detection. The structural check
// on the AST misses limiting clauses buried in subqueries, CTEs, and dialect
// syntax the parser does not model, so the classifier also scans the raw SQL.
//
// All patterns are word-boundary anchored: a table named top_users or a
// column named user_limit must not look like a limiting clause. Keyword-
// followed-by-number forms are preferred over bare keywords to keep false
// positives down, erring permissive because misclassifying an unpaginated
// query as paginated is the safer failure.
var paginationKeywordPatterns = []*regexp.Regexp{
	// MySQL/PostgreSQL: LIMIT 10, LIMIT 10, 20, LIMIT 10 OFFSET 20
	regexp.MustCompile(`(?i)\blimit\s+\d+`),
	// SQL Server: TOP 100, TOP(100)
	regexp.MustCompile(`(?i)\btop\s*\(?\s*\d+`),
	// DB2 / Oracle 12c+ / SQL Server 2012+: FETCH FIRST n ROWS ONLY,
	// OFFSET m ROWS FETCH NEXT n ROWS ONLY
	regexp.MustCompile(`(?i)\bfetch\s+(first|next)\b`),
	// Oracle legacy rownum filters and window-function pagination
	regexp.MustCompile(`(?i)\brownum\b`),
	regexp.MustCompile(`(?i)\brow_number\s*\(`),
}

// HasPaginationKeyword reports whether the raw SQL text contains a
// row-limiting construct in any supported dialect.
func HasPaginationKeyword(sql string) bool {
	if sql == "" {
		return false
	}
	for _, re := range paginationKeywordPatterns {
		if re.MatchString(sql) {
			return true
		}
	}
	return false
}
