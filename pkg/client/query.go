package client

import "strconv"

// Query holds the query-string parameters of the read-many endpoints.
// Zero fields are not sent, so the server defaults apply (page 0, size 10).
type Query struct {
	Keyword  string
	Category string
	Page     int
	Size     int
}

func (q Query) params() map[string]string {
	m := make(map[string]string)
	if q.Keyword != "" {
		m["keyword"] = q.Keyword
	}
	if q.Category != "" {
		m["category"] = q.Category
	}
	if q.Page > 0 {
		m["page"] = strconv.Itoa(q.Page)
	}
	if q.Size > 0 {
		m["size"] = strconv.Itoa(q.Size)
	}
	return m
}

func idParam(id int64) map[string]string {
	return map[string]string{"id": strconv.FormatInt(id, 10)}
}
