package api

// Response is the decoded envelope every endpoint returns:
// {"success": bool, "message": string, "data": ...}.
type Response struct {
	StatusCode int
	Data       map[string]any
}

func (r *Response) Success() bool {
	if r == nil {
		return false
	}
	ok, _ := r.Data["success"].(bool)
	return ok
}

func (r *Response) Message() string {
	if r == nil {
		return ""
	}
	msg, _ := r.Data["message"].(string)
	return msg
}

// Payload returns the raw "data" member.
func (r *Response) Payload() any {
	if r == nil {
		return nil
	}
	return r.Data["data"]
}

// PayloadObject returns "data" when it is a JSON object, nil otherwise.
func (r *Response) PayloadObject() map[string]any {
	obj, _ := r.Payload().(map[string]any)
	return obj
}

// MessageOr returns the server message, or fallback when the server sent none.
func (r *Response) MessageOr(fallback string) string {
	if msg := r.Message(); msg != "" {
		return msg
	}
	return fallback
}

// Pagination is the optional pagination block of a list payload.
type Pagination struct {
	Total      int
	TotalPages int
	HasTotal   bool
	HasPages   bool
}

// PaginationOf reads {"pagination": {"total": n, "totalPages": n}} from a list
// payload. Missing keys are reported through HasTotal/HasPages.
func PaginationOf(payload map[string]any) Pagination {
	var p Pagination
	block, ok := payload["pagination"].(map[string]any)
	if !ok {
		return p
	}
	if n, ok := block["total"].(float64); ok {
		p.Total, p.HasTotal = int(n), true
	}
	if n, ok := block["totalPages"].(float64); ok {
		p.TotalPages, p.HasPages = int(n), true
	}
	return p
}

// ListOf returns payload[key] as a list of objects, dropping non-object items.
// A payload that is itself a list is accepted as well.
func ListOf(payload any, key string) []map[string]any {
	var raw []any
	switch p := payload.(type) {
	case []any:
		raw = p
	case map[string]any:
		raw, _ = p[key].([]any)
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if obj, ok := item.(map[string]any); ok {
			out = append(out, obj)
		}
	}
	return out
}

// ObjectOf returns payload[key] when it is an object, or payload itself.
// Mutation endpoints answer either {"data": {...}} or {"data": {"user": {...}}}.
func ObjectOf(payload map[string]any, key string) map[string]any {
	if nested, ok := payload[key].(map[string]any); ok {
		return nested
	}
	return payload
}
