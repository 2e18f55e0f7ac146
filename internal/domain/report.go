package domain

import "time"

// Report is a diagnosis report owned by a single user. The ID is a
// per-user sequence rendered as a string; it is unique within the
// owner's collection only.
type Report struct {
	ID        string
	UserID    string
	Payload   map[string]any
	CreatedAt time.Time
}

// Body renders the wire shape of a report: the caller-supplied payload
// with the assigned id and owner stamped on top.
func (r *Report) Body() map[string]any {
	body := make(map[string]any, len(r.Payload)+2)
	for k, v := range r.Payload {
		body[k] = v
	}
	body["id"] = r.ID
	body["user_id"] = r.UserID
	return body
}
