package dto

// SyncResult is the ephemeral outcome of one sync pass. It is returned even
// when some calendars failed; callers inspect Errors for partial failure.
type SyncResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Deleted int      `json:"deleted"`
	Errors  []string `json:"errors"`
}

// Merge folds another result's counts and errors into this one.
func (r *SyncResult) Merge(other SyncResult) {
	r.Created += other.Created
	r.Updated += other.Updated
	r.Deleted += other.Deleted
	r.Errors = append(r.Errors, other.Errors...)
}

// SyncAllResponse maps credential keys to their pass results.
type SyncAllResponse struct {
	Results map[string]SyncResult `json:"results"`
}

// ConnectURLResponse carries the provider consent URL.
type ConnectURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// SelectCalendarsRequest picks which provider calendars to sync.
type SelectCalendarsRequest struct {
	CalendarIDs []string `json:"calendar_ids" validate:"required"`
}
