package models

// UnknownUserKey groups preferences that carry neither a user id nor a session id
const UnknownUserKey = "unknown"

// UserPreference is one user's raw rating of one destination
type UserPreference struct {
	UserID           string `json:"user_id,omitempty" db:"user_id"`
	SessionID        string `json:"session_id,omitempty" db:"session_id"`
	DestinationID    string `json:"destination_id" db:"destination_id"`
	Rating           int    `json:"rating" db:"rating"` // 1-5
	RequestedMinutes int    `json:"requested_minutes,omitempty" db:"requested_minutes"`
}

// UserKey returns the grouping key for this preference:
// user id if present, else session id, else "unknown"
func (p UserPreference) UserKey() string {
	if p.UserID != "" {
		return p.UserID
	}
	if p.SessionID != "" {
		return p.SessionID
	}
	return UnknownUserKey
}

// StandardizedPreference is a UserPreference plus its per-user z-score.
// Derived once per optimization run, read-only afterwards.
type StandardizedPreference struct {
	UserPreference
	Score float64 `json:"standardized_score"`
}

// UserStatistics holds one user's rating statistics for a single run
type UserStatistics struct {
	UserKey string  `json:"user_key"`
	Mean    float64 `json:"mean"`
	StdDev  float64 `json:"std_dev"` // floored to 1 when the raw deviation is 0
	Count   int     `json:"count"`
}
