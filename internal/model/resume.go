package model

import "time"

// Resume is a user's auto-generated resume/profile. One per user, upserted
// by userID — no history or versioning.
//
// The fields are free text by design: Skills is a comma-separated string,
// and Experience/Education are semi-structured blobs the frontend splits
// into entries by a "Title | Company | Date" delimiter convention. The
// server stores them verbatim.
type Resume struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	Title      string    `json:"title"`
	Summary    string    `json:"summary"`
	Skills     string    `json:"skills"`
	Experience string    `json:"experience"`
	Education  string    `json:"education"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}
