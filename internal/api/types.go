package api

// User mirrors a record in the users collection as returned by rosterd.
// The id is assigned by the server and never changes for the life of the
// record.
type User struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Draft carries the client-editable fields sent on create and update
// requests. It deliberately has no id field; identity belongs to the server.
type Draft struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
