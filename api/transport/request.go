package transport

// GoogleLoginRequest carries the provider-issued ID token from the client.
type GoogleLoginRequest struct {
	IDToken string `json:"idToken"`
}

type TaskCreateRequest struct {
	Text     string `json:"text"`
	Priority string `json:"priority"`
	DueDate  string `json:"dueDate"`
}

// TaskUpdateRequest is a partial update: nil fields were absent from the
// request body and must not be touched.
type TaskUpdateRequest struct {
	Text      *string `json:"text"`
	Completed *bool   `json:"completed"`
	Priority  *string `json:"priority"`
	DueDate   *string `json:"dueDate"`
}
