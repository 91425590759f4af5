package httpapi

type searchRequest struct {
	Query string `json:"query"`
}

type createPlaylistRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type addSongRequest struct {
	SongID string `json:"songId"`
}

type errorReportRequest struct {
	Error string `json:"error"`
}

type healthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

type messageResponse struct {
	Message string `json:"message"`
}

// errorResponse is the uniform failure body for every endpoint.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
