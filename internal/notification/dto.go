package notification

type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}

type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

type SuccessResponse struct {
	Success bool  `json:"success"`
	Count   int64 `json:"count,omitempty"`
}
