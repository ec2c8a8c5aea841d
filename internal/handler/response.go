package handler

// successResponse is the wire envelope for every 2xx reply.
type successResponse struct {
	Success bool `json:"success"`
	Data    any  `json:"data"`
}

// errorResponse is the wire envelope for every non-2xx reply.
type errorResponse struct {
	Error string `json:"error"`
}

func success(data any) successResponse {
	return successResponse{Success: true, Data: data}
}

func failure(message string) errorResponse {
	return errorResponse{Error: message}
}
