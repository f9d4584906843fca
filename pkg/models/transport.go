package models

// AnalysisRequest is the JSON body accepted by the analysis API
type AnalysisRequest struct {
	URL string `json:"url" binding:"required"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// HealthResponse reports liveness, analysis counters and host memory
type HealthResponse struct {
	Status    string      `json:"status"`
	Version   string      `json:"version"`
	Timestamp string      `json:"timestamp"`
	Analyses  interface{} `json:"analyses"`
	Memory    *MemoryInfo `json:"memory,omitempty"`
}

// MemoryInfo summarises host memory usage
type MemoryInfo struct {
	TotalBytes  uint64  `json:"total_bytes"`
	UsedPercent float64 `json:"used_percent"`
}
