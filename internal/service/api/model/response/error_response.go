package response

// ErrorResponse API 오류 응답
type ErrorResponse struct {
	// Success 항상 false
	Success bool `json:"success" example:"false"`

	// Error 에러 메시지
	Error string `json:"error" example:"POST only"`

	// ResultCode HTTP 상태 코드 (예: 400, 405, 500)
	ResultCode int `json:"result_code" example:"405"`
}
