package system

// PingResponse 배포 점검용 응답
type PingResponse struct {
	Success bool `json:"success" example:"true"`
	// HasEnv 제휴 API 키 세 가지(access/secret/sub_id)가 모두 설정되었는지 여부
	HasEnv bool `json:"hasEnv" example:"true"`
}
