// Package middleware API 서버의 Echo 미들웨어를 제공합니다.
//
// 적용 순서는 api.NewHTTPServer를 참고하세요. 패닉 복구가 가장 바깥에, 보안 헤더가 가장 안쪽에 위치합니다.
package middleware
