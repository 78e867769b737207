package affiliate

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// signedDateLayout yyMMdd'T'HHmmss'Z' (UTC)
const signedDateLayout = "060102T150405Z"

// Signer 쿠팡 파트너스 Open API의 CEA HMAC 서명을 만듭니다.
type Signer struct {
	accessKey string
	secretKey string

	now func() time.Time
}

func NewSigner(accessKey, secretKey string) *Signer {
	return &Signer{accessKey: accessKey, secretKey: secretKey, now: time.Now}
}

// Authorization 요청 하나에 대한 Authorization 헤더 값을 반환합니다.
// query는 '?'를 제외한 쿼리 문자열이며, 없으면 빈 문자열입니다.
func (s *Signer) Authorization(method, path, query string) string {
	signedDate := s.now().UTC().Format(signedDateLayout)
	signature := sign(s.secretKey, signedDate+method+path+query)

	return fmt.Sprintf("CEA algorithm=HmacSHA256, access-key=%s, signed-date=%s, signature=%s", s.accessKey, signedDate, signature)
}

func sign(secret, message string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
