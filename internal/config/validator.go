package config

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/koreahan/coupang/pkg/validation"
)

// 예: 123456:ABC-DEF1234ghIkl-zyx57W2v1u123ew11
var telegramBotTokenRegex = regexp.MustCompile(`^\d{3,20}:[a-zA-Z0-9_-]{30,50}$`)

// newValidator 설정 검증용 Validator를 생성합니다.
// 오류 메시지에는 구조체 필드명 대신 JSON 키 이름이 표시됩니다.
func newValidator() *validator.Validate {
	v := validator.New()

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	custom := map[string]validator.Func{
		"cors_origin": func(fl validator.FieldLevel) bool {
			return validation.ValidateCORSOrigin(fl.Field().String()) == nil
		},
		"http_url": func(fl validator.FieldLevel) bool {
			return validation.ValidateHTTPURL(fl.Field().String()) == nil
		},
		"cron_spec": func(fl validator.FieldLevel) bool {
			return validation.ValidateCronExpression(fl.Field().String()) == nil
		},
		"telegram_bot_token": func(fl validator.FieldLevel) bool {
			return telegramBotTokenRegex.MatchString(fl.Field().String())
		},
	}
	for tag, fn := range custom {
		if err := v.RegisterValidation(tag, fn); err != nil {
			panic(fmt.Sprintf("초기화 치명적 오류: '%s' 커스텀 유효성 검사 함수 등록에 실패했습니다: %v", tag, err))
		}
	}

	return v
}

// checkStruct 구조체를 검증하고 첫 번째 오류를 설정 키 경로와 함께 보고합니다.
func checkStruct(v *validator.Validate, s any, section string) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		fe := validationErrors[0]

		// Namespace는 "ScrapingConfig.provider_endpoint" 형태이므로 구조체 이름을 섹션 이름으로 바꾼다.
		path := fe.Namespace()
		if i := strings.IndexByte(path, '.'); i >= 0 {
			path = section + path[i:]
		}

		return apperrors.New(apperrors.InvalidInput, fmt.Sprintf("설정 값이 올바르지 않습니다: %s='%v' (조건: %s)", path, fe.Value(), fe.Tag()))
	}

	return apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("%s 설정 유효성 검증에 실패했습니다", section))
}
