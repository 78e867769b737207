// Package validator API 요청 구조체 검증에 사용하는 go-playground/validator 싱글톤과
// 한국어 오류 메시지 변환을 제공합니다.
//
// 필드의 표시 이름은 `korean` 태그에서 가져오며, 태그가 없으면 구조체 필드명을 사용합니다.
package validator

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	go_validator "github.com/go-playground/validator/v10"
)

var (
	instance *go_validator.Validate
	once     sync.Once
)

// Get 전역 Validator 인스턴스를 반환합니다.
func Get() *go_validator.Validate {
	once.Do(func() {
		v := go_validator.New(go_validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := fld.Tag.Get("korean"); name != "" {
				return name
			}
			return fld.Name
		})
		instance = v
	})
	return instance
}

// Struct 구조체를 검증합니다.
func Struct(s any) error {
	return Get().Struct(s)
}

// FormatValidationError 검증 오류 중 첫 번째 항목을 한국어 메시지로 변환합니다.
func FormatValidationError(err error) string {
	if err == nil {
		return ""
	}

	var errs go_validator.ValidationErrors
	if !errors.As(err, &errs) || len(errs) == 0 {
		return err.Error()
	}

	return formatFieldError(errs[0])
}

func formatFieldError(fe go_validator.FieldError) string {
	name := fe.Field()
	isString := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s는 필수입니다", name)
	case "min", "gte":
		if isString {
			return fmt.Sprintf("%s는 최소 %s자 이상이어야 합니다", name, fe.Param())
		}
		if fe.Tag() == "gte" {
			return fmt.Sprintf("%s는 %s 이상이어야 합니다", name, fe.Param())
		}
		return fmt.Sprintf("%s는 최소 %s 이상이어야 합니다", name, fe.Param())
	case "max", "lte":
		if isString {
			return fmt.Sprintf("%s는 최대 %s자까지 입력 가능합니다", name, fe.Param())
		}
		if fe.Tag() == "lte" {
			return fmt.Sprintf("%s는 %s 이하이어야 합니다", name, fe.Param())
		}
		return fmt.Sprintf("%s는 최대 %s까지 입력 가능합니다", name, fe.Param())
	case "len":
		if isString {
			return fmt.Sprintf("%s는 %s자여야 합니다", name, fe.Param())
		}
		return fmt.Sprintf("%s는 갯수가 %s개여야 합니다", name, fe.Param())
	case "url", "http_url":
		return fmt.Sprintf("%s는 올바른 URL 형식이어야 합니다", name)
	case "email":
		return fmt.Sprintf("%s는 올바른 이메일 형식이어야 합니다", name)
	case "uuid":
		return fmt.Sprintf("%s는 올바른 UUID 형식이어야 합니다", name)
	case "oneof":
		return fmt.Sprintf("%s는 허용된 값 중 하나여야 합니다 [%s]", name, fe.Param())
	case "boolean":
		return fmt.Sprintf("%s는 true 또는 false 값이어야 합니다", name)
	default:
		return fmt.Sprintf("%s 값 검증 실패 (%s)", name, fe.Tag())
	}
}
