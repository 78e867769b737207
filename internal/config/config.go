// Package config 애플리케이션 설정을 로드하고 검증합니다.
//
// 설정은 다음 순서로 겹쳐지며, 뒤에 오는 값이 앞의 값을 덮어씁니다.
//
//  1. 내장 기본값
//  2. JSON 설정 파일 (없으면 건너뜀)
//  3. COUPANG_ 접두사 환경 변수 (계층 구분자: '__')
//  4. 기존 배포 환경과의 호환을 위한 별칭 환경 변수 (SCRAPINGBEE_KEY 등)
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	apperrors "github.com/koreahan/coupang/internal/pkg/errors"
	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

const (
	// AppName 애플리케이션 식별자입니다. 로그 파일명과 Server 헤더 등에 사용됩니다.
	AppName = "coupang-info"

	// DefaultFilename 명시적인 경로가 없을 때 읽는 설정 파일명입니다.
	DefaultFilename = AppName + ".json"

	envPrefix = "COUPANG_"
)

// aliasEnvKeys 예전부터 사용되던 환경 변수 이름과 설정 키의 대응표입니다.
var aliasEnvKeys = map[string]string{
	"SCRAPINGBEE_KEY":     "scraping.api_key",
	"SCRAPINGBEE_PREMIUM": "scraping.premium_default",
	"COUPANG_ACCESS_KEY":  "affiliate.access_key",
	"COUPANG_SECRET_KEY":  "affiliate.secret_key",
	"COUPANG_SUB_ID":      "affiliate.sub_id",
}

// Load 기본 설정 파일로 설정을 로드합니다.
func Load() (*AppConfig, error) {
	return LoadWithFile(DefaultFilename)
}

// LoadWithFile 지정된 설정 파일을 포함하여 설정을 로드하고 검증합니다.
// 파일이 존재하지 않으면 기본값과 환경 변수만으로 구성합니다.
func LoadWithFile(filename string) (*AppConfig, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(newDefaultConfig(), "json"), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "기본 설정 로드에 실패했습니다")
	}

	if filename != "" {
		if err := k.Load(file.Provider(filename), json.Parser()); err != nil {
			if !errors.Is(err, fs.ErrNotExist) {
				return nil, apperrors.Wrap(err, apperrors.InvalidInput, fmt.Sprintf("설정 파일 로드 중 오류가 발생했습니다: '%s'", filename))
			}
		}
	}

	// 예: COUPANG_EXTRACTOR__BUDGET=8s -> extractor.budget
	if err := k.Load(env.Provider(envPrefix, ".", normalizeEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "환경 변수 로드에 실패했습니다")
	}

	if err := k.Load(env.Provider("", ".", aliasEnvKey), nil); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "별칭 환경 변수 로드에 실패했습니다")
	}

	var appConfig AppConfig
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "json",
		DecoderConfig: &mapstructure.DecoderConfig{
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
				mapstructure.StringToSliceHookFunc(","),
			),
			ErrorUnused:      true, // 구조체에 없는 키가 있으면 오타로 간주한다.
			WeaklyTypedInput: true,
			Result:           &appConfig,
		},
	}
	if err := k.UnmarshalWithConf("", &appConfig, unmarshalConf); err != nil {
		return nil, apperrors.Wrap(err, apperrors.System, "설정 데이터를 구조체로 변환하는데 실패했습니다")
	}

	if err := appConfig.validate(newValidator()); err != nil {
		return nil, apperrors.Wrap(err, apperrors.InvalidInput, "설정 유효성 검증에 실패했습니다")
	}

	return &appConfig, nil
}

// normalizeEnvKey COUPANG_ 접두사 환경 변수 이름을 설정 키로 변환합니다.
// 별칭으로 처리되는 변수는 빈 문자열을 반환하여 건너뜁니다.
func normalizeEnvKey(s string) string {
	if _, ok := aliasEnvKeys[s]; ok {
		return ""
	}
	s = strings.TrimPrefix(s, envPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}

func aliasEnvKey(s string) string {
	return aliasEnvKeys[s]
}
