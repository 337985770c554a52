package validator

import (
	"fmt"
	"log/slog"
	"slices"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// GetValidator returns the go-playground engine behind gin's binding.Validator
func GetValidator() (*validator.Validate, error) {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil, fmt.Errorf("validator 엔진을 가져올 수 없습니다")
	}
	return v, nil
}

// RegisterAll installs the shared tags. Both REST binding and GraphQL input
// validation go through the same engine, so this must run before either.
func RegisterAll() error {
	v, err := GetValidator()
	if err != nil {
		return fmt.Errorf("validator 엔진 가져오기 실패: %w", err)
	}

	tags := make([]string, 0, len(rules))
	for tag, fn := range rules {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return fmt.Errorf("%s validator 등록 실패: %w", tag, err)
		}
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	slog.Debug("공통 Validator 등록 완료", "validators", strings.Join(tags, ","))
	return nil
}
