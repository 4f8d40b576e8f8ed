package nostd

import (
	"errors"
	"reflect"
	"sort"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	entranslations "github.com/go-playground/validator/v10/translations/en"
)

type CustomValidator struct {
	Validator *validator.Validate
	trans     ut.Translator
}

// TransInit 注册英文翻译，字段名取 json tag
func (cv *CustomValidator) TransInit() error {
	locale := en.New()
	uni := ut.New(locale, locale)
	trans, _ := uni.GetTranslator("en")

	cv.Validator.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	if err := entranslations.RegisterDefaultTranslations(cv.Validator, trans); err != nil {
		return err
	}
	cv.trans = trans
	return nil
}

func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.Validator.Struct(i)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return err
	}
	fields := make(FieldErrors, len(validationErrors))
	for _, fe := range validationErrors {
		if cv.trans != nil {
			fields[fe.Field()] = fe.Translate(cv.trans)
		} else {
			fields[fe.Field()] = fe.Error()
		}
	}
	return fields
}

// FieldErrors 字段 -> 错误信息
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	messages := make([]string, 0, len(keys))
	for _, k := range keys {
		messages = append(messages, f[k])
	}
	return strings.Join(messages, "; ")
}
