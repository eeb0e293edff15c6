package steps

import (
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// 只做形状校验：四位-两位-两位，不做日历合法性检查
var ymdPattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// AboutMeSection 提交 payload 的 AboutMe 小节。
type AboutMeSection struct {
	Bio *string `json:"bio,omitempty" validate:"omitnil,min=3"`
}

// BirthdateSection 提交 payload 的 Birthdate 小节。
type BirthdateSection struct {
	Date string `json:"date" validate:"required,ymd"`
}

// AddressSection 提交 payload 的 Address 小节。
type AddressSection struct {
	Line1 string `json:"line1" validate:"min=3"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city" validate:"min=2"`
	State string `json:"state" validate:"min=2"`
	Zip   string `json:"zip" validate:"min=3"`
}

// Submission 引导提交的完整 payload。小节指针为 nil 表示该小节未提交，
// 支持分步的部分提交；未启用的小节即使提交了也不校验。
type Submission struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`

	AboutMe   *AboutMeSection   `json:"AboutMe,omitempty"`
	Birthdate *BirthdateSection `json:"Birthdate,omitempty"`
	Address   *AddressSection   `json:"Address,omitempty"`
}

// Schema 按启用步骤动态组装的提交校验器。每个请求单独构建，无共享可变状态。
type Schema struct {
	enabled Set
	v       *validator.Validate
}

// BuildSchema 由启用步骤集合构建校验器。
// email/password 的必填规则是提交处理器的业务逻辑，不在 Schema 内。
func BuildSchema(enabled Set) *Schema {
	v := validator.New()

	// 错误路径使用 json 标签名而不是 Go 字段名
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		return ymdPattern.MatchString(fl.Field().String())
	})

	return &Schema{enabled: enabled, v: v}
}

// Validate 校验提交内容，返回 字段路径 -> 提示信息 的扁平映射，合法时为 nil。
func (s *Schema) Validate(sub *Submission) map[string]string {
	fieldErrors := make(map[string]string)

	s.validateSection(StepAbout, sub.AboutMe, fieldErrors)
	s.validateSection(StepBirthdate, sub.Birthdate, fieldErrors)
	s.validateSection(StepAddress, sub.Address, fieldErrors)

	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// validateSection 对单个小节做条件校验：步骤未启用或小节未提交都直接跳过。
func (s *Schema) validateSection(step Step, section interface{}, out map[string]string) {
	if !s.enabled.Has(step) {
		return
	}
	if section == nil || reflect.ValueOf(section).IsNil() {
		return
	}

	err := s.v.Struct(section)
	if err == nil {
		return
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		out[step.SectionKey()] = err.Error()
		return
	}

	for _, fe := range verrs {
		path := step.SectionKey() + "." + fe.Field()
		out[path] = messageFor(step, fe.Field(), fe.Tag())
	}
}

// messageFor 还原前端文案，未命中的组合退回通用提示。
func messageFor(step Step, field, tag string) string {
	switch step {
	case StepAbout:
		if field == "bio" {
			return "Please write at least 3 characters"
		}
	case StepBirthdate:
		if field == "date" {
			if tag == "required" {
				return "Birthdate is required"
			}
			return "Use YYYY-MM-DD"
		}
	case StepAddress:
		switch field {
		case "line1":
			return "Street address is required"
		case "city":
			return "City is required"
		case "state":
			return "State is required"
		case "zip":
			return "ZIP is required"
		}
	}
	return "Invalid value"
}
