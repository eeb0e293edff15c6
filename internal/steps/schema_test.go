package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strptr(s string) *string { return &s }

func TestSchemaValidatesOnlyEnabledSections(t *testing.T) {
	schema := BuildSchema(NewSet(StepAddress))

	// address 启用且不合法，birthdate 未启用所以脏数据被无视
	sub := &Submission{
		Email:     "a@b.com",
		Birthdate: &BirthdateSection{Date: "not-a-date"},
		Address: &AddressSection{
			Line1: "ab", // 不足 3 个字符
			City:  "Springfield",
			State: "IL",
			Zip:   "62704",
		},
	}

	fieldErrors := schema.Validate(sub)
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "Street address is required", fieldErrors["Address.line1"])
}

func TestSchemaSkipsMissingSections(t *testing.T) {
	schema := BuildSchema(NewSet(StepAbout, StepBirthdate, StepAddress))

	// 分步提交：还没填到的小节不报错
	sub := &Submission{Email: "a@b.com"}
	assert.Nil(t, schema.Validate(sub))
}

func TestSchemaAboutMeMessages(t *testing.T) {
	schema := BuildSchema(NewSet(StepAbout))

	fieldErrors := schema.Validate(&Submission{
		AboutMe: &AboutMeSection{Bio: strptr("hi")},
	})
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "Please write at least 3 characters", fieldErrors["AboutMe.bio"])

	// bio 为 nil 表示没填，合法
	assert.Nil(t, schema.Validate(&Submission{AboutMe: &AboutMeSection{}}))
}

func TestSchemaBirthdateShapeOnly(t *testing.T) {
	schema := BuildSchema(NewSet(StepBirthdate))

	fieldErrors := schema.Validate(&Submission{
		Birthdate: &BirthdateSection{Date: ""},
	})
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "Birthdate is required", fieldErrors["Birthdate.date"])

	fieldErrors = schema.Validate(&Submission{
		Birthdate: &BirthdateSection{Date: "1990/01/02"},
	})
	require.Len(t, fieldErrors, 1)
	assert.Equal(t, "Use YYYY-MM-DD", fieldErrors["Birthdate.date"])

	// 形状对但日历非法的日期这里放行，落库阶段静默跳过
	assert.Nil(t, schema.Validate(&Submission{
		Birthdate: &BirthdateSection{Date: "2024-13-40"},
	}))
}

func TestSchemaAddressMessages(t *testing.T) {
	schema := BuildSchema(NewSet(StepAddress))

	fieldErrors := schema.Validate(&Submission{
		Address: &AddressSection{},
	})
	require.Len(t, fieldErrors, 4)
	assert.Equal(t, "Street address is required", fieldErrors["Address.line1"])
	assert.Equal(t, "City is required", fieldErrors["Address.city"])
	assert.Equal(t, "State is required", fieldErrors["Address.state"])
	assert.Equal(t, "ZIP is required", fieldErrors["Address.zip"])

	// line2 完全自由
	assert.Nil(t, schema.Validate(&Submission{
		Address: &AddressSection{
			Line1: "742 Evergreen Terrace",
			Line2: "",
			City:  "Springfield",
			State: "IL",
			Zip:   "62704",
		},
	}))
}
