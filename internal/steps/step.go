package steps

import "strings"

// Step 表示向导中的一个可选步骤，落库与接口里统一是小写标识。
type Step string

const (
	StepAbout     Step = "about"
	StepBirthdate Step = "birthdate"
	StepAddress   Step = "address"
)

// All 按固定顺序列出全部步骤。
var All = []Step{StepAbout, StepBirthdate, StepAddress}

// sectionKeys 小写标识到提交 payload 中 TitleCase 小节键的映射。
var sectionKeys = map[Step]string{
	StepAbout:     "AboutMe",
	StepBirthdate: "Birthdate",
	StepAddress:   "Address",
}

// Parse 将任意大小写的组件名解析为 Step，未知名称返回 false。
func Parse(raw string) (Step, bool) {
	s := Step(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := sectionKeys[s]; !ok {
		return "", false
	}
	return s, true
}

// SectionKey 返回提交 payload 中对应的小节键，如 about -> AboutMe。
func (s Step) SectionKey() string {
	return sectionKeys[s]
}

func (s Step) String() string {
	return string(s)
}

// Set 是一组启用的步骤。
type Set map[Step]struct{}

// NewSet 由若干步骤构造集合。
func NewSet(ss ...Step) Set {
	set := make(Set, len(ss))
	for _, s := range ss {
		set[s] = struct{}{}
	}
	return set
}

func (set Set) Has(s Step) bool {
	_, ok := set[s]
	return ok
}

// Slice 按 All 的固定顺序导出集合内容。
func (set Set) Slice() []Step {
	out := make([]Step, 0, len(set))
	for _, s := range All {
		if set.Has(s) {
			out = append(out, s)
		}
	}
	return out
}
