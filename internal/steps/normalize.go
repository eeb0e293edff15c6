package steps

import (
	"fmt"

	pkgerrors "SignMeUp/pkg/errors"
)

// 向导只有第 2、3 两页可配置，每页 1~2 个组件。
const (
	FirstConfigurablePage = 2
	LastConfigurablePage  = 3
	MaxComponentsPerPage  = 2
)

// PageInput 管理端提交的原始页面布局，未经清洗。
type PageInput struct {
	PageNumber int      `json:"page_number"`
	Components []string `json:"components"`
}

// Page 规范化后的单页布局。
type Page struct {
	PageNumber int    `json:"page_number"`
	Components []Step `json:"components"`
}

// Configuration 规范化后的完整布局，总是恰好两页且按页码升序。
type Configuration struct {
	Pages []Page `json:"pages"`
}

// Default 返回未配置时的内置布局：第 2 页 about+birthdate，第 3 页 address。
func Default() Configuration {
	return Configuration{Pages: []Page{
		{PageNumber: 2, Components: []Step{StepAbout, StepBirthdate}},
		{PageNumber: 3, Components: []Step{StepAddress}},
	}}
}

// Normalize 将原始布局清洗成规范布局，服务端权威策略：
// 同一步骤被两页同时认领视为硬错误，整个请求被拒绝。
func Normalize(raw []PageInput) (Configuration, error) {
	return normalize(raw, true)
}

// NormalizeLenient 先到先得的宽松变体：后到的重复认领被静默丢弃。
// 仅用于管理端预览，规范结果从不落库。
func NormalizeLenient(raw []PageInput) (Configuration, error) {
	return normalize(raw, false)
}

func normalize(raw []PageInput, strict bool) (Configuration, error) {
	byPage := make(map[int][]Step, 2)
	seen := make(Set)

	for _, in := range raw {
		if in.PageNumber < FirstConfigurablePage || in.PageNumber > LastConfigurablePage {
			continue
		}

		bucket := byPage[in.PageNumber]
		local := make(Set)
		for _, name := range in.Components {
			step, ok := Parse(name)
			if !ok {
				continue
			}
			if local.Has(step) {
				continue // 同页重复出现只保留一次
			}
			if seen.Has(step) {
				if strict {
					return Configuration{}, pkgerrors.ConfigComponentDuplicate.WithMessage(
						fmt.Sprintf("component %q cannot be assigned to more than one page", step))
				}
				continue // 宽松策略：先认领的页面保留
			}
			bucket = append(bucket, step)
			local[step] = struct{}{}
			seen[step] = struct{}{}
		}
		byPage[in.PageNumber] = bucket
	}

	// 两个页键始终存在，空页由基数校验兜底拒绝
	for n := FirstConfigurablePage; n <= LastConfigurablePage; n++ {
		if _, ok := byPage[n]; !ok {
			byPage[n] = []Step{}
		}
	}

	pages := make([]Page, 0, 2)
	for n := FirstConfigurablePage; n <= LastConfigurablePage; n++ {
		comps := byPage[n]
		if len(comps) == 0 {
			return Configuration{}, pkgerrors.ConfigPageEmpty.WithMessage(
				fmt.Sprintf("page %d must have at least one component", n))
		}
		if len(comps) > MaxComponentsPerPage {
			return Configuration{}, pkgerrors.ConfigPageOverflow.WithMessage(
				fmt.Sprintf("page %d can have at most %d components", n, MaxComponentsPerPage))
		}
		pages = append(pages, Page{PageNumber: n, Components: comps})
	}

	return Configuration{Pages: pages}, nil
}

// Placement 持久化的一行布局记录。
type Placement struct {
	PageNumber int
	Component  string
}

// FromPlacements 把落库行还原成对外布局；未知组件行被忽略，
// 两个页键始终存在（可能为空，读路径不做基数校验）。
func FromPlacements(rows []Placement) Configuration {
	byPage := make(map[int][]Step, 2)
	for _, row := range rows {
		if row.PageNumber < FirstConfigurablePage || row.PageNumber > LastConfigurablePage {
			continue
		}
		step, ok := Parse(row.Component)
		if !ok {
			continue
		}
		dup := false
		for _, existing := range byPage[row.PageNumber] {
			if existing == step {
				dup = true
				break
			}
		}
		if !dup {
			byPage[row.PageNumber] = append(byPage[row.PageNumber], step)
		}
	}

	pages := make([]Page, 0, 2)
	for n := FirstConfigurablePage; n <= LastConfigurablePage; n++ {
		comps := byPage[n]
		if comps == nil {
			comps = []Step{}
		}
		pages = append(pages, Page{PageNumber: n, Components: comps})
	}

	return Configuration{Pages: pages}
}

// Placements 把规范布局展开成落库行。
func (c Configuration) Placements() []Placement {
	var rows []Placement
	for _, page := range c.Pages {
		for _, comp := range page.Components {
			rows = append(rows, Placement{PageNumber: page.PageNumber, Component: comp.String()})
		}
	}
	return rows
}
