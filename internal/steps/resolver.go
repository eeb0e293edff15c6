package steps

// Resolve 由持久化的布局行求出当前启用的步骤集合（两页取并集）。
//
// 一行都没有说明管理员从未配置过，此时退回「全部启用」保证系统可用，
// usedFallback 置 true。行存在但并集为空（比如全是未知组件的脏数据）
// 返回空集合，提交路径对空集合必须拒绝提交而不是放行。
func Resolve(rows []Placement) (enabled Set, usedFallback bool) {
	if len(rows) == 0 {
		return NewSet(All...), true
	}

	enabled = make(Set)
	for _, row := range rows {
		if step, ok := Parse(row.Component); ok {
			enabled[step] = struct{}{}
		}
	}
	return enabled, false
}
