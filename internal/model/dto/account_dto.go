package dto

// ========== 账号列表相关 DTO ==========

// AccountRow 只读列表的扁平行，地址字段拍平，birth_date 为 YYYY-MM-DD 或空串
type AccountRow struct {
	ID          string `json:"id"`
	Email       string `json:"email"`
	About       string `json:"about"`
	Street      string `json:"street"`
	City        string `json:"city"`
	State       string `json:"state"`
	Zip         string `json:"zip"`
	BirthDate   string `json:"birth_date"`
	OnboardStep int    `json:"onboard_step"`
}

// AccountListData 列表响应
type AccountListData struct {
	Accounts []AccountRow `json:"accounts"`
}
