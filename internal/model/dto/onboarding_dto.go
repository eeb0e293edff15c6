package dto

// ========== 引导提交相关 DTO ==========

// AboutMePayload AboutMe 小节
type AboutMePayload struct {
	Bio *string `json:"bio,omitempty"`
}

// BirthdatePayload Birthdate 小节，date 格式 YYYY-MM-DD
type BirthdatePayload struct {
	Date string `json:"date"`
}

// AddressPayload Address 小节
type AddressPayload struct {
	Line1 string `json:"line1"`
	Line2 string `json:"line2,omitempty"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}

// SubmitOnboardingRequest 引导提交请求。小节键是 TitleCase，
// 缺省的小节表示分步提交时还没填到那一步。
type SubmitOnboardingRequest struct {
	Email    string `json:"email"`
	Password string `json:"password,omitempty"` // 仅创建新账号时必填

	AboutMe   *AboutMePayload   `json:"AboutMe,omitempty"`
	Birthdate *BirthdatePayload `json:"Birthdate,omitempty"`
	Address   *AddressPayload   `json:"Address,omitempty"`
}

// SubmitOnboardingResponse 提交成功响应，id 在 upsert 前后保持稳定
type SubmitOnboardingResponse struct {
	ID string `json:"id"`
}

// WizardDraft 会话级的向导草稿，账号字段跨步骤携带，
// 提交成功或放弃后即丢弃。
type WizardDraft struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`

	AboutMe   *AboutMePayload   `json:"AboutMe,omitempty"`
	Birthdate *BirthdatePayload `json:"Birthdate,omitempty"`
	Address   *AddressPayload   `json:"Address,omitempty"`
}
