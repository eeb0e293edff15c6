package dto

// ========== 向导布局配置相关 DTO ==========

// PageLayout 单页布局
type PageLayout struct {
	PageNumber int      `json:"page_number"`
	Components []string `json:"components"`
}

// ConfigData 布局配置响应
type ConfigData struct {
	Pages []PageLayout `json:"pages"`
}

// ReplaceConfigRequest 整体替换布局请求，原始形状，由 Normalizer 清洗
type ReplaceConfigRequest struct {
	Pages []PageLayout `json:"pages" binding:"required"`
}
