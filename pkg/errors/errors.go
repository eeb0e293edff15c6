package errors

func (d Definition) Error() string {
	return d.Message
}

// Definition 表示业务错误码及默认信息。
type Definition struct {
	Code    string
	Message string
}

// WithMessage 返回携带具体信息的同码错误，用于在消息中指明违规的页码或组件。
func (d Definition) WithMessage(message string) Definition {
	return Definition{Code: d.Code, Message: message}
}

// 向导布局配置错误。
var (
	ConfigPageInvalid        = Definition{Code: "CONFIG_PAGE_INVALID", Message: "Page number must be 2 or 3"}
	ConfigComponentUnknown   = Definition{Code: "CONFIG_COMPONENT_UNKNOWN", Message: "Unknown step component"}
	ConfigComponentDuplicate = Definition{Code: "CONFIG_COMPONENT_DUPLICATE", Message: "Component cannot be assigned to more than one page"}
	ConfigPageEmpty          = Definition{Code: "CONFIG_PAGE_EMPTY", Message: "Each of pages 2 and 3 must have at least one component"}
	ConfigPageOverflow       = Definition{Code: "CONFIG_PAGE_OVERFLOW", Message: "Each page can have at most two components"}
)

// 提交流程错误。
var (
	ValidationFailed = Definition{Code: "VALIDATION_FAILED", Message: "Validation failed"}
	EmailRequired    = Definition{Code: "EMAIL_REQUIRED", Message: "Email is required"}
	PasswordRequired = Definition{Code: "PASSWORD_REQUIRED", Message: "Password is required to create a new account"}
	NoStepsEnabled   = Definition{Code: "NO_STEPS_ENABLED", Message: "No onboarding steps are enabled by admin"}
	AccountNotFound  = Definition{Code: "ACCOUNT_NOT_FOUND", Message: "Account not found"}
)

// 请求层错误。
var (
	InvalidRequest  = Definition{Code: "INVALID_REQUEST", Message: "Invalid request payload"}
	RateLimited     = Definition{Code: "RATE_LIMITED", Message: "Too many requests, try again later"}
	DraftNotFound   = Definition{Code: "DRAFT_NOT_FOUND", Message: "No wizard draft in session"}
	InternalFailure = Definition{Code: "INTERNAL_ERROR", Message: "Internal server error"}
)

// Lookup 提供错误码查询能力。
var Lookup = map[string]Definition{
	ConfigPageInvalid.Code:        ConfigPageInvalid,
	ConfigComponentUnknown.Code:   ConfigComponentUnknown,
	ConfigComponentDuplicate.Code: ConfigComponentDuplicate,
	ConfigPageEmpty.Code:          ConfigPageEmpty,
	ConfigPageOverflow.Code:       ConfigPageOverflow,
	ValidationFailed.Code:         ValidationFailed,
	EmailRequired.Code:            EmailRequired,
	PasswordRequired.Code:         PasswordRequired,
	NoStepsEnabled.Code:           NoStepsEnabled,
	AccountNotFound.Code:          AccountNotFound,
	InvalidRequest.Code:           InvalidRequest,
	RateLimited.Code:              RateLimited,
	DraftNotFound.Code:            DraftNotFound,
	InternalFailure.Code:          InternalFailure,
}

// Get 根据错误码返回 Definition，若不存在则返回空 Definition。
func Get(code string) Definition {
	if def, ok := Lookup[code]; ok {
		return def
	}
	return Definition{Code: code, Message: "Unexpected error"}
}
