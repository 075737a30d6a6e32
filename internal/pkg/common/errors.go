package common

import (
	"errors"
	"net/http"
)

// ErrorResponse 定義 API 錯誤響應結構
type ErrorResponse struct {
	Code    string `json:"code"`              // 錯誤代碼
	Message string `json:"message"`           // 錯誤信息
	Details string `json:"details,omitempty"` // 詳細信息（僅在開發模式顯示）
}

// CustomError 定義自定義錯誤類型
type CustomError struct {
	Code    string // 錯誤代碼
	Message string // 錯誤信息
	Err     error  // 原始錯誤
	Status  int    // HTTP 狀態碼
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap 回傳原始錯誤
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is 以錯誤代碼比對，讓 errors.Is(err, ErrNotFound) 可用於包裝過的錯誤
func (e *CustomError) Is(target error) bool {
	var t *CustomError
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code
}

// Wrap 以同樣代碼包裝新的原始錯誤
func (e *CustomError) Wrap(err error) *CustomError {
	return &CustomError{Code: e.Code, Message: e.Message, Status: e.Status, Err: err}
}

// NewError 創建新的自定義錯誤
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// ValidationError 表示輸入資料違反契約（缺少必要欄位、未知列舉值）
type ValidationError struct {
	Field   string
	message string
}

// Error 實現 error 介面
func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.message
	}
	return e.Field + ": " + e.message
}

// NewFieldError 創建指定欄位的驗證錯誤
func NewFieldError(field, message string) error {
	return &ValidationError{Field: field, message: message}
}

// IsValidationError 檢查錯誤鏈中是否含有驗證錯誤
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// 預定義錯誤代碼
const (
	ErrCodeInvalidRequest  = "INVALID_REQUEST"   // 400
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeRequestTimeout  = "REQUEST_TIMEOUT"   // 408
	ErrCodeBodyTooLarge    = "BODY_TOO_LARGE"    // 413
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	ErrCodeInternalError = "INTERNAL_ERROR" // 500
)

// 預定義錯誤
var (
	ErrInvalidRequest  = NewError(ErrCodeInvalidRequest, "無效的請求", http.StatusBadRequest, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "資源不存在", http.StatusNotFound, nil)
	ErrRequestTimeout  = NewError(ErrCodeRequestTimeout, "請求超時", http.StatusRequestTimeout, nil)
	ErrBodyTooLarge    = NewError(ErrCodeBodyTooLarge, "請求內容過大", http.StatusRequestEntityTooLarge, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "請求過於頻繁", http.StatusTooManyRequests, nil)
	ErrInternalError   = NewError(ErrCodeInternalError, "服務器內部錯誤", http.StatusInternalServerError, nil)

	// 業務錯誤
	ErrFoodNotFound = NewError("FOOD_NOT_FOUND", "找不到食材", http.StatusNotFound, nil)
	ErrCacheMiss    = NewError("CACHE_MISS", "快取未命中", http.StatusNotFound, nil)
)

// ToErrorResponse 將任意錯誤轉換為 HTTP 狀態碼與響應內容
func ToErrorResponse(err error, debug bool) (int, ErrorResponse) {
	if IsValidationError(err) {
		return http.StatusBadRequest, ErrorResponse{
			Code:    ErrCodeInvalidRequest,
			Message: ErrInvalidRequest.Message,
			Details: err.Error(),
		}
	}

	var ce *CustomError
	if errors.As(err, &ce) {
		resp := ErrorResponse{Code: ce.Code, Message: ce.Message}
		if debug && ce.Err != nil {
			resp.Details = ce.Err.Error()
		}
		return ce.Status, resp
	}

	resp := ErrorResponse{Code: ErrCodeInternalError, Message: ErrInternalError.Message}
	if debug {
		resp.Details = err.Error()
	}
	return http.StatusInternalServerError, resp
}
