package handlers

import (
	"errors"
	"net/http"

	"ayurveda-nutrition/internal/pkg/common"

	"github.com/gin-gonic/gin"
)

// BindJSON 解析請求體；格式錯誤視為驗證錯誤，超過大小上限回傳 ErrBodyTooLarge
func BindJSON(c *gin.Context, v any) error {
	if err := c.ShouldBindJSON(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return common.ErrBodyTooLarge.Wrap(err)
		}
		return common.NewFieldError("body", err.Error())
	}
	return nil
}

// RespondError 將錯誤轉為統一的 JSON 響應；debug 時附上原始錯誤
func RespondError(c *gin.Context, err error, debug bool) {
	_ = c.Error(err)
	status, resp := common.ToErrorResponse(err, debug)
	c.AbortWithStatusJSON(status, resp)
}
