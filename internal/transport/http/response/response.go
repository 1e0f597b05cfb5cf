package response

import "net/http"

// ErrorBody 统一错误体：{status, message}
type ErrorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

// Error 失败响应（customMsg 为空时用 HTTP 标准文案）
func Error(status int, customMsg string) ErrorBody {
	msg := customMsg
	if msg == "" {
		msg = http.StatusText(status)
	}
	return ErrorBody{Status: status, Message: msg}
}
