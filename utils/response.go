package utils

import "github.com/gin-gonic/gin"

// ErrorBody is the uniform error response shape. Retryable plus a code like
// DATABASE_COLD_START tells the caller to back off and re-request instead of
// treating the failure as final.
type ErrorBody struct {
	Error     string `json:"error"`
	Detail    string `json:"detail,omitempty"`
	Code      string `json:"code,omitempty"`
	Retryable bool   `json:"retryable,omitempty"`
}

// Fail writes a plain error response.
func Fail(ctx *gin.Context, status int, message string) {
	ctx.JSON(status, ErrorBody{Error: message})
}

// FailCode writes an error response carrying a machine-readable code.
func FailCode(ctx *gin.Context, status int, message, code string, retryable bool) {
	ctx.JSON(status, ErrorBody{Error: message, Code: code, Retryable: retryable})
}

// FailDetail writes an error response with an extra diagnostic detail string.
func FailDetail(ctx *gin.Context, status int, message, detail string) {
	ctx.JSON(status, ErrorBody{Error: message, Detail: detail})
}
