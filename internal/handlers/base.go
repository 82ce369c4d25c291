package handlers

import (
	"net/http"

	"ecohub/internal/dto"
	"ecohub/internal/logger"
	"ecohub/internal/middleware"
	"ecohub/internal/services"
	"ecohub/internal/validation"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondOK 成功响应统一包在 data 中
func respondOK(c *gin.Context, code int, data interface{}) {
	c.JSON(code, gin.H{"data": data})
}

// respondError 按错误分类映射状态码，内部错误只记录日志
func respondError(c *gin.Context, err error) {
	code := statusFor(services.KindOf(err))
	if code >= http.StatusInternalServerError {
		logger.Error("Request error",
			zap.String("path", c.FullPath()),
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(code, gin.H{"error": services.PublicMessage(err)})
}

func badRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": validation.Translate(err)})
}

func statusFor(kind services.ErrorKind) int {
	switch kind {
	case services.KindBadRequest:
		return http.StatusBadRequest
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindConflict:
		return http.StatusConflict
	case services.KindUnauthorized:
		return http.StatusUnauthorized
	case services.KindForbidden:
		return http.StatusForbidden
	default:
		return http.StatusInternalServerError
	}
}

// formFile 读取 multipart 的 file 字段，调用方负责关闭
func formFile(c *gin.Context) (*dto.FileUpload, func(), error) {
	header, err := c.FormFile("file")
	if err != nil {
		return nil, nil, services.BadRequest("file is required")
	}
	f, err := header.Open()
	if err != nil {
		return nil, nil, services.Internal(err, "failed to read upload")
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		buf := make([]byte, 512)
		n, _ := f.Read(buf)
		contentType = http.DetectContentType(buf[:n])
		if _, err := f.Seek(0, 0); err != nil {
			f.Close()
			return nil, nil, services.Internal(err, "failed to read upload")
		}
	}
	upload := &dto.FileUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        header.Size,
		Reader:      f,
	}
	return upload, func() { f.Close() }, nil
}
