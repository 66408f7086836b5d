package admin

import (
	"github.com/duka-admin/internal/http/response"

	"github.com/gin-gonic/gin"
)

// UploadFile 上传文件
func (h *Handler) UploadFile(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		respondError(c, response.CodeBadRequest, "未找到上传文件", err)
		return
	}
	scene := c.DefaultPostForm("scene", "common")

	url, err := h.UploadService.SaveFile(file, scene)
	if err != nil {
		respondServiceError(c, err, "文件上传失败")
		return
	}
	response.Success(c, gin.H{
		"url":      url,
		"filename": file.Filename,
		"size":     file.Size,
	})
}
