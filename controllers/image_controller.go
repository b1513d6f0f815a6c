package controllers

import (
	"encoding/base64"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sohei-site/portfolio-api/models"
	"github.com/sohei-site/portfolio-api/stores"
	"github.com/sohei-site/portfolio-api/utils"
)

// maxImageSize caps uploads at 5MB before base64 expansion.
const maxImageSize = 5 * 1024 * 1024

// ImageController handles binary image CRUD, stored base64 at rest.
type ImageController struct {
	images stores.ImageStore
}

// NewImageController creates a new ImageController instance.
func NewImageController(images stores.ImageStore) *ImageController {
	return &ImageController{images: images}
}

// ListKeys returns the image keys stored for a page. Public.
func (i *ImageController) ListKeys(ctx *gin.Context) {
	keys, err := i.images.Keys(ctx.Request.Context(), ctx.Param("page"))
	if err != nil {
		utils.Sugar.Errorf("image key listing failed: %v", err)
		failStore(ctx, err, "failed to list images")
		return
	}
	if keys == nil {
		keys = []string{}
	}
	ctx.JSON(http.StatusOK, gin.H{"keys": keys})
}

// GetImage serves the decoded binary with its stored MIME type. Public.
func (i *ImageController) GetImage(ctx *gin.Context) {
	img, err := i.images.Get(ctx.Request.Context(), ctx.Param("page"), ctx.Param("key"))
	if err != nil {
		utils.Sugar.Errorf("image read failed: %v", err)
		failStore(ctx, err, "failed to read image")
		return
	}
	if img == nil {
		utils.FailCode(ctx, http.StatusNotFound, "image not found", "NOT_FOUND", false)
		return
	}

	data, err := base64.StdEncoding.DecodeString(img.Data)
	if err != nil {
		utils.Sugar.Errorf("stored image %s/%s is not valid base64: %v", img.Page, img.Key, err)
		utils.FailCode(ctx, http.StatusInternalServerError, "failed to decode image", "INTERNAL", false)
		return
	}

	ctx.Header("Cache-Control", "public, max-age=3600")
	ctx.Data(http.StatusOK, img.MimeType, data)
}

// Upload stores or replaces the image at (page, key) from the multipart
// field "image". Only image/* content within the size cap is accepted.
func (i *ImageController) Upload(ctx *gin.Context) {
	file, header, err := ctx.Request.FormFile("image")
	if err != nil {
		utils.FailCode(ctx, http.StatusBadRequest, "image file is required", "INVALID_INPUT", false)
		return
	}
	defer file.Close()

	if header.Size > maxImageSize {
		utils.FailCode(ctx, http.StatusBadRequest, "image exceeds the 5MB limit", "INVALID_INPUT", false)
		return
	}

	// Read through a limited reader so a lying Content-Length cannot push
	// an oversized body into the store.
	data, err := io.ReadAll(&io.LimitedReader{R: file, N: maxImageSize + 1})
	if err != nil {
		utils.Sugar.Errorf("image upload read failed: %v", err)
		utils.FailCode(ctx, http.StatusInternalServerError, "failed to read upload", "INTERNAL", false)
		return
	}
	if len(data) > maxImageSize {
		utils.FailCode(ctx, http.StatusBadRequest, "image exceeds the 5MB limit", "INVALID_INPUT", false)
		return
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(mimeType, "image/") {
		utils.FailCode(ctx, http.StatusBadRequest, "only image uploads are allowed", "INVALID_INPUT", false)
		return
	}

	img := models.Image{
		Page:     ctx.Param("page"),
		Key:      ctx.Param("key"),
		Data:     base64.StdEncoding.EncodeToString(data),
		MimeType: mimeType,
	}
	if err := i.images.Upsert(ctx.Request.Context(), &img); err != nil {
		utils.Sugar.Errorf("image upsert failed: %v", err)
		failStore(ctx, err, "failed to save image")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "image saved"})
}

// Delete removes the image at (page, key); 404 when nothing was stored.
func (i *ImageController) Delete(ctx *gin.Context) {
	count, err := i.images.Delete(ctx.Request.Context(), ctx.Param("page"), ctx.Param("key"))
	if err != nil {
		utils.Sugar.Errorf("image delete failed: %v", err)
		failStore(ctx, err, "failed to delete image")
		return
	}
	if count == 0 {
		utils.FailCode(ctx, http.StatusNotFound, "image not found", "NOT_FOUND", false)
		return
	}
	ctx.JSON(http.StatusOK, gin.H{"message": "image deleted"})
}
