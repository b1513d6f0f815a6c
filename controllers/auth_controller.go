package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sohei-site/portfolio-api/config"
	"github.com/sohei-site/portfolio-api/middleware"
	"github.com/sohei-site/portfolio-api/models"
	"github.com/sohei-site/portfolio-api/stores"
	"github.com/sohei-site/portfolio-api/utils"
)

// AuthController handles the single-admin password authentication flow.
type AuthController struct {
	admins stores.AdminStore
}

// NewAuthController creates a new AuthController instance.
func NewAuthController(admins stores.AdminStore) *AuthController {
	return &AuthController{admins: admins}
}

// Login checks the supplied password against the first admin row and issues
// a JWT on success.
func (a *AuthController) Login(ctx *gin.Context) {
	type request struct {
		Password string `json:"password"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Password == "" {
		utils.FailCode(ctx, http.StatusBadRequest, "password is required", "INVALID_INPUT", false)
		return
	}

	admin, err := a.admins.First(ctx.Request.Context())
	if err != nil {
		utils.Sugar.Errorf("admin lookup failed: %v", err)
		failStore(ctx, err, "failed to look up admin account")
		return
	}
	if admin == nil {
		utils.Fail(ctx, http.StatusUnauthorized, "no admin account is configured")
		return
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		utils.Fail(ctx, http.StatusUnauthorized, "invalid password")
		return
	}

	ttl := time.Duration(config.Get().TokenTTLMinutes) * time.Minute
	token, err := utils.GenerateToken(admin.ID, ttl)
	if err != nil {
		utils.Sugar.Errorf("token generation failed: %v", err)
		utils.FailCode(ctx, http.StatusInternalServerError, "failed to generate token", "INTERNAL", false)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"token": token})
}

// ChangePassword re-verifies the current password before accepting a new
// one. A valid token alone is never enough.
func (a *AuthController) ChangePassword(ctx *gin.Context) {
	type request struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}

	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		utils.FailCode(ctx, http.StatusBadRequest, "current and new password are required", "INVALID_INPUT", false)
		return
	}

	admin, err := a.admins.First(ctx.Request.Context())
	if err != nil {
		failStore(ctx, err, "failed to look up admin account")
		return
	}
	if admin == nil || admin.ID != middleware.AdminID(ctx) {
		utils.FailCode(ctx, http.StatusNotFound, "admin account not found", "NOT_FOUND", false)
		return
	}

	if !utils.CheckPassword(admin.PasswordHash, req.CurrentPassword) {
		utils.Fail(ctx, http.StatusUnauthorized, "current password is incorrect")
		return
	}

	digest, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		utils.FailCode(ctx, http.StatusInternalServerError, "failed to hash password", "INTERNAL", false)
		return
	}
	if err := a.admins.UpdatePassword(ctx.Request.Context(), admin.ID, digest); err != nil {
		failStore(ctx, err, "failed to update password")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "password changed"})
}

// Setup creates the admin account when none exists yet; once a row is
// present this path stays closed for good.
func (a *AuthController) Setup(ctx *gin.Context) {
	existing, err := a.admins.First(ctx.Request.Context())
	if err != nil {
		failStore(ctx, err, "failed to look up admin account")
		return
	}
	if existing != nil {
		utils.FailCode(ctx, http.StatusConflict, "admin account already configured", "ALREADY_CONFIGURED", false)
		return
	}

	type request struct {
		Password string `json:"password"`
	}
	var req request
	if err := ctx.ShouldBindJSON(&req); err != nil || req.Password == "" {
		utils.FailCode(ctx, http.StatusBadRequest, "password is required", "INVALID_INPUT", false)
		return
	}

	digest, err := utils.HashPassword(req.Password)
	if err != nil {
		utils.FailCode(ctx, http.StatusInternalServerError, "failed to hash password", "INTERNAL", false)
		return
	}
	if err := a.admins.Create(ctx.Request.Context(), &models.Admin{PasswordHash: digest}); err != nil {
		failStore(ctx, err, "failed to create admin account")
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "admin account created"})
}

// Verify is a liveness check for the bearer token; the auth middleware has
// already done the work by the time this runs.
func (a *AuthController) Verify(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{"valid": true})
}

// SeedAdmin creates the admin row from the configured password when the
// table is empty. It never touches an existing row: once an admin exists,
// password changes only happen through the authenticated endpoint.
func SeedAdmin(ctx context.Context, admins stores.AdminStore, password string) error {
	if password == "" {
		return nil
	}
	existing, err := admins.First(ctx)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	digest, err := utils.HashPassword(password)
	if err != nil {
		return err
	}
	return admins.Create(ctx, &models.Admin{PasswordHash: digest})
}
