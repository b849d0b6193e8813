package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Monachawla1712/LivSorted-auth-service/internal/domain"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/middleware"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/modules/store"
	userdir "github.com/Monachawla1712/LivSorted-auth-service/internal/modules/user"
	"github.com/Monachawla1712/LivSorted-auth-service/internal/pkg/response"
)

// Handler exposes every login surface over HTTP.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires the auth surfaces under /auth. Internal endpoints get
// the service-to-service token check; logout rides on the bearer token.
func (h *Handler) RegisterRoutes(v1 *gin.RouterGroup, auth gin.HandlerFunc, internalAuth gin.HandlerFunc) {
	g := v1.Group("/auth")
	{
		g.POST("/otp", h.sendOtp(SurfaceConsumer))
		g.POST("/verify-otp", h.verifyOtp(SurfaceConsumer))

		g.POST("/admin/otp", h.sendOtp(SurfaceAdmin))
		g.POST("/admin/verify-otp", h.verifyOtp(SurfaceAdmin))

		g.POST("/fos/otp", h.requireAppID, h.sendOtp(SurfaceFos))
		g.POST("/fos/verify-otp", h.requireAppID, h.verifyOtp(SurfaceFos))

		g.POST("/pos/otp", h.sendOtp(SurfacePos))
		g.POST("/pos/verify-otp", h.verifyOtp(SurfacePos))
		g.POST("/pos/register", h.registerStore(domain.RoleStoreManager))

		g.POST("/ims/otp", h.sendOtp(SurfaceIms))
		g.POST("/ims/verify-otp", h.verifyOtp(SurfaceIms))

		g.POST("/franchise-store/otp", h.sendOtp(SurfaceFranchise))
		g.POST("/franchise-store/verify-otp", h.verifyOtp(SurfaceFranchise))
		g.POST("/franchise-store/register", h.registerStore(domain.RoleFranchiseOwner))
		g.GET("/franchise-store/list", auth, h.listStores)
		g.POST("/franchise-store/inactivate-session/:id", internalAuth, h.inactivateStoreSession)

		g.POST("/refresh", h.refreshToken)
		g.POST("/logout", auth, h.logout)

		g.GET("/unverified/user/:id", internalAuth, h.verifyUnverifiedUser)
	}
}

// requireAppID rejects field-app calls that do not identify the client build.
func (h *Handler) requireAppID(c *gin.Context) {
	if c.GetHeader("appId") == "" {
		response.AbortError(c, http.StatusBadRequest, "appId header is required")
		return
	}
	c.Next()
}

func (h *Handler) sendOtp(surface LoginSurface) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OtpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		resp, err := h.service.SendOtp(c.Request.Context(), surface, req, c.GetHeader("userId"))
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *Handler) verifyOtp(surface LoginSurface) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req VerifyOtpRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		resp, err := h.service.VerifyOtp(c.Request.Context(), surface, req)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, resp)
	}
}

func (h *Handler) refreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	resp, err := h.service.UseRefreshToken(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) logout(c *gin.Context) {
	var req LogoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
		return
	}
	h.service.Logout(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Logged out successfully"})
}

func (h *Handler) registerStore(role domain.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req StoreRegistrationRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			response.ErrorWithDetails(c, http.StatusBadRequest, "Invalid request body", err.Error())
			return
		}
		u, err := h.service.RegisterStore(c.Request.Context(), req, role)
		if err != nil {
			h.writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"success": true, "user": u})
	}
}

func (h *Handler) listStores(c *gin.Context) {
	stores, err := h.service.GetStores(c.Request.Context(), c.GetString(middleware.CtxUserID))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, stores)
}

func (h *Handler) inactivateStoreSession(c *gin.Context) {
	if err := h.service.InactivateStoreSession(c.Request.Context(), c.Param("id")); err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) verifyUnverifiedUser(c *gin.Context) {
	resp, err := h.service.VerifyUnverifiedUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// writeError maps service errors onto the shared envelope. 469 is reserved
// for "stop and re-authenticate" states the apps treat specially.
func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOtpNotInUse):
		response.Error(c, http.StatusBadRequest, "OTP not in use")
	case errors.Is(err, ErrOtpExpired):
		response.Error(c, http.StatusBadRequest, "OTP has expired")
	case errors.Is(err, ErrRetriesExceeded):
		response.Error(c, http.StatusBadRequest, "OTP retry count exceeded")
	case errors.Is(err, ErrOtpMismatch):
		response.Error(c, http.StatusBadRequest, "OTP does not match")
	case errors.Is(err, ErrAlreadyRegistered):
		response.Error(c, http.StatusBadRequest, "User is already registered")
	case errors.Is(err, ErrUserBlocked):
		response.Error(c, response.StatusBlocked, "Your account has been blocked. Please reach out to helpline number.")
	case errors.Is(err, ErrRefreshInvalid):
		response.Error(c, response.StatusBlocked, "Refresh Token is Invalid")
	case errors.Is(err, userdir.ErrPhoneNotRegistered):
		response.Error(c, http.StatusBadRequest, "Phone number not registered")
	case errors.Is(err, userdir.ErrForbidden):
		response.Error(c, http.StatusBadRequest, "Forbidden Access")
	case errors.Is(err, userdir.ErrNotFound):
		response.Error(c, http.StatusBadRequest, "No user found")
	case errors.Is(err, store.ErrNotMapped):
		response.Error(c, http.StatusBadRequest, "No active store mapped to this user")
	case errors.Is(err, store.ErrAlreadyMapped):
		response.Error(c, http.StatusBadRequest, "User is already mapped to a store")
	case errors.Is(err, store.ErrWarehouse):
		response.Error(c, http.StatusInternalServerError, "Error while fetching stores")
	case errors.Is(err, ErrSmsSend):
		response.Error(c, http.StatusInternalServerError, "Error while sending OTP")
	default:
		response.Error(c, http.StatusInternalServerError, "Something went wrong.")
	}
}
