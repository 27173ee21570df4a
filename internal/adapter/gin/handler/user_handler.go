package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"usuarios-api/internal/usecase/user"
	apperrors "usuarios-api/pkg/errors"
	"usuarios-api/pkg/logger"
)

// Response messages
const (
	MsgUserCreated  = "Usuario creado"
	MsgUserUpdated  = "Usuario actualizado"
	MsgUserDeleted  = "Usuario eliminado"
	MsgUserNotFound = "Usuario no encontrado"
)

// UserHandler handles HTTP requests for user operations
type UserHandler struct {
	uc  user.Usecase
	log *zap.Logger
}

// NewUserHandler creates a new UserHandler instance
func NewUserHandler(uc user.Usecase, log *zap.Logger) *UserHandler {
	return &UserHandler{
		uc:  uc,
		log: log,
	}
}

// CreateUserRequest represents the HTTP request body for creating a user.
// Every field is optional; unknown fields are ignored.
type CreateUserRequest struct {
	Nombre *string `json:"nombre"`
	Cedula *Number `json:"cedula"`
	Email  *string `json:"email"`
	Edad   *Number `json:"edad"`
}

// UpdateUserRequest represents the HTTP request body for updating a user.
// Omitted fields keep their stored value.
type UpdateUserRequest struct {
	Nombre *string `json:"nombre"`
	Cedula *Number `json:"cedula"`
	Email  *string `json:"email"`
	Edad   *Number `json:"edad"`
}

// UserResponse represents the HTTP response for user data
type UserResponse struct {
	ID     string   `json:"_id"`
	Nombre *string  `json:"nombre,omitempty"`
	Cedula *float64 `json:"cedula,omitempty"`
	Email  *string  `json:"email,omitempty"`
	Edad   *float64 `json:"edad,omitempty"`
}

// UserMessageResponse pairs a confirmation message with the affected user
type UserMessageResponse struct {
	Mensaje string       `json:"mensaje"`
	Usuario UserResponse `json:"usuario"`
}

// MessageResponse carries a bare message, used for not-found responses
type MessageResponse struct {
	Mensaje string `json:"mensaje"`
}

// ErrorResponse represents an error response. Message holds the raw error detail.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// CreateUser handles POST /usuarios
func (h *UserHandler) CreateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	var req CreateUserRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		log.Warn("Invalid create user request", zap.Error(err))
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	resp, err := h.uc.CreateUser(c.Request.Context(), user.CreateUserRequest{UserFields: user.UserFields{
		Nombre: req.Nombre,
		Cedula: req.Cedula.Ptr(),
		Email:  req.Email,
		Edad:   req.Edad.Ptr(),
	}})
	if err != nil {
		log.Error("CreateUser failed", zap.Error(err))
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusCreated, UserMessageResponse{
		Mensaje: MsgUserCreated,
		Usuario: toResponse(resp.User),
	})
}

// ListUsers handles GET /usuarios
func (h *UserHandler) ListUsers(c *gin.Context) {
	resp, err := h.uc.ListUsers(c.Request.Context())
	if err != nil {
		logger.WithContext(c.Request.Context(), h.log).Error("ListUsers failed", zap.Error(err))
		h.respondError(c, http.StatusInternalServerError, err)
		return
	}

	users := make([]UserResponse, len(resp.Users))
	for i, u := range resp.Users {
		users[i] = toResponse(u)
	}

	c.JSON(http.StatusOK, users)
}

// UpdateUser handles PUT /usuarios/:cc
func (h *UserHandler) UpdateUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	cedula, err := parseCedula(c)
	if err != nil {
		log.Warn("Invalid cedula", zap.String("cc", c.Param("cc")), zap.Error(err))
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	var req UpdateUserRequest
	if err := bindOptionalJSON(c, &req); err != nil {
		log.Warn("Invalid update user request", zap.Float64("cedula", cedula), zap.Error(err))
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	resp, err := h.uc.UpdateUser(c.Request.Context(), user.UpdateUserRequest{
		Cedula: cedula,
		Fields: user.UserFields{
			Nombre: req.Nombre,
			Cedula: req.Cedula.Ptr(),
			Email:  req.Email,
			Edad:   req.Edad.Ptr(),
		},
	})
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, MessageResponse{Mensaje: MsgUserNotFound})
			return
		}
		log.Error("UpdateUser failed", zap.Float64("cedula", cedula), zap.Error(err))
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, UserMessageResponse{
		Mensaje: MsgUserUpdated,
		Usuario: toResponse(resp.User),
	})
}

// DeleteUser handles DELETE /usuarios/:cc
func (h *UserHandler) DeleteUser(c *gin.Context) {
	log := logger.WithContext(c.Request.Context(), h.log)

	cedula, err := parseCedula(c)
	if err != nil {
		log.Warn("Invalid cedula", zap.String("cc", c.Param("cc")), zap.Error(err))
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	resp, err := h.uc.DeleteUser(c.Request.Context(), user.DeleteUserRequest{Cedula: cedula})
	if err != nil {
		if apperrors.IsNotFound(err) {
			c.JSON(http.StatusNotFound, MessageResponse{Mensaje: MsgUserNotFound})
			return
		}
		log.Error("DeleteUser failed", zap.Float64("cedula", cedula), zap.Error(err))
		h.respondError(c, http.StatusBadRequest, err)
		return
	}

	c.JSON(http.StatusOK, UserMessageResponse{
		Mensaje: MsgUserDeleted,
		Usuario: toResponse(resp.User),
	})
}

// respondError writes err with the status chosen by the calling handler
func (h *UserHandler) respondError(c *gin.Context, status int, err error) {
	c.JSON(status, ErrorResponse{
		Error:   apperrors.Code(err),
		Message: err.Error(),
	})
}

// parseCedula coerces the :cc path parameter to a number, so "789.0" matches 789
func parseCedula(c *gin.Context) (float64, error) {
	cedula, err := parseNumber(c.Param("cc"))
	if err != nil {
		return 0, apperrors.NewValidationError("cedula", "Cast to Number failed for value \""+c.Param("cc")+"\"")
	}
	return cedula, nil
}

// bindOptionalJSON decodes the body into obj; an empty body leaves obj untouched.
// Decode failures come back as validation errors.
func bindOptionalJSON(c *gin.Context, obj any) error {
	err := c.ShouldBindJSON(obj)
	if err == nil || errors.Is(err, io.EOF) {
		return nil
	}
	if apperrors.IsValidation(err) {
		return err
	}
	return apperrors.WrapValidationError("body", err)
}

func toResponse(u user.User) UserResponse {
	return UserResponse{
		ID:     u.ID,
		Nombre: u.Nombre,
		Cedula: u.Cedula,
		Email:  u.Email,
		Edad:   u.Edad,
	}
}
