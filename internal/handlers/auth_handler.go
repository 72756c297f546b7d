package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/barbershop-booking/internal/audit"
	"github.com/BruksfildServices01/barbershop-booking/internal/config"
	domain "github.com/BruksfildServices01/barbershop-booking/internal/domain/booking"
	"github.com/BruksfildServices01/barbershop-booking/internal/httperr"
	"github.com/BruksfildServices01/barbershop-booking/internal/models"
	"github.com/BruksfildServices01/barbershop-booking/internal/validators"
)

const tokenTTL = 24 * time.Hour

type AuthHandler struct {
	db     *gorm.DB
	config *config.Config
	audit  *audit.Dispatcher

	// emailDomainOK consulta o DNS; os testes trocam.
	emailDomainOK func(string) bool
}

func NewAuthHandler(db *gorm.DB, cfg *config.Config, audit *audit.Dispatcher) *AuthHandler {
	return &AuthHandler{
		db:            db,
		config:        cfg,
		audit:         audit,
		emailDomainOK: validators.IsEmailDomainValid,
	}
}

// --------- Requests ---------

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"required"`
	BarberID *uint  `json:"barber_id"`
}

// --------- Handlers ---------

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	var user models.User
	if err := h.db.WithContext(c.Request.Context()).
		Where("email = ?", email).
		First(&user).Error; err != nil {

		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
			return
		}
		httperr.Internal(c, "internal_error", "Erro interno. Tente novamente.")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		httperr.Unauthorized(c, "invalid_credentials", "E-mail ou senha inválidos.")
		return
	}

	token, err := h.generateToken(&user)
	if err != nil {
		httperr.Internal(c, "failed_to_generate_token", "Erro ao gerar token.")
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Role:     user.Role,
		Action:   "login",
		Entity:   "user",
		EntityID: &user.ID,
	})

	c.JSON(http.StatusOK, gin.H{
		"user": gin.H{
			"id":        user.ID,
			"name":      user.Name,
			"email":     user.Email,
			"role":      user.Role,
			"barber_id": user.BarberID,
		},
		"token": token,
	})
}

// CreateUser cria contas do back office. Só admin chega aqui.
func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c)
		return
	}

	role, ok := domain.ParseRole(req.Role)
	if !ok || role == domain.RoleCustomer {
		httperr.BadRequest(c, "invalid_role", "Papel inválido.")
		return
	}

	ctx := c.Request.Context()

	if role == domain.RoleBarber {
		if req.BarberID == nil {
			httperr.BadRequest(c, "missing_barber_id", "Conta de barbeiro precisa do barber_id.")
			return
		}
		var count int64
		h.db.WithContext(ctx).Model(&models.Barber{}).Where("id = ?", *req.BarberID).Count(&count)
		if count == 0 {
			respondError(c, httperr.ErrNotFound(domain.CodeBarberNotFound))
			return
		}
	} else {
		req.BarberID = nil
	}

	email, ok := validators.NormalizeEmail(req.Email)
	if !ok || !h.emailDomainOK(email) {
		httperr.BadRequest(c, "invalid_email_domain", "O domínio do e-mail informado não parece ser válido.")
		return
	}

	var count int64
	h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", email).Count(&count)
	if count > 0 {
		httperr.Write(c, http.StatusConflict, "email_already_exists", "Já existe uma conta com esse e-mail.")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		httperr.Internal(c, "failed_to_hash_password", "Erro ao processar a senha.")
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hashed),
		Role:         string(role),
		BarberID:     req.BarberID,
	}

	if err := h.db.WithContext(ctx).Omit("Barber").Create(&user).Error; err != nil {
		httperr.Internal(c, "failed_to_create_user", "Erro ao criar usuário.")
		return
	}

	h.audit.Dispatch(auditEvent(c, "user_created", "user", &user.ID, gin.H{"role": user.Role}))

	c.JSON(http.StatusCreated, user)
}

// --------- JWT ---------

func (h *AuthHandler) generateToken(user *models.User) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":  user.ID,
		"role": user.Role,
		"exp":  now.Add(tokenTTL).Unix(),
		"iat":  now.Unix(),
	}
	if user.BarberID != nil {
		claims["barberId"] = *user.BarberID
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.config.JWTSecret))
}
