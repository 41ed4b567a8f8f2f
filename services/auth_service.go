package services

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/spywithcode/ReStro/entity"
	"github.com/spywithcode/ReStro/mailer"
	"github.com/spywithcode/ReStro/pkg/apperr"
	"github.com/spywithcode/ReStro/repository"
	"github.com/spywithcode/ReStro/utils"

	"golang.org/x/crypto/bcrypt"
)

// ข้อความเดียวกันเสมอ ไม่ว่า email จะมีบัญชีหรือไม่ (กัน enumeration)
const ForgotPasswordMessage = "If an account with that email exists, a password reset link has been sent."

// AuthService จัดการ business logic ของการ login/register
type AuthService struct {
	userRepo  *repository.UserRepository
	restRepo  *repository.RestaurantRepository
	mail      mailer.Mailer
	jwtSecret string
	jwtTTL    time.Duration
	baseURL   string
}

func NewAuthService(userRepo *repository.UserRepository, restRepo *repository.RestaurantRepository, mail mailer.Mailer, secret, baseURL string, ttl time.Duration) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		restRepo:  restRepo,
		mail:      mail,
		jwtSecret: secret,
		jwtTTL:    ttl,
		baseURL:   baseURL,
	}
}

type RegisterIn struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
	Role     string `json:"role"`

	// admin เท่านั้น: ถ้าไม่ส่ง restaurantId จะสร้างร้านใหม่ให้
	RestaurantID   string `json:"restaurantId"`
	RestaurantName string `json:"restaurantName"`
	Address        string `json:"address"`
}

func validateRegister(in *RegisterIn) []apperr.FieldViolation {
	var v []apperr.FieldViolation
	add := func(field, msg string) {
		v = append(v, apperr.FieldViolation{Field: field, Message: msg})
	}
	if len(strings.TrimSpace(in.Name)) < 2 {
		add("name", "Name must be at least 2 characters")
	}
	if len(in.Name) > 50 {
		add("name", "Name cannot exceed 50 characters")
	}
	if !strings.Contains(in.Email, "@") {
		add("email", "Invalid email format")
	}
	if len(strings.TrimSpace(in.Phone)) < 10 {
		add("phone", "Phone number must be at least 10 characters")
	}
	if len(in.Password) < 6 {
		add("password", "Password must be at least 6 characters")
	}
	switch in.Role {
	case "", entity.RoleAdmin, entity.RoleStaff, entity.RoleCustomer:
	default:
		add("role", "Role must be one of: admin staff customer")
	}
	return v
}

// Register สร้าง user ใหม่ ถ้า email ซ้ำจะ error
// admin ที่ไม่ส่ง restaurantId มา = เปิดร้านใหม่พร้อมสมัคร
func (s *AuthService) Register(ctx context.Context, in *RegisterIn) (*entity.User, string, error) {
	if v := validateRegister(in); len(v) > 0 {
		return nil, "", apperr.Validation("Invalid input data", v)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))
	role := in.Role
	if role == "" {
		role = entity.RoleCustomer
	}

	count, err := s.userRepo.CountByEmail(ctx, email)
	if err != nil {
		return nil, "", apperr.Internal("failed to check email", err)
	}
	if count > 0 {
		return nil, "", apperr.Conflict("User with this email already exists")
	}

	restaurantID := strings.TrimSpace(in.RestaurantID)
	if role == entity.RoleAdmin && restaurantID == "" {
		if strings.TrimSpace(in.RestaurantName) == "" || strings.TrimSpace(in.Address) == "" {
			return nil, "", apperr.Auth("Restaurant name and address are required for admin registration", http.StatusBadRequest)
		}
		rest := entity.Restaurant{
			RestaurantID: fmt.Sprintf("rest-%d", time.Now().UnixMilli()),
			Name:         strings.TrimSpace(in.RestaurantName),
			Description:  fmt.Sprintf("Restaurant created by %s", strings.TrimSpace(in.Name)),
			Address:      strings.TrimSpace(in.Address),
			Phone:        strings.TrimSpace(in.Phone),
			Email:        email,
			ImageURL:     "/images/default-food.jpg",
			IsActive:     true,
		}
		if err := s.restRepo.Create(ctx, &rest); err != nil {
			return nil, "", apperr.Internal("failed to create restaurant", err)
		}
		restaurantID = rest.RestaurantID
	}

	if role == entity.RoleAdmin || role == entity.RoleStaff {
		if restaurantID == "" {
			return nil, "", apperr.Auth("Restaurant ID is required for admin/staff roles", http.StatusBadRequest)
		}
		rest, err := s.restRepo.FindByRestaurantID(ctx, restaurantID)
		if err != nil {
			return nil, "", apperr.NotFound("Restaurant not found")
		}
		if !rest.IsActive {
			return nil, "", apperr.Auth("Restaurant is not active", http.StatusBadRequest)
		}
	} else {
		restaurantID = "" // customer ไม่ผูกร้าน
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, "", apperr.Internal("hash password failed", err)
	}

	user := &entity.User{
		Email:        email,
		Password:     string(hashed),
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Role:         role,
		RestaurantID: restaurantID,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, "", apperr.Internal("failed to create user", err)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, user.RestaurantID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return nil, "", apperr.Internal("cannot generate token", err)
	}
	return user, token, nil
}

// Login ตรวจสอบ user + สร้าง JWT
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, apperr.Auth("invalid credentials", http.StatusUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, apperr.Auth("invalid credentials", http.StatusUnauthorized)
	}

	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, user.RestaurantID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", nil, apperr.Internal("cannot generate token", err)
	}
	return token, user, nil
}

func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, apperr.NotFound("User not found")
	}
	return user, nil
}

// UpdateProfile อัปเดตข้อมูลผู้ใช้ (ชื่อ/เบอร์/รูป)
func (s *AuthService) UpdateProfile(ctx context.Context, userID uint, updates map[string]any) (*entity.User, error) {
	if err := s.userRepo.Update(ctx, userID, updates); err != nil {
		return nil, apperr.Internal("failed to update profile", err)
	}
	return s.GetProfile(ctx, userID)
}

// ForgotPassword ตอบ success เสมอ อีเมลส่งแบบ best-effort
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") {
		return apperr.Validation("Invalid input data", []apperr.FieldViolation{
			{Field: "email", Message: "Invalid email format"},
		})
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		// บัญชีไม่มี → เงียบ ตอบ success เหมือนกันทุกกรณี
		return nil
	}

	token, hash, err := utils.NewResetToken()
	if err != nil {
		return apperr.Internal("failed to generate reset token", err)
	}
	expiry := time.Now().Add(time.Hour)
	if err := s.userRepo.SetResetToken(ctx, user.ID, hash, expiry); err != nil {
		return apperr.Internal("failed to store reset token", err)
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err := s.mail.SendPasswordReset(email, resetLink); err != nil {
		log.Printf("auth: failed to send password reset email to %s: %v", email, err)
	}
	return nil
}

// ResetPassword: token ครั้งเดียว หมดอายุ 1 ชม. เทียบแบบ constant-time
func (s *AuthService) ResetPassword(ctx context.Context, token, password string) (string, error) {
	if len(password) < 6 {
		return "", apperr.Validation("Invalid input data", []apperr.FieldViolation{
			{Field: "password", Message: "Password must be at least 6 characters"},
		})
	}

	hash := utils.HashResetToken(token)
	user, err := s.userRepo.FindByResetToken(ctx, hash)
	if err != nil || !utils.ResetTokenMatches(user.ResetToken, token) {
		return "", apperr.Auth("Invalid or expired reset token", http.StatusBadRequest)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Internal("hash password failed", err)
	}
	if err := s.userRepo.ResetPassword(ctx, user.ID, string(hashed)); err != nil {
		return "", apperr.Internal("failed to reset password", err)
	}

	jwtToken, err := utils.GenerateToken(user.ID, user.Email, user.Role, user.RestaurantID, s.jwtSecret, s.jwtTTL)
	if err != nil {
		return "", apperr.Internal("cannot generate token", err)
	}
	return jwtToken, nil
}
