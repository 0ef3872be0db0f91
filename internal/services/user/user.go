package user

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"inventra-system/internal/database/models"
	"inventra-system/internal/services/serviceerr"
	"inventra-system/internal/utils"
)

// Service covers authentication and the employee records custody hangs off.
type Service struct {
	db       *gorm.DB
	logger   *zap.Logger
	tokenTTL time.Duration
}

func NewService(db *gorm.DB, tokenTTL time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{db: db, logger: logger, tokenTTL: tokenTTL}
}

type RegisterInput struct {
	Username  string `json:"username"`
	Email     string `json:"email"`
	Password  string `json:"password"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	if in.Username == "" || in.Email == "" || in.Password == "" {
		return nil, serviceerr.Validation("username, email and password are required")
	}

	var count int64
	err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("username = ? OR email = ?", in.Username, in.Email).
		Count(&count).Error
	if err != nil {
		return nil, serviceerr.Internal(err)
	}
	if count > 0 {
		return nil, serviceerr.Conflict("username or email is already taken")
	}

	pwHash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, serviceerr.Internal(err)
	}

	account := models.User{
		Username:  in.Username,
		Email:     in.Email,
		Password:  string(pwHash),
		Firstname: in.Firstname,
		Lastname:  in.Lastname,
		IsActive:  true,
	}
	if err := s.db.WithContext(ctx).Create(&account).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}

	s.logger.Info("user registered", zap.String("username", account.Username))
	return &account, nil
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *models.User `json:"user"`
}

func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if username == "" || password == "" {
		return nil, serviceerr.Validation("username and password are required")
	}

	var account models.User
	err := s.db.WithContext(ctx).Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.Validation("invalid credentials")
		}
		return nil, serviceerr.Internal(err)
	}

	if !account.IsActive {
		return nil, serviceerr.Conflict("account is inactive")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(password)); err != nil {
		return nil, serviceerr.Validation("invalid credentials")
	}

	token, exp, err := utils.GenerateToken(account.ID, account.Username, s.tokenTTL)
	if err != nil {
		return nil, serviceerr.Internal(err)
	}

	now := time.Now()
	account.LastLogin = &now
	_ = s.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ?", account.ID).
		Update("last_login", now).Error

	s.logger.Info("user logged in", zap.String("username", account.Username))
	return &LoginResult{Token: token, ExpiresAt: exp, User: &account}, nil
}

// --- Employees ---

type EmployeeInput struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
}

func (s *Service) CreateEmployee(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	if in.Name == "" {
		return nil, serviceerr.Validation("employee name is required")
	}

	employee := models.Employee{
		Name:     in.Name,
		Position: in.Position,
		Phone:    in.Phone,
		Email:    in.Email,
		IsActive: true,
	}
	if err := s.db.WithContext(ctx).Create(&employee).Error; err != nil {
		return nil, serviceerr.Internal(err)
	}
	return &employee, nil
}

func (s *Service) GetEmployee(ctx context.Context, id int64) (*models.Employee, error) {
	var employee models.Employee
	err := s.db.WithContext(ctx).Preload("Assets").First(&employee, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, serviceerr.NotFound("employee %d not found", id)
		}
		return nil, serviceerr.Internal(err)
	}
	return &employee, nil
}

func (s *Service) ListEmployees(ctx context.Context, page, pageSize int) ([]models.Employee, int64, error) {
	if pageSize <= 0 {
		pageSize = 10
	}
	if page <= 0 {
		page = 1
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&models.Employee{}).Count(&total).Error; err != nil {
		return nil, 0, serviceerr.Internal(err)
	}

	var employees []models.Employee
	err := s.db.WithContext(ctx).
		Order("name").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&employees).Error
	if err != nil {
		return nil, 0, serviceerr.Internal(err)
	}
	return employees, total, nil
}
