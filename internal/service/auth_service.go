package service

import (
	"taskup/internal/dto"
	"taskup/internal/model"
	"taskup/internal/pkg/config"
	"taskup/internal/pkg/crypto"
	"taskup/internal/pkg/jwt"
	"taskup/internal/pkg/logger"
	"taskup/internal/repository"
	"taskup/pkg/constants"
	pkgErrors "taskup/pkg/errors"

	"go.uber.org/zap"
)

type AuthService interface {
	Register(req *dto.RegisterRequest) (*dto.UserResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RefreshToken(refreshToken string) (*dto.LoginResponse, error)
	Me(userId string) (*dto.UserResponse, error)
}

type authService struct {
	userRepo     repository.UserRepository
	verification VerificationService
}

func NewAuthService(userRepo repository.UserRepository, verification VerificationService) AuthService {
	return &authService{
		userRepo:     userRepo,
		verification: verification,
	}
}

// Register 注册用户, 前置条件是邮箱已通过验证码验证
func (s *authService) Register(req *dto.RegisterRequest) (*dto.UserResponse, error) {
	if !s.verification.IsVerified(req.Email) {
		return nil, pkgErrors.ErrEmailNotVerified
	}

	if existing, _ := s.userRepo.FindByEmail(req.Email); existing != nil {
		return nil, pkgErrors.ErrEmailExists
	}

	hashed, err := crypto.HashPassword(req.Password)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "密码加密失败", err)
	}

	user := &model.User{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Password:  hashed,
		Role:      constants.UserRoleDefault,
		JobTitle:  req.JobTitle,
	}

	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.verification.Consume(req.Email)
	logger.Info("用户注册成功", zap.String("user_id", user.ID), zap.String("email", user.Email))

	return dto.ToUserResponse(user), nil
}

// Login 邮箱密码登录
// 用户不存在与密码错误返回同一错误, 不泄露账号是否存在
func (s *authService) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(req.Email)
	if err != nil {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	if !crypto.CheckPassword(req.Password, user.Password) {
		return nil, pkgErrors.ErrInvalidCredentials
	}

	if err := s.userRepo.UpdateLastLogin(user.ID); err != nil {
		logger.Warn("更新登录时间失败", zap.String("user_id", user.ID), zap.Error(err))
	}

	return s.buildLoginResponse(user)
}

// RefreshToken 用刷新Token换取新的Token对
func (s *authService) RefreshToken(refreshToken string) (*dto.LoginResponse, error) {
	claims, err := jwt.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != constants.JWTTypeRefresh {
		return nil, pkgErrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(claims.UserID)
	if err != nil {
		return nil, err
	}

	return s.buildLoginResponse(user)
}

// Me 当前用户信息
func (s *authService) Me(userId string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(userId)
	if err != nil {
		return nil, err
	}
	return dto.ToUserResponse(user), nil
}

func (s *authService) buildLoginResponse(user *model.User) (*dto.LoginResponse, error) {
	accessToken, err := jwt.GenerateAccessToken(user.ID, user.Email, user.FirstName, user.LastName, user.Role)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成Token失败", err)
	}
	refreshToken, err := jwt.GenerateRefreshToken(user.ID, user.Email, user.FirstName, user.LastName, user.Role)
	if err != nil {
		return nil, pkgErrors.Wrap(pkgErrors.CodeInternalError, "生成Token失败", err)
	}

	return &dto.LoginResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    config.GlobalConfig.Auth.JWT.AccessTokenExpire,
		User:         dto.ToUserResponse(user),
	}, nil
}
