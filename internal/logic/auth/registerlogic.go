package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/zeromicro/go-zero/core/logx"
	"golang.org/x/crypto/bcrypt"

	"finchat/internal/db"
	"finchat/internal/svc"
	"finchat/internal/types"
)

type RegisterLogic struct {
	logx.Logger
	ctx    context.Context
	svcCtx *svc.ServiceContext
}

// Register a new user account
func NewRegisterLogic(ctx context.Context, svcCtx *svc.ServiceContext) *RegisterLogic {
	return &RegisterLogic{
		Logger: logx.WithContext(ctx),
		ctx:    ctx,
		svcCtx: svcCtx,
	}
}

func (l *RegisterLogic) Register(req *types.RegisterRequest) (*types.RegisterResponse, error) {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || req.Password == "" {
		return nil, errors.New("username, email and password are required")
	}
	if len(req.Password) < 8 {
		return nil, errors.New("password must be at least 8 characters")
	}

	if _, err := l.svcCtx.DB.GetUserByLogin(l.ctx, username); err == nil {
		return nil, errors.New("username already taken")
	}
	if _, err := l.svcCtx.DB.GetUserByLogin(l.ctx, email); err == nil {
		return nil, errors.New("email already registered")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user, err := l.svcCtx.DB.CreateUser(l.ctx, db.CreateUserParams{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		l.Errorf("Failed to create user: %v", err)
		return nil, errors.New("failed to create user")
	}

	// Provision the conversation files up front so the first chat
	// request finds a fully initialized chatroom.
	if _, err := l.svcCtx.Rooms.GetOrCreate(user.ID); err != nil {
		l.Errorf("Failed to provision chatroom for %s: %v", user.ID, err)
	}

	return &types.RegisterResponse{
		Id:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}, nil
}
