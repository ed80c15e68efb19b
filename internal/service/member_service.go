package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
	"time"

	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db"
	"github.com/RoyceAzure/lab/bookstore/internal/infra/repository/db/sqlc"
	"github.com/RoyceAzure/lab/bookstore/internal/model"
	"github.com/jackc/pgx/v5/pgtype"
	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

type RegisterInput struct {
	FName    string
	LName    string
	Address  string
	City     string
	Zip      string
	Phone    string
	Email    string
	Password string
}

type IMemberService interface {
	Register(ctx context.Context, in RegisterInput) (*model.Member, error)
	Authenticate(ctx context.Context, email, password string) (*model.Member, error)
	GetMember(ctx context.Context, memberID int64) (*model.Member, error)
}

type MemberService struct {
	dbDao      db.IStore
	timeout    time.Duration
	bcryptCost int
	// 帳號不存在時仍做一次比對, 讓回應時間一致
	dummyHash []byte
}

var _ IMemberService = (*MemberService)(nil)

func NewMemberService(dbDao db.IStore, timeout time.Duration, bcryptCost int) IMemberService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	dummy, _ := bcrypt.GenerateFromPassword([]byte(passwordDigest("dummy-password")), bcryptCost)
	return &MemberService{
		dbDao:      dbDao,
		timeout:    timeout,
		bcryptCost: bcryptCost,
		dummyHash:  dummy,
	}
}

// passwordDigest bcrypt 只吃 72 bytes, 先做 sha256 讓 200 字元的密碼完整參與比對
func passwordDigest(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// ValidateRegistration 回傳正規化後的輸入, 所有欄位錯誤一次回傳
func ValidateRegistration(in RegisterInput) (RegisterInput, error) {
	out := RegisterInput{
		FName:    strings.TrimSpace(in.FName),
		LName:    strings.TrimSpace(in.LName),
		Address:  strings.TrimSpace(in.Address),
		City:     strings.TrimSpace(in.City),
		Zip:      strings.TrimSpace(in.Zip),
		Phone:    strings.TrimSpace(in.Phone),
		Password: in.Password,
	}

	fields := apperr.FieldErrors{}
	required := map[string]string{
		"fname":   out.FName,
		"lname":   out.LName,
		"address": out.Address,
		"city":    out.City,
		"zip":     out.Zip,
	}
	for field, v := range required {
		if v == "" {
			fields.Add(field, field+" is required")
		}
	}

	if out.Zip != "" && !ValidZip(out.Zip) {
		fields.Add("zip", "invalid zip code format")
	}

	if strings.TrimSpace(in.Email) == "" {
		fields.Add("email", "email is required")
	} else if email, ok := NormalizeEmail(in.Email); ok {
		out.Email = email
	} else {
		fields.Add("email", "invalid email address")
	}

	if in.Password == "" {
		fields.Add("password", "password is required")
	} else if !ValidPasswordLength(in.Password) {
		fields.Add("password", "password must be 6 to 200 characters long")
	}

	if err := fields.Err(); err != nil {
		return RegisterInput{}, err
	}
	return out, nil
}

// Register 建立會員
//
// 錯誤:
//   - apperr.ValidationCode 400: 欄位驗證失敗, Fields 內含各欄位訊息
//   - apperr.ConflictCode 409: email 已被使用
func (m *MemberService) Register(ctx context.Context, in RegisterInput) (*model.Member, error) {
	in, err := ValidateRegistration(in)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(passwordDigest(in.Password)), m.bcryptCost)
	if err != nil {
		return nil, apperr.Internal(err)
	}

	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	member, err := m.dbDao.CreateMember(ctx, sqlc.CreateMemberParams{
		Fname:        in.FName,
		Lname:        in.LName,
		Address:      in.Address,
		City:         in.City,
		Zip:          in.Zip,
		Phone:        pgtype.Text{String: in.Phone, Valid: in.Phone != ""},
		Email:        in.Email,
		PasswordHash: string(hash),
	})
	if err != nil {
		err = apperr.FromStore(err)
		if apperr.Is(err, apperr.ConflictCode) {
			return nil, apperr.Wrap(apperr.ConflictCode, "Use another email address.", err)
		}
		return nil, err
	}
	return convertRepoMemberToModel(&member), nil
}

func (m *MemberService) Authenticate(ctx context.Context, email, password string) (*model.Member, error) {
	normalized, ok := NormalizeEmail(email)
	if !ok || password == "" {
		return nil, apperr.Wrap(apperr.UnauthenticatedCode, ErrInvalidCredentials.Error(), ErrInvalidCredentials)
	}

	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	member, err := m.dbDao.GetMemberByEmail(ctx, normalized)
	if err != nil {
		err = apperr.FromStore(err)
		if !apperr.Is(err, apperr.NotFoundCode) {
			return nil, err
		}
		_ = bcrypt.CompareHashAndPassword(m.dummyHash, []byte(passwordDigest(password)))
		return nil, apperr.Wrap(apperr.UnauthenticatedCode, ErrInvalidCredentials.Error(), ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(passwordDigest(password))); err != nil {
		return nil, apperr.Wrap(apperr.UnauthenticatedCode, ErrInvalidCredentials.Error(), ErrInvalidCredentials)
	}
	return convertRepoMemberToModel(&member), nil
}

func (m *MemberService) GetMember(ctx context.Context, memberID int64) (*model.Member, error) {
	if err := requireMember(memberID); err != nil {
		return nil, err
	}

	ctx, cancel := withTimeout(ctx, m.timeout)
	defer cancel()

	member, err := m.dbDao.GetMemberByID(ctx, memberID)
	if err != nil {
		return nil, storeErr(err, "member not found")
	}
	return convertRepoMemberToModel(&member), nil
}

func convertRepoMemberToModel(member *sqlc.Member) *model.Member {
	m := &model.Member{
		ID:           member.ID,
		FName:        member.Fname,
		LName:        member.Lname,
		Address:      member.Address,
		City:         member.City,
		Zip:          member.Zip,
		Email:        member.Email,
		PasswordHash: member.PasswordHash,
		CreatedAt:    member.CreatedAt,
	}
	if member.Phone.Valid {
		phone := member.Phone.String
		m.Phone = &phone
	}
	return m
}
