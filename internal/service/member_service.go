package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"Bitta/internal/dto"
	"Bitta/internal/model"
	"Bitta/internal/pkg"
	"Bitta/internal/repository/mysql"

	"golang.org/x/crypto/bcrypt"
)

type MemberRepository interface {
	Create(ctx context.Context, member *model.Member) error
	FindByID(ctx context.Context, id uint64) (*model.Member, error)
	FindByUsername(ctx context.Context, username string) (*model.Member, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	ExistsByEmailExceptID(ctx context.Context, email string, id uint64) (bool, error)
	Save(ctx context.Context, member *model.Member) error
	DeleteByIDAndReturnCount(ctx context.Context, id uint64) (int64, error)
}

// TokenStore 成员当前有效的 access token
type TokenStore interface {
	Save(ctx context.Context, memberID uint64, token string) error
	Delete(ctx context.Context, memberID uint64) error
}

type TokenIssuer interface {
	GeneratePair(memberID uint64, role int) (*pkg.Pair, error)
	Refresh(refreshToken string) (*pkg.Pair, error)
}

type Mailer interface {
	Send(to, subject, htmlBody string) error
}

type MemberService struct {
	repo         MemberRepository
	tokens       TokenStore
	issuer       TokenIssuer
	storage      ObjectStorage
	mailer       Mailer
	defaultImage string
}

// NewMemberService mailer 可以为 nil，此时不发欢迎邮件
func NewMemberService(repo MemberRepository, tokens TokenStore, issuer TokenIssuer, storage ObjectStorage, mailer Mailer, defaultImage string) *MemberService {
	return &MemberService{
		repo:         repo,
		tokens:       tokens,
		issuer:       issuer,
		storage:      storage,
		mailer:       mailer,
		defaultImage: defaultImage,
	}
}

// SignIn 新登录会覆盖 redis 中旧的 token
func (s *MemberService) SignIn(ctx context.Context, username, password string) (*dto.TokenPair, error) {
	member, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, mysql.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("find member %q: %w", username, err)
	}
	if bcrypt.CompareHashAndPassword([]byte(member.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issue(ctx, member.ID, member.Role)
}

func (s *MemberService) SignUp(ctx context.Context, in dto.SignUpDTO) (*dto.MemberDTO, error) {
	if err := pkg.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMember, err)
	}
	exists, err := s.repo.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, fmt.Errorf("check member: %w", err)
	}
	if exists {
		return nil, ErrMemberDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	nickname := in.Nickname
	if nickname == "" {
		nickname = in.Username
	}
	member := &model.Member{
		Username:        in.Username,
		Password:        string(hash),
		Nickname:        nickname,
		Email:           in.Email,
		Address:         in.Address,
		ProfileImageURL: s.defaultImage,
	}
	if err := s.repo.Create(ctx, member); err != nil {
		if errors.Is(err, mysql.ErrDuplicate) {
			return nil, ErrMemberDuplicate
		}
		return nil, fmt.Errorf("create member: %w", err)
	}

	if s.mailer != nil {
		if err := s.mailer.Send(member.Email, "Welcome to Bitta", pkg.WelcomeHTML(member.Nickname)); err != nil {
			slog.WarnContext(ctx, "send welcome mail failed", "member_id", member.ID, "error", err)
		}
	}
	out := entityToMemberDTO(member)
	return &out, nil
}

func (s *MemberService) GetMemberByID(ctx context.Context, id uint64) (*dto.MemberDTO, error) {
	member, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	out := entityToMemberDTO(member)
	return &out, nil
}

// UpdateMember removeProfileImage 优先于 profileImage；email 为空时保留原邮箱
func (s *MemberService) UpdateMember(ctx context.Context, id uint64, in dto.MemberDTO, profileImage *dto.File, removeProfileImage bool) (*dto.MemberDTO, error) {
	if err := pkg.Validate(in); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidMember, err)
	}
	member, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != member.Email {
		taken, err := s.repo.ExistsByEmailExceptID(ctx, in.Email, id)
		if err != nil {
			return nil, fmt.Errorf("check email: %w", err)
		}
		if taken {
			return nil, ErrMemberDuplicate
		}
		member.Email = in.Email
	}
	member.Nickname = in.Nickname
	member.Address = in.Address

	oldImage := member.ProfileImageURL
	var newKey string
	switch {
	case removeProfileImage:
		member.ProfileImageURL = s.defaultImage
	case profileImage != nil:
		obj, err := storeOne(ctx, s.storage, *profileImage, fmt.Sprintf("members/%d/profile", id), imageExts)
		if err != nil {
			return nil, &UploadError{Cause: "profile image upload failed", Err: err}
		}
		newKey = obj.key
		member.ProfileImageURL = obj.url
	}

	if err := s.repo.Save(ctx, member); err != nil {
		if newKey != "" {
			discard(ctx, s.storage, []storedObject{{key: newKey}})
		}
		if errors.Is(err, mysql.ErrDuplicate) {
			return nil, ErrMemberDuplicate
		}
		return nil, fmt.Errorf("save member %d: %w", id, err)
	}
	if member.ProfileImageURL != oldImage {
		s.removeImage(ctx, oldImage)
	}
	out := entityToMemberDTO(member)
	return &out, nil
}

// DeleteMember 同时清理会话和头像
func (s *MemberService) DeleteMember(ctx context.Context, id uint64) error {
	member, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	n, err := s.repo.DeleteByIDAndReturnCount(ctx, id)
	if err != nil {
		return fmt.Errorf("delete member %d: %w", id, err)
	}
	if n == 0 {
		return ErrMemberNotFound
	}
	if err := s.tokens.Delete(ctx, id); err != nil {
		slog.WarnContext(ctx, "revoke session failed", "member_id", id, "error", err)
	}
	s.removeImage(ctx, member.ProfileImageURL)
	return nil
}

func (s *MemberService) ResetProfileImageToDefault(ctx context.Context, id uint64) error {
	member, err := s.find(ctx, id)
	if err != nil {
		return err
	}
	if member.ProfileImageURL == s.defaultImage {
		return nil
	}
	old := member.ProfileImageURL
	member.ProfileImageURL = s.defaultImage
	if err := s.repo.Save(ctx, member); err != nil {
		return fmt.Errorf("save member %d: %w", id, err)
	}
	s.removeImage(ctx, old)
	return nil
}

func (s *MemberService) SignOut(ctx context.Context, id uint64) error {
	return s.tokens.Delete(ctx, id)
}

// Refresh 换发令牌后新的 access token 成为当前会话；已删除的成员不能换发
func (s *MemberService) Refresh(ctx context.Context, refreshToken string) (*dto.TokenPair, error) {
	pair, err := s.issuer.Refresh(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if _, err := s.find(ctx, pair.MemberID); err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}
	if err := s.tokens.Save(ctx, pair.MemberID, pair.AccessToken); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	return toTokenPair(pair), nil
}

func (s *MemberService) issue(ctx context.Context, memberID uint64, role int) (*dto.TokenPair, error) {
	pair, err := s.issuer.GeneratePair(memberID, role)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}
	if err := s.tokens.Save(ctx, memberID, pair.AccessToken); err != nil {
		return nil, fmt.Errorf("save token: %w", err)
	}
	return toTokenPair(pair), nil
}

func (s *MemberService) find(ctx context.Context, id uint64) (*model.Member, error) {
	member, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, mysql.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("find member %d: %w", id, err)
	}
	return member, nil
}

// removeImage 只删除本服务上传过的对象，默认头像和外部地址跳过
func (s *MemberService) removeImage(ctx context.Context, url string) {
	if url == "" || url == s.defaultImage {
		return
	}
	key, ok := s.storage.KeyFromURL(url)
	if !ok || !strings.HasPrefix(key, "members/") {
		return
	}
	discard(ctx, s.storage, []storedObject{{key: key, url: url}})
}

func toTokenPair(p *pkg.Pair) *dto.TokenPair {
	return &dto.TokenPair{
		GrantType:    pkg.GrantType,
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
	}
}

func entityToMemberDTO(m *model.Member) dto.MemberDTO {
	return dto.MemberDTO{
		ID:              m.ID,
		Username:        m.Username,
		Nickname:        m.Nickname,
		Email:           m.Email,
		Address:         m.Address,
		ProfileImageURL: m.ProfileImageURL,
		Role:            m.Role,
		CreatedAt:       m.CreatedAt,
	}
}
