package handler

import (
	"net/http"

	"github.com/RoyceAzure/lab/bookstore/internal/api/dto"
	"github.com/RoyceAzure/lab/bookstore/internal/api/response"
	"github.com/RoyceAzure/lab/bookstore/internal/apperr"
	"github.com/RoyceAzure/lab/bookstore/internal/constants"
	"github.com/RoyceAzure/lab/bookstore/internal/service"
	"github.com/RoyceAzure/lab/bookstore/internal/util"
)

type AuthHandler struct {
	memberService  service.IMemberService
	sessionService service.ISessionService
	secureCookie   bool
}

func NewAuthHandler(memberService service.IMemberService, sessionService service.ISessionService, secureCookie bool) *AuthHandler {
	if memberService == nil || sessionService == nil {
		panic("memberService and sessionService cannot be nil")
	}
	return &AuthHandler{
		memberService:  memberService,
		sessionService: sessionService,
		secureCookie:   secureCookie,
	}
}

func (a *AuthHandler) sessionCookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   a.secureCookie,
		SameSite: http.SameSiteStrictMode,
	}
}

// @Summary register
// @Tags auth
// @Accept json
// @Produce json
// @Param member body dto.RegisterDTO true "member info"
// @Success 201 {object} response.Response{data=dto.MemberDTO} "created"
// @Failure 400 {object} response.ResponseError "ValidationCode"
// @Failure 409 {object} response.ResponseError "ConflictCode"
// @Failure 429 {object} response.ResponseError "TooManyRequestsCode"
// @Router /auth/register [post]
func (a *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in dto.RegisterDTO
	if err := decodeJSON(w, r, &in); err != nil {
		response.WriteError(w, r, err)
		return
	}

	member, err := a.memberService.Register(r.Context(), service.RegisterInput{
		FName:    in.FName,
		LName:    in.LName,
		Address:  in.Address,
		City:     in.City,
		Zip:      in.Zip,
		Phone:    in.Phone,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	response.CreatedJSON(w, convertMemberModelToDTO(member))
}

// @Summary email and password login
// @Tags auth
// @Accept json
// @Produce json
// @Param credentials body dto.LoginDTO true "email and password"
// @Success 200 {object} response.Response{data=dto.LoginResponse} "success, session cookie set"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Failure 429 {object} response.ResponseError "TooManyRequestsCode"
// @Router /auth/login [post]
func (a *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in dto.LoginDTO
	if err := decodeJSON(w, r, &in); err != nil {
		response.WriteError(w, r, err)
		return
	}

	ctx := r.Context()
	member, err := a.memberService.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	// 已登入的舊 session 直接作廢
	if identity := util.GetIdentityFromContext(ctx); identity != nil {
		if err := a.sessionService.Destroy(ctx, identity.SessionID); err != nil {
			response.WriteError(w, r, err)
			return
		}
	}

	sessionID, err := a.sessionService.Create(ctx, member.ID)
	if err != nil {
		response.WriteError(w, r, err)
		return
	}

	ttl := int(a.sessionService.TTL().Seconds())
	http.SetCookie(w, a.sessionCookie(sessionID, ttl))
	response.SuccessJSON(w, dto.LoginResponse{
		Member:    convertMemberModelToDTO(member),
		ExpiresIn: ttl,
	})
}

// @Summary logout
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response "success"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Router /auth/logout [post]
func (a *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	identity := util.GetIdentityFromContext(r.Context())
	if identity == nil {
		response.WriteError(w, r, apperr.Unauthenticated("login required"))
		return
	}

	if err := a.sessionService.Destroy(r.Context(), identity.SessionID); err != nil {
		response.WriteError(w, r, err)
		return
	}

	http.SetCookie(w, a.sessionCookie("", -1))
	response.SuccessJSON(w, nil)
}

// @Summary current member
// @Tags auth
// @Produce json
// @Success 200 {object} response.Response{data=dto.MemberDTO} "success"
// @Failure 401 {object} response.ResponseError "UnauthenticatedCode"
// @Router /auth/me [get]
func (a *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	member, err := a.memberService.GetMember(r.Context(), util.GetMemberID(r.Context()))
	if err != nil {
		response.WriteError(w, r, err)
		return
	}
	response.SuccessJSON(w, convertMemberModelToDTO(member))
}
