package handler

import (
	"bytes"
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/cloudwego/hertz/pkg/app"
	hertzconfig "github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/protocol"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/hertz-contrib/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"SignMeUp/internal/middleware"
	"SignMeUp/internal/model"
	"SignMeUp/internal/service"
	"SignMeUp/pkg/logger"
)

// 内存版仓库，走完整的 handler -> service 链路
type memAccountRepo struct {
	byEmail map[string]*model.Account
}

func (f *memAccountRepo) GetByEmail(ctx context.Context, email string) (*model.Account, error) {
	a, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *a
	return &copied, nil
}

func (f *memAccountRepo) Create(ctx context.Context, account *model.Account) error {
	copied := *account
	f.byEmail[account.Email] = &copied
	return nil
}

func (f *memAccountRepo) Update(ctx context.Context, account *model.Account) error {
	copied := *account
	f.byEmail[account.Email] = &copied
	return nil
}

func (f *memAccountRepo) List(ctx context.Context) ([]model.Account, error) {
	return nil, nil
}

type memPlacementRepo struct{}

func (f *memPlacementRepo) List(ctx context.Context) ([]model.StepPlacement, error) {
	return nil, nil // 未配置，全部步骤兜底启用
}

func (f *memPlacementRepo) ReplaceAll(ctx context.Context, rows []model.StepPlacement) error {
	return nil
}

func newOnboardingEngine(t *testing.T) *route.Engine {
	t.Helper()
	logger.Init()

	service.SetOnboarding(service.NewOnboardingService(
		&memAccountRepo{byEmail: make(map[string]*model.Account)},
		&memPlacementRepo{},
		func() (int64, error) { return 424242, nil },
	))

	engine := route.NewEngine(hertzconfig.NewOptions([]hertzconfig.Option{}))
	engine.Use(middleware.SessionMiddleware())
	engine.POST("/v1/onboarding", SubmitOnboarding)
	engine.GET("/v1/onboarding/draft", GetDraft)
	engine.PUT("/v1/onboarding/draft", SaveDraft)
	engine.DELETE("/v1/onboarding/draft", DeleteDraft)

	// 向会话写入损坏草稿，模拟历史版本留下的脏数据
	engine.POST("/session/raw-draft", func(ctx context.Context, c *app.RequestContext) {
		session := sessions.Default(c)
		session.Set(draftSessionKey, "{not json")
		require.NoError(t, session.Save())
		c.Status(http.StatusOK)
	})

	return engine
}

func sessionCookie(t *testing.T, resp *protocol.Response) string {
	t.Helper()

	if setCookie := resp.Header.Get("Set-Cookie"); setCookie != "" {
		return strings.SplitN(setCookie, ";", 2)[0]
	}

	ck := protocol.AcquireCookie()
	defer protocol.ReleaseCookie(ck)
	ck.SetKey(middleware.SessionName)
	require.True(t, resp.Header.Cookie(ck), "response carries no session cookie")
	return middleware.SessionName + "=" + string(ck.Value())
}

func jsonBody(s string) *ut.Body {
	return &ut.Body{Body: bytes.NewBufferString(s), Len: len(s)}
}

var jsonHeader = ut.Header{Key: "Content-Type", Value: "application/json"}

func TestDraftMissingReturns404(t *testing.T) {
	engine := newOnboardingEngine(t)

	w := ut.PerformRequest(engine, "GET", "/v1/onboarding/draft", nil)
	resp := w.Result()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "DRAFT_NOT_FOUND")
}

func TestDraftSaveGetDeleteRoundTrip(t *testing.T) {
	engine := newOnboardingEngine(t)

	draft := `{"email":"homer@example.com","AboutMe":{"bio":"I like donuts"}}`
	w := ut.PerformRequest(engine, "PUT", "/v1/onboarding/draft", jsonBody(draft), jsonHeader)
	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode())
	cookie := sessionCookie(t, resp)

	// 草稿状态全在 cookie 里，带着它就能读回来
	w = ut.PerformRequest(engine, "GET", "/v1/onboarding/draft", nil,
		ut.Header{Key: "Cookie", Value: cookie})
	resp = w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "homer@example.com")
	assert.Contains(t, string(resp.Body()), "I like donuts")

	w = ut.PerformRequest(engine, "DELETE", "/v1/onboarding/draft", nil,
		ut.Header{Key: "Cookie", Value: cookie})
	resp = w.Result()
	require.Equal(t, http.StatusNoContent, resp.StatusCode())

	// 删除后必须用响应里刷新过的 cookie，旧 cookie 本身还编码着草稿
	cleared := sessionCookie(t, resp)
	w = ut.PerformRequest(engine, "GET", "/v1/onboarding/draft", nil,
		ut.Header{Key: "Cookie", Value: cleared})
	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode())
}

func TestDraftCorruptedTreatedAsMissing(t *testing.T) {
	engine := newOnboardingEngine(t)

	w := ut.PerformRequest(engine, "POST", "/session/raw-draft", nil)
	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode())
	cookie := sessionCookie(t, resp)

	// 损坏的草稿当作不存在，响应顺带下发清理后的会话
	w = ut.PerformRequest(engine, "GET", "/v1/onboarding/draft", nil,
		ut.Header{Key: "Cookie", Value: cookie})
	resp = w.Result()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "DRAFT_NOT_FOUND")

	cleaned := sessionCookie(t, resp)
	w = ut.PerformRequest(engine, "GET", "/v1/onboarding/draft", nil,
		ut.Header{Key: "Cookie", Value: cleaned})
	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode())
}

func TestSubmitClearsDraft(t *testing.T) {
	engine := newOnboardingEngine(t)

	draft := `{"email":"homer@example.com","password":"donuts123"}`
	w := ut.PerformRequest(engine, "PUT", "/v1/onboarding/draft", jsonBody(draft), jsonHeader)
	resp := w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode())
	cookie := sessionCookie(t, resp)

	submission := `{
		"email": "homer@example.com",
		"password": "donuts123",
		"AboutMe": {"bio": "I like donuts"},
		"Birthdate": {"date": "1956-05-12"},
		"Address": {"line1": "742 Evergreen Terrace", "city": "Springfield", "state": "IL", "zip": "62704"}
	}`
	w = ut.PerformRequest(engine, "POST", "/v1/onboarding", jsonBody(submission),
		jsonHeader, ut.Header{Key: "Cookie", Value: cookie})
	resp = w.Result()
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Contains(t, string(resp.Body()), "424242")

	// 提交成功后草稿被清掉
	cleared := sessionCookie(t, resp)
	w = ut.PerformRequest(engine, "GET", "/v1/onboarding/draft", nil,
		ut.Header{Key: "Cookie", Value: cleared})
	assert.Equal(t, http.StatusNotFound, w.Result().StatusCode())
}
