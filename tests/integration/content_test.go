//go:build integration

package integration

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNoticeLifecycle(t *testing.T) {
	env := SetupTestEnv(t)
	token := LoginAdmin(t, env)

	body := map[string]any{
		"title":     "점검 안내",
		"body":      "5월 1일 새벽 점검이 있습니다.",
		"is_pinned": true,
	}
	resp := DoRequest(t, env, "POST", "/api/v1/notices", body, token)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	noticeID := ParseResponse(t, resp)["data"].(map[string]any)["id"].(string)

	resp = DoRequest(t, env, "GET", "/api/v1/notices", nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	result := ParseResponse(t, resp)
	rows := result["data"].([]any)
	require.NotEmpty(t, rows)
	assert.Equal(t, true, rows[0].(map[string]any)["is_pinned"], "pinned notices sort first")

	resp = DoRequest(t, env, "DELETE", "/api/v1/notices/"+noticeID, nil, token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAnswerInquiry(t *testing.T) {
	env := SetupTestEnv(t)
	token := LoginAdmin(t, env)

	ctx := context.Background()
	var inquiryID string
	err := env.Pool.QueryRow(ctx,
		`INSERT INTO inquiries (title, body, author_name) VALUES ($1, $2, $3) RETURNING id`,
		"배송 문의", "배송이 늦어요", "박원장").Scan(&inquiryID)
	require.NoError(t, err)

	resp := DoRequest(t, env, "GET", "/api/v1/inquiries/"+inquiryID, nil, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "waiting", ParseResponse(t, resp)["data"].(map[string]any)["status"])

	resp = DoRequest(t, env, "POST", "/api/v1/inquiries/"+inquiryID+"/answer",
		map[string]any{"answer": "금주 내 배송 예정입니다."}, token)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := ParseResponse(t, resp)["data"].(map[string]any)
	assert.Equal(t, "answered", data["status"])
	assert.NotEmpty(t, data["answered_at"])
	assert.Equal(t, env.AdminID.String(), data["answered_by"])
}

func TestUnknownFieldsRejected(t *testing.T) {
	env := SetupTestEnv(t)
	token := LoginAdmin(t, env)

	body := map[string]any{"title": "x", "body": "y", "evil_extra": true}
	resp := DoRequest(t, env, "POST", "/api/v1/notices", body, token)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
