package httpapi

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func multipartBody(t *testing.T, files map[string][]byte, contentType string) (*bytes.Buffer, string) {
	t.Helper()
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	for name, content := range files {
		header := textproto.MIMEHeader{}
		header.Set("Content-Disposition", `form-data; name="images"; filename="`+name+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &body, writer.FormDataContentType()
}

func (ts *testServer) doMultipart(t *testing.T, target string, body *bytes.Buffer, contentType string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, target, body)
	req.Header.Set("Content-Type", contentType)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.router.ServeHTTP(rec, req)
	return rec
}

func TestUpload(t *testing.T) {
	ts := newTestServer(t)
	cookie := login(t, ts)

	body, contentType := multipartBody(t, map[string][]byte{
		"a.jpg": []byte("fake-jpeg-a"),
		"b.jpg": []byte("fake-jpeg-b"),
	}, "image/jpeg")

	rec := ts.doMultipart(t, "/api/admin/upload", body, contentType, cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	env := decodeEnvelope(t, rec)
	assert.Equal(t, "2개의 이미지가 업로드되었습니다.", env.Message)

	var data struct {
		URLs []string `json:"urls"`
	}
	decodeData(t, env, &data)
	require.Len(t, data.URLs, 2)
	for _, url := range data.URLs {
		assert.Contains(t, url, "/uploads/restaurants/")
	}
}

func TestUpload_RequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	body, contentType := multipartBody(t, map[string][]byte{"a.jpg": []byte("x")}, "image/jpeg")
	rec := ts.doMultipart(t, "/api/admin/upload", body, contentType)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestUpload_RejectsWholeBatchOnInvalidType(t *testing.T) {
	ts := newTestServer(t)
	cookie := login(t, ts)

	body, contentType := multipartBody(t, map[string][]byte{"doc.pdf": []byte("x")}, "application/pdf")
	rec := ts.doMultipart(t, "/api/admin/upload", body, contentType, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeEnvelope(t, rec).Error, "허용되지 않는 파일 형식")
}

func TestUpload_EmptyBatch(t *testing.T) {
	ts := newTestServer(t)
	cookie := login(t, ts)

	body, contentType := multipartBody(t, nil, "image/jpeg")
	rec := ts.doMultipart(t, "/api/admin/upload", body, contentType, cookie)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "업로드할 파일이 없습니다.", decodeEnvelope(t, rec).Error)
}
