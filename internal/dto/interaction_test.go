package dto

import (
	"fmt"
	"net/url"
	"strings"
	"testing"

	"github.com/notewall/notewall-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCreateComment_ContentLength(t *testing.T) {
	body := func(content string) []byte {
		return []byte(fmt.Sprintf(`{"content":%q,"backgroundColor":"#A0B0C0","noteStyle":"torn","selectedFont":"inter","tilt":-2}`, content))
	}

	comment, err := DecodeCreateComment(body(strings.Repeat("c", domain.MaxCommentContentLength)))
	require.NoError(t, err)
	assert.Len(t, comment.Content, domain.MaxCommentContentLength)
	assert.Equal(t, "-2", comment.Tilt.String())

	_, err = DecodeCreateComment(body(strings.Repeat("c", domain.MaxCommentContentLength+1)))
	assert.Equal(t, []string{"content"}, fieldsOf(t, err))
}

func TestDecodeCreateComment_SharesNoteConstraints(t *testing.T) {
	_, err := DecodeCreateComment([]byte(`{"content":"hi","backgroundColor":"#FFF","noteStyle":"","selectedFont":"inter","tilt":4.5}`))
	assert.ElementsMatch(t, []string{"backgroundColor", "noteStyle", "tilt"}, fieldsOf(t, err))
}

func TestParseListComments(t *testing.T) {
	query, err := ParseListComments(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, ListCommentsQuery{Page: 1, Limit: 20}, query)

	q, _ := url.ParseQuery("page=2&limit=50&sort=popular")
	query, err = ParseListComments(q)
	require.NoError(t, err)
	assert.Equal(t, ListCommentsQuery{Page: 2, Limit: 50}, query)

	q, _ = url.ParseQuery(fmt.Sprintf("limit=%d", MaxLimit+1))
	_, err = ParseListComments(q)
	assert.Equal(t, []string{"limit"}, fieldsOf(t, err))

	q, _ = url.ParseQuery("page=922337203685477580")
	_, err = ParseListComments(q)
	assert.Equal(t, []string{"page"}, fieldsOf(t, err))
}

func TestDecodeCreateComment_RejectsQuotedTiltAndNUL(t *testing.T) {
	_, err := DecodeCreateComment([]byte(`{"content":"a\u0000b","backgroundColor":"#A0B0C0","noteStyle":"torn","selectedFont":"inter","tilt":"2"}`))
	assert.ElementsMatch(t, []string{"content", "tilt"}, fieldsOf(t, err))
}

func TestDecodeToggleLike(t *testing.T) {
	like, err := DecodeToggleLike([]byte(`{"targetId":"n1","targetType":"note"}`))
	require.NoError(t, err)
	assert.Equal(t, ToggleLike{TargetID: "n1", TargetType: "note"}, like)

	like, err = DecodeToggleLike([]byte(`{"targetId":"c1","targetType":"comment"}`))
	require.NoError(t, err)
	assert.Equal(t, "comment", like.TargetType)

	_, err = DecodeToggleLike([]byte(`{"targetId":"","targetType":"user"}`))
	assert.ElementsMatch(t, []string{"targetId", "targetType"}, fieldsOf(t, err))

	_, err = DecodeToggleLike([]byte(`{}`))
	assert.ElementsMatch(t, []string{"targetId", "targetType"}, fieldsOf(t, err))
}

func TestDecodeTrackView(t *testing.T) {
	noteID, err := DecodeTrackView([]byte(`{"noteId":"abc"}`))
	require.NoError(t, err)
	assert.Equal(t, "abc", noteID)

	_, err = DecodeTrackView([]byte(`{"noteId":""}`))
	assert.Equal(t, []string{"noteId"}, fieldsOf(t, err))

	_, err = DecodeTrackView(nil)
	assert.Equal(t, []string{"noteId"}, fieldsOf(t, err))
}

func TestDecodeReport_ReasonLength(t *testing.T) {
	body := func(reason string) []byte {
		return []byte(fmt.Sprintf(`{"targetId":"n1","targetType":"note","reason":%q}`, reason))
	}

	report, err := DecodeReport(body(strings.Repeat("r", domain.MaxReportReasonLength)))
	require.NoError(t, err)
	require.NotNil(t, report.Reason)
	assert.Len(t, *report.Reason, domain.MaxReportReasonLength)

	_, err = DecodeReport(body(strings.Repeat("r", domain.MaxReportReasonLength+1)))
	assert.Equal(t, []string{"reason"}, fieldsOf(t, err))
}

func TestDecodeReport_ReasonOptional(t *testing.T) {
	report, err := DecodeReport([]byte(`{"targetId":"c9","targetType":"comment"}`))
	require.NoError(t, err)
	assert.Nil(t, report.Reason)
	assert.Equal(t, "comment", report.TargetType)

	_, err = DecodeReport([]byte(`{"targetId":"c9","targetType":"post"}`))
	assert.Equal(t, []string{"targetType"}, fieldsOf(t, err))
}

func TestDecodeUpdateSettings(t *testing.T) {
	req, err := DecodeUpdateSettings([]byte(`{"anonymous":true}`))
	require.NoError(t, err)
	require.NotNil(t, req.Anonymous)
	assert.True(t, *req.Anonymous)
	assert.Nil(t, req.AllowComments)

	_, err = DecodeUpdateSettings([]byte(`{}`))
	assert.Equal(t, []string{"body"}, fieldsOf(t, err))

	_, err = DecodeUpdateSettings([]byte(`{"allowComments":"no"}`))
	assert.Equal(t, []string{"allowComments"}, fieldsOf(t, err))
}
