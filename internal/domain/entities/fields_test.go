package entities

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert"
)

func TestBlogKeepsUnknownMembers(t *testing.T) {
	var b Blog
	err := json.Unmarshal([]byte(`{"id":2,"title":"B","tags":["go"],"slug":"b","starred":true}`), &b)
	assert.NoError(t, err)
	assert.Equal(t, 2, b.ID)
	assert.True(t, b.Starred)
	assert.Equal(t, Fields{"tags": json.RawMessage(`["go"]`), "slug": json.RawMessage(`"b"`)}, b.Extra)

	out, err := json.Marshal(b)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":2,"title":"B","starred":true,"slug":"b","tags":["go"]}`, string(out))
}

func TestServiceWithoutUnknownMembers(t *testing.T) {
	var s Service
	assert.NoError(t, json.Unmarshal([]byte(`{"id":1,"title":"S"}`), &s))
	assert.Zero(t, s.Extra)

	out, err := json.Marshal(s)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":1,"title":"S"}`, string(out))
}

func TestTypedMembersWinOverExtra(t *testing.T) {
	s := Service{ID: 3, Title: "T", Extra: Fields{"id": json.RawMessage(`99`), "link": json.RawMessage(`"/t"`)}}

	out, err := json.Marshal(s)
	assert.NoError(t, err)
	assert.Equal(t, `{"id":3,"title":"T","link":"/t"}`, string(out))
}

func TestNonIntegerIDIsRejected(t *testing.T) {
	var s Service
	assert.Error(t, json.Unmarshal([]byte(`{"id":"one"}`), &s))
}

func TestServicePayloadCarriesExtra(t *testing.T) {
	var p ServicePayload
	assert.NoError(t, json.Unmarshal([]byte(`{"id":5,"icon":"x","title":"T","description":"D","link":"/t"}`), &p))

	svc := p.Service()
	assert.Equal(t, 0, svc.ID)
	assert.Equal(t, Fields{"link": json.RawMessage(`"/t"`)}, svc.Extra)

	svc.Extra["link"] = json.RawMessage(`"/other"`)
	assert.Equal(t, json.RawMessage(`"/t"`), p.Extra["link"])
}

func TestBlogPayloadStarredPresence(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		has     bool
		starred bool
	}{
		{"absent", `{"title":"T"}`, false, false},
		{"null", `{"title":"T","starred":null}`, true, false},
		{"false", `{"title":"T","starred":false}`, true, false},
		{"true", `{"title":"T","starred":true}`, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p BlogPayload
			assert.NoError(t, json.Unmarshal([]byte(tt.body), &p))
			assert.Equal(t, tt.has, p.HasStarred())
			assert.Equal(t, tt.starred, p.Blog().Starred)
		})
	}
}
