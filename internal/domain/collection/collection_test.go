package collection

import (
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert"

	"github.com/brightlane/sitecms/internal/domain/entities"
)

func boolPtr(v bool) *bool { return &v }

func TestNextID(t *testing.T) {
	assert.Equal(t, 1, NextID([]entities.Service{}))
	assert.Equal(t, 1, NextID[entities.Service](nil))
	assert.Equal(t, 8, NextID([]entities.Service{{ID: 3}, {ID: 7}, {ID: 2}}))
}

func TestAddAssignsSequentialIDs(t *testing.T) {
	var services []entities.Service

	services, first := Add(services, entities.Service{Icon: "🤖", Title: "X", Description: "Y"})
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "X", first.Title)

	services, second := Add(services, entities.Service{Icon: "🤖", Title: "X", Description: "Y"})
	assert.Equal(t, 2, second.ID)
	assert.Equal(t, 2, len(services))
}

func TestAddReusesIDAfterHighestDeleted(t *testing.T) {
	services := []entities.Service{{ID: 1}, {ID: 2}, {ID: 3}}
	services = Delete(services, 3)

	_, created := Add(services, entities.Service{Title: "again"})
	assert.Equal(t, 3, created.ID)
}

func TestAddIgnoresPayloadID(t *testing.T) {
	_, created := Add([]entities.Service{{ID: 4}}, entities.Service{ID: 99, Title: "t"})
	assert.Equal(t, 5, created.ID)
}

func TestAddDoesNotModifyInput(t *testing.T) {
	in := make([]entities.Service, 1, 4)
	in[0] = entities.Service{ID: 1}

	out, _ := Add(in, entities.Service{Title: "new"})
	assert.Equal(t, 1, len(in))
	assert.Equal(t, 2, len(out))
	assert.Equal(t, entities.Service{}, in[:2][1])
}

func TestUpdateReplacesWholeRecord(t *testing.T) {
	services := []entities.Service{
		{ID: 1, Icon: "a", Title: "Old", Description: "desc"},
		{ID: 2, Icon: "b", Title: "Other"},
	}

	out, updated, err := Update(services, 1, entities.Service{ID: 42, Title: "New"})
	assert.NoError(t, err)
	assert.Equal(t, entities.Service{ID: 1, Title: "New"}, updated)
	assert.Equal(t, updated, out[0])
	assert.Equal(t, services[1], out[1])
	assert.Equal(t, "Old", services[0].Title)
}

func TestUpdateMissingID(t *testing.T) {
	services := []entities.Service{{ID: 1, Title: "keep"}}

	out, _, err := Update(services, 9, entities.Service{Title: "nope"})
	assert.Equal(t, entities.ErrNotFound, err)
	assert.Equal(t, services, out)
}

func TestDelete(t *testing.T) {
	services := []entities.Service{{ID: 1}, {ID: 2}, {ID: 3}}

	out := Delete(services, 2)
	assert.Equal(t, []entities.Service{{ID: 1}, {ID: 3}}, out)

	same := Delete(out, 42)
	assert.Equal(t, out, same)
}

func TestFind(t *testing.T) {
	blogs := []entities.Blog{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}}

	b, ok := Find(blogs, 2)
	assert.True(t, ok)
	assert.Equal(t, "b", b.Title)

	_, ok = Find(blogs, 3)
	assert.False(t, ok)
}

func TestUpdateBlogCarriesStarredForward(t *testing.T) {
	blogs := []entities.Blog{{ID: 1, Title: "Old", Author: "Tech Team", Starred: true}}

	_, updated, err := UpdateBlog(blogs, 1, entities.BlogPayload{Title: "New"})
	assert.NoError(t, err)
	// Full replacement: author is dropped, starred survives.
	assert.Equal(t, entities.Blog{ID: 1, Title: "New", Starred: true}, updated)
}

func TestUpdateBlogOverridesStarred(t *testing.T) {
	blogs := []entities.Blog{{ID: 1, Title: "Old", Starred: true}}

	_, updated, err := UpdateBlog(blogs, 1, entities.BlogPayload{Title: "New", Starred: boolPtr(false)})
	assert.NoError(t, err)
	assert.False(t, updated.Starred)
}

func TestUpdateBlogNullStarredClearsFlag(t *testing.T) {
	blogs := []entities.Blog{{ID: 1, Title: "Old", Starred: true}}

	var payload entities.BlogPayload
	assert.NoError(t, json.Unmarshal([]byte(`{"title":"New","starred":null}`), &payload))

	_, updated, err := UpdateBlog(blogs, 1, payload)
	assert.NoError(t, err)
	assert.False(t, updated.Starred)
}

func TestToggleStarKeepsExtraFields(t *testing.T) {
	extra := entities.Fields{"slug": json.RawMessage(`"b"`)}
	blogs := []entities.Blog{{ID: 1}, {ID: 2, Title: "B", Starred: true, Extra: extra}}

	out, _, err := ToggleStar(blogs, 1)
	assert.NoError(t, err)
	assert.Equal(t, blogs[1], out[1])

	out, _, err = ToggleStar(out, 2)
	assert.NoError(t, err)
	assert.Equal(t, entities.Blog{ID: 2, Title: "B", Extra: extra}, out[1])
}

func TestUpdateBlogMissingID(t *testing.T) {
	blogs := []entities.Blog{{ID: 1}}

	out, _, err := UpdateBlog(blogs, 2, entities.BlogPayload{Title: "x"})
	assert.Equal(t, entities.ErrNotFound, err)
	assert.Equal(t, blogs, out)
}

func TestToggleStar(t *testing.T) {
	blogs := []entities.Blog{
		{ID: 1, Title: "one", Starred: false},
		{ID: 2, Title: "two", Starred: true},
	}

	blogs, starred, err := ToggleStar(blogs, 1)
	assert.NoError(t, err)
	assert.True(t, starred)
	assert.Equal(t, entities.Blog{ID: 1, Title: "one", Starred: true}, blogs[0])
	assert.Equal(t, entities.Blog{ID: 2, Title: "two", Starred: true}, blogs[1])

	blogs, starred, err = ToggleStar(blogs, 1)
	assert.NoError(t, err)
	assert.False(t, starred)
	assert.False(t, blogs[0].Starred)
}

func TestToggleStarMissingID(t *testing.T) {
	blogs := []entities.Blog{{ID: 1}}

	out, _, err := ToggleStar(blogs, 5)
	assert.Equal(t, entities.ErrNotFound, err)
	assert.Equal(t, blogs, out)
}

func TestStarredPreservesOrder(t *testing.T) {
	blogs := []entities.Blog{
		{ID: 5, Starred: true},
		{ID: 1},
		{ID: 3, Starred: true},
		{ID: 2},
	}

	out := Starred(blogs)
	assert.Equal(t, []entities.Blog{{ID: 5, Starred: true}, {ID: 3, Starred: true}}, out)
	assert.Equal(t, 0, len(Starred(nil)))
}
