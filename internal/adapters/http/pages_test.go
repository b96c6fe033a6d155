package http

import (
	"bytes"
	"testing"

	"github.com/alecthomas/assert"

	"github.com/brightlane/sitecms/internal/domain/entities"
)

func TestTemplatesRender(t *testing.T) {
	r, err := NewTemplateRenderer()
	assert.NoError(t, err)

	data := PageData{
		Title:    "sitecms",
		Services: entities.DefaultServices(),
		Blogs:    entities.DefaultBlogs(),
	}

	for _, name := range []string{"index.html", "blogs.html", "admin_login.html", "admin_panel.html"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, r.Render(&buf, name, data, nil))
			assert.Contains(t, buf.String(), "<title>sitecms</title>")
		})
	}
}

func TestTemplatesEscapeContent(t *testing.T) {
	r, err := NewTemplateRenderer()
	assert.NoError(t, err)

	var buf bytes.Buffer
	data := PageData{Blogs: []entities.Blog{{ID: 1, Title: "<script>x</script>"}}}
	assert.NoError(t, r.Render(&buf, "blogs.html", data, nil))
	assert.NotContains(t, buf.String(), "<script>x</script>")
}

func TestBlogImageRendersAsText(t *testing.T) {
	r, err := NewTemplateRenderer()
	assert.NoError(t, err)

	for _, name := range []string{"index.html", "blogs.html"} {
		t.Run(name, func(t *testing.T) {
			var buf bytes.Buffer
			assert.NoError(t, r.Render(&buf, name, PageData{Blogs: entities.DefaultBlogs()}, nil))
			assert.Contains(t, buf.String(), `<span class="image">🤖</span>`)
			assert.NotContains(t, buf.String(), "<img")
		})
	}
}

func TestLoginErrorShown(t *testing.T) {
	r, err := NewTemplateRenderer()
	assert.NoError(t, err)

	var buf bytes.Buffer
	assert.NoError(t, r.Render(&buf, "admin_login.html", PageData{Error: "Incorrect password"}, nil))
	assert.Contains(t, buf.String(), "Incorrect password")
}
