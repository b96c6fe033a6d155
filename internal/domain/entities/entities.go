package entities

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrNotFound           = errors.New("record not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("incorrect password")
)

// Collection names
const (
	CollectionServices = "services"
	CollectionBlogs    = "blogs"
)

// StorageError reports a collection that could not be read, decoded or written.
type StorageError struct {
	Collection string
	Op         string
	Err        error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage: %s %s: %v", e.Op, e.Collection, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Service represents one offering shown on the marketing site. Members
// without a typed field are carried in Extra.
type Service struct {
	ID          int    `json:"id"`
	Icon        string `json:"icon,omitempty"`
	Title       string `json:"title,omitempty"`
	Description string `json:"description,omitempty"`
	Extra       Fields `json:"-" swaggerignore:"true"`
}

func (s Service) GetID() int { return s.ID }

// WithID returns a copy of the service carrying id.
func (s Service) WithID(id int) Service {
	s.ID = id
	return s
}

func (s Service) MarshalJSON() ([]byte, error) {
	type plain Service
	return joinObject(plain(s), serviceKeys, s.Extra)
}

func (s *Service) UnmarshalJSON(data []byte) error {
	type plain Service
	var p plain
	extra, _, err := splitObject(data, &p, serviceKeys)
	if err != nil {
		return err
	}
	*s = Service(p)
	s.Extra = extra
	return nil
}

// Blog represents a blog post. Starred posts are shown on the home page.
type Blog struct {
	ID      int    `json:"id"`
	Title   string `json:"title,omitempty"`
	Excerpt string `json:"excerpt,omitempty"`
	Author  string `json:"author,omitempty"`
	Date    string `json:"date,omitempty"`
	Image   string `json:"image,omitempty"`
	Starred bool   `json:"starred"`
	Extra   Fields `json:"-" swaggerignore:"true"`
}

func (b Blog) GetID() int { return b.ID }

// WithID returns a copy of the blog carrying id.
func (b Blog) WithID(id int) Blog {
	b.ID = id
	return b
}

func (b Blog) MarshalJSON() ([]byte, error) {
	type plain Blog
	return joinObject(plain(b), blogKeys, b.Extra)
}

func (b *Blog) UnmarshalJSON(data []byte) error {
	type plain Blog
	var p plain
	extra, _, err := splitObject(data, &p, blogKeys)
	if err != nil {
		return err
	}
	*b = Blog(p)
	b.Extra = extra
	return nil
}

// ServicePayload is the body accepted by service create and update.
// Any id in the payload is ignored. Untyped members are stored as sent.
type ServicePayload struct {
	ID          *int   `json:"id,omitempty"`
	Icon        string `json:"icon"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Extra       Fields `json:"-" swaggerignore:"true"`
}

func (p *ServicePayload) UnmarshalJSON(data []byte) error {
	type plain ServicePayload
	var v plain
	extra, _, err := splitObject(data, &v, serviceKeys)
	if err != nil {
		return err
	}
	*p = ServicePayload(v)
	p.Extra = extra
	return nil
}

// Service converts the payload into a record without an id.
func (p ServicePayload) Service() Service {
	return Service{
		Icon:        p.Icon,
		Title:       p.Title,
		Description: p.Description,
		Extra:       p.Extra.clone(),
	}
}

// BlogPayload is the body accepted by blog create and update. A starred
// member that is present, even as null, replaces the stored flag; an absent
// one leaves it to the operation.
type BlogPayload struct {
	ID      *int   `json:"id,omitempty"`
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Author  string `json:"author"`
	Date    string `json:"date"`
	Image   string `json:"image"`
	Starred *bool  `json:"starred,omitempty"`
	Extra   Fields `json:"-" swaggerignore:"true"`

	starredSent bool
}

func (p *BlogPayload) UnmarshalJSON(data []byte) error {
	type plain BlogPayload
	var v plain
	extra, members, err := splitObject(data, &v, blogKeys)
	if err != nil {
		return err
	}
	*p = BlogPayload(v)
	p.Extra = extra
	_, p.starredSent = members["starred"]
	return nil
}

// HasStarred reports whether the payload carries a starred member.
func (p BlogPayload) HasStarred() bool {
	return p.Starred != nil || p.starredSent
}

// Blog converts the payload into a record without an id. A missing or null
// starred flag becomes false.
func (p BlogPayload) Blog() Blog {
	b := Blog{
		Title:   p.Title,
		Excerpt: p.Excerpt,
		Author:  p.Author,
		Date:    p.Date,
		Image:   p.Image,
		Extra:   p.Extra.clone(),
	}
	if p.Starred != nil {
		b.Starred = *p.Starred
	}
	return b
}

// StarResult is returned by a star toggle
type StarResult struct {
	Success bool `json:"success"`
	Starred bool `json:"starred"`
}
