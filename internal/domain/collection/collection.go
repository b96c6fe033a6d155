// Package collection implements the mutation rules shared by every record
// collection: id allocation, full-record replacement, idempotent delete and
// the blog star flag.
//
// Every function takes a snapshot and returns a new one. Input slices are
// never modified.
package collection

import (
	"github.com/brightlane/sitecms/internal/domain/entities"
)

// Record is implemented by the value types stored in a collection.
type Record[T any] interface {
	GetID() int
	WithID(id int) T
}

// NextID returns one more than the highest id present, or 1 for an empty collection.
func NextID[T Record[T]](records []T) int {
	highest := 0
	for _, r := range records {
		if id := r.GetID(); id > highest {
			highest = id
		}
	}
	return highest + 1
}

// Find returns the record with the given id.
func Find[T Record[T]](records []T, id int) (T, bool) {
	for _, r := range records {
		if r.GetID() == id {
			return r, true
		}
	}
	var zero T
	return zero, false
}

// Add assigns the next id to rec and appends it.
func Add[T Record[T]](records []T, rec T) ([]T, T) {
	created := rec.WithID(NextID(records))
	out := make([]T, 0, len(records)+1)
	out = append(out, records...)
	out = append(out, created)
	return out, created
}

// Update replaces the record with the given id by rec, keeping the original id.
// When no record matches, the input is returned unchanged with ErrNotFound.
func Update[T Record[T]](records []T, id int, rec T) ([]T, T, error) {
	return replace(records, id, func(T) T { return rec })
}

// Delete removes the record with the given id. A missing id is not an error.
func Delete[T Record[T]](records []T, id int) []T {
	out := make([]T, 0, len(records))
	for _, r := range records {
		if r.GetID() != id {
			out = append(out, r)
		}
	}
	return out
}

func replace[T Record[T]](records []T, id int, fn func(prev T) T) ([]T, T, error) {
	for i, r := range records {
		if r.GetID() != id {
			continue
		}
		updated := fn(r).WithID(id)
		out := make([]T, len(records))
		copy(out, records)
		out[i] = updated
		return out, updated, nil
	}
	var zero T
	return records, zero, entities.ErrNotFound
}

// UpdateBlog replaces a blog post. The previous starred flag is carried
// forward when the payload has no starred member; every other field comes
// from the payload.
func UpdateBlog(blogs []entities.Blog, id int, payload entities.BlogPayload) ([]entities.Blog, entities.Blog, error) {
	return replace(blogs, id, func(prev entities.Blog) entities.Blog {
		next := payload.Blog()
		if !payload.HasStarred() {
			next.Starred = prev.Starred
		}
		return next
	})
}

// ToggleStar flips the starred flag of one blog post and returns the new value.
func ToggleStar(blogs []entities.Blog, id int) ([]entities.Blog, bool, error) {
	out, updated, err := replace(blogs, id, func(prev entities.Blog) entities.Blog {
		prev.Starred = !prev.Starred
		return prev
	})
	if err != nil {
		return blogs, false, err
	}
	return out, updated.Starred, nil
}

// Starred returns the starred blog posts in their original order.
func Starred(blogs []entities.Blog) []entities.Blog {
	out := make([]entities.Blog, 0, len(blogs))
	for _, b := range blogs {
		if b.Starred {
			out = append(out, b)
		}
	}
	return out
}
