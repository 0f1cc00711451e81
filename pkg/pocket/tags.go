package pocket

import (
	"context"
	"fmt"
)

// Tags is the facade over the tags endpoint.
type Tags struct {
	client *Client
}

func NewTags(c *Client) *Tags { return &Tags{client: c} }

// List returns tags in API order (most used first).
func (t *Tags) List(ctx context.Context) ([]Tag, error) {
	env, err := t.client.Get(ctx, "tags", nil)
	if err != nil {
		return nil, err
	}
	var tags []Tag
	if err := env.Decode("data", &tags); err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	return tags, nil
}

func (t *Tags) Find(ctx context.Context, id string) (*Tag, error) {
	tags, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		if tags[i].ID == id {
			return &tags[i], nil
		}
	}
	return nil, nil
}

func (t *Tags) FindByName(ctx context.Context, name string) (*Tag, error) {
	tags, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range tags {
		if tags[i].Name == name {
			return &tags[i], nil
		}
	}
	return nil, nil
}

// MostUsed returns at most n tags.
func (t *Tags) MostUsed(ctx context.Context, n int) ([]Tag, error) {
	tags, err := t.List(ctx)
	if err != nil {
		return nil, err
	}
	if n < 0 {
		n = 0
	}
	if n < len(tags) {
		tags = tags[:n]
	}
	return tags, nil
}
