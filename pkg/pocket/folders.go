package pocket

import (
	"context"
	"fmt"
)

// Folders is the facade over the folders endpoint. The API has no
// single-folder route, so lookups scan the full list.
type Folders struct {
	client *Client
}

func NewFolders(c *Client) *Folders { return &Folders{client: c} }

func (f *Folders) List(ctx context.Context) ([]Folder, error) {
	env, err := f.client.Get(ctx, "folders", nil)
	if err != nil {
		return nil, err
	}
	var folders []Folder
	if err := env.Decode("data", &folders); err != nil {
		return nil, fmt.Errorf("list folders: %w", err)
	}
	return folders, nil
}

// Find returns nil when no folder has the id.
func (f *Folders) Find(ctx context.Context, id string) (*Folder, error) {
	return f.first(ctx, func(x Folder) bool { return x.ID == id })
}

func (f *Folders) FindByName(ctx context.Context, name string) (*Folder, error) {
	return f.first(ctx, func(x Folder) bool { return x.Name == name })
}

// Default returns the folder flagged is_default, or nil.
func (f *Folders) Default(ctx context.Context) (*Folder, error) {
	return f.first(ctx, func(x Folder) bool { return x.IsDefault })
}

func (f *Folders) first(ctx context.Context, match func(Folder) bool) (*Folder, error) {
	folders, err := f.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range folders {
		if match(folders[i]) {
			return &folders[i], nil
		}
	}
	return nil, nil
}
