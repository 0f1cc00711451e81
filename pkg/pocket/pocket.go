// Package pocket is a typed client for the Pocket recordings API.
//
// Build one Client from a Config and hand it to the resource facades, or use
// New to get all of them at once:
//
//	p, err := pocket.New(pocket.DefaultConfig(key, baseURL))
//	page, err := p.Recordings().List(ctx, pocket.ListOptions{})
//
// Every failure is a *Error whose Kind is one of a closed set.
package pocket

// Pocket bundles a Client with its resource facades.
type Pocket struct {
	client     *Client
	recordings *Recordings
	folders    *Folders
	tags       *Tags
	audio      *Audio
}

// New validates cfg and wires the facades to a single shared Client.
func New(cfg Config, opts ...Option) (*Pocket, error) {
	c, err := NewClient(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Pocket{
		client:     c,
		recordings: NewRecordings(c),
		folders:    NewFolders(c),
		tags:       NewTags(c),
		audio:      NewAudio(c),
	}, nil
}

func (p *Pocket) Client() *Client         { return p.client }
func (p *Pocket) Recordings() *Recordings { return p.recordings }
func (p *Pocket) Folders() *Folders       { return p.folders }
func (p *Pocket) Tags() *Tags             { return p.tags }
func (p *Pocket) Audio() *Audio           { return p.audio }
