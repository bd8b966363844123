package client

// Database scopes operations to one named database within a project.
type Database struct {
	client *Client
	name   string
}

func (d *Database) Name() string {
	return d.name
}

// Collection returns a handle on a named collection. Collections are
// created lazily by the server on first insert.
func (d *Database) Collection(name string) *Collection {
	return &Collection{client: d.client, dbName: d.name, name: name}
}
