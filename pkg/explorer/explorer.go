// Package explorer answers questions about the Star Wars universe on top of
// a [swapi.Client]: what matches a query and which related entities it
// references, and bulk warm-up of the client's caches.
//
// # Usage
//
//	ex := explorer.New(client, logger)
//	res, err := ex.Search(ctx, "kenobi", []swapi.EntityType{swapi.People})
//	fmt.Println(res.Message, res.Names)
//
//	job := ex.Prime(ctx)
//	report, err := job.Wait()
package explorer

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/holocron/pkg/integrations/swapi"
)

// Source is the part of [swapi.Client] the explorer uses.
type Source interface {
	SearchByQuery(ctx context.Context, query string) (*swapi.Node, error)
	FetchObject(ctx context.Context, key swapi.NodeKey) (*swapi.Node, error)
	GetAll(ctx context.Context, t swapi.EntityType) ([]*swapi.Node, error)
}

// Explorer runs searches and seeding against a Source.
//
// Explorer holds no state besides its Source and logger and is safe for
// concurrent use.
type Explorer struct {
	Source Source
	Logger *log.Logger
}

// New creates an Explorer. A nil logger selects log.Default().
func New(src Source, logger *log.Logger) *Explorer {
	if logger == nil {
		logger = log.Default()
	}
	return &Explorer{Source: src, Logger: logger}
}

var _ Source = (*swapi.Client)(nil)
