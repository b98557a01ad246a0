package runtime

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/TechXTT/iotorm/pkg/store"
	"github.com/TechXTT/iotorm/pkg/store/iotdb"
	"github.com/TechXTT/iotorm/pkg/store/sqlstore"
)

// ErrUnsupportedScheme is returned for URIs no back-end serves.
var ErrUnsupportedScheme = errors.New("unsupported uri scheme")

// Connector opens sessions with the back-end matching the URI scheme.
type Connector struct {
	IoTDB store.Opener
	SQL   store.Opener
}

// NewConnector returns a Connector wired to the IoTDB and lib/pq back-ends.
func NewConnector() *Connector {
	return &Connector{IoTDB: iotdb.NewOpener(), SQL: sqlstore.Opener{}}
}

// Scheme returns the lower-cased part of uri before "://", or "" when absent.
func Scheme(uri string) string {
	i := strings.Index(uri, "://")
	if i < 0 {
		return ""
	}
	return strings.ToLower(uri[:i])
}

// Open dispatches on the endpoint URI scheme. A URI without scheme is served by IoTDB.
func (c *Connector) Open(ctx context.Context, ep store.Endpoint) (store.Session, error) {
	switch scheme := Scheme(ep.URI); scheme {
	case "", "iotdb", "jdbc:iotdb":
		return c.IoTDB.Open(ctx, ep)
	case "postgres", "postgresql":
		return c.SQL.Open(ctx, ep)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedScheme, scheme)
	}
}
