package postgres

import (
	"fmt"
	"time"

	"watchlens/domain/core"
)

// timestampScanner lets database/sql scan directly into a core.Timestamp.
type timestampScanner core.Timestamp

func (t *timestampScanner) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = timestampScanner(core.NewTimestamp(v))
		return nil
	case nil:
		*t = timestampScanner(core.Timestamp{})
		return nil
	default:
		return fmt.Errorf("cannot scan %T into timestamp", src)
	}
}
