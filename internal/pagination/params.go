package pagination

import (
	"net/url"
	"strconv"
	"strings"
)

// Parse reads page and size from query values. Absent or blank values take the defaults;
// anything present must be an integer within bounds.
func (o Options) Parse(q url.Values) (Params, error) {
	p := o.Defaults()

	if raw, ok := lookup(q, PageParam); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, newParameterError(PageParam, raw, "must be an integer")
		}
		p.Page = n
	}
	if raw, ok := lookup(q, SizeParam); ok {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, newParameterError(SizeParam, raw, "must be an integer")
		}
		p.Size = n
	}

	if err := o.Validate(p); err != nil {
		return Params{}, err
	}
	return p, nil
}

func lookup(q url.Values, key string) (string, bool) {
	if q == nil {
		return "", false
	}
	raw := strings.TrimSpace(q.Get(key))
	if raw == "" {
		return "", false
	}
	return raw, true
}
