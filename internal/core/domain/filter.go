package domain

// FilterConfig narrows feed results by record attributes. The zero value
// matches everything. Only the two fields below are recognised filter
// kinds; anything else arriving from a caller is ignored, not an error.
type FilterConfig struct {
	// ContentType keeps only records whose content type matches exactly.
	// Empty means no content-type filtering.
	ContentType string

	// Sources keeps only records whose source is a member of the set.
	// Empty means no source filtering.
	Sources []string
}

// IsZero reports whether the filter matches everything.
func (f *FilterConfig) IsZero() bool {
	return f.ContentType == "" && len(f.Sources) == 0
}

// Matches reports whether a record passes the filter.
func (f *FilterConfig) Matches(rec *ContentRecord) bool {
	if f.ContentType != "" && rec.ContentType != f.ContentType {
		return false
	}
	if len(f.Sources) > 0 {
		found := false
		for _, s := range f.Sources {
			if rec.Source == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// ParseFilterMap converts a loosely-typed filter object (as supplied by
// external callers) into a FilterConfig. Unrecognised keys are dropped
// silently; recognised keys with unexpected value types are treated the
// same way.
func ParseFilterMap(raw map[string]any) FilterConfig {
	var f FilterConfig
	for key, val := range raw {
		switch key {
		case "content_type":
			if s, ok := val.(string); ok {
				f.ContentType = s
			}
		case "source":
			switch v := val.(type) {
			case []string:
				f.Sources = append(f.Sources, v...)
			case []any:
				for _, item := range v {
					if s, ok := item.(string); ok {
						f.Sources = append(f.Sources, s)
					}
				}
			case string:
				f.Sources = append(f.Sources, v)
			}
		default:
			// Unknown filter kinds are dropped.
		}
	}
	return f
}
